// Package home computes the installation directories under
// ~/.extframework. Each directory can be redirected with an environment
// variable.
package home
