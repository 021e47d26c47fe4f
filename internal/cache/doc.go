// Package cache copies resolved archives into the installation directories
// so later launches can be served without the original repository.
package cache
