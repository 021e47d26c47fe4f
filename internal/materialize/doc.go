// Package materialize opens the archives of an audited tree and hands them
// to the loader as source units.
package materialize
