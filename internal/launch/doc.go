// Package launch wires the launcher together. For each requested extension
// it resolves the archive tree from its repository, audits it against the
// packaged set, caches and opens the archives, then composes every unit with
// the application target into one loader and runs the main code unit.
package launch
