// Package cli defines the Cobra command tree for the extlaunch CLI. Each file
// registers one top-level command with the root command and delegates the
// work to the internal packages.
package cli
