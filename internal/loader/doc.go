// Package loader composes independent code sources into one namespace.
//
// A SourceUnit provides named code units, scoped to the package prefixes it
// declares (or to every package via the "*" wildcard). Build partitions units
// into per-prefix buckets while keeping supply order, so earlier units shadow
// later ones. A VirtualLoader binds a namespace to a parent that is consulted
// only for packages no unit claims.
//
// Code units are addressed by dotted names: "com.example.Main" is stored at
// "com/example/Main.sh". Resources are addressed by slash paths.
//
// A Namespace is immutable once built and safe for concurrent lookups.
// Swappable and Namespace.Resources are not used by the extlaunch commands;
// they exist for hosts embedding the loader that add sources after launch or
// merge a resource contributed by several archives.
package loader
