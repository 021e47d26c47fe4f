// Package packaged loads the set of dependencies already built into the host
// binary. Archives whose classification key is in the set are never loaded
// again at launch.
package packaged
