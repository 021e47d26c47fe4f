// Package archive models the resolved dependency tree handed to the launcher
// by the resolution engine. Nodes carry a descriptor, an optional backing
// handle once materialized, and an access tree that is copied through.
package archive
