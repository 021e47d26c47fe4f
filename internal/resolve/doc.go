// Package resolve turns a requested descriptor and a repository into an
// archive.Tree.
//
// Each artifact may carry a YAML metadata file beside its archive
// (<artifact>-<version>.yaml) naming its partitions and dependencies:
//
//	partitions:
//	  - name: main
//	dependencies:
//	  - id: com.example:lib:1.0
//	  - id: dev.ext:base:2.0
//	    kind: extension
//
// Metadata is validated against an embedded JSON schema before use. An
// artifact without metadata is a leaf.
package resolve
