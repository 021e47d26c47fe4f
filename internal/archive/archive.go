package archive

import (
	"github.com/extframework/extlaunch/internal/descriptor"
)

// Handle is a materialized archive.
type Handle interface {
	// Path is the on-disk location the archive was opened from.
	Path() string
	Close() error
}

// AccessTree declares which descriptors a node may link against.
type AccessTree struct {
	Descriptor descriptor.Descriptor
	Targets    []descriptor.Descriptor
}

// Node is one archive in a resolved tree.
type Node struct {
	Descriptor descriptor.Descriptor
	Handle     Handle // nil until materialized
	Access     AccessTree
	Children   []*Node

	// Source is the location the resolver found the archive at, if any.
	Source string
	// Metadata is the metadata file the node was resolved from, if any.
	Metadata string
}

// Tree is the resolved graph for one root request.
type Tree struct {
	Root *Node
}

// Walk visits every node in pre-order. Returning false from fn skips the
// node's children.
func (t Tree) Walk(fn func(n *Node, depth int) bool) {
	walk(t.Root, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) bool) {
	if n == nil {
		return
	}
	if !fn(n, depth) {
		return
	}
	for _, child := range n.Children {
		walk(child, depth+1, fn)
	}
}

// Clone returns a deep copy of the tree structure. Handles are shared.
func (t Tree) Clone() Tree {
	return Tree{Root: t.Root.Clone()}
}

// Clone returns a deep copy of n and its subtree.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		Descriptor: n.Descriptor,
		Handle:     n.Handle,
		Source:     n.Source,
		Metadata:   n.Metadata,
		Access: AccessTree{
			Descriptor: n.Access.Descriptor,
			Targets:    append([]descriptor.Descriptor(nil), n.Access.Targets...),
		},
	}
	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}

// Descriptors returns every descriptor in the tree in pre-order, each once.
func (t Tree) Descriptors() []descriptor.Descriptor {
	seen := make(map[descriptor.Descriptor]bool)
	var out []descriptor.Descriptor
	t.Walk(func(n *Node, _ int) bool {
		if !seen[n.Descriptor] {
			seen[n.Descriptor] = true
			out = append(out, n.Descriptor)
		}
		return true
	})
	return out
}

// Nodes returns every node in pre-order, skipping repeated descriptors.
func (t Tree) Nodes() []*Node {
	seen := make(map[descriptor.Descriptor]bool)
	var out []*Node
	t.Walk(func(n *Node, _ int) bool {
		if seen[n.Descriptor] {
			return false
		}
		seen[n.Descriptor] = true
		out = append(out, n)
		return true
	})
	return out
}

// Contains reports whether d appears anywhere in the tree.
func (t Tree) Contains(d descriptor.Descriptor) bool {
	found := false
	t.Walk(func(n *Node, _ int) bool {
		if n.Descriptor == d {
			found = true
		}
		return !found
	})
	return found
}

// Len returns the number of nodes, counting repeated descriptors.
func (t Tree) Len() int {
	count := 0
	t.Walk(func(*Node, int) bool {
		count++
		return true
	})
	return count
}
