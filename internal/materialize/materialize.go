package materialize

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/extframework/extlaunch/internal/archive"
	"github.com/extframework/extlaunch/internal/descriptor"
	"github.com/extframework/extlaunch/internal/loader"
)

// Unit is an opened archive: a source unit that is also a node handle.
type Unit interface {
	loader.SourceUnit
	loader.ResourceUnit
	archive.Handle
}

// Open opens path as a zip archive or, for a directory, as an unpacked one.
func Open(path string) (Unit, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	if info.IsDir() {
		u, err := loader.OpenDir(path)
		if err != nil {
			return nil, err
		}
		return u, nil
	}
	u, err := loader.OpenZip(path)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// DefaultLimit bounds how many archives are opened at once.
const DefaultLimit = 8

// Materializer opens tree archives concurrently.
type Materializer struct {
	open  func(string) (Unit, error)
	limit int
}

// Option configures a Materializer.
type Option func(*Materializer)

// WithLimit sets the number of archives opened concurrently.
func WithLimit(n int) Option {
	return func(m *Materializer) { m.limit = n }
}

// WithOpener replaces the function used to open archives.
func WithOpener(open func(string) (Unit, error)) Option {
	return func(m *Materializer) { m.open = open }
}

// New returns a Materializer.
func New(opts ...Option) *Materializer {
	m := &Materializer{open: Open, limit: DefaultLimit}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Materialize opens every distinct archive of tree, sets each node's handle,
// and returns the units in tree pre-order. Nodes that already have a handle
// are reused. On error every unit opened by this call is closed.
func (m *Materializer) Materialize(ctx context.Context, tree archive.Tree) ([]loader.SourceUnit, error) {
	nodes := tree.Nodes()
	for _, n := range nodes {
		if n.Handle == nil && n.Source == "" {
			return nil, fmt.Errorf("materializing %s: no source archive", n.Descriptor)
		}
	}
	units := make([]Unit, len(nodes))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.limit)
	for i, n := range nodes {
		if u, ok := n.Handle.(Unit); ok {
			units[i] = u
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			u, err := m.open(n.Source)
			if err != nil {
				return fmt.Errorf("materializing %s: %w", n.Descriptor, err)
			}
			units[i] = u
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for i, u := range units {
			if u != nil && nodes[i].Handle == nil {
				u.Close()
			}
		}
		return nil, err
	}

	opened := make(map[descriptor.Descriptor]Unit, len(nodes))
	out := make([]loader.SourceUnit, len(units))
	for i, u := range units {
		opened[nodes[i].Descriptor] = u
		out[i] = u
	}
	tree.Walk(func(n *archive.Node, _ int) bool {
		if u, ok := opened[n.Descriptor]; ok {
			n.Handle = u
		}
		return true
	})
	return out, nil
}

// Close closes every handle in tree.
func Close(tree archive.Tree) error {
	var first error
	for _, n := range tree.Nodes() {
		if n.Handle == nil {
			continue
		}
		if err := n.Handle.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
