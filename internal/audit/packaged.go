package audit

import (
	"github.com/charmbracelet/log"

	"github.com/extframework/extlaunch/internal/archive"
	"github.com/extframework/extlaunch/internal/descriptor"
)

// Packaged removes every non-root node whose classification key is in the
// packaged set, together with its subtree. Dependencies of a packaged module
// are assumed to be satisfied by the host as well.
type Packaged struct {
	registry Classifier
	set      KeySet
	logger   *log.Logger
	onPrune  func(descriptor.Descriptor)
}

// PackagedOption configures a Packaged auditor.
type PackagedOption func(*Packaged)

// WithLogger logs each pruned subtree at debug level.
func WithLogger(l *log.Logger) PackagedOption {
	return func(p *Packaged) { p.logger = l }
}

// OnPrune registers a callback invoked with the root of every pruned subtree.
func OnPrune(fn func(descriptor.Descriptor)) PackagedOption {
	return func(p *Packaged) { p.onPrune = fn }
}

// NewPackaged creates the packaged-dependency auditor.
func NewPackaged(reg Classifier, set KeySet, opts ...PackagedOption) *Packaged {
	p := &Packaged{registry: reg, set: set}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Audit returns a pruned copy of tree. A root whose key is packaged is a
// configuration error: the caller asked to load something the host already has.
func (p *Packaged) Audit(tree archive.Tree) (archive.Tree, error) {
	root := tree.Root
	if root == nil {
		return tree, nil
	}

	key, ok, err := classify(p.registry, root.Descriptor)
	if err != nil {
		return archive.Tree{}, err
	}
	if ok && p.set.Contains(key) {
		return archive.Tree{}, &ConfigError{
			Descriptor: root.Descriptor,
			Reason:     "requested root is already packaged with the host",
		}
	}

	out, err := p.copyChildren(root)
	if err != nil {
		return archive.Tree{}, err
	}
	return archive.Tree{Root: out}, nil
}

// copyChildren returns a shallow copy of n whose children are audited.
func (p *Packaged) copyChildren(n *archive.Node) (*archive.Node, error) {
	c := shallowCopy(n)
	for _, child := range n.Children {
		kept, err := p.auditNode(child)
		if err != nil {
			return nil, err
		}
		if kept != nil {
			c.Children = append(c.Children, kept)
		}
	}
	return c, nil
}

func (p *Packaged) auditNode(n *archive.Node) (*archive.Node, error) {
	key, ok, err := classify(p.registry, n.Descriptor)
	if err != nil {
		return nil, err
	}
	if ok && p.set.Contains(key) {
		if p.logger != nil {
			p.logger.Debug("pruned packaged dependency", "descriptor", n.Descriptor, "key", key)
		}
		if p.onPrune != nil {
			p.onPrune(n.Descriptor)
		}
		return nil, nil
	}
	return p.copyChildren(n)
}

func shallowCopy(n *archive.Node) *archive.Node {
	return &archive.Node{
		Descriptor: n.Descriptor,
		Handle:     n.Handle,
		Access:     n.Access,
		Source:     n.Source,
		Metadata:   n.Metadata,
	}
}
