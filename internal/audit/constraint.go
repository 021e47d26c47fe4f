package audit

import (
	"github.com/Masterminds/semver/v3"

	"github.com/extframework/extlaunch/internal/archive"
	"github.com/extframework/extlaunch/internal/descriptor"
	"github.com/extframework/extlaunch/internal/negotiate"
)

// Constraint settles version conflicts: for every classification key only one
// version survives. The highest semantic version wins; when either version is
// not a semantic version, the one seen first in pre-order is kept. The root
// is pinned and always wins for its own key.
//
// Every occurrence of a losing version is replaced with a copy of the winning
// node and its subtree. Nodes of unknown kinds are left alone.
type Constraint struct {
	Registry Classifier
}

// Audit returns a copy of tree with one version per key.
func (c *Constraint) Audit(tree archive.Tree) (archive.Tree, error) {
	if tree.Root == nil {
		return tree, nil
	}

	chosen, err := c.choose(tree)
	if err != nil {
		return archive.Tree{}, err
	}

	onPath := make(map[negotiate.Key]bool)
	root, err := c.rebuild(tree.Root, chosen, onPath)
	if err != nil {
		return archive.Tree{}, err
	}
	return archive.Tree{Root: root}, nil
}

func (c *Constraint) choose(tree archive.Tree) (map[negotiate.Key]*archive.Node, error) {
	chosen := make(map[negotiate.Key]*archive.Node)

	rootKey, rootOK, err := classify(c.Registry, tree.Root.Descriptor)
	if err != nil {
		return nil, err
	}
	if rootOK {
		chosen[rootKey] = tree.Root
	}

	var walkErr error
	tree.Walk(func(n *archive.Node, depth int) bool {
		if depth == 0 {
			return true
		}
		key, ok, err := classify(c.Registry, n.Descriptor)
		if err != nil {
			walkErr = err
			return false
		}
		if !ok {
			return true
		}
		current, seen := chosen[key]
		switch {
		case !seen:
			chosen[key] = n
		case rootOK && key == rootKey:
			// pinned
		case newer(n.Descriptor, current.Descriptor):
			chosen[key] = n
		}
		return true
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return chosen, nil
}

func (c *Constraint) rebuild(n *archive.Node, chosen map[negotiate.Key]*archive.Node, onPath map[negotiate.Key]bool) (*archive.Node, error) {
	key, ok, err := classify(c.Registry, n.Descriptor)
	if err != nil {
		return nil, err
	}
	if ok {
		if onPath[key] {
			// The dependency loops back onto one of its own ancestors.
			return nil, nil
		}
		if winner := chosen[key]; winner != nil {
			n = winner
		}
		onPath[key] = true
		defer delete(onPath, key)
	}

	out := shallowCopy(n)
	for _, child := range n.Children {
		rc, err := c.rebuild(child, chosen, onPath)
		if err != nil {
			return nil, err
		}
		if rc != nil {
			out.Children = append(out.Children, rc)
		}
	}
	return out, nil
}

// newer reports whether a has a strictly higher semantic version than b.
func newer(a, b descriptor.Descriptor) bool {
	va, err := semver.NewVersion(a.Version)
	if err != nil {
		return false
	}
	vb, err := semver.NewVersion(b.Version)
	if err != nil {
		return false
	}
	return va.GreaterThan(vb)
}
