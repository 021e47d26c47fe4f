package audit

import (
	"fmt"

	"github.com/extframework/extlaunch/internal/archive"
	"github.com/extframework/extlaunch/internal/descriptor"
	"github.com/extframework/extlaunch/internal/negotiate"
)

// Auditor transforms a tree. Implementations must not mutate their input.
type Auditor interface {
	Audit(tree archive.Tree) (archive.Tree, error)
}

// AuditorFunc adapts a function to the Auditor interface.
type AuditorFunc func(tree archive.Tree) (archive.Tree, error)

// Audit calls f(tree).
func (f AuditorFunc) Audit(tree archive.Tree) (archive.Tree, error) { return f(tree) }

type chain []Auditor

func (c chain) Audit(tree archive.Tree) (archive.Tree, error) {
	var err error
	for _, a := range c {
		tree, err = a.Audit(tree)
		if err != nil {
			return archive.Tree{}, err
		}
	}
	return tree, nil
}

// Chain returns an auditor running each auditor in order, feeding the output
// of one into the next.
func Chain(auditors ...Auditor) Auditor {
	flat := make(chain, 0, len(auditors))
	for _, a := range auditors {
		if nested, ok := a.(chain); ok {
			flat = append(flat, nested...)
			continue
		}
		flat = append(flat, a)
	}
	return flat
}

// ConfigError reports a tree that cannot be audited.
type ConfigError struct {
	Descriptor descriptor.Descriptor
	Reason     string
	Err        error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error for %s: %s: %v", e.Descriptor, e.Reason, e.Err)
	}
	return fmt.Sprintf("configuration error for %s: %s", e.Descriptor, e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// KeySet is the read-only view of the packaged set used by the auditor.
type KeySet interface {
	Contains(key negotiate.Key) bool
}

// Classifier maps descriptors to classification keys. *negotiate.Registry
// implements it.
type Classifier interface {
	Classify(d descriptor.Descriptor) (negotiate.Key, bool, error)
}

// classify wraps registry failures in a ConfigError naming the descriptor.
func classify(reg Classifier, d descriptor.Descriptor) (negotiate.Key, bool, error) {
	key, ok, err := reg.Classify(d)
	if err != nil {
		return "", false, &ConfigError{Descriptor: d, Reason: "cannot classify", Err: err}
	}
	return key, ok, nil
}

// Pipeline returns the standard auditor chain: constraint resolution first,
// packaged-dependency removal last.
func Pipeline(reg Classifier, set KeySet, opts ...PackagedOption) Auditor {
	return Chain(
		&Constraint{Registry: reg},
		NewPackaged(reg, set, opts...),
	)
}
