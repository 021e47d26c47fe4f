package negotiate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/extframework/extlaunch/internal/descriptor"
)

// Key identifies a logical dependency regardless of which version satisfied it.
type Key string

// Negotiator classifies descriptors of one kind.
type Negotiator interface {
	Classify(d descriptor.Descriptor) (Key, error)
}

// NegotiatorFunc adapts a function to the Negotiator interface.
type NegotiatorFunc func(d descriptor.Descriptor) (Key, error)

// Classify calls f(d).
func (f NegotiatorFunc) Classify(d descriptor.Descriptor) (Key, error) { return f(d) }

// Maven classifies maven-style descriptors by group and artifact.
type Maven struct{}

// Classify returns "group:artifact".
func (Maven) Classify(d descriptor.Descriptor) (Key, error) {
	if d.Group == "" || d.Artifact == "" {
		return "", fmt.Errorf("malformed descriptor %s: group and artifact are required", d)
	}
	return Key(d.Group + ":" + d.Artifact), nil
}

// AmbiguousError is returned when more than one negotiator applies to a kind.
type AmbiguousError struct {
	Kind  descriptor.Kind
	Count int
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous classification: %d negotiators registered for kind %q", e.Count, e.Kind)
}

// Registry holds negotiators keyed by descriptor kind. It is populated during
// startup and only read afterwards.
type Registry struct {
	byKind map[descriptor.Kind][]Negotiator
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byKind: make(map[descriptor.Kind][]Negotiator)}
}

// Default returns a registry with the Maven negotiator registered for
// maven descriptors.
func Default() *Registry {
	r := NewRegistry()
	r.Register(descriptor.KindMaven, Maven{})
	return r
}

// Register adds n for kind. Registering a second negotiator for the same kind
// is allowed, but classifying a descriptor of that kind then fails.
func (r *Registry) Register(kind descriptor.Kind, n Negotiator) {
	r.byKind[kind] = append(r.byKind[kind], n)
}

// Classify returns the key for d. The boolean is false when no negotiator
// handles d's kind; such descriptors are not comparable.
func (r *Registry) Classify(d descriptor.Descriptor) (Key, bool, error) {
	ns := r.byKind[d.Kind]
	switch len(ns) {
	case 0:
		return "", false, nil
	case 1:
		key, err := ns[0].Classify(d)
		if err != nil {
			return "", false, err
		}
		return key, true, nil
	default:
		return "", false, &AmbiguousError{Kind: d.Kind, Count: len(ns)}
	}
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []descriptor.Kind {
	kinds := make([]descriptor.Kind, 0, len(r.byKind))
	for k := range r.byKind {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool {
		return strings.Compare(string(kinds[i]), string(kinds[j])) < 0
	})
	return kinds
}
