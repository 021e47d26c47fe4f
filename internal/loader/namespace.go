package loader

import (
	"sync"

	"github.com/charmbracelet/log"
)

// Namespace is an ordered, prefix-routed aggregation of source units.
type Namespace struct {
	units     []SourceUnit
	buckets   map[string][]SourceUnit
	wildcard  []SourceUnit
	resources []ResourceUnit
	logger    *log.Logger
	opts      []Option

	hits sync.Map // name -> []byte
}

// Option configures a Namespace.
type Option func(*Namespace)

// WithLogger sets the logger used to report failing units.
func WithLogger(l *log.Logger) Option {
	return func(ns *Namespace) { ns.logger = l }
}

// Build composes units in the order given. The order is never changed:
// for any name, earlier units shadow later ones.
func Build(units []SourceUnit, opts ...Option) *Namespace {
	ns := &Namespace{
		units:   append([]SourceUnit(nil), units...),
		buckets: make(map[string][]SourceUnit),
		opts:    opts,
	}
	for _, opt := range opts {
		opt(ns)
	}
	if ns.logger == nil {
		ns.logger = log.Default()
	}

	for _, u := range ns.units {
		seen := make(map[string]bool)
		for _, p := range u.Packages() {
			if seen[p] {
				continue
			}
			seen[p] = true
			if p == Wildcard {
				ns.wildcard = append(ns.wildcard, u)
				continue
			}
			ns.buckets[p] = append(ns.buckets[p], u)
		}
		if r, ok := u.(ResourceUnit); ok {
			ns.resources = append(ns.resources, r)
		}
	}
	return ns
}

// Lookup returns the bytes of the named code unit from the first unit that
// provides it: units scoped to the name's package first, wildcard units
// after. A unit that fails is logged and skipped. The returned slice is
// shared and must not be modified.
func (ns *Namespace) Lookup(name string) ([]byte, bool) {
	if v, ok := ns.hits.Load(name); ok {
		return v.([]byte), true
	}

	if data, ok := ns.search(ns.buckets[PackageOf(name)], name); ok {
		ns.hits.Store(name, data)
		return data, true
	}
	if data, ok := ns.search(ns.wildcard, name); ok {
		ns.hits.Store(name, data)
		return data, true
	}
	return nil, false
}

func (ns *Namespace) search(units []SourceUnit, name string) ([]byte, bool) {
	for _, u := range units {
		data, ok, err := u.Lookup(name)
		if err != nil {
			ns.logger.Warn("source lookup failed", "unit", unitName(u), "name", name, "err", err)
			continue
		}
		if ok {
			return data, true
		}
	}
	return nil, false
}

// Claims reports whether at least one unit is scoped to the package of name.
// Wildcard units do not claim packages.
func (ns *Namespace) Claims(name string) bool {
	return len(ns.buckets[PackageOf(name)]) > 0
}

// Resource returns the first resource at path, in supply order.
func (ns *Namespace) Resource(path string) ([]byte, bool) {
	for _, r := range ns.resources {
		data, ok, err := r.Resource(path)
		if err != nil {
			ns.logger.Warn("resource lookup failed", "unit", unitName(r), "path", path, "err", err)
			continue
		}
		if ok {
			return data, true
		}
	}
	return nil, false
}

// Resources returns every resource at path, in supply order.
func (ns *Namespace) Resources(path string) [][]byte {
	var out [][]byte
	for _, r := range ns.resources {
		data, ok, err := r.Resource(path)
		if err != nil {
			ns.logger.Warn("resource lookup failed", "unit", unitName(r), "path", path, "err", err)
			continue
		}
		if ok {
			out = append(out, data)
		}
	}
	return out
}

// Units returns the composed units in supply order.
func (ns *Namespace) Units() []SourceUnit {
	return append([]SourceUnit(nil), ns.units...)
}

// Packages returns every concrete package prefix claimed by some unit.
func (ns *Namespace) Packages() []string {
	set := make(map[string]bool, len(ns.buckets))
	for p := range ns.buckets {
		set[p] = true
	}
	return sortedPackages(set)
}

// AsParent adapts the namespace for use as a VirtualLoader parent.
func (ns *Namespace) AsParent() Parent {
	return ParentFunc(func(name string) ([]byte, bool, error) {
		data, ok := ns.Lookup(name)
		return data, ok, nil
	})
}
