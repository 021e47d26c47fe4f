package loader

// Scope returns u restricted to the given packages. Resources are still
// served if u serves them.
func Scope(u SourceUnit, packages ...string) SourceUnit {
	return &scoped{SourceUnit: u, packages: packages}
}

type scoped struct {
	SourceUnit
	packages []string
}

func (s *scoped) Packages() []string { return s.packages }

func (s *scoped) Resource(path string) ([]byte, bool, error) {
	if r, ok := s.SourceUnit.(ResourceUnit); ok {
		return r.Resource(path)
	}
	return nil, false, nil
}

func (s *scoped) String() string { return unitName(s.SourceUnit) }

// Delegate exposes a live Parent as a wildcard-scoped unit, for hosts that
// hand the launcher an existing loader instead of a list of sources.
type Delegate struct {
	Name   string
	Parent Parent
}

// Packages returns the wildcard scope.
func (d *Delegate) Packages() []string { return []string{Wildcard} }

// Lookup forwards to the parent.
func (d *Delegate) Lookup(name string) ([]byte, bool, error) { return d.Parent.Lookup(name) }

// Resource forwards to the parent when it serves resources.
func (d *Delegate) Resource(path string) ([]byte, bool, error) {
	if r, ok := d.Parent.(ResourceUnit); ok {
		return r.Resource(path)
	}
	return nil, false, nil
}

func (d *Delegate) String() string { return d.Name }
