package loader

import (
	"sync"
	"sync/atomic"
)

// Swappable holds the current namespace for hosts that add sources after
// launch. Readers always see a complete namespace: additions build a new one
// and swap the reference.
type Swappable struct {
	mu  sync.Mutex // serializes writers
	cur atomic.Pointer[Namespace]
}

// NewSwappable starts from ns.
func NewSwappable(ns *Namespace) *Swappable {
	s := &Swappable{}
	s.cur.Store(ns)
	return s
}

// Load returns the current namespace.
func (s *Swappable) Load() *Namespace { return s.cur.Load() }

// Add appends units after the current ones and publishes the result.
func (s *Swappable) Add(units ...SourceUnit) *Namespace {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.cur.Load()
	next := Build(append(old.Units(), units...), old.opts...)
	s.cur.Store(next)
	return next
}
