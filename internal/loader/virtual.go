package loader

import (
	"errors"
	"fmt"
)

// Parent is the fallback namespace of a VirtualLoader.
type Parent interface {
	Lookup(name string) ([]byte, bool, error)
}

// ParentFunc adapts a function to the Parent interface.
type ParentFunc func(name string) ([]byte, bool, error)

// Lookup calls f(name).
func (f ParentFunc) Lookup(name string) ([]byte, bool, error) { return f(name) }

// NotFoundError is returned when a name cannot be resolved.
type NotFoundError struct {
	Name string
	// Claimed is true when units were scoped to the name's package but none
	// provided it. The parent is not consulted in that case.
	Claimed bool
	Err     error
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("%s not found", e.Name)
	if e.Claimed {
		msg += fmt.Sprintf(" (package %q is provided by loaded sources)", PackageOf(e.Name))
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// VirtualLoader resolves names against a composed namespace, falling back to
// a parent only for packages the namespace does not claim.
type VirtualLoader struct {
	ns     *Namespace
	parent Parent
}

// Assemble binds ns to parent. parent may be nil.
func Assemble(ns *Namespace, parent Parent) *VirtualLoader {
	return &VirtualLoader{ns: ns, parent: parent}
}

// Namespace returns the composed namespace.
func (v *VirtualLoader) Namespace() *Namespace { return v.ns }

// Resolve returns the bytes of the named code unit.
func (v *VirtualLoader) Resolve(name string) ([]byte, error) {
	if data, ok := v.ns.Lookup(name); ok {
		return data, nil
	}
	if v.ns.Claims(name) || v.parent == nil {
		return nil, &NotFoundError{Name: name, Claimed: v.ns.Claims(name)}
	}

	data, ok, err := v.parent.Lookup(name)
	if err != nil {
		return nil, &NotFoundError{Name: name, Err: fmt.Errorf("parent lookup: %w", err)}
	}
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return data, nil
}

// Resource returns the first resource at path from the namespace, then from
// the parent if it serves resources.
func (v *VirtualLoader) Resource(path string) ([]byte, bool) {
	if data, ok := v.ns.Resource(path); ok {
		return data, true
	}
	if r, ok := v.parent.(ResourceUnit); ok {
		data, found, err := r.Resource(path)
		if err == nil && found {
			return data, true
		}
	}
	return nil, false
}

// Lookup lets a VirtualLoader act as the parent of another loader.
func (v *VirtualLoader) Lookup(name string) ([]byte, bool, error) {
	data, err := v.Resolve(name)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}
