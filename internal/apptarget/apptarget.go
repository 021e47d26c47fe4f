package apptarget

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/extframework/extlaunch/internal/loader"
	"github.com/extframework/extlaunch/internal/materialize"
)

// Target supplies the application's source units.
type Target interface {
	Units() []loader.SourceUnit
	Close() error
}

// SplitClasspath splits a list of entries separated by the OS path list
// separator (':' on Unix). Empty entries are dropped.
func SplitClasspath(s string) []string {
	var out []string
	for _, e := range filepath.SplitList(s) {
		if e != "" {
			out = append(out, e)
		}
	}
	return out
}

// Classpath is an application given as a list of archives and directories.
// Each entry only claims the packages it contains.
type Classpath struct {
	units []materialize.Unit
}

// OpenClasspath opens every entry in order.
func OpenClasspath(ctx context.Context, entries []string) (*Classpath, error) {
	cp := &Classpath{}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			cp.Close()
			return nil, err
		}
		u, err := materialize.Open(e)
		if err != nil {
			cp.Close()
			return nil, fmt.Errorf("opening classpath entry %s: %w", e, err)
		}
		cp.units = append(cp.units, u)
	}
	return cp, nil
}

// Units returns one unit per entry, scoped to its own packages.
func (c *Classpath) Units() []loader.SourceUnit {
	out := make([]loader.SourceUnit, len(c.units))
	for i, u := range c.units {
		out[i] = loader.Scope(u, u.Packages()...)
	}
	return out
}

// Close closes every entry.
func (c *Classpath) Close() error {
	var errs []error
	for _, u := range c.units {
		errs = append(errs, u.Close())
	}
	return errors.Join(errs...)
}

// Delegate is an application that already runs under a live loader. The
// loader is consulted for any name no earlier unit claims.
type Delegate struct {
	Name   string
	Parent loader.Parent
}

// Units returns a single wildcard-scoped unit forwarding to the parent.
func (d Delegate) Units() []loader.SourceUnit {
	return []loader.SourceUnit{&loader.Delegate{Name: d.Name, Parent: d.Parent}}
}

// Close is a no-op; the live loader is owned by the host.
func (Delegate) Close() error { return nil }
