package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// FSUnit serves code units and resources from an fs.FS.
type FSUnit struct {
	name     string
	fsys     fs.FS
	packages []string
}

// NewFSUnit scans fsys for code units and scopes the unit to the packages
// found.
func NewFSUnit(name string, fsys fs.FS) (*FSUnit, error) {
	set := make(map[string]bool)
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if pkg, ok := packageOfEntry(p); ok {
			set[pkg] = true
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", name, err)
	}

	return &FSUnit{name: name, fsys: fsys, packages: sortedPackages(set)}, nil
}

// OpenDir returns a unit backed by the directory at path.
func OpenDir(path string) (*FSUnit, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", path)
	}
	return NewFSUnit(path, os.DirFS(path))
}

// Packages returns the packages containing at least one code unit.
func (u *FSUnit) Packages() []string { return u.packages }

// Lookup reads the named code unit.
func (u *FSUnit) Lookup(name string) ([]byte, bool, error) {
	return u.Resource(EntryPath(name))
}

// Resource reads the file at path.
func (u *FSUnit) Resource(path string) ([]byte, bool, error) {
	if !fs.ValidPath(path) {
		return nil, false, nil
	}
	data, err := fs.ReadFile(u.fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading %s from %s: %w", path, u.name, err)
	}
	return data, true, nil
}

func (u *FSUnit) String() string { return u.name }

// Path returns the name the unit was opened with; for OpenDir, the directory.
func (u *FSUnit) Path() string { return u.name }

// Close is a no-op; directory units hold no open files.
func (u *FSUnit) Close() error { return nil }
