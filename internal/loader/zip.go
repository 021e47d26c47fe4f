package loader

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zip"
)

// ZipUnit serves code units and resources from a zip archive.
type ZipUnit struct {
	path     string
	rc       *zip.ReadCloser
	entries  map[string]*zip.File
	packages []string
}

// OpenZip opens the archive at path and indexes its entries.
func OpenZip(path string) (*ZipUnit, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", path, err)
	}

	u := &ZipUnit{
		path:    path,
		rc:      rc,
		entries: make(map[string]*zip.File, len(rc.File)),
	}
	set := make(map[string]bool)
	for _, f := range rc.File {
		if f.FileInfo().IsDir() {
			continue
		}
		u.entries[f.Name] = f
		if pkg, ok := packageOfEntry(f.Name); ok {
			set[pkg] = true
		}
	}
	u.packages = sortedPackages(set)
	return u, nil
}

// Packages returns the packages containing at least one code unit.
func (u *ZipUnit) Packages() []string { return u.packages }

// Lookup reads the named code unit.
func (u *ZipUnit) Lookup(name string) ([]byte, bool, error) {
	return u.Resource(EntryPath(name))
}

// Resource reads the entry at path.
func (u *ZipUnit) Resource(path string) ([]byte, bool, error) {
	f, ok := u.entries[path]
	if !ok {
		return nil, false, nil
	}
	r, err := f.Open()
	if err != nil {
		return nil, false, fmt.Errorf("opening %s in %s: %w", path, u.path, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, false, fmt.Errorf("reading %s in %s: %w", path, u.path, err)
	}
	return data, true, nil
}

// Path returns the archive location.
func (u *ZipUnit) Path() string { return u.path }

// Close releases the archive.
func (u *ZipUnit) Close() error { return u.rc.Close() }

func (u *ZipUnit) String() string { return u.path }
