package home

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/extframework/extlaunch/internal/branding"
)

// Directory names under the installation root.
const (
	ExtensionsDir = "extensions"
	PartitionsDir = "partitions"
	ArchivesDir   = "archives"
)

// DirPerm is the mode installation directories are created with.
const DirPerm os.FileMode = 0o755

// Dirs are the installation-scoped locations artifacts are cached in.
type Dirs struct {
	Root       string
	Extensions string
	Partitions string // always inside Extensions
	Archives   string
}

// Root returns the installation root. It checks EXTFRAMEWORK_HOME first,
// then falls back to ~/.extframework.
func Root() (string, error) {
	if v := os.Getenv(branding.EnvVar("home")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir()), nil
}

// Resolve returns the directories under root, or under Root() when root is
// empty. EXTFRAMEWORK_EXTENSIONS and EXTFRAMEWORK_ARCHIVES override the
// individual directories.
func Resolve(root string) (Dirs, error) {
	if root == "" {
		r, err := Root()
		if err != nil {
			return Dirs{}, err
		}
		root = r
	}

	d := Dirs{Root: root, Archives: filepath.Join(root, ArchivesDir)}
	if v := os.Getenv(branding.EnvVar("archives")); v != "" {
		d.Archives = v
	}
	ext := filepath.Join(root, ExtensionsDir)
	if v := os.Getenv(branding.EnvVar("extensions")); v != "" {
		ext = v
	}
	return d.WithExtensions(ext), nil
}

// WithExtensions returns d with the extension directory, and the partition
// directory inside it, moved to dir.
func (d Dirs) WithExtensions(dir string) Dirs {
	d.Extensions = dir
	d.Partitions = filepath.Join(dir, PartitionsDir)
	return d
}

// Ensure creates every directory in d.
func (d Dirs) Ensure() error {
	for _, dir := range []string{d.Extensions, d.Partitions, d.Archives} {
		if err := os.MkdirAll(dir, DirPerm); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}
