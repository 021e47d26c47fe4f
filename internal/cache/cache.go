package cache

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/extframework/extlaunch/internal/archive"
	"github.com/extframework/extlaunch/internal/descriptor"
	"github.com/extframework/extlaunch/internal/home"
	"github.com/extframework/extlaunch/internal/layout"
	"github.com/extframework/extlaunch/internal/resolve"
)

// ArchiveType is the extension of packed archives. Unpacked archives are
// cached as a directory at the same path without it.
const ArchiveType = "zip"

// Layout routes each artifact kind into its installation directory:
// extensions, partitions and libraries are kept apart.
type Layout struct {
	Extensions layout.PathRule
	Partitions layout.PathRule
	Archives   layout.PathRule
}

// NewLayout returns the default Maven layout rooted in dirs.
func NewLayout(dirs home.Dirs) Layout {
	return Layout{
		Extensions: layout.Override{Root: dirs.Extensions, Base: layout.Maven{}},
		Partitions: layout.Override{Root: dirs.Partitions, Base: layout.Maven{}},
		Archives:   layout.Override{Root: dirs.Archives, Base: layout.Maven{}},
	}
}

// PathFor implements layout.PathRule.
func (l Layout) PathFor(d descriptor.Descriptor, classifier, typ string) (string, error) {
	switch d.Kind {
	case descriptor.KindExtension:
		return l.Extensions.PathFor(d, classifier, typ)
	case descriptor.KindPartition:
		return l.Partitions.PathFor(d, classifier, typ)
	default:
		return l.Archives.PathFor(d, classifier, typ)
	}
}

// Cache stores archives under a layout.
type Cache struct {
	rule   layout.PathRule
	logger *log.Logger
}

// New returns a cache placing archives with rule.
func New(rule layout.PathRule, logger *log.Logger) *Cache {
	if logger == nil {
		logger = log.Default()
	}
	return &Cache{rule: rule, logger: logger}
}

// Store copies every archive of tree into the cache and returns a copy of
// the tree whose sources point at the cached files. Archives already cached
// are reused.
func (c *Cache) Store(ctx context.Context, tree archive.Tree) (archive.Tree, error) {
	out := tree.Clone()
	cached := make(map[descriptor.Descriptor]string)

	for _, n := range out.Nodes() {
		if err := ctx.Err(); err != nil {
			return archive.Tree{}, err
		}
		dst, err := c.store(n)
		if err != nil {
			return archive.Tree{}, err
		}
		cached[n.Descriptor] = dst
	}

	out.Walk(func(n *archive.Node, _ int) bool {
		n.Source = cached[n.Descriptor]
		return true
	})
	return out, nil
}

// Path returns where d is cached, packed or unpacked, and whether it exists.
func (c *Cache) Path(d descriptor.Descriptor) (string, bool, error) {
	p, err := c.rule.PathFor(d, "", ArchiveType)
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(p); err == nil && !info.IsDir() {
		return p, true, nil
	}
	dir := strings.TrimSuffix(p, "."+ArchiveType)
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return dir, true, nil
	}
	return p, false, nil
}

func (c *Cache) store(n *archive.Node) (string, error) {
	if n.Source == "" {
		return "", fmt.Errorf("caching %s: no source archive", n.Descriptor)
	}
	info, err := os.Stat(n.Source)
	if err != nil {
		return "", fmt.Errorf("caching %s: %w", n.Descriptor, err)
	}

	dst, err := c.rule.PathFor(n.Descriptor, "", ArchiveType)
	if err != nil {
		return "", fmt.Errorf("caching %s: %w", n.Descriptor, err)
	}
	if info.IsDir() {
		dst = strings.TrimSuffix(dst, "."+ArchiveType)
	}

	if err := c.storeMetadata(n); err != nil {
		return "", err
	}
	if filepath.Clean(n.Source) == filepath.Clean(dst) {
		return dst, nil
	}
	if _, err := os.Stat(dst); err == nil {
		c.logger.Debug("reusing cached archive", "artifact", n.Descriptor, "path", dst)
		return dst, nil
	}

	if err := os.MkdirAll(filepath.Dir(dst), home.DirPerm); err != nil {
		return "", fmt.Errorf("creating %s: %w", filepath.Dir(dst), err)
	}
	if info.IsDir() {
		err = copyDir(n.Source, dst)
	} else {
		err = copyFile(n.Source, dst)
	}
	if err != nil {
		// Leave no partial entry behind to be mistaken for a cached archive.
		_ = os.RemoveAll(dst)
		return "", fmt.Errorf("copying %s to %s: %w", n.Source, dst, err)
	}
	c.logger.Debug("cached archive", "artifact", n.Descriptor, "path", dst)
	return dst, nil
}

// storeMetadata writes n's metadata beside the cached archive, without the
// archive locations that only made sense in the source repository.
func (c *Cache) storeMetadata(n *archive.Node) error {
	if n.Metadata == "" {
		return nil
	}
	dst, err := c.rule.PathFor(n.Descriptor, "", resolve.MetadataType)
	if err != nil {
		return fmt.Errorf("caching metadata of %s: %w", n.Descriptor, err)
	}
	if filepath.Clean(n.Metadata) == filepath.Clean(dst) {
		return nil
	}
	if _, err := os.Stat(dst); err == nil {
		return nil
	}

	raw, err := os.ReadFile(n.Metadata)
	if err != nil {
		return fmt.Errorf("caching metadata of %s: %w", n.Descriptor, err)
	}
	m, err := resolve.ParseMetadata(raw, n.Metadata)
	if err != nil {
		return err
	}
	data, err := m.Relocated().Marshal()
	if err != nil {
		return fmt.Errorf("encoding metadata of %s: %w", n.Descriptor, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), home.DirPerm); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(dst), err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("caching metadata of %s: %w", n.Descriptor, err)
	}
	return nil
}

// copyDir recursively copies src to dst. Symlinks and special files are
// skipped.
func copyDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		switch {
		case entry.IsDir():
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
		case entry.Type().IsRegular():
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
	}
	return nil
}

// copyFile copies a single file from src to dst, preserving permissions.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
