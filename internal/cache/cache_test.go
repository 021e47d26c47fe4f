package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/extframework/extlaunch/internal/archive"
	"github.com/extframework/extlaunch/internal/descriptor"
	"github.com/extframework/extlaunch/internal/home"
)

func testDirs(t *testing.T) home.Dirs {
	t.Helper()
	root := t.TempDir()
	return home.Dirs{Root: root, Archives: filepath.Join(root, "archives")}.WithExtensions(filepath.Join(root, "extensions"))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLayoutRoutesKinds(t *testing.T) {
	dirs := testDirs(t)
	l := NewLayout(dirs)
	ext := descriptor.MustParse(descriptor.KindExtension, "dev.ext:tweaks:1.0")

	tests := []struct {
		d    descriptor.Descriptor
		root string
	}{
		{ext, dirs.Extensions},
		{descriptor.Partition(ext, "main"), dirs.Partitions},
		{descriptor.MustParse(descriptor.KindMaven, "com.example:lib:1.0"), dirs.Archives},
	}
	for _, tt := range tests {
		p, err := l.PathFor(tt.d, "", "zip")
		if err != nil {
			t.Fatalf("PathFor(%s): %v", tt.d, err)
		}
		if !strings.HasPrefix(p, tt.root+string(filepath.Separator)) {
			t.Errorf("PathFor(%s) = %q, want it under %q", tt.d, p, tt.root)
		}
	}
}

func TestStore(t *testing.T) {
	dirs := testDirs(t)
	src := t.TempDir()
	libZip := filepath.Join(src, "lib.zip")
	writeFile(t, libZip, "zipdata")
	extDir := filepath.Join(src, "ext")
	writeFile(t, filepath.Join(extDir, "dev", "ext", "Main.sh"), "echo hi")

	ext := descriptor.MustParse(descriptor.KindExtension, "dev.ext:tweaks:1.0")
	lib := descriptor.MustParse(descriptor.KindMaven, "com.example:lib:1.0")
	tree := archive.Tree{Root: &archive.Node{
		Descriptor: ext,
		Source:     extDir,
		Children:   []*archive.Node{{Descriptor: lib, Source: libZip}},
	}}

	c := New(NewLayout(dirs), nil)
	out, err := c.Store(context.Background(), tree)
	if err != nil {
		t.Fatalf("Store: %v", err)
	}

	if tree.Root.Source != extDir {
		t.Error("Store modified the input tree")
	}
	if !strings.HasPrefix(out.Root.Source, dirs.Extensions) {
		t.Errorf("root Source = %q, want it under %q", out.Root.Source, dirs.Extensions)
	}
	data, err := os.ReadFile(filepath.Join(out.Root.Source, "dev", "ext", "Main.sh"))
	if err != nil || string(data) != "echo hi" {
		t.Errorf("cached directory content = %q, %v", data, err)
	}
	libOut := out.Root.Children[0].Source
	if !strings.HasPrefix(libOut, dirs.Archives) || filepath.Ext(libOut) != ".zip" {
		t.Errorf("library Source = %q, want a zip under %q", libOut, dirs.Archives)
	}

	p, ok, err := c.Path(lib)
	if err != nil || !ok || p != libOut {
		t.Errorf("Path(%s) = %q, %v, %v; want %q, true, nil", lib, p, ok, err, libOut)
	}
}

func TestStoreReusesCachedArchive(t *testing.T) {
	dirs := testDirs(t)
	lib := descriptor.MustParse(descriptor.KindMaven, "com.example:lib:1.0")
	c := New(NewLayout(dirs), nil)

	cachedPath, _, err := c.Path(lib)
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, cachedPath, "old")

	src := filepath.Join(t.TempDir(), "lib.zip")
	writeFile(t, src, "new")

	tree := archive.Tree{Root: &archive.Node{Descriptor: lib, Source: src}}
	if _, err := c.Store(context.Background(), tree); err != nil {
		t.Fatalf("Store: %v", err)
	}
	data, _ := os.ReadFile(cachedPath)
	if string(data) != "old" {
		t.Errorf("cached content = %q, want %q", data, "old")
	}
}

func TestStoreMissingSource(t *testing.T) {
	c := New(NewLayout(testDirs(t)), nil)
	tree := archive.Tree{Root: &archive.Node{
		Descriptor: descriptor.MustParse(descriptor.KindMaven, "g:a:1"),
		Source:     filepath.Join(t.TempDir(), "missing.zip"),
	}}
	if _, err := c.Store(context.Background(), tree); err == nil {
		t.Fatal("expected error for a missing source")
	}
}

func TestStoreCanceled(t *testing.T) {
	c := New(NewLayout(testDirs(t)), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tree := archive.Tree{Root: &archive.Node{Descriptor: descriptor.MustParse(descriptor.KindMaven, "g:a:1"), Source: "x"}}
	if _, err := c.Store(ctx, tree); err != context.Canceled {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestStoreRelocatesMetadata(t *testing.T) {
	dirs := testDirs(t)
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "custom", "ext.zip"), "zipdata")
	meta := filepath.Join(src, "tweaks-1.0.yaml")
	writeFile(t, meta, "archive: custom/ext.zip\ndependencies:\n  - id: com.example:lib:1.0\n")

	ext := descriptor.MustParse(descriptor.KindExtension, "dev.ext:tweaks:1.0")
	tree := archive.Tree{Root: &archive.Node{
		Descriptor: ext,
		Source:     filepath.Join(src, "custom", "ext.zip"),
		Metadata:   meta,
	}}

	c := New(NewLayout(dirs), nil)
	if _, err := c.Store(context.Background(), tree); err != nil {
		t.Fatalf("Store: %v", err)
	}

	cachedMeta, err := NewLayout(dirs).PathFor(ext, "", "yaml")
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(cachedMeta)
	if err != nil {
		t.Fatalf("reading cached metadata: %v", err)
	}
	if strings.Contains(string(data), "archive:") {
		t.Errorf("cached metadata keeps the source archive location:\n%s", data)
	}
	if !strings.Contains(string(data), "com.example:lib:1.0") {
		t.Errorf("cached metadata lost its dependencies:\n%s", data)
	}
}
