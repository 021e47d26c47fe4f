//go:build integration

package integration_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"

	"github.com/extframework/extlaunch/internal/home"
	"github.com/extframework/extlaunch/internal/launch"
	"github.com/extframework/extlaunch/internal/negotiate"
	"github.com/extframework/extlaunch/internal/packaged"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir string // EXTFRAMEWORK_HOME: extensions/ and archives/ caches
	RepoDir string // a local repository laid out by the Maven rule
	AppDir  string // the application being launched
	WorkDir string // working directory of the launched code
}

// setupTestEnv creates isolated temp directories and points the
// installation environment variables at them.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir: t.TempDir(),
		RepoDir: t.TempDir(),
		AppDir:  t.TempDir(),
		WorkDir: t.TempDir(),
	}
	t.Setenv("EXTFRAMEWORK_HOME", env.HomeDir)
	t.Setenv("EXTFRAMEWORK_EXTENSIONS", "")
	t.Setenv("EXTFRAMEWORK_ARCHIVES", "")
	return env
}

// newLauncher returns a launcher using the built-in packaged list and the
// test home, writing the launched code's output to out.
func newLauncher(t *testing.T, out *bytes.Buffer) *launch.Launcher {
	t.Helper()

	reg := negotiate.Default()
	set, err := packaged.Embedded(reg)
	if err != nil {
		t.Fatalf("loading packaged list: %v", err)
	}
	dirs, err := home.Resolve("")
	if err != nil {
		t.Fatalf("resolving home: %v", err)
	}
	return &launch.Launcher{
		Registry: reg,
		Packaged: set,
		Dirs:     dirs,
		Stdin:    strings.NewReader(""),
		Stdout:   out,
		Stderr:   out,
	}
}

// writeZip creates a zip archive at path holding files.
func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("adding %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing %s: %v", path, err)
	}
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}
