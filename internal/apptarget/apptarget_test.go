package apptarget

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/extframework/extlaunch/internal/loader"
)

func TestSplitClasspath(t *testing.T) {
	sep := string(filepath.ListSeparator)
	got := SplitClasspath("a" + sep + sep + "b.zip")
	if want := []string{"a", "b.zip"}; !reflect.DeepEqual(got, want) {
		t.Errorf("SplitClasspath = %v, want %v", got, want)
	}
	if got := SplitClasspath(""); len(got) != 0 {
		t.Errorf("SplitClasspath(\"\") = %v, want empty", got)
	}
}

func TestClasspathUnits(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "com", "example", "Main.sh")
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte("echo main"), 0o644); err != nil {
		t.Fatal(err)
	}

	cp, err := OpenClasspath(context.Background(), []string{dir})
	if err != nil {
		t.Fatalf("OpenClasspath: %v", err)
	}
	defer cp.Close()

	units := cp.Units()
	if len(units) != 1 {
		t.Fatalf("len(Units) = %d, want 1", len(units))
	}
	if got := units[0].Packages(); !reflect.DeepEqual(got, []string{"com.example"}) {
		t.Errorf("Packages = %v, want [com.example]", got)
	}

	ns := loader.Build(units)
	if _, ok := ns.Lookup("com.example.Main"); !ok {
		t.Error("com.example.Main not found through the classpath unit")
	}
}

func TestOpenClasspathMissingEntry(t *testing.T) {
	if _, err := OpenClasspath(context.Background(), []string{filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Fatal("expected error for a missing entry")
	}
}

func TestDelegateUnits(t *testing.T) {
	parent := loader.ParentFunc(func(name string) ([]byte, bool, error) {
		if name == "any.pkg.Thing" {
			return []byte("thing"), true, nil
		}
		return nil, false, nil
	})

	units := Delegate{Name: "host", Parent: parent}.Units()
	if len(units) != 1 || !reflect.DeepEqual(units[0].Packages(), []string{loader.Wildcard}) {
		t.Fatalf("Units = %v, want one wildcard unit", units)
	}

	ns := loader.Build(units)
	if data, ok := ns.Lookup("any.pkg.Thing"); !ok || string(data) != "thing" {
		t.Errorf("Lookup = %q, %v", data, ok)
	}
}
