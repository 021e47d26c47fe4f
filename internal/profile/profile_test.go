package profile

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "launch.toml")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad(t *testing.T) {
	path := writeProfile(t, `
main_class = "com.example.Main"
classpath = ["app", "/abs/lib.zip"]
args = ["--verbose", "x"]
version = "extframework-1.0"

[[extensions]]
descriptor = "dev.ext:tweaks:1.0"
repository = "local@repo"

[[extensions]]
descriptor = "dev.ext:other:2.0"
repository = "default@https://repo.example.com"
`)
	dir := filepath.Dir(path)

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.MainClass != "com.example.Main" {
		t.Errorf("MainClass = %q, want %q", p.MainClass, "com.example.Main")
	}
	if want := []string{filepath.Join(dir, "app"), "/abs/lib.zip"}; !reflect.DeepEqual(p.Classpath, want) {
		t.Errorf("Classpath = %v, want %v", p.Classpath, want)
	}
	if want := []string{"--verbose", "x"}; !reflect.DeepEqual(p.Args, want) {
		t.Errorf("Args = %v, want %v", p.Args, want)
	}
	if len(p.Extensions) != 2 {
		t.Fatalf("len(Extensions) = %d, want 2", len(p.Extensions))
	}
	if want := "local@" + filepath.Join(dir, "repo"); p.Extensions[0].Repository != want {
		t.Errorf("Extensions[0].Repository = %q, want %q", p.Extensions[0].Repository, want)
	}
	if want := "default@https://repo.example.com"; p.Extensions[1].Repository != want {
		t.Errorf("Extensions[1].Repository = %q, want %q", p.Extensions[1].Repository, want)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", "main_klass = \"x\"\n", "unknown keys main_klass"},
		{"bad repository", "[[extensions]]\ndescriptor = \"a:b:1\"\nrepository = \"nowhere\"\n", "invalid repository"},
		{"missing descriptor", "[[extensions]]\nrepository = \"local@r\"\n", "no descriptor"},
		{"malformed", "main_class = \n", "loading profile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeProfile(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}
