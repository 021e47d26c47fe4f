package packaged

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/extframework/extlaunch/internal/negotiate"
)

func TestParse(t *testing.T) {
	input := `
# comment
com.example:lib:1.0
com.example:other

org.acme:tool:2.0.0
`
	s, err := Parse(strings.NewReader(input), "test", negotiate.Default())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	for _, k := range []negotiate.Key{"com.example:lib", "com.example:other", "org.acme:tool"} {
		if !s.Contains(k) {
			t.Errorf("missing key %q", k)
		}
	}
	if s.Contains("com.example:missing") {
		t.Error("unexpected key com.example:missing")
	}

	keys := s.Keys()
	if keys[0] != "com.example:lib" || keys[2] != "org.acme:tool" {
		t.Errorf("Keys() = %v, want sorted order", keys)
	}
}

func TestParseMalformedLine(t *testing.T) {
	input := "com.example:lib:1.0\nnot-a-descriptor\n"
	_, err := Parse(strings.NewReader(input), "deps.txt", negotiate.Default())

	var me *ManifestError
	if !errors.As(err, &me) {
		t.Fatalf("error = %v, want *ManifestError", err)
	}
	if me.Line != 2 {
		t.Errorf("Line = %d, want 2", me.Line)
	}
	if me.Token != "not-a-descriptor" {
		t.Errorf("Token = %q, want %q", me.Token, "not-a-descriptor")
	}
	if !strings.Contains(err.Error(), "deps.txt:2") {
		t.Errorf("error %q does not name the source line", err)
	}
}

func TestParseRejectsClassifier(t *testing.T) {
	_, err := Parse(strings.NewReader("a:b:1.0:sources\n"), "deps.txt", negotiate.Default())
	if err == nil {
		t.Fatal("expected error for classifier in manifest line")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deps.txt")
	if err := os.WriteFile(path, []byte("a:b:1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path, negotiate.Default())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !s.Contains("a:b") {
		t.Error("missing key a:b")
	}
}

func TestEmbedded(t *testing.T) {
	s, err := Embedded(negotiate.Default())
	if err != nil {
		t.Fatalf("Embedded: %v", err)
	}
	if !s.Contains("github.com/spf13:cobra") {
		t.Error("embedded manifest should list cobra")
	}
}
