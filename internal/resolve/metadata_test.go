package resolve

import (
	"errors"
	"testing"
)

func TestParseMetadata(t *testing.T) {
	m, err := ParseMetadata([]byte("partitions:\n  - name: main\n    archive: p.zip\ndependencies:\n  - id: g:a:1\n    kind: extension\n"), "m.yaml")
	if err != nil {
		t.Fatalf("ParseMetadata: %v", err)
	}
	d, err := m.Dependencies[0].Descriptor()
	if err != nil {
		t.Fatal(err)
	}
	if got := d.String(); got != "extension:g:a:1" {
		t.Errorf("dependency = %q, want %q", got, "extension:g:a:1")
	}

	rel := m.Relocated()
	if rel.Partitions[0].Archive != "" || rel.Partitions[0].Name != "main" {
		t.Errorf("Relocated partition = %+v, want name only", rel.Partitions[0])
	}
	if m.Partitions[0].Archive != "p.zip" {
		t.Error("Relocated modified its receiver")
	}

	data, err := rel.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if issues, err := Validate(data); err != nil || len(issues) > 0 {
		t.Errorf("marshaled metadata does not validate: %v %v", issues, err)
	}
}

func TestParseMetadataInvalid(t *testing.T) {
	_, err := ParseMetadata([]byte("dependencies: 3\n"), "bad.yaml")
	var me *MetadataError
	if !errors.As(err, &me) {
		t.Fatalf("error = %v, want *MetadataError", err)
	}
	if me.Path != "bad.yaml" {
		t.Errorf("Path = %q, want %q", me.Path, "bad.yaml")
	}
}
