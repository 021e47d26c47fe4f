package descriptor

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Descriptor
	}{
		{"group and artifact", "com.example:lib", Descriptor{Kind: KindMaven, Group: "com.example", Artifact: "lib"}},
		{"with version", "com.example:lib:1.0", Descriptor{Kind: KindMaven, Group: "com.example", Artifact: "lib", Version: "1.0"}},
		{"with classifier", "com.example:lib:1.0:sources", Descriptor{Kind: KindMaven, Group: "com.example", Artifact: "lib", Version: "1.0", Classifier: "sources"}},
		{"surrounding space", "  com.example:lib:1.0 ", Descriptor{Kind: KindMaven, Group: "com.example", Artifact: "lib", Version: "1.0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(KindMaven, tt.input)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, input := range []string{"", "lib", "a::1.0", "a:b:c:d:e", ":b"} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(KindMaven, input)
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Parse(%q) error = %v, want *ParseError", input, err)
			}
			if pe.Token != input {
				t.Errorf("Token = %q, want %q", pe.Token, input)
			}
		})
	}
}

func TestNameAndString(t *testing.T) {
	d := MustParse(KindExtension, "dev.ext:tweaks:2.1")
	if d.Name() != "dev.ext:tweaks:2.1" {
		t.Errorf("Name() = %q, want %q", d.Name(), "dev.ext:tweaks:2.1")
	}
	if d.String() != "extension:dev.ext:tweaks:2.1" {
		t.Errorf("String() = %q, want %q", d.String(), "extension:dev.ext:tweaks:2.1")
	}

	p := Partition(d, "main")
	if p.Kind != KindPartition || p.Classifier != "main" {
		t.Errorf("Partition = %+v, want partition kind with classifier main", p)
	}
	if p.Name() != "dev.ext:tweaks:2.1:main" {
		t.Errorf("partition Name() = %q", p.Name())
	}
}

func TestEqualityIsStructural(t *testing.T) {
	a := MustParse(KindMaven, "g:a:1")
	b := MustParse(KindMaven, "g:a:1")
	if a != b {
		t.Error("equal descriptors compare unequal")
	}
	if a == b.WithKind(KindExtension) {
		t.Error("descriptors of different kinds compare equal")
	}
}
