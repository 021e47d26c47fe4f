package descriptor

import (
	"fmt"
	"strings"
)

// Kind tags the ecosystem a descriptor belongs to. Negotiators and path rules
// are registered per kind.
type Kind string

const (
	KindMaven     Kind = "maven"
	KindExtension Kind = "extension"
	KindPartition Kind = "partition"
	KindApp       Kind = "app"
)

// Descriptor identifies a loadable unit. Two descriptors are equal when all
// fields are equal.
type Descriptor struct {
	Kind       Kind
	Group      string
	Artifact   string
	Version    string
	Classifier string
}

// ParseError reports a descriptor string that does not follow the
// group:artifact[:version[:classifier]] format.
type ParseError struct {
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid descriptor %q: %s (expected a colon separated 'group:artifact:version')", e.Token, e.Reason)
}

// Parse parses a colon separated descriptor of the given kind.
func Parse(kind Kind, s string) (Descriptor, error) {
	token := strings.TrimSpace(s)
	if token == "" {
		return Descriptor{}, &ParseError{Token: s, Reason: "empty"}
	}

	parts := strings.Split(token, ":")
	if len(parts) < 2 {
		return Descriptor{}, &ParseError{Token: s, Reason: "missing artifact"}
	}
	if len(parts) > 4 {
		return Descriptor{}, &ParseError{Token: s, Reason: "too many segments"}
	}
	for i, p := range parts {
		if p == "" {
			return Descriptor{}, &ParseError{Token: s, Reason: fmt.Sprintf("segment %d is empty", i+1)}
		}
	}

	d := Descriptor{
		Kind:     kind,
		Group:    parts[0],
		Artifact: parts[1],
	}
	if len(parts) > 2 {
		d.Version = parts[2]
	}
	if len(parts) > 3 {
		d.Classifier = parts[3]
	}
	return d, nil
}

// MustParse is like Parse but panics on error.
func MustParse(kind Kind, s string) Descriptor {
	d, err := Parse(kind, s)
	if err != nil {
		panic(err)
	}
	return d
}

// Partition returns the descriptor of the named partition of an extension.
func Partition(ext Descriptor, name string) Descriptor {
	return Descriptor{
		Kind:       KindPartition,
		Group:      ext.Group,
		Artifact:   ext.Artifact,
		Version:    ext.Version,
		Classifier: name,
	}
}

// WithKind returns a copy of d tagged with kind.
func (d Descriptor) WithKind(kind Kind) Descriptor {
	d.Kind = kind
	return d
}

// Name returns the group:artifact[:version[:classifier]] form without the kind.
func (d Descriptor) Name() string {
	var b strings.Builder
	b.WriteString(d.Group)
	b.WriteByte(':')
	b.WriteString(d.Artifact)
	if d.Version != "" || d.Classifier != "" {
		b.WriteByte(':')
		b.WriteString(d.Version)
	}
	if d.Classifier != "" {
		b.WriteByte(':')
		b.WriteString(d.Classifier)
	}
	return b.String()
}

// String returns the name prefixed with the kind, e.g. "maven:org.x:lib:1.0".
func (d Descriptor) String() string {
	if d.Kind == "" {
		return d.Name()
	}
	return string(d.Kind) + ":" + d.Name()
}

// IsZero reports whether d is the zero descriptor.
func (d Descriptor) IsZero() bool {
	return d == Descriptor{}
}
