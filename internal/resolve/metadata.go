package resolve

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/extframework/extlaunch/internal/descriptor"
)

// Metadata describes one artifact's partitions and dependencies.
type Metadata struct {
	// Archive overrides the archive location, relative to the metadata file.
	Archive      string       `yaml:"archive,omitempty"`
	Partitions   []Partition  `yaml:"partitions,omitempty"`
	Dependencies []Dependency `yaml:"dependencies,omitempty"`
}

// Partition is a separately packaged part of an extension.
type Partition struct {
	Name    string `yaml:"name"`
	Archive string `yaml:"archive,omitempty"`
}

// Dependency names another artifact the owner needs at runtime.
type Dependency struct {
	ID   string `yaml:"id"`
	Kind string `yaml:"kind,omitempty"`
}

// Descriptor parses the dependency's coordinates. Kind defaults to maven.
func (d Dependency) Descriptor() (descriptor.Descriptor, error) {
	kind := descriptor.KindMaven
	if d.Kind != "" {
		kind = descriptor.Kind(d.Kind)
	}
	return descriptor.Parse(kind, d.ID)
}

// MetadataError reports metadata that failed to parse or validate.
type MetadataError struct {
	Path   string
	Issues []ValidationIssue
	Err    error
}

func (e *MetadataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("metadata %s: %v", e.Path, e.Err)
	}
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return fmt.Sprintf("metadata %s is invalid: %s", e.Path, strings.Join(parts, "; "))
}

func (e *MetadataError) Unwrap() error { return e.Err }

// ParseMetadata validates and decodes metadata read from path.
func ParseMetadata(data []byte, path string) (*Metadata, error) {
	issues, err := Validate(data)
	if err != nil {
		return nil, &MetadataError{Path: path, Err: err}
	}
	if len(issues) > 0 {
		return nil, &MetadataError{Path: path, Issues: issues}
	}

	var m Metadata
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &MetadataError{Path: path, Err: err}
	}
	return &m, nil
}

// Relocated returns a copy of m without archive locations, for metadata
// stored next to archives placed by a layout rule.
func (m *Metadata) Relocated() *Metadata {
	out := &Metadata{Dependencies: append([]Dependency(nil), m.Dependencies...)}
	for _, p := range m.Partitions {
		out.Partitions = append(out.Partitions, Partition{Name: p.Name})
	}
	return out
}

// Marshal encodes m as YAML.
func (m *Metadata) Marshal() ([]byte, error) {
	return yaml.Marshal(m)
}
