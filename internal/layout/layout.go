package layout

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/extframework/extlaunch/internal/descriptor"
)

// PathRule maps an artifact and its classifier/type to a relative path.
type PathRule interface {
	PathFor(d descriptor.Descriptor, classifier, typ string) (string, error)
}

// UnknownKindError is returned for descriptors no rule knows how to place.
type UnknownKindError struct {
	Descriptor descriptor.Descriptor
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("no path layout for %s (kind %q)", e.Descriptor, e.Descriptor.Kind)
}

// Maven is the default repository layout:
//
//	com/example/lib/1.0/lib-1.0[-classifier].type
//	com/example/ext/1.0/partitions/ext-1.0-<partition>[-classifier].type
type Maven struct{}

// PathFor returns the relative path of d.
func (Maven) PathFor(d descriptor.Descriptor, classifier, typ string) (string, error) {
	if d.Group == "" || d.Artifact == "" || d.Version == "" {
		return "", fmt.Errorf("cannot lay out %s: group, artifact and version are required", d)
	}
	if typ == "" {
		return "", fmt.Errorf("cannot lay out %s: empty type", d)
	}

	dir := filepath.Join(append(strings.Split(d.Group, "."), d.Artifact, d.Version)...)
	suffix := ""
	if classifier != "" {
		suffix = "-" + classifier
	}

	switch d.Kind {
	case descriptor.KindMaven, descriptor.KindExtension, descriptor.KindApp:
		return filepath.Join(dir, d.Artifact+"-"+d.Version+suffix+"."+typ), nil
	case descriptor.KindPartition:
		if d.Classifier == "" {
			return "", fmt.Errorf("cannot lay out %s: partition name is required", d)
		}
		return filepath.Join(dir, "partitions", d.Artifact+"-"+d.Version+"-"+d.Classifier+suffix+"."+typ), nil
	default:
		return "", &UnknownKindError{Descriptor: d}
	}
}

// Override places the paths of Base under Root.
type Override struct {
	Root string
	Base PathRule
}

// PathFor returns Root joined with the base rule's path. Errors from the base
// rule are returned unchanged.
func (o Override) PathFor(d descriptor.Descriptor, classifier, typ string) (string, error) {
	rel, err := o.Base.PathFor(d, classifier, typ)
	if err != nil {
		return "", err
	}
	return filepath.Join(o.Root, rel), nil
}
