package launch

import (
	"fmt"
	"regexp"
)

var versionPattern = regexp.MustCompile(`^extframework-([0-9A-Za-z.]+)$`)

// VersionError reports a --version value that does not name a framework
// release.
type VersionError struct {
	Value string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("invalid version %q: expected extframework-<version>", e.Value)
}

// ParseVersion extracts the release from "extframework-<version>".
func ParseVersion(s string) (string, error) {
	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return "", &VersionError{Value: s}
	}
	return m[1], nil
}
