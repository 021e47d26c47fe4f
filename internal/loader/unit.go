package loader

import (
	"fmt"
	"path"
	"sort"
	"strings"
)

const (
	// Wildcard scopes a unit to every package.
	Wildcard = "*"

	// CodeExt is the entry suffix of code units.
	CodeExt = ".sh"
)

// SourceUnit is one source of code units. Lookup reports a miss with
// ok == false and a nil error; errors are reserved for I/O failures.
type SourceUnit interface {
	Packages() []string
	Lookup(name string) (data []byte, ok bool, err error)
}

// ResourceUnit is implemented by units that also serve resources by path.
type ResourceUnit interface {
	Resource(path string) (data []byte, ok bool, err error)
}

// PackageOf returns the package prefix of a dotted name: everything before
// the last dot, or "" for unqualified names.
func PackageOf(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return ""
	}
	return name[:i]
}

// EntryPath returns the archive entry holding the named code unit.
// "com.example.Main" -> "com/example/Main.sh"
func EntryPath(name string) string {
	return strings.ReplaceAll(name, ".", "/") + CodeExt
}

// packageOfEntry returns the package declared by an archive entry, or false
// when the entry is not a code unit.
func packageOfEntry(entry string) (string, bool) {
	if !strings.HasSuffix(entry, CodeExt) || strings.HasSuffix(entry, "/") {
		return "", false
	}
	dir := path.Dir(entry)
	if dir == "." {
		return "", true
	}
	return strings.ReplaceAll(dir, "/", "."), true
}

// sortedPackages turns a set into a sorted slice.
func sortedPackages(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// unitName returns a printable name for logging.
func unitName(u any) string {
	if s, ok := u.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", u)
}
