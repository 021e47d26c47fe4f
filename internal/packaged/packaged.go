package packaged

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/extframework/extlaunch/internal/descriptor"
	"github.com/extframework/extlaunch/internal/negotiate"
)

//go:embed dependencies.txt
var embedded []byte

// ManifestError reports a malformed manifest line.
type ManifestError struct {
	Source string
	Line   int
	Token  string
	Err    error
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("%s:%d: invalid packaged dependency %q: %v", e.Source, e.Line, e.Token, e.Err)
}

func (e *ManifestError) Unwrap() error { return e.Err }

// Set holds the classification keys of every packaged dependency.
// It is immutable once built.
type Set struct {
	keys map[negotiate.Key]descriptor.Descriptor
}

// Parse reads a newline separated list of group:artifact[:version] lines.
// Blank lines and lines starting with # are ignored.
func Parse(r io.Reader, source string, reg *negotiate.Registry) (*Set, error) {
	s := &Set{keys: make(map[negotiate.Key]descriptor.Descriptor)}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		d, err := descriptor.Parse(descriptor.KindMaven, line)
		if err == nil && d.Classifier != "" {
			err = fmt.Errorf("classifiers are not allowed")
		}
		if err != nil {
			return nil, &ManifestError{Source: source, Line: lineNo, Token: line, Err: err}
		}

		key, ok, err := reg.Classify(d)
		if err != nil {
			return nil, &ManifestError{Source: source, Line: lineNo, Token: line, Err: err}
		}
		if !ok {
			return nil, &ManifestError{Source: source, Line: lineNo, Token: line, Err: fmt.Errorf("no negotiator for kind %q", d.Kind)}
		}
		s.keys[key] = d
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading packaged manifest %s: %w", source, err)
	}

	return s, nil
}

// Load reads the manifest at path.
func Load(path string, reg *negotiate.Registry) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening packaged manifest: %w", err)
	}
	defer f.Close()
	return Parse(f, path, reg)
}

// Embedded returns the set recorded in the binary at build time.
func Embedded(reg *negotiate.Registry) (*Set, error) {
	return Parse(bytes.NewReader(embedded), "dependencies.txt", reg)
}

// Contains reports whether key is packaged.
func (s *Set) Contains(key negotiate.Key) bool {
	_, ok := s.keys[key]
	return ok
}

// Len returns the number of packaged keys.
func (s *Set) Len() int { return len(s.keys) }

// Keys returns the packaged keys in sorted order.
func (s *Set) Keys() []negotiate.Key {
	keys := make([]negotiate.Key, 0, len(s.keys))
	for k := range s.keys {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Descriptor returns the manifest entry recorded for key.
func (s *Set) Descriptor(key negotiate.Key) (descriptor.Descriptor, bool) {
	d, ok := s.keys[key]
	return d, ok
}
