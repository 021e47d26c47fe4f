package repository

import (
	"fmt"
	"strings"
)

// Type selects how a repository is read.
type Type string

const (
	// Local is a directory laid out by layout.Maven.
	Local Type = "local"
	// Default is a remote repository. Its artifacts are served from the
	// installation archive cache.
	Default Type = "default"
)

// Settings locate one repository.
type Settings struct {
	Type     Type
	Location string
}

// ParseError reports a malformed repository token.
type ParseError struct {
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid repository %q: %s (expected local@<dir> or default@<url>)", e.Token, e.Reason)
}

// Parse reads a "type@location" token. The type is case-insensitive.
func Parse(token string) (Settings, error) {
	typ, loc, ok := strings.Cut(token, "@")
	if !ok {
		return Settings{}, &ParseError{Token: token, Reason: "missing '@'"}
	}
	if loc == "" {
		return Settings{}, &ParseError{Token: token, Reason: "empty location"}
	}

	switch t := Type(strings.ToLower(strings.TrimSpace(typ))); t {
	case Local, Default:
		return Settings{Type: t, Location: loc}, nil
	default:
		return Settings{}, &ParseError{Token: token, Reason: fmt.Sprintf("unknown type %q", typ)}
	}
}

// String returns the token form of s.
func (s Settings) String() string {
	return string(s.Type) + "@" + s.Location
}
