package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/extframework/extlaunch/internal/branding"
)

// DefaultLevel applies when no level is configured.
const DefaultLevel = log.InfoLevel

// ParseLevel accepts debug, info, warn, error and fatal, case-insensitively.
// An empty string is DefaultLevel.
func ParseLevel(s string) (log.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultLevel, nil
	}
	lvl, err := log.ParseLevel(strings.ToLower(s))
	if err != nil {
		return DefaultLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return lvl, nil
}

// New returns a logger writing to w at the given level, prefixed with the
// CLI name.
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: branding.CLIName(),
		Level:  lvl,
	}), nil
}

// Component returns a child of l whose prefix names the component.
func Component(l *log.Logger, name string) *log.Logger {
	prefix := l.GetPrefix()
	if prefix != "" {
		prefix += "/"
	}
	return l.WithPrefix(prefix + name)
}

// Discard returns a logger that writes nothing.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
