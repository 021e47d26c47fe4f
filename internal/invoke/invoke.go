package invoke

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/extframework/extlaunch/internal/branding"
	"github.com/extframework/extlaunch/internal/loader"
)

// MaxDepth bounds how deeply code units may invoke each other.
const MaxDepth = 64

// ExitError reports a code unit that exited with a non-zero status.
type ExitError struct {
	Entry string
	Code  int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Entry, e.Code)
}

// Loader is what the invoker needs from a composed loader.
type Loader interface {
	Resolve(name string) ([]byte, error)
	Resource(path string) ([]byte, bool)
}

// Invoker runs code units resolved from a loader.
type Invoker struct {
	Loader  Loader
	Dir     string
	Env     []string // defaults to os.Environ()
	Version string   // exported as EXTFRAMEWORK_VERSION when set
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *log.Logger
}

type depthKey struct{}

// Run resolves entry and runs it with args as positional parameters.
func (i *Invoker) Run(ctx context.Context, entry string, args []string) error {
	return i.run(ctx, entry, args, i.Dir, i.environ(), i.Stdin, i.Stdout, i.Stderr)
}

func (i *Invoker) run(ctx context.Context, entry string, args []string, dir string, env []string, stdin io.Reader, stdout, stderr io.Writer) error {
	depth, _ := ctx.Value(depthKey{}).(int)
	if depth >= MaxDepth {
		return fmt.Errorf("invoking %s: nesting deeper than %d units", entry, MaxDepth)
	}
	ctx = context.WithValue(ctx, depthKey{}, depth+1)

	src, err := i.Loader.Resolve(entry)
	if err != nil {
		return err
	}
	prog, err := syntax.NewParser().Parse(bytes.NewReader(src), loader.EntryPath(entry))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", entry, err)
	}

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(stdin, stdout, stderr),
		interp.OpenHandler(i.openHandler),
		interp.ExecHandlers(i.execHandler),
	}
	if dir != "" {
		opts = append(opts, interp.Dir(dir))
	}
	// "--" keeps arguments such as "-v" from being read as shell options.
	opts = append(opts, interp.Params(append([]string{"--"}, args...)...))

	runner, err := interp.New(opts...)
	if err != nil {
		return fmt.Errorf("creating interpreter for %s: %w", entry, err)
	}

	i.logger().Debug("invoking", "entry", entry, "args", len(args), "depth", depth)
	if err := runner.Run(ctx, prog); err != nil {
		var status interp.ExitStatus
		if errors.As(err, &status) {
			return &ExitError{Entry: entry, Code: int(status)}
		}
		return fmt.Errorf("running %s: %w", entry, err)
	}
	return nil
}

func (i *Invoker) environ() []string {
	env := i.Env
	if env == nil {
		env = os.Environ()
	}
	env = append([]string(nil), env...)
	if i.Version != "" {
		env = append(env, branding.EnvVar("version")+"="+i.Version)
	}
	return env
}

func (i *Invoker) logger() *log.Logger {
	if i.Logger == nil {
		return log.Default()
	}
	return i.Logger
}

// openHandler serves read-only opens of relative paths from the loader's
// resources, falling back to the filesystem.
func (i *Invoker) openHandler(ctx context.Context, path string, flag int, perm fs.FileMode) (io.ReadWriteCloser, error) {
	if flag&(os.O_WRONLY|os.O_RDWR) == 0 && !filepath.IsAbs(path) && fs.ValidPath(filepath.ToSlash(path)) {
		if data, ok := i.Loader.Resource(filepath.ToSlash(path)); ok {
			return resourceFile{bytes.NewReader(data)}, nil
		}
	}
	return interp.DefaultOpenHandler()(ctx, path, flag, perm)
}

// execHandler runs commands named like code units through the loader.
func (i *Invoker) execHandler(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(ctx context.Context, args []string) error {
		if len(args) == 0 || !looksLikeUnit(args[0]) {
			return next(ctx, args)
		}
		if _, err := i.Loader.Resolve(args[0]); err != nil {
			var nf *loader.NotFoundError
			if errors.As(err, &nf) {
				return next(ctx, args)
			}
			return err
		}

		hc := interp.HandlerCtx(ctx)
		var env []string
		hc.Env.Each(func(name string, vr expand.Variable) bool {
			if vr.Exported && vr.IsSet() {
				env = append(env, name+"="+vr.String())
			}
			return true
		})

		err := i.run(ctx, args[0], args[1:], hc.Dir, env, hc.Stdin, hc.Stdout, hc.Stderr)
		var exit *ExitError
		if errors.As(err, &exit) {
			return interp.ExitStatus(exit.Code)
		}
		return err
	}
}

// looksLikeUnit reports whether a command word is a dotted code unit name
// such as "com.example.Tool".
func looksLikeUnit(word string) bool {
	if strings.ContainsAny(word, "/\\") || !strings.Contains(word, ".") {
		return false
	}
	return !strings.HasPrefix(word, ".") && !strings.HasSuffix(word, ".")
}

type resourceFile struct {
	*bytes.Reader
}

func (resourceFile) Write([]byte) (int, error) { return 0, errors.New("resource is read-only") }
func (resourceFile) Close() error              { return nil }
