package launch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/extframework/extlaunch/internal/apptarget"
	"github.com/extframework/extlaunch/internal/archive"
	"github.com/extframework/extlaunch/internal/audit"
	"github.com/extframework/extlaunch/internal/cache"
	"github.com/extframework/extlaunch/internal/descriptor"
	"github.com/extframework/extlaunch/internal/home"
	"github.com/extframework/extlaunch/internal/invoke"
	"github.com/extframework/extlaunch/internal/loader"
	"github.com/extframework/extlaunch/internal/logging"
	"github.com/extframework/extlaunch/internal/materialize"
	"github.com/extframework/extlaunch/internal/negotiate"
	"github.com/extframework/extlaunch/internal/packaged"
	"github.com/extframework/extlaunch/internal/repository"
	"github.com/extframework/extlaunch/internal/resolve"
)

// AppGroup and AppArtifact name the application in its descriptor.
const (
	AppGroup    = "dev.extframework"
	AppArtifact = "app"
)

// Extension is one requested extension and the repository it comes from.
type Extension struct {
	Descriptor descriptor.Descriptor
	Repository repository.Settings
}

// Request describes one launch.
type Request struct {
	Extensions []Extension
	MainClass  string
	Args       []string
	Classpath  []string // application entries, dirs or zips
	Platform   []string // entries served as the parent loader
	WorkingDir string
	Version    string // "extframework-<version>", optional
}

// Launcher holds what every launch shares.
type Launcher struct {
	Registry *negotiate.Registry
	Packaged *packaged.Set
	Dirs     home.Dirs
	Logger   *log.Logger

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Session is a prepared launch. Close releases every opened archive.
type Session struct {
	App    descriptor.Descriptor
	Trees  []archive.Tree
	Loader *loader.VirtualLoader

	target   apptarget.Target
	platform apptarget.Target
}

func (l *Launcher) logger() *log.Logger {
	if l.Logger == nil {
		return logging.Discard()
	}
	return l.Logger
}

// Resolver returns the resolver for repo. Default repositories are served
// from the installation cache.
func (l *Launcher) Resolver(repo repository.Settings) *resolve.Resolver {
	lg := logging.Component(l.logger(), "resolve")
	if repo.Type == repository.Default {
		return resolve.New(repo, cache.NewLayout(l.Dirs), lg)
	}
	return resolve.ForLocal(repo, lg)
}

// Auditor returns the audit pipeline for this launcher's packaged set.
func (l *Launcher) Auditor(opts ...audit.PackagedOption) audit.Auditor {
	opts = append([]audit.PackagedOption{audit.WithLogger(logging.Component(l.logger(), "audit"))}, opts...)
	return audit.Pipeline(l.Registry, l.Packaged, opts...)
}

// Tree resolves and audits one extension, returning both trees. opts reach
// the packaged auditor, e.g. audit.OnPrune. Archives
// missing from the repository are not checked; see resolve.Resolver.Verify.
func (l *Launcher) Tree(ctx context.Context, ext Extension, opts ...audit.PackagedOption) (resolved, audited archive.Tree, err error) {
	resolved, err = l.Resolver(ext.Repository).Resolve(ctx, ext.Descriptor)
	if err != nil {
		return archive.Tree{}, archive.Tree{}, fmt.Errorf("resolving %s: %w", ext.Descriptor, err)
	}
	audited, err = l.Auditor(opts...).Audit(resolved)
	if err != nil {
		return archive.Tree{}, archive.Tree{}, fmt.Errorf("auditing %s: %w", ext.Descriptor, err)
	}
	return resolved, audited, nil
}

// Prepare resolves, audits, caches and opens every extension, then composes
// the loader: extension units in request order, the application after them,
// and the platform entries as the parent.
func (l *Launcher) Prepare(ctx context.Context, req Request) (_ *Session, err error) {
	s := &Session{App: descriptor.Descriptor{Kind: descriptor.KindApp, Group: AppGroup, Artifact: AppArtifact}}
	if req.Version != "" {
		v, err := ParseVersion(req.Version)
		if err != nil {
			return nil, err
		}
		s.App.Version = v
	}
	defer func() {
		if err != nil {
			s.Close()
		}
	}()

	if len(req.Extensions) > 0 {
		if err := l.Dirs.Ensure(); err != nil {
			return nil, err
		}
	}

	store := cache.New(cache.NewLayout(l.Dirs), logging.Component(l.logger(), "cache"))
	mat := materialize.New()
	handles := make(map[descriptor.Descriptor]archive.Handle)
	var units []loader.SourceUnit

	for _, ext := range req.Extensions {
		_, audited, err := l.Tree(ctx, ext)
		if err != nil {
			return nil, err
		}
		if err := l.Resolver(ext.Repository).Verify(audited); err != nil {
			return nil, err
		}
		cached, err := store.Store(ctx, audited)
		if err != nil {
			return nil, err
		}

		// Archives shared with an earlier extension are opened once and
		// composed at their first position.
		cached.Walk(func(n *archive.Node, _ int) bool {
			n.Handle = handles[n.Descriptor]
			return true
		})
		opened, err := mat.Materialize(ctx, cached)
		s.Trees = append(s.Trees, cached)
		if err != nil {
			return nil, err
		}
		for i, n := range cached.Nodes() {
			if _, seen := handles[n.Descriptor]; seen {
				continue
			}
			handles[n.Descriptor] = n.Handle
			units = append(units, opened[i])
		}
		l.logger().Info("extension ready", "extension", ext.Descriptor, "archives", len(opened))
	}

	if len(req.Classpath) > 0 {
		cp, err := apptarget.OpenClasspath(ctx, req.Classpath)
		if err != nil {
			return nil, err
		}
		s.target = cp
		units = append(units, cp.Units()...)
	}

	var parent loader.Parent
	if len(req.Platform) > 0 {
		pf, err := apptarget.OpenClasspath(ctx, req.Platform)
		if err != nil {
			return nil, fmt.Errorf("opening platform: %w", err)
		}
		s.platform = pf
		parent = loader.Build(pf.Units(), loader.WithLogger(logging.Component(l.logger(), "platform"))).AsParent()
	}

	ns := loader.Build(units, loader.WithLogger(logging.Component(l.logger(), "loader")))
	s.Loader = loader.Assemble(ns, parent)
	return s, nil
}

// Launch prepares the session, runs the main code unit with the request's
// arguments, and releases the session.
func (l *Launcher) Launch(ctx context.Context, req Request) error {
	if req.MainClass == "" {
		return errors.New("no main class given")
	}

	s, err := l.Prepare(ctx, req)
	if err != nil {
		return err
	}
	defer s.Close()

	inv := &invoke.Invoker{
		Loader:  s.Loader,
		Dir:     req.WorkingDir,
		Version: s.App.Version,
		Stdin:   l.Stdin,
		Stdout:  l.Stdout,
		Stderr:  l.Stderr,
		Logger:  logging.Component(l.logger(), "invoke"),
	}
	if inv.Stdin == nil {
		inv.Stdin = os.Stdin
	}
	if inv.Stdout == nil {
		inv.Stdout = os.Stdout
	}
	if inv.Stderr == nil {
		inv.Stderr = os.Stderr
	}

	l.logger().Debug("launching", "main", req.MainClass, "app", s.App)
	return inv.Run(ctx, req.MainClass, req.Args)
}

// Close releases every archive opened for the session.
func (s *Session) Close() error {
	var errs []error
	seen := make(map[archive.Handle]bool)
	for _, t := range s.Trees {
		for _, n := range t.Nodes() {
			if n.Handle == nil || seen[n.Handle] {
				continue
			}
			seen[n.Handle] = true
			errs = append(errs, n.Handle.Close())
		}
	}
	if s.target != nil {
		errs = append(errs, s.target.Close())
	}
	if s.platform != nil {
		errs = append(errs, s.platform.Close())
	}
	return errors.Join(errs...)
}
