package resolve

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/extframework/extlaunch/internal/archive"
	"github.com/extframework/extlaunch/internal/descriptor"
	"github.com/extframework/extlaunch/internal/layout"
	"github.com/extframework/extlaunch/internal/repository"
)

// ArchiveType is the file type of packed archives. An unpacked archive is
// the directory at the same path without the extension.
const ArchiveType = "zip"

// MetadataType is the file type of artifact metadata.
const MetadataType = "yaml"

// NotFoundError reports an artifact missing from the repository consulted.
type NotFoundError struct {
	Descriptor descriptor.Descriptor
	Repository repository.Settings
	Path       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found in %s (looked for %s)", e.Descriptor, e.Repository, e.Path)
}

// CycleError reports a dependency chain that loops back on itself.
type CycleError struct {
	Chain []descriptor.Descriptor
}

func (e *CycleError) Error() string {
	names := make([]string, len(e.Chain))
	for i, d := range e.Chain {
		names[i] = d.Name()
	}
	return "dependency cycle: " + strings.Join(names, " -> ")
}

// Resolver builds trees from one repository.
type Resolver struct {
	repo   repository.Settings
	rule   layout.PathRule
	logger *log.Logger

	metadata map[descriptor.Descriptor]*Metadata
}

// New returns a resolver for repo. Artifacts are located with rule, which for
// a local repository is usually layout.Override{Root: repo.Location, Base: layout.Maven{}}.
func New(repo repository.Settings, rule layout.PathRule, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{
		repo:     repo,
		rule:     rule,
		logger:   logger,
		metadata: make(map[descriptor.Descriptor]*Metadata),
	}
}

// ForLocal returns a resolver for a local repository laid out by layout.Maven.
func ForLocal(repo repository.Settings, logger *log.Logger) *Resolver {
	return New(repo, layout.Override{Root: repo.Location, Base: layout.Maven{}}, logger)
}

// Repository returns the settings the resolver reads from.
func (r *Resolver) Repository() repository.Settings { return r.repo }

// Resolve returns the tree rooted at d, following metadata. Nodes whose
// archive is absent have an empty Source; see Verify.
func (r *Resolver) Resolve(ctx context.Context, d descriptor.Descriptor) (archive.Tree, error) {
	root, err := r.resolveNode(ctx, d, nil, make(map[descriptor.Descriptor]bool))
	if err != nil {
		return archive.Tree{}, err
	}
	return archive.Tree{Root: root}, nil
}

func (r *Resolver) resolveNode(ctx context.Context, d descriptor.Descriptor, chain []descriptor.Descriptor, inProgress map[descriptor.Descriptor]bool) (*archive.Node, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	chain = append(chain, d)
	if inProgress[d] {
		return nil, &CycleError{Chain: append([]descriptor.Descriptor(nil), chain...)}
	}
	inProgress[d] = true
	defer delete(inProgress, d)

	meta, metaPath, err := r.readMetadata(d)
	if err != nil {
		return nil, err
	}
	node := &archive.Node{Descriptor: d}
	if meta != nil {
		node.Metadata = metaPath
	} else {
		meta = &Metadata{}
	}

	node.Source, err = r.locate(d, meta.Archive, metaPath)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("resolved", "artifact", d, "source", node.Source)

	for _, p := range meta.Partitions {
		pd := descriptor.Partition(d, p.Name)
		psrc, err := r.locate(pd, p.Archive, metaPath)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, &archive.Node{
			Descriptor: pd,
			Source:     psrc,
			Access:     archive.AccessTree{Descriptor: pd, Targets: []descriptor.Descriptor{d}},
		})
	}

	for i, dep := range meta.Dependencies {
		dd, err := dep.Descriptor()
		if err != nil {
			return nil, fmt.Errorf("resolving dependency %d of %s: %w", i, d, err)
		}
		child, err := r.resolveNode(ctx, dd, chain, inProgress)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}

	targets := make([]descriptor.Descriptor, 0, len(node.Children))
	for _, c := range node.Children {
		targets = append(targets, c.Descriptor)
	}
	node.Access = archive.AccessTree{Descriptor: d, Targets: targets}
	return node, nil
}

// readMetadata loads d's metadata. A missing file yields nil metadata.
func (r *Resolver) readMetadata(d descriptor.Descriptor) (*Metadata, string, error) {
	path, err := r.rule.PathFor(d, "", MetadataType)
	if err != nil {
		return nil, "", fmt.Errorf("locating metadata for %s: %w", d, err)
	}
	if m, ok := r.metadata[d]; ok {
		return m, path, nil
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		r.metadata[d] = nil
		return nil, path, nil
	case err != nil:
		return nil, "", fmt.Errorf("reading metadata for %s: %w", d, err)
	}

	m, err := ParseMetadata(data, path)
	if err != nil {
		return nil, "", err
	}
	r.metadata[d] = m
	return m, path, nil
}

// locate finds d's archive: an explicit path relative to the metadata file,
// the laid-out zip, or the laid-out directory. A missing laid-out archive is
// not an error here; it is reported by Verify for nodes that survive the
// audit.
func (r *Resolver) locate(d descriptor.Descriptor, explicit, metaPath string) (string, error) {
	if explicit != "" {
		p := filepath.Join(filepath.Dir(metaPath), filepath.FromSlash(explicit))
		if _, err := os.Stat(p); err != nil {
			return "", &NotFoundError{Descriptor: d, Repository: r.repo, Path: p}
		}
		return p, nil
	}

	p, err := r.rule.PathFor(d, "", ArchiveType)
	if err != nil {
		return "", fmt.Errorf("locating archive for %s: %w", d, err)
	}
	if info, err := os.Stat(p); err == nil && !info.IsDir() {
		return p, nil
	}
	dir := strings.TrimSuffix(p, "."+ArchiveType)
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return dir, nil
	}
	return "", nil
}

// Verify reports the first node of tree whose archive was not found.
func (r *Resolver) Verify(tree archive.Tree) error {
	var missing *archive.Node
	tree.Walk(func(n *archive.Node, _ int) bool {
		if missing == nil && n.Source == "" {
			missing = n
		}
		return missing == nil
	})
	if missing == nil {
		return nil
	}

	p, err := r.rule.PathFor(missing.Descriptor, "", ArchiveType)
	if err != nil {
		return fmt.Errorf("locating archive for %s: %w", missing.Descriptor, err)
	}
	return &NotFoundError{Descriptor: missing.Descriptor, Repository: r.repo, Path: p}
}
