// Package resolver walks a project's dependency manifests and materializes
// every declared dependency into nested deps directories.
//
// The dependency tree lives only on disk: each dependency is fetched into
// <parent>/deps/<name> and its own manifest is resolved relative to that
// directory. Nothing is deduplicated across depths.
//
// A Resolver is not safe for concurrent use over the same tree.
package resolver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/c3pm/internal/core/domain"
	"go.trai.ch/c3pm/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver implements ports.DependencyResolver.
type Resolver struct {
	manifests ports.ManifestReader
	fetcher   ports.Fetcher
	tracer    ports.Tracer
}

// New creates a Resolver.
func New(manifests ports.ManifestReader, fetcher ports.Fetcher, tracer ports.Tracer) *Resolver {
	return &Resolver{manifests: manifests, fetcher: fetcher, tracer: tracer}
}

// Resolve materializes the dependency tree rooted at dir.
//
// A directory without a manifest has no dependencies. The first error aborts
// the resolution; dependencies fetched before it stay on disk.
func (r *Resolver) Resolve(ctx context.Context, dir string, opts domain.ResolveOptions) (*domain.Resolution, error) {
	w := &walk{r: r, opts: opts, res: &domain.Resolution{Root: dir}}
	if err := w.visit(ctx, dir, 1); err != nil {
		return w.res, err
	}
	return w.res, nil
}

type walk struct {
	r    *Resolver
	opts domain.ResolveOptions
	res  *domain.Resolution

	// stack holds the remote URLs of the dependencies currently being resolved.
	stack []string
}

func (w *walk) visit(ctx context.Context, dir string, depth int) error {
	manifest, err := w.r.manifests.Read(dir)
	if err != nil {
		if errors.Is(err, domain.ErrManifestNotFound) {
			return nil
		}
		return err
	}

	if depth == 1 {
		w.res.Digest = manifest.Digest
	}

	if len(manifest.Dependencies) == 0 {
		return nil
	}

	depsDir := domain.DepsDir(dir)
	if err := os.MkdirAll(depsDir, domain.DirPerm); err != nil {
		return errors.Join(domain.ErrDepsDirCreateFailed, zerr.With(zerr.Wrap(err, "create deps directory"), "path", depsDir))
	}

	for _, dep := range manifest.Dependencies {
		if err := ctx.Err(); err != nil {
			return zerr.Wrap(err, "resolution cancelled")
		}
		if err := w.resolve(ctx, dir, dep, depth); err != nil {
			return err
		}
	}
	return nil
}

func (w *walk) resolve(ctx context.Context, parent string, dep domain.Dependency, depth int) error {
	url := dep.RemoteURL()
	if slices.Contains(w.stack, url) {
		chain := strings.Join(append(slices.Clone(w.stack), url), " -> ")
		return errors.Join(domain.ErrCycleDetected, zerr.With(zerr.With(zerr.New("dependency "+dep.Name+" depends on itself"), "url", url), "chain", chain))
	}

	target := domain.DependencyDir(parent, dep.Name)
	rel := w.relative(target)

	result, err := w.fetch(ctx, dep, target)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "dependency "+dep.Name), "path", rel)
	}

	skip := result.Existing && w.opts.SkipExistingSubtrees
	w.res.Dependencies = append(w.res.Dependencies, domain.ResolvedDependency{
		Dependency:     dep,
		Path:           rel,
		Depth:          depth,
		Commit:         result.Commit,
		Existing:       result.Existing,
		SubtreeSkipped: skip,
	})

	if skip {
		return nil
	}

	w.stack = append(w.stack, url)
	defer func() { w.stack = w.stack[:len(w.stack)-1] }()

	return w.visit(ctx, target, depth+1)
}

func (w *walk) fetch(ctx context.Context, dep domain.Dependency, target string) (domain.FetchResult, error) {
	ctx, span := w.r.tracer.Start(ctx, "fetch "+dep.Name)
	defer span.End()

	span.SetAttribute("c3pm.dependency.url", dep.RemoteURL())
	if dep.Revision != "" {
		span.SetAttribute("c3pm.dependency.revision", dep.Revision)
	}

	result, err := w.r.fetcher.Fetch(ctx, dep, target)
	if err != nil {
		span.RecordError(err)
		return result, err
	}

	span.SetAttribute("c3pm.dependency.commit", result.Commit)
	span.SetAttribute("c3pm.dependency.existing", result.Existing)
	return result, nil
}

// relative renders target relative to the resolution root with forward slashes.
func (w *walk) relative(target string) string {
	rel, err := filepath.Rel(w.res.Root, target)
	if err != nil {
		return filepath.ToSlash(target)
	}
	return filepath.ToSlash(rel)
}
