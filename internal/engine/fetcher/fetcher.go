// Package fetcher materializes a single dependency on disk at its requested revision.
package fetcher

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/c3pm/internal/core/domain"
	"go.trai.ch/c3pm/internal/core/ports"
	"go.trai.ch/zerr"
)

// Fetcher implements ports.Fetcher on top of a version control client.
type Fetcher struct {
	vcs    ports.VersionControl
	logger ports.Logger
}

// New creates a Fetcher.
func New(vcs ports.VersionControl, logger ports.Logger) *Fetcher {
	return &Fetcher{vcs: vcs, logger: logger}
}

// Fetch clones dep into dir and checks out its revision.
//
// A directory that already holds a repository is reused as-is: no revision
// check and no checkout happen, and the result is marked Existing.
func (f *Fetcher) Fetch(ctx context.Context, dep domain.Dependency, dir string) (domain.FetchResult, error) {
	url := dep.RemoteURL()
	result := domain.FetchResult{Dir: dir}

	err := f.vcs.CloneRecursive(ctx, url, dir)
	switch {
	case errors.Is(err, domain.ErrRepositoryExists):
		f.logger.Warn(fmt.Sprintf("repository %s already exists at %s, skipping", dep.Name, dir))
		result.Existing = true
	case err != nil:
		return result, errors.Join(domain.ErrFetchFailed, err)
	}

	repo, err := f.vcs.Open(dir)
	if err != nil {
		if result.Existing {
			// Content of an existing directory is used as found.
			return result, nil
		}
		return result, errors.Join(domain.ErrFetchFailed, zerr.With(zerr.Wrap(err, "open clone"), "dir", dir))
	}

	if !result.Existing && dep.Revision != "" {
		if err := f.checkout(ctx, repo, dep); err != nil {
			return result, err
		}
	}

	if head, err := repo.Head(); err == nil {
		result.Commit = head
	} else if !result.Existing {
		return result, errors.Join(domain.ErrFetchFailed, zerr.With(zerr.Wrap(err, "read HEAD"), "dir", dir))
	}

	return result, nil
}

func (f *Fetcher) checkout(ctx context.Context, repo ports.Repository, dep domain.Dependency) error {
	commit, err := repo.ResolveRevision(dep.Revision)
	if err != nil {
		return errors.Join(domain.ErrRevisionResolution, zerr.With(zerr.Wrap(err, "resolve"), "revision", dep.Revision))
	}

	if err := repo.Checkout(ctx, commit); err != nil {
		return errors.Join(domain.ErrCheckoutFailed, zerr.With(zerr.With(zerr.Wrap(err, "checkout"), "revision", dep.Revision), "commit", commit))
	}
	return nil
}
