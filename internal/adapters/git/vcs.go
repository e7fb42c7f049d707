// Package git implements ports.VersionControl with go-git.
package git

import (
	"context"
	"errors"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"go.trai.ch/c3pm/internal/core/domain"
	"go.trai.ch/c3pm/internal/core/ports"
	"go.trai.ch/zerr"
)

// VCS implements ports.VersionControl on local working copies.
type VCS struct{}

// New creates a new VCS.
func New() *VCS {
	return &VCS{}
}

// CloneRecursive clones url into dir together with its submodules.
func (v *VCS) CloneRecursive(ctx context.Context, url, dir string) error {
	if _, err := gogit.PlainOpen(dir); err == nil {
		return errors.Join(domain.ErrRepositoryExists, zerr.With(zerr.New("repository already exists"), "path", dir))
	}

	_, err := gogit.PlainCloneContext(ctx, dir, false, &gogit.CloneOptions{
		URL:               url,
		RecurseSubmodules: gogit.DefaultSubmoduleRecursionDepth,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryAlreadyExists) {
			return errors.Join(domain.ErrRepositoryExists, zerr.With(zerr.Wrap(err, "clone"), "path", dir))
		}
		return zerr.With(zerr.With(zerr.Wrap(err, "clone"), "url", url), "path", dir)
	}
	return nil
}

// Open opens the working copy at dir.
func (v *VCS) Open(dir string) (ports.Repository, error) {
	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "open repository"), "path", dir)
	}
	return &Repository{repo: repo}, nil
}

// Init creates an empty repository at dir.
func (v *VCS) Init(dir string) error {
	if _, err := gogit.PlainInit(dir, false); err != nil {
		return zerr.With(zerr.Wrap(err, "init repository"), "path", dir)
	}
	return nil
}

// Repository implements ports.Repository.
type Repository struct {
	repo *gogit.Repository
}

// ResolveRevision resolves rev to a commit hash. The revision is tried as
// given first, then as a branch of the origin remote. Annotated tags are
// peeled to the commit they point at.
func (r *Repository) ResolveRevision(rev string) (string, error) {
	candidates := []string{rev, "refs/remotes/origin/" + rev}

	var firstErr error
	for _, c := range candidates {
		h, err := r.repo.ResolveRevision(plumbing.Revision(c))
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		commit, err := r.peel(*h)
		if err != nil {
			return "", zerr.With(zerr.Wrap(err, "peel revision"), "revision", rev)
		}
		return commit.String(), nil
	}

	return "", zerr.With(zerr.Wrap(firstErr, "resolve revision"), "revision", rev)
}

func (r *Repository) peel(h plumbing.Hash) (plumbing.Hash, error) {
	if _, err := r.repo.CommitObject(h); err == nil {
		return h, nil
	}
	tag, err := r.repo.TagObject(h)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	c, err := tag.Commit()
	if err != nil {
		return plumbing.ZeroHash, err
	}
	return c.Hash, nil
}

// Checkout moves HEAD and the worktree to commit and updates submodules to
// the versions recorded there.
func (r *Repository) Checkout(ctx context.Context, commit string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return zerr.Wrap(err, "open worktree")
	}

	if err := wt.Checkout(&gogit.CheckoutOptions{
		Hash:  plumbing.NewHash(commit),
		Force: true,
	}); err != nil {
		return zerr.With(zerr.Wrap(err, "checkout"), "commit", commit)
	}

	subs, err := wt.Submodules()
	if err != nil {
		return zerr.Wrap(err, "list submodules")
	}
	if len(subs) == 0 {
		return nil
	}
	if err := subs.UpdateContext(ctx, &gogit.SubmoduleUpdateOptions{
		Init:              true,
		RecurseSubmodules: gogit.DefaultSubmoduleRecursionDepth,
	}); err != nil {
		return zerr.Wrap(err, "update submodules")
	}
	return nil
}

// Head returns the commit HEAD points to.
func (r *Repository) Head() (string, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return "", zerr.Wrap(err, "read HEAD")
	}
	return ref.Hash().String(), nil
}
