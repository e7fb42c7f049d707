package ports

import "context"

// VersionControl is the version control client used to materialize dependencies.
//
//go:generate mockgen -source=vcs.go -destination=mocks/mock_vcs.go -package=mocks
type VersionControl interface {
	// CloneRecursive clones url into dir, including submodules.
	// It returns an error matching domain.ErrRepositoryExists when dir already holds a repository.
	CloneRecursive(ctx context.Context, url, dir string) error

	// Open opens the repository at dir.
	Open(dir string) (Repository, error)

	// Init creates an empty repository at dir.
	Init(dir string) error
}

// Repository is a handle on a local working copy.
type Repository interface {
	// ResolveRevision resolves a branch, tag or commit identifier to a full commit hash.
	ResolveRevision(rev string) (string, error)

	// Checkout updates the working tree to the given commit.
	Checkout(ctx context.Context, commit string) error

	// Head returns the commit hash HEAD points to.
	Head() (string, error)
}
