package ports

import (
	"context"

	"go.trai.ch/c3pm/internal/core/domain"
)

// Fetcher materializes a single dependency at a directory, pinned to its requested revision.
//
//go:generate mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type Fetcher interface {
	// Fetch clones dep into dir and checks out its revision.
	//
	// When dir already holds a repository the clone is skipped and the result is
	// marked Existing; this is not an error.
	Fetch(ctx context.Context, dep domain.Dependency, dir string) (domain.FetchResult, error)
}
