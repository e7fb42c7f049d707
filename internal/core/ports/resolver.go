package ports

import (
	"context"

	"go.trai.ch/c3pm/internal/core/domain"
)

// DependencyResolver materializes the dependency tree of a project.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type DependencyResolver interface {
	// Resolve fetches every dependency reachable from the manifest in dir into
	// nested deps directories and returns them in depth-first pre-order.
	Resolve(ctx context.Context, dir string, opts domain.ResolveOptions) (*domain.Resolution, error)
}
