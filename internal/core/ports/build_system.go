package ports

import (
	"context"
	"io"

	"go.trai.ch/c3pm/internal/core/domain"
)

// BuildSystem drives the external build-configuration tool.
//
//go:generate mockgen -source=build_system.go -destination=mocks/mock_build_system.go -package=mocks
type BuildSystem interface {
	// Version returns the version of the installed tool, e.g. "3.28.1".
	Version(ctx context.Context) (string, error)

	// Configure generates the native build files for a project.
	Configure(ctx context.Context, spec domain.ConfigureSpec, stdout, stderr io.Writer) error

	// Build compiles a configured project.
	Build(ctx context.Context, spec domain.BuildSpec, stdout, stderr io.Writer) error
}
