package ports

import "go.trai.ch/c3pm/internal/core/domain"

// LockfileStore persists the lockfile of a project.
//
//go:generate mockgen -source=lockfile.go -destination=mocks/mock_lockfile.go -package=mocks
type LockfileStore interface {
	// Read returns the lockfile of the project at dir.
	// Returns nil, nil if the project has no lockfile.
	Read(dir string) (*domain.Lockfile, error)

	// Write stores the lockfile of the project at dir.
	Write(dir string, lock *domain.Lockfile) error

	// Remove deletes the lockfile of the project at dir. A missing lockfile is not an error.
	Remove(dir string) error
}
