// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/c3pm/internal/core/domain"

// ManifestReader loads the dependency manifest of a project directory.
//
//go:generate mockgen -source=manifest.go -destination=mocks/mock_manifest.go -package=mocks
type ManifestReader interface {
	// Read parses the manifest file inside dir.
	//
	// It returns an error matching domain.ErrManifestNotFound when dir has no manifest
	// and domain.ErrManifestParse when the manifest cannot be decoded.
	Read(dir string) (*domain.Manifest, error)
}

// ProjectStore loads and saves the project description kept in the manifest file.
type ProjectStore interface {
	// Load reads the project rooted at dir.
	// It returns an error matching domain.ErrProjectConfigNotFound when dir is not a project.
	Load(dir string) (*domain.Project, error)

	// Save writes the project manifest into dir, replacing any existing one.
	Save(dir string, project *domain.Project) error
}
