package ports

import "go.trai.ch/c3pm/internal/core/domain"

// Scaffolder writes the initial files of a new project.
//
//go:generate mockgen -source=scaffolder.go -destination=mocks/mock_scaffolder.go -package=mocks
type Scaffolder interface {
	// Scaffold creates the source tree and CMakeLists.txt for project inside dir.
	// cmakeVersion is written as the minimum required CMake version.
	Scaffold(dir string, project *domain.Project, cmakeVersion string) error
}
