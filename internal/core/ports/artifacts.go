package ports

// ArtifactCollector relocates build outputs.
//
//go:generate mockgen -source=artifacts.go -destination=mocks/mock_artifacts.go -package=mocks
type ArtifactCollector interface {
	// Collect moves the artifacts found under buildDir into targetDir and returns their new paths.
	// projectName identifies the extension-less executable produced by the project target.
	Collect(buildDir, targetDir, projectName string) ([]string, error)
}
