package domain

import "path/filepath"

const (
	// ManifestFileName is the name of the project and dependency manifest file.
	ManifestFileName = ".c3pm.toml"

	// LockFileName is the name of the lockfile written after dependency resolution.
	LockFileName = "c3pm.lock"

	// DepsDirName is the directory, relative to a project, that holds its fetched dependencies.
	DepsDirName = "deps"

	// TargetDirName is the directory that receives relocated build artifacts.
	TargetDirName = "target"

	// DefaultSourcesDir is the default directory for source files.
	DefaultSourcesDir = "src"

	// DefaultHeadersDir is the default directory for header files.
	DefaultHeadersDir = "include"

	// DefaultBuildDir is the default CMake binary directory.
	DefaultBuildDir = "build"

	// CMakeListsFileName is the name of the generated CMake build description.
	CMakeListsFileName = "CMakeLists.txt"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DepsDir returns the directory holding the dependencies of the project at dir.
func DepsDir(dir string) string {
	return filepath.Join(dir, DepsDirName)
}

// DependencyDir returns the on-disk location of the named dependency of the project at dir.
// It joins dir, deps and name.
func DependencyDir(dir, name string) string {
	return filepath.Join(dir, DepsDirName, name)
}

// ManifestPath returns the manifest location for the project at dir.
func ManifestPath(dir string) string {
	return filepath.Join(dir, ManifestFileName)
}

// LockfilePath returns the lockfile location for the project at dir.
func LockfilePath(dir string) string {
	return filepath.Join(dir, LockFileName)
}

// TargetDir returns the artifact directory for the given build configuration.
// It joins dir, target and the configuration name.
func TargetDir(dir string, config BuildConfig) string {
	return filepath.Join(dir, TargetDirName, config.String())
}
