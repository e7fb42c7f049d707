package domain

import "go.trai.ch/zerr"

var (
	// ErrManifestNotFound is returned when a project directory has no manifest file.
	// The resolver treats it as "no dependencies".
	ErrManifestNotFound = zerr.New("manifest not found")

	// ErrManifestParse is returned when a manifest exists but cannot be decoded into a valid dependency list.
	ErrManifestParse = zerr.New("failed to parse manifest")

	// ErrRepositoryExists is returned by the version control port when the clone target already holds a repository.
	ErrRepositoryExists = zerr.New("repository already exists")

	// ErrFetchFailed is returned when a dependency cannot be cloned from its remote.
	ErrFetchFailed = zerr.New("failed to fetch dependency")

	// ErrRevisionResolution is returned when a requested revision does not name a commit in the fetched repository.
	ErrRevisionResolution = zerr.New("failed to resolve revision")

	// ErrCheckoutFailed is returned when the working tree cannot be updated to the resolved commit.
	ErrCheckoutFailed = zerr.New("failed to check out revision")

	// ErrCycleDetected is returned when a dependency reappears on its own resolution path.
	ErrCycleDetected = zerr.New("dependency cycle detected")

	// ErrDepsDirCreateFailed is returned when the deps directory cannot be created.
	ErrDepsDirCreateFailed = zerr.New("failed to create deps directory")

	// ErrProjectConfigNotFound is returned when a command needs a project but no project file exists.
	ErrProjectConfigNotFound = zerr.New("not a c3pm project: .c3pm.toml not found")

	// ErrProjectConfigWriteFailed is returned when the project file cannot be written.
	ErrProjectConfigWriteFailed = zerr.New("failed to write project file")

	// ErrProjectExists is returned when scaffolding into a directory that is already a project.
	ErrProjectExists = zerr.New("project already exists")

	// ErrInvalidProjectName is returned when a project name is empty or cannot be derived.
	ErrInvalidProjectName = zerr.New("invalid project name")

	// ErrUnknownLanguage is returned when a language standard string is not recognised.
	ErrUnknownLanguage = zerr.New("unknown language standard")

	// ErrUnknownGenerator is returned when a CMake generator name is not recognised.
	ErrUnknownGenerator = zerr.New("unknown generator")

	// ErrUnknownHost is returned when a dependency host is not one of the supported hosts.
	ErrUnknownHost = zerr.New("unknown dependency host")

	// ErrUnknownBuildConfig is returned when a build configuration name is not recognised.
	ErrUnknownBuildConfig = zerr.New("unknown build configuration")

	// ErrScaffoldFailed is returned when project files cannot be generated.
	ErrScaffoldFailed = zerr.New("failed to generate project files")

	// ErrCMakeNotFound is returned when the cmake binary is not available.
	ErrCMakeNotFound = zerr.New("cmake not found on PATH")

	// ErrCMakeVersion is returned when the cmake version cannot be determined.
	ErrCMakeVersion = zerr.New("failed to get CMake version")

	// ErrConfigureFailed is returned when the cmake configure step fails.
	ErrConfigureFailed = zerr.New("cmake configure failed")

	// ErrBuildFailed is returned when the cmake build step fails.
	ErrBuildFailed = zerr.New("cmake build failed")

	// ErrNoArtifacts is returned when a build produced no relocatable output files.
	ErrNoArtifacts = zerr.New("no valid output files found to move")

	// ErrArtifactMoveFailed is returned when an output file cannot be relocated.
	ErrArtifactMoveFailed = zerr.New("failed to move file")

	// ErrCleanFailed is returned when build outputs cannot be removed.
	ErrCleanFailed = zerr.New("failed to clean project")

	// ErrLockfileReadFailed is returned when the lockfile exists but cannot be read or decoded.
	ErrLockfileReadFailed = zerr.New("failed to read lockfile")

	// ErrLockfileWriteFailed is returned when the lockfile cannot be encoded or written.
	ErrLockfileWriteFailed = zerr.New("failed to write lockfile")
)
