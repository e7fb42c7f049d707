package fs

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/c3pm/internal/core/domain"
	"go.trai.ch/zerr"
)

// ArtifactExtensions are the file extensions treated as build outputs.
var ArtifactExtensions = []string{"exe", "so", "dll", "pdb", "a", "o", "lib", "dylib"}

// intermediateDirs hold CMake's own object files and are never collected.
var intermediateDirs = []string{"CMakeFiles"}

// ArtifactCollector implements ports.ArtifactCollector.
type ArtifactCollector struct {
	walker *Walker
}

// NewArtifactCollector creates a collector walking with walker.
func NewArtifactCollector(walker *Walker) *ArtifactCollector {
	return &ArtifactCollector{walker: walker}
}

// Collect moves every artifact under buildDir into targetDir, flattening the
// directory structure. A file is an artifact when its extension is one of
// ArtifactExtensions or when it has no extension and is named projectName.
func (c *ArtifactCollector) Collect(buildDir, targetDir, projectName string) ([]string, error) {
	var found []string
	for path := range c.walker.WalkFiles(buildDir, intermediateDirs) {
		if isArtifact(filepath.Base(path), projectName) {
			found = append(found, path)
		}
	}

	if len(found) == 0 {
		return nil, errors.Join(domain.ErrNoArtifacts, zerr.With(zerr.New("no artifacts in build directory"), "path", buildDir))
	}

	if err := os.MkdirAll(targetDir, domain.DirPerm); err != nil {
		return nil, errors.Join(domain.ErrArtifactMoveFailed, zerr.With(zerr.Wrap(err, "create target directory"), "path", targetDir))
	}

	moved := make([]string, 0, len(found))
	for _, src := range found {
		dst := filepath.Join(targetDir, filepath.Base(src))
		if err := os.Rename(src, dst); err != nil {
			return moved, errors.Join(domain.ErrArtifactMoveFailed, zerr.With(zerr.Wrap(err, "move artifact"), "path", src))
		}
		moved = append(moved, dst)
	}
	return moved, nil
}

func isArtifact(name, projectName string) bool {
	ext := filepath.Ext(name)
	if ext == "" {
		return name == projectName
	}
	return slices.Contains(ArtifactExtensions, strings.ToLower(strings.TrimPrefix(ext, ".")))
}
