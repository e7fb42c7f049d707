package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/c3pm/internal/adapters/fs"
	"go.trai.ch/c3pm/internal/core/domain"
)

func touch(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(name), 0o600))
	}
}

func TestWalker_WalkFiles(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a.txt", "sub/b.txt", ".git/config", "CMakeFiles/x.o", "keep/CMakeFiles.txt")

	var got []string
	for p := range fs.NewWalker().WalkFiles(root, []string{"CMakeFiles"}) {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		got = append(got, filepath.ToSlash(rel))
	}
	slices.Sort(got)

	assert.Equal(t, []string{"a.txt", "keep/CMakeFiles.txt", "sub/b.txt"}, got)
}

func TestWalker_EarlyStop(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a", "b", "c")

	n := 0
	for range fs.NewWalker().WalkFiles(root, nil) {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestArtifactCollector_Collect(t *testing.T) {
	root := t.TempDir()
	build := filepath.Join(root, "build")
	target := filepath.Join(root, "target", "Debug")
	touch(t, build,
		"demo",
		"libutil.a",
		"sub/libshared.so",
		"demo.pdb",
		"CMakeFiles/demo.dir/src/main.cpp.o",
		"CMakeCache.txt",
		"Makefile",
		"compile_commands.json",
	)

	moved, err := fs.NewArtifactCollector(fs.NewWalker()).Collect(build, target, "demo")
	require.NoError(t, err)

	var names []string
	for _, m := range moved {
		assert.Equal(t, target, filepath.Dir(m))
		names = append(names, filepath.Base(m))
	}
	slices.Sort(names)
	assert.Equal(t, []string{"demo", "demo.pdb", "libshared.so", "libutil.a"}, names)

	assert.NoFileExists(t, filepath.Join(build, "demo"))
	assert.FileExists(t, filepath.Join(build, "Makefile"))
	assert.FileExists(t, filepath.Join(build, "CMakeFiles", "demo.dir", "src", "main.cpp.o"))
}

func TestArtifactCollector_NoArtifacts(t *testing.T) {
	build := t.TempDir()
	touch(t, build, "CMakeCache.txt", "Makefile", "other")

	_, err := fs.NewArtifactCollector(fs.NewWalker()).Collect(build, filepath.Join(t.TempDir(), "target"), "demo")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoArtifacts)
}
