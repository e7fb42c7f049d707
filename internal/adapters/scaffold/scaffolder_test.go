package scaffold_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/c3pm/internal/adapters/scaffold"
	"go.trai.ch/c3pm/internal/core/domain"
)

func TestScaffold_Golden(t *testing.T) {
	tests := []struct {
		name  string
		lang  domain.Language
		files []string
	}{
		{
			name:  "cpp20",
			lang:  domain.LanguageCpp20,
			files: []string{"CMakeLists.txt", ".gitignore", "src/main.cpp", "src/example.cpp", "include/example.hpp"},
		},
		{
			name:  "c11",
			lang:  domain.LanguageC11,
			files: []string{"CMakeLists.txt", ".gitignore", "src/main.c", "src/example.c", "include/example.h"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			p := domain.NewProject("demo", tt.lang, "")

			require.NoError(t, scaffold.New().Scaffold(dir, p, "3.28.1"))

			g := goldie.New(t)
			for _, f := range tt.files {
				data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(f)))
				require.NoError(t, err, f)

				golden := tt.name + "_" + strings.NewReplacer("/", "_", ".", "_").Replace(f)
				g.Assert(t, golden, data)
			}
		})
	}
}

func TestScaffold_CustomDirs(t *testing.T) {
	dir := t.TempDir()
	p := domain.NewProject("app", domain.LanguageCpp17, "")
	p.Dirs["sources"] = "source"
	p.Dirs["headers"] = "inc"
	p.Dirs["build"] = "out"

	require.NoError(t, scaffold.New().Scaffold(dir, p, "3.20"))

	assert.FileExists(t, filepath.Join(dir, "source", "main.cpp"))
	assert.FileExists(t, filepath.Join(dir, "inc", "example.hpp"))

	cml, err := os.ReadFile(filepath.Join(dir, domain.CMakeListsFileName))
	require.NoError(t, err)
	assert.Contains(t, string(cml), `"source/*.cpp"`)
	assert.Contains(t, string(cml), "target_include_directories(app PUBLIC inc)")
	assert.Contains(t, string(cml), "cmake_minimum_required(VERSION 3.20)")

	ignore, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(ignore), "/out/")
}

func TestScaffold_RefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.CMakeListsFileName), []byte("# mine\n"), 0o600))

	err := scaffold.New().Scaffold(dir, domain.NewProject("demo", domain.DefaultLanguage, ""), "3.28")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrScaffoldFailed)

	data, err := os.ReadFile(filepath.Join(dir, domain.CMakeListsFileName))
	require.NoError(t, err)
	assert.Equal(t, "# mine\n", string(data))
}
