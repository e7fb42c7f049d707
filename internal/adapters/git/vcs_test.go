package git_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/c3pm/internal/adapters/git"
	"go.trai.ch/c3pm/internal/adapters/git/gittest"
	"go.trai.ch/c3pm/internal/core/domain"
)

func TestVCS_CloneRecursive(t *testing.T) {
	src := gittest.New(t)
	first := src.Commit(t, "initial", map[string]string{"README.md": "v1"})
	tip := src.Commit(t, "second", map[string]string{"README.md": "v2"})

	dir := filepath.Join(t.TempDir(), "lib")
	vcs := git.New()

	require.NoError(t, vcs.CloneRecursive(context.Background(), src.URL(), dir))

	repo, err := vcs.Open(dir)
	require.NoError(t, err)
	head, err := repo.Head()
	require.NoError(t, err)
	assert.Equal(t, tip, head)
	assert.NotEqual(t, first, head)

	data, err := os.ReadFile(filepath.Join(dir, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))
}

func TestVCS_CloneRecursive_Existing(t *testing.T) {
	src := gittest.New(t)
	src.Commit(t, "initial", map[string]string{"README.md": "v1"})

	dir := filepath.Join(t.TempDir(), "lib")
	vcs := git.New()
	require.NoError(t, vcs.CloneRecursive(context.Background(), src.URL(), dir))

	err := vcs.CloneRecursive(context.Background(), src.URL(), dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRepositoryExists)
}

func TestVCS_CloneRecursive_Unreachable(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "lib")

	err := git.New().CloneRecursive(context.Background(), filepath.Join(t.TempDir(), "nowhere", ".git"), dir)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrRepositoryExists)
}

func TestRepository_ResolveAndCheckout(t *testing.T) {
	src := gittest.New(t)
	tagged := src.Commit(t, "release", map[string]string{"VERSION": "1.2.0"})
	src.Tag(t, "v1.2.0", tagged)
	feature := src.Commit(t, "feature work", map[string]string{"VERSION": "1.3.0-dev"})
	src.Branch(t, "feature", feature)
	tip := src.Commit(t, "next", map[string]string{"VERSION": "2.0.0"})

	dir := filepath.Join(t.TempDir(), "lib")
	vcs := git.New()
	require.NoError(t, vcs.CloneRecursive(context.Background(), src.URL(), dir))

	repo, err := vcs.Open(dir)
	require.NoError(t, err)

	tests := []struct {
		name    string
		rev     string
		want    string
		content string
	}{
		{name: "annotated tag", rev: "v1.2.0", want: tagged, content: "1.2.0"},
		{name: "remote branch", rev: "feature", want: feature, content: "1.3.0-dev"},
		{name: "full commit hash", rev: tip, want: tip, content: "2.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commit, err := repo.ResolveRevision(tt.rev)
			require.NoError(t, err)
			assert.Equal(t, tt.want, commit)

			require.NoError(t, repo.Checkout(context.Background(), commit))

			head, err := repo.Head()
			require.NoError(t, err)
			assert.Equal(t, tt.want, head)

			data, err := os.ReadFile(filepath.Join(dir, "VERSION"))
			require.NoError(t, err)
			assert.Equal(t, tt.content, string(data))
		})
	}
}

func TestRepository_ResolveUnknown(t *testing.T) {
	src := gittest.New(t)
	src.Commit(t, "initial", map[string]string{"README.md": "v1"})

	dir := filepath.Join(t.TempDir(), "lib")
	vcs := git.New()
	require.NoError(t, vcs.CloneRecursive(context.Background(), src.URL(), dir))

	repo, err := vcs.Open(dir)
	require.NoError(t, err)

	_, err = repo.ResolveRevision("v9.9.9")
	assert.Error(t, err)
}

func TestRepository_CheckoutCancelled(t *testing.T) {
	src := gittest.New(t)
	commit := src.Commit(t, "initial", map[string]string{"README.md": "v1"})

	repo, err := git.New().Open(src.Dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, repo.Checkout(ctx, commit), context.Canceled)
}

func TestVCS_InitOpen(t *testing.T) {
	vcs := git.New()

	_, err := vcs.Open(t.TempDir())
	require.Error(t, err)

	dir := t.TempDir()
	require.NoError(t, vcs.Init(dir))
	_, err = vcs.Open(dir)
	require.NoError(t, err)

	assert.Error(t, vcs.Init(dir))
}
