package lockfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/c3pm/internal/adapters/lockfile"
	"go.trai.ch/c3pm/internal/core/domain"
)

func TestStore_WriteRead(t *testing.T) {
	dir := t.TempDir()
	store := lockfile.NewStore()

	lock := &domain.Lockfile{
		Version:        domain.LockfileVersion,
		ManifestDigest: "0123456789abcdef",
		Dependencies: []domain.LockedDependency{
			{Name: "fmt", Path: "deps/fmt", URL: "https://github.com/fmtlib/fmt.git", Revision: "10.2.1", Commit: "f5e54359"},
			{Name: "b", Path: "deps/fmt/deps/b", URL: "https://gitlab.com/o/b.git", Commit: "a1b2c3"},
		},
	}

	require.NoError(t, store.Write(dir, lock))

	got, err := store.Read(dir)
	require.NoError(t, err)
	assert.Equal(t, lock, got)

	data, err := os.ReadFile(filepath.Join(dir, domain.LockFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "manifest_digest: 0123456789abcdef")
	assert.Contains(t, string(data), "path: deps/fmt/deps/b")
}

func TestStore_ReadMissing(t *testing.T) {
	got, err := lockfile.NewStore().Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_ReadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed yaml", content: "version: [1"},
		{name: "unsupported version", content: "version: 99\ndependencies: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, domain.LockFileName), []byte(tt.content), 0o600))

			_, err := lockfile.NewStore().Read(dir)
			assert.ErrorIs(t, err, domain.ErrLockfileReadFailed)
		})
	}
}

func TestStore_Remove(t *testing.T) {
	dir := t.TempDir()
	store := lockfile.NewStore()

	require.NoError(t, store.Remove(dir))

	require.NoError(t, store.Write(dir, &domain.Lockfile{Version: domain.LockfileVersion}))
	require.NoError(t, store.Remove(dir))

	_, err := os.Stat(filepath.Join(dir, domain.LockFileName))
	assert.True(t, os.IsNotExist(err))
}

func TestStore_WriteFailure(t *testing.T) {
	err := lockfile.NewStore().Write(filepath.Join(t.TempDir(), "missing"), &domain.Lockfile{Version: domain.LockfileVersion})
	assert.ErrorIs(t, err, domain.ErrLockfileWriteFailed)
}
