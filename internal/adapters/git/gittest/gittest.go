// Package gittest builds throwaway git repositories for tests.
package gittest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repo is a non-bare repository living in a test temp directory.
type Repo struct {
	Dir  string
	repo *gogit.Repository
}

// New initializes an empty repository in a fresh temp directory.
func New(t *testing.T) *Repo {
	t.Helper()

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("init repository: %v", err)
	}
	return &Repo{Dir: dir, repo: repo}
}

// URL returns a location go-git can clone from.
func (r *Repo) URL() string {
	return filepath.Join(r.Dir, ".git")
}

// Commit writes files (path -> content) and commits them on the current branch.
func (r *Repo) Commit(t *testing.T, msg string, files map[string]string) string {
	t.Helper()

	wt, err := r.repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}

	for name, content := range files {
		path := filepath.Join(r.Dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		if _, err := wt.Add(name); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}

	h, err := wt.Commit(msg, &gogit.CommitOptions{Author: signature(), AllowEmptyCommits: true})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	return h.String()
}

// Tag creates an annotated tag pointing at commit.
func (r *Repo) Tag(t *testing.T, name, commit string) {
	t.Helper()

	if _, err := r.repo.CreateTag(name, plumbing.NewHash(commit), &gogit.CreateTagOptions{
		Tagger:  signature(),
		Message: "release " + name,
	}); err != nil {
		t.Fatalf("tag %s: %v", name, err)
	}
}

// Branch creates a branch pointing at commit without checking it out.
func (r *Repo) Branch(t *testing.T, name, commit string) {
	t.Helper()

	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), plumbing.NewHash(commit))
	if err := r.repo.Storer.SetReference(ref); err != nil {
		t.Fatalf("branch %s: %v", name, err)
	}
}

func signature() *object.Signature {
	return &object.Signature{
		Name:  "c3pm",
		Email: "c3pm@example.com",
		When:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}
