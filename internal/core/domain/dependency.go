// Package domain holds the core types of c3pm: dependency declarations, projects and the error taxonomy.
package domain

import (
	"fmt"
	"strings"

	"go.trai.ch/zerr"
)

// Host identifies a supported remote repository host.
type Host string

const (
	// HostGitHub is the default host.
	HostGitHub Host = "github"
	// HostGitLab is gitlab.com.
	HostGitLab Host = "gitlab"
	// HostBitbucket is bitbucket.org.
	HostBitbucket Host = "bitbucket"
	// HostCodeberg is codeberg.org.
	HostCodeberg Host = "codeberg"
)

var hostDomains = map[Host]string{
	HostGitHub:    "github.com",
	HostGitLab:    "gitlab.com",
	HostBitbucket: "bitbucket.org",
	HostCodeberg:  "codeberg.org",
}

// ParseHost converts a manifest host value into a Host.
// An empty value selects HostGitHub. Both the short name ("gitlab") and the
// domain ("gitlab.com") are accepted, case-insensitively.
func ParseHost(s string) (Host, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return HostGitHub, nil
	}
	for h, d := range hostDomains {
		if v == string(h) || v == d {
			return h, nil
		}
	}
	return "", zerr.With(ErrUnknownHost, "host", s)
}

// Domain returns the DNS name of the host. The zero Host maps to github.com.
func (h Host) Domain() string {
	if d, ok := hostDomains[h]; ok {
		return d
	}
	return hostDomains[HostGitHub]
}

// Dependency is one entry of a project's dependency manifest.
type Dependency struct {
	// Name identifies the dependency inside its manifest and is used as its directory name.
	Name string

	// Host is the remote repository host.
	Host Host

	// Owner is the user or namespace owning the repository.
	Owner string

	// Repository is the repository name under Owner.
	Repository string

	// Revision is a branch, tag or commit. Empty means the host's default branch.
	Revision string
}

// RemoteURL returns the clone URL of the dependency: https://<host>/<owner>/<repository>.git.
func (d Dependency) RemoteURL() string {
	return fmt.Sprintf("https://%s/%s/%s.git", d.Host.Domain(), d.Owner, d.Repository)
}

// Manifest is the ordered list of dependencies declared by one project directory.
type Manifest struct {
	Dependencies []Dependency

	// Digest is a hex-encoded content hash of the manifest file.
	Digest string
}

// FetchResult describes the on-disk state of a dependency after a fetch.
type FetchResult struct {
	// Dir is the working copy location.
	Dir string

	// Commit is the commit checked out at Dir.
	Commit string

	// Existing reports that Dir already held a repository and the clone was skipped.
	Existing bool
}

// ResolvedDependency records one dependency materialized by a resolution.
type ResolvedDependency struct {
	Dependency Dependency

	// Path is the dependency directory relative to the resolution root.
	Path string

	// Depth is 1 for direct dependencies of the root project.
	Depth int

	// Commit is the commit at HEAD of the working copy.
	Commit string

	// Existing reports that the dependency was already present on disk.
	Existing bool

	// SubtreeSkipped reports that the dependencies nested under Path were not visited.
	SubtreeSkipped bool
}

// Resolution is the pre-order list of dependencies produced by resolving a project tree.
type Resolution struct {
	// Root is the project directory the resolution started from.
	Root string

	// Digest is the digest of the root manifest. Empty when the root has no manifest.
	Digest string

	Dependencies []ResolvedDependency
}

// Fetched returns the number of dependencies cloned during the resolution.
func (r *Resolution) Fetched() int {
	n := 0
	for _, d := range r.Dependencies {
		if !d.Existing {
			n++
		}
	}
	return n
}

// SkippedSubtrees returns the paths of the dependencies whose nested
// dependencies were not visited.
func (r *Resolution) SkippedSubtrees() []string {
	var paths []string
	for _, d := range r.Dependencies {
		if d.SubtreeSkipped {
			paths = append(paths, d.Path)
		}
	}
	return paths
}

// ResolveOptions tunes a dependency resolution.
type ResolveOptions struct {
	// SkipExistingSubtrees stops the resolver from descending into dependencies
	// that were already present on disk.
	SkipExistingSubtrees bool
}
