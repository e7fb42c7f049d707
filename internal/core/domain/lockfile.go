package domain

import "strings"

// LockfileVersion is the current lockfile format version.
const LockfileVersion = 1

// Lockfile records the commits a resolution materialized, for review and drift reporting.
type Lockfile struct {
	// Version is the lockfile format version.
	Version int

	// ManifestDigest is the digest of the root manifest the lockfile was produced from.
	ManifestDigest string

	Dependencies []LockedDependency
}

// LockedDependency is one materialized dependency.
type LockedDependency struct {
	Name     string
	Path     string
	URL      string
	Revision string
	Commit   string
}

// NewLockfile builds a lockfile from a resolution.
func NewLockfile(r *Resolution) *Lockfile {
	lock := &Lockfile{
		Version:        LockfileVersion,
		ManifestDigest: r.Digest,
		Dependencies:   make([]LockedDependency, 0, len(r.Dependencies)),
	}
	for _, d := range r.Dependencies {
		lock.Dependencies = append(lock.Dependencies, LockedDependency{
			Name:     d.Dependency.Name,
			Path:     d.Path,
			URL:      d.Dependency.RemoteURL(),
			Revision: d.Dependency.Revision,
			Commit:   d.Commit,
		})
	}
	return lock
}

// RetainSubtrees copies the entries of prev nested under each of roots into l,
// right after their root entry. Entries already in l are kept as they are.
// It is used for subtrees a resolution did not visit, so their last known
// state stays recorded.
func (l *Lockfile) RetainSubtrees(prev *Lockfile, roots []string) {
	if prev == nil || len(roots) == 0 {
		return
	}

	present := make(map[string]bool, len(l.Dependencies))
	for _, d := range l.Dependencies {
		present[d.Path] = true
	}

	nested := make(map[string][]LockedDependency)
	for _, d := range prev.Dependencies {
		if present[d.Path] {
			continue
		}
		for _, root := range roots {
			if strings.HasPrefix(d.Path, root+"/") {
				nested[root] = append(nested[root], d)
				break
			}
		}
	}
	if len(nested) == 0 {
		return
	}

	merged := make([]LockedDependency, 0, len(l.Dependencies)+len(prev.Dependencies))
	for _, d := range l.Dependencies {
		merged = append(merged, d)
		merged = append(merged, nested[d.Path]...)
	}
	l.Dependencies = merged
}

// Drift describes a dependency whose commit changed between two lockfiles.
type Drift struct {
	Path string
	From string
	To   string
}

// DriftFrom compares l against a previous lockfile and returns the dependencies,
// keyed by path, whose commit differs. Entries new in l have an empty From;
// entries only present in prev have an empty To.
func (l *Lockfile) DriftFrom(prev *Lockfile) []Drift {
	if prev == nil {
		return nil
	}

	old := make(map[string]string, len(prev.Dependencies))
	for _, d := range prev.Dependencies {
		old[d.Path] = d.Commit
	}

	var drift []Drift
	seen := make(map[string]bool, len(l.Dependencies))
	for _, d := range l.Dependencies {
		seen[d.Path] = true
		if c, ok := old[d.Path]; !ok || c != d.Commit {
			drift = append(drift, Drift{Path: d.Path, From: old[d.Path], To: d.Commit})
		}
	}
	for _, d := range prev.Dependencies {
		if !seen[d.Path] {
			drift = append(drift, Drift{Path: d.Path, From: d.Commit})
		}
	}
	return drift
}
