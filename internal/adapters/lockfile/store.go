// Package lockfile stores the c3pm.lock file as YAML.
package lockfile

import (
	"errors"
	"io/fs"
	"os"

	"go.trai.ch/c3pm/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// document is the YAML layout of c3pm.lock.
type document struct {
	Version        int          `yaml:"version"`
	ManifestDigest string       `yaml:"manifest_digest,omitempty"`
	Dependencies   []dependency `yaml:"dependencies"`
}

type dependency struct {
	Name     string `yaml:"name"`
	Path     string `yaml:"path"`
	URL      string `yaml:"url"`
	Revision string `yaml:"revision,omitempty"`
	Commit   string `yaml:"commit"`
}

// Store implements ports.LockfileStore.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Read loads the lockfile of dir. It returns nil, nil when there is none.
func (s *Store) Read(dir string) (*domain.Lockfile, error) {
	path := domain.LockfilePath(dir)

	data, err := os.ReadFile(path) //nolint:gosec // path is built from the project directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Join(domain.ErrLockfileReadFailed, zerr.With(zerr.Wrap(err, "read lockfile"), "path", path))
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(domain.ErrLockfileReadFailed, zerr.With(zerr.Wrap(err, "decode lockfile"), "path", path))
	}

	if doc.Version != domain.LockfileVersion {
		return nil, errors.Join(domain.ErrLockfileReadFailed,
			zerr.With(zerr.With(zerr.New("unsupported lockfile version"), "version", doc.Version), "path", path))
	}

	lock := &domain.Lockfile{
		Version:        doc.Version,
		ManifestDigest: doc.ManifestDigest,
		Dependencies:   make([]domain.LockedDependency, 0, len(doc.Dependencies)),
	}
	for _, d := range doc.Dependencies {
		lock.Dependencies = append(lock.Dependencies, domain.LockedDependency(d))
	}
	return lock, nil
}

// Write replaces the lockfile of dir with lock.
func (s *Store) Write(dir string, lock *domain.Lockfile) error {
	path := domain.LockfilePath(dir)

	doc := document{
		Version:        lock.Version,
		ManifestDigest: lock.ManifestDigest,
		Dependencies:   make([]dependency, 0, len(lock.Dependencies)),
	}
	for _, d := range lock.Dependencies {
		doc.Dependencies = append(doc.Dependencies, dependency(d))
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return errors.Join(domain.ErrLockfileWriteFailed, zerr.Wrap(err, "encode lockfile"))
	}

	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return errors.Join(domain.ErrLockfileWriteFailed, zerr.With(zerr.Wrap(err, "write lockfile"), "path", path))
	}
	return nil
}

// Remove deletes the lockfile of dir. A missing lockfile is not an error.
func (s *Store) Remove(dir string) error {
	path := domain.LockfilePath(dir)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Join(domain.ErrCleanFailed, zerr.With(zerr.Wrap(err, "remove lockfile"), "path", path))
	}
	return nil
}
