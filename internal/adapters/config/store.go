// Package config reads and writes the .c3pm.toml project manifest.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/cespare/xxhash/v2"
	"go.trai.ch/c3pm/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.ManifestReader and ports.ProjectStore on .c3pm.toml files.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Read parses the dependency part of the manifest in dir.
func (s *Store) Read(dir string) (*domain.Manifest, error) {
	path := domain.ManifestPath(dir)

	data, err := os.ReadFile(path) //nolint:gosec // path is built from the project directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Join(domain.ErrManifestNotFound, zerr.With(zerr.Wrap(err, "read manifest"), "path", path))
		}
		return nil, errors.Join(domain.ErrManifestParse, zerr.With(zerr.Wrap(err, "read manifest"), "path", path))
	}

	file, err := decode(data)
	if err != nil {
		return nil, errors.Join(domain.ErrManifestParse, zerr.With(err, "path", path))
	}

	deps, err := toDependencies(file.Deps)
	if err != nil {
		return nil, errors.Join(domain.ErrManifestParse, zerr.With(err, "path", path))
	}

	return &domain.Manifest{
		Dependencies: deps,
		Digest:       digest(data),
	}, nil
}

// Load reads the full project description from the manifest in dir.
func (s *Store) Load(dir string) (*domain.Project, error) {
	path := domain.ManifestPath(dir)

	data, err := os.ReadFile(path) //nolint:gosec // path is built from the project directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Join(domain.ErrProjectConfigNotFound, zerr.With(zerr.Wrap(err, "read manifest"), "path", path))
		}
		return nil, errors.Join(domain.ErrManifestParse, zerr.With(zerr.Wrap(err, "read manifest"), "path", path))
	}

	file, err := decode(data)
	if err != nil {
		return nil, errors.Join(domain.ErrManifestParse, zerr.With(err, "path", path))
	}

	project, err := toProject(file)
	if err != nil {
		return nil, errors.Join(domain.ErrManifestParse, zerr.With(err, "path", path))
	}
	return project, nil
}

// Save writes project as the manifest of dir, replacing any existing file.
func (s *Store) Save(dir string, project *domain.Project) error {
	path := domain.ManifestPath(dir)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, domain.FilePerm) //nolint:gosec // path is built from the project directory
	if err != nil {
		return errors.Join(domain.ErrProjectConfigWriteFailed, zerr.With(zerr.Wrap(err, "open manifest"), "path", path))
	}

	if err := toml.NewEncoder(f).Encode(fromProject(project)); err != nil {
		_ = f.Close()
		return errors.Join(domain.ErrProjectConfigWriteFailed, zerr.With(zerr.Wrap(err, "encode manifest"), "path", path))
	}

	if err := f.Close(); err != nil {
		return errors.Join(domain.ErrProjectConfigWriteFailed, zerr.With(zerr.Wrap(err, "close manifest"), "path", path))
	}
	return nil
}

func decode(data []byte) (*File, error) {
	var file File
	if _, err := toml.Decode(string(data), &file); err != nil {
		return nil, zerr.Wrap(err, "decode manifest")
	}
	return &file, nil
}

func digest(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

func toDependencies(dtos []DependencyDTO) ([]domain.Dependency, error) {
	deps := make([]domain.Dependency, 0, len(dtos))
	seen := make(map[string]bool, len(dtos))

	for i, raw := range dtos {
		dto, err := raw.normalize()
		if err != nil {
			return nil, zerr.With(err, "index", i)
		}
		if err := requireFields(dto); err != nil {
			return nil, zerr.With(zerr.With(err, "index", i), "dependency", dto.Name)
		}
		if seen[dto.Name] {
			return nil, zerr.With(zerr.New("duplicate dependency name"), "dependency", dto.Name)
		}
		seen[dto.Name] = true

		host, err := domain.ParseHost(dto.Host)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "invalid host"), "dependency", dto.Name)
		}

		deps = append(deps, domain.Dependency{
			Name:       dto.Name,
			Host:       host,
			Owner:      dto.Owner,
			Repository: dto.Repository.Name,
			Revision:   dto.Revision,
		})
	}
	return deps, nil
}

func requireFields(dto DependencyDTO) error {
	for _, f := range []struct{ key, value string }{
		{"name", dto.Name},
		{"owner", dto.Owner},
		{"repository", dto.Repository.Name},
	} {
		if f.value == "" {
			return zerr.With(zerr.New("missing required dependency field"), "field", f.key)
		}
	}
	return nil
}

func toProject(file *File) (*domain.Project, error) {
	if file.Project == nil {
		return nil, zerr.New("missing [project-details] table")
	}
	if file.Project.Name == "" {
		return nil, zerr.With(zerr.New("missing required project field"), "field", "name")
	}

	lang := domain.DefaultLanguage
	if file.Project.Language != "" {
		var err error
		if lang, err = domain.ParseLanguage(file.Project.Language); err != nil {
			return nil, zerr.Wrap(err, "invalid language")
		}
	}

	gen, err := domain.ParseGenerator(file.Project.Generator)
	if err != nil {
		return nil, zerr.Wrap(err, "invalid generator")
	}

	deps, err := toDependencies(file.Deps)
	if err != nil {
		return nil, err
	}

	project := domain.NewProject(file.Project.Name, lang, gen)
	project.CCompiler = file.Project.CCompiler
	project.CXXCompiler = file.Project.CXXCompiler
	project.Dependencies = deps
	for k, v := range file.Dirs {
		project.Dirs[k] = v
	}
	return project, nil
}

func fromProject(p *domain.Project) *File {
	file := &File{
		Project: &ProjectDetails{
			Name:        p.Name,
			Language:    p.Language.String(),
			Generator:   p.Generator.String(),
			CCompiler:   p.CCompiler,
			CXXCompiler: p.CXXCompiler,
		},
		Dirs: map[string]string{
			"sources": p.SourcesDir(),
			"headers": p.HeadersDir(),
			"build":   p.BuildDir(),
		},
	}
	for _, d := range p.Dependencies {
		dto := DependencyDTO{
			Name:       d.Name,
			Owner:      d.Owner,
			Repository: RepositoryRef{Name: d.Repository},
			Revision:   d.Revision,
		}
		if d.Host != "" && d.Host != domain.HostGitHub {
			dto.Host = string(d.Host)
		}
		file.Deps = append(file.Deps, dto)
	}
	return file
}
