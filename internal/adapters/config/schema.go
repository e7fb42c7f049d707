package config

import (
	"go.trai.ch/zerr"
)

// File is the on-disk layout of a .c3pm.toml manifest.
// Dependency repositories may carry only the deps array.
type File struct {
	Project *ProjectDetails   `toml:"project-details,omitempty"`
	Dirs    map[string]string `toml:"dirs,omitempty"`
	Deps    []DependencyDTO   `toml:"deps,omitempty"`
}

// ProjectDetails is the [project-details] table.
type ProjectDetails struct {
	Name        string `toml:"name"`
	Language    string `toml:"language"`
	Generator   string `toml:"generator,omitempty"`
	CCompiler   string `toml:"c-compiler,omitempty"`
	CXXCompiler string `toml:"cxx-compiler,omitempty"`
}

// DependencyDTO is one [[deps]] entry. Two shapes are accepted:
//
//	[[deps]]
//	name = "fmt"
//	owner = "fmtlib"
//	repository = "fmt"
//
//	[[deps]]
//	dependency = { name = "fmt", repository = ["fmtlib", "fmt"], revision = "10.2.1" }
//
// Save always writes the flat shape.
type DependencyDTO struct {
	Name       string         `toml:"name,omitempty"`
	Host       string         `toml:"host,omitempty"`
	Owner      string         `toml:"owner,omitempty"`
	Repository RepositoryRef  `toml:"repository"`
	Revision   string         `toml:"revision,omitempty"`
	Version    string         `toml:"version,omitempty"`
	Dependency *DependencyDTO `toml:"dependency,omitempty"`
}

// RepositoryRef is the repository field of a dependency: either a bare
// repository name or an [owner, repository] pair.
type RepositoryRef struct {
	Owner string
	Name  string
}

// UnmarshalTOML implements toml.Unmarshaler.
func (r *RepositoryRef) UnmarshalTOML(v any) error {
	switch val := v.(type) {
	case string:
		r.Name = val
		return nil
	case []any:
		if len(val) != 2 {
			return zerr.With(zerr.New("repository must be [owner, repository]"), "elements", len(val))
		}
		owner, ok1 := val[0].(string)
		name, ok2 := val[1].(string)
		if !ok1 || !ok2 {
			return zerr.New("repository pair must hold strings")
		}
		r.Owner, r.Name = owner, name
		return nil
	default:
		return zerr.With(zerr.New("repository must be a string or [owner, repository]"), "type", typeName(v))
	}
}

// MarshalText implements encoding.TextMarshaler. Only the repository name is
// written; the owner goes to its own key.
func (r RepositoryRef) MarshalText() ([]byte, error) {
	return []byte(r.Name), nil
}

func typeName(v any) string {
	switch v.(type) {
	case int64:
		return "integer"
	case float64:
		return "float"
	case bool:
		return "boolean"
	case map[string]any:
		return "table"
	default:
		return "unknown"
	}
}

// normalize folds the nested dependency table into the flat shape.
func (d DependencyDTO) normalize() (DependencyDTO, error) {
	if d.Dependency != nil {
		if d.Name != "" || d.Owner != "" || d.Repository != (RepositoryRef{}) {
			return DependencyDTO{}, zerr.New("dependency table mixed with flat fields")
		}
		if d.Dependency.Dependency != nil {
			return DependencyDTO{}, zerr.New("nested dependency table")
		}
		d = *d.Dependency
	}

	if d.Repository.Owner != "" {
		if d.Owner != "" && d.Owner != d.Repository.Owner {
			return DependencyDTO{}, zerr.With(zerr.New("conflicting dependency owner"), "owner", d.Owner)
		}
		d.Owner = d.Repository.Owner
	}
	if d.Revision == "" {
		d.Revision = d.Version
	}
	return d, nil
}
