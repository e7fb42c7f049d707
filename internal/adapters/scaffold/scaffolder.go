// Package scaffold writes the initial source tree of a new project.
package scaffold

import (
	"bytes"
	"embed"
	"errors"
	"os"
	"path/filepath"
	"text/template"

	"go.trai.ch/c3pm/internal/core/domain"
	"go.trai.ch/zerr"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// data is the template input.
type data struct {
	Name         string
	CMakeVersion string
	StdVar       string
	Standard     string
	Sources      string
	Headers      string
	Build        string
}

// file maps a template to its destination relative to the project root.
type file struct {
	template string
	path     string
}

// Scaffolder implements ports.Scaffolder.
type Scaffolder struct{}

// New creates a new Scaffolder.
func New() *Scaffolder {
	return &Scaffolder{}
}

// Scaffold creates the sources and headers directories, the example program
// for the project's language, CMakeLists.txt and a .gitignore. Existing files
// are never overwritten.
func (s *Scaffolder) Scaffold(dir string, project *domain.Project, cmakeVersion string) error {
	d := data{
		Name:         project.Name,
		CMakeVersion: cmakeVersion,
		StdVar:       "CXX",
		Standard:     project.Language.Standard(),
		Sources:      filepath.ToSlash(project.SourcesDir()),
		Headers:      filepath.ToSlash(project.HeadersDir()),
		Build:        filepath.ToSlash(project.BuildDir()),
	}
	if project.Language.IsC() {
		d.StdVar = "C"
	}

	for _, sub := range []string{project.SourcesDir(), project.HeadersDir()} {
		if err := os.MkdirAll(filepath.Join(dir, sub), domain.DirPerm); err != nil {
			return errors.Join(domain.ErrScaffoldFailed, zerr.With(zerr.Wrap(err, "create directory"), "path", sub))
		}
	}

	for _, f := range files(project) {
		if err := render(filepath.Join(dir, f.path), f.template, d); err != nil {
			return errors.Join(domain.ErrScaffoldFailed, zerr.With(err, "path", f.path))
		}
	}
	return nil
}

func files(p *domain.Project) []file {
	src, inc := p.SourcesDir(), p.HeadersDir()
	common := []file{
		{template: "CMakeLists.txt.tmpl", path: domain.CMakeListsFileName},
		{template: "gitignore.tmpl", path: ".gitignore"},
	}
	if p.Language.IsC() {
		return append(common,
			file{template: "main.c.tmpl", path: filepath.Join(src, "main.c")},
			file{template: "example.c.tmpl", path: filepath.Join(src, "example.c")},
			file{template: "example.h.tmpl", path: filepath.Join(inc, "example.h")},
		)
	}
	return append(common,
		file{template: "main.cpp.tmpl", path: filepath.Join(src, "main.cpp")},
		file{template: "example.cpp.tmpl", path: filepath.Join(src, "example.cpp")},
		file{template: "example.hpp.tmpl", path: filepath.Join(inc, "example.hpp")},
	)
}

func render(path, name string, d data) error {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, d); err != nil {
		return zerr.Wrap(err, "render template")
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, domain.FilePerm) //nolint:gosec // path is inside the project directory
	if err != nil {
		return zerr.Wrap(err, "create file")
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		return zerr.Wrap(err, "write file")
	}
	if err := f.Close(); err != nil {
		return zerr.Wrap(err, "close file")
	}
	return nil
}
