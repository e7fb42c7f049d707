// Package app implements the application layer for c3pm.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/c3pm/internal/adapters/detector"
	"go.trai.ch/c3pm/internal/adapters/telemetry"
	"go.trai.ch/c3pm/internal/core/domain"
	"go.trai.ch/c3pm/internal/core/ports"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	projects   ports.ProjectStore
	resolver   ports.DependencyResolver
	locks      ports.LockfileStore
	vcs        ports.VersionControl
	cmake      ports.BuildSystem
	scaffolder ports.Scaffolder
	artifacts  ports.ArtifactCollector
	logger     ports.Logger
	tracer     *telemetry.OTelTracer
	renderer   ports.Renderer
	toolchain  domain.Toolchain

	jsonMode bool
	provider *sdktrace.TracerProvider
}

// New creates a new App instance.
func New(
	projects ports.ProjectStore,
	resolver ports.DependencyResolver,
	locks ports.LockfileStore,
	vcs ports.VersionControl,
	cmake ports.BuildSystem,
	scaffolder ports.Scaffolder,
	artifacts ports.ArtifactCollector,
	log ports.Logger,
	tracer *telemetry.OTelTracer,
	renderer ports.Renderer,
	toolchain domain.Toolchain,
) *App {
	return &App{
		projects:   projects,
		resolver:   resolver,
		locks:      locks,
		vcs:        vcs,
		cmake:      cmake,
		scaffolder: scaffolder,
		artifacts:  artifacts,
		logger:     log,
		tracer:     tracer,
		renderer:   renderer,
		toolchain:  toolchain,
	}
}

type jsonLogger interface {
	SetJSON(enable bool)
}

// SetOutputMode selects how logs and progress are rendered.
// mode is one of "auto", "pretty", "linear" or "json"; anything else means "auto".
func (a *App) SetOutputMode(mode string) {
	a.applyOutputMode(detector.ResolveMode(detector.DetectEnvironment(), mode))
}

func (a *App) applyOutputMode(mode detector.OutputMode) {
	if mode == detector.ModeJSON {
		a.jsonMode = true
		if l, ok := a.logger.(jsonLogger); ok {
			l.SetJSON(true)
		}
		return
	}

	a.provider = telemetry.Setup(a.renderer)
	a.tracer.WithRenderer(a.renderer)
}

// Shutdown flushes pending progress output.
func (a *App) Shutdown(ctx context.Context) error {
	if a.provider == nil {
		return nil
	}
	return a.provider.Shutdown(ctx)
}

// NewOptions configures the creation of a project in a new directory.
type NewOptions struct {
	Name      string
	Language  string
	Generator string
	// Folder is the directory to create, relative to the parent. Defaults to Name.
	Folder string
}

// CreateProject creates a new project directory below parent and initializes it.
func (a *App) CreateProject(ctx context.Context, parent string, opts NewOptions) error {
	if err := validateName(opts.Name); err != nil {
		return err
	}

	folder := opts.Folder
	if folder == "" {
		folder = opts.Name
	}
	dir := filepath.Join(parent, folder)

	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return errors.Join(domain.ErrScaffoldFailed, zerr.With(zerr.Wrap(err, "create project directory"), "path", dir))
	}

	return a.initProject(ctx, dir, opts.Name, opts.Language, opts.Generator)
}

// InitOptions configures the initialization of a project in an existing directory.
type InitOptions struct {
	// Name defaults to the base name of the directory.
	Name      string
	Language  string
	Generator string
}

// Init turns dir into a project.
func (a *App) Init(ctx context.Context, dir string, opts InitOptions) error {
	name := opts.Name
	if name == "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return errors.Join(domain.ErrInvalidProjectName, zerr.Wrap(err, "resolve project directory"))
		}
		name = filepath.Base(abs)
	}
	if err := validateName(name); err != nil {
		return err
	}

	return a.initProject(ctx, dir, name, opts.Language, opts.Generator)
}

func (a *App) initProject(ctx context.Context, dir, name, language, generator string) error {
	if _, err := os.Stat(domain.ManifestPath(dir)); err == nil {
		return errors.Join(domain.ErrProjectExists, zerr.With(zerr.New("manifest already present"), "path", domain.ManifestPath(dir)))
	}

	lang := domain.DefaultLanguage
	if language != "" {
		l, err := domain.ParseLanguage(language)
		if err != nil {
			return err
		}
		lang = l
	}

	gen, err := domain.ParseGenerator(generator)
	if err != nil {
		return err
	}

	version, err := a.cmake.Version(ctx)
	if err != nil {
		return err
	}

	project := domain.NewProject(name, lang, gen)
	if err := a.scaffolder.Scaffold(dir, project, version); err != nil {
		return err
	}
	if err := a.projects.Save(dir, project); err != nil {
		return err
	}

	if err := a.vcs.Init(dir); err != nil {
		a.logger.Warn(fmt.Sprintf("could not initialize git repository: %v", err))
	}

	a.logger.Info(fmt.Sprintf("created %s project %s", lang, name))

	return a.configure(ctx, dir, project)
}

// BuildOptions configures a build.
type BuildOptions struct {
	// Jobs is the build parallelism. Zero uses the detected default.
	Jobs int
	// Config is the build configuration. Empty means Debug.
	Config string
	// Generator overrides the project generator for this build.
	Generator string
}

// Build configures and compiles the project in dir, then moves its artifacts
// into target/<config>.
func (a *App) Build(ctx context.Context, dir string, opts BuildOptions) error {
	project, err := a.projects.Load(dir)
	if err != nil {
		return err
	}

	config := domain.BuildConfigDebug
	if opts.Config != "" {
		if config, err = domain.ParseBuildConfig(opts.Config); err != nil {
			return err
		}
	}

	if opts.Generator != "" {
		if project.Generator, err = domain.ParseGenerator(opts.Generator); err != nil {
			return err
		}
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = a.toolchain.Jobs
	}

	if err := a.configure(ctx, dir, project); err != nil {
		return err
	}

	buildDir := filepath.Join(dir, project.BuildDir())
	err = a.runStep(ctx, "build", func(ctx context.Context, stdout, stderr io.Writer) error {
		return a.cmake.Build(ctx, domain.BuildSpec{BuildDir: buildDir, Jobs: jobs, Config: config}, stdout, stderr)
	})
	if err != nil {
		return err
	}

	moved, err := a.artifacts.Collect(buildDir, domain.TargetDir(dir, config), project.Name)
	if err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("built %s (%s): %d artifact(s) in %s",
		project.Name, config, len(moved), filepath.Join(domain.TargetDirName, config.String())))
	return nil
}

// CleanOptions configures the Clean method.
type CleanOptions struct {
	// Deps also removes fetched dependencies and the lockfile.
	Deps bool
}

// Clean removes build outputs of the project in dir.
func (a *App) Clean(_ context.Context, dir string, opts CleanOptions) error {
	project, err := a.projects.Load(dir)
	if err != nil {
		return err
	}

	var errs error
	remove := func(path string) {
		if _, err := os.Stat(path); err != nil {
			return
		}
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, "remove"), "path", path))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", path))
	}

	remove(filepath.Join(dir, project.BuildDir()))
	remove(filepath.Join(dir, domain.TargetDirName))

	if opts.Deps {
		remove(domain.DepsDir(dir))
		if err := a.locks.Remove(dir); err != nil {
			errs = errors.Join(errs, err)
		}
	}

	if errs != nil {
		return errors.Join(domain.ErrCleanFailed, errs)
	}
	return nil
}

// Reconfigure removes the build directory of the project in dir and configures it again.
// A non-empty generator replaces the project generator and is saved to the manifest.
func (a *App) Reconfigure(ctx context.Context, dir, generator string) error {
	project, err := a.projects.Load(dir)
	if err != nil {
		return err
	}

	if generator != "" {
		gen, err := domain.ParseGenerator(generator)
		if err != nil {
			return err
		}
		project.Generator = gen
		if err := a.projects.Save(dir, project); err != nil {
			return err
		}
	}

	buildDir := filepath.Join(dir, project.BuildDir())
	if err := os.RemoveAll(buildDir); err != nil {
		return errors.Join(domain.ErrCleanFailed, zerr.With(zerr.Wrap(err, "remove build directory"), "path", buildDir))
	}

	return a.configure(ctx, dir, project)
}

// DepsOptions configures dependency resolution.
type DepsOptions struct {
	// ShallowExisting skips the dependency trees of dependencies already on disk.
	ShallowExisting bool
}

// Deps resolves the dependency tree of the project in dir and records it in the lockfile.
func (a *App) Deps(ctx context.Context, dir string, opts DepsOptions) error {
	prev, err := a.locks.Read(dir)
	if err != nil {
		a.logger.Warn(fmt.Sprintf("ignoring unreadable lockfile: %v", err))
		prev = nil
	}

	ctx, span := a.tracer.Start(ctx, "resolve dependencies")
	res, err := a.resolver.Resolve(ctx, dir, domain.ResolveOptions{SkipExistingSubtrees: opts.ShallowExisting})
	if err != nil {
		span.RecordError(err)
		span.End()
		return err
	}
	span.SetAttribute("c3pm.dependencies", len(res.Dependencies))
	span.End()

	lock := domain.NewLockfile(res)
	lock.RetainSubtrees(prev, res.SkippedSubtrees())

	if len(lock.Dependencies) == 0 {
		if err := a.locks.Remove(dir); err != nil {
			return err
		}
	} else if err := a.locks.Write(dir, lock); err != nil {
		return err
	}

	a.reportDrift(lock.DriftFrom(prev))

	if len(res.Dependencies) == 0 {
		a.logger.Info("no dependencies declared")
		return nil
	}

	a.logger.Info(fmt.Sprintf("resolved %d dependencies (%d fetched, %d already present)",
		len(res.Dependencies), res.Fetched(), len(res.Dependencies)-res.Fetched()))
	return nil
}

func (a *App) reportDrift(drift []domain.Drift) {
	for _, d := range drift {
		switch {
		case d.From == "":
			a.logger.Info(fmt.Sprintf("%s: added at %s", d.Path, short(d.To)))
		case d.To == "":
			a.logger.Info(fmt.Sprintf("%s: removed (was %s)", d.Path, short(d.From)))
		default:
			a.logger.Info(fmt.Sprintf("%s: %s → %s", d.Path, short(d.From), short(d.To)))
		}
	}
}

func (a *App) configure(ctx context.Context, dir string, project *domain.Project) error {
	cc, cxx := a.toolchain.Compilers(project)
	spec := domain.ConfigureSpec{
		SourceDir:   dir,
		BuildDir:    filepath.Join(dir, project.BuildDir()),
		Generator:   project.Generator,
		CCompiler:   cc,
		CXXCompiler: cxx,
	}

	return a.runStep(ctx, "configure", func(ctx context.Context, stdout, stderr io.Writer) error {
		return a.cmake.Configure(ctx, spec, stdout, stderr)
	})
}

// runStep runs fn inside a span. Tool output goes to the span in pretty mode
// and to the logger in JSON mode.
func (a *App) runStep(ctx context.Context, name string, fn func(ctx context.Context, stdout, stderr io.Writer) error) error {
	ctx, span := a.tracer.Start(ctx, name)
	defer span.End()

	var stdout, stderr io.Writer = span, span
	if a.jsonMode {
		out, errOut := newLogWriter(a.logger.Info), newLogWriter(a.logger.Warn)
		defer out.Flush()
		defer errOut.Flush()
		stdout, stderr = out, errOut
	}

	if err := fn(ctx, stdout, stderr); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return errors.Join(domain.ErrInvalidProjectName, zerr.With(zerr.New("name must be a single path element"), "name", name))
	}
	return nil
}

func short(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
