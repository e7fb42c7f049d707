// Package cmake drives the cmake binary to configure and build projects.
package cmake

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"regexp"
	"strconv"

	"go.trai.ch/c3pm/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// DefaultBinary is the executable looked up on PATH.
const DefaultBinary = "cmake"

var versionPattern = regexp.MustCompile(`cmake version (\d+\.\d+(?:\.\d+)?)`)

// Runner implements ports.BuildSystem by running cmake as a child process.
type Runner struct {
	binary string
}

// NewRunner creates a Runner using binary, or DefaultBinary when empty.
func NewRunner(binary string) *Runner {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Runner{binary: binary}
}

// Version returns the installed cmake version, e.g. "3.28.1".
func (r *Runner) Version(ctx context.Context) (string, error) {
	if _, err := exec.LookPath(r.binary); err != nil {
		return "", errors.Join(domain.ErrCMakeNotFound, zerr.With(zerr.Wrap(err, "look up cmake"), "binary", r.binary))
	}

	var out bytes.Buffer
	if err := r.run(ctx, []string{"--version"}, &out, io.Discard); err != nil {
		return "", errors.Join(domain.ErrCMakeVersion, err)
	}

	v, err := parseVersion(out.Bytes())
	if err != nil {
		return "", errors.Join(domain.ErrCMakeVersion, err)
	}
	return v, nil
}

// Configure runs `cmake -S <src> -B <build>` with the generator and compilers of spec.
func (r *Runner) Configure(ctx context.Context, spec domain.ConfigureSpec, stdout, stderr io.Writer) error {
	if err := r.run(ctx, configureArgs(spec), stdout, stderr); err != nil {
		return errors.Join(domain.ErrConfigureFailed, err)
	}
	return nil
}

// Build runs `cmake --build <build> --parallel <jobs> --config <config>`.
func (r *Runner) Build(ctx context.Context, spec domain.BuildSpec, stdout, stderr io.Writer) error {
	if err := r.run(ctx, buildArgs(spec), stdout, stderr); err != nil {
		return errors.Join(domain.ErrBuildFailed, err)
	}
	return nil
}

func configureArgs(spec domain.ConfigureSpec) []string {
	args := []string{"-S", spec.SourceDir, "-B", spec.BuildDir}
	if spec.Generator != "" {
		args = append(args, "-G", spec.Generator.String())
	}
	if spec.CCompiler != "" {
		args = append(args, "-DCMAKE_C_COMPILER="+spec.CCompiler)
	}
	if spec.CXXCompiler != "" {
		args = append(args, "-DCMAKE_CXX_COMPILER="+spec.CXXCompiler)
	}
	return args
}

func buildArgs(spec domain.BuildSpec) []string {
	args := []string{"--build", spec.BuildDir}
	if spec.Jobs > 0 {
		args = append(args, "--parallel", strconv.Itoa(spec.Jobs))
	}
	if spec.Config != "" {
		args = append(args, "--config", spec.Config.String())
	}
	return args
}

func parseVersion(out []byte) (string, error) {
	sc := bufio.NewScanner(bytes.NewReader(out))
	if sc.Scan() {
		if m := versionPattern.FindSubmatch(sc.Bytes()); m != nil {
			return string(m[1]), nil
		}
	}
	return "", zerr.With(zerr.New("unrecognized cmake version output"), "output", string(bytes.TrimSpace(out)))
}

// run starts the command and copies its stdout and stderr concurrently until
// both pipes are drained, then waits for the process.
func (r *Runner) run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, r.binary, args...) //nolint:gosec // arguments are built from validated project settings

	outPipe, err := cmd.StdoutPipe()
	if err != nil {
		return zerr.Wrap(err, "open stdout pipe")
	}
	errPipe, err := cmd.StderrPipe()
	if err != nil {
		return zerr.Wrap(err, "open stderr pipe")
	}

	if err := cmd.Start(); err != nil {
		return zerr.With(zerr.Wrap(err, "start cmake"), "binary", r.binary)
	}

	var g errgroup.Group
	g.Go(func() error {
		_, err := io.Copy(stdout, outPipe)
		return err
	})
	g.Go(func() error {
		_, err := io.Copy(stderr, errPipe)
		return err
	})
	copyErr := g.Wait()

	if err := cmd.Wait(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.With(zerr.Wrap(err, "cmake failed"), "exit_code", exitCode), "args", args)
	}
	if copyErr != nil {
		return zerr.Wrap(copyErr, "copy cmake output")
	}
	return nil
}
