package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/c3pm/cmd/c3pm/commands"
	"go.trai.ch/c3pm/internal/app"
	"go.trai.ch/c3pm/internal/build"
)

type call struct {
	method string
	dir    string
	opts   any
}

type mockApp struct {
	mode  string
	calls []call
	err   error
}

func (m *mockApp) SetOutputMode(mode string) { m.mode = mode }

func (m *mockApp) record(method, dir string, opts any) error {
	m.calls = append(m.calls, call{method: method, dir: dir, opts: opts})
	return m.err
}

func (m *mockApp) CreateProject(_ context.Context, parent string, opts app.NewOptions) error {
	return m.record("new", parent, opts)
}

func (m *mockApp) Init(_ context.Context, dir string, opts app.InitOptions) error {
	return m.record("init", dir, opts)
}

func (m *mockApp) Build(_ context.Context, dir string, opts app.BuildOptions) error {
	return m.record("build", dir, opts)
}

func (m *mockApp) Clean(_ context.Context, dir string, opts app.CleanOptions) error {
	return m.record("clean", dir, opts)
}

func (m *mockApp) Reconfigure(_ context.Context, dir, generator string) error {
	return m.record("reconfigure", dir, generator)
}

func (m *mockApp) Deps(_ context.Context, dir string, opts app.DepsOptions) error {
	return m.record("deps", dir, opts)
}

func execute(t *testing.T, m *mockApp, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(m)
	out := new(bytes.Buffer)
	cli.SetOutput(out, out)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return out.String(), err
}

func TestCommands_WireFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want call
	}{
		{
			name: "new",
			args: []string{"new", "demo", "-l", "c17", "-g", "Ninja", "-f", "work"},
			want: call{"new", ".", app.NewOptions{Name: "demo", Language: "c17", Generator: "Ninja", Folder: "work"}},
		},
		{
			name: "init with default name",
			args: []string{"init", "--language", "cpp20"},
			want: call{"init", ".", app.InitOptions{Language: "cpp20"}},
		},
		{
			name: "init with name",
			args: []string{"init", "tool"},
			want: call{"init", ".", app.InitOptions{Name: "tool"}},
		},
		{
			name: "build",
			args: []string{"build", "-j", "4", "-c", "Release", "-g", "Unix Makefiles"},
			want: call{"build", ".", app.BuildOptions{Jobs: 4, Config: "Release", Generator: "Unix Makefiles"}},
		},
		{
			name: "build defaults",
			args: []string{"-C", "proj", "build"},
			want: call{"build", "proj", app.BuildOptions{Config: "Debug"}},
		},
		{
			name: "clean",
			args: []string{"clean", "--deps"},
			want: call{"clean", ".", app.CleanOptions{Deps: true}},
		},
		{
			name: "reconfigure",
			args: []string{"reconfigure", "Ninja"},
			want: call{"reconfigure", ".", "Ninja"},
		},
		{
			name: "deps",
			args: []string{"deps", "--shallow-existing"},
			want: call{"deps", ".", app.DepsOptions{ShallowExisting: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockApp{}
			_, err := execute(t, m, tt.args...)
			require.NoError(t, err)
			require.Len(t, m.calls, 1)
			assert.Equal(t, tt.want, m.calls[0])
		})
	}
}

func TestCommands_OutputMode(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "--output-mode", "json", "deps")
	require.NoError(t, err)
	assert.Equal(t, "json", m.mode)

	m = &mockApp{}
	_, err = execute(t, m, "deps")
	require.NoError(t, err)
	assert.Equal(t, "auto", m.mode)
}

func TestCommands_Errors(t *testing.T) {
	t.Run("app error is returned", func(t *testing.T) {
		m := &mockApp{err: errors.New("simulated error")}
		_, err := execute(t, m, "build")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("new requires a name", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "new")
		require.Error(t, err)
		assert.Empty(t, m.calls)
	})

	t.Run("build rejects arguments", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "build", "extra")
		require.Error(t, err)
		assert.Empty(t, m.calls)
	})
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "c3pm version "+build.Version)

	out, err = execute(t, &mockApp{}, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "commit: "+build.Commit)
}

func TestCommands_DepsHelpDescribesExistingDependencies(t *testing.T) {
	m := &mockApp{}
	out, err := execute(t, m, "deps", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "their nested dependencies are resolved")
	assert.Contains(t, out, "--shallow-existing")
	assert.Empty(t, m.calls)
}
