// Package commands implements the CLI commands for c3pm.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/c3pm/internal/app"
	"go.trai.ch/c3pm/internal/build"
	"go.trai.ch/c3pm/internal/core/domain"
)

// CLI represents the command line interface for c3pm.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	dir     string
}

// Application represents the application logic interface.
type Application interface {
	SetOutputMode(mode string)
	CreateProject(ctx context.Context, parent string, opts app.NewOptions) error
	Init(ctx context.Context, dir string, opts app.InitOptions) error
	Build(ctx context.Context, dir string, opts app.BuildOptions) error
	Clean(ctx context.Context, dir string, opts app.CleanOptions) error
	Reconfigure(ctx context.Context, dir, generator string) error
	Deps(ctx context.Context, dir string, opts app.DepsOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:           "c3pm",
		Short:         "Scaffold, build and manage dependencies of C and C++ projects",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			mode, _ := cmd.Flags().GetString("output-mode")
			c.app.SetOutputMode(mode)
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("output-mode", "o", "auto", "Output mode: auto, pretty, linear or json")
	rootCmd.PersistentFlags().StringVarP(&c.dir, "dir", "C", ".", "Run as if c3pm was started in this directory")
	_ = rootCmd.RegisterFlagCompletionFunc("output-mode", fixedCompletion("auto", "pretty", "linear", "json"))

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newNewCmd())
	rootCmd.AddCommand(c.newInitCmd())
	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newReconfigureCmd())
	rootCmd.AddCommand(c.newDepsCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func fixedCompletion(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

func addProjectFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("language", "l", "", "Language standard (default cpp23)")
	cmd.Flags().StringP("generator", "g", "", "CMake generator")
	_ = cmd.RegisterFlagCompletionFunc("language", fixedCompletion(domain.LanguageNames()...))
	_ = cmd.RegisterFlagCompletionFunc("generator", fixedCompletion(domain.GeneratorNames()...))
}
