package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/c3pm/internal/app"
	"go.trai.ch/c3pm/internal/core/domain"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Configure and build the project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			jobs, _ := cmd.Flags().GetInt("jobs")
			config, _ := cmd.Flags().GetString("config")
			generator, _ := cmd.Flags().GetString("generator")
			return c.app.Build(cmd.Context(), c.dir, app.BuildOptions{
				Jobs:      jobs,
				Config:    config,
				Generator: generator,
			})
		},
	}
	cmd.Flags().IntP("jobs", "j", 0, "Number of parallel build jobs (default: number of CPUs)")
	cmd.Flags().StringP("config", "c", domain.BuildConfigDebug.String(), "Build configuration: Debug, RelWithDebInfo, Release or MinSizeRel")
	cmd.Flags().StringP("generator", "g", "", "CMake generator overriding the project setting")
	_ = cmd.RegisterFlagCompletionFunc("config", fixedCompletion(
		domain.BuildConfigDebug.String(),
		domain.BuildConfigRelWithDebInfo.String(),
		domain.BuildConfigRelease.String(),
		domain.BuildConfigMinSizeRel.String(),
	))
	_ = cmd.RegisterFlagCompletionFunc("generator", fixedCompletion(domain.GeneratorNames()...))
	return cmd
}

func (c *CLI) newReconfigureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconfigure [generator]",
		Short: "Remove the build directory and configure the project again",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var generator string
			if len(args) == 1 {
				generator = args[0]
			}
			return c.app.Reconfigure(cmd.Context(), c.dir, generator)
		},
	}
}
