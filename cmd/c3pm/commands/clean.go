package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/c3pm/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the build directory and collected artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, _ := cmd.Flags().GetBool("deps")
			return c.app.Clean(cmd.Context(), c.dir, app.CleanOptions{Deps: deps})
		},
	}

	cmd.Flags().Bool("deps", false, "Also remove fetched dependencies and the lockfile")

	return cmd
}
