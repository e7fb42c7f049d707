package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/c3pm/internal/app"
)

func (c *CLI) newDepsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Fetch the dependencies declared in .c3pm.toml",
		Long: `Fetch every dependency declared in .c3pm.toml into deps/<name>, then the
dependencies of those dependencies into their own deps directories.

Dependencies already on disk are not cloned or checked out again, but their
own .c3pm.toml is still read and their nested dependencies are resolved. Pass
--shallow-existing to stop at dependencies already on disk; the lockfile then
keeps the entries previously recorded under them. The resolved commits are
recorded in c3pm.lock.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			shallow, _ := cmd.Flags().GetBool("shallow-existing")
			return c.app.Deps(cmd.Context(), c.dir, app.DepsOptions{ShallowExisting: shallow})
		},
	}

	cmd.Flags().Bool("shallow-existing", false, "Do not descend into dependencies that already exist on disk")

	return cmd
}
