package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/c3pm/internal/app"
)

func (c *CLI) newNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a new project in a new directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			language, _ := cmd.Flags().GetString("language")
			generator, _ := cmd.Flags().GetString("generator")
			folder, _ := cmd.Flags().GetString("folder")
			return c.app.CreateProject(cmd.Context(), c.dir, app.NewOptions{
				Name:      args[0],
				Language:  language,
				Generator: generator,
				Folder:    folder,
			})
		},
	}
	addProjectFlags(cmd)
	cmd.Flags().StringP("folder", "f", "", "Directory to create (default <name>)")
	return cmd
}

func (c *CLI) newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [name]",
		Short: "Create a new project in the current directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			language, _ := cmd.Flags().GetString("language")
			generator, _ := cmd.Flags().GetString("generator")
			opts := app.InitOptions{Language: language, Generator: generator}
			if len(args) == 1 {
				opts.Name = args[0]
			}
			return c.app.Init(cmd.Context(), c.dir, opts)
		},
	}
	addProjectFlags(cmd)
	return cmd
}
