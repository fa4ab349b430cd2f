package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newShowCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show [user]",
		Short: "Print schedules grouped by day",
		Long:  "Load the schedules and print one user's week, or every user's when none is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			p, err := loadPlanner(root.schedulePaths(cfg), newLogger(cfg))
			if err != nil {
				return err
			}

			user := ""
			if len(args) == 1 {
				user = args[0]
			}
			out, err := p.Render(user)
			if err != nil {
				return err
			}
			if out == "" {
				out = "No users loaded. Use --load or the config's schedules."
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
