package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teemow/weekplanner/internal/week"
)

func newOccurringCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "occurring <user> <day> <HHMM>",
		Short:   "List a user's events in progress at a point in the week",
		Example: "  weekplanner occurring alice Tuesday 1430 --load alice.xml",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := week.ParseClock(args[1], args[2])
			if err != nil {
				return err
			}

			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			p, err := loadPlanner(root.schedulePaths(cfg), newLogger(cfg))
			if err != nil {
				return err
			}

			events, err := p.OccurringAt(args[0], at)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintf(out, "No events for %s at %s\n", args[0], at)
				return nil
			}
			for _, e := range events {
				fmt.Fprintln(out, e)
			}
			return nil
		},
	}
}
