package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teemow/weekplanner/internal/calendarfile"
)

func newConvertCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "convert <input> [output]",
		Short: "Convert a schedule between XML, YAML and iCalendar",
		Long: `Read a schedule file and write it in another format. Formats are taken
from the file extensions. Without an output file the result is printed in
--format.`,
		Example: `  weekplanner convert alice.xml alice.ics
  weekplanner convert alice.ics --format yaml`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := calendarfile.Load(args[0])
			if err != nil {
				return err
			}

			if len(args) == 2 {
				if err := calendarfile.Save(args[1], doc); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d events of %s to %s\n", len(doc.Events), doc.UserID, args[1])
				return nil
			}

			f, err := calendarfile.ParseFormat(format)
			if err != nil {
				return err
			}
			return calendarfile.Encode(cmd.OutOrStdout(), f, doc)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(calendarfile.FormatYAML), "Output format when printing: xml, yaml or ics")

	return cmd
}
