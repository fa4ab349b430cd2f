package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootOptions are the flags shared by every command.
type rootOptions struct {
	configPath string
	load       []string
	debug      bool
}

// rootCmd represents the base command for the weekplanner application
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "weekplanner",
		Short: "Finds meeting slots in recurring weekly schedules",
		Long: `weekplanner keeps a recurring weekly schedule per user and finds the
earliest time that suits a host and every invitee.

It can run as:
  - A CLI that loads schedule files, searches and prints the result
  - An MCP (Model Context Protocol) server for AI assistants`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to the YAML config file. Created with defaults if missing. Without it, built-in defaults and WEEKPLANNER_* env vars are used.")
	cmd.PersistentFlags().StringSliceVar(&opts.load, "load", nil, "Schedule files to load in addition to the config's schedules (.xml, .yaml, .ics)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newScheduleCmd(opts))
	cmd.AddCommand(newShowCmd(opts))
	cmd.AddCommand(newOccurringCmd(opts))
	cmd.AddCommand(newConvertCmd())
	cmd.AddCommand(newGenerateDocsCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "weekplanner version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
