package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teemow/weekplanner/internal/logging"
	"github.com/teemow/weekplanner/internal/scheduling"
)

type scheduleOptions struct {
	name     string
	location string
	online   bool
	duration string
	invitees []string
	strategy string
	dryRun   bool
	save     bool
}

func newScheduleCmd(root *rootOptions) *cobra.Command {
	opts := &scheduleOptions{}

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Find the earliest slot for an event and add it",
		Long: `Load the schedules, search for the earliest slot that suits the host
(the first invitee) and every registered invitee, and add the event.

Strategies:
  - anytime: any time of the week, starting Sunday 0000
  - workhours: Monday 0900 to Friday 1700`,
		Example: `  weekplanner schedule --load alice.xml --load bob.yaml \
    --name Sync --location Zoom --online --duration 30 --invitees alice,bob`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchedule(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "Event name")
	cmd.Flags().StringVar(&opts.location, "location", "", "Event location")
	cmd.Flags().BoolVar(&opts.online, "online", false, "The event is held online")
	cmd.Flags().StringVar(&opts.duration, "duration", "", "Event length in minutes (1 to 10080)")
	cmd.Flags().StringSliceVar(&opts.invitees, "invitees", nil, "Comma-separated user ids, host first")
	cmd.Flags().StringVar(&opts.strategy, "strategy", "", "anytime or workhours (default: config strategy)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Only print the slot, do not add the event")
	cmd.Flags().BoolVar(&opts.save, "save", false, "Write the changed schedules to the config's schedule_dir")

	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("location")
	_ = cmd.MarkFlagRequired("duration")
	_ = cmd.MarkFlagRequired("invitees")

	return cmd
}

func runSchedule(cmd *cobra.Command, root *rootOptions, opts *scheduleOptions) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	strategy := cfg.Strategy
	if opts.strategy != "" {
		strategy = opts.strategy
	}
	kind, err := scheduling.ParseKind(strategy)
	if err != nil {
		return err
	}

	req, err := scheduling.ParseRequest(opts.name, opts.duration, opts.location, opts.online, opts.invitees)
	if err != nil {
		return err
	}

	p, err := loadPlanner(root.schedulePaths(cfg), logger)
	if err != nil {
		return err
	}
	scheduler := scheduling.NewScheduler(p, scheduling.WithLogger(logging.NewSlogAdapter(logger)))

	out := cmd.OutOrStdout()
	ctx := context.Background()

	if opts.dryRun {
		ev, err := scheduler.Find(ctx, kind, req)
		if err != nil {
			return describeSearchError(kind, err)
		}
		fmt.Fprintf(out, "Earliest %s slot:\n%s\n", kind, ev)
		return nil
	}

	ev, added, err := scheduler.Schedule(ctx, kind, req)
	if err != nil {
		return describeSearchError(kind, err)
	}
	fmt.Fprintf(out, "Scheduled (%s):\n%s\nAdded to: %s\n", kind, ev, strings.Join(added, ", "))

	if opts.save || cfg.SaveOnChange {
		paths, err := saveUsers(cfg, p, added)
		if err != nil {
			return err
		}
		for _, path := range paths {
			fmt.Fprintf(out, "Saved %s\n", path)
		}
	}
	return nil
}

func describeSearchError(kind scheduling.Kind, err error) error {
	if errors.Is(err, scheduling.ErrNoSlotFound) {
		return fmt.Errorf("no %s slot: %w", kind, err)
	}
	return err
}
