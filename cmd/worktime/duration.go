package main

import (
	"fmt"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/worktime"
	"github.com/spf13/cobra"
)

type durationOptions struct {
	entry      string
	exit       string
	continuous bool
}

func newDurationCmd() *cobra.Command {
	opts := &durationOptions{}
	cmd := &cobra.Command{
		Use:   "duration START END",
		Short: "Compute the hours of an interval activity",
		Long: `Compute the hours between START and END. All times are rounded to the
nearest quarter hour first. An END at or before START is on the next day. Unless --continuous is set, the part of the interval inside the
12:00-13:00 lunch window is removed.`,
		Example: "  worktime duration 17:00 19:30 --entry 07:00 --exit 17:00",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDuration(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.entry, "entry", "", "workday entry time HH:MM, defaults to START")
	cmd.Flags().StringVar(&opts.exit, "exit", "", "workday exit time HH:MM, defaults to END")
	cmd.Flags().BoolVar(&opts.continuous, "continuous", false, "continuous shift, no lunch deduction")
	return cmd
}

func runDuration(cmd *cobra.Command, args []string, opts *durationOptions) error {
	start, err := worktime.ParseQuarterHour(args[0])
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	end, err := worktime.ParseQuarterHour(args[1])
	if err != nil {
		return fmt.Errorf("end: %w", err)
	}

	entry, exit := start, end
	if opts.entry != "" {
		if entry, err = worktime.ParseQuarterHour(opts.entry); err != nil {
			return fmt.Errorf("entry: %w", err)
		}
	}
	if opts.exit != "" {
		if exit, err = worktime.ParseQuarterHour(opts.exit); err != nil {
			return fmt.Errorf("exit: %w", err)
		}
	}

	span := worktime.DeriveSpan(entry, exit)
	hours := worktime.ComputeFromInterval(start, end, span, !opts.continuous)
	if hours <= 0 {
		return fmt.Errorf("interval %s-%s has no working time", start, end)
	}

	fmt.Fprintln(cmd.OutOrStdout(), formatHours(hours))
	return nil
}
