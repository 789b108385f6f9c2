package main

import (
	"fmt"
	"os"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/config"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/worktime"
	"github.com/spf13/cobra"
)

type quotaOptions struct {
	entry        string
	exit         string
	shift        string
	scheduleType string
	date         string
	timezone     string
	rulesFile    string
	continuous   bool
}

const defaultTimezone = "America/Tegucigalpa"

func newQuotaCmd() *cobra.Command {
	opts := &quotaOptions{}
	cmd := &cobra.Command{
		Use:   "quota",
		Short: "Show the normal-hours quota of a workday",
		Example: `  worktime quota --entry 07:00 --exit 17:00
  worktime quota --entry 18:00 --exit 06:00 --shift N --schedule-type H2 --date 2024-03-05`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuota(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.entry, "entry", "", "entry time HH:MM")
	cmd.Flags().StringVar(&opts.exit, "exit", "", "exit time HH:MM")
	cmd.Flags().StringVar(&opts.shift, "shift", string(worktime.ShiftDay), "shift, D or N")
	cmd.Flags().StringVar(&opts.scheduleType, "schedule-type", "", "schedule type of the employee, e.g. H2")
	cmd.Flags().StringVar(&opts.date, "date", "", "date YYYY-MM-DD, defaults to today in --timezone")
	cmd.Flags().StringVar(&opts.timezone, "timezone", timezoneFromEnv(), "IANA zone of the timesheet calendar")
	cmd.Flags().StringVar(&opts.rulesFile, "rules", "", "YAML quota rules file")
	cmd.Flags().BoolVar(&opts.continuous, "continuous", false, "continuous shift, no lunch deduction")
	return cmd
}

func runQuota(cmd *cobra.Command, opts *quotaOptions) error {
	shift := worktime.Shift(opts.shift)
	if !shift.Valid() {
		return fmt.Errorf("invalid shift %q, use D or N", opts.shift)
	}

	loc, err := time.LoadLocation(opts.timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", opts.timezone, err)
	}

	weekday := now().In(loc).Weekday()
	if opts.date != "" {
		day, err := worktime.ParseDateKey(opts.date, loc)
		if err != nil {
			return err
		}
		weekday = day.Weekday()
	}

	policy, err := config.LoadQuotaPolicy(opts.rulesFile)
	if err != nil {
		return err
	}

	workday := worktime.Workday{ContinuousShift: opts.continuous, Shift: shift}
	if opts.entry != "" {
		entry, err := worktime.ParseQuarterHour(opts.entry)
		if err != nil {
			return fmt.Errorf("entry: %w", err)
		}
		workday.Entry = &entry
	}
	if opts.exit != "" {
		exit, err := worktime.ParseQuarterHour(opts.exit)
		if err != nil {
			return fmt.Errorf("exit: %w", err)
		}
		workday.Exit = &exit
	}

	hours, err := policy.QuotaHours(workday, opts.scheduleType, weekday)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if span, ok := workday.Span(); ok {
		fmt.Fprintf(out, "Span:  %s%s\n", span, crossingNote(span))
	}
	fmt.Fprintf(out, "Day:   %s\n", weekday)
	fmt.Fprintf(out, "Quota: %s\n", formatHours(hours))
	return nil
}

// timezoneFromEnv matches the zone the API server reads.
func timezoneFromEnv() string {
	if tz := os.Getenv("TIMESHEET_TIMEZONE"); tz != "" {
		return tz
	}
	return defaultTimezone
}

func crossingNote(span worktime.DaySpan) string {
	if span.CrossesMidnight {
		return " (next day)"
	}
	return ""
}

func formatHours(h float64) string {
	return fmt.Sprintf("%.2f h", h)
}
