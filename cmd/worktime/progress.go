package main

import (
	"fmt"
	"strconv"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/worktime"
	"github.com/spf13/cobra"
)

func newProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "progress WORKED QUOTA",
		Short:   "Show day progress for the normal hours worked",
		Example: "  worktime progress 6.5 9",
		Args:    cobra.ExactArgs(2),
		RunE:    runProgress,
	}
}

func runProgress(cmd *cobra.Command, args []string) error {
	worked, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("worked hours: %w", err)
	}
	quota, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("quota hours: %w", err)
	}

	p := worktime.CalculateProgress(worked, quota)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Worked:    %s of %s\n", formatHours(p.NormalHoursWorked), formatHours(p.QuotaHours))
	fmt.Fprintf(out, "Progress:  %.0f%%\n", p.DisplayPercent())
	fmt.Fprintf(out, "Overtime:  %s\n", yesNo(p.OvertimeEligible))
	fmt.Fprintln(out, p.Message)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "allowed"
	}
	return "not yet"
}
