package main

import (
	"fmt"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/worktime"
	"github.com/spf13/cobra"
)

func newRoundCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "round HH:MM...",
		Short:   "Round clock times to the nearest quarter hour",
		Example: "  worktime round 07:07 16:53",
		Args:    cobra.MinimumNArgs(1),
		RunE:    runRound,
	}
}

func runRound(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, arg := range args {
		rounded, err := worktime.RoundToQuarterHour(arg)
		if err != nil {
			return fmt.Errorf("%s: %w", arg, err)
		}
		fmt.Fprintf(out, "%s -> %s\n", arg, rounded)
	}
	return nil
}
