package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// now is replaced in tests.
var now = time.Now

var rootCmd = &cobra.Command{
	Use:   "worktime",
	Short: "Workday quota and activity duration calculator",
	Long: `worktime applies the timesheet rules to clock times without a database:
quota hours of a workday, hours of an overtime interval, quarter-hour rounding
and day progress.`,
	SilenceUsage: true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newQuotaCmd())
	rootCmd.AddCommand(newDurationCmd())
	rootCmd.AddCommand(newRoundCmd())
	rootCmd.AddCommand(newProgressCmd())
	rootCmd.AddCommand(newTokenCmd())
}
