package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nexusmap/diregram/pkg/report"
	"github.com/nexusmap/diregram/pkg/verify"
)

var (
	watchInterval    string
	watchStopOnClean bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [file.md]",
	Short: "Re-verify a document at an interval",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchInterval, "interval", "2s", "time between runs (e.g. 2s, 500ms)")
	watchCmd.Flags().BoolVar(&watchStopOnClean, "stop-on-clean", false, "exit once a run reports no errors")
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	interval, err := time.ParseDuration(watchInterval)
	if err != nil {
		return fmt.Errorf("invalid --interval: %w", err)
	}

	run := 0
	for {
		run++
		ts := time.Now().Format("15:04:05")

		raw, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("%s  run %d  ! %v\n", ts, run, err)
		} else {
			res := verify.Text(string(raw))
			errors, warnings := report.Counts(res.Issues)

			mark := "✓"
			if errors > 0 {
				mark = "✗"
			}
			fmt.Printf("%s  run %d  %s errors=%d warnings=%d\n", ts, run, mark, errors, warnings)

			if watchStopOnClean && errors == 0 {
				return nil
			}
		}

		time.Sleep(interval)
	}
}
