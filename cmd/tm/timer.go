package main

import (
	"github.com/spf13/cobra"

	"github.com/amonks/taskmaster/internal/timertui"
)

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Open the interactive work timer",
	Long: `Open the interactive work timer.

Bind a task to count down its estimate, or count up freely. A countdown
reaching zero marks the bound task done.`,
	RunE: runTimer,
}

func init() {
	rootCmd.AddCommand(timerCmd)
}

func runTimer(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	return timertui.Run(store)
}
