package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/amonks/taskmaster/internal/ui"
	"github.com/amonks/taskmaster/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task analytics",
	RunE:  runStats,
}

var statsJSON bool

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	tasks := store.List()
	now := time.Now()
	s := stats.Compute(tasks, now)
	burndown := stats.Burndown(tasks, now, 7)

	if statsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			stats.Stats
			Burndown []int `json:"burndown"`
		}{s, burndown})
	}

	fmt.Println(ui.Heading("Tasks"))
	fmt.Printf("  Total: %d  Todo: %d  In progress: %d  Done: %d\n", s.Total, s.Todo, s.InProgress, s.Done)
	fmt.Println()
	fmt.Println(ui.Heading("Deadlines"))
	fmt.Printf("  Overdue: %d  Due today: %d  Next 7 days: %d\n", s.Overdue, s.DueToday, s.Upcoming7)
	fmt.Println()
	fmt.Println(ui.Heading("Estimates"))
	fmt.Printf("  Total: %s  Remaining: %s  Tasks with estimates: %d\n",
		ui.FormatMinutes(s.EstimatedSum), ui.FormatMinutes(s.EstimatedActive), s.WithEstimates)
	fmt.Println()
	fmt.Println(ui.Heading("Past 7 days"))
	fmt.Printf("  Completed per day: %s\n", sparklineBars(s.CompletedPast7))
	fmt.Printf("  Completion rate: %d%%\n", s.CompletionRate7d)
	fmt.Printf("  Burndown (min):  %s\n", ui.Muted(formatSeries(burndown)))
	return nil
}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// sparklineBars renders the per-day completion buckets oldest-first.
func sparklineBars(completedPast7 [7]int) string {
	maxValue := 1
	for _, v := range completedPast7 {
		if v > maxValue {
			maxValue = v
		}
	}

	out := make([]rune, len(completedPast7))
	for i, v := range completedPast7 {
		level := v * (len(sparkRunes) - 1) / maxValue
		out[len(out)-1-i] = sparkRunes[level]
	}
	return string(out)
}

func formatSeries(values []int) string {
	out := ""
	for i, v := range values {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprint(v)
	}
	return out
}
