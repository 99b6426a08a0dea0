// Package stats computes point-in-time and trailing-window aggregates over a
// task snapshot. Every function here is pure: deterministic given the tasks
// and the reference time, and never mutating its input.
package stats

import (
	"math"
	"time"

	"github.com/amonks/taskmaster/internal/dates"
	"github.com/amonks/taskmaster/task"
)

// Stats is a point-in-time aggregate over the full task set.
type Stats struct {
	// Total is the number of tasks, regardless of status.
	Total int `json:"total"`

	Todo       int `json:"todo"`
	InProgress int `json:"inProgress"`
	Done       int `json:"done"`

	// Overdue counts non-done tasks whose due date is strictly before the
	// reference day.
	Overdue int `json:"overdue"`

	// DueToday counts tasks of any status due on the reference day.
	DueToday int `json:"dueToday"`

	// Upcoming7 counts tasks due strictly after the reference day and at
	// most seven days out. It never overlaps DueToday.
	Upcoming7 int `json:"upcoming7"`

	// EstimatedSum is the sum of estimates over all tasks, in minutes.
	EstimatedSum int `json:"estSum"`

	// EstimatedActive is the sum of estimates over non-done tasks.
	EstimatedActive int `json:"estActive"`

	// WithEstimates counts tasks carrying a positive estimate.
	WithEstimates int `json:"withEstimates"`

	// CompletedPast7 buckets completions by day; index 0 is the reference
	// day, index 6 is six days before it.
	CompletedPast7 [7]int `json:"completedPast7"`

	// CompletionRate7d is the share of all tasks completed in the trailing
	// seven days, as a rounded percentage. Zero when there are no tasks.
	CompletionRate7d int `json:"completionRate7d"`
}

// Compute aggregates the snapshot as of the given reference time. Dates are
// compared as YYYY-MM-DD strings against asOf truncated to midnight.
func Compute(tasks []task.Task, asOf time.Time) Stats {
	today := dates.Midnight(asOf)
	todayStr := dates.Format(today)
	horizonStr := dates.Format(dates.AddDays(today, 7))

	dayIndex := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		dayIndex[dates.Format(dates.AddDays(today, -i))] = i
	}

	var s Stats
	s.Total = len(tasks)
	for _, t := range tasks {
		switch t.Status {
		case task.StatusTodo:
			s.Todo++
		case task.StatusInProgress:
			s.InProgress++
		case task.StatusDone:
			s.Done++
		}

		s.EstimatedSum += t.EstimatedMinutes
		if t.Status != task.StatusDone {
			s.EstimatedActive += t.EstimatedMinutes
		}
		if t.EstimatedMinutes > 0 {
			s.WithEstimates++
		}

		if due := t.DueDate; dates.Valid(due) {
			if t.Status != task.StatusDone && due < todayStr {
				s.Overdue++
			}
			if due == todayStr {
				s.DueToday++
			}
			if due > todayStr && due <= horizonStr {
				s.Upcoming7++
			}
		}

		if t.CompletedAt != nil {
			day := dates.Format(dates.Midnight(*t.CompletedAt))
			if i, ok := dayIndex[day]; ok {
				s.CompletedPast7[i]++
			}
		}
	}

	if s.Total > 0 {
		completed := 0
		for _, n := range s.CompletedPast7 {
			completed += n
		}
		s.CompletionRate7d = int(math.Round(float64(completed) / float64(s.Total) * 100))
	}

	return s
}

// Burndown returns the remaining-estimate series for the trailing window of
// the given length, oldest day first and ending on the reference day. Each
// point is the initial total estimate minus the estimates of tasks completed
// on or before that day, floored at zero. The baseline is the estimate sum
// over all tasks at aggregation time, so the series burns against a fixed
// scope.
func Burndown(tasks []task.Task, asOf time.Time, days int) []int {
	if days <= 0 {
		return nil
	}

	today := dates.Midnight(asOf)
	initial := 0
	for _, t := range tasks {
		initial += t.EstimatedMinutes
	}

	remaining := make([]int, days)
	for i := range remaining {
		dayStr := dates.Format(dates.AddDays(today, i-(days-1)))
		completed := 0
		for _, t := range tasks {
			if t.CompletedAt == nil {
				continue
			}
			if dates.Format(dates.Midnight(*t.CompletedAt)) <= dayStr {
				completed += t.EstimatedMinutes
			}
		}
		remaining[i] = max(0, initial-completed)
	}

	return remaining
}
