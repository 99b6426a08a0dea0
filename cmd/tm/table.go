package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/amonks/taskmaster/internal/dates"
	"github.com/amonks/taskmaster/internal/ui"
	"github.com/amonks/taskmaster/task"
)

// printTaskTable prints tasks in a table format.
func printTaskTable(tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return
	}

	today := dates.Format(time.Now())
	builder := ui.NewTableBuilder([]string{"ID", "STATUS", "DUE", "EST", "NAME"}, len(tasks))
	for _, t := range tasks {
		due := t.DueDate
		if due == "" {
			due = "-"
		} else if t.Status != task.StatusDone && due < today {
			due = ui.StyledOverdue(due)
		}
		builder.AddRow([]string{
			strconv.Itoa(t.ID),
			ui.StyledStatus(t.Status),
			due,
			ui.FormatMinutes(t.EstimatedMinutes),
			ui.TruncateTableCell(t.Name),
		})
	}
	fmt.Print(builder.String())
}

// printTaskDetail prints detailed information about a task.
func printTaskDetail(t task.Task) {
	fmt.Printf("ID:        %d\n", t.ID)
	fmt.Printf("Name:      %s\n", t.Name)
	fmt.Printf("Status:    %s\n", t.Status)
	if t.StartDate != "" {
		fmt.Printf("Start:     %s\n", t.StartDate)
	}
	if t.DueDate != "" {
		fmt.Printf("Due:       %s\n", t.DueDate)
	}
	if t.EstimatedMinutes > 0 {
		fmt.Printf("Estimate:  %s\n", ui.FormatMinutes(t.EstimatedMinutes))
	}
	if t.CompletedAt != nil {
		fmt.Printf("Completed: %s (%s)\n", t.CompletedAt.Format(time.RFC3339), ui.FormatTimeAgo(*t.CompletedAt, time.Now()))
	}
	if t.Details != "" {
		fmt.Printf("Details:\n%s\n", t.Details)
	}
}
