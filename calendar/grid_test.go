package calendar

import (
	"testing"
	"time"

	"github.com/amonks/taskmaster/task"
)

func TestMonthGrid_Shape(t *testing.T) {
	// January 2025 starts on a Wednesday and has 31 days.
	grid := MonthGrid(2025, time.January, nil)

	if len(grid.Cells)%7 != 0 {
		t.Fatalf("grid must be rectangular, got %d cells", len(grid.Cells))
	}
	if len(grid.Cells) != 35 {
		t.Errorf("expected 35 cells (3 leading + 31 days + 1 trailing), got %d", len(grid.Cells))
	}

	for i := 0; i < 3; i++ {
		if grid.Cells[i].Day != 0 {
			t.Errorf("cell %d should be leading padding, got day %d", i, grid.Cells[i].Day)
		}
	}
	if grid.Cells[3].Day != 1 || grid.Cells[3].Date != "2025-01-01" {
		t.Errorf("the 1st should land on Wednesday, got %+v", grid.Cells[3])
	}
	if grid.Cells[33].Day != 31 {
		t.Errorf("expected day 31 at cell 33, got %d", grid.Cells[33].Day)
	}
	if grid.Cells[34].Day != 0 {
		t.Errorf("cell 34 should be trailing padding, got day %d", grid.Cells[34].Day)
	}
}

func TestMonthGrid_NoPaddingNeeded(t *testing.T) {
	// June 2025 starts on a Sunday and has 30 days: 2 trailing blanks only.
	grid := MonthGrid(2025, time.June, nil)
	if len(grid.Cells) != 35 {
		t.Fatalf("expected 35 cells, got %d", len(grid.Cells))
	}
	if grid.Cells[0].Day != 1 {
		t.Errorf("the 1st should land on Sunday at cell 0, got %+v", grid.Cells[0])
	}
}

func TestMonthGrid_BinsTasks(t *testing.T) {
	tasks := []task.Task{
		{ID: 1, Name: "due", DueDate: "2025-01-15"},
		{ID: 2, Name: "also due", DueDate: "2025-01-15"},
		{ID: 3, Name: "start only", StartDate: "2025-01-20"},
		{ID: 4, Name: "due wins", StartDate: "2025-01-02", DueDate: "2025-01-05"},
		{ID: 5, Name: "dateless"},
		{ID: 6, Name: "other month", DueDate: "2025-02-01"},
	}

	grid := MonthGrid(2025, time.January, tasks)

	cellByDate := map[string]Cell{}
	for _, c := range grid.Cells {
		if c.Date != "" {
			cellByDate[c.Date] = c
		}
	}

	if got := len(cellByDate["2025-01-15"].Tasks); got != 2 {
		t.Errorf("expected 2 tasks on the 15th, got %d", got)
	}
	if got := len(cellByDate["2025-01-20"].Tasks); got != 1 {
		t.Errorf("expected start-date fallback on the 20th, got %d tasks", got)
	}
	if got := len(cellByDate["2025-01-05"].Tasks); got != 1 {
		t.Errorf("due date should win over start date, got %d tasks on the 5th", got)
	}
	if got := len(cellByDate["2025-01-02"].Tasks); got != 0 {
		t.Errorf("task with a due date should not bind to its start date, got %d", got)
	}

	total := 0
	for _, c := range grid.Cells {
		total += len(c.Tasks)
	}
	if total != 4 {
		t.Errorf("expected 4 bound tasks in January, got %d", total)
	}
}

func TestMonth_Weeks(t *testing.T) {
	grid := MonthGrid(2025, time.January, nil)
	weeks := grid.Weeks()
	if len(weeks) != 5 {
		t.Fatalf("expected 5 weeks, got %d", len(weeks))
	}
	for i, week := range weeks {
		if len(week) != 7 {
			t.Errorf("week %d has %d cells", i, len(week))
		}
	}
}
