// Package calendar derives calendar views from a task snapshot: a month grid
// for display and an iCalendar export. Both are pure functions of the
// snapshot.
package calendar

import (
	"time"

	"github.com/amonks/taskmaster/internal/dates"
	"github.com/amonks/taskmaster/task"
)

// Cell is one slot in a month grid. A blank cell (padding before the 1st or
// after the last day) has Day 0 and an empty Date.
type Cell struct {
	// Date is the cell's YYYY-MM-DD date, empty for padding cells.
	Date string `json:"date,omitempty"`

	// Day is the day of the month, 0 for padding cells.
	Day int `json:"day,omitempty"`

	// Tasks are the tasks scheduled on this date.
	Tasks []task.Task `json:"tasks,omitempty"`
}

// Month is a rectangular Sunday-first grid of day cells for one calendar
// month. Cells is always a multiple of seven long.
type Month struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Cells []Cell     `json:"cells"`
}

// Weeks splits the grid into rows of seven cells.
func (m Month) Weeks() [][]Cell {
	weeks := make([][]Cell, 0, len(m.Cells)/7)
	for i := 0; i < len(m.Cells); i += 7 {
		weeks = append(weeks, m.Cells[i:i+7])
	}
	return weeks
}

// MonthGrid bins tasks into the grid for the given month. Each task lands on
// its due date, falling back to its start date when no due date is set;
// tasks with neither are absent from the grid.
func MonthGrid(year int, month time.Month, tasks []task.Task) Month {
	byDate := map[string][]task.Task{}
	for _, t := range tasks {
		date := t.DueDate
		if date == "" {
			date = t.StartDate
		}
		if date == "" {
			continue
		}
		byDate[date] = append(byDate[date], t)
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	cells := make([]Cell, 0, 42)
	for i := 0; i < int(first.Weekday()); i++ {
		cells = append(cells, Cell{})
	}
	for day := 1; day <= daysInMonth; day++ {
		date := dates.Format(time.Date(year, month, day, 0, 0, 0, 0, time.Local))
		cells = append(cells, Cell{Date: date, Day: day, Tasks: byDate[date]})
	}
	for len(cells)%7 != 0 {
		cells = append(cells, Cell{})
	}

	return Month{Year: year, Month: month, Cells: cells}
}
