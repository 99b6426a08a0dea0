package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/amonks/taskmaster/calendar"
	"github.com/amonks/taskmaster/internal/ui"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "View tasks on a calendar and export them",
}

// calendar show
var calendarShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the month grid with scheduled tasks",
	RunE:  runCalendarShow,
}

var calendarShowMonth string

// calendar export
var calendarExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all dated tasks as an iCalendar file",
	RunE:  runCalendarExport,
}

var calendarExportOut string

func init() {
	rootCmd.AddCommand(calendarCmd)
	calendarCmd.AddCommand(calendarShowCmd, calendarExportCmd)

	calendarShowCmd.Flags().StringVarP(&calendarShowMonth, "month", "m", "", "Month to show (YYYY-MM, default current)")
	calendarExportCmd.Flags().StringVarP(&calendarExportOut, "out", "o", "", "Output file (default tasks-<date>.ics, - for stdout)")
}

func runCalendarShow(cmd *cobra.Command, args []string) error {
	year, month, err := resolveMonth(calendarShowMonth)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	grid := calendar.MonthGrid(year, month, store.List())
	printMonthGrid(grid)
	return nil
}

func runCalendarExport(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	now := time.Now()
	doc := calendar.ExportICS(store.List(), now)

	out := calendarExportOut
	if out == "-" {
		_, err := os.Stdout.Write(doc)
		return err
	}
	if out == "" {
		out = calendar.ExportFilename(now)
	}

	if err := os.WriteFile(out, doc, 0o644); err != nil {
		return fmt.Errorf("write calendar file: %w", err)
	}
	fmt.Printf("Exported calendar to %s\n", out)
	return nil
}

func resolveMonth(value string) (int, time.Month, error) {
	if value == "" {
		now := time.Now()
		return now.Year(), now.Month(), nil
	}

	parsed, err := time.ParseInLocation("2006-01", value, time.Local)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q, want YYYY-MM", value)
	}
	return parsed.Year(), parsed.Month(), nil
}

const calendarCellWidth = 14

func printMonthGrid(grid calendar.Month) {
	fmt.Println(ui.Heading(fmt.Sprintf("%s %d", grid.Month, grid.Year)))

	var header strings.Builder
	for _, day := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		header.WriteString(padCell(day))
	}
	fmt.Println(header.String())

	for _, week := range grid.Weeks() {
		// Day-number row, then up to three task rows beneath it.
		var dayRow strings.Builder
		maxTasks := 0
		for _, cell := range week {
			if cell.Day == 0 {
				dayRow.WriteString(padCell(""))
				continue
			}
			dayRow.WriteString(padCell(strconv.Itoa(cell.Day)))
			if len(cell.Tasks) > maxTasks {
				maxTasks = len(cell.Tasks)
			}
		}
		fmt.Println(dayRow.String())

		if maxTasks > 3 {
			maxTasks = 3
		}
		for line := 0; line < maxTasks; line++ {
			var taskRow strings.Builder
			for _, cell := range week {
				taskRow.WriteString(padCell(taskCellLabel(cell, line)))
			}
			fmt.Println(taskRow.String())
		}
	}
}

func taskCellLabel(cell calendar.Cell, line int) string {
	if line >= len(cell.Tasks) {
		return ""
	}
	if line == 2 && len(cell.Tasks) > 3 {
		return fmt.Sprintf("+%d more", len(cell.Tasks)-2)
	}
	return truncateLabel(cell.Tasks[line].Name)
}

func truncateLabel(name string) string {
	limit := calendarCellWidth - 2
	runes := []rune(name)
	if len(runes) <= limit {
		return name
	}
	return string(runes[:limit-1]) + "…"
}

func padCell(value string) string {
	width := utf8.RuneCountInString(value)
	if width >= calendarCellWidth {
		return string([]rune(value)[:calendarCellWidth])
	}
	return value + strings.Repeat(" ", calendarCellWidth-width)
}
