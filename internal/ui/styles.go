package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/amonks/taskmaster/task"
)

var (
	styleTodo       = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	styleInProgress = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleDone       = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Faint(true)
	styleOverdue    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleHeading    = lipgloss.NewStyle().Bold(true)
	styleMuted      = lipgloss.NewStyle().Faint(true)
)

// StyledStatus renders a status with its color when the output is a
// terminal, plain text otherwise.
func StyledStatus(status task.Status) string {
	if !ColorEnabled() {
		return string(status)
	}
	switch status {
	case task.StatusInProgress:
		return styleInProgress.Render(string(status))
	case task.StatusDone:
		return styleDone.Render(string(status))
	default:
		return styleTodo.Render(string(status))
	}
}

// StyledOverdue renders a date in the overdue style.
func StyledOverdue(date string) string {
	if !ColorEnabled() {
		return date
	}
	return styleOverdue.Render(date)
}

// Heading renders bold text.
func Heading(text string) string {
	if !ColorEnabled() {
		return text
	}
	return styleHeading.Render(text)
}

// Muted renders dimmed text.
func Muted(text string) string {
	if !ColorEnabled() {
		return text
	}
	return styleMuted.Render(text)
}

// ColorEnabled reports whether styled output should be emitted.
func ColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
