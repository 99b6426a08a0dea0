package timertui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/amonks/taskmaster/timer"
)

var (
	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder())
	clockRunningStyle = clockStyle.Foreground(lipgloss.Color("10"))
	clockStoppedStyle = clockStyle.Foreground(lipgloss.Color("8"))

	labelStyle  = lipgloss.NewStyle().Faint(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	helpStyle   = lipgloss.NewStyle().Faint(true)

	progressFilled = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	progressEmpty  = lipgloss.NewStyle().Faint(true)
)

const progressWidth = 30

func (m model) View() string {
	clock := timer.FormatClock(m.session.Counter())
	style := clockStoppedStyle
	if m.session.Running() {
		style = clockRunningStyle
	}

	var right strings.Builder
	right.WriteString(style.Render(clock))
	right.WriteString("\n")
	right.WriteString(labelStyle.Render(string(m.session.Mode())))
	if m.session.Mode() == timer.ModeCountdown && m.session.Duration() > 0 {
		right.WriteString("\n")
		right.WriteString(progressBar(m.session.ProgressPercent()))
	}
	if id, ok := m.session.Bound(); ok {
		right.WriteString("\n")
		right.WriteString(labelStyle.Render(fmt.Sprintf("task #%d", id)))
	}
	if m.status != "" {
		right.WriteString("\n")
		right.WriteString(statusStyle.Render(m.status))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.tasks.View(), "   ", right.String())
	help := helpStyle.Render("enter bind · space start/stop · r reset · u/d mode · p pomodoro · b/B break · q quit")
	return lipgloss.JoinVertical(lipgloss.Left, body, "", help)
}

func progressBar(percent int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := progressWidth * percent / 100
	return progressFilled.Render(strings.Repeat("█", filled)) +
		progressEmpty.Render(strings.Repeat("░", progressWidth-filled)) +
		fmt.Sprintf(" %d%%", percent)
}
