package timertui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amonks/taskmaster/task"
	"github.com/amonks/taskmaster/timer"
)

func newTestModel(t *testing.T) model {
	t.Helper()
	store := task.Open(filepath.Join(t.TempDir(), "tasks.json"))
	return newModel(store)
}

func press(t *testing.T, m tea.Model, key string) (tea.Model, tea.Cmd) {
	t.Helper()
	return m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
}

func TestPresetSchedulesSingleTickStream(t *testing.T) {
	var m tea.Model = newTestModel(t)

	m, cmd := press(t, m, "p")
	if cmd == nil {
		t.Fatal("starting a preset from a stopped session should schedule a tick")
	}

	// A second preset while running must not add another tick stream; the
	// pending one keeps the clock going.
	m, cmd = press(t, m, "p")
	if cmd != nil {
		t.Fatal("preset on a running session should not schedule a second tick")
	}

	before := m.(model).session.Counter()
	m, _ = m.Update(tickMsg(time.Now()))
	if got := m.(model).session.Counter(); got != before-1 {
		t.Fatalf("one tick should advance the countdown by one second, got %d -> %d", before, got)
	}
}

func TestPresetSwitchWhileRunningKeepsSingleStream(t *testing.T) {
	var m tea.Model = newTestModel(t)

	m, _ = press(t, m, "p")
	m, cmd := press(t, m, "b")
	if cmd != nil {
		t.Fatal("switching presets while running should reuse the pending tick")
	}
	if got := m.(model).session.Counter(); got != timer.ShortBreakSeconds {
		t.Fatalf("expected short break counter %d, got %d", timer.ShortBreakSeconds, got)
	}

	m, _ = m.Update(tickMsg(time.Now()))
	if got := m.(model).session.Counter(); got != timer.ShortBreakSeconds-1 {
		t.Fatalf("expected %d after one tick, got %d", timer.ShortBreakSeconds-1, got)
	}
}

func TestTickStopsWhenSessionStopped(t *testing.T) {
	var m tea.Model = newTestModel(t)

	m, _ = press(t, m, "p")
	m, _ = press(t, m, " ") // stop

	m, cmd := m.Update(tickMsg(time.Now()))
	if cmd != nil {
		t.Fatal("a tick arriving after stop should not reschedule")
	}
	if got := m.(model).session.Counter(); got != timer.PomodoroSeconds {
		t.Fatalf("stopped session should not advance, got %d", got)
	}
}
