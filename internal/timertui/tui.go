// Package timertui implements the interactive timer screen: a picker over
// active tasks beside a countup/countdown clock. Completing a countdown
// marks the bound task done.
package timertui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/amonks/taskmaster/internal/ui"
	"github.com/amonks/taskmaster/task"
	"github.com/amonks/taskmaster/timer"
)

// Run opens the timer screen over the given store.
func Run(store *task.Store) error {
	if store == nil {
		return fmt.Errorf("task store is required")
	}
	program := tea.NewProgram(newModel(store), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

type tickMsg time.Time

type model struct {
	store   *task.Store
	session *timer.Session
	tasks   list.Model
	width   int
	height  int
	status  string

	// completed receives the session's completion signal. It is a shared
	// pointer because bubbletea copies the model on every update.
	completed *completionSignal
}

type completionSignal struct {
	taskID int
	fired  bool
}

type taskItem struct {
	task task.Task
}

func (i taskItem) Title() string { return i.task.Name }
func (i taskItem) Description() string {
	if i.task.EstimatedMinutes <= 0 {
		return "no estimate"
	}
	return ui.FormatMinutes(i.task.EstimatedMinutes)
}
func (i taskItem) FilterValue() string { return i.task.Name }

func newModel(store *task.Store) model {
	session := timer.NewSession()

	tasks := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	tasks.Title = "Tasks"
	tasks.SetShowStatusBar(false)
	tasks.SetFilteringEnabled(false)
	tasks.SetShowHelp(false)
	tasks.SetShowPagination(false)

	completed := &completionSignal{}
	session.OnComplete(func(taskID int) {
		completed.taskID = taskID
		completed.fired = true
	})

	m := model{store: store, session: session, tasks: tasks, completed: completed}
	m.reloadTasks()
	return m
}

func (m *model) reloadTasks() {
	views := task.FilterAndSort(m.store.List(), "", task.SortDefault)
	items := make([]list.Item, len(views.Active))
	for i, t := range views.Active {
		items[i] = taskItem{task: t}
	}
	m.tasks.SetItems(items)
}

func (m model) Init() tea.Cmd {
	return nil
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.tasks.SetSize(msg.Width/2, msg.Height-4)
		return m, nil

	case tickMsg:
		if !m.session.Running() {
			return m, nil
		}
		m.session.Tick()
		if m.completed.fired {
			m.completed.fired = false
			return m.finishTask(m.completed.taskID)
		}
		if !m.session.Running() {
			return m, nil
		}
		return m, tickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.tasks, cmd = m.tasks.Update(msg)
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "enter":
		if item, ok := m.tasks.SelectedItem().(taskItem); ok {
			m.session.Bind(item.task.ID, item.task.EstimatedMinutes)
			m.status = fmt.Sprintf("bound to %q", item.task.Name)
		}
		return m, nil

	case " ", "s":
		wasRunning := m.session.Running()
		m.session.Toggle()
		if !wasRunning && m.session.Running() {
			return m, tickCmd()
		}
		return m, nil

	case "r":
		m.session.Reset()
		return m, nil

	case "u":
		m.session.SetMode(timer.ModeCountup)
		return m, nil

	case "d":
		m.session.SetMode(timer.ModeCountdown)
		return m, nil

	case "p":
		return m.startPreset(m.session.StartPomodoro)

	case "b":
		return m.startPreset(m.session.StartShortBreak)

	case "B":
		return m.startPreset(m.session.StartLongBreak)
	}

	var cmd tea.Cmd
	m.tasks, cmd = m.tasks.Update(msg)
	return m, cmd
}

// startPreset switches to a preset countdown. A tick is scheduled only when
// the session was stopped; a running session already has one pending, and a
// second stream would advance the clock twice per second.
func (m model) startPreset(start func()) (tea.Model, tea.Cmd) {
	wasRunning := m.session.Running()
	start()
	if wasRunning {
		return m, nil
	}
	return m, tickCmd()
}

func (m model) finishTask(taskID int) (tea.Model, tea.Cmd) {
	if updated := m.store.SetStatus(taskID, task.StatusDone); updated != nil {
		m.status = fmt.Sprintf("completed %q", updated.Name)
	}
	m.reloadTasks()
	return m, nil
}
