package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/driftware/taskdeck/internal/api"
	"github.com/driftware/taskdeck/internal/logger"
	"github.com/driftware/taskdeck/internal/model"
	"github.com/driftware/taskdeck/internal/store"
	"github.com/driftware/taskdeck/internal/view"
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddTask
	ModeEditTask
	ModeSearch
	ModeConfirmDelete
	ModeHelp
)

// statusCycle is the order the f key walks through server-side status
// filters
var statusCycle = []string{"all", "active", "completed", "overdue", "today", "shared"}

// Model is the main TUI model
type Model struct {
	store  *store.Store
	client *api.Client

	// Derived state, rebuilt from the store snapshot each refresh
	visible   []model.Task
	reminders []view.Reminder

	// UI state
	width      int
	height     int
	mode       Mode
	taskCursor int

	// Input
	input textinput.Model

	// Local filter/sort state (applied client-side, never on the wire)
	filter      view.FilterState
	statusIndex int

	// Edit target; nil means the input modal creates a new task
	editingID *int64

	message string
}

// NewModel creates a new TUI model
func NewModel(st *store.Store, client *api.Client) Model {
	logger.Info("Initializing TUI model")

	ti := textinput.New()
	ti.Placeholder = "Enter task..."
	ti.CharLimit = 256
	ti.Width = 50

	m := Model{
		store:  st,
		client: client,
		mode:   ModeNormal,
		input:  ti,
	}
	m.rebuildView()
	return m
}

// rebuildView re-derives the visible list and reminder strip from the
// current snapshot
func (m *Model) rebuildView() {
	tasks := m.store.Tasks()
	m.visible = view.DeriveView(tasks, m.filter)
	m.reminders = view.ProjectReminders(tasks, time.Now())
	if m.taskCursor >= len(m.visible) {
		m.taskCursor = len(m.visible) - 1
	}
	if m.taskCursor < 0 {
		m.taskCursor = 0
	}
}

func (m *Model) currentTask() *model.Task {
	if m.taskCursor < len(m.visible) {
		return &m.visible[m.taskCursor]
	}
	return nil
}

func (m *Model) currentStatus() string {
	return statusCycle[m.statusIndex%len(statusCycle)]
}

func (m *Model) cycleStatusFilter() api.TaskFilter {
	m.statusIndex = (m.statusIndex + 1) % len(statusCycle)
	f := m.store.Filter()
	f.Status = m.currentStatus()
	return f
}
