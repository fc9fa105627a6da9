package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/driftware/taskdeck/internal/model"
	"github.com/driftware/taskdeck/internal/view"
)

// tickMsg is sent every second for clock and reminder strip updates
type tickMsg time.Time

// reloadedMsg is sent when a background reload finishes
type reloadedMsg struct{ err error }

// toggledMsg is sent when a toggle round-trip finishes (or rolls back)
type toggledMsg struct{}

// savedMsg is sent when a create/update round-trip finishes
type savedMsg struct {
	task model.Task
	err  error
}

// deletedMsg is sent when a confirmed delete finishes
type deletedMsg struct{ err error }

// Init kicks off the clock and the first load
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.reloadCmd())
}

func tickCmd() tea.Cmd {
	return tea.Every(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) reloadCmd() tea.Cmd {
	st := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return reloadedMsg{err: st.Reload(ctx)}
	}
}

func (m Model) toggleCmd(id int64) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		st.Toggle(ctx, id)
		return toggledMsg{}
	}
}

func (m Model) saveCmd(payload model.TaskPayload, editingID *int64) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		task, err := st.Save(ctx, payload, editingID)
		return savedMsg{task: task, err: err}
	}
}

func (m Model) confirmDeleteCmd() tea.Cmd {
	st := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return deletedMsg{err: st.ConfirmDelete(ctx)}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		// Reminder strip depends on wall-clock time
		m.rebuildView()
		return m, tickCmd()

	case reloadedMsg:
		if msg.err != nil {
			m.message = fmt.Sprintf("Load failed: %v", msg.err)
		} else {
			m.message = ""
		}
		m.rebuildView()
		return m, nil

	case toggledMsg:
		// The snapshot already reflects the flip or its rollback
		m.rebuildView()
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.message = fmt.Sprintf("Save failed: %v", msg.err)
			return m, nil
		}
		m.message = fmt.Sprintf("Saved: %s", msg.task.Title)
		return m, m.reloadCmd()

	case deletedMsg:
		if msg.err != nil {
			m.message = fmt.Sprintf("Delete failed: %v", msg.err)
			return m, nil
		}
		m.message = "Task deleted"
		if m.taskCursor > 0 {
			m.taskCursor--
		}
		return m, m.reloadCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeAddTask, ModeEditTask:
			return m.updateInput(msg)
		case ModeSearch:
			return m.updateSearch(msg)
		case ModeConfirmDelete:
			return m.updateConfirmDelete(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// handleNormalKeys handles key presses in normal mode
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.taskCursor > 0 {
			m.taskCursor--
		}

	case key.Matches(msg, keys.Down):
		if m.taskCursor < len(m.visible)-1 {
			m.taskCursor++
		}

	case msg.String() == "G":
		m.taskCursor = len(m.visible) - 1
		if m.taskCursor < 0 {
			m.taskCursor = 0
		}

	case msg.String() == "1", msg.String() == "2", msg.String() == "3", msg.String() == "4":
		return m.handlePriority(msg.String())

	case key.Matches(msg, keys.Add):
		return m.startAddTask()

	case key.Matches(msg, keys.Edit):
		return m.startEditTask()

	case key.Matches(msg, keys.Done), key.Matches(msg, keys.Enter):
		if task := m.currentTask(); task != nil {
			return m, m.toggleCmd(task.ID)
		}

	case key.Matches(msg, keys.Delete):
		if task := m.currentTask(); task != nil {
			m.store.StageDelete(*task)
			m.mode = ModeConfirmDelete
		}

	case key.Matches(msg, keys.Search):
		return m.startSearch()

	case key.Matches(msg, keys.Sort):
		m.filter.SortBy = nextSortKey(m.filter.SortBy)
		m.rebuildView()
		m.message = fmt.Sprintf("Sort: %s", m.filter.SortBy)

	case key.Matches(msg, keys.Status):
		m.store.SetFilter(m.cycleStatusFilter())
		m.message = fmt.Sprintf("Status: %s", m.currentStatus())
		return m, m.reloadCmd()

	case key.Matches(msg, keys.Escape):
		if m.filter.Search != "" {
			m.filter.Search = ""
			m.rebuildView()
			m.message = "Search cleared"
		}

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp

	case key.Matches(msg, keys.Logout):
		return m.handleLogout()

	case key.Matches(msg, keys.Refresh):
		m.message = "Refreshing..."
		return m, m.reloadCmd()
	}

	return m, nil
}

func nextSortKey(k view.SortKey) view.SortKey {
	order := view.SortKeys()
	for i, s := range order {
		if s == k {
			return order[(i+1)%len(order)]
		}
	}
	return view.SortDefault
}

// handlePriority re-saves the selected task with a new priority
func (m Model) handlePriority(digit string) (tea.Model, tea.Cmd) {
	task := m.currentTask()
	if task == nil {
		return m, nil
	}
	priorities := map[string]string{
		"1": model.PriorityUrgent,
		"2": model.PriorityHigh,
		"3": model.PriorityMedium,
		"4": model.PriorityLow,
	}
	payload := model.PayloadFrom(*task)
	payload.Priority = priorities[digit]
	id := task.ID
	m.message = fmt.Sprintf("Priority set to %s", payload.Priority)
	return m, m.saveCmd(payload, &id)
}

func (m Model) startAddTask() (tea.Model, tea.Cmd) {
	m.mode = ModeAddTask
	m.editingID = nil
	m.input.SetValue("")
	m.input.Placeholder = "Enter task..."
	m.input.Focus()
	return m, textinput.Blink
}

func (m Model) startEditTask() (tea.Model, tea.Cmd) {
	task := m.currentTask()
	if task == nil {
		return m, nil
	}
	id := task.ID
	m.mode = ModeEditTask
	m.editingID = &id
	m.input.SetValue(task.Title)
	m.input.Placeholder = "Edit task..."
	m.input.Focus()
	m.input.CursorEnd()
	return m, textinput.Blink
}

func (m Model) startSearch() (tea.Model, tea.Cmd) {
	m.mode = ModeSearch
	m.input.SetValue(m.filter.Search)
	m.input.Placeholder = "/"
	m.input.Focus()
	return m, textinput.Blink
}

func (m Model) handleLogout() (tea.Model, tea.Cmd) {
	if m.client == nil || !m.client.IsLoggedIn() {
		m.message = "Not logged in"
		return m, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := m.client.Logout(ctx); err != nil {
		m.message = fmt.Sprintf("Logout error: %v", err)
	} else {
		m.message = "Logged out successfully"
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		return m, nil

	case key.Matches(msg, keys.Enter):
		value := m.input.Value()
		if value == "" {
			m.mode = ModeNormal
			return m, nil
		}

		var payload model.TaskPayload
		if m.mode == ModeEditTask {
			if task := m.currentTask(); task != nil {
				payload = model.PayloadFrom(*task)
			}
		}
		payload.Title = value
		editingID := m.editingID
		m.mode = ModeNormal
		return m, m.saveCmd(payload, editingID)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		m.filter.Search = ""
		m.rebuildView()
		return m, nil

	case key.Matches(msg, keys.Enter):
		m.mode = ModeNormal
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	// Live filter as the user types
	m.filter.Search = m.input.Value()
	m.rebuildView()
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.mode = ModeNormal
		return m, m.confirmDeleteCmd()
	case "n", "N", "esc", "q":
		m.store.CancelDelete()
		m.mode = ModeNormal
		m.message = "Delete cancelled"
		return m, nil
	}
	return m, nil
}
