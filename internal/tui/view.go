package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	reminders := m.renderReminders()
	taskList := m.renderTaskList()
	statusBar := m.renderStatusBar()

	mainContent := lipgloss.JoinVertical(lipgloss.Left, header, reminders, taskList)

	// Add modal if in input mode
	if m.mode == ModeAddTask || m.mode == ModeEditTask {
		modal := m.renderModal()
		mainContent = lipgloss.Place(
			m.width, m.height-2,
			lipgloss.Center, lipgloss.Center,
			modal,
			lipgloss.WithWhitespaceChars(" "),
		)
	}

	if m.mode == ModeConfirmDelete {
		modal := m.renderConfirmDeleteModal()
		mainContent = lipgloss.Place(
			m.width, m.height-2,
			lipgloss.Center, lipgloss.Center,
			modal,
			lipgloss.WithWhitespaceChars(" "),
		)
	}

	if m.mode == ModeHelp {
		mainContent = m.renderHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left, mainContent, statusBar)
}

func (m Model) renderHeader() string {
	now := time.Now().Format("15:04:05")
	title := lipgloss.NewStyle().Bold(true).Foreground(Primary).Render("TaskDeck")
	clock := HelpStyle.Render(now)

	status := m.currentStatus()
	pending := 0
	for _, t := range m.visible {
		if !t.Completed {
			pending++
		}
	}
	summary := HelpStyle.Render(fmt.Sprintf("[%s] %d pending / %d shown", status, pending, len(m.visible)))

	loading := ""
	if m.store.Loading() {
		loading = HelpStyle.Render("  loading...")
	}

	return HeaderStyle.Render(title + "  " + clock + "  " + summary + loading)
}

func (m Model) renderReminders() string {
	if len(m.reminders) == 0 {
		return ""
	}
	var parts []string
	for _, r := range m.reminders {
		when := r.NextAt.Format("15:04")
		if !sameDay(r.NextAt, time.Now()) {
			when = r.NextAt.Format("Jan 2 15:04")
		}
		label := fmt.Sprintf("⏰ %s %s", when, truncate(r.Task.Title, 24))
		if r.Daily {
			label += " (daily)"
		}
		parts = append(parts, label)
	}
	return ReminderStyle.Render(strings.Join(parts, "   "))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (m Model) renderTaskList() string {
	width := m.width - 4
	var s string

	s += lipgloss.NewStyle().Foreground(Border).Render(repeat("─", max(width-4, 1))) + "\n"

	if len(m.visible) == 0 {
		s += HelpStyle.Render("  No tasks. Press 'a' to add one.")
	}

	now := time.Now()
	for i, t := range m.visible {
		cursor := "  "
		style := TaskItemStyle
		if i == m.taskCursor {
			cursor = "❯ "
			style = TaskItemSelectedStyle
		}

		icon := "[ ]"
		if t.Completed {
			icon = "[x]"
			style = TaskDoneStyle
		}

		title := truncate(t.Title, max(width-40, 10))
		priority := FormatPriority(t.Priority)

		due := ""
		if t.DueAt != nil {
			due = t.DueAt.Format("Jan 2")
			if t.IsOverdue(now) {
				due = OverdueStyle.Render(due + " !")
			} else {
				due = HelpStyle.Render(due)
			}
		}

		tags := ""
		if len(t.Tags) > 0 {
			tags = HelpStyle.Render(" #" + strings.Join(t.Tags, " #"))
		}

		check := style.Render(cursor + icon)
		desc := style.Render(" " + title)

		s += check + desc + tags + "  " + priority + "  " + due + "\n"
	}

	return TaskListStyle.Width(m.width - 2).Render(s)
}

func (m Model) renderStatusBar() string {
	// In search mode show the inline input, vim-style
	if m.mode == ModeSearch {
		matches := fmt.Sprintf(" [%d shown]", len(m.visible))
		return StatusBarStyle.Width(m.width).Render("/" + m.input.View() + matches)
	}

	help := "/:search  a:add  e:edit  x:done  d:del  s:sort  f:filter  r:refresh  ?:help  q:quit"
	if m.filter.Search != "" {
		help = fmt.Sprintf("/%s  [%d shown]  Esc:clear", m.filter.Search, len(m.visible))
	} else if m.message != "" {
		help = m.message
	}

	return StatusBarStyle.Width(m.width).Render(help)
}

func (m Model) renderModal() string {
	title := "Add Task"
	if m.mode == ModeEditTask {
		title = "Edit Task"
	}

	content := lipgloss.NewStyle().Bold(true).Render(title) + "\n\n"
	content += m.input.View() + "\n\n"
	content += HelpStyle.Render("Enter:save  Esc:cancel")

	return ModalStyle.Render(content)
}

func (m Model) renderConfirmDeleteModal() string {
	pending := m.store.PendingDelete()
	if pending == nil {
		return ""
	}

	content := lipgloss.NewStyle().Bold(true).Foreground(Overdue).Render("Delete Task") + "\n\n"
	content += fmt.Sprintf("Delete %q?\n\n", truncate(pending.Title, 40))
	content += HelpStyle.Render("y:delete  n:cancel")

	return ModalStyle.Render(content)
}

func (m Model) renderHelp() string {
	help := `
╭─── Keyboard Shortcuts ───╮
│                          │
│  Navigation              │
│  ──────────              │
│  j/↓    Move down        │
│  k/↑    Move up          │
│  G      Go to bottom     │
│                          │
│  Actions                 │
│  ───────                 │
│  a       Add task        │
│  e       Edit task       │
│  x/Enter Toggle done     │
│  d       Delete          │
│  1-4     Set priority    │
│                          │
│  Filters                 │
│  ───────                 │
│  /       Search          │
│  s       Cycle sort      │
│  f       Cycle status    │
│  r       Refresh         │
│                          │
│  Other                   │
│  ─────                   │
│  ?       Toggle help     │
│  L       Logout          │
│  q       Quit            │
│                          │
╰──────────────────────────╯

     Press any key to close
`
	return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, help)
}
