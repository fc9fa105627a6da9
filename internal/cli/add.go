package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/driftware/taskdeck/internal/model"
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long: `Add a new task on the server.

Examples:
  taskdeck add "Buy groceries"
  taskdeck add "Quarterly review" -p High --due 2026-09-15
  taskdeck add "Standup notes" -t work -t daily --daily-reminder 09:00`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addPriority      string
	addDue           string
	addRemind        string
	addDailyReminder string
	addTags          []string
	addCategory      int64
	addDescription   string
)

func init() {
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", model.PriorityMedium, "Priority (Low, Medium, High, Urgent)")
	addCmd.Flags().StringVarP(&addDue, "due", "d", "", "Due date (2006-01-02 or RFC3339)")
	addCmd.Flags().StringVar(&addRemind, "remind", "", "One-shot reminder time (2006-01-02T15:04)")
	addCmd.Flags().StringVar(&addDailyReminder, "daily-reminder", "", "Daily reminder time of day (HH:MM)")
	addCmd.Flags().StringArrayVarP(&addTags, "tag", "t", nil, "Tag (repeatable)")
	addCmd.Flags().Int64VarP(&addCategory, "category", "c", 0, "Category id")
	addCmd.Flags().StringVar(&addDescription, "description", "", "Task description")
}

// parseWhen accepts a bare date or a full timestamp
func parseWhen(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognized time %q (use 2006-01-02 or RFC3339)", s)
}

func runAdd(cmd *cobra.Command, args []string) error {
	st, _, err := newStore()
	if err != nil {
		return err
	}

	title := strings.Join(args, " ")

	due, err := parseWhen(addDue)
	if err != nil {
		return err
	}
	remind, err := parseWhen(addRemind)
	if err != nil {
		return err
	}

	payload := model.TaskPayload{
		Title:       title,
		Description: addDescription,
		Priority:    addPriority,
		Tags:        addTags,
		DueAt:       due,
		RemindAt:    remind,
	}
	if addDailyReminder != "" {
		payload.DailyReminderTime = &addDailyReminder
	}
	if cmd.Flags().Changed("category") {
		payload.Category = &addCategory
	}

	task, err := st.Save(context.Background(), payload, nil)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	fmt.Printf("✓ Added: \"%s\" (%s, id %d)\n", task.Title, task.Priority, task.ID)
	return nil
}
