package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/driftware/taskdeck/internal/api"
	"github.com/driftware/taskdeck/internal/view"
)

var remindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "Show the next upcoming reminders",
	Long: `Show the soonest upcoming reminders across your active tasks.

Examples:
  taskdeck reminders`,
	RunE: runReminders,
}

func runReminders(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	tasks, err := client.ListTasks(context.Background(), api.TaskFilter{
		Status: "all", Priority: "all", Category: "all",
	})
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	now := time.Now()
	reminders := view.ProjectReminders(tasks, now)
	if len(reminders) == 0 {
		fmt.Println("No upcoming reminders.")
		return nil
	}

	fmt.Println("\n⏰ Upcoming reminders")
	for _, r := range reminders {
		when := r.NextAt.Format("Mon Jan 2 15:04")
		kind := ""
		if r.Daily {
			kind = "  (daily)"
		}
		fmt.Printf("  %-18s  %s%s\n", when, r.Task.Title, kind)
	}
	fmt.Println()
	return nil
}
