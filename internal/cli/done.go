package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Toggle a task's completed state",
	Long: `Toggle a task between completed and active.

Examples:
  taskdeck done 42`,
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

func runDone(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid task id %q", args[0])
	}

	task, err := client.ToggleTask(context.Background(), id)
	if err != nil {
		return fmt.Errorf("failed to toggle task: %w", err)
	}

	if task.Completed {
		fmt.Printf("✓ Completed: \"%s\"\n", task.Title)
	} else {
		fmt.Printf("○ Reopened: \"%s\"\n", task.Title)
	}
	return nil
}
