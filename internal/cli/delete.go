package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/driftware/taskdeck/internal/api"
	"github.com/driftware/taskdeck/internal/config"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [task-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Delete a task by its id. Asks for confirmation unless disabled
in the config.

Examples:
  taskdeck delete 42
  taskdeck rm 42`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	st, client, err := newStore()
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid task id %q", args[0])
	}

	ctx := context.Background()

	// Fetch the task so the prompt can show what is about to go
	tasks, err := client.ListTasks(ctx, api.TaskFilter{Status: "all", Priority: "all", Category: "all"})
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	var found bool
	for _, t := range tasks {
		if t.ID == id {
			st.StageDelete(t)
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("task not found: %d", id)
	}

	cfg, _ := config.Load() // Ignore error, use defaults
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	pending := st.PendingDelete()
	if cfg.ConfirmDelete {
		fmt.Printf("About to delete: \"%s\" (id %d)\n", pending.Title, pending.ID)
		fmt.Print("Are you sure? [y/N]: ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "y" && confirm != "Y" {
			st.CancelDelete()
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := st.ConfirmDelete(ctx); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	fmt.Printf("🗑️  Deleted: \"%s\"\n", pending.Title)
	return nil
}
