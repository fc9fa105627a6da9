package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/driftware/taskdeck/internal/api"
	"github.com/driftware/taskdeck/internal/model"
	"github.com/driftware/taskdeck/internal/view"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List tasks from the server, with optional filtering and sorting.

Examples:
  taskdeck list
  taskdeck list --status active --priority High
  taskdeck list --tag work --tag urgent --search report
  taskdeck list --sort due_at`,
	RunE: runList,
}

var (
	listStatus   string
	listPriority string
	listCategory string
	listTags     []string
	listSearch   string
	listSort     string
)

func init() {
	listCmd.Flags().StringVar(&listStatus, "status", "all", "Status filter (all, active, completed, overdue, today, shared)")
	listCmd.Flags().StringVarP(&listPriority, "priority", "p", "all", "Priority filter (Low, Medium, High, Urgent)")
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "all", "Category id filter")
	listCmd.Flags().StringArrayVarP(&listTags, "tag", "t", nil, "Require tag (repeatable, all must match)")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Search in title, description and tags")
	listCmd.Flags().StringVar(&listSort, "sort", "default", "Sort order (default, due_at, priority, created_at)")
}

func runList(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	ctx := context.Background()
	tasks, err := client.ListTasks(ctx, api.TaskFilter{
		Status:   listStatus,
		Priority: listPriority,
		Category: listCategory,
	})
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	derived := view.DeriveView(tasks, view.FilterState{
		Search:       listSearch,
		SelectedTags: listTags,
		SortBy:       view.SortKey(listSort),
	})

	if len(derived) == 0 {
		if len(listTags) > 0 {
			if known := view.AvailableTags(tasks); len(known) > 0 {
				fmt.Printf("No tasks match those tags. Known tags: %s\n", strings.Join(known, ", "))
				return nil
			}
		}
		fmt.Println("No tasks found. Add one with: taskdeck add \"Your task\"")
		return nil
	}
	tasks = derived

	printTasks(listStatus, tasks)
	return nil
}

func printTasks(status string, tasks []model.Task) {
	pending := 0
	for _, t := range tasks {
		if !t.Completed {
			pending++
		}
	}

	fmt.Printf("\n📋 Tasks [%s] (%d pending)\n", status, pending)
	fmt.Println(strings.Repeat("─", 72))

	for _, t := range tasks {
		printTask(t)
	}
	fmt.Println()
}

func printTask(t model.Task) {
	icon := "[ ]"
	if t.Completed {
		icon = "[x]"
	}

	priority := fmt.Sprintf("  %s", t.Priority)
	switch t.Priority {
	case model.PriorityUrgent, model.PriorityHigh:
		priority = "▲ " + t.Priority
	}

	due := ""
	if t.DueAt != nil {
		due = t.DueAt.Format("Jan 2")
		if t.IsOverdue(time.Now()) {
			due += " !"
		}
	}

	title := t.Title
	if len(title) > 40 {
		title = title[:37] + "..."
	}

	tags := ""
	if len(t.Tags) > 0 {
		tags = "#" + strings.Join(t.Tags, " #")
	}

	fmt.Printf("  %s  %-6d  %-40s  %-10s  %-8s  %s\n", icon, t.ID, title, due, priority, tags)
}
