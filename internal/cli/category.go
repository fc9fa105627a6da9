package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"cat"},
	Short:   "Manage categories",
	Long: `List, create and delete task categories.

Examples:
  taskdeck category list
  taskdeck category add "Work"
  taskdeck category delete 3`,
}

var categoryListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List categories",
	RunE:    runCategoryList,
}

var categoryAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoryAdd,
}

var categoryDeleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Aliases: []string{"rm"},
	Short:   "Delete a category",
	Args:    cobra.ExactArgs(1),
	RunE:    runCategoryDelete,
}

func init() {
	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryAddCmd)
	categoryCmd.AddCommand(categoryDeleteCmd)
}

func runCategoryList(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	categories, err := client.ListCategories(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}

	if len(categories) == 0 {
		fmt.Println("No categories. Add one with: taskdeck category add \"Name\"")
		return nil
	}

	fmt.Println("\n📁 Categories")
	for _, c := range categories {
		fmt.Printf("  %-6d  %s\n", c.ID, c.Name)
	}
	fmt.Println()
	return nil
}

func runCategoryAdd(cmd *cobra.Command, args []string) error {
	st, _, err := newStore()
	if err != nil {
		return err
	}

	ctx := context.Background()
	// Load the current categories so the duplicate check has data
	if err := st.Reload(ctx); err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}

	created, err := st.CreateCategory(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	fmt.Printf("✓ Created category: \"%s\" (id %d)\n", created.Name, created.ID)
	return nil
}

func runCategoryDelete(cmd *cobra.Command, args []string) error {
	st, _, err := newStore()
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid category id %q", args[0])
	}

	if err := st.DeleteCategory(context.Background(), id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	fmt.Printf("🗑️  Deleted category %d\n", id)
	return nil
}
