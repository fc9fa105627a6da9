package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Share tasks with other users",
	Long: `Share tasks by email, inspect incoming and outgoing shares, and
accept share links.

Examples:
  taskdeck share task 42 someone@example.com --permission edit
  taskdeck share incoming
  taskdeck share outgoing
  taskdeck share accept a1b2c3d4`,
}

var sharePermission string

var shareTaskCmd = &cobra.Command{
	Use:   "task [task-id] [email]",
	Short: "Share a task with a user by email",
	Args:  cobra.ExactArgs(2),
	RunE:  runShareTask,
}

var shareIncomingCmd = &cobra.Command{
	Use:   "incoming",
	Short: "List tasks shared with you",
	RunE:  runShareIncoming,
}

var shareOutgoingCmd = &cobra.Command{
	Use:   "outgoing",
	Short: "List tasks you shared",
	RunE:  runShareOutgoing,
}

var shareShowCmd = &cobra.Command{
	Use:   "show [link]",
	Short: "Inspect a share link",
	Args:  cobra.ExactArgs(1),
	RunE:  runShareShow,
}

var shareAcceptCmd = &cobra.Command{
	Use:   "accept [link]",
	Short: "Accept a share link",
	Args:  cobra.ExactArgs(1),
	RunE:  runShareAccept,
}

func init() {
	shareTaskCmd.Flags().StringVar(&sharePermission, "permission", "view", "Permission to grant (view, edit)")

	shareCmd.AddCommand(shareTaskCmd)
	shareCmd.AddCommand(shareIncomingCmd)
	shareCmd.AddCommand(shareOutgoingCmd)
	shareCmd.AddCommand(shareShowCmd)
	shareCmd.AddCommand(shareAcceptCmd)
}

func runShareTask(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid task id %q", args[0])
	}
	email := args[1]

	share, err := client.ShareTask(context.Background(), id, email, sharePermission)
	if err != nil {
		return fmt.Errorf("failed to share task: %w", err)
	}

	fmt.Printf("✓ Shared task %d with %s (%s)\n", id, email, sharePermission)
	if share.ShareLink != "" {
		fmt.Printf("🔗 Share link: %s\n", share.ShareLink)
	}
	if share.Warning != "" {
		fmt.Printf("⚠️  %s\n", share.Warning)
	}
	return nil
}

func runShareIncoming(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	shares, err := client.SharedWithMe(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list shares: %w", err)
	}

	if len(shares) == 0 {
		fmt.Println("Nothing shared with you.")
		return nil
	}

	fmt.Println("\n📥 Shared with you")
	for _, s := range shares {
		status := "pending"
		if s.Accepted {
			status = "accepted"
		}
		fmt.Printf("  %-30s  %-6s  %-8s  from %s\n", s.TaskTitle, s.Permission, status, s.SharedByUsername)
	}
	fmt.Println()
	return nil
}

func runShareOutgoing(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	shares, err := client.SharedByMe(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list shares: %w", err)
	}

	if len(shares) == 0 {
		fmt.Println("You have not shared any tasks.")
		return nil
	}

	fmt.Println("\n📤 Shared by you")
	for _, s := range shares {
		fmt.Printf("  %-30s  %-6s  to %s\n", s.TaskTitle, s.Permission, s.SharedToUsername)
	}
	fmt.Println()
	return nil
}

func runShareShow(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	shared, err := client.ResolveShareLink(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve share link: %w", err)
	}

	fmt.Printf("\n🔗 %s\n", shared.TaskTitle)
	if shared.TaskDescription != "" {
		fmt.Printf("   %s\n", shared.TaskDescription)
	}
	fmt.Printf("   Shared by %s (%s)\n\n", shared.SharedBy, shared.Permission)
	return nil
}

func runShareAccept(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	if err := client.AcceptShare(context.Background(), args[0]); err != nil {
		return fmt.Errorf("failed to accept share: %w", err)
	}

	fmt.Println("✅ Share accepted.")
	return nil
}
