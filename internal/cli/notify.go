package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Manage email reminder notifications",
	Long: `Show or change the email reminder setting of a task.

Examples:
  taskdeck notify show 42
  taskdeck notify set 42 --minutes 30
  taskdeck notify off 42`,
}

var notifyMinutes int

var notifyShowCmd = &cobra.Command{
	Use:   "show [task-id]",
	Short: "Show a task's notification setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotifyShow,
}

var notifySetCmd = &cobra.Command{
	Use:   "set [task-id]",
	Short: "Enable an email reminder for a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotifySet,
}

var notifyOffCmd = &cobra.Command{
	Use:   "off [task-id]",
	Short: "Disable a task's email reminder",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotifyOff,
}

func init() {
	notifySetCmd.Flags().IntVar(&notifyMinutes, "minutes", 30, "Minutes before the reminder time to send the mail")

	notifyCmd.AddCommand(notifyShowCmd)
	notifyCmd.AddCommand(notifySetCmd)
	notifyCmd.AddCommand(notifyOffCmd)
}

func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

func runNotifyShow(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	setting, err := client.NotificationForTask(context.Background(), id)
	if err != nil {
		return fmt.Errorf("failed to load notification setting: %w", err)
	}

	if setting == nil {
		fmt.Println("No notification configured for this task.")
		return nil
	}

	state := "off"
	if setting.Enabled {
		state = "on"
	}
	fmt.Printf("🔔 Task %d: %s, %d minutes before, via %s\n", id, state, setting.ReminderMinutes, setting.Channels)
	return nil
}

func runNotifySet(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	setting, err := client.SaveNotification(context.Background(), id, true, notifyMinutes)
	if err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}

	fmt.Printf("🔔 Reminder enabled: %d minutes before, via %s\n", setting.ReminderMinutes, setting.Channels)
	return nil
}

func runNotifyOff(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	if _, err := client.SaveNotification(context.Background(), id, false, 0); err != nil {
		return fmt.Errorf("failed to disable notification: %w", err)
	}

	fmt.Println("🔕 Reminder disabled.")
	return nil
}
