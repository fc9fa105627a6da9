package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/driftware/taskdeck/internal/api"
	"github.com/driftware/taskdeck/internal/config"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Let the server plan your tasks",
	Long: `Ask the scheduling service for a plan and optionally apply it,
which rewrites the reminder times of the scheduled tasks.

Examples:
  taskdeck schedule today
  taskdeck schedule today --hours 6 --start-hour 10 --apply
  taskdeck schedule week --hours 8`,
}

var (
	scheduleHours     int
	scheduleStartHour int
	scheduleApply     bool
)

var scheduleTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Plan today's tasks",
	RunE:  runScheduleToday,
}

var scheduleWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Plan the coming week",
	RunE:  runScheduleWeek,
}

func init() {
	scheduleCmd.PersistentFlags().IntVar(&scheduleHours, "hours", 0, "Available hours (per day for week)")
	scheduleTodayCmd.Flags().IntVar(&scheduleStartHour, "start-hour", 0, "Hour of day to start (0-23)")
	scheduleTodayCmd.Flags().BoolVar(&scheduleApply, "apply", false, "Apply the proposed plan")

	scheduleCmd.AddCommand(scheduleTodayCmd)
	scheduleCmd.AddCommand(scheduleWeekCmd)
}

// scheduleDefaults resolves hours/start-hour from flags with config
// fallback
func scheduleDefaults() (hours, startHour int) {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	hours = scheduleHours
	if hours <= 0 {
		hours = cfg.AvailableHours
	}
	startHour = scheduleStartHour
	if startHour <= 0 {
		startHour = cfg.StartHour
	}
	return hours, startHour
}

func runScheduleToday(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	hours, startHour := scheduleDefaults()
	ctx := context.Background()

	schedule, err := client.ScheduleToday(ctx, hours, startHour)
	if err != nil {
		return fmt.Errorf("failed to build schedule: %w", err)
	}

	if len(schedule.Schedule) == 0 {
		fmt.Println("Nothing to schedule today. 🎉")
		return nil
	}

	fmt.Printf("\n🗓  Today's plan (%.1fh of %.1fh, %.0f%% utilization)\n",
		schedule.TotalHours, schedule.AvailableHours, schedule.Utilization)
	fmt.Println(strings.Repeat("─", 60))
	for _, item := range schedule.Schedule {
		printScheduleItem(item)
	}
	fmt.Println()

	if scheduleApply {
		fmt.Println("🔄 Applying plan...")
		result, err := client.ApplySchedule(ctx, schedule.Schedule)
		if err != nil {
			return fmt.Errorf("failed to apply schedule: %w", err)
		}
		fmt.Printf("✅ Updated %d tasks.\n", result.UpdatedCount)
	}
	return nil
}

func runScheduleWeek(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	hours, _ := scheduleDefaults()

	week, err := client.ScheduleWeek(context.Background(), hours)
	if err != nil {
		return fmt.Errorf("failed to build schedule: %w", err)
	}

	fmt.Printf("\n🗓  Week plan (%d of %d tasks scheduled)\n",
		week.TotalTasksScheduled, week.TotalTasks)
	for _, day := range week.WeeklySchedule {
		if len(day.Tasks) == 0 {
			continue
		}
		fmt.Printf("\n%s (%.1fh)\n", day.Day, day.TotalHours)
		fmt.Println(strings.Repeat("─", 60))
		for _, item := range day.Tasks {
			printScheduleItem(item)
		}
	}
	fmt.Println()
	return nil
}

func printScheduleItem(item api.ScheduleItem) {
	window := ""
	if item.StartTime != "" && item.EndTime != "" {
		window = fmt.Sprintf("%s–%s", clockPart(item.StartTime), clockPart(item.EndTime))
	}
	title := item.Title
	if len(title) > 36 {
		title = title[:33] + "..."
	}
	fmt.Printf("  %-13s  %-36s  %-7s  %.1fh\n", window, title, item.Priority, item.DurationHours)
	if item.Reason != "" {
		fmt.Printf("                 %s\n", item.Reason)
	}
}

// clockPart extracts HH:MM from a naive local timestamp
func clockPart(ts string) string {
	if i := strings.IndexByte(ts, 'T'); i >= 0 && len(ts) >= i+6 {
		return ts[i+1 : i+6]
	}
	return ts
}
