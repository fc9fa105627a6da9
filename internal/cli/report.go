package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show progress reports",
	Long: `Show completion reports computed by the server.

Examples:
  taskdeck report progress
  taskdeck report priority
  taskdeck report timeline --start 2026-08-01 --end 2026-08-31`,
}

var (
	timelineStart string
	timelineEnd   string
)

var reportProgressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Overall completion summary",
	RunE:  runReportProgress,
}

var reportPriorityCmd = &cobra.Command{
	Use:   "priority",
	Short: "Completion per priority",
	RunE:  runReportPriority,
}

var reportTimelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Created/completed counts per day",
	RunE:  runReportTimeline,
}

func init() {
	reportTimelineCmd.Flags().StringVar(&timelineStart, "start", "", "Start date (2006-01-02)")
	reportTimelineCmd.Flags().StringVar(&timelineEnd, "end", "", "End date (2006-01-02)")

	reportCmd.AddCommand(reportProgressCmd)
	reportCmd.AddCommand(reportPriorityCmd)
	reportCmd.AddCommand(reportTimelineCmd)
}

func runReportProgress(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	report, err := client.ProgressReport(context.Background())
	if err != nil {
		return fmt.Errorf("failed to fetch progress report: %w", err)
	}

	fmt.Println("\n📊 Progress")
	fmt.Println(strings.Repeat("─", 40))
	fmt.Printf("  Total:      %d\n", report.TotalTasks)
	fmt.Printf("  Completed:  %d\n", report.CompletedTasks)
	fmt.Printf("  Remaining:  %d\n", report.IncompleteTasks)
	fmt.Printf("  Rate:       %.1f%%\n\n", report.CompletionRate)
	return nil
}

func runReportPriority(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	rows, err := client.PriorityReport(context.Background())
	if err != nil {
		return fmt.Errorf("failed to fetch priority report: %w", err)
	}

	fmt.Println("\n📊 By priority")
	fmt.Println(strings.Repeat("─", 40))
	for _, r := range rows {
		fmt.Printf("  %-8s  %d/%d  (%.1f%%)\n", r.Priority, r.Completed, r.Total, r.CompletionRate)
	}
	fmt.Println()
	return nil
}

func runReportTimeline(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	points, err := client.TimelineReport(context.Background(), timelineStart, timelineEnd)
	if err != nil {
		return fmt.Errorf("failed to fetch timeline report: %w", err)
	}

	if len(points) == 0 {
		fmt.Println("No activity in this range.")
		return nil
	}

	fmt.Println("\n📊 Timeline")
	fmt.Println(strings.Repeat("─", 40))
	for _, p := range points {
		fmt.Printf("  %s  +%-3d  ✓%-3d\n", p.Date, p.Created, p.Completed)
	}
	fmt.Println()
	return nil
}
