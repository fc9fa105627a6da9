package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/driftware/taskdeck/internal/api"
	"github.com/driftware/taskdeck/internal/model"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict on-time completion for a planned task",
	Long: `Ask the prediction service whether a task with the given shape
would be finished on time.

Examples:
  taskdeck predict -p High --duration 90
  taskdeck predict -p Urgent --start 2026-09-01T14:00 --due 2026-09-01T17:00`,
	RunE: runPredict,
}

var (
	predictPriority string
	predictDuration int
	predictStart    string
	predictDue      string
)

func init() {
	predictCmd.Flags().StringVarP(&predictPriority, "priority", "p", model.PriorityMedium, "Priority (Low, Medium, High, Urgent)")
	predictCmd.Flags().IntVar(&predictDuration, "duration", 0, "Estimated duration in minutes")
	predictCmd.Flags().StringVar(&predictStart, "start", "", "Planned start (2006-01-02T15:04)")
	predictCmd.Flags().StringVar(&predictDue, "due", "", "Due time (2006-01-02T15:04)")
}

func runPredict(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	start, err := parseWhen(predictStart)
	if err != nil {
		return err
	}
	due, err := parseWhen(predictDue)
	if err != nil {
		return err
	}

	input := api.NewPredictionInput(model.TaskPayload{
		Priority: predictPriority,
		DueAt:    due,
	}, start, time.Now())
	if predictDuration > 0 {
		input.EstimatedDurationMin = predictDuration
	}

	prediction, err := client.PredictCompletion(context.Background(), input)
	if err != nil {
		return fmt.Errorf("failed to get prediction: %w", err)
	}

	verdict := "⚠️  Likely late"
	if prediction.OnTimePrediction == 1 {
		verdict = "✅ Likely on time"
	}
	fmt.Printf("\n%s (confidence %.0f%%)\n\n", verdict, prediction.Confidence*100)
	return nil
}
