package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Create a task from a natural-language message",
	Long: `Send a message to the task chatbot, which creates a task from it.

Examples:
  taskdeck chat "remind me to call the dentist tomorrow at 3pm"
  taskdeck chat urgent: finish the slides by friday`,
	Args: cobra.MinimumNArgs(1),
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	message := strings.Join(args, " ")

	fmt.Println("🔄 Thinking...")
	reply, err := client.SendChatMessage(context.Background(), message)
	if err != nil {
		return fmt.Errorf("chat failed: %w", err)
	}

	fmt.Printf("\n💬 %s\n", reply.Response)
	fmt.Printf("✓ Created: \"%s\" (%s, id %d)\n", reply.Task.Title, reply.Task.Priority, reply.Task.ID)
	if reply.Prediction != nil {
		verdict := "⚠️  likely late"
		if reply.Prediction.OnTimePrediction == 1 {
			verdict = "✅ likely on time"
		}
		fmt.Printf("   Forecast: %s (confidence %.0f%%)\n", verdict, reply.Prediction.Confidence*100)
	}
	fmt.Println()
	return nil
}
