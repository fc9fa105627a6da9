package api

import (
	"context"
	"net/http"
	"time"

	"github.com/driftware/taskdeck/internal/model"
)

// Prediction is the completion forecast from the prediction service.
// The model itself is opaque to this client; the JSON is rendered as-is.
type Prediction struct {
	OnTimePrediction int     `json:"on_time_prediction"` // 1 = expected on time
	Confidence       float64 `json:"confidence"`         // 0..1
}

// PredictionInput is the feature set the prediction endpoint expects
type PredictionInput struct {
	Priority             string `json:"priority"`
	EstimatedDurationMin int    `json:"estimated_duration_min"`
	StartHour            int    `json:"start_hour"`
	DayOfWeek            int    `json:"day_of_week"` // ISO: 1=Monday .. 7=Sunday
	TaskID               *int64 `json:"task_id,omitempty"`
}

// NewPredictionInput derives prediction features from a task payload.
// The start hour and day of week come from plannedStart when given,
// otherwise from now; the duration falls back to the planned-start to
// due-date span, or 60 minutes.
func NewPredictionInput(payload model.TaskPayload, plannedStart *time.Time, now time.Time) PredictionInput {
	ref := now
	if plannedStart != nil {
		ref = *plannedStart
	}

	dayOfWeek := int(ref.Weekday())
	if dayOfWeek == 0 {
		dayOfWeek = 7 // Sunday
	}

	duration := 60
	if plannedStart != nil && payload.DueAt != nil && payload.DueAt.After(*plannedStart) {
		span := int(payload.DueAt.Sub(*plannedStart).Minutes())
		if span >= 1 {
			duration = span
		}
	}

	priority := payload.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	return PredictionInput{
		Priority:             priority,
		EstimatedDurationMin: duration,
		StartHour:            ref.Hour(),
		DayOfWeek:            dayOfWeek,
	}
}

// PredictCompletion asks the prediction service whether a task will be
// finished on time
func (c *Client) PredictCompletion(ctx context.Context, input PredictionInput) (Prediction, error) {
	var prediction Prediction
	if err := c.do(ctx, http.MethodPost, "/predict/", nil, input, &prediction); err != nil {
		return Prediction{}, err
	}
	return prediction, nil
}

// ScheduleItem is one scheduled slot in a proposed plan
type ScheduleItem struct {
	TaskID        int64   `json:"task_id"`
	Title         string  `json:"title"`
	Priority      string  `json:"priority"`
	Score         float64 `json:"score"`
	StartTime     string  `json:"start_time,omitempty"` // naive local "2006-01-02T15:04:05"
	EndTime       string  `json:"end_time,omitempty"`
	DurationHours float64 `json:"duration_hours"`
	Reason        string  `json:"reason,omitempty"`
}

// DaySchedule is the scheduler's proposal for a single day
type DaySchedule struct {
	Schedule       []ScheduleItem `json:"schedule"`
	TotalHours     float64        `json:"total_hours"`
	AvailableHours float64        `json:"available_hours"`
	Utilization    float64        `json:"utilization"`
	FixedTasks     int            `json:"fixed_tasks"`
	FlexibleTasks  int            `json:"flexible_tasks"`
}

// WeekDay is one day inside a weekly proposal
type WeekDay struct {
	Day        string         `json:"day"`
	DayNumber  int            `json:"day_number"`
	Tasks      []ScheduleItem `json:"tasks"`
	TotalHours float64        `json:"total_hours"`
}

// WeekSchedule is the scheduler's proposal for a week
type WeekSchedule struct {
	WeeklySchedule      []WeekDay `json:"weekly_schedule"`
	TotalTasksScheduled int       `json:"total_tasks_scheduled"`
	TotalTasks          int       `json:"total_tasks"`
}

// ApplyResult confirms how many tasks a schedule application touched
type ApplyResult struct {
	Success      bool `json:"success"`
	UpdatedCount int  `json:"updated_count"`
}

// ScheduleToday asks the scheduling service for a plan for today
func (c *Client) ScheduleToday(ctx context.Context, availableHours, startHour int) (DaySchedule, error) {
	body := map[string]int{
		"available_hours": availableHours,
		"start_hour":      startHour,
	}
	var schedule DaySchedule
	if err := c.do(ctx, http.MethodPost, "/schedule/today/", nil, body, &schedule); err != nil {
		return DaySchedule{}, err
	}
	return schedule, nil
}

// ScheduleWeek asks the scheduling service for a weekly plan
func (c *Client) ScheduleWeek(ctx context.Context, hoursPerDay int) (WeekSchedule, error) {
	body := map[string]int{"hours_per_day": hoursPerDay}
	var schedule WeekSchedule
	if err := c.do(ctx, http.MethodPost, "/schedule/week/", nil, body, &schedule); err != nil {
		return WeekSchedule{}, err
	}
	return schedule, nil
}

// ApplySchedule writes a proposed schedule back to the tasks it covers
func (c *Client) ApplySchedule(ctx context.Context, items []ScheduleItem) (ApplyResult, error) {
	body := map[string]interface{}{"schedule": items}
	var result ApplyResult
	if err := c.do(ctx, http.MethodPost, "/schedule/apply/", nil, body, &result); err != nil {
		return ApplyResult{}, err
	}
	c.cache.Clear("reports")
	return result, nil
}

// ChatReply is the chat widget's answer: the created task, a
// human-readable response and an optional prediction
type ChatReply struct {
	Task       model.Task  `json:"task"`
	Response   string      `json:"response"`
	Prediction *Prediction `json:"prediction"`
}

// SendChatMessage sends a natural-language message to the task chatbot
func (c *Client) SendChatMessage(ctx context.Context, message string) (ChatReply, error) {
	body := map[string]string{"message": message}
	var reply ChatReply
	if err := c.do(ctx, http.MethodPost, "/todos/chatbot/", nil, body, &reply); err != nil {
		return ChatReply{}, err
	}
	c.cache.Clear("reports")
	return reply, nil
}
