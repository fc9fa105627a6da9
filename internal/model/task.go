package model

import "time"

// Priority levels, matching the server's enum
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
	PriorityUrgent = "Urgent"
)

// priorityWeights orders priorities for sorting. Unknown values weigh 0.
var priorityWeights = map[string]int{
	PriorityUrgent: 3,
	PriorityHigh:   2,
	PriorityMedium: 1,
	PriorityLow:    0,
}

// PriorityWeight returns the sort weight for a priority value
func PriorityWeight(p string) int {
	return priorityWeights[p]
}

// Priorities lists the valid priority values, lowest first
func Priorities() []string {
	return []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
}

// Task is a single todo item as the server represents it.
// IDs and created_at are server-assigned; the client never mints them.
type Task struct {
	ID                int64      `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description,omitempty"`
	Completed         bool       `json:"completed"`
	Priority          string     `json:"priority"`
	Tags              []string   `json:"tags,omitempty"`
	DueAt             *time.Time `json:"due_at,omitempty"`
	RemindAt          *time.Time `json:"remind_at,omitempty"`
	DailyReminderTime string     `json:"daily_reminder_time,omitempty"` // "HH:MM" or "HH:MM:SS"
	Category          *int64     `json:"category,omitempty"`
	CategoryName      string     `json:"category_name,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// IsOverdue returns true if the task has a due date in the past and is not done
func (t *Task) IsOverdue(now time.Time) bool {
	if t.Completed || t.DueAt == nil {
		return false
	}
	return t.DueAt.Before(now)
}

// HasTag returns true if the task carries the given tag
func (t *Task) HasTag(tag string) bool {
	for _, x := range t.Tags {
		if x == tag {
			return true
		}
	}
	return false
}

// TaskPayload is the body sent on create and update. Updates are full
// replaces on the server side, so every field is always serialized.
type TaskPayload struct {
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Completed         bool       `json:"completed"`
	Priority          string     `json:"priority"`
	Tags              []string   `json:"tags"`
	DueAt             *time.Time `json:"due_at"`
	RemindAt          *time.Time `json:"remind_at"`
	DailyReminderTime *string    `json:"daily_reminder_time"`
	Category          *int64     `json:"category"`
}

// PayloadFrom builds a full payload from an existing task, for updates
// that only change a subset of fields.
func PayloadFrom(t Task) TaskPayload {
	p := TaskPayload{
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Priority:    t.Priority,
		Tags:        t.Tags,
		DueAt:       t.DueAt,
		RemindAt:    t.RemindAt,
		Category:    t.Category,
	}
	if t.DailyReminderTime != "" {
		drt := t.DailyReminderTime
		p.DailyReminderTime = &drt
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p
}
