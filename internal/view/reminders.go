package view

import (
	"sort"
	"time"

	"github.com/driftware/taskdeck/internal/model"
)

// maxReminders caps the upcoming-reminders strip to the soonest few
const maxReminders = 3

// Reminder is a projected next occurrence for one task. Derived on
// every pass, never persisted.
type Reminder struct {
	Task   model.Task
	NextAt time.Time
	Daily  bool
}

// ProjectReminders computes the upcoming reminders for a snapshot,
// ascending by next occurrence and capped to the soonest three.
//
// Completed tasks never remind. A daily reminder time projects to today
// at that time when it is still ahead of now, otherwise to exactly 24
// hours after today's occurrence (a duration add, so it never drifts
// against calendar edge cases). A one-shot remind_at projects only
// while it is still in the future; past one-shots are not resurfaced.
// When a task carries both, the daily time wins and the one-shot is
// ignored.
func ProjectReminders(tasks []model.Task, now time.Time) []Reminder {
	var reminders []Reminder

	for _, t := range tasks {
		if t.Completed {
			continue
		}

		if t.DailyReminderTime != "" {
			next, ok := nextDailyOccurrence(t.DailyReminderTime, now)
			if !ok {
				continue
			}
			reminders = append(reminders, Reminder{Task: t, NextAt: next, Daily: true})
			continue
		}

		if t.RemindAt != nil && t.RemindAt.After(now) {
			reminders = append(reminders, Reminder{Task: t, NextAt: *t.RemindAt, Daily: false})
		}
	}

	sort.SliceStable(reminders, func(i, j int) bool {
		return reminders[i].NextAt.Before(reminders[j].NextAt)
	})

	if len(reminders) > maxReminders {
		reminders = reminders[:maxReminders]
	}
	return reminders
}

// nextDailyOccurrence projects an "HH:MM" (or "HH:MM:SS") time of day
// onto now's calendar date, rolling to tomorrow once today's slot has
// passed
func nextDailyOccurrence(timeOfDay string, now time.Time) (time.Time, bool) {
	if len(timeOfDay) > 5 {
		timeOfDay = timeOfDay[:5]
	}

	parsed, err := time.Parse("15:04", timeOfDay)
	if err != nil {
		return time.Time{}, false
	}

	today := time.Date(now.Year(), now.Month(), now.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, now.Location())

	if today.After(now) {
		return today, true
	}
	return today.Add(24 * time.Hour), true
}
