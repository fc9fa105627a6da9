package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftware/taskdeck/internal/model"
)

// 14:00 local on an arbitrary Wednesday
var remNow = time.Date(2026, 8, 26, 14, 0, 0, 0, time.Local)

func TestProjectRemindersOneShot(t *testing.T) {
	soon := remNow.Add(5 * time.Minute)
	past := remNow.Add(-time.Hour)

	tasks := []model.Task{
		{ID: 1, Title: "Soon", RemindAt: &soon},
		{ID: 2, Title: "Already fired", RemindAt: &past},
		{ID: 3, Title: "No reminder"},
	}

	got := ProjectReminders(tasks, remNow)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].Task.ID)
	assert.Equal(t, soon, got[0].NextAt)
	assert.False(t, got[0].Daily)
}

func TestProjectRemindersDailyRollsToTomorrow(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Title: "Morning routine", DailyReminderTime: "09:00"},
		{ID: 2, Title: "Evening review", DailyReminderTime: "18:00"},
	}

	got := ProjectReminders(tasks, remNow)
	require.Len(t, got, 2)

	// 18:00 is still ahead today, 09:00 already passed and rolls over
	assert.Equal(t, int64(2), got[0].Task.ID)
	assert.Equal(t, time.Date(2026, 8, 26, 18, 0, 0, 0, time.Local), got[0].NextAt)

	assert.Equal(t, int64(1), got[1].Task.ID)
	assert.Equal(t, time.Date(2026, 8, 27, 9, 0, 0, 0, time.Local), got[1].NextAt)
	assert.True(t, got[1].Daily)
}

func TestProjectRemindersDailyWinsOverOneShot(t *testing.T) {
	oneShot := remNow.Add(10 * time.Minute)
	tasks := []model.Task{
		{ID: 1, Title: "Both set", DailyReminderTime: "15:00", RemindAt: &oneShot},
	}

	got := ProjectReminders(tasks, remNow)
	require.Len(t, got, 1)
	assert.True(t, got[0].Daily)
	assert.Equal(t, time.Date(2026, 8, 26, 15, 0, 0, 0, time.Local), got[0].NextAt)
}

func TestProjectRemindersSkipsCompletedAndCaps(t *testing.T) {
	var tasks []model.Task
	for i := 1; i <= 5; i++ {
		at := remNow.Add(time.Duration(i) * time.Hour)
		tasks = append(tasks, model.Task{ID: int64(i), RemindAt: &at})
	}
	done := remNow.Add(time.Minute)
	tasks = append(tasks, model.Task{ID: 99, Completed: true, RemindAt: &done})

	got := ProjectReminders(tasks, remNow)
	require.Len(t, got, 3)
	assert.Equal(t, int64(1), got[0].Task.ID)
	assert.Equal(t, int64(2), got[1].Task.ID)
	assert.Equal(t, int64(3), got[2].Task.ID)
}

func TestProjectRemindersSecondsFormAccepted(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, DailyReminderTime: "18:30:00"},
		{ID: 2, DailyReminderTime: "not-a-time"},
	}

	got := ProjectReminders(tasks, remNow)
	require.Len(t, got, 1)
	assert.Equal(t, time.Date(2026, 8, 26, 18, 30, 0, 0, time.Local), got[0].NextAt)
}
