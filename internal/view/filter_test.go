package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftware/taskdeck/internal/model"
)

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func sampleTasks() []model.Task {
	return []model.Task{
		{ID: 1, Title: "Write quarterly report", Description: "for finance", Priority: model.PriorityMedium, Tags: []string{"work", "writing"}, DueAt: ts("2026-09-10T09:00:00Z"), CreatedAt: *ts("2026-08-01T08:00:00Z")},
		{ID: 2, Title: "Buy groceries", Priority: model.PriorityUrgent, Tags: []string{"home"}, CreatedAt: *ts("2026-08-03T08:00:00Z")},
		{ID: 3, Title: "Fix login bug", Description: "urgent report from QA", Priority: model.PriorityUrgent, Tags: []string{"work", "dev"}, DueAt: ts("2026-09-01T09:00:00Z"), CreatedAt: *ts("2026-08-02T08:00:00Z")},
		{ID: 4, Title: "Water plants", Priority: model.PriorityLow, Tags: []string{"home", "garden"}, CreatedAt: *ts("2026-08-04T08:00:00Z")},
	}
}

func ids(tasks []model.Task) []int64 {
	out := make([]int64, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestDeriveViewNoFilterKeepsOrder(t *testing.T) {
	tasks := sampleTasks()
	got := DeriveView(tasks, FilterState{})
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(got))
}

func TestDeriveViewTagConjunction(t *testing.T) {
	tasks := sampleTasks()

	got := DeriveView(tasks, FilterState{SelectedTags: []string{"work"}})
	assert.Equal(t, []int64{1, 3}, ids(got))

	// All selected tags must match, not any
	got = DeriveView(tasks, FilterState{SelectedTags: []string{"work", "dev"}})
	assert.Equal(t, []int64{3}, ids(got))

	got = DeriveView(tasks, FilterState{SelectedTags: []string{"work", "garden"}})
	assert.Empty(t, got)
}

func TestDeriveViewSearchSpansFields(t *testing.T) {
	tasks := sampleTasks()

	// "report" appears in one title and one description
	got := DeriveView(tasks, FilterState{Search: "REPORT"})
	assert.Equal(t, []int64{1, 3}, ids(got))

	// tag match
	got = DeriveView(tasks, FilterState{Search: "garden"})
	assert.Equal(t, []int64{4}, ids(got))

	// tags narrow before search
	got = DeriveView(tasks, FilterState{SelectedTags: []string{"work"}, Search: "bug"})
	assert.Equal(t, []int64{3}, ids(got))
}

func TestDeriveViewSortPriorityStable(t *testing.T) {
	tasks := sampleTasks()
	got := DeriveView(tasks, FilterState{SortBy: SortPriority})
	// Urgent tasks keep their relative input order
	assert.Equal(t, []int64{2, 3, 1, 4}, ids(got))
}

func TestDeriveViewSortDueAtNilFirst(t *testing.T) {
	tasks := sampleTasks()
	got := DeriveView(tasks, FilterState{SortBy: SortDueAt})
	// Undated tasks first (in input order), then ascending due dates
	assert.Equal(t, []int64{2, 4, 3, 1}, ids(got))
}

func TestDeriveViewSortCreatedAt(t *testing.T) {
	tasks := sampleTasks()
	got := DeriveView(tasks, FilterState{SortBy: SortCreatedAt})
	assert.Equal(t, []int64{1, 3, 2, 4}, ids(got))
}

func TestDeriveViewDoesNotMutateInput(t *testing.T) {
	tasks := sampleTasks()
	before := ids(tasks)

	_ = DeriveView(tasks, FilterState{SortBy: SortPriority, Search: "a"})

	assert.Equal(t, before, ids(tasks))
}

func TestDeriveViewIdempotentOnOwnOutput(t *testing.T) {
	tasks := sampleTasks()
	state := FilterState{SelectedTags: []string{"work"}, Search: "report", SortBy: SortPriority}

	once := DeriveView(tasks, state)
	twice := DeriveView(once, state)
	require.Equal(t, ids(once), ids(twice))
}

func TestAvailableTags(t *testing.T) {
	tags := AvailableTags(sampleTasks())
	assert.Equal(t, []string{"dev", "garden", "home", "work", "writing"}, tags)
}
