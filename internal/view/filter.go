package view

import (
	"sort"
	"strings"
	"time"

	"github.com/driftware/taskdeck/internal/model"
)

// SortKey selects the ordering of the derived view
type SortKey string

const (
	SortDefault   SortKey = "default" // keep server order
	SortDueAt     SortKey = "due_at"
	SortPriority  SortKey = "priority"
	SortCreatedAt SortKey = "created_at"
)

// SortKeys lists the selectable orderings in cycle order
func SortKeys() []SortKey {
	return []SortKey{SortDefault, SortDueAt, SortPriority, SortCreatedAt}
}

// FilterState is the mutable view state the user drives. Status,
// priority and category filters are request parameters resolved by the
// server before the snapshot arrives; only tags, search and sort apply
// here.
type FilterState struct {
	Search       string
	SelectedTags []string
	SortBy       SortKey
}

// DeriveView produces the filtered, ordered view of a task snapshot.
// Pure: the input slice is never mutated, so it is safe to call on
// every render. Stages run in a fixed order: tag filter, then search,
// then sort.
func DeriveView(tasks []model.Task, state FilterState) []model.Task {
	data := tasks

	// A task survives the tag filter iff it carries every selected tag
	if len(state.SelectedTags) > 0 {
		filtered := make([]model.Task, 0, len(data))
		for _, t := range data {
			if hasAllTags(&t, state.SelectedTags) {
				filtered = append(filtered, t)
			}
		}
		data = filtered
	}

	if q := strings.ToLower(strings.TrimSpace(state.Search)); q != "" {
		filtered := make([]model.Task, 0, len(data))
		for _, t := range data {
			if matchesSearch(&t, q) {
				filtered = append(filtered, t)
			}
		}
		data = filtered
	}

	switch state.SortBy {
	case SortDueAt:
		data = sortedCopy(data, func(a, b *model.Task) bool {
			return timeLess(a.DueAt, b.DueAt)
		})
	case SortPriority:
		data = sortedCopy(data, func(a, b *model.Task) bool {
			return model.PriorityWeight(a.Priority) > model.PriorityWeight(b.Priority)
		})
	case SortCreatedAt:
		data = sortedCopy(data, func(a, b *model.Task) bool {
			return a.CreatedAt.Before(b.CreatedAt)
		})
	}

	return data
}

func hasAllTags(t *model.Task, tags []string) bool {
	for _, tag := range tags {
		if !t.HasTag(tag) {
			return false
		}
	}
	return true
}

// matchesSearch checks title, description and tags for the lower-cased
// needle as a substring
func matchesSearch(t *model.Task, q string) bool {
	if strings.Contains(strings.ToLower(t.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), q) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// sortedCopy stable-sorts a copy so the caller's slice keeps its order
func sortedCopy(tasks []model.Task, less func(a, b *model.Task) bool) []model.Task {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		return less(&out[i], &out[j])
	})
	return out
}

// timeLess orders nullable timestamps ascending with missing values
// first, matching how the server's ISO strings would compare
func timeLess(a, b *time.Time) bool {
	if a == nil {
		return b != nil
	}
	if b == nil {
		return false
	}
	return a.Before(*b)
}

// AvailableTags returns the sorted union of all tags in the snapshot
func AvailableTags(tasks []model.Task) []string {
	seen := make(map[string]struct{})
	for _, t := range tasks {
		for _, tag := range t.Tags {
			seen[tag] = struct{}{}
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
