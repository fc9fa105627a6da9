package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/driftware/taskdeck/internal/cache"
)

// ProgressReport summarizes overall completion
type ProgressReport struct {
	TotalTasks      int     `json:"total_tasks"`
	CompletedTasks  int     `json:"completed_tasks"`
	IncompleteTasks int     `json:"incomplete_tasks"`
	CompletionRate  float64 `json:"completion_rate"`
}

// TimelinePoint is one day of created/completed counts
type TimelinePoint struct {
	Date      string `json:"date"`
	Created   int    `json:"created"`
	Completed int    `json:"completed"`
}

// PriorityReport summarizes completion for one priority bucket
type PriorityReport struct {
	Priority       string  `json:"priority"`
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	CompletionRate float64 `json:"completion_rate"`
}

// ProgressReport fetches the completion summary. The result is cached
// briefly; any task mutation evicts it.
func (c *Client) ProgressReport(ctx context.Context) (ProgressReport, error) {
	return cache.Cached(c.cache, "reports:progress", cache.DefaultTTL, func() (ProgressReport, error) {
		var report ProgressReport
		if err := c.do(ctx, http.MethodGet, "/reports/progress/", nil, nil, &report); err != nil {
			return ProgressReport{}, err
		}
		return report, nil
	})
}

// TimelineReport fetches per-day counts, optionally bounded by
// start/end dates (YYYY-MM-DD)
func (c *Client) TimelineReport(ctx context.Context, startDate, endDate string) ([]TimelinePoint, error) {
	q := url.Values{}
	if startDate != "" {
		q.Set("start_date", startDate)
	}
	if endDate != "" {
		q.Set("end_date", endDate)
	}

	var points []TimelinePoint
	if err := c.do(ctx, http.MethodGet, "/reports/timeline/", q, nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// PriorityReport fetches per-priority completion stats, cached like the
// progress report
func (c *Client) PriorityReport(ctx context.Context) ([]PriorityReport, error) {
	return cache.Cached(c.cache, "reports:priority", cache.DefaultTTL, func() ([]PriorityReport, error) {
		var reports []PriorityReport
		if err := c.do(ctx, http.MethodGet, "/reports/by-priority/", nil, nil, &reports); err != nil {
			return nil, err
		}
		return reports, nil
	})
}
