package reporting

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"lydskog/internal/pkg/async"
	"lydskog/internal/tracking"
)

// FetchRawRows reads the three raw tables for a window concurrently. The
// report fails as a whole if any fetch fails; no partial results. Rows come
// back newest first.
func FetchRawRows(ctx context.Context, db *gorm.DB, w Window) (RawRows, error) {
	pool := async.NewPool(3)

	tasks := []async.Task{
		{
			Name: "page_views",
			Execute: func() (interface{}, error) {
				var rows []tracking.PageView
				err := db.
					Where("created_at >= ? AND created_at < ?", w.Start, w.End).
					Order("created_at DESC").
					Find(&rows).Error
				return rows, err
			},
		},
		{
			Name: "analytics_events",
			Execute: func() (interface{}, error) {
				var rows []tracking.AnalyticsEvent
				err := db.
					Where("created_at >= ? AND created_at < ?", w.Start, w.End).
					Order("created_at DESC").
					Find(&rows).Error
				return rows, err
			},
		},
		{
			Name: "active_sessions",
			Execute: func() (interface{}, error) {
				var rows []tracking.ActiveSession
				err := db.Order("last_seen DESC").Find(&rows).Error
				return rows, err
			},
		},
	}

	results := pool.Execute(ctx, tasks)

	var raw RawRows
	for _, name := range []string{"page_views", "analytics_events", "active_sessions"} {
		result, ok := results[name]
		if !ok {
			return RawRows{}, fmt.Errorf("fetch %s: %w", name, ctx.Err())
		}
		if result.Err != nil {
			return RawRows{}, fmt.Errorf("fetch %s: %w", name, result.Err)
		}
		switch name {
		case "page_views":
			raw.PageViews = result.Data.([]tracking.PageView)
		case "analytics_events":
			raw.Events = result.Data.([]tracking.AnalyticsEvent)
		case "active_sessions":
			raw.Sessions = result.Data.([]tracking.ActiveSession)
		}
	}

	return raw, nil
}

// BuildReport fetches a window of raw rows and aggregates them into a Report.
// All output formats derive from the returned value without further queries.
func BuildReport(ctx context.Context, db *gorm.DB, days int, now time.Time) (*Report, error) {
	w := NewWindow(days, now)

	raw, err := FetchRawRows(ctx, db, w)
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}

	return &Report{
		Window:      w,
		GeneratedAt: now.UTC(),
		Stats:       Aggregate(raw, w, now),
		Raw:         raw,
	}, nil
}
