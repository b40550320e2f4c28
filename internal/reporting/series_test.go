package reporting_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lydskog/internal/reporting"
	"lydskog/internal/tracking"
)

func TestDailySeriesCoversThirtyDaysEndingToday(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	raw := reporting.RawRows{
		PageViews: []tracking.PageView{
			view("s1", "/", now.Add(-2*time.Hour)),
			view("s1", "/", now.AddDate(0, 0, -3)),
			view("s2", "/", now.AddDate(0, 0, -3)),
		},
	}

	stats := reporting.Aggregate(raw, reporting.NewWindow(30, now), now)

	require.Len(t, stats.DailyViews, 30)
	assert.Equal(t, "2026-07-17", stats.DailyViews[0].Date)
	assert.Equal(t, "2026-08-15", stats.DailyViews[29].Date)

	byDate := make(map[string]int)
	for _, point := range stats.DailyViews {
		byDate[point.Date] = point.Views
	}
	assert.Equal(t, 1, byDate["2026-08-15"])
	assert.Equal(t, 2, byDate["2026-08-12"])
	assert.Equal(t, 0, byDate["2026-08-01"])
}

func TestHourlySeriesOnlyCountsCurrentDay(t *testing.T) {
	now := time.Date(2026, 8, 15, 14, 30, 0, 0, time.UTC)
	raw := reporting.RawRows{
		PageViews: []tracking.PageView{
			view("s1", "/", time.Date(2026, 8, 15, 9, 5, 0, 0, time.UTC)),
			view("s1", "/", time.Date(2026, 8, 15, 9, 45, 0, 0, time.UTC)),
			view("s2", "/", time.Date(2026, 8, 15, 14, 1, 0, 0, time.UTC)),
			// Yesterday must not count
			view("s3", "/", time.Date(2026, 8, 14, 9, 0, 0, 0, time.UTC)),
		},
	}

	stats := reporting.Aggregate(raw, reporting.NewWindow(30, now), now)

	require.Len(t, stats.HourlyViews, 24)
	assert.Equal(t, 0, stats.HourlyViews[0].Hour)
	assert.Equal(t, 23, stats.HourlyViews[23].Hour)
	assert.Equal(t, 2, stats.HourlyViews[9].Views)
	assert.Equal(t, 1, stats.HourlyViews[14].Views)
	assert.Equal(t, 0, stats.HourlyViews[20].Views)
}
