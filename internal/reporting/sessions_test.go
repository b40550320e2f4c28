package reporting_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lydskog/internal/reporting"
	"lydskog/internal/tracking"
)

func TestSessionMetrics(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	t.Run("average duration over multi-view sessions", func(t *testing.T) {
		raw := reporting.RawRows{
			PageViews: []tracking.PageView{
				// Session 1: 10 minutes between first and last view
				view("s1", "/", now.Add(-30*time.Minute)),
				view("s1", "/studio", now.Add(-25*time.Minute)),
				view("s1", "/booking", now.Add(-20*time.Minute)),
				// Session 2: 20 minutes
				view("s2", "/", now.Add(-60*time.Minute)),
				view("s2", "/priser", now.Add(-40*time.Minute)),
				// Session 3: single view, bounce
				view("s3", "/", now.Add(-10*time.Minute)),
			},
		}

		stats := reporting.Aggregate(raw, reporting.NewWindow(30, now), now)

		// (600 + 1200) / 2 = 900 seconds
		assert.Equal(t, 900, stats.AvgSessionDuration)
		// 1 bounce of 3 sessions = 33%
		assert.Equal(t, 33, stats.BounceRate)
	})

	t.Run("all bounces", func(t *testing.T) {
		raw := reporting.RawRows{
			PageViews: []tracking.PageView{
				view("s1", "/", now.Add(-time.Hour)),
				view("s2", "/", now.Add(-time.Hour)),
			},
		}

		stats := reporting.Aggregate(raw, reporting.NewWindow(30, now), now)
		assert.Equal(t, 0, stats.AvgSessionDuration)
		assert.Equal(t, 100, stats.BounceRate)
	})
}
