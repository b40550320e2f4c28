package reporting_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lydskog/internal/reporting"
	"lydskog/internal/testsupport"
)

func TestFetchRawRowsRespectsWindow(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	now := time.Now().UTC()

	testsupport.CreatePageView(t, db, "s1", "/studio", now.Add(-1*time.Hour))
	testsupport.CreatePageView(t, db, "s2", "/booking", now.AddDate(0, 0, -3))
	// Outside a 7-day window
	testsupport.CreatePageView(t, db, "s3", "/old", now.AddDate(0, 0, -10))

	testsupport.CreateAnalyticsEvent(t, db, "booking_started", "/booking", now.Add(-1*time.Hour))
	testsupport.CreateAnalyticsEvent(t, db, "old_event", "/old", now.AddDate(0, 0, -10))

	testsupport.CreateActiveSession(t, db, "s1", now.Add(-1*time.Minute))

	raw, err := reporting.FetchRawRows(context.Background(), db, reporting.NewWindow(7, now))
	require.NoError(t, err)

	assert.Len(t, raw.PageViews, 2)
	assert.Len(t, raw.Events, 1)
	assert.Len(t, raw.Sessions, 1)

	// Newest first
	assert.Equal(t, "/studio", raw.PageViews[0].PageURL)
}

func TestFetchRawRowsFailsAsAWhole(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	now := time.Now().UTC()

	// Breaking one of the three tables must fail the whole fetch, not
	// produce a partial result.
	require.NoError(t, db.Exec("DROP TABLE analytics_events").Error)

	_, err := reporting.FetchRawRows(context.Background(), db, reporting.NewWindow(7, now))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "analytics_events")
}

func TestBuildReport(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	now := time.Now().UTC()

	testsupport.CreatePageView(t, db, "s1", "/studio", now.Add(-1*time.Hour))
	testsupport.CreatePageView(t, db, "s1", "/booking", now.Add(-50*time.Minute))
	testsupport.CreatePageView(t, db, "s2", "/studio", now.Add(-2*time.Hour))

	report, err := reporting.BuildReport(context.Background(), db, 30, now)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Stats.TotalViews)
	assert.Equal(t, 2, report.Stats.UniqueVisitors)
	assert.Equal(t, 30, report.Window.Days)
	assert.Len(t, report.Stats.DailyViews, 30)
	require.NotEmpty(t, report.Stats.TopPages)
	assert.Equal(t, "/studio", report.Stats.TopPages[0].Page)
}
