package jobs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lydskog/internal/config"
	"lydskog/internal/jobs"
	"lydskog/internal/testsupport"
	"lydskog/internal/tracking"
)

func TestSessionPrunerRemovesIdleSessions(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	dbManager := testsupport.NewTestDBManager(db)
	now := time.Now().UTC()

	cfg := &config.Config{SessionIdleTimeoutHours: 24}

	testsupport.CreateActiveSession(t, db, "fresh", now.Add(-1*time.Hour))
	testsupport.CreateActiveSession(t, db, "stale", now.Add(-25*time.Hour))

	job := jobs.NewSessionPrunerJob(dbManager, testsupport.GetLogger(), cfg)
	require.NoError(t, job.Run())

	var sessions []tracking.ActiveSession
	require.NoError(t, db.Find(&sessions).Error)
	require.Len(t, sessions, 1)
	assert.Equal(t, "fresh", sessions[0].SessionID)
}

func TestRetentionJobRemovesExpiredRows(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	dbManager := testsupport.NewTestDBManager(db)
	now := time.Now().UTC()

	cfg := &config.Config{RawRetentionDays: 365}

	testsupport.CreatePageView(t, db, "s1", "/studio", now.Add(-1*time.Hour))
	testsupport.CreatePageView(t, db, "s2", "/old", now.AddDate(-2, 0, 0))
	testsupport.CreateAnalyticsEvent(t, db, "recent_event", "/", now.Add(-1*time.Hour))
	testsupport.CreateAnalyticsEvent(t, db, "ancient_event", "/", now.AddDate(-2, 0, 0))

	job := jobs.NewRetentionJob(dbManager, testsupport.GetLogger(), cfg)
	require.NoError(t, job.Run())

	var views []tracking.PageView
	require.NoError(t, db.Find(&views).Error)
	require.Len(t, views, 1)
	assert.Equal(t, "/studio", views[0].PageURL)

	var events []tracking.AnalyticsEvent
	require.NoError(t, db.Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, "recent_event", events[0].EventName)
}
