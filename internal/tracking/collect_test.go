package tracking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lydskog/internal/testsupport"
	"lydskog/internal/tracking"
)

func TestCollectPageView(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	dbManager := testsupport.NewTestDBManager(db)
	logger := testsupport.GetLogger()

	input := &tracking.CollectPageViewInput{
		IPAddress:   "203.0.113.7",
		UserAgent:   uaWindowsChrome,
		SessionID:   "session-abc",
		PageURL:     "https://lydskog.no/studio",
		ReferrerURL: "https://www.google.com/search?q=studio+oslo",
		Timestamp:   time.Now().UTC(),
	}
	require.NoError(t, tracking.CollectPageView(dbManager, logger, input))

	var view tracking.PageView
	require.NoError(t, db.First(&view).Error)
	assert.Equal(t, "session-abc", view.SessionID)
	assert.Equal(t, "/studio", view.PageURL)
	assert.Equal(t, "desktop", view.DeviceType)
	assert.Equal(t, "chrome", view.Browser)
	assert.Equal(t, "www.google.com", view.Referrer)

	// The same write refreshes the session heartbeat
	var session tracking.ActiveSession
	require.NoError(t, db.Where("session_id = ?", "session-abc").First(&session).Error)
	assert.Equal(t, "/studio", session.PageURL)
}

func TestCollectPageViewReferrerNormalization(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	dbManager := testsupport.NewTestDBManager(db)
	logger := testsupport.GetLogger()

	cases := []struct {
		name     string
		referrer string
		pageURL  string
		want     string
	}{
		{"empty referrer", "", "https://lydskog.no/", tracking.DirectOrUnknownReferrer},
		{"garbage referrer", "not a url at all", "https://lydskog.no/", tracking.DirectOrUnknownReferrer},
		{"self referral", "https://lydskog.no/studio", "https://lydskog.no/booking", tracking.DirectOrUnknownReferrer},
		{"external referrer", "https://www.facebook.com/lydskog", "https://lydskog.no/", "www.facebook.com"},
	}

	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := &tracking.CollectPageViewInput{
				IPAddress:   "203.0.113.7",
				UserAgent:   uaWindowsChrome,
				SessionID:   "session-" + tc.name,
				PageURL:     tc.pageURL,
				ReferrerURL: tc.referrer,
			}
			require.NoError(t, tracking.CollectPageView(dbManager, logger, input))

			var view tracking.PageView
			require.NoError(t, db.Where("session_id = ?", "session-"+tc.name).First(&view).Error)
			assert.Equal(t, tc.want, view.Referrer, "case %d", i)
		})
	}
}

func TestCollectPageViewDropsBots(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	dbManager := testsupport.NewTestDBManager(db)
	logger := testsupport.GetLogger()

	input := &tracking.CollectPageViewInput{
		IPAddress: "203.0.113.7",
		UserAgent: uaGooglebot,
		SessionID: "bot-session",
		PageURL:   "https://lydskog.no/",
	}
	require.NoError(t, tracking.CollectPageView(dbManager, logger, input))

	var count int64
	db.Model(&tracking.PageView{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCollectPageViewRejectsEmptyURL(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	dbManager := testsupport.NewTestDBManager(db)
	logger := testsupport.GetLogger()

	input := &tracking.CollectPageViewInput{
		IPAddress: "203.0.113.7",
		UserAgent: uaWindowsChrome,
		SessionID: "s1",
	}
	assert.Error(t, tracking.CollectPageView(dbManager, logger, input))
}

func TestCollectEvent(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	dbManager := testsupport.NewTestDBManager(db)
	logger := testsupport.GetLogger()

	input := &tracking.CollectEventInput{
		EventName:   "booking_started",
		EventType:   "click",
		PageURL:     "/booking",
		ElementText: "Book studio",
	}
	require.NoError(t, tracking.CollectEvent(dbManager, logger, input))

	var event tracking.AnalyticsEvent
	require.NoError(t, db.First(&event).Error)
	assert.Equal(t, "booking_started", event.EventName)
	assert.Equal(t, "click", event.EventType)
	assert.False(t, event.CreatedAt.IsZero())

	assert.Error(t, tracking.CollectEvent(dbManager, logger, &tracking.CollectEventInput{}))
}

func TestHeartbeatUpsertsSession(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	dbManager := testsupport.NewTestDBManager(db)
	logger := testsupport.GetLogger()

	require.NoError(t, tracking.Heartbeat(dbManager, logger, "session-hb", "/studio"))

	var first tracking.ActiveSession
	require.NoError(t, db.Where("session_id = ?", "session-hb").First(&first).Error)

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, tracking.Heartbeat(dbManager, logger, "session-hb", "/booking"))

	var count int64
	db.Model(&tracking.ActiveSession{}).Count(&count)
	assert.Equal(t, int64(1), count, "heartbeat must upsert, not duplicate")

	var second tracking.ActiveSession
	require.NoError(t, db.Where("session_id = ?", "session-hb").First(&second).Error)
	assert.Equal(t, "/booking", second.PageURL)
	assert.True(t, second.LastSeen.After(first.LastSeen) || second.LastSeen.Equal(first.LastSeen))

	assert.Error(t, tracking.Heartbeat(dbManager, logger, "", "/"))
}
