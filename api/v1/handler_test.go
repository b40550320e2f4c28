package v1_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lydskog/internal/testsupport"
	"lydskog/internal/tracking"
)

const testUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

func postJSON(t *testing.T, app *fiber.App, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", testUserAgent)

	resp, err := app.Test(req)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	rec.Code = resp.StatusCode
	return rec
}

func TestCreatePageViewEndpoint(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	app := testsupport.CreateMinimalTestApp(t, db)

	rec := postJSON(t, app, "/x/api/v1/views",
		`{"url":"https://lydskog.no/studio","referrer":"https://www.google.com/","sessionId":"session-1"}`)
	assert.Equal(t, fiber.StatusAccepted, rec.Code)

	var view tracking.PageView
	require.NoError(t, db.First(&view).Error)
	assert.Equal(t, "session-1", view.SessionID)
	assert.Equal(t, "/studio", view.PageURL)
	assert.Equal(t, "www.google.com", view.Referrer)
}

func TestCreatePageViewEndpointRejectsBadBody(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	app := testsupport.CreateMinimalTestApp(t, db)

	rec := postJSON(t, app, "/x/api/v1/views", `{not json`)
	assert.Equal(t, fiber.StatusBadRequest, rec.Code)

	var count int64
	db.Model(&tracking.PageView{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateEventEndpoint(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	app := testsupport.CreateMinimalTestApp(t, db)

	rec := postJSON(t, app, "/x/api/v1/events",
		`{"eventName":"booking_started","eventType":"click","url":"/booking","elementText":"Book studio"}`)
	assert.Equal(t, fiber.StatusAccepted, rec.Code)

	var event tracking.AnalyticsEvent
	require.NoError(t, db.First(&event).Error)
	assert.Equal(t, "booking_started", event.EventName)

	rec = postJSON(t, app, "/x/api/v1/events", `{"eventType":"click"}`)
	assert.Equal(t, fiber.StatusBadRequest, rec.Code)
}

func TestHeartbeatEndpoint(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	app := testsupport.CreateMinimalTestApp(t, db)

	rec := postJSON(t, app, "/x/api/v1/heartbeat", `{"sessionId":"session-1","url":"/studio"}`)
	assert.Equal(t, fiber.StatusAccepted, rec.Code)

	var session tracking.ActiveSession
	require.NoError(t, db.Where("session_id = ?", "session-1").First(&session).Error)
	assert.Equal(t, "/studio", session.PageURL)

	// Beacon endpoint never reports errors to the client
	rec = postJSON(t, app, "/x/api/v1/heartbeat", `{not json`)
	assert.Equal(t, fiber.StatusAccepted, rec.Code)
}
