// Package v1 exposes the public tracking API: page views, interaction events
// and session heartbeats.
package v1

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"

	"lydskog/internal/config"
	"lydskog/internal/tracking"
)

const (
	msgRecorded       = "Recorded successfully"
	errInvalidRequest = "Invalid request"
)

// CreatePageViewParams is the tracking snippet's page view payload.
type CreatePageViewParams struct {
	URL       string    `json:"url"`
	Referrer  string    `json:"referrer"`
	SessionID string    `json:"sessionId"`
	Timestamp time.Time `json:"timestamp"`
	UserAgent string    `json:"userAgent"`
}

// CreateEventParams is the tracking snippet's interaction event payload.
type CreateEventParams struct {
	EventName   string    `json:"eventName"`
	EventType   string    `json:"eventType"`
	URL         string    `json:"url"`
	ElementText string    `json:"elementText"`
	Timestamp   time.Time `json:"timestamp"`
}

// HeartbeatParams is the tracking snippet's session keep-alive payload.
type HeartbeatParams struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// CreatePageViewPublicAPIHandler records one page view.
func CreatePageViewPublicAPIHandler(ctx *cartridge.Context) error {
	var params CreatePageViewParams
	if err := ctx.BodyParser(&params); err != nil {
		ctx.Logger.Debug("Failed to parse page view request", slog.Any("error", err))
		return handleError(ctx.Ctx, fiber.NewError(http.StatusBadRequest, errInvalidRequest))
	}

	userAgent := ctx.Get("User-Agent")
	if params.UserAgent != "" {
		userAgent = params.UserAgent
	}

	input := &tracking.CollectPageViewInput{
		IPAddress:   getClientIP(ctx.Ctx),
		UserAgent:   userAgent,
		SessionID:   params.SessionID,
		PageURL:     params.URL,
		ReferrerURL: params.Referrer,
		Timestamp:   params.Timestamp,
	}

	if err := tracking.CollectPageView(ctx.DBManager, ctx.Logger, input); err != nil {
		ctx.Logger.Error("Failed to collect page view", slog.Any("error", err))
		if strings.Contains(err.Error(), "database is locked") || strings.Contains(err.Error(), "busy") {
			return ctx.Status(599).JSON(fiber.Map{}) // custom status code
		}
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to collect page view",
			"code":  "COLLECTION_ERROR",
		})
	}

	return ctx.Status(http.StatusAccepted).JSON(fiber.Map{
		"message": msgRecorded,
		"status":  http.StatusAccepted,
	})
}

// CreateEventPublicAPIHandler records one interaction event.
func CreateEventPublicAPIHandler(ctx *cartridge.Context) error {
	var params CreateEventParams
	if err := ctx.BodyParser(&params); err != nil {
		ctx.Logger.Debug("Failed to parse event request", slog.Any("error", err))
		return handleError(ctx.Ctx, fiber.NewError(http.StatusBadRequest, errInvalidRequest))
	}

	if params.EventName == "" {
		return handleError(ctx.Ctx, fiber.NewError(http.StatusBadRequest, "eventName is required"))
	}

	input := &tracking.CollectEventInput{
		EventName:   params.EventName,
		EventType:   params.EventType,
		PageURL:     params.URL,
		ElementText: params.ElementText,
		Timestamp:   params.Timestamp,
	}

	if err := tracking.CollectEvent(ctx.DBManager, ctx.Logger, input); err != nil {
		ctx.Logger.Error("Failed to collect event", slog.Any("error", err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to collect event",
			"code":  "COLLECTION_ERROR",
		})
	}

	return ctx.Status(http.StatusAccepted).JSON(fiber.Map{
		"message": msgRecorded,
		"status":  http.StatusAccepted,
	})
}

// CreateHeartbeatPublicAPIHandler refreshes a session's liveness. Heartbeats
// are sent via navigator.sendBeacon, so the response is always 202.
func CreateHeartbeatPublicAPIHandler(ctx *cartridge.Context) error {
	var params HeartbeatParams
	if err := ctx.BodyParser(&params); err != nil {
		ctx.Logger.Debug("Failed to parse heartbeat request", slog.Any("error", err))
		return ctx.SendStatus(http.StatusAccepted)
	}

	sessionID := params.SessionID
	if sessionID == "" {
		sessionID = tracking.BuildSessionID(getClientIP(ctx.Ctx), ctx.Get("User-Agent"), config.GetConfig().PrivateKey)
	}

	if err := tracking.Heartbeat(ctx.DBManager, ctx.Logger, sessionID, params.URL); err != nil {
		ctx.Logger.Error("Failed to record heartbeat", slog.Any("error", err))
	}

	return ctx.SendStatus(http.StatusAccepted)
}

func handleError(c *fiber.Ctx, err error) error {
	if fiberErr, ok := err.(*fiber.Error); ok {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"error": fiberErr.Message,
		})
	}

	return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{
		"error": errInvalidRequest,
	})
}
