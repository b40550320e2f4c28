package tracking

import (
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/karloscodes/cartridge"
	"github.com/karloscodes/cartridge/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lydskog/internal/config"
)

// CollectPageViewInput defines the input required to record a page view.
type CollectPageViewInput struct {
	IPAddress   string
	UserAgent   string
	SessionID   string
	PageURL     string
	ReferrerURL string
	Timestamp   time.Time
}

// CollectEventInput defines the input required to record an interaction event.
type CollectEventInput struct {
	EventName   string
	EventType   string
	PageURL     string
	ElementText string
	Timestamp   time.Time
}

// CollectPageView stores a page view row and refreshes the session heartbeat
// in one write. Bot traffic is dropped silently.
func CollectPageView(dbManager cartridge.DBManager, logger *slog.Logger, input *CollectPageViewInput) error {
	if IsBot(input.UserAgent) {
		logger.Debug("Skipping page view from bot", slog.String("user_agent", input.UserAgent))
		return nil
	}

	pagePath, err := normalizePageURL(input.PageURL)
	if err != nil {
		logger.Warn("Failed to parse page URL", slog.Any("error", err), slog.String("url", input.PageURL))
		return fmt.Errorf("failed to parse page URL: %w", err)
	}

	sessionID := input.SessionID
	if sessionID == "" {
		sessionID = BuildSessionID(input.IPAddress, input.UserAgent, config.GetConfig().PrivateKey)
	}

	timestamp := input.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	view := &PageView{
		SessionID:  sessionID,
		PageURL:    pagePath,
		Country:    CountryFromIP(input.IPAddress),
		DeviceType: DeviceTypeFromUserAgent(input.UserAgent),
		Browser:    BrowserFromUserAgent(input.UserAgent),
		Referrer:   normalizeReferrer(input.ReferrerURL, input.PageURL, logger),
		CreatedAt:  timestamp,
	}

	err = sqlite.PerformWrite(logger, dbManager.GetConnection(), func(tx *gorm.DB) error {
		if err := tx.Create(view).Error; err != nil {
			return err
		}
		return upsertSession(tx, &ActiveSession{
			SessionID:  sessionID,
			PageURL:    pagePath,
			Country:    view.Country,
			DeviceType: view.DeviceType,
			LastSeen:   timestamp,
		})
	})
	if err != nil {
		logger.Error("Failed to store page view", slog.Any("error", err))
		return fmt.Errorf("failed to store page view: %w", err)
	}

	return nil
}

// CollectEvent stores an interaction event row.
func CollectEvent(dbManager cartridge.DBManager, logger *slog.Logger, input *CollectEventInput) error {
	if input.EventName == "" {
		return fmt.Errorf("event name is required")
	}

	timestamp := input.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	event := &AnalyticsEvent{
		EventName:   input.EventName,
		EventType:   input.EventType,
		PageURL:     input.PageURL,
		ElementText: input.ElementText,
		CreatedAt:   timestamp,
	}

	err := sqlite.PerformWrite(logger, dbManager.GetConnection(), func(tx *gorm.DB) error {
		return tx.Create(event).Error
	})
	if err != nil {
		logger.Error("Failed to store event", slog.Any("error", err))
		return fmt.Errorf("failed to store event: %w", err)
	}

	return nil
}

// Heartbeat refreshes the LastSeen timestamp for a session, creating the
// session row on first beat.
func Heartbeat(dbManager cartridge.DBManager, logger *slog.Logger, sessionID, pageURL string) error {
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}

	pagePath := pageURL
	if parsed, err := normalizePageURL(pageURL); err == nil {
		pagePath = parsed
	}

	err := sqlite.PerformWrite(logger, dbManager.GetConnection(), func(tx *gorm.DB) error {
		return upsertSession(tx, &ActiveSession{
			SessionID: sessionID,
			PageURL:   pagePath,
			LastSeen:  time.Now().UTC(),
		})
	})
	if err != nil {
		logger.Error("Failed to record heartbeat", slog.Any("error", err))
		return fmt.Errorf("failed to record heartbeat: %w", err)
	}

	return nil
}

func upsertSession(tx *gorm.DB, session *ActiveSession) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"page_url", "last_seen"}),
	}).Create(session).Error
}

// normalizePageURL reduces a raw URL to its path. Plain paths ("/studio") are
// accepted as-is.
func normalizePageURL(rawURL string) (string, error) {
	if rawURL == "" {
		return "", fmt.Errorf("empty URL provided")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	path := parsed.Path
	if path == "" {
		path = "/"
	}
	return path, nil
}

// normalizeReferrer reduces a raw referrer URL to its hostname. Empty,
// unparsable, and self-referring values all collapse to the direct marker.
func normalizeReferrer(referrerURL, pageURL string, logger *slog.Logger) string {
	if referrerURL == "" {
		return DirectOrUnknownReferrer
	}

	parsed, err := url.Parse(referrerURL)
	if err != nil || parsed.Hostname() == "" {
		logger.Debug("Unparsable referrer treated as direct", slog.String("referrer", referrerURL))
		return DirectOrUnknownReferrer
	}

	if page, err := url.Parse(pageURL); err == nil && page.Hostname() != "" {
		if parsed.Hostname() == page.Hostname() {
			return DirectOrUnknownReferrer
		}
	}

	return parsed.Hostname()
}
