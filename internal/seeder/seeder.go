// Package seeder generates realistic demo traffic for local development:
// browsing sessions across the studio pages, interaction events, and a
// handful of currently active sessions.
package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/karloscodes/cartridge"
	"github.com/karloscodes/cartridge/sqlite"
	"gorm.io/gorm"

	"lydskog/internal/tracking"
)

// Seeder handles the demo data seeding process.
type Seeder struct {
	DBManager cartridge.DBManager
	Logger    *slog.Logger
	ViewCount int
}

// NewSeeder creates a new seeder instance
func NewSeeder(dbManager cartridge.DBManager, logger *slog.Logger, viewCount int) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{
		DBManager: dbManager,
		Logger:    logger,
		ViewCount: viewCount,
	}
}

// Browsing journey templates across the studio site.
var journeyTemplates = [][]string{
	{"/", "/studio", "/booking"},
	{"/", "/utstyr", "/utstyr/mikrofoner", "/booking"},
	{"/", "/priser", "/booking"},
	{"/studio", "/priser"},
	{"/", "/om-oss", "/kontakt"},
	{"/", "/blogg", "/blogg/mixing-tips"},
	{"/booking"},
	{"/", "/studio", "/utstyr", "/priser", "/booking"},
}

var eventTemplates = []struct {
	name        string
	eventType   string
	pageURL     string
	elementText string
}{
	{"booking_started", "click", "/booking", "Book studio"},
	{"price_list_opened", "click", "/priser", "Se priser"},
	{"contact_form_submitted", "submit", "/kontakt", "Send melding"},
	{"newsletter_signup", "submit", "/", "Meld deg på"},
	{"equipment_gallery_opened", "click", "/utstyr", "Se utstyr"},
}

var countries = []string{"no", "no", "no", "se", "dk", "de", "gb", "us", ""}

var devices = []struct {
	deviceType string
	browser    string
}{
	{"desktop", "chrome"},
	{"desktop", "firefox"},
	{"desktop", "safari"},
	{"mobile", "safari"},
	{"mobile", "chrome"},
	{"tablet", "safari"},
}

var referrers = []string{
	tracking.DirectOrUnknownReferrer,
	tracking.DirectOrUnknownReferrer,
	"www.google.com",
	"www.google.no",
	"www.facebook.com",
	"www.instagram.com",
	"l.messenger.com",
}

// Seed fills the raw tables with demo traffic spread over the past 30 days.
func (s *Seeder) Seed(ctx context.Context) error {
	start := time.Now()
	s.Logger.Info("Seeding demo analytics data...", slog.Int("viewCount", s.ViewCount))

	db := s.DBManager.GetConnection()
	now := time.Now().UTC()

	viewsCreated := 0
	eventsCreated := 0
	sessionNum := 0

	for viewsCreated < s.ViewCount {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		sessionNum++
		sessionID := fmt.Sprintf("seed-session-%d", sessionNum)
		journey := journeyTemplates[rand.IntN(len(journeyTemplates))]
		device := devices[rand.IntN(len(devices))]
		country := countries[rand.IntN(len(countries))]
		referrer := referrers[rand.IntN(len(referrers))]

		// Sessions start at a random point in the past 30 days, pages are
		// viewed 20s-3min apart.
		sessionStart := now.Add(-time.Duration(rand.IntN(30*24*60)) * time.Minute)
		visitedAt := sessionStart

		err := sqlite.PerformWrite(s.Logger, db, func(tx *gorm.DB) error {
			for i, page := range journey {
				pageReferrer := tracking.DirectOrUnknownReferrer
				if i == 0 {
					pageReferrer = referrer
				}

				view := &tracking.PageView{
					SessionID:  sessionID,
					PageURL:    page,
					Country:    country,
					DeviceType: device.deviceType,
					Browser:    device.browser,
					Referrer:   pageReferrer,
					CreatedAt:  visitedAt,
				}
				if err := tx.Create(view).Error; err != nil {
					return err
				}
				viewsCreated++

				// Roughly every fourth page view triggers an interaction
				if rand.IntN(4) == 0 {
					template := eventTemplates[rand.IntN(len(eventTemplates))]
					event := &tracking.AnalyticsEvent{
						EventName:   template.name,
						EventType:   template.eventType,
						PageURL:     page,
						ElementText: template.elementText,
						CreatedAt:   visitedAt.Add(10 * time.Second),
					}
					if err := tx.Create(event).Error; err != nil {
						return err
					}
					eventsCreated++
				}

				visitedAt = visitedAt.Add(time.Duration(20+rand.IntN(160)) * time.Second)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to seed session %s: %w", sessionID, err)
		}
	}

	if err := s.seedActiveSessions(db, now); err != nil {
		return err
	}

	s.Logger.Info("Seeding completed",
		slog.Int("views", viewsCreated),
		slog.Int("events", eventsCreated),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

// seedActiveSessions creates a few sessions that look live right now.
func (s *Seeder) seedActiveSessions(db *gorm.DB, now time.Time) error {
	liveCount := 3 + rand.IntN(5)

	return sqlite.PerformWrite(s.Logger, db, func(tx *gorm.DB) error {
		for i := 0; i < liveCount; i++ {
			device := devices[rand.IntN(len(devices))]
			session := &tracking.ActiveSession{
				SessionID:  fmt.Sprintf("seed-live-%d-%d", now.UnixNano(), i),
				PageURL:    journeyTemplates[rand.IntN(len(journeyTemplates))][0],
				Country:    countries[rand.IntN(len(countries))],
				DeviceType: device.deviceType,
				LastSeen:   now.Add(-time.Duration(rand.IntN(240)) * time.Second),
			}
			if err := tx.Create(session).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
