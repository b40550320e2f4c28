// Package tracking owns the raw analytics tables and the write path that
// fills them: page views, interaction events, and session heartbeats.
package tracking

import "time"

// PageView is one recorded page load. Append-only.
type PageView struct {
	ID         uint   `gorm:"primaryKey"`
	SessionID  string `gorm:"index"`
	PageURL    string `gorm:"index"`
	Country    string
	DeviceType string
	Browser    string
	Referrer   string
	CreatedAt  time.Time `gorm:"index"`
}

func (PageView) TableName() string {
	return "page_views"
}

// AnalyticsEvent is one recorded visitor interaction. Append-only.
type AnalyticsEvent struct {
	ID          uint   `gorm:"primaryKey"`
	EventName   string `gorm:"index"`
	EventType   string
	PageURL     string
	ElementText string
	CreatedAt   time.Time `gorm:"index"`
}

func (AnalyticsEvent) TableName() string {
	return "analytics_events"
}

// ActiveSession tracks session liveness via heartbeats. One row per session,
// upserted on every beat.
type ActiveSession struct {
	ID         uint   `gorm:"primaryKey"`
	SessionID  string `gorm:"uniqueIndex"`
	PageURL    string
	Country    string
	DeviceType string
	LastSeen   time.Time `gorm:"index"`
}

func (ActiveSession) TableName() string {
	return "active_sessions"
}
