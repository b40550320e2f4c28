package reporting

import (
	"fmt"
	"time"

	"lydskog/internal/tracking"
)

// Raw row caps on the JSON export payload. Aggregates always cover the full
// window; only the embedded raw samples are capped.
const (
	exportRawRowCap = 1000
	csvRecentViews  = 100
)

// DashboardMetadata accompanies the stats bundle on the dashboard endpoint.
type DashboardMetadata struct {
	Period           string `json:"period"`
	LastUpdated      string `json:"last_updated"`
	GrowthPercentage int    `json:"growth_percentage"`
}

// DashboardPayload is the response body of the stats endpoint.
type DashboardPayload struct {
	Stats    Stats             `json:"stats"`
	Metadata DashboardMetadata `json:"metadata"`
}

// ExportSummary is the headline section of the JSON export.
type ExportSummary struct {
	PeriodDays     int    `json:"period_days"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	GeneratedAt    string `json:"generated_at"`
	TotalViews     int    `json:"total_views"`
	UniqueVisitors int    `json:"unique_visitors"`
	TotalEvents    int    `json:"total_events"`
}

// ExportRawData carries capped samples of the raw rows behind the report.
type ExportRawData struct {
	PageViews      []tracking.PageView       `json:"page_views"`
	Events         []tracking.AnalyticsEvent `json:"analytics_events"`
	ActiveSessions []tracking.ActiveSession  `json:"active_sessions"`
}

// ExportPayload is the full JSON export document.
type ExportPayload struct {
	Summary ExportSummary `json:"summary"`
	Stats   Stats         `json:"stats"`
	RawData ExportRawData `json:"raw_data"`
}

// Dashboard formats a report as the dashboard response.
func Dashboard(r *Report) DashboardPayload {
	return DashboardPayload{
		Stats: r.Stats,
		Metadata: DashboardMetadata{
			Period:           fmt.Sprintf("%dd", r.Window.Days),
			LastUpdated:      r.GeneratedAt.Format(time.RFC3339),
			GrowthPercentage: r.Stats.GrowthPercentage,
		},
	}
}

// ExportJSON formats a report as the structured JSON export document.
func ExportJSON(r *Report) ExportPayload {
	return ExportPayload{
		Summary: ExportSummary{
			PeriodDays:     r.Window.Days,
			StartDate:      r.Window.Start.Format("2006-01-02"),
			EndDate:        r.Window.End.Format("2006-01-02"),
			GeneratedAt:    r.GeneratedAt.Format(time.RFC3339),
			TotalViews:     r.Stats.TotalViews,
			UniqueVisitors: r.Stats.UniqueVisitors,
			TotalEvents:    len(r.Raw.Events),
		},
		Stats: r.Stats,
		RawData: ExportRawData{
			PageViews:      capViews(r.Raw.PageViews, exportRawRowCap),
			Events:         capEvents(r.Raw.Events, exportRawRowCap),
			ActiveSessions: capSessions(r.Raw.Sessions, exportRawRowCap),
		},
	}
}

// Rows arrive newest first, so capping keeps the most recent entries.

func capViews(rows []tracking.PageView, n int) []tracking.PageView {
	if len(rows) > n {
		return rows[:n]
	}
	return rows
}

func capEvents(rows []tracking.AnalyticsEvent, n int) []tracking.AnalyticsEvent {
	if len(rows) > n {
		return rows[:n]
	}
	return rows
}

func capSessions(rows []tracking.ActiveSession, n int) []tracking.ActiveSession {
	if len(rows) > n {
		return rows[:n]
	}
	return rows
}
