package reporting

import (
	"time"

	"lydskog/internal/tracking"
)

// RawRows bundles the windowed rows the aggregator works on. Slices are
// ordered newest first.
type RawRows struct {
	PageViews []tracking.PageView
	Events    []tracking.AnalyticsEvent
	Sessions  []tracking.ActiveSession
}

// PageStat is one entry of the top-pages ranking.
type PageStat struct {
	Page       string `json:"page"`
	Views      int    `json:"views"`
	Percentage int    `json:"percentage"`
}

// CountryStat is one entry of the geographic breakdown.
type CountryStat struct {
	Country    string `json:"country"`
	Visitors   int    `json:"visitors"`
	Percentage int    `json:"percentage"`
}

// DeviceStat is one entry of the device breakdown.
type DeviceStat struct {
	Device     string `json:"device"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// EventStat is one entry of the top-events ranking.
type EventStat struct {
	Event      string `json:"event"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// ReferrerStat is one entry of the referrer ranking.
type ReferrerStat struct {
	Referrer   string `json:"referrer"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// DailyPoint is one day of the 30-day view series.
type DailyPoint struct {
	Date  string `json:"date"`
	Views int    `json:"views"`
}

// HourlyPoint is one hour of the current-day view series.
type HourlyPoint struct {
	Hour  int `json:"hour"`
	Views int `json:"views"`
}

// Stats is the aggregate bundle served on the dashboard and embedded in
// exports.
type Stats struct {
	TotalViews         int            `json:"totalViews"`
	UniqueVisitors     int            `json:"uniqueVisitors"`
	GrowthPercentage   int            `json:"growthPercentage"`
	ActiveVisitors     int            `json:"activeVisitors"`
	AvgSessionDuration int            `json:"avgSessionDuration"`
	BounceRate         int            `json:"bounceRate"`
	TopPages           []PageStat     `json:"topPages"`
	DeviceStats        []DeviceStat   `json:"deviceStats"`
	GeographicStats    []CountryStat  `json:"geographicStats"`
	TopEvents          []EventStat    `json:"topEvents"`
	ReferrerStats      []ReferrerStat `json:"referrerStats"`
	DailyViews         []DailyPoint   `json:"dailyViews"`
	HourlyViews        []HourlyPoint  `json:"hourlyViews"`
}

// Report is one fully built report: the window, the aggregates, and the raw
// rows they were computed from. Every output format derives from a Report
// without touching the store again.
type Report struct {
	Window      Window
	GeneratedAt time.Time
	Stats       Stats
	Raw         RawRows
}
