package reporting

import (
	"math"
	"sort"
	"time"
)

const (
	topPagesLimit     = 5
	topEventsLimit    = 5
	topReferrersLimit = 5
	topCountriesLimit = 10

	// A session counts as active when its last heartbeat is this recent,
	// regardless of the report window.
	activeVisitorWindow = 5 * time.Minute

	growthComparisonDays = 7
)

// Aggregate computes the full stats bundle from raw rows. Pure: no store
// access, deterministic for a fixed now.
func Aggregate(raw RawRows, w Window, now time.Time) Stats {
	now = now.UTC()

	totalViews := len(raw.PageViews)

	sessions := make(map[string]bool, totalViews)
	for _, view := range raw.PageViews {
		sessions[view.SessionID] = true
	}

	avgDuration, bounceRate := sessionMetrics(raw.PageViews)

	return Stats{
		TotalViews:         totalViews,
		UniqueVisitors:     len(sessions),
		GrowthPercentage:   growthPercentage(raw, now),
		ActiveVisitors:     countActiveVisitors(raw, now),
		AvgSessionDuration: avgDuration,
		BounceRate:         bounceRate,
		TopPages:           topPages(raw, totalViews),
		DeviceStats:        deviceStats(raw, totalViews),
		GeographicStats:    geographicStats(raw, totalViews),
		TopEvents:          topEvents(raw),
		ReferrerStats:      referrerStats(raw, totalViews),
		DailyViews:         dailySeries(raw, now),
		HourlyViews:        hourlySeries(raw, now),
	}
}

// percentage computes a rounded share of a denominator. A zero denominator is
// floored to 1 so empty windows report zero percentages instead of failing.
func percentage(count, denominator int) int {
	if denominator <= 0 {
		denominator = 1
	}
	return int(math.Round(float64(count) / float64(denominator) * 100))
}

// growthPercentage compares views in the most recent 7 days against the rest
// of the window. When the earlier portion is empty growth reports 0 rather
// than infinity.
func growthPercentage(raw RawRows, now time.Time) int {
	cutoff := now.AddDate(0, 0, -growthComparisonDays)

	recent := 0
	for _, view := range raw.PageViews {
		if !view.CreatedAt.Before(cutoff) {
			recent++
		}
	}

	previous := len(raw.PageViews) - recent
	if previous <= 0 {
		return 0
	}
	return int(math.Round(float64(recent-previous) / float64(previous) * 100))
}

func countActiveVisitors(raw RawRows, now time.Time) int {
	cutoff := now.Add(-activeVisitorWindow)
	active := 0
	for _, session := range raw.Sessions {
		if session.LastSeen.After(cutoff) {
			active++
		}
	}
	return active
}

// rankedCount is an intermediate grouping entry before conversion into the
// typed stat structs.
type rankedCount struct {
	key   string
	count int
}

// rankCounts sorts grouped counts descending, ties broken alphabetically for
// deterministic output, and truncates to limit. A limit of 0 keeps everything.
func rankCounts(counts map[string]int, limit int) []rankedCount {
	ranked := make([]rankedCount, 0, len(counts))
	for key, count := range counts {
		ranked = append(ranked, rankedCount{key: key, count: count})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].key < ranked[j].key
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func topPages(raw RawRows, totalViews int) []PageStat {
	counts := make(map[string]int)
	for _, view := range raw.PageViews {
		counts[pageLabel(view.PageURL)]++
	}

	stats := make([]PageStat, 0, topPagesLimit)
	for _, entry := range rankCounts(counts, topPagesLimit) {
		stats = append(stats, PageStat{
			Page:       entry.key,
			Views:      entry.count,
			Percentage: percentage(entry.count, totalViews),
		})
	}
	return stats
}

func deviceStats(raw RawRows, totalViews int) []DeviceStat {
	counts := make(map[string]int)
	for _, view := range raw.PageViews {
		counts[deviceLabel(view.DeviceType)]++
	}

	stats := make([]DeviceStat, 0, len(counts))
	for _, entry := range rankCounts(counts, 0) {
		stats = append(stats, DeviceStat{
			Device:     entry.key,
			Count:      entry.count,
			Percentage: percentage(entry.count, totalViews),
		})
	}
	return stats
}

func geographicStats(raw RawRows, totalViews int) []CountryStat {
	counts := make(map[string]int)
	for _, view := range raw.PageViews {
		counts[countryLabel(view.Country)]++
	}

	stats := make([]CountryStat, 0, topCountriesLimit)
	for _, entry := range rankCounts(counts, topCountriesLimit) {
		stats = append(stats, CountryStat{
			Country:    entry.key,
			Visitors:   entry.count,
			Percentage: percentage(entry.count, totalViews),
		})
	}
	return stats
}

func topEvents(raw RawRows) []EventStat {
	totalEvents := len(raw.Events)

	counts := make(map[string]int)
	for _, event := range raw.Events {
		counts[eventLabel(event.EventName)]++
	}

	stats := make([]EventStat, 0, topEventsLimit)
	for _, entry := range rankCounts(counts, topEventsLimit) {
		stats = append(stats, EventStat{
			Event:      entry.key,
			Count:      entry.count,
			Percentage: percentage(entry.count, totalEvents),
		})
	}
	return stats
}

func referrerStats(raw RawRows, totalViews int) []ReferrerStat {
	counts := make(map[string]int)
	for _, view := range raw.PageViews {
		counts[referrerLabel(view.Referrer)]++
	}

	stats := make([]ReferrerStat, 0, topReferrersLimit)
	for _, entry := range rankCounts(counts, topReferrersLimit) {
		stats = append(stats, ReferrerStat{
			Referrer:   entry.key,
			Count:      entry.count,
			Percentage: percentage(entry.count, totalViews),
		})
	}
	return stats
}
