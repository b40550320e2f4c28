package reporting

import (
	"math"
	"time"

	"lydskog/internal/tracking"
)

// sessionMetrics derives average session duration (seconds) and bounce rate
// (percent) from the windowed page views. Duration is the span between a
// session's first and last view, averaged over sessions with at least two
// views; a bounce is a session with exactly one view. No sessions means zero
// for both.
func sessionMetrics(views []tracking.PageView) (avgDuration, bounceRate int) {
	type span struct {
		first time.Time
		last  time.Time
		count int
	}

	spans := make(map[string]*span)
	for _, view := range views {
		s, ok := spans[view.SessionID]
		if !ok {
			spans[view.SessionID] = &span{first: view.CreatedAt, last: view.CreatedAt, count: 1}
			continue
		}
		if view.CreatedAt.Before(s.first) {
			s.first = view.CreatedAt
		}
		if view.CreatedAt.After(s.last) {
			s.last = view.CreatedAt
		}
		s.count++
	}

	if len(spans) == 0 {
		return 0, 0
	}

	var totalSeconds float64
	multiView := 0
	bounces := 0
	for _, s := range spans {
		if s.count == 1 {
			bounces++
			continue
		}
		multiView++
		totalSeconds += s.last.Sub(s.first).Seconds()
	}

	if multiView > 0 {
		avgDuration = int(math.Round(totalSeconds / float64(multiView)))
	}
	bounceRate = percentage(bounces, len(spans))
	return avgDuration, bounceRate
}
