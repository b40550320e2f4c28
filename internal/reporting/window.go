// Package reporting builds analytics reports from the raw tracking tables:
// windowed fetch, in-memory aggregation, and dashboard/CSV/JSON formatting.
package reporting

import (
	"fmt"
	"strconv"
	"time"
)

// DefaultPeriodDays is the window used when no period is requested.
const DefaultPeriodDays = 30

// exportPeriods are the accepted export window presets, in days.
var exportPeriods = map[int]bool{
	7:   true,
	30:  true,
	90:  true,
	365: true,
}

// Window is a reporting time range. Rows with CreatedAt in [Start, End) are
// in scope.
type Window struct {
	Days  int
	Start time.Time
	End   time.Time
}

// NewWindow builds a window of the given length ending at now.
func NewWindow(days int, now time.Time) Window {
	end := now.UTC()
	return Window{
		Days:  days,
		Start: end.AddDate(0, 0, -days),
		End:   end,
	}
}

// ParsePeriod validates a raw period query value against the export presets.
// An empty value falls back to the default period.
func ParsePeriod(raw string) (int, error) {
	if raw == "" {
		return DefaultPeriodDays, nil
	}

	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid period %q", raw)
	}
	if !exportPeriods[days] {
		return 0, fmt.Errorf("unsupported period %d", days)
	}
	return days, nil
}
