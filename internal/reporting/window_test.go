package reporting_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lydskog/internal/reporting"
)

func TestParsePeriod(t *testing.T) {
	t.Run("empty defaults to 30", func(t *testing.T) {
		days, err := reporting.ParsePeriod("")
		require.NoError(t, err)
		assert.Equal(t, 30, days)
	})

	t.Run("accepts presets", func(t *testing.T) {
		for _, raw := range []string{"7", "30", "90", "365"} {
			_, err := reporting.ParsePeriod(raw)
			assert.NoError(t, err, "period %s", raw)
		}
	})

	t.Run("rejects everything else", func(t *testing.T) {
		for _, raw := range []string{"14", "0", "-7", "abc", "30d"} {
			_, err := reporting.ParsePeriod(raw)
			assert.Error(t, err, "period %s", raw)
		}
	})
}

func TestNewWindow(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	w := reporting.NewWindow(7, now)

	assert.Equal(t, 7, w.Days)
	assert.Equal(t, now, w.End)
	assert.Equal(t, now.AddDate(0, 0, -7), w.Start)
}
