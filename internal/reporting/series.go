package reporting

import "time"

const dailySeriesDays = 30

// dailySeries materializes exactly 30 calendar-day buckets ending today.
// Days without traffic appear with zero views, never as gaps.
func dailySeries(raw RawRows, now time.Time) []DailyPoint {
	today := now.Truncate(24 * time.Hour)
	first := today.AddDate(0, 0, -(dailySeriesDays - 1))

	counts := make(map[string]int)
	for _, view := range raw.PageViews {
		counts[view.CreatedAt.UTC().Format("2006-01-02")]++
	}

	series := make([]DailyPoint, 0, dailySeriesDays)
	for i := 0; i < dailySeriesDays; i++ {
		date := first.AddDate(0, 0, i).Format("2006-01-02")
		series = append(series, DailyPoint{
			Date:  date,
			Views: counts[date],
		})
	}
	return series
}

// hourlySeries materializes exactly 24 hour buckets for the current calendar
// day. Hours not yet reached and hours without traffic both report zero.
func hourlySeries(raw RawRows, now time.Time) []HourlyPoint {
	today := now.Format("2006-01-02")

	counts := make(map[int]int)
	for _, view := range raw.PageViews {
		created := view.CreatedAt.UTC()
		if created.Format("2006-01-02") == today {
			counts[created.Hour()]++
		}
	}

	series := make([]HourlyPoint, 0, 24)
	for hour := 0; hour < 24; hour++ {
		series = append(series, HourlyPoint{
			Hour:  hour,
			Views: counts[hour],
		})
	}
	return series
}
