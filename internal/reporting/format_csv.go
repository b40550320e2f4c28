package reporting

import (
	"fmt"
	"strings"
)

// ExportCSV formats a report as the sectioned CSV export. Labels are
// Norwegian to match the site. Section order is fixed; empty sections keep
// their header lines with no data rows.
func ExportCSV(r *Report) string {
	var b strings.Builder

	b.WriteString("Lydskog Analytics - Eksport\n")
	fmt.Fprintf(&b, "Periode,%d dager\n", r.Window.Days)
	fmt.Fprintf(&b, "Generert,%s\n", r.GeneratedAt.Format("2006-01-02 15:04"))
	b.WriteString("\n")

	b.WriteString("SAMMENDRAG\n")
	b.WriteString("Nøkkeltall,Verdi\n")
	fmt.Fprintf(&b, "Totale visninger,%d\n", r.Stats.TotalViews)
	fmt.Fprintf(&b, "Unike besøkende,%d\n", r.Stats.UniqueVisitors)
	fmt.Fprintf(&b, "Aktive besøkende,%d\n", r.Stats.ActiveVisitors)
	fmt.Fprintf(&b, "Vekst,%d%%\n", r.Stats.GrowthPercentage)
	fmt.Fprintf(&b, "Gjennomsnittlig øktvarighet,%ds\n", r.Stats.AvgSessionDuration)
	fmt.Fprintf(&b, "Fluktfrekvens,%d%%\n", r.Stats.BounceRate)
	b.WriteString("\n")

	b.WriteString("SIDESTATISTIKK\n")
	b.WriteString("Side,Visninger,Prosent\n")
	for _, page := range r.Stats.TopPages {
		fmt.Fprintf(&b, "%s,%d,%d%%\n", quoteField(page.Page), page.Views, page.Percentage)
	}
	b.WriteString("\n")

	b.WriteString("ENHETSSTATISTIKK\n")
	b.WriteString("Enhet,Antall,Prosent\n")
	for _, device := range r.Stats.DeviceStats {
		fmt.Fprintf(&b, "%s,%d,%d%%\n", device.Device, device.Count, device.Percentage)
	}
	b.WriteString("\n")

	b.WriteString("GEOGRAFISK STATISTIKK\n")
	b.WriteString("Land,Besøkende,Prosent\n")
	for _, country := range r.Stats.GeographicStats {
		fmt.Fprintf(&b, "%s,%d,%d%%\n", quoteField(country.Country), country.Visitors, country.Percentage)
	}
	b.WriteString("\n")

	b.WriteString("HENDELSESSTATISTIKK\n")
	b.WriteString("Hendelse,Antall,Prosent\n")
	for _, event := range r.Stats.TopEvents {
		fmt.Fprintf(&b, "%s,%d,%d%%\n", quoteField(event.Event), event.Count, event.Percentage)
	}
	b.WriteString("\n")

	b.WriteString("SISTE SIDEVISNINGER\n")
	b.WriteString("Tidspunkt,Side,Enhet,Land,Referanse\n")
	for _, view := range capViews(r.Raw.PageViews, csvRecentViews) {
		fmt.Fprintf(&b, "%s,%s,%s,%s,%s\n",
			view.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			quoteField(view.PageURL),
			deviceLabel(view.DeviceType),
			quoteField(countryLabel(view.Country)),
			quoteField(referrerLabel(view.Referrer)))
	}

	return b.String()
}

// quoteField wraps a free-text field in double quotes so commas in page URLs
// or referrers cannot break row parsing. Embedded quotes are doubled.
func quoteField(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}
