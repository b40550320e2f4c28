package reporting

import (
	"strings"

	"github.com/pariz/gountries"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"lydskog/internal/tracking"
)

var (
	countryQuery = gountries.New()
	titleCaser   = cases.Title(language.English)
)

// countryLabel converts a stored ISO code to a display country name.
func countryLabel(code string) string {
	if code == "" || code == tracking.UnknownCountry {
		return "Unknown"
	}

	country, err := countryQuery.FindCountryByAlpha(strings.ToUpper(code))
	if err != nil {
		return strings.ToUpper(code)
	}
	return country.Name.Common
}

// deviceLabel converts a stored device type to a display name.
func deviceLabel(device string) string {
	if device == "" || device == tracking.UnknownDevice {
		return "Unknown"
	}
	return titleCaser.String(device)
}

// referrerLabel converts a stored referrer hostname to a display name.
func referrerLabel(referrer string) string {
	if referrer == "" || referrer == tracking.DirectOrUnknownReferrer {
		return "Direct"
	}
	return referrer
}

func pageLabel(page string) string {
	if page == "" {
		return "Unknown"
	}
	return page
}

func eventLabel(event string) string {
	if event == "" {
		return "Unknown"
	}
	return event
}
