package tracking

import (
	"log/slog"
	"net"
	"strings"

	"lydskog/internal/pkg/geoip"
)

// CountryFromIP resolves an IP address to a lowercase ISO country code, or
// UnknownCountry when the GeoLite2 database is missing or the lookup fails.
func CountryFromIP(ipAddress string) string {
	geoDB := geoip.GetGeoDB()
	if geoDB == nil {
		return UnknownCountry
	}

	ip := net.ParseIP(ipAddress)
	if ip == nil {
		slog.Default().Debug("Unparseable IP for country lookup", slog.String("ip", ipAddress))
		return UnknownCountry
	}

	record, err := geoDB.Country(ip)
	if err != nil {
		slog.Default().Debug("Country lookup failed", slog.String("ip", ipAddress), slog.Any("error", err))
		return UnknownCountry
	}

	// "--" is MaxMind's placeholder for unlocatable ranges.
	code := record.Country.IsoCode
	if code == "" || code == "--" {
		return UnknownCountry
	}
	return strings.ToLower(code)
}
