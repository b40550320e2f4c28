package tracking

// Internal markers for unknown or default dimension values. Converted to
// display names when reports are built.
const (
	DirectOrUnknownReferrer = "__direct_or_unknown__"
	UnknownDevice           = "__unknown_device__"
	UnknownBrowser          = "__unknown_browser__"
	UnknownCountry          = "__unknown_country__"
)
