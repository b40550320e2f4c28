package tracking

import "strings"

// DeviceTypeFromUserAgent classifies a raw user agent string into mobile,
// tablet or desktop. Tablets are checked before mobile because Android tablet
// UAs also match mobile keywords.
func DeviceTypeFromUserAgent(userAgent string) string {
	if userAgent == "" {
		return UnknownDevice
	}

	ua := strings.ToLower(userAgent)

	for _, keyword := range []string{"ipad", "tablet", "kindle", "silk", "playbook"} {
		if strings.Contains(ua, keyword) {
			return "tablet"
		}
	}
	if strings.Contains(ua, "android") && !strings.Contains(ua, "mobile") {
		return "tablet"
	}

	for _, keyword := range []string{"mobile", "iphone", "ipod", "android", "blackberry", "windows phone", "opera mini"} {
		if strings.Contains(ua, keyword) {
			return "mobile"
		}
	}

	for _, keyword := range []string{"windows", "macintosh", "mac os", "linux", "x11", "cros"} {
		if strings.Contains(ua, keyword) {
			return "desktop"
		}
	}

	return UnknownDevice
}

// BrowserFromUserAgent extracts a normalized browser name from a raw user
// agent string. Order matters: Edge and Opera ship "Chrome" in their UA, and
// Chrome ships "Safari".
func BrowserFromUserAgent(userAgent string) string {
	if userAgent == "" {
		return UnknownBrowser
	}

	ua := strings.ToLower(userAgent)

	switch {
	case strings.Contains(ua, "edg/") || strings.Contains(ua, "edge/"):
		return "edge"
	case strings.Contains(ua, "opr/") || strings.Contains(ua, "opera"):
		return "opera"
	case strings.Contains(ua, "samsungbrowser"):
		return "samsung internet"
	case strings.Contains(ua, "firefox/") || strings.Contains(ua, "fxios"):
		return "firefox"
	case strings.Contains(ua, "chrome/") || strings.Contains(ua, "crios"):
		return "chrome"
	case strings.Contains(ua, "safari/"):
		return "safari"
	case strings.Contains(ua, "msie") || strings.Contains(ua, "trident/"):
		return "ie"
	}

	return UnknownBrowser
}

// IsBot reports whether a user agent looks like an automated client. Bot
// traffic is dropped before it reaches the raw tables.
func IsBot(userAgent string) bool {
	if userAgent == "" {
		return false
	}

	ua := strings.ToLower(userAgent)
	for _, keyword := range []string{"bot", "crawler", "spider", "slurp", "curl/", "wget/", "python-requests", "headless", "lighthouse"} {
		if strings.Contains(ua, keyword) {
			return true
		}
	}
	return false
}
