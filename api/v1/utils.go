package v1

import (
	"net/netip"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Proxy headers checked after X-Forwarded-For, in order of trust.
var clientIPHeaders = []string{
	"X-Real-IP",
	"CF-Connecting-IP",
	"True-Client-IP",
	"X-Client-IP",
}

// getClientIP resolves the visitor's public IP, walking the usual
// reverse-proxy headers before falling back to the connection address. The
// IP is only used for country lookup and session hashing, never stored.
func getClientIP(c *fiber.Ctx) string {
	if ip := selectPreferredIP(strings.Split(c.Get("X-Forwarded-For"), ",")); ip != "" {
		return ip
	}

	for _, header := range clientIPHeaders {
		if ip := selectPreferredIP([]string{c.Get(header)}); ip != "" {
			return ip
		}
	}

	if addr, ok := parseAddr(c.Context().RemoteAddr().String()); ok && isPublic(addr) {
		return addr.String()
	}
	if addr, ok := parseAddr(c.IP()); ok && isPublic(addr) {
		return addr.String()
	}

	return "127.0.0.1"
}

// selectPreferredIP picks the first public IPv4 from the candidates, falling
// back to the first public IPv6.
func selectPreferredIP(values []string) string {
	var v6 string

	for _, raw := range values {
		addr, ok := parseAddr(raw)
		if !ok || !isPublic(addr) {
			continue
		}
		if addr.Is4() {
			return addr.String()
		}
		if v6 == "" {
			v6 = addr.String()
		}
	}

	return v6
}

// parseAddr accepts a bare IP, an IP:port pair, or a bracketed IPv6 form,
// with optional surrounding quotes and zone identifiers.
func parseAddr(raw string) (netip.Addr, bool) {
	clean := strings.Trim(strings.TrimSpace(raw), "\"")
	if clean == "" {
		return netip.Addr{}, false
	}
	if i := strings.IndexByte(clean, '%'); i != -1 {
		clean = clean[:i]
	}

	var addr netip.Addr
	if ap, err := netip.ParseAddrPort(clean); err == nil {
		addr = ap.Addr()
	} else if a, err := netip.ParseAddr(strings.Trim(clean, "[]")); err == nil {
		addr = a
	} else {
		return netip.Addr{}, false
	}

	return addr.Unmap(), true
}

func isPublic(addr netip.Addr) bool {
	return addr.IsValid() &&
		!addr.IsPrivate() &&
		!addr.IsLoopback() &&
		!addr.IsLinkLocalUnicast() &&
		!addr.IsUnspecified()
}
