// Package geoip wraps the optional GeoLite2 country database. When the
// database file is absent the tracking path records unknown countries and
// everything else keeps working.
package geoip

import (
	"log/slog"
	"os"
	"sync"

	"github.com/oschwald/geoip2-golang"

	"lydskog/internal/config"
)

var (
	geoDB  *geoip2.Reader
	once   sync.Once
	mu     sync.RWMutex
	logger *slog.Logger
)

// InitLogger sets the logger for the geoip package.
func InitLogger(l *slog.Logger) {
	logger = l
}

// open loads the GeoLite2 reader, or returns nil when lookups should be
// disabled (no path configured, file missing, or unreadable).
func open() *geoip2.Reader {
	path := config.GetConfig().GeoDBPath
	if path == "" {
		logDebug("GeoIP database path not configured, country lookups disabled")
		return nil
	}

	if _, err := os.Stat(path); err != nil {
		logInfo("GeoLite2 database unavailable, country lookups disabled",
			slog.String("path", path),
			slog.String("hint", "Download from https://www.maxmind.com/en/geolite2/signup"))
		return nil
	}

	db, err := geoip2.Open(path)
	if err != nil {
		logInfo("Failed to open GeoLite2 database",
			slog.String("path", path), slog.Any("error", err))
		return nil
	}

	logInfo("GeoLite2 database loaded", slog.String("path", path))
	return db
}

// GetGeoDB returns the GeoLite2 reader, loading it on first use. May be nil.
func GetGeoDB() *geoip2.Reader {
	once.Do(func() {
		mu.Lock()
		geoDB = open()
		mu.Unlock()
	})
	mu.RLock()
	defer mu.RUnlock()
	return geoDB
}

// ReloadGeoDB swaps in a freshly opened reader, e.g. after a new download.
func ReloadGeoDB() {
	mu.Lock()
	defer mu.Unlock()

	if geoDB != nil {
		geoDB.Close()
	}
	geoDB = open()
}

func logDebug(msg string, args ...any) {
	if logger != nil {
		logger.Debug(msg, args...)
	}
}

func logInfo(msg string, args ...any) {
	if logger != nil {
		logger.Info(msg, args...)
	}
}
