// Package testsupport provides shared helpers for lydskog tests: in-memory
// databases, test DB managers, row factories, and a minimal test app.
package testsupport

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"
	"github.com/karloscodes/cartridge/cache"
	ctestsupport "github.com/karloscodes/cartridge/testsupport"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lydskog/internal"
	"lydskog/internal/config"
	"lydskog/internal/tracking"
)

// testDBCache caches test databases by test name to allow multiple calls
// within the same test to share the same database
var testDBCache = make(map[string]*gorm.DB)
var testDBCacheMu sync.Mutex

// TestDBManager wraps cartridge's TestDBManager with lydskog's interface
type TestDBManager struct {
	*ctestsupport.TestDBManager
}

// NewTestDBManager creates a TestDBManager that implements cartridge.DBManager
func NewTestDBManager(db *gorm.DB) *TestDBManager {
	return &TestDBManager{
		TestDBManager: ctestsupport.NewTestDBManager(db),
	}
}

// Ensure TestDBManager implements cartridge.DBManager
var _ cartridge.DBManager = (*TestDBManager)(nil)

// allModels returns all lydskog models for migration
func allModels() []any {
	return []any{
		&cache.CacheRecord{},
		&tracking.PageView{},
		&tracking.AnalyticsEvent{},
		&tracking.ActiveSession{},
	}
}

// SetupTestDB creates a test database with all lydskog models migrated.
// Uses a named in-memory database with cache=shared to allow multiple
// connections to share the same database within a test. Caches the database
// by test name so multiple calls within the same test return the same one.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	testName := t.Name()

	// Use root test name for caching to handle closure issues where
	// setup functions capture the outer t while t.Run has subtest t
	rootName := testName
	if idx := strings.Index(testName, "/"); idx > 0 {
		rootName = testName[:idx]
	}

	testDBCacheMu.Lock()
	if db, exists := testDBCache[rootName]; exists {
		testDBCacheMu.Unlock()
		return db
	}
	testDBCacheMu.Unlock()

	sanitizedName := strings.ReplaceAll(rootName, "/", "_")
	dsn := fmt.Sprintf("file:test_%s_%d?mode=memory&cache=shared", sanitizedName, time.Now().UnixNano())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("testsupport: failed to open test database: %v", err)
	}

	db.Exec("PRAGMA foreign_keys = ON")
	db.Exec("PRAGMA journal_mode = WAL")

	if err := db.AutoMigrate(allModels()...); err != nil {
		t.Fatalf("testsupport: failed to migrate models: %v", err)
	}

	testDBCacheMu.Lock()
	testDBCache[rootName] = db
	testDBCacheMu.Unlock()

	t.Cleanup(func() {
		testDBCacheMu.Lock()
		delete(testDBCache, rootName)
		testDBCacheMu.Unlock()
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

// SetupTestDBManager creates a test DB manager using cartridge's testsupport
func SetupTestDBManager(t *testing.T) (*TestDBManager, *slog.Logger) {
	cfg := config.GetConfig()

	// SAFETY CHECK: Ensure we're in test environment
	if cfg.Environment != config.Test {
		t.Fatalf("CRITICAL: Tests must run in test environment! Current: %s. Set LYDSKOG_ENV=test", cfg.Environment)
	}

	db := SetupTestDB(t)
	logger := GetLogger()
	dbManager := NewTestDBManager(db)

	return dbManager, logger
}

// GetLogger returns a test logger
func GetLogger() *slog.Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})
	return slog.New(handler)
}

// CleanAllTables clears all non-system tables in the database
func CleanAllTables(db *gorm.DB) {
	var tableNames []string
	db.Raw("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'").Scan(&tableNames)

	if len(tableNames) == 0 {
		return
	}

	db.Exec("PRAGMA foreign_keys = OFF")
	defer db.Exec("PRAGMA foreign_keys = ON")

	db.Transaction(func(tx *gorm.DB) error {
		for _, table := range tableNames {
			tx.Exec("DELETE FROM " + table)
			tx.Exec("DELETE FROM sqlite_sequence WHERE name=?", table)
		}
		return nil
	})
}

// CreatePageView inserts a page view row directly, bypassing the collect path
func CreatePageView(t *testing.T, db *gorm.DB, sessionID, pageURL string, createdAt time.Time, opts ...func(*tracking.PageView)) *tracking.PageView {
	t.Helper()

	view := &tracking.PageView{
		SessionID:  sessionID,
		PageURL:    pageURL,
		Country:    "no",
		DeviceType: "desktop",
		Browser:    "chrome",
		Referrer:   tracking.DirectOrUnknownReferrer,
		CreatedAt:  createdAt,
	}
	for _, opt := range opts {
		opt(view)
	}
	require.NoError(t, db.Create(view).Error)
	return view
}

// WithCountry overrides the page view country
func WithCountry(country string) func(*tracking.PageView) {
	return func(v *tracking.PageView) { v.Country = country }
}

// WithDevice overrides the page view device type
func WithDevice(device string) func(*tracking.PageView) {
	return func(v *tracking.PageView) { v.DeviceType = device }
}

// WithReferrer overrides the page view referrer
func WithReferrer(referrer string) func(*tracking.PageView) {
	return func(v *tracking.PageView) { v.Referrer = referrer }
}

// CreateAnalyticsEvent inserts an interaction event row directly
func CreateAnalyticsEvent(t *testing.T, db *gorm.DB, eventName, pageURL string, createdAt time.Time) *tracking.AnalyticsEvent {
	t.Helper()

	event := &tracking.AnalyticsEvent{
		EventName: eventName,
		EventType: "click",
		PageURL:   pageURL,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(event).Error)
	return event
}

// CreateActiveSession inserts an active session row directly
func CreateActiveSession(t *testing.T, db *gorm.DB, sessionID string, lastSeen time.Time) *tracking.ActiveSession {
	t.Helper()

	session := &tracking.ActiveSession{
		SessionID:  sessionID,
		PageURL:    "/",
		Country:    "no",
		DeviceType: "desktop",
		LastSeen:   lastSeen,
	}
	require.NoError(t, db.Create(session).Error)
	return session
}

// CreateMinimalTestApp creates a test Fiber app with all routes
func CreateMinimalTestApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()

	dbManager := NewTestDBManager(db)
	appConfig := config.GetConfig()
	appConfig.Environment = config.Test

	cfg := cartridge.DefaultServerConfig()
	cfg.Config = appConfig
	cfg.Logger = GetLogger()
	cfg.DBManager = dbManager
	// Test requests carry no Sec-Fetch-Site header; disable the CSRF check
	// like cartridge's own testsupport server does.
	cfg.EnableSecFetchSite = false

	srv, err := cartridge.NewServer(cfg)
	require.NoError(t, err)

	internal.MountAppRoutes(srv)
	return srv.App()
}
