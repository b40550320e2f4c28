package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lydskog/internal/config"
)

func TestGetConfigDefaults(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	cfg := config.GetConfig()

	assert.Equal(t, "lydskog", cfg.AppName)
	assert.Equal(t, "3000", cfg.GetPort())
	assert.Equal(t, config.SQLiteDatabase, cfg.DatabaseType)
	assert.Equal(t, 300, cfg.JobIntervalSeconds)
	assert.Equal(t, 365, cfg.RawRetentionDays)
	assert.Equal(t, 24, cfg.SessionIdleTimeoutHours)
	assert.NotEmpty(t, cfg.GetDatabasePath())
}

func TestEnvironmentOverrides(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	t.Setenv("LYDSKOG_ENV", "test")
	t.Setenv("LYDSKOG_APP_PORT", "4100")
	t.Setenv("LYDSKOG_RAW_RETENTION_DAYS", "90")

	cfg := config.GetConfig()

	assert.True(t, cfg.IsTest())
	assert.Equal(t, "4100", cfg.GetPort())
	assert.Equal(t, 90, cfg.RawRetentionDays)
	// Test runs pin the pool to one connection
	assert.Equal(t, 1, cfg.GetMaxOpenConns())
	assert.Equal(t, 1, cfg.GetMaxIdleConns())
}
