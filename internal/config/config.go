// Package config provides configuration management using Viper
package config

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

// Environment types
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// LogLevel represents the logging level for the application
type LogLevel string

// Available log levels
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Database types
const (
	SQLiteDatabase = "sqlite"
)

// Config holds all configuration parameters for the application
type Config struct {
	// Application settings
	AppName     string   `mapstructure:"appname"`
	AppPort     string   `mapstructure:"appport"`
	Environment string   `mapstructure:"environment"`
	LogLevel    LogLevel `mapstructure:"loglevel"`
	PrivateKey  string   `mapstructure:"privatekey"`

	// File paths
	DatabasePath string `mapstructure:"storagepath"`
	DatabaseName string `mapstructure:"-"` // Derived from other settings
	GeoDBPath    string `mapstructure:"geodbpath"`

	// Logging settings
	LogsDirectory    string `mapstructure:"logsdir"`
	LogsMaxSizeInMb  int    `mapstructure:"logsmaxsizeinmb"`
	LogsMaxBackups   int    `mapstructure:"logsmaxbackups"`
	LogsMaxAgeInDays int    `mapstructure:"logsmaxageindays"`

	// Database settings
	DatabaseType         string `mapstructure:"dbtype"`
	DatabaseMaxOpenConns int    `mapstructure:"dbmaxopenconns"`
	DatabaseMaxIdleConns int    `mapstructure:"dbmaxidleconns"`

	// Job scheduling settings
	JobIntervalSeconds int `mapstructure:"jobintervalseconds"`

	// Data retention settings
	RawRetentionDays        int `mapstructure:"rawretentiondays"`
	SessionIdleTimeoutHours int `mapstructure:"sessionidletimeouthours"`
}

var (
	cfg  *Config
	once sync.Once
)

// settings maps each viper key to its default value and env var. Every
// option is overridable through a LYDSKOG_* variable.
var settings = []struct {
	key        string
	defaultVal interface{}
	env        string
}{
	{"appname", "lydskog", "LYDSKOG_APP_NAME"},
	{"appport", "3000", "LYDSKOG_APP_PORT"},
	{"environment", Development, "LYDSKOG_ENV"},
	{"loglevel", string(LogLevelDebug), "LYDSKOG_LOG_LEVEL"},
	{"privatekey", defaultPrivateKey, "LYDSKOG_PRIVATE_KEY"},
	{"storagepath", "storage", "LYDSKOG_STORAGE_PATH"},
	{"geodbpath", "storage/GeoLite2-Country.mmdb", "LYDSKOG_GEO_DB_PATH"},
	{"logsdir", "logs", "LYDSKOG_LOGS_DIR"},
	{"logsmaxsizeinmb", 20, "LYDSKOG_LOGS_MAX_SIZE_IN_MB"},
	{"logsmaxbackups", 10, "LYDSKOG_LOGS_MAX_BACKUPS"},
	{"logsmaxageindays", 30, "LYDSKOG_LOGS_MAX_AGE_IN_DAYS"},
	{"dbtype", SQLiteDatabase, "LYDSKOG_DB_TYPE"},
	{"dbmaxopenconns", 0, "LYDSKOG_DB_MAX_OPEN_CONNS"},
	{"dbmaxidleconns", 0, "LYDSKOG_DB_MAX_IDLE_CONNS"},
	{"jobintervalseconds", 300, "LYDSKOG_JOB_INTERVAL_SECONDS"},
	{"rawretentiondays", 365, "LYDSKOG_RAW_RETENTION_DAYS"},
	{"sessionidletimeouthours", 24, "LYDSKOG_SESSION_IDLE_TIMEOUT_HOURS"},
}

const defaultPrivateKey = "88888888888888888888888888888888"

// GetConfig returns the application configuration
func GetConfig() *Config {
	once.Do(func() {
		v := viper.New()
		for _, s := range settings {
			v.SetDefault(s.key, s.defaultVal)
			v.BindEnv(s.key, s.env)
		}

		cfg = &Config{}
		if err := v.Unmarshal(cfg); err != nil {
			log.Fatalf("config: failed to unmarshal configuration: %v", err)
		}

		if err := cfg.validate(); err != nil {
			log.Fatalf("config: invalid configuration: %v", err)
		}

		cfg.DatabaseName = cfg.GetDatabasePath()

		// In production the session hashing key must be explicitly set
		if cfg.PrivateKey == "" {
			log.Fatal("Private key is required")
		}
		if cfg.IsProduction() && cfg.PrivateKey == defaultPrivateKey {
			log.Fatal("Production requires a unique LYDSKOG_PRIVATE_KEY (cannot use default)")
		}
	})
	return cfg
}

// validate checks the configuration for errors
func (c *Config) validate() error {
	validEnvs := map[string]bool{
		Development: true,
		Production:  true,
		Test:        true,
	}
	if !validEnvs[c.Environment] {
		return fmt.Errorf("invalid environment: %s", c.Environment)
	}

	validDBTypes := map[string]bool{
		SQLiteDatabase: true,
	}
	if !validDBTypes[c.DatabaseType] {
		return fmt.Errorf("invalid database type: %s", c.DatabaseType)
	}

	return nil
}

// GetDatabasePath derives the sqlite file path from storage dir, app name
// and environment, so dev/test/prod never share a database file.
func (c *Config) GetDatabasePath() string {
	if c.DatabaseName == "" {
		c.DatabaseName = filepath.Join(c.DatabasePath,
			fmt.Sprintf("%s-%s.db", c.AppName, c.Environment))
	}
	return c.DatabaseName
}

func (c *Config) IsDevelopment() bool { return c.Environment == Development }
func (c *Config) IsProduction() bool  { return c.Environment == Production }
func (c *Config) IsTest() bool        { return c.Environment == Test }

// The methods below satisfy the cartridge config interfaces
// (Config, FactoryConfig, LogConfigProvider).

func (c *Config) GetPort() string { return c.AppPort }

// No static asset surface; the server is API-only.
func (c *Config) GetPublicDirectory() string { return "" }
func (c *Config) GetAssetsPrefix() string    { return "/" }

func (c *Config) GetAppName() string { return c.AppName }

func (c *Config) DatabaseDSN() string { return c.GetDatabasePath() }

func (c *Config) GetSessionSecret() string { return c.PrivateKey }

// GetMaxOpenConns honors an explicit override, pins test runs to a single
// connection, and otherwise allows concurrent reads for the parallel report
// fetches.
func (c *Config) GetMaxOpenConns() int {
	if c.DatabaseMaxOpenConns > 0 {
		return c.DatabaseMaxOpenConns
	}
	if c.Environment == Test {
		return 1
	}
	return 10
}

func (c *Config) GetMaxIdleConns() int {
	if c.DatabaseMaxIdleConns > 0 {
		return c.DatabaseMaxIdleConns
	}
	if c.Environment == Test {
		return 1
	}
	return 5
}

func (c *Config) GetLogLevel() string     { return string(c.LogLevel) }
func (c *Config) GetLogDirectory() string { return c.LogsDirectory }
func (c *Config) GetLogMaxSizeMB() int    { return c.LogsMaxSizeInMb }
func (c *Config) GetLogMaxBackups() int   { return c.LogsMaxBackups }
func (c *Config) GetLogMaxAgeDays() int   { return c.LogsMaxAgeInDays }

// Reset clears the cached configuration; intended for tests.
func Reset() {
	once = sync.Once{}
	cfg = nil
}
