package database

import (
	"log/slog"

	"github.com/karloscodes/cartridge/cache"
	"github.com/karloscodes/cartridge/sqlite"
	"gorm.io/gorm"

	"lydskog/internal/config"
	"lydskog/internal/tracking"
)

// trackedModels is every table the server owns. Order matters only for
// readability; AutoMigrate handles each independently.
var trackedModels = []interface{}{
	&cache.CacheRecord{},
	&tracking.PageView{},
	&tracking.AnalyticsEvent{},
	&tracking.ActiveSession{},
}

// DBManager owns the sqlite connection and schema migrations.
type DBManager struct {
	*sqlite.Manager
	logger *slog.Logger
}

func NewDBManager(cfg *config.Config, logger *slog.Logger) *DBManager {
	return &DBManager{
		Manager: sqlite.NewManager(sqlite.Config{
			Path:         cfg.DatabaseName,
			MaxOpenConns: cfg.GetMaxOpenConns(),
			MaxIdleConns: cfg.GetMaxIdleConns(),
			Logger:       logger,
			EnableWAL:    true,
			TxImmediate:  true,
			BusyTimeout:  5000,
		}),
		logger: logger,
	}
}

// Init opens the underlying connection pool.
func (dm *DBManager) Init() error {
	_, err := dm.Manager.Connect()
	return err
}

// MigrateDatabase brings the schema up to date inside a single transaction,
// then checkpoints the WAL so fresh deployments start from a compact file.
func (dm *DBManager) MigrateDatabase() error {
	db := dm.GetConnection()
	if db == nil {
		return gorm.ErrInvalidDB
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		return tx.AutoMigrate(trackedModels...)
	}); err != nil {
		dm.logger.Error("Schema migration failed", slog.Any("error", err))
		return err
	}

	if err := dm.CheckpointWAL("FULL"); err != nil {
		dm.logger.Warn("WAL checkpoint after migration failed", slog.Any("error", err))
	}

	dm.logger.Info("Schema migration completed")
	return nil
}
