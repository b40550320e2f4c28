package jobs

import (
	"log/slog"
	"time"

	"github.com/karloscodes/cartridge"

	"lydskog/internal/config"
	"lydskog/internal/tracking"
)

// SessionPrunerJob removes active_sessions rows whose last heartbeat is older
// than the configured idle timeout. Without it the table grows one row per
// visitor forever.
type SessionPrunerJob struct {
	dbManager cartridge.DBManager
	logger    *slog.Logger
	cfg       *config.Config
}

func NewSessionPrunerJob(dbManager cartridge.DBManager, logger *slog.Logger, cfg *config.Config) *SessionPrunerJob {
	return &SessionPrunerJob{
		dbManager: dbManager,
		logger:    logger,
		cfg:       cfg,
	}
}

func (j *SessionPrunerJob) Name() string { return "session_pruner" }

func (j *SessionPrunerJob) Run() error {
	cutoff := time.Now().UTC().Add(-time.Duration(j.cfg.SessionIdleTimeoutHours) * time.Hour)
	db := j.dbManager.GetConnection()

	result := db.Where("last_seen < ?", cutoff).Delete(&tracking.ActiveSession{})
	if result.Error != nil {
		j.logger.Error("Failed to prune stale sessions", slog.Any("error", result.Error))
		return result.Error
	}

	if result.RowsAffected > 0 {
		j.logger.Info("Pruned stale sessions",
			slog.Int64("deleted_count", result.RowsAffected),
			slog.Time("cutoff", cutoff))
	}

	return nil
}
