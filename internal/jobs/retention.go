package jobs

import (
	"log/slog"
	"time"

	"github.com/karloscodes/cartridge"

	"lydskog/internal/config"
	"lydskog/internal/tracking"
)

// RetentionJob removes raw analytics rows older than the retention period.
// This helps with GDPR data minimization and reduces storage usage.
type RetentionJob struct {
	dbManager cartridge.DBManager
	logger    *slog.Logger
	cfg       *config.Config
}

func NewRetentionJob(dbManager cartridge.DBManager, logger *slog.Logger, cfg *config.Config) *RetentionJob {
	return &RetentionJob{
		dbManager: dbManager,
		logger:    logger,
		cfg:       cfg,
	}
}

func (j *RetentionJob) Name() string { return "retention" }

func (j *RetentionJob) Run() error {
	retentionDays := j.cfg.RawRetentionDays
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)

	j.logger.Info("Starting cleanup of raw analytics rows",
		slog.Int("retention_days", retentionDays),
		slog.Time("cutoff_date", cutoff))

	if err := j.deleteOldRows(&tracking.PageView{}, cutoff); err != nil {
		return err
	}
	return j.deleteOldRows(&tracking.AnalyticsEvent{}, cutoff)
}

// deleteOldRows removes rows in batches to avoid locking the database for
// too long.
func (j *RetentionJob) deleteOldRows(model interface{}, cutoff time.Time) error {
	db := j.dbManager.GetConnection()
	batchSize := 1000
	totalDeleted := int64(0)

	for {
		result := db.Where("created_at < ?", cutoff).
			Limit(batchSize).
			Delete(model)

		if result.Error != nil {
			j.logger.Error("Failed to delete old analytics rows",
				slog.Any("error", result.Error),
				slog.Int64("deleted_so_far", totalDeleted))
			return result.Error
		}

		totalDeleted += result.RowsAffected

		if result.RowsAffected < int64(batchSize) {
			break
		}

		// Small delay between batches to prevent database lock contention
		time.Sleep(100 * time.Millisecond)
	}

	if totalDeleted > 0 {
		j.logger.Info("Cleaned up old analytics rows",
			slog.Int64("deleted_count", totalDeleted))
	}

	return nil
}
