package http

import (
	"time"

	"log/slog"

	"github.com/karloscodes/cartridge"

	"lydskog/internal/tracking"
)

// HealthStatus reports server liveness plus a coarse view of the tracking
// store so uptime checks catch a wedged database early.
type HealthStatus struct {
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
	DBStatus       string    `json:"db_status"`
	ActiveSessions int64     `json:"active_sessions"`
}

// HealthIndexAction handles the health check endpoint
func HealthIndexAction(ctx *cartridge.Context) error {
	health := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		DBStatus:  "ok",
	}

	db := ctx.DBManager.GetConnection()
	if db == nil {
		health.DBStatus = "error"
		ctx.Logger.Error("Database connection unavailable")
	} else if err := db.Model(&tracking.ActiveSession{}).Count(&health.ActiveSessions).Error; err != nil {
		health.DBStatus = "error"
		ctx.Logger.Error("Database health query failed", slog.Any("error", err))
	}

	if health.DBStatus != "ok" {
		health.Status = "degraded"
	}

	return ctx.JSON(health)
}
