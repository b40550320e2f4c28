// Package http contains the admin-facing HTTP handlers: dashboard stats,
// exports, and the health check.
package http

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"

	"lydskog/internal/reporting"
)

// StatsIndexAction serves the dashboard stats payload over a fixed 30-day
// window.
func StatsIndexAction(ctx *cartridge.Context) error {
	report, err := reporting.BuildReport(ctx.Ctx.Context(), ctx.DB(), reporting.DefaultPeriodDays, time.Now())
	if err != nil {
		ctx.Logger.Error("Error building analytics report", slog.Any("error", err))
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to fetch analytics",
		})
	}

	return ctx.JSON(reporting.Dashboard(report))
}
