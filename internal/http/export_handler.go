package http

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"

	"lydskog/internal/reporting"
)

// ExportIndexAction serves the analytics export in CSV or JSON. Query
// parameters are validated before any store access.
func ExportIndexAction(ctx *cartridge.Context) error {
	format := ctx.Query("format")
	if format != "csv" && format != "json" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "format must be csv or json",
		})
	}

	days, err := reporting.ParsePeriod(ctx.Query("period"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "period must be one of 7, 30, 90, 365",
		})
	}

	report, err := reporting.BuildReport(ctx.Ctx.Context(), ctx.DB(), days, time.Now())
	if err != nil {
		ctx.Logger.Error("Error building analytics export", slog.Any("error", err))
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to export analytics",
		})
	}

	filename := fmt.Sprintf("lydskog-analytics-%dd-%s.%s",
		days, report.GeneratedAt.Format("2006-01-02"), format)
	ctx.Set("Content-Disposition", "attachment; filename="+filename)

	if format == "csv" {
		ctx.Set("Content-Type", "text/csv; charset=utf-8")
		return ctx.Ctx.SendString(reporting.ExportCSV(report))
	}

	return ctx.JSON(reporting.ExportJSON(report))
}
