// Package internal wires the analytics server together.
package internal

import (
	"fmt"

	"github.com/karloscodes/cartridge"

	"lydskog/internal/config"
	"lydskog/internal/database"
	"lydskog/internal/jobs"
	"lydskog/internal/pkg/geoip"
)

// Application bundles the cartridge app with the DB manager so callers can
// run migrations before starting the server.
type Application struct {
	*cartridge.Application
	DBManager *database.DBManager
}

// NewApp builds the server with the full route set.
func NewApp() (*Application, error) {
	return NewAppWithRoutes(config.GetConfig(), MountAppRoutes)
}

// NewAppWithRoutes accepts a custom route mounting function, which tests use
// to mount a subset of routes.
func NewAppWithRoutes(cfg *config.Config, routeMount func(*cartridge.Server)) (*Application, error) {
	logger := cartridge.NewLogger(cfg, nil)
	geoip.InitLogger(logger)

	dbManager := database.NewDBManager(cfg, logger)
	if err := dbManager.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	scheduler, err := jobs.NewScheduler(dbManager, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize jobs: %w", err)
	}

	app, err := cartridge.NewApplication(cartridge.ApplicationOptions{
		Config:            cfg,
		Logger:            logger,
		DBManager:         dbManager,
		RouteMountFunc:    routeMount,
		BackgroundWorkers: []cartridge.BackgroundWorker{scheduler},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	return &Application{Application: app, DBManager: dbManager}, nil
}
