// Package app wires configuration, storage, services, and handlers into a
// running application.
package app

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/kofort9/nonprofit-vetting-mcp/internal/common"
	"github.com/kofort9/nonprofit-vetting-mcp/internal/handlers"
	"github.com/kofort9/nonprofit-vetting-mcp/internal/interfaces"
	"github.com/kofort9/nonprofit-vetting-mcp/internal/services/propublica"
	"github.com/kofort9/nonprofit-vetting-mcp/internal/services/vetting"
	"github.com/kofort9/nonprofit-vetting-mcp/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Storage
	CacheDB      *badger.BadgerDB
	PayloadCache interfaces.PayloadCache

	// Services
	Provider       interfaces.OrganizationProvider
	VettingService interfaces.VettingService

	// HTTP handlers
	APIHandler     *handlers.APIHandler
	VettingHandler *handlers.VettingHandler
}

// New initializes the application with all dependencies. Invalid screening
// thresholds are a startup fatal, never a per-request error.
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initStorage(); err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	if err := app.initServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.APIHandler = handlers.NewAPIHandler()
	app.VettingHandler = handlers.NewVettingHandler(app.Provider, app.VettingService)

	logger.Info().
		Bool("cache_enabled", cfg.Cache.Enabled).
		Msg("Application initialization complete")

	return app, nil
}

// initStorage opens the payload cache when caching is enabled.
func (a *App) initStorage() error {
	if !a.Config.Cache.Enabled {
		a.Logger.Debug().Msg("Payload cache disabled, all lookups go upstream")
		return nil
	}

	db, err := badger.NewBadgerDB(a.Logger, &a.Config.Cache.Badger)
	if err != nil {
		return err
	}

	a.CacheDB = db
	a.PayloadCache = badger.NewPayloadStorage(db, a.Logger)

	a.Logger.Debug().
		Str("storage", "badger").
		Str("path", a.Config.Cache.Badger.Path).
		Msg("Payload cache initialized")

	return nil
}

// initServices builds the provider client and the screening service.
func (a *App) initServices() error {
	a.Provider = propublica.NewService(a.Config.Provider, a.Config.Cache, a.PayloadCache, a.Logger)

	svc, err := vetting.NewService(a.Config.Vetting, a.Logger)
	if err != nil {
		return fmt.Errorf("invalid screening configuration: %w", err)
	}
	a.VettingService = svc

	return nil
}

// Close releases application resources.
func (a *App) Close() error {
	if a.CacheDB != nil {
		if err := a.CacheDB.Close(); err != nil {
			return fmt.Errorf("failed to close payload cache: %w", err)
		}
	}
	return nil
}
