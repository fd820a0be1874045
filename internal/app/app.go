package app

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"feedscout/internal/catalog"
	"feedscout/internal/config"
	"feedscout/internal/services"
	"feedscout/internal/store"
	"feedscout/internal/tools"
	"feedscout/internal/window"
)

type App struct {
	Config  *config.Config
	Catalog store.CatalogReader

	// --- Initialized Services ---
	BrowseService  *services.BrowseService
	ResolveService *services.ResolveService
	EntryService   *services.EntryService

	Tools *tools.Registry
}

// NewApp connects to the catalog configured in cfg and wires the services and
// tool registry on top of it.
func NewApp(cfg *config.Config) (*App, error) {
	client, err := catalog.New(catalog.Options{
		BaseURL:   cfg.Catalog.BaseURL,
		APIToken:  cfg.Catalog.APIToken,
		Username:  cfg.Catalog.Username,
		Password:  cfg.Catalog.Password,
		UserAgent: cfg.Catalog.UserAgent,
		Timeout:   cfg.Catalog.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("init catalog client: %w", err)
	}
	return NewAppWithCatalog(cfg, client)
}

// NewAppWithCatalog wires an App around an existing catalog reader.
func NewAppWithCatalog(cfg *config.Config, reader store.CatalogReader) (*App, error) {
	app := &App{Config: cfg, Catalog: reader}
	app.initServices()
	if err := app.initTools(); err != nil {
		return nil, err
	}
	log.WithField("tools", len(app.Tools.List())).Debug("application initialization complete")
	return app, nil
}

// --- Private Helper Methods ---

func (a *App) initServices() {
	limits := window.Limits{
		Default: a.Config.Entries.DefaultLimit,
		Max:     a.Config.Entries.MaxLimit,
	}
	a.BrowseService = services.NewBrowseService(a.Catalog, a.Catalog, a.Catalog)
	a.ResolveService = services.NewResolveService(a.Catalog, a.Config.Resolver.FuzzyLimit)
	a.EntryService = services.NewEntryService(a.Catalog, a.ResolveService, limits)
}

func (a *App) initTools() error {
	a.Tools = tools.NewRegistry()
	err := tools.RegisterCatalogTools(a.Tools, tools.Services{
		Browse:  a.BrowseService,
		Resolve: a.ResolveService,
		Entries: a.EntryService,
	})
	if err != nil {
		return fmt.Errorf("register tools: %w", err)
	}
	return nil
}
