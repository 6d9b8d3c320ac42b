package cli

import (
	"fmt"

	adapthttp "temptrack/internal/adapter/http"
	"temptrack/internal/adapter/jsonfile"
	"temptrack/internal/adapter/memory"
	"temptrack/internal/adapter/postgres"
	"temptrack/internal/adapter/sqlite"
	"temptrack/internal/app"
	"temptrack/internal/config"
	"temptrack/internal/cycle"
	"temptrack/internal/domain"
)

// openStore opens the store selected by cfg.
func openStore(cfg config.StorageConfig) (domain.Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return sqlite.Open(cfg.DSN)
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN)
	case config.DriverJSONFile:
		return jsonfile.Open(cfg.DSN)
	case config.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func newServices(cfg config.Config, store domain.Store) adapthttp.Services {
	engine := cycle.New(cfg.Cycle)
	return adapthttp.Services{
		Readings: app.NewReadingService(store),
		Cycles:   app.NewCycleService(store, engine),
		Notes:    app.NewNoteService(store),
		Charts:   app.NewChartsService(store, engine),
		Analysis: app.NewAnalysisService(store, engine),
		Export:   app.NewExportService(store, engine),
	}
}
