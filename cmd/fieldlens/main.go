// Command fieldlens is a terminal client for the field inspection backend.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/fieldlens-cli/internal/adapters/driven/api"
	"github.com/custodia-labs/fieldlens-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/fieldlens-cli/internal/adapters/driven/spreadsheet"
	"github.com/custodia-labs/fieldlens-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/fieldlens-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/fieldlens-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
	"github.com/custodia-labs/fieldlens-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fieldlens-cli/internal/core/services"
	"github.com/custodia-labs/fieldlens-cli/internal/logger"
	"github.com/custodia-labs/fieldlens-cli/internal/normalisers/jobshape"
	"github.com/custodia-labs/fieldlens-cli/internal/normalisers/photoindex"
	"github.com/custodia-labs/fieldlens-cli/internal/normalisers/photourl"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	fileStore, err := file.NewConfigStore("")
	var configStore driven.ConfigStore = fileStore
	if err != nil {
		logger.Warn("config file unavailable, settings will not persist: %v", err)
		configStore = memory.NewConfigStore()
	}
	settingsSvc := services.NewSettingsService(configStore)

	// Invalid settings fall back to defaults so `config set` can repair them.
	settings, err := settingsSvc.Get()
	if err != nil {
		logger.Warn("invalid settings, using defaults: %v", err)
		defaults := domain.DefaultSettings()
		settings = &defaults
	}

	cfg := api.Config{
		BaseURL:       settings.API.BaseURL,
		Token:         settings.API.Token,
		Session:       configStore.GetString(services.KeyAuthSession),
		Timeout:       settings.API.Timeout(),
		RatePerSecond: settings.API.RatePerSecond,
	}
	client, err := api.NewClient(cfg)
	if errors.Is(err, domain.ErrNoBaseURL) {
		logger.Warn("%v; using %s", err, domain.DefaultAPIBaseURL)
		cfg.BaseURL = domain.DefaultAPIBaseURL
		client, err = api.NewClient(cfg)
	}
	if err != nil {
		logger.Error("failed to create API client: %v", err)
		return err
	}

	normaliser := jobshape.New()
	previewSvc := services.NewPreviewService(client, normaliser, photoindex.NewIndexer(), photourl.NewResolver(client.BaseURL()))

	history, closeHistory := openHistory(settings)
	defer closeHistory()

	var watch func(context.Context, func()) error
	if fileStore != nil {
		watch = func(ctx context.Context, onReload func()) error {
			return file.NewWatcher(fileStore).Run(ctx, func() {
				st, err := settingsSvc.Get()
				if err != nil {
					logger.Warn("reloaded settings invalid, keeping API base: %v", err)
				} else if err := client.SetBaseURL(st.API.BaseURL); err != nil {
					logger.Warn("reloaded API base rejected, keeping %s: %v", client.BaseURL(), err)
				} else {
					previewSvc.SetResolver(photourl.NewResolver(client.BaseURL()))
				}
				onReload()
			})
		}
	}

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Jobs:          services.NewJobService(client, normaliser),
		Preview:       previewSvc,
		Export:        services.NewExportService(client, normaliser, history, settings.ExportDir),
		Auth:          services.NewAuthService(client, configStore),
		Settings:      settingsSvc,
		PreviewWriter: spreadsheet.NewWriter(),
		WatchConfig:   watch,
	})

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	return nil
}

// openHistory opens the sqlite export history, falling back to an
// in-memory store when it is disabled or cannot be opened.
func openHistory(settings *domain.AppSettings) (driven.ExportHistoryStore, func()) {
	if !settings.HistoryEnabled {
		return memory.NewExportHistoryStore(), func() {}
	}
	store, err := sqlite.NewStore("")
	if err != nil {
		logger.Warn("export history unavailable, keeping it in memory: %v", err)
		return memory.NewExportHistoryStore(), func() {}
	}
	return store.ExportHistoryStore(), func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing history: %v", err)
		}
	}
}
