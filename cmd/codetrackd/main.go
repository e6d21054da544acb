package main

import (
	"context"
	"time"

	"codetrack-backend/lib/configutil"
	configsqlite "codetrack-backend/lib/configutil/sqlite"
	"codetrack-backend/lib/scrapers/browser"
	"codetrack-backend/lib/serviceutil"
	"codetrack-backend/lib/telemetry"
	"codetrack-backend/services/statistics"
	statisticsdb "codetrack-backend/services/statistics/db"
)

type Config struct {
	Database configsqlite.Struct `json:"database"`
	// BrowserRemoteUrl points at an external Chrome's websocket. Empty
	// disables the browser tier entirely, which is the right call on
	// hosts without Chrome.
	BrowserRemoteUrl string `json:"browser_remote_url"`
	EnableBrowser    bool   `json:"enable_browser"`
	// PreloadIntervalMinutes paces the off-peak cohort refresh daemon.
	// Zero keeps the default of one hour.
	PreloadIntervalMinutes int `json:"preload_interval_minutes"`
}

func main() {
	ctx := serviceutil.SignalContext()

	config, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}

	db, err := config.Database.OpenDB(statisticsdb.Schema)
	if err != nil {
		serviceutil.Fatal("failed to open database", err)
	}

	t, err := telemetry.SetupFromEnv(ctx, "codetrackd")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer t.Shutdown(context.Background())
	telemetry.InstrumentPerfStats(ctx)

	clients := statistics.ScraperClients{}
	if config.EnableBrowser {
		fetcher := browser.NewFetcher(browser.Options{RemoteURL: config.BrowserRemoteUrl})
		defer fetcher.Close()
		clients.Browser = fetcher
	}

	registry, err := statistics.DefaultRegistry(clients)
	if err != nil {
		serviceutil.Fatal("failed to build platform registry", err)
	}

	service := statistics.NewService(db, registry, statistics.Options{})
	if err := service.SeedPlatforms(ctx); err != nil {
		serviceutil.Fatal("failed to seed platforms", err)
	}

	go service.PreloadDaemon(ctx, time.Duration(config.PreloadIntervalMinutes)*time.Minute)

	<-ctx.Done()
}
