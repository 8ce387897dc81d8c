// Package main is the entry point for the ESG navigator recommendation service.
// It wires configuration, logging, the client-data cache, the two external
// API clients and the recommendation pipeline, then serves the HTTP API until
// interrupted.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mtahawi/esg-navigator/internal/clientdata"
	"github.com/mtahawi/esg-navigator/internal/clients/newton"
	"github.com/mtahawi/esg-navigator/internal/clients/yahoo"
	"github.com/mtahawi/esg-navigator/internal/config"
	"github.com/mtahawi/esg-navigator/internal/database"
	"github.com/mtahawi/esg-navigator/internal/modules/recommendation"
	recommendationhandlers "github.com/mtahawi/esg-navigator/internal/modules/recommendation/handlers"
	"github.com/mtahawi/esg-navigator/internal/modules/universe"
	"github.com/mtahawi/esg-navigator/internal/server"
	"github.com/mtahawi/esg-navigator/pkg/logger"
)

func main() {
	// Load configuration first to get log level
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	log.Info().Msg("Starting ESG navigator")

	// Client-data cache database. Losing it only costs re-fetching external
	// API responses, so a single cache-profile SQLite file is enough.
	db, err := database.New(database.Config{
		Path: filepath.Join(cfg.DataDir, "client_data.db"),
		Name: "client_data",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open client data database")
	}
	defer db.Close()

	cache := clientdata.NewRepository(db.Conn())
	if err := cache.InitSchema(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize cache schema")
	}

	// External collaborators
	yahooClient := yahoo.NewClient(cfg.YahooBaseURL, cache, cfg.CallTimeout, log)
	newtonClient := newton.NewClient(cfg.AnalyticsBaseURL, cfg.CallTimeout, log)

	// Recommendation pipeline
	enricher := universe.NewEnricher(yahooClient, log)
	selector := recommendation.NewSelector(newtonClient, log)
	service := recommendation.NewService(yahooClient, enricher, selector, cfg.PortfolioSize, log)

	// Daily cleanup of expired cache entries
	cleanupJob := clientdata.NewCleanupJob(cache, log)
	scheduler := cron.New()
	if _, err := scheduler.AddJob("0 3 * * *", cleanupJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule cache cleanup job")
	}
	scheduler.Start()
	defer scheduler.Stop()

	srv := server.New(server.Config{
		Log:                    log,
		Port:                   cfg.Port,
		DevMode:                cfg.DevMode,
		RecommendationsHandler: recommendationhandlers.NewRecommendationsHandler(service, log),
		SystemHandlers:         server.NewSystemHandlers(log),
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
