// skiphire-api serves quotes, provider rankings and stored journeys over
// HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hammamikhairi/skiphire/internal/catalog"
	"github.com/hammamikhairi/skiphire/internal/checkout"
	"github.com/hammamikhairi/skiphire/internal/config"
	"github.com/hammamikhairi/skiphire/internal/httpapi"
	"github.com/hammamikhairi/skiphire/internal/journey"
	"github.com/hammamikhairi/skiphire/internal/logger"
	"github.com/hammamikhairi/skiphire/internal/pricing"
	"github.com/hammamikhairi/skiphire/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	level := logger.ParseLevel(cfg.LogLevel)
	var log *logger.Logger
	if cfg.IsProduction() {
		log = logger.NewJSON(level, os.Stdout)
	} else {
		log = logger.New(level, os.Stderr)
	}
	zl := log.Zerolog()

	prices := pricing.New(catalog.PriceTables())
	journeys := storage.NewMemoryRegistry(log, func() *journey.Store {
		return journey.New(journey.WithRecompute(prices.TotalsFor))
	})
	handler := httpapi.NewHandler(prices, catalog.NewMemoryCatalog(log), journeys, checkout.NewMockSubmitter(log), zl)
	router := httpapi.NewRouter(handler, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		zl.Info().Str("addr", addr).Str("env", cfg.Environment).Msg("starting skiphire api")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Error().Err(err).Msg("server stopped")
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error().Err(err).Msg("graceful shutdown failed")
	}
	zl.Info().Msg("server stopped")
}
