package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"country-aggregator/internal/api"
	"country-aggregator/internal/client"
	"country-aggregator/internal/config"
	"country-aggregator/internal/logger"
	"country-aggregator/internal/metrics"
	"country-aggregator/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// run wires the application together and serves until ctx is canceled.
func run(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("country-aggregator", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	cfg, err := config.Load(fs)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.Setup(cfg.Log)

	m := metrics.New()
	restCountriesClient := client.NewRestCountriesClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, m)
	countryService := service.NewCountryService(restCountriesClient, log)
	countryHandler := api.NewCountryHandler(countryService, log)
	router := api.NewRouter(countryHandler, m, log)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("server starting",
			"port", cfg.Server.Port,
			"upstream", cfg.Upstream.BaseURL,
			"upstream_timeout", cfg.Upstream.Timeout)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("error starting server: %w", err)
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("server gracefully stopped")
	return nil
}
