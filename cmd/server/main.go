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

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JeanGrijp/crime-map/internal/adapters/cache"
	"github.com/JeanGrijp/crime-map/internal/adapters/http/router"
	"github.com/JeanGrijp/crime-map/internal/adapters/storage/memory"
	redisstorage "github.com/JeanGrijp/crime-map/internal/adapters/storage/redis"
	"github.com/JeanGrijp/crime-map/internal/adapters/upstream/nominatim"
	"github.com/JeanGrijp/crime-map/internal/adapters/upstream/police"
	"github.com/JeanGrijp/crime-map/internal/clock"
	"github.com/JeanGrijp/crime-map/internal/config"
	"github.com/JeanGrijp/crime-map/internal/core/ports"
	"github.com/JeanGrijp/crime-map/internal/core/services"
	"github.com/JeanGrijp/crime-map/internal/observability/logger"
	"github.com/JeanGrijp/crime-map/internal/observability/tracing"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		envFile string
		port    string
	)

	cmd := &cobra.Command{
		Use:          "crime-map",
		Short:        "Proxy de geocodificação e crimes de rua do Reino Unido com rate limiting",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var files []string
			if envFile != "" {
				files = append(files, envFile)
			}
			cfg, err := config.LoadFiles(files...)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if port != "" {
				cfg.Server.Port = port
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "arquivo .env a carregar no lugar do padrão")
	cmd.Flags().StringVar(&port, "port", "", "porta HTTP (sobrescreve SERVER_PORT)")
	return cmd
}

func run(parent context.Context, cfg config.Config) error {
	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	clk := clock.SystemClock{}

	storage, closeFn, err := initStorage(ctx, cfg, clk, log)
	if err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}
	defer closeFn()

	geocodeLimiter, err := services.NewRateLimiterService("geocode", storage, cfg.RateLimiter.GeocodeRule, clk)
	if err != nil {
		return fmt.Errorf("failed to create geocode limiter: %w", err)
	}
	crimeLimiter, err := services.NewRateLimiterService("crime", storage, cfg.RateLimiter.CrimeRule, clk)
	if err != nil {
		return fmt.Errorf("failed to create crime limiter: %w", err)
	}

	httpClient := tracing.WrapHTTPClient(&http.Client{Timeout: cfg.Upstream.Timeout})

	geocoder, err := nominatim.New(httpClient, nominatim.Config{
		BaseURL:   cfg.Upstream.GeocodeBaseURL,
		UserAgent: cfg.Upstream.GeocodeUserAgent,
	})
	if err != nil {
		return fmt.Errorf("failed to create nominatim client: %w", err)
	}
	crimeSource, err := police.New(httpClient, police.Config{
		BaseURL:   cfg.Upstream.CrimeBaseURL,
		UserAgent: cfg.Upstream.CrimeUserAgent,
	})
	if err != nil {
		return fmt.Errorf("failed to create police client: %w", err)
	}

	geocodeService, err := services.NewGeocodeService(geocoder, cache.NewGeocodeCache(cfg.Geocode.CacheTTL), services.GeocodeConfig{
		StrictPostcode: cfg.Geocode.StrictPostcode,
	})
	if err != nil {
		return fmt.Errorf("failed to create geocode service: %w", err)
	}
	crimeService, err := services.NewCrimeService(crimeSource)
	if err != nil {
		return fmt.Errorf("failed to create crime service: %w", err)
	}

	handler, err := router.New(router.Deps{
		Logger:         log,
		GeocodeLimiter: geocodeLimiter,
		CrimeLimiter:   crimeLimiter,
		Geocode:        geocodeService,
		Crimes:         crimeService,
	})
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("storage", cfg.Storage.Type),
		)
		if err := srv.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	return nil
}

func initStorage(ctx context.Context, cfg config.Config, clk clock.Clock, log *zap.Logger) (ports.Storage, func(), error) {
	switch cfg.Storage.Type {
	case "redis":
		redisCfg := redisstorage.Config{
			Addr:     fmt.Sprintf("%s:%d", cfg.Storage.Redis.Host, cfg.Storage.Redis.Port),
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
		}
		storage, err := redisstorage.New(redisCfg)
		if err != nil {
			return nil, nil, err
		}
		return storage, func() {
			if err := storage.Close(); err != nil {
				log.Error("failed to close redis storage", zap.Error(err))
			}
		}, nil
	case "memory":
		storage := memory.New(clk)
		go storage.Run(ctx, cfg.RateLimiter.SweepInterval, func(removed int) {
			if removed > 0 {
				log.Debug("expired rate limit windows swept", zap.Int("removed", removed))
			}
		})
		return storage, func() { _ = storage.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}
}
