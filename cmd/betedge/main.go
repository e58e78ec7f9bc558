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

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/XavierBriggs/fortuna/services/betedge/internal/cache"
	"github.com/XavierBriggs/fortuna/services/betedge/internal/config"
	"github.com/XavierBriggs/fortuna/services/betedge/internal/db"
	"github.com/XavierBriggs/fortuna/services/betedge/internal/detector"
	"github.com/XavierBriggs/fortuna/services/betedge/internal/handlers"
	"github.com/XavierBriggs/fortuna/services/betedge/internal/ingest"
	"github.com/XavierBriggs/fortuna/services/betedge/internal/lifecycle"
	"github.com/XavierBriggs/fortuna/services/betedge/internal/logger"
	"github.com/XavierBriggs/fortuna/services/betedge/internal/metrics"
	"github.com/XavierBriggs/fortuna/services/betedge/internal/middleware"
	"github.com/XavierBriggs/fortuna/services/betedge/internal/providers/oddsapi"
	"github.com/XavierBriggs/fortuna/services/betedge/internal/retry"
	"github.com/XavierBriggs/fortuna/services/betedge/pkg/contracts"
)

func main() {
	fmt.Println("=== Fortuna BetEdge v0 ===")

	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log())
	if err != nil {
		fmt.Printf("❌ Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("betedge stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	m := metrics.NewManager()

	source, cleanup, err := buildSource(cfg, m, log)
	if err != nil {
		return err
	}
	defer cleanup()

	detectorCfg := cfg.Detector()
	clock := contracts.SystemClock

	handler := handlers.NewHandler(handlers.Deps{
		Source:  source,
		Ingest:  ingest.NewService(source, cfg.FetchConcurrency, m, log),
		Engine:  detector.NewEngine(detectorCfg, detector.WithClock(clock), detector.WithRecorder(m)),
		Filter:  lifecycle.NewFilter(clock, detectorCfg.EVFreshness),
		Clock:   clock,
		Sports:  cfg.Sports,
		Markets: cfg.Markets,
		Timeout: cfg.RequestTimeout,
		Logger:  log,
	})
	calculators := handlers.NewCalculatorHandler(log)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log.Named("http"), m))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(cfg.RequestTimeout))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Failed-Sports", "X-Request-Id"},
		MaxAge:         300,
	}))

	handlers.Mount(r, handler, calculators, m.Handler())

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("betedge listening",
			zap.String("addr", cfg.Addr),
			zap.Strings("sports", cfg.Sports),
			zap.Strings("markets", cfg.Markets),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Info("received signal", zap.String("signal", sig.String()))

		// Give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Warn("graceful shutdown failed", zap.Error(err))
			if err := srv.Close(); err != nil {
				return fmt.Errorf("could not stop server: %w", err)
			}
		}
	}

	log.Info("shutdown complete")
	return nil
}

// buildSource picks the snapshot source: Alexandria when a database is
// configured, otherwise the odds provider, cached in redis when configured
func buildSource(cfg *config.Config, m *metrics.Manager, log *zap.Logger) (contracts.SnapshotSource, func(), error) {
	if cfg.DatabaseURL != "" {
		client, err := db.NewClient(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to Alexandria: %w", err)
		}
		log.Info("✓ Connected to Alexandria DB")
		return client, func() { _ = client.Close() }, nil
	}

	var source contracts.SnapshotSource = oddsapi.New(oddsapi.Config{
		APIKey:  cfg.OddsAPIKey,
		BaseURL: cfg.OddsAPIBaseURL,
		Regions: cfg.OddsAPIRegions,
		Timeout: cfg.OddsAPITimeout,
	}, log,
		oddsapi.WithRetryPolicy(retry.NewRetryPolicy(cfg.RetryMaxAttempts, cfg.RetryInitialBackoff, cfg.RetryMaxBackoff)),
		oddsapi.WithQuotaRecorder(m),
	)
	log.Info("✓ Using odds provider", zap.String("base_url", cfg.OddsAPIBaseURL))

	if cfg.RedisURL == "" {
		return source, func() {}, nil
	}

	redisClient, err := cache.NewClient(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, cache will fall through", zap.Error(err))
	} else {
		log.Info("✓ Connected to Redis")
	}

	cached := cache.NewSnapshotCache(redisClient, source, cfg.CacheTTL, cfg.CacheKeyPrefix, m, log)
	return cached, func() { _ = redisClient.Close() }, nil
}
