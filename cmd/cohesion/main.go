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
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cohesion/internal/config"
	"github.com/kailas-cloud/cohesion/internal/db"
	dbGoRedis "github.com/kailas-cloud/cohesion/internal/db/goredis"
	dbMemory "github.com/kailas-cloud/cohesion/internal/db/memory"
	dbRedis "github.com/kailas-cloud/cohesion/internal/db/redis"
	"github.com/kailas-cloud/cohesion/internal/domain/stopword"
	logpkg "github.com/kailas-cloud/cohesion/internal/logger"
	"github.com/kailas-cloud/cohesion/internal/metrics"
	"github.com/kailas-cloud/cohesion/internal/repository/reportcache"
	chiTransport "github.com/kailas-cloud/cohesion/internal/transport/chi"
	analysisuc "github.com/kailas-cloud/cohesion/internal/usecase/analysis"
	healthuc "github.com/kailas-cloud/cohesion/internal/usecase/health"
	"github.com/kailas-cloud/cohesion/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting cohesion API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("cache_driver", cfg.Cache.Driver),
	)

	ctx := context.Background()

	store, err := openStore(ctx, cfg.Cache)
	if err != nil {
		logger.Fatal("Failed to open cache store", zap.Error(err))
	}
	if store != nil {
		defer store.Close()
		logger.Info("Report cache ready", zap.String("driver", cfg.Cache.Driver))
	}

	filter, err := buildFilter(cfg.Analysis)
	if err != nil {
		logger.Fatal("Failed to load stop words", zap.Error(err))
	}
	logger.Info("Stop word filter built",
		zap.Int("words", len(filter.Words())),
		zap.String("placeholder", string(filter.Placeholder())),
		zap.Bool("normalize", cfg.Analysis.Normalize),
	)

	// Register analysis metrics explicitly (no init())
	metrics.RegisterAnalysisMetrics()

	analysisSvc := analysisuc.New(filter, analysisuc.Config{
		DefaultMaxBins: cfg.Analysis.DefaultMaxBins,
		MaxTexts:       cfg.Analysis.MaxTexts,
		MaxBatchSize:   cfg.Analysis.MaxBatchSize,
		Workers:        cfg.Analysis.Workers,
	}, logger)

	healthSvc := healthuc.New()
	if store != nil {
		ttl := time.Duration(cfg.Cache.TTLSec) * time.Second
		analysisSvc.WithCache(reportcache.New(store, ttl, metrics.ReportCacheTotal, logger))
		healthSvc.With("cache", store)
	}

	server := chiTransport.NewServer(analysisSvc, healthSvc, logger).
		WithMaxBodyBytes(cfg.HTTP.MaxBodyBytes)

	r := chi.NewRouter()
	r.Use(chiTransport.JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.WideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// openStore returns the report cache backend, or nil when caching is disabled.
func openStore(ctx context.Context, cfg config.CacheConfig) (db.Store, error) {
	var store db.Store
	switch cfg.Driver {
	case config.CacheNone:
		return nil, nil
	case config.CacheMemory:
		return dbMemory.NewStore(), nil
	case config.CacheRedis:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("redis store: %w", err)
		}
		store = s
	case config.CacheGoRedis:
		s, err := dbGoRedis.NewStore(dbGoRedis.Config{
			Addrs:      cfg.Addrs,
			Password:   cfg.Password,
			DB:         cfg.DB,
			MasterName: cfg.MasterName,
		})
		if err != nil {
			return nil, fmt.Errorf("goredis store: %w", err)
		}
		store = s
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}

	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("%s not ready: %w", cfg.Driver, err)
	}
	return store, nil
}

func buildFilter(cfg config.AnalysisConfig) (*stopword.Filter, error) {
	var words []string
	if cfg.StopWordsFile != "" {
		w, err := stopword.LoadFile(cfg.StopWordsFile)
		if err != nil {
			return nil, err
		}
		words = w
	}
	opts := []stopword.Option{stopword.WithPlaceholder(cfg.PlaceholderRune())}
	if cfg.Normalize {
		opts = append(opts, stopword.WithNormalization())
	}
	return stopword.New(words, opts...), nil
}
