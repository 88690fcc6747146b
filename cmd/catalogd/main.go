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

	"go.uber.org/zap"

	"github.com/antopucung/GodotTeko-sub003/internal/config"
	dbRedis "github.com/antopucung/GodotTeko-sub003/internal/db/redis"
	logpkg "github.com/antopucung/GodotTeko-sub003/internal/logger"
	"github.com/antopucung/GodotTeko-sub003/internal/metrics"
	productrepo "github.com/antopucung/GodotTeko-sub003/internal/repository/product"
	"github.com/antopucung/GodotTeko-sub003/internal/repository/snapshot"
	chiTransport "github.com/antopucung/GodotTeko-sub003/internal/transport/chi"
	healthuc "github.com/antopucung/GodotTeko-sub003/internal/usecase/health"
	searchuc "github.com/antopucung/GodotTeko-sub003/internal/usecase/search"
	"github.com/antopucung/GodotTeko-sub003/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, logpkg.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting catalog search API",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.Strings("snapshot_paths", cfg.Catalog.SnapshotPaths),
	)

	ctx := logpkg.ContextWithLogger(context.Background(), logger)
	metrics.RegisterSearchMetrics()

	// Local catalog: the fallback source and the suggest/facets source.
	catalog := snapshot.New(cfg.Catalog.SnapshotPaths)
	if len(cfg.Catalog.SnapshotPaths) > 0 {
		loadCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Catalog.LoadTimeoutSec)*time.Second)
		if err := catalog.Load(loadCtx); err != nil {
			logger.Error("Local catalog not loaded", zap.Error(err))
		}
		cancel()
	}
	metrics.SnapshotProducts.Set(float64(catalog.Len()))

	// Remote store is optional unless database.required is set.
	// Pass nil interfaces (not typed nil pointers) when it is absent.
	var (
		remote searchuc.RemoteCatalog
		pinger healthuc.DBPinger
	)
	store, err := connectStore(ctx, &cfg)
	switch {
	case err != nil && cfg.Database.Required:
		logger.Fatal("Database not ready", zap.Error(err))
	case err != nil:
		logger.Warn("Remote catalog disabled, serving from local catalog", zap.Error(err))
	case store != nil:
		defer store.Close()
		repo := productrepo.New(store, cfg.Catalog.IndexName, cfg.Catalog.KeyPrefix)
		if err := repo.EnsureIndex(ctx, false); err != nil {
			logger.Warn("Failed to ensure search index", zap.Error(err))
		}
		remote, pinger = repo, store
		logger.Info("Connected to database")
	}

	if remote == nil && !catalog.Loaded() {
		logger.Fatal("No catalog source available")
	}

	searchSvc := searchuc.New(remote, catalog)
	healthSvc := healthuc.New(pinger, catalog)

	server := chiTransport.NewServer(searchSvc, healthSvc, logger).
		WithPagination(cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize).
		WithSuggestLimit(cfg.Search.SuggestLimit)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      chiTransport.NewRouter(server, logger, cfg.Auth.APIKeys),
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

// connectStore dials the content store and waits for it. Returns nil, nil when
// no address is configured.
func connectStore(ctx context.Context, cfg *config.Config) (*dbRedis.Store, error) {
	if len(cfg.Database.Addrs) == 0 {
		return nil, nil //nolint:nilnil // absent store is not an error
	}

	timeout := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:       cfg.Database.Addrs,
		Password:    cfg.Database.Password,
		DialTimeout: timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}
	if err := store.WaitForReady(ctx, timeout); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}
