// Command catalog-seed loads snapshot files (JSON or Parquet) into the content
// store and builds its search index. With -export-parquet it converts the
// merged snapshot instead.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/antopucung/GodotTeko-sub003/internal/config"
	dbRedis "github.com/antopucung/GodotTeko-sub003/internal/db/redis"
	logpkg "github.com/antopucung/GodotTeko-sub003/internal/logger"
	productrepo "github.com/antopucung/GodotTeko-sub003/internal/repository/product"
	"github.com/antopucung/GodotTeko-sub003/internal/repository/snapshot"
)

const defaultBatchSize = 100

func main() {
	recreate := flag.Bool("recreate", false, "drop and recreate the search index")
	batchSize := flag.Int("batch", defaultBatchSize, "documents per JSON.SET round-trip")
	export := flag.String("export-parquet", "", "write the merged snapshot to this Parquet file and exit")
	flag.Parse()

	if err := run(*recreate, *batchSize, *export, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "catalog-seed:", err)
		os.Exit(1)
	}
}

func run(recreate bool, batchSize int, export string, paths []string) error {
	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, logpkg.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if len(paths) == 0 {
		paths = cfg.Catalog.SnapshotPaths
	}
	if len(paths) == 0 {
		return fmt.Errorf("no snapshot files given")
	}

	ctx := logpkg.ContextWithLogger(context.Background(), logger)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Catalog.LoadTimeoutSec)*time.Second)
	defer cancel()

	catalog := snapshot.New(paths)
	if err := catalog.Load(ctx); err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	products, err := catalog.All(ctx)
	if err != nil {
		return err
	}

	if export != "" {
		if err := snapshot.WriteParquet(export, products); err != nil {
			return err
		}
		logger.Info("Snapshot exported", zap.Int("products", len(products)), zap.String("path", export))
		return nil
	}

	if len(cfg.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is not configured")
	}
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		return fmt.Errorf("create store: %w", err)
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		return err
	}

	repo := productrepo.New(store, cfg.Catalog.IndexName, cfg.Catalog.KeyPrefix)
	if err := repo.EnsureIndex(ctx, recreate); err != nil {
		return fmt.Errorf("ensure index: %w", err)
	}
	if err := repo.Put(ctx, products, batchSize); err != nil {
		return fmt.Errorf("store products: %w", err)
	}

	// The index catches up asynchronously; the count may still lag behind.
	indexed, err := repo.Count(ctx)
	if err != nil {
		logger.Warn("Failed to count indexed products", zap.Error(err))
	}

	logger.Info("Catalog seeded",
		zap.Int("products", len(products)),
		zap.Int("indexed", indexed),
		zap.String("index", cfg.Catalog.IndexName),
		zap.Bool("recreated", recreate),
	)
	return nil
}
