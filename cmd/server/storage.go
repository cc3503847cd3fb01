package main

import (
	"context"
	"fmt"

	"github.com/portfolio/internal/config"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/storage"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// openStorage 根据 STORAGE_DRIVER 选择存储实现，配置了 REDIS_URL 时在外层加缓存
func openStorage(ctx context.Context, cfg config.AppConfig, logger *zap.Logger) (storage.Storage, error) {
	var store storage.Storage

	switch cfg.StorageDriver {
	case config.StorageMemory:
		mem := storage.NewMemStorage()
		if cfg.SeedDemoData {
			if _, err := seedDemo(ctx, mem, logger); err != nil {
				return nil, err
			}
		}
		store = mem
	case config.StorageSQLite, config.StoragePostgres:
		gdb, err := db.Open(ctx, db.Options{
			Driver: cfg.StorageDriver,
			Path:   cfg.DatabasePath,
			URL:    cfg.DatabaseURL,
			Logger: logger,
		})
		if err != nil {
			return nil, err
		}
		dbStore := storage.NewDBStorage(gdb)
		if cfg.SeedDemoData {
			if _, err := seedDemo(ctx, dbStore, logger); err != nil {
				_ = dbStore.Close()
				return nil, err
			}
		}
		store = dbStore
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	if cfg.RedisURL == "" {
		return store, nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		// 缓存不可用时照常启动，读请求会直接落到底层存储
		logger.Warn("redis unreachable at startup", zap.Error(err))
	}
	return storage.NewCachedStorage(store, client, cfg.CacheTTL, logger), nil
}

// seedDemo loads the embedded dataset when the store is still empty.
func seedDemo(ctx context.Context, store storage.Storage, logger *zap.Logger) (bool, error) {
	empty, err := storage.IsEmpty(ctx, store)
	if err != nil {
		return false, fmt.Errorf("inspect storage: %w", err)
	}
	if !empty {
		logger.Debug("storage already has data, skipping demo seed")
		return false, nil
	}

	fx, err := storage.DemoFixtures()
	if err != nil {
		return false, err
	}
	sum, err := storage.Seed(ctx, store, fx)
	if err != nil {
		return false, err
	}
	logger.Info("seeded demo data",
		zap.Int("projects", sum.Projects),
		zap.Int("gallery", sum.Gallery),
		zap.Int("writings", sum.Writings),
		zap.Int("albums", sum.Albums),
		zap.Int("tags", sum.Tags),
	)
	return true, nil
}
