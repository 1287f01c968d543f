package main

import (
	"context"
	"fmt"

	"github.com/akinalp/filmorate/config"
	"github.com/akinalp/filmorate/database"
	"github.com/akinalp/filmorate/pkg/cache"
	"github.com/akinalp/filmorate/repository"

	log "github.com/sirupsen/logrus"
)

// initStore opens the configured database and returns the repository store over it.
func initStore(ctx context.Context, cfg config.DatabaseConfig) (*database.DB, repository.Store, error) {
	dialect, err := database.ParseDialect(cfg.Driver)
	if err != nil {
		return nil, nil, err
	}

	db, err := database.Open(ctx, dialect, cfg.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return db, repository.NewSQLStore(db), nil
}

// initCache picks Redis when an address is configured, memory otherwise.
func initCache(ctx context.Context, cfg *config.Config) (cache.Store, error) {
	if cfg.Redis.Addr == "" {
		log.WithField("ttl", cfg.Cache.TTL).Info("using in-memory cache")
		return cache.NewMemoryStore(cfg.Cache.TTL), nil
	}

	return cache.NewRedisStore(ctx, cache.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TTL:      cfg.Cache.TTL,
	})
}
