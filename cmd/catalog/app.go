package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/catalog/internal/config"
	"github.com/kailas-cloud/catalog/internal/db"
	dbRedis "github.com/kailas-cloud/catalog/internal/db/redis"
	"github.com/kailas-cloud/catalog/internal/source"
	cataloguc "github.com/kailas-cloud/catalog/internal/usecase/catalog"
)

// app is the composition root shared by the subcommands.
type app struct {
	cfg     config.Config
	logger  *zap.Logger
	store   db.Store // nil unless a store is needed
	source  source.Source
	catalog *cataloguc.Service
}

// newApp wires the store, source and catalog service. The load is not started.
func newApp(ctx context.Context, cfg config.Config, logger *zap.Logger, recorder cataloguc.Recorder) (*app, error) {
	a := &app{cfg: cfg, logger: logger}

	if cfg.Catalog.Source.Kind == config.SourceKV {
		store, err := openStore(ctx, cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		a.store = store
	}

	var kv db.KVStore
	if a.store != nil {
		kv = a.store
	}
	src, err := source.Open(cfg.Catalog.Source, kv)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.source = src

	a.catalog = cataloguc.New(src, recorder, logger).
		WithLocale(cfg.LocaleTag()).
		WithPagination(cfg.Catalog.DefaultPageSize, cfg.Catalog.MaxPageSize).
		WithLoadTimeout(time.Duration(cfg.Catalog.LoadTimeoutSec) * time.Second)

	return a, nil
}

// Close releases the store connection, if any.
func (a *app) Close() {
	if a.store != nil {
		a.store.Close()
	}
}

func openStore(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (db.Store, error) {
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:      cfg.Addrs,
		Username:   cfg.Username,
		Password:   cfg.Password,
		DB:         cfg.DB,
		Standalone: cfg.Standalone,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s store: %w", cfg.Driver, err)
	}

	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("%s not ready: %w", cfg.Driver, err)
	}
	logger.Info("Connected to database",
		zap.String("driver", cfg.Driver),
		zap.Strings("addrs", cfg.Addrs),
	)
	return store, nil
}
