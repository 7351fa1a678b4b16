package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shopcart/internal/cart"
	"github.com/nikolayk812/shopcart/internal/catalog"
	"github.com/nikolayk812/shopcart/internal/catalogview"
	"github.com/nikolayk812/shopcart/internal/config"
	"github.com/nikolayk812/shopcart/internal/kvstore"
	"github.com/nikolayk812/shopcart/internal/port"
	"go.uber.org/zap"
)

type app struct {
	store      *cart.Store
	controller *catalogview.Controller
	close      func()
}

func newApp(ctx context.Context, cfg config.Config, cfgPath string, logger *zap.Logger) (*app, error) {
	kv, closeKV, err := openKVStore(ctx, cfg, cfgPath, logger)
	if err != nil {
		return nil, err
	}

	client, err := catalog.NewClient(cfg.Catalog.Endpoint, catalog.WithLogger(logger))
	if err != nil {
		closeKV()
		return nil, fmt.Errorf("catalog.NewClient: %w", err)
	}

	store := cart.NewStore(kv, logger)

	return &app{
		store:      store,
		controller: catalogview.NewController(client, store, logger),
		close:      closeKV,
	}, nil
}

func openKVStore(ctx context.Context, cfg config.Config, cfgPath string, logger *zap.Logger) (port.KVStore, func(), error) {
	logger = logger.With(zap.String("driver", cfg.Storage.Driver))

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		logger.Debug("using in-memory cart storage")
		return kvstore.NewMemory(), func() {}, nil

	case config.DriverPostgres:
		profileID, err := config.EnsureProfileID(&cfg, cfgPath)
		if err != nil {
			return nil, nil, fmt.Errorf("config.EnsureProfileID: %w", err)
		}

		pool, err := pgxpool.New(ctx, cfg.Storage.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("pgxpool.New: %w", err)
		}

		if err := kvstore.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("kvstore.Migrate: %w", err)
		}

		store, err := kvstore.NewPostgres(pool, profileID)
		if err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("kvstore.NewPostgres: %w", err)
		}

		logger.Debug("using postgres cart storage", zap.Stringer("profile_id", profileID))
		return store, pool.Close, nil

	default:
		store, err := kvstore.OpenSQLite(ctx, cfg.Storage.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("kvstore.OpenSQLite: %w", err)
		}

		logger.Debug("using sqlite cart storage", zap.String("path", cfg.Storage.Path))
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Warn("close sqlite store", zap.Error(err))
			}
		}, nil
	}
}
