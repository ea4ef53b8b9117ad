package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/medfluent/internal/config"
	"github.com/phrazzld/medfluent/internal/platform/postgres"
	"github.com/phrazzld/medfluent/internal/platform/postgres/migrations"
	rediscache "github.com/phrazzld/medfluent/internal/platform/redis"
	"github.com/phrazzld/medfluent/internal/platform/sqlite"
	"github.com/phrazzld/medfluent/internal/store"
	goredis "github.com/redis/go-redis/v9"
)

// storage is the persistence chosen by configuration. db and events are nil
// for the memory driver.
type storage struct {
	db        *sql.DB
	snapshots store.SnapshotStore
	events    *postgres.EventLog
}

// openStorage opens the configured database, applies the schema and builds
// the snapshot store and event log on top of it.
func openStorage(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*storage, error) {
	switch cfg.Driver {
	case "memory":
		logger.Warn("Using in-memory storage, learner state is lost on exit")
		return &storage{snapshots: store.NewMemorySnapshotStore()}, nil

	case "sqlite":
		db, err := sqlite.Open(ctx, cfg.URL, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return &storage{
			db:        db,
			snapshots: sqlite.NewSnapshotStore(db, logger),
			events:    sqlite.NewEventLog(db, logger),
		}, nil

	case "postgres":
		db, err := postgres.Open(ctx, cfg.URL, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres database: %w", err)
		}
		if _, err := migrations.Up(ctx, db, migrations.Postgres, logger); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to migrate postgres database: %w", err)
		}
		return &storage{
			db:        db,
			snapshots: postgres.NewSnapshotStore(db, postgres.WithLogger(logger)),
			events:    postgres.NewEventLog(db, postgres.MapError, logger),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// withCache wraps snapshots in the Redis cache when it is enabled.
func withCache(
	ctx context.Context,
	cfg config.CacheConfig,
	snapshots store.SnapshotStore,
	logger *slog.Logger,
) (store.SnapshotStore, *goredis.Client, error) {
	if !cfg.Enabled {
		return snapshots, nil, nil
	}
	client, err := rediscache.Open(ctx, cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to snapshot cache: %w", err)
	}
	logger.Info("Snapshot cache enabled", "ttl", cfg.TTL.String())
	return rediscache.NewCachedSnapshotStore(snapshots, client, cfg.TTL, logger), client, nil
}
