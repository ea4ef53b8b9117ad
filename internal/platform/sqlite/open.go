package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/phrazzld/medfluent/internal/platform/postgres"
	"github.com/phrazzld/medfluent/internal/platform/postgres/migrations"
	_ "modernc.org/sqlite"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Open opens the database at path, applies the schema and returns it. An
// in-memory database is limited to one connection so every query sees the
// same data.
func Open(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := MemoryPath
	if path != MemoryPath {
		dsn = filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	}
	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if path == MemoryPath {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if _, err := migrations.Up(ctx, db, migrations.SQLite, logger); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	logger.Info("sqlite database ready", slog.String("path", path))
	return db, nil
}

// NewSnapshotStore returns the learner snapshot store for a SQLite database.
func NewSnapshotStore(db *sql.DB, logger *slog.Logger) *postgres.SnapshotStore {
	return postgres.NewSnapshotStore(db,
		postgres.WithErrorMapper(MapError),
		postgres.WithLogger(logger))
}

// NewEventLog returns the learner event log for a SQLite database.
func NewEventLog(db *sql.DB, logger *slog.Logger) *postgres.EventLog {
	return postgres.NewEventLog(db, MapError, logger)
}
