// Package migrations embeds the database schema and applies it with goose.
// The SQL is portable between PostgreSQL and SQLite.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var files embed.FS

// Dialect selects the SQL flavour goose uses for its bookkeeping table.
type Dialect = goose.Dialect

const (
	Postgres = goose.DialectPostgres
	SQLite   = goose.DialectSQLite3
)

// Up applies every pending migration and returns the resulting schema version.
func Up(ctx context.Context, db *sql.DB, dialect Dialect, logger *slog.Logger) (int64, error) {
	log := logger.With(slog.String("component", "migrations"), slog.String("dialect", string(dialect)))

	provider, err := goose.NewProvider(dialect, db, files)
	if err != nil {
		return 0, fmt.Errorf("failed to create migration provider: %w", err)
	}

	start := time.Now()
	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to apply migrations: %w", err)
	}
	for _, r := range results {
		log.Info("applied migration",
			slog.Int64("version", r.Source.Version),
			slog.Int64("duration_ms", r.Duration.Milliseconds()))
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	log.Info("database schema up to date",
		slog.Int64("version", version),
		slog.Int("applied", len(results)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return version, nil
}
