package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
)

// DriverName is the database/sql driver registered by pgx.
const DriverName = "pgx"

// Open connects to PostgreSQL, configures the pool and verifies the
// connection with a ping.
func Open(ctx context.Context, databaseURL string, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open(DriverName, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		var netErr net.Error
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			return nil, fmt.Errorf("database ping timed out after 5s: %w", err)
		case errors.As(err, &netErr):
			return nil, fmt.Errorf("network error connecting to database: %w", err)
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established", slog.String("url", MaskURL(databaseURL)))
	return db, nil
}

// MaskURL hides the password of a connection URL for logging.
func MaskURL(databaseURL string) string {
	parsed, err := url.Parse(databaseURL)
	if err != nil {
		return "invalid-url"
	}
	if parsed.User != nil {
		if _, hasPassword := parsed.User.Password(); hasPassword {
			parsed.User = url.UserPassword(parsed.User.Username(), "****")
		}
	}
	return parsed.String()
}
