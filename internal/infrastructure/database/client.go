package database

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/fastygo/taskdesk/internal/config"
)

// DriverName maps the configured backend to its database/sql driver.
func DriverName(backend string) (string, error) {
	switch backend {
	case config.DriverSQLite:
		return "sqlite", nil
	case config.DriverPostgres:
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", backend)
	}
}

// DSN builds the connection string for the configured backend.
func DSN(cfg config.DatabaseConfig) string {
	if cfg.Driver == config.DriverPostgres {
		return cfg.URL
	}
	return cfg.Path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Open creates and validates the single process-wide store handle.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*sqlx.DB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	driver, err := DriverName(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driver, DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}
	if cfg.Driver == config.DriverSQLite {
		// one writer, one connection: the file is owned by this process
		db.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}

	logger.Info("store opened", zap.String("driver", cfg.Driver), zap.String("path", cfg.Path))
	return db, nil
}

// Close releases the handle and logs the result.
func Close(db *sqlx.DB, logger *zap.Logger) error {
	if db == nil {
		return nil
	}
	err := db.Close()
	if logger != nil {
		if err != nil {
			logger.Error("store close failed", zap.Error(err))
		} else {
			logger.Info("store closed")
		}
	}
	return err
}
