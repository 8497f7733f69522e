// Package repository archives extraction runs. The store runs on
// database/sql with two backends: a local SQLite file for CLI use and
// Postgres through the pgx stdlib driver for shared deployments.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/insurelens/policy-parser/internal/common"
)

// Open connects to the configured archive backend and applies the schema.
func Open(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var driver string
	switch cfg.Driver {
	case "sqlite":
		driver = "sqlite"
	case "postgres":
		driver = "pgx"
	default:
		return nil, common.NewAppError("DB_CONFIG", fmt.Sprintf("unknown driver %q", cfg.Driver), common.ErrInvalidInput)
	}

	logger.Info("opening archive store", "driver", cfg.Driver)
	db, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, common.NewAppError("DB_OPEN", "open archive store", err)
	}
	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.MaxConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pingCtx := ctx
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, common.NewAppError("DB_PING", "archive store unreachable", err)
	}

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, common.NewAppError("DB_MIGRATE", "apply archive schema", err)
	}
	logger.Info("archive store ready")
	return db, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS extraction_runs (
	id TEXT PRIMARY KEY,
	issuer_id TEXT NOT NULL,
	source_path TEXT NOT NULL,
	load_method TEXT NOT NULL,
	aggregate_confidence DOUBLE PRECISION NOT NULL,
	report_json TEXT NOT NULL,
	created_at TEXT NOT NULL
)`)
	return err
}
