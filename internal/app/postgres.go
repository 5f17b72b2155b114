package app

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver for database/sql
	goose "github.com/pressly/goose/v3"

	"github.com/investimentigrugno/fluxxo/config"
	"github.com/investimentigrugno/fluxxo/db"
)

// sqlOpener is an indirection for unit testing; defaults to sql.Open
var sqlOpener = sql.Open

// InitPostgres opens the audit-log database and verifies connectivity.
//
// Behavior:
//   - Opens a database handle with the DSN built from cfg.Postgres.
//   - Immediately pings the database to validate connectivity.
//   - Applies the embedded goose migrations when cfg.Postgres.Migrate is set.
//
// Example usage:
//
//	db, err := app.InitPostgres(config.AppConfig)
//	if err != nil {
//	    log.Fatalf("failed to connect: %v", err)
//	}
//	defer db.Close()
func InitPostgres(cfg config.Config) (*sql.DB, error) {
	conn, err := sqlOpener("postgres", cfg.Postgres.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	if cfg.Postgres.Migrate {
		if err := migrate(conn); err != nil {
			_ = conn.Close()
			return nil, err
		}
	}

	return conn, nil
}

// postgresOpener is an indirection used by Build; overridden in tests to avoid real connections.
var postgresOpener = InitPostgres

func migrate(conn *sql.DB) error {
	goose.SetBaseFS(db.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(conn, db.MigrationsDir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
