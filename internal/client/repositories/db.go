// Package repositories bootstraps the local SQLite database that backs the
// client's durable state.
package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/biteboxd/internal/client/migrations"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// RunMigrations applies the embedded goose migrations. Re-running is a no-op.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// OpenDatabase opens (creating if needed) the SQLite file at dsn and brings
// its schema up to date.
func OpenDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite serializes writers anyway; one connection also keeps ":memory:" coherent.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
