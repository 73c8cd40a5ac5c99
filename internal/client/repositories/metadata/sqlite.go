package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/biteboxd/internal/dbx"
)

const (
	selectValue = `SELECT value FROM metadata WHERE key = ?`

	upsertValue = `
		INSERT INTO metadata (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	deleteValue = `DELETE FROM metadata WHERE key = ?`
)

type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository binds the repository to a *sql.DB or a *sql.Tx.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	switch err := r.db.QueryRowContext(ctx, selectValue, key).Scan(&value); {
	case errors.Is(err, sql.ErrNoRows):
		return "", ErrNotFound
	case err != nil:
		return "", fmt.Errorf("metadata: get %q: %w", key, err)
	}
	return value, nil
}

// Set inserts or overwrites key and stamps updated_at.
func (r *SQLiteRepository) Set(ctx context.Context, key, value string) error {
	if _, err := r.db.ExecContext(ctx, upsertValue, key, value); err != nil {
		return fmt.Errorf("metadata: set %q: %w", key, err)
	}
	return nil
}

// Delete removes key; deleting a missing key is not an error.
func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, deleteValue, key); err != nil {
		return fmt.Errorf("metadata: delete %q: %w", key, err)
	}
	return nil
}
