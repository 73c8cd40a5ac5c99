package session

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/biteboxd/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/biteboxd/internal/dbx"
)

// Slot is the durable home of the session token.
type Slot interface {
	// Load returns the stored token, or "" when there is none.
	Load(ctx context.Context) (string, error)
	// Save stores the token together with the email it was issued for.
	Save(ctx context.Context, token, email string) error
	// Clear removes the token. The last email is kept for prefill.
	Clear(ctx context.Context) error
	// LastEmail returns the email of the last successful login, or "".
	LastEmail(ctx context.Context) (string, error)
}

// MetadataSlot keeps the token in the metadata table of the local database.
type MetadataSlot struct {
	db *sql.DB
}

func NewMetadataSlot(db *sql.DB) *MetadataSlot {
	return &MetadataSlot{db: db}
}

func (s *MetadataSlot) repo(tx dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(tx)
}

func (s *MetadataSlot) Load(ctx context.Context) (string, error) {
	return s.get(ctx, metadata.KeyToken)
}

func (s *MetadataSlot) LastEmail(ctx context.Context) (string, error) {
	return s.get(ctx, metadata.KeyLastEmail)
}

func (s *MetadataSlot) get(ctx context.Context, key string) (string, error) {
	v, err := s.repo(s.db).Get(ctx, key)
	if errors.Is(err, metadata.ErrNotFound) {
		return "", nil
	}
	return v, err
}

// Save writes the token and the email in one transaction.
func (s *MetadataSlot) Save(ctx context.Context, token, email string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, metadata.KeyToken, token); err != nil {
			return err
		}
		return repo.Set(ctx, metadata.KeyLastEmail, email)
	})
}

func (s *MetadataSlot) Clear(ctx context.Context) error {
	return s.repo(s.db).Delete(ctx, metadata.KeyToken)
}
