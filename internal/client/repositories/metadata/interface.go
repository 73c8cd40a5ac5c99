// Package metadata stores small named values (the session token, the last
// used email) in the local SQLite database.
package metadata

import (
	"context"
	"errors"
)

// Keys used by the client.
const (
	KeyToken     = "token"
	KeyLastEmail = "last_email"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("metadata: not found")

type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
