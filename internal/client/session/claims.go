package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrAnonymous = errors.New("no session")

// Claims are the registered claims of the session token. They are decoded
// without verifying the signature and are only fit for display.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry before now.
func (c *Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

func (s Snapshot) Claims() (*Claims, error) {
	if !s.IsAuthenticated {
		return nil, ErrAnonymous
	}

	var rc jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, &rc); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}

	c := &Claims{Subject: rc.Subject}
	if rc.IssuedAt != nil {
		c.IssuedAt = rc.IssuedAt.Time
	}
	if rc.ExpiresAt != nil {
		c.ExpiresAt = rc.ExpiresAt.Time
	}
	return c, nil
}
