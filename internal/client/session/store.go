// Package session owns the client's single authentication token: its
// in-memory copy, its durable slot, and the login, register and logout
// protocol that moves it between the Anonymous and Authenticated states.
//
// A Store is created once per process and shared by pointer. Overlapping
// calls are not serialized; the last completed write wins.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/biteboxd/internal/client/client"
	"github.com/dmitrijs2005/biteboxd/internal/client/models"
	"github.com/dmitrijs2005/biteboxd/internal/logging"
)

var (
	// ErrAuth is returned when the backend rejects a login or returns no token.
	ErrAuth = errors.New("authentication failed")
	// ErrSessionInconsistent means the account was created but the follow-up
	// login did not succeed.
	ErrSessionInconsistent = errors.New("registered but not logged in")
)

// RegisterOutcome reports how far Register got.
type RegisterOutcome int

const (
	NotRegistered RegisterOutcome = iota
	RegisteredOnly
	RegisteredAndAuthenticated
)

func (o RegisterOutcome) String() string {
	switch o {
	case RegisteredOnly:
		return "registered"
	case RegisteredAndAuthenticated:
		return "registered and authenticated"
	default:
		return "not registered"
	}
}

// Snapshot is an immutable view of the session at one instant.
type Snapshot struct {
	IsAuthenticated bool
	Token           string
}

func snapshotOf(token string) Snapshot {
	return Snapshot{IsAuthenticated: token != "", Token: token}
}

type Store struct {
	api  client.AuthAPI
	slot Slot
	log  logging.Logger

	mu    sync.RWMutex
	token string
}

func NewStore(api client.AuthAPI, slot Slot, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{api: api, slot: slot, log: log.With("component", "session")}
}

// Restore loads the persisted token, if any. The token is trusted as is;
// the backend is not asked whether it is still valid.
func (s *Store) Restore(ctx context.Context) error {
	token, err := s.slot.Load(ctx)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	s.set(token)
	s.log.Debug(ctx, "session restored", "authenticated", token != "")
	return nil
}

// Login exchanges the credentials for a token. The token is persisted first
// and only then replaces the in-memory one, so a failed login or a failed
// write leaves the session as it was.
func (s *Store) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	resp, err := s.api.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuth, err)
	}
	if resp == nil || resp.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty access token", ErrAuth)
	}

	if err := s.slot.Save(ctx, resp.AccessToken, email); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	s.set(resp.AccessToken)

	s.log.Info(ctx, "logged in", "email", email)
	return resp, nil
}

// Register creates the account and then logs in with the same credentials.
// If the account is created but the login fails, the outcome is
// RegisteredOnly and the error wraps ErrSessionInconsistent.
func (s *Store) Register(ctx context.Context, username, email, password string) (RegisterOutcome, error) {
	err := s.api.Register(ctx, models.RegisterRequest{Username: username, Email: email, Password: password})
	if err != nil {
		return NotRegistered, fmt.Errorf("register: %w", err)
	}

	if _, err := s.Login(ctx, email, password); err != nil {
		s.log.Warn(ctx, "account created but login failed", "email", email, "error", err)
		return RegisteredOnly, fmt.Errorf("%w: %w", ErrSessionInconsistent, err)
	}
	return RegisteredAndAuthenticated, nil
}

// Logout always succeeds. A slot that cannot be cleared is logged; the
// in-memory session is anonymous either way.
func (s *Store) Logout(ctx context.Context) {
	s.set("")
	if err := s.slot.Clear(ctx); err != nil {
		s.log.Warn(ctx, "failed to clear stored token", "error", err)
		return
	}
	s.log.Info(ctx, "logged out")
}

func (s *Store) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotOf(s.token)
}

// Token is a client.TokenSource.
func (s *Store) Token() string {
	return s.Current().Token
}

// LastEmail returns the email of the last successful login for prefill.
// Lookup errors yield "".
func (s *Store) LastEmail(ctx context.Context) string {
	email, err := s.slot.LastEmail(ctx)
	if err != nil {
		s.log.Debug(ctx, "last email lookup failed", "error", err)
		return ""
	}
	return email
}

func (s *Store) set(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}
