// Package services runs the user's form submissions: validate the draft,
// call the backend, and turn failures into a short message the front-end
// can show as is.
//
// Every action follows the same order. An invalid draft returns a
// *drafts.ValidationError and never reaches the network; a backend failure
// returns a *TransportError. Nothing is retried.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/biteboxd/internal/client/client"
	"github.com/dmitrijs2005/biteboxd/internal/client/drafts"
	"github.com/dmitrijs2005/biteboxd/internal/client/models"
	"github.com/dmitrijs2005/biteboxd/internal/client/session"
	"github.com/dmitrijs2005/biteboxd/internal/logging"
)

// SessionManager is the part of *session.Store the auth flows drive.
type SessionManager interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Register(ctx context.Context, username, email, password string) (session.RegisterOutcome, error)
	Logout(ctx context.Context)
}

type AuthService interface {
	Login(ctx context.Context, d drafts.LoginDraft) (*models.AuthResponse, error)
	Register(ctx context.Context, d drafts.CredentialDraft) (session.RegisterOutcome, error)
	Logout(ctx context.Context)
}

type authService struct {
	sess SessionManager
	log  logging.Logger
}

func NewAuthService(sess SessionManager, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{sess: sess, log: log.With("service", "auth")}
}

func (a *authService) Login(ctx context.Context, d drafts.LoginDraft) (*models.AuthResponse, error) {
	if err := drafts.CheckLoginDraft(d); err != nil {
		return nil, err
	}

	resp, err := a.sess.Login(ctx, strings.TrimSpace(d.Email), d.Password)
	if err != nil {
		a.log.Warn(ctx, "login failed", "error", err)
		return nil, transportError(OpLogin, MsgLoginFailed, err)
	}
	return resp, nil
}

// Register creates the account and signs in. When the account is created
// but the sign-in fails, the outcome is session.RegisteredOnly and the
// error is a login TransportError wrapping session.ErrSessionInconsistent.
func (a *authService) Register(ctx context.Context, d drafts.CredentialDraft) (session.RegisterOutcome, error) {
	if err := drafts.CheckCredentialDraft(d); err != nil {
		return session.NotRegistered, err
	}

	out, err := a.sess.Register(ctx, strings.TrimSpace(d.Username), strings.TrimSpace(d.Email), d.Password)
	switch {
	case err == nil:
		return out, nil
	case out == session.RegisteredOnly || errors.Is(err, session.ErrSessionInconsistent):
		a.log.Warn(ctx, "registered without session", "error", err)
		return session.RegisteredOnly, transportError(OpLogin, MsgRegisteredOnly, err)
	}

	a.log.Warn(ctx, "register failed", "error", err)
	msg := MsgRegisterFailed
	if m, ok := client.ServerMessage(err); ok {
		msg = m
	}
	return session.NotRegistered, transportError(OpRegister, msg, err)
}

func (a *authService) Logout(ctx context.Context) {
	a.sess.Logout(ctx)
}
