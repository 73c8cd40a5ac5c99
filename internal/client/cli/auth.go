package cli

import (
	"context"
	"time"

	"github.com/dmitrijs2005/biteboxd/internal/client/drafts"
	"github.com/dmitrijs2005/biteboxd/internal/client/routepath"
	"github.com/dmitrijs2005/biteboxd/internal/client/session"
	"github.com/dmitrijs2005/biteboxd/internal/common"
)

// now is a test seam for token expiry display.
var now = time.Now

// loginScreen prompts for credentials. The email of the last successful
// login is offered as the default.
func (a *App) loginScreen(ctx context.Context) error {
	prompt := "Enter email"
	last := a.session.LastEmail(ctx)
	if last != "" {
		prompt += " [" + last + "]"
	}

	email, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	if email == "" {
		email = last
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.auth.Login(ctx, drafts.LoginDraft{Email: email, Password: string(password)}); err != nil {
		return a.fail(ctx, err)
	}

	a.println("Logged in.")
	a.location = routepath.Recipes
	return nil
}

func (a *App) registerScreen(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	out, err := a.auth.Register(ctx, drafts.CredentialDraft{Username: username, Email: email, Password: string(password)})
	if err != nil {
		if out == session.RegisteredOnly {
			a.location = routepath.Login
		}
		return a.fail(ctx, err)
	}

	a.println("Account created. You are logged in.")
	a.location = routepath.Recipes
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.auth.Logout(ctx)
	a.println("Logged out.")
	a.location = routepath.Root
	return nil
}

// WhoAmI prints what the token says about the session. The claims are not
// verified locally; the backend remains the authority.
func (a *App) WhoAmI(ctx context.Context) error {
	snap := a.session.Current()
	if !snap.IsAuthenticated {
		a.println("Not logged in.")
		return nil
	}

	c, err := snap.Claims()
	if err != nil {
		a.log.Debug(ctx, "token claims unavailable", "error", err)
		a.println("Logged in.")
		return nil
	}

	line := "Logged in"
	if c.Subject != "" {
		line += " as user " + c.Subject
	}
	switch {
	case c.ExpiresAt.IsZero():
	case c.Expired(now()):
		line += ", token expired " + c.ExpiresAt.UTC().Format(time.RFC3339)
	default:
		line += ", token expires " + c.ExpiresAt.UTC().Format(time.RFC3339)
	}
	a.println(line + ".")
	return nil
}
