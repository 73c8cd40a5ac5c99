package models

import "encoding/json"

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the login response. Extra keeps every other field the
// backend sent, so callers get the full body.
type AuthResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type,omitempty"`
	Extra       map[string]any `json:"-"`
}

func (a *AuthResponse) UnmarshalJSON(b []byte) error {
	type plain AuthResponse
	var base plain
	if err := json.Unmarshal(b, &base); err != nil {
		return err
	}

	var all map[string]any
	if err := json.Unmarshal(b, &all); err != nil {
		return err
	}
	delete(all, "access_token")
	delete(all, "token_type")

	*a = AuthResponse(base)
	if len(all) > 0 {
		a.Extra = all
	}
	return nil
}
