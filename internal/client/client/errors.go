package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// APIError is a non-2xx response. Message and Type come from the backend's
// {"error": {"message", "type"}} envelope or its {"detail": "..."} form and
// may be empty.
type APIError struct {
	Status  int
	Message string
	Type    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api error: %d: %s", e.Status, e.Message)
}

// Unwrap lets callers match the status class with errors.Is.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrUnavailable
	}
	return nil
}

// ServerMessage returns the backend-supplied message of err, if any.
func ServerMessage(err error) (string, bool) {
	var ae *APIError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message, true
	}
	return "", false
}
