package services

import "fmt"

// Operation names used in TransportError.Op.
const (
	OpLogin    = "login"
	OpRegister = "register"
	OpList     = "list"
	OpGet      = "get"
	OpCreate   = "create"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpUpload   = "upload"
	OpFeed     = "feed"
)

// User-facing failure messages, one per operation.
const (
	MsgLoginFailed    = "Login failed."
	MsgRegisterFailed = "Register failed."
	MsgRegisteredOnly = "Account created, but signing in failed. Please log in."
	MsgSaveFailed     = "Save failed. Check your inputs (rating 1–5, macros >= 0, etc.)."
	MsgDeleteFailed   = "Delete failed."
	MsgUploadFailed   = "Upload failed. Make sure it's an image file."
	MsgListFailed     = "Failed to load your recipes. Are you logged in?"
	MsgGetFailed      = "Failed to load recipe."
	MsgFeedFailed     = "Failed to load feed. Is the backend running?"
)

// TransportError is a failed backend call. Message is safe to show; Err is
// the underlying cause and is meant for logs.
type TransportError struct {
	Op      string
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func transportError(op, msg string, err error) *TransportError {
	return &TransportError{Op: op, Message: msg, Err: err}
}
