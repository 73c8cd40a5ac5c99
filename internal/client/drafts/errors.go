package drafts

// ValidationError is a local, recoverable input problem. Reason is shown to
// the user next to the form as is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
