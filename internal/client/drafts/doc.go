// Package drafts turns raw form input into canonical records.
//
// Everything here is pure: no I/O, no global state beyond the shared
// validator instance, and every function is total over its input. Failures
// are returned as data (a Result or a *ValidationError), never as panics.
//
// Credential drafts are checked with go-playground/validator using three
// custom tags:
//
//	nonblank    value is non-empty after trimming spaces
//	looseemail  value contains "@" and the part after the first "@" contains "."
//	password    at least 8 characters, one ASCII letter and one digit
//
// The email check is intentionally loose and is not an RFC 5322 validator.
//
// Recipe drafts are normalized by NormalizeRecipeDraft: text fields are
// trimmed with "" becoming null, numeric fields that are empty or do not
// parse become null, and is_public becomes a strict boolean.
package drafts
