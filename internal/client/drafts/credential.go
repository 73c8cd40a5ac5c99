package drafts

import (
	"errors"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const PasswordMinLength = 8

// User-facing reasons for credential drafts.
const (
	ReasonFillAllFields   = "Please fill in all fields."
	ReasonInvalidEmail    = "Please enter a valid email address."
	ReasonWeakPassword    = "Password must be at least 8 characters and include a letter + a number."
	ReasonMissingPassword = "Please enter your password."
)

// CredentialDraft is the raw content of the register form.
type CredentialDraft struct {
	Username string `validate:"nonblank"`
	Email    string `validate:"nonblank,looseemail"`
	Password string `validate:"password"`
}

// LoginDraft is the raw content of the login form.
type LoginDraft struct {
	Email    string `validate:"nonblank"`
	Password string `validate:"required"`
}

// PasswordRules reports each password rule independently so a form can
// show which ones are met.
type PasswordRules struct {
	HasMinLength bool
	HasLetter    bool
	HasDigit     bool
}

func (r PasswordRules) Valid() bool {
	return r.HasMinLength && r.HasLetter && r.HasDigit
}

// ValidatePassword evaluates the rules for s. Length counts characters, not bytes.
func ValidatePassword(s string) PasswordRules {
	r := PasswordRules{HasMinLength: utf8.RuneCountInString(s) >= PasswordMinLength}
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
			r.HasLetter = true
		case c >= '0' && c <= '9':
			r.HasDigit = true
		}
	}
	return r
}

func IsPasswordValid(s string) bool {
	return ValidatePassword(s).Valid()
}

// ValidateEmail reports whether s contains "@" and the text after the first
// "@" contains ".".
func ValidateEmail(s string) bool {
	_, domain, found := strings.Cut(s, "@")
	return found && strings.Contains(domain, ".")
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func credentialValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// Registration only fails for an empty tag or a nil func.
		_ = v.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = v.RegisterValidation("looseemail", func(fl validator.FieldLevel) bool {
			return ValidateEmail(fl.Field().String())
		})
		_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
			return IsPasswordValid(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// IsCredentialDraftSubmittable reports whether the register form may be sent.
func IsCredentialDraftSubmittable(d CredentialDraft) bool {
	return credentialValidator().Struct(d) == nil
}

// CheckCredentialDraft returns nil when d is submittable, otherwise a
// *ValidationError carrying the first failing rule in form order: missing
// fields, then email syntax, then password strength.
func CheckCredentialDraft(d CredentialDraft) error {
	failed := failedFields(credentialValidator().Struct(d))
	switch {
	case failed == nil:
		return nil
	case failed["Username"] == "nonblank" || failed["Email"] == "nonblank" || d.Password == "":
		return invalid(fieldFor(failed, "Username", "Email", "Password"), ReasonFillAllFields)
	case failed["Email"] != "":
		return invalid("Email", ReasonInvalidEmail)
	default:
		return invalid("Password", ReasonWeakPassword)
	}
}

// CheckLoginDraft requires a non-blank email and a non-empty password. The
// backend decides whether the pair is correct.
func CheckLoginDraft(d LoginDraft) error {
	failed := failedFields(credentialValidator().Struct(d))
	switch {
	case failed == nil:
		return nil
	case failed["Email"] != "":
		return invalid("Email", ReasonFillAllFields)
	default:
		return invalid("Password", ReasonMissingPassword)
	}
}

// failedFields maps struct field name to the first failed tag, or nil when
// err is nil.
func failedFields(err error) map[string]string {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		// InvalidValidationError only happens for non-struct input.
		return map[string]string{"": err.Error()}
	}
	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = fe.Tag()
		}
	}
	return out
}

func fieldFor(failed map[string]string, names ...string) string {
	for _, n := range names {
		if failed[n] != "" {
			return n
		}
	}
	return ""
}
