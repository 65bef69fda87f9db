package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation matches every *ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	if target == ErrValidation {
		return true
	}
	t, ok := target.(*ValidationError)
	return ok && t.Field == e.Field && t.Reason == e.Reason
}

const reasonRequired = "required"

var (
	ErrEmailRequired    = &ValidationError{Field: FieldEmail, Reason: reasonRequired}
	ErrUsernameRequired = &ValidationError{Field: FieldUsername, Reason: reasonRequired}
	ErrPasswordRequired = &ValidationError{Field: FieldPassword, Reason: reasonRequired}
)

// ValidateSignup checks the fields every new account needs: the login field
// plus every field in AccountIdentity.RequiredSignupFields. fields maps field
// names to raw input values; blank values count as missing.
func ValidateSignup(fields map[string]string) error {
	required := append([]string{AccountIdentity.LoginField}, AccountIdentity.RequiredSignupFields...)
	for _, name := range required {
		if strings.TrimSpace(fields[name]) == "" {
			return &ValidationError{Field: name, Reason: reasonRequired}
		}
	}
	return nil
}
