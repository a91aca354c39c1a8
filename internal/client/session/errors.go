package session

import (
	"errors"

	"github.com/dmitrijs2005/customerconnect/internal/client/api"
	"github.com/dmitrijs2005/customerconnect/internal/validation"
)

// ErrSessionExpired is returned by API calls that hit a 401. By the time a
// caller sees it the session has already been cleared.
var ErrSessionExpired = api.ErrSessionExpired

var errCorruptRecord = errors.New("stored session record is corrupt")

// Fallback messages when the backend gives none.
const (
	msgLoginFailed    = "Login failed"
	msgRegisterFailed = "Registration failed"
	msgGoogleFailed   = "Google login failed"
)

// ValidationError reports input rejected before any network call.
type ValidationError = validation.Error

// AuthenticationError is a rejected login, registration or Google exchange.
// Message is safe to show to the user.
type AuthenticationError struct {
	Op      string
	Message string
	Err     error
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

func authError(op, fallback string, err error) *AuthenticationError {
	msg, ok := api.ServerMessage(err)
	if !ok {
		msg = fallback
	}
	return &AuthenticationError{Op: op, Message: msg, Err: err}
}

func validateInput(in any) error {
	return validation.Validate(in)
}
