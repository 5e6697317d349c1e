package auth

import "errors"

// Provider-style error codes. locale maps them to user-facing messages.
const (
	CodeOperationNotAllowed = "auth/operation-not-allowed"
	CodeInvalidCredential   = "auth/invalid-credential"
	CodeEmailInUse          = "auth/email-already-in-use"
	CodeWeakPassword        = "auth/weak-password"
	CodeInvalidEmail        = "auth/invalid-email"
	CodeInternal            = "auth/internal-error"
)

// ErrInvalidToken covers malformed, expired and revoked session tokens.
var ErrInvalidToken = errors.New("auth: invalid session token")

type Error struct {
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e *Error) Unwrap() error { return e.Err }

func newError(code string, err error) error {
	return &Error{Code: code, Err: err}
}

// Code extracts the auth error code, or CodeInternal for any other error.
func Code(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeInternal
}
