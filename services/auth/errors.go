package auth

import "errors"

// Verification reject reasons. Handlers never surface these to clients; the
// HTTP caller only sees the boolean verification outcome.
var (
	ErrOTPNotFound  = errors.New("verification code not found")
	ErrOTPExpired   = errors.New("verification code expired")
	ErrOTPExhausted = errors.New("verification attempts exhausted")
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrSessionNotFound    = errors.New("refresh session not found")
)

// IsOTPRejection reports whether an error is a verification reject reason
// rather than an infrastructure failure
func IsOTPRejection(err error) bool {
	return errors.Is(err, ErrOTPNotFound) ||
		errors.Is(err, ErrOTPExpired) ||
		errors.Is(err, ErrOTPExhausted)
}
