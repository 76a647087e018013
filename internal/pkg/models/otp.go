package models

// OTP represents a pending one-time verification code keyed by email
type OTP struct {
	Code      string `json:"code"`
	ExpiresAt int64  `json:"expires_at"` // unix milliseconds
	Attempts  int    `json:"attempts"`
}

// OTPPurpose tags why a code was requested
type OTPPurpose string

const (
	// OTPPurposeSignup gates account creation during signup
	OTPPurposeSignup OTPPurpose = "SIGNUP"
	// OTPPurposePasswordReset gates password recovery
	OTPPurposePasswordReset OTPPurpose = "PASSWORD_RESET"
)

// OTPEmailEvent is published to the mail dispatcher when a code is issued
type OTPEmailEvent struct {
	Email      string     `json:"email"`
	Code       string     `json:"code"`
	Purpose    OTPPurpose `json:"purpose"`
	TTLSeconds int        `json:"ttl_seconds"`
}
