package constants

// NATS Subjects
const (
	// Auth Service
	SubjectOTPEmail = "auth.otp.email"
)
