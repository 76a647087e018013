package constants

// Redis key formats
const (
	// Auth Service
	KeyAuthOTP     = "auth:otp:%s"     // Format: auth:otp:{email}
	KeyAuthSession = "auth:session:%s" // Format: auth:session:{refresh_token}

	// Rate Limiting
	KeyRateLimit = "rate:limit:%s:%s" // Format: rate:limit:{resource}:{ip}
)
