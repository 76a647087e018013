package models

// CheckUserRequest asks whether an account exists for an email
type CheckUserRequest struct {
	Email string `json:"email"`
}

// LoginRequest carries credential login input
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUpRequest carries account creation input
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SendOTPRequest asks for a verification code to be issued and mailed
type SendOTPRequest struct {
	Email string     `json:"email"`
	Type  OTPPurpose `json:"type"`
}

// VerifyOTPRequest carries a user-entered verification code
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// LoginResponse is the data payload of a successful login or refresh
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}

// SendOTPResponse acknowledges code issuance
type SendOTPResponse struct {
	Message string `json:"message"`
}

// VerifyOTPResponse reports the outcome of code verification
type VerifyOTPResponse struct {
	Message  string `json:"message"`
	Verified bool   `json:"verified"`
}
