package utils

import (
	"regexp"
	"unicode"
)

var otpRegex = regexp.MustCompile(`^\d{6}$`)

// PasswordRequirements reports which parts of the password policy a
// candidate password satisfies, so callers can surface unmet requirements
// individually.
type PasswordRequirements struct {
	Length    bool `json:"length"`    // at least 8 characters
	Uppercase bool `json:"uppercase"` // at least one uppercase letter
	Lowercase bool `json:"lowercase"` // at least one lowercase letter
	Number    bool `json:"number"`    // at least one digit
	Special   bool `json:"special"`   // at least one symbol from the allowed set
}

const passwordSpecialSet = `!@#$%^&*(),.?":{}|<>`

// ValidatePassword evaluates the composite password strength policy.
// All five checks are evaluated independently.
func ValidatePassword(password string) PasswordRequirements {
	reqs := PasswordRequirements{
		Length: len(password) >= 8,
	}

	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			reqs.Uppercase = true
		case unicode.IsLower(r):
			reqs.Lowercase = true
		case unicode.IsDigit(r):
			reqs.Number = true
		}
		if containsRune(passwordSpecialSet, r) {
			reqs.Special = true
		}
	}

	return reqs
}

// Valid reports whether every requirement is met
func (r PasswordRequirements) Valid() bool {
	return r.Length && r.Uppercase && r.Lowercase && r.Number && r.Special
}

// Unmet lists the human-readable requirements that are not satisfied
func (r PasswordRequirements) Unmet() []string {
	var unmet []string
	if !r.Length {
		unmet = append(unmet, "at least 8 characters")
	}
	if !r.Uppercase {
		unmet = append(unmet, "at least one uppercase letter")
	}
	if !r.Lowercase {
		unmet = append(unmet, "at least one lowercase letter")
	}
	if !r.Number {
		unmet = append(unmet, "at least one number")
	}
	if !r.Special {
		unmet = append(unmet, "at least one special character")
	}
	return unmet
}

// IsValidOTP checks that a submitted code is exactly six digits
func IsValidOTP(code string) bool {
	return otpRegex.MatchString(code)
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}
