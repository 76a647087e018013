package authflow

import (
	"strings"

	"github.com/safeshareapp/safeshare/internal/utils"
)

// SignupInput is the live signup form state validated before submission
type SignupInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// Validate evaluates every signup requirement independently so a caller can
// show which ones are unmet. Submission is blocked until all pass.
func (in SignupInput) Validate() []string {
	var unmet []string

	if strings.TrimSpace(in.Name) == "" {
		unmet = append(unmet, "Name is required")
	}
	if !utils.IsValidEmail(in.Email) {
		unmet = append(unmet, "A valid email is required")
	}
	if in.Password != in.ConfirmPassword {
		unmet = append(unmet, "Passwords do not match")
	}
	if reqs := utils.ValidatePassword(in.Password); !reqs.Valid() {
		for _, item := range reqs.Unmet() {
			unmet = append(unmet, "Password must contain "+item)
		}
	}

	return unmet
}
