package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/safeshareapp/safeshare/internal/pkg/logger"
	"github.com/safeshareapp/safeshare/internal/pkg/models"
	"github.com/safeshareapp/safeshare/internal/utils"
	"github.com/safeshareapp/safeshare/services/auth"
)

// SendOTP issues a verification code for the email and hands it to the mail
// gateway. A failed publish fails the request; the stored record is left in
// place since the next send replaces it.
func (u *AuthUC) SendOTP(ctx context.Context, email string, purpose models.OTPPurpose) error {
	if !utils.IsValidEmail(email) {
		return fmt.Errorf("invalid email format")
	}

	code, err := u.otpRepo.Issue(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to issue verification code: %w", err)
	}

	event := &models.OTPEmailEvent{
		Email:      utils.NormalizeEmail(email),
		Code:       code,
		Purpose:    purpose,
		TTLSeconds: u.cfg.OTP.TTLSeconds,
	}

	if err := u.authGW.PublishOTPEmail(ctx, event); err != nil {
		return fmt.Errorf("failed to dispatch verification code: %w", err)
	}

	logger.Info("Verification code issued",
		logger.String("email", utils.MaskEmail(email)),
		logger.String("purpose", string(purpose)))

	return nil
}

// VerifyOTP checks a user-entered code. Surrounding whitespace is forgiven;
// reject reasons collapse into the boolean result and only infrastructure
// failures surface as errors.
func (u *AuthUC) VerifyOTP(ctx context.Context, email, code string) (bool, error) {
	code = strings.TrimSpace(code)
	if !utils.IsValidOTP(code) {
		return false, nil
	}

	verified, err := u.otpRepo.Verify(ctx, email, code)
	if err != nil {
		if auth.IsOTPRejection(err) {
			logger.Info("Verification code rejected",
				logger.String("email", utils.MaskEmail(email)),
				logger.String("reason", err.Error()))
			return false, nil
		}
		return false, fmt.Errorf("failed to verify code: %w", err)
	}

	return verified, nil
}
