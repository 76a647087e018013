package usecase

import (
	"github.com/safeshareapp/safeshare/internal/pkg/models"
	"github.com/safeshareapp/safeshare/services/auth"
)

type AuthUC struct {
	otpRepo     auth.OTPRepo
	userRepo    auth.UserRepo
	sessionRepo auth.SessionRepo
	authGW      auth.AuthGW
	cfg         *models.Config
}

// NewAuthUC creates a new auth usecase instance
func NewAuthUC(
	otpRepo auth.OTPRepo,
	userRepo auth.UserRepo,
	sessionRepo auth.SessionRepo,
	authGW auth.AuthGW,
	cfg *models.Config,
) *AuthUC {
	return &AuthUC{
		otpRepo:     otpRepo,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		authGW:      authGW,
		cfg:         cfg,
	}
}
