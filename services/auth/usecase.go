package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/safeshareapp/safeshare/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/safeshareapp/safeshare/services/auth AuthUC

// AuthUC represents the auth usecase interface
type AuthUC interface {
	// account lookup and credentials
	CheckUserExists(ctx context.Context, email string) (models.ExistenceResult, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, string, error)
	SignUp(ctx context.Context, req *models.SignUpRequest) (*models.UserSummary, error)

	// handle OTP
	SendOTP(ctx context.Context, email string, purpose models.OTPPurpose) error
	VerifyOTP(ctx context.Context, email, code string) (bool, error)

	// refresh sessions
	Refresh(ctx context.Context, refreshToken string) (*models.LoginResponse, string, error)
	Logout(ctx context.Context, refreshToken string) error

	// authenticated profile
	Profile(ctx context.Context, userID uuid.UUID) (*models.UserSummary, error)
}
