package usecase

import (
	"context"
	"fmt"

	jwtpkg "github.com/safeshareapp/safeshare/internal/pkg/jwt"
	"github.com/safeshareapp/safeshare/internal/pkg/logger"
	"github.com/safeshareapp/safeshare/internal/pkg/models"
)

// Refresh exchanges a valid refresh token for a fresh access token. The old
// session is rotated out before the new one is handed back.
func (u *AuthUC) Refresh(ctx context.Context, refreshToken string) (*models.LoginResponse, string, error) {
	userID, err := u.sessionRepo.GetSession(ctx, refreshToken)
	if err != nil {
		return nil, "", err
	}

	user, err := u.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load session user: %w", err)
	}

	if err := u.sessionRepo.DeleteSession(ctx, refreshToken); err != nil {
		return nil, "", fmt.Errorf("failed to rotate refresh session: %w", err)
	}

	token, _, err := jwtpkg.GenerateToken(user.ID, user.Email, user.Roles, u.cfg)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	newRefreshToken, err := u.sessionRepo.CreateSession(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create refresh session: %w", err)
	}

	logger.Debug("Refresh session rotated",
		logger.String("user_id", user.ID.String()))

	return &models.LoginResponse{AccessToken: token}, newRefreshToken, nil
}

// Logout revokes the refresh session. A missing token is a no-op so logout
// stays idempotent.
func (u *AuthUC) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	if err := u.sessionRepo.DeleteSession(ctx, refreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh session: %w", err)
	}

	return nil
}
