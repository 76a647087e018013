package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	jwtpkg "github.com/safeshareapp/safeshare/internal/pkg/jwt"
	"github.com/safeshareapp/safeshare/internal/pkg/logger"
	"github.com/safeshareapp/safeshare/internal/pkg/models"
	"github.com/safeshareapp/safeshare/internal/utils"
	"github.com/safeshareapp/safeshare/services/auth"
)

// CheckUserExists reports whether an account is registered for the email
func (u *AuthUC) CheckUserExists(ctx context.Context, email string) (models.ExistenceResult, error) {
	if !utils.IsValidEmail(email) {
		return models.UserNotFound, fmt.Errorf("invalid email format")
	}

	exists, err := u.userRepo.EmailExists(ctx, email)
	if err != nil {
		return models.UserNotFound, fmt.Errorf("failed to check user existence: %w", err)
	}

	if exists {
		return models.UserExists, nil
	}
	return models.UserNotFound, nil
}

// Login verifies credentials and mints an access token plus a refresh
// session. The refresh token is returned separately so the handler can set
// it as an HttpOnly cookie.
func (u *AuthUC) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, string, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		// Credential failures stay indistinguishable from unknown accounts
		return nil, "", auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", auth.ErrInvalidCredentials
	}

	token, _, err := jwtpkg.GenerateToken(user.ID, user.Email, user.Roles, u.cfg)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	refreshToken, err := u.sessionRepo.CreateSession(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create refresh session: %w", err)
	}

	logger.Info("User logged in",
		logger.String("user_id", user.ID.String()),
		logger.String("email", utils.MaskEmail(user.Email)))

	return &models.LoginResponse{AccessToken: token}, refreshToken, nil
}

// SignUp validates the registration input, hashes the password and creates
// the account with the default USER role
func (u *AuthUC) SignUp(ctx context.Context, req *models.SignUpRequest) (*models.UserSummary, error) {
	if subErrors := validateSignUp(req); len(subErrors) > 0 {
		return nil, fmt.Errorf("invalid signup input: %s", strings.Join(subErrors, "; "))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		PasswordHash: string(hash),
		Roles:        []string{"USER"},
	}

	if err := u.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("User registered",
		logger.String("user_id", user.ID.String()),
		logger.String("email", utils.MaskEmail(user.Email)))

	return user.Summary(), nil
}

// Profile returns the account summary for an authenticated user
func (u *AuthUC) Profile(ctx context.Context, userID uuid.UUID) (*models.UserSummary, error) {
	user, err := u.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return user.Summary(), nil
}

func validateSignUp(req *models.SignUpRequest) []string {
	var subErrors []string

	if strings.TrimSpace(req.Name) == "" {
		subErrors = append(subErrors, "name is required")
	}
	if !utils.IsValidEmail(req.Email) {
		subErrors = append(subErrors, "invalid email format")
	}
	if reqs := utils.ValidatePassword(req.Password); !reqs.Valid() {
		subErrors = append(subErrors, reqs.Unmet()...)
	}

	return subErrors
}
