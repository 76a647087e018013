package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/safeshareapp/safeshare/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/safeshareapp/safeshare/services/auth OTPRepo,UserRepo,SessionRepo

// OTPRepo defines the verification code store interface
type OTPRepo interface {
	// Issue generates a fresh code for the email, replacing any prior record,
	// and returns the code for dispatch
	Issue(ctx context.Context, email string) (string, error)
	// Verify consumes one attempt against the stored code. It reports false
	// with a reason error when no record exists, the record expired, or the
	// attempt budget is spent; a matching code deletes the record
	Verify(ctx context.Context, email, code string) (bool, error)
}

// UserRepo defines the user repository interface
type UserRepo interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// SessionRepo defines the refresh session store interface
type SessionRepo interface {
	CreateSession(ctx context.Context, userID uuid.UUID) (string, error)
	GetSession(ctx context.Context, token string) (uuid.UUID, error)
	DeleteSession(ctx context.Context, token string) error
}
