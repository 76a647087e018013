package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/safeshareapp/safeshare/internal/pkg/database"
	"github.com/safeshareapp/safeshare/internal/pkg/models"
)

// OTPRepo stores verification codes in Redis
type OTPRepo struct {
	cfg         *models.Config
	redisClient *database.RedisClient
}

// NewOTPRepo creates a new verification code repository instance
func NewOTPRepo(cfg *models.Config, redisClient *database.RedisClient) *OTPRepo {
	return &OTPRepo{
		cfg:         cfg,
		redisClient: redisClient,
	}
}

// UserRepo stores user accounts in PostgreSQL
type UserRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewUserRepo creates a new user repository instance
func NewUserRepo(cfg *models.Config, db *sqlx.DB) *UserRepo {
	return &UserRepo{
		cfg: cfg,
		db:  db,
	}
}

// SessionRepo stores refresh sessions in Redis
type SessionRepo struct {
	cfg         *models.Config
	redisClient *database.RedisClient
}

// NewSessionRepo creates a new refresh session repository instance
func NewSessionRepo(cfg *models.Config, redisClient *database.RedisClient) *SessionRepo {
	return &SessionRepo{
		cfg:         cfg,
		redisClient: redisClient,
	}
}
