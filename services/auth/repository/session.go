package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/safeshareapp/safeshare/internal/pkg/constants"
	"github.com/safeshareapp/safeshare/services/auth"
)

func (r *SessionRepo) sessionTTL() time.Duration {
	return time.Duration(r.cfg.Session.RefreshTTLHours) * time.Hour
}

// CreateSession stores an opaque refresh token mapped to the user id
func (r *SessionRepo) CreateSession(ctx context.Context, userID uuid.UUID) (string, error) {
	token := uuid.NewString()
	key := fmt.Sprintf(constants.KeyAuthSession, token)

	if err := r.redisClient.Client.Set(ctx, key, userID.String(), r.sessionTTL()).Err(); err != nil {
		return "", fmt.Errorf("failed to create refresh session: %w", err)
	}

	return token, nil
}

// GetSession resolves a refresh token to its user id
func (r *SessionRepo) GetSession(ctx context.Context, token string) (uuid.UUID, error) {
	key := fmt.Sprintf(constants.KeyAuthSession, token)

	val, err := r.redisClient.Client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, auth.ErrSessionNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to get refresh session: %w", err)
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, fmt.Errorf("corrupt refresh session: %w", err)
	}

	return userID, nil
}

// DeleteSession revokes a refresh token
func (r *SessionRepo) DeleteSession(ctx context.Context, token string) error {
	key := fmt.Sprintf(constants.KeyAuthSession, token)

	if err := r.redisClient.Client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete refresh session: %w", err)
	}

	return nil
}
