package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safeshareapp/safeshare/internal/pkg/constants"
	"github.com/safeshareapp/safeshare/internal/pkg/database"
	"github.com/safeshareapp/safeshare/internal/pkg/models"
	"github.com/safeshareapp/safeshare/services/auth"
)

func setupSessionRepoTest(t *testing.T) (*SessionRepo, *miniredis.Miniredis) {
	mr, client := setupMiniredis(t)

	cfg := &models.Config{
		Session: models.SessionConfig{
			RefreshTTLHours: 168,
		},
	}

	repo := NewSessionRepo(cfg, &database.RedisClient{Client: client})
	return repo, mr
}

func TestCreateSession(t *testing.T) {
	repo, mr := setupSessionRepoTest(t)
	defer mr.Close()

	userID := uuid.New()
	token, err := repo.CreateSession(context.Background(), userID)

	require.NoError(t, err)
	assert.NotEmpty(t, token)

	key := fmt.Sprintf(constants.KeyAuthSession, token)
	val, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), val)

	ttl := mr.TTL(key)
	assert.True(t, ttl > 0)
	assert.True(t, ttl <= 168*time.Hour)
}

func TestGetSession(t *testing.T) {
	repo, mr := setupSessionRepoTest(t)
	defer mr.Close()

	ctx := context.Background()
	userID := uuid.New()
	token, err := repo.CreateSession(ctx, userID)
	require.NoError(t, err)

	got, err := repo.GetSession(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestGetSession_NotFound(t *testing.T) {
	repo, mr := setupSessionRepoTest(t)
	defer mr.Close()

	_, err := repo.GetSession(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)
}

func TestDeleteSession(t *testing.T) {
	repo, mr := setupSessionRepoTest(t)
	defer mr.Close()

	ctx := context.Background()
	token, err := repo.CreateSession(ctx, uuid.New())
	require.NoError(t, err)

	require.NoError(t, repo.DeleteSession(ctx, token))

	_, err = repo.GetSession(ctx, token)
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)
}
