package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safeshareapp/safeshare/internal/pkg/models"
	"github.com/safeshareapp/safeshare/services/auth"
)

func TestRefresh_RotatesSession(t *testing.T) {
	uc, _, mockUsers, mockSessions, _ := setupAuthUCTest(t)

	userID := uuid.New()

	mockSessions.EXPECT().
		GetSession(gomock.Any(), "old-token").
		Return(userID, nil)

	mockUsers.EXPECT().
		GetUserByID(gomock.Any(), userID).
		Return(&models.User{
			ID:    userID,
			Email: "jane@example.com",
			Roles: []string{"USER"},
		}, nil)

	mockSessions.EXPECT().
		DeleteSession(gomock.Any(), "old-token").
		Return(nil)

	mockSessions.EXPECT().
		CreateSession(gomock.Any(), userID).
		Return("new-token", nil)

	resp, refresh, err := uc.Refresh(context.Background(), "old-token")

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "new-token", refresh)
}

func TestRefresh_UnknownToken(t *testing.T) {
	uc, _, _, mockSessions, _ := setupAuthUCTest(t)

	mockSessions.EXPECT().
		GetSession(gomock.Any(), "stale-token").
		Return(uuid.Nil, auth.ErrSessionNotFound)

	resp, _, err := uc.Refresh(context.Background(), "stale-token")

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)
}

func TestRefresh_RotationFailure(t *testing.T) {
	uc, _, mockUsers, mockSessions, _ := setupAuthUCTest(t)

	userID := uuid.New()

	mockSessions.EXPECT().
		GetSession(gomock.Any(), "old-token").
		Return(userID, nil)

	mockUsers.EXPECT().
		GetUserByID(gomock.Any(), userID).
		Return(&models.User{ID: userID, Email: "jane@example.com"}, nil)

	mockSessions.EXPECT().
		DeleteSession(gomock.Any(), "old-token").
		Return(errors.New("redis down"))

	resp, _, err := uc.Refresh(context.Background(), "old-token")

	assert.Nil(t, resp)
	assert.Error(t, err)
}

func TestLogout(t *testing.T) {
	uc, _, _, mockSessions, _ := setupAuthUCTest(t)

	mockSessions.EXPECT().
		DeleteSession(gomock.Any(), "refresh-token").
		Return(nil)

	err := uc.Logout(context.Background(), "refresh-token")
	assert.NoError(t, err)
}

func TestLogout_EmptyToken(t *testing.T) {
	// No session expectation: a missing cookie is a silent no-op
	uc, _, _, _, _ := setupAuthUCTest(t)

	err := uc.Logout(context.Background(), "")
	assert.NoError(t, err)
}
