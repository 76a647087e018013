package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/safeshareapp/safeshare/internal/pkg/models"
	"github.com/safeshareapp/safeshare/services/auth"
	"github.com/safeshareapp/safeshare/services/auth/mocks"
)

func testConfig() *models.Config {
	return &models.Config{
		JWT: models.JWTConfig{
			Secret:     "test-secret",
			Expiration: 60,
			Issuer:     "safeshare-test",
		},
		OTP: models.OTPConfig{
			TTLSeconds:  600,
			MaxAttempts: 5,
		},
		Session: models.SessionConfig{
			RefreshTTLHours: 168,
		},
	}
}

func setupAuthUCTest(t *testing.T) (*AuthUC, *mocks.MockOTPRepo, *mocks.MockUserRepo, *mocks.MockSessionRepo, *mocks.MockAuthGW) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockOTP := mocks.NewMockOTPRepo(ctrl)
	mockUsers := mocks.NewMockUserRepo(ctrl)
	mockSessions := mocks.NewMockSessionRepo(ctrl)
	mockGW := mocks.NewMockAuthGW(ctrl)

	uc := NewAuthUC(mockOTP, mockUsers, mockSessions, mockGW, testConfig())
	return uc, mockOTP, mockUsers, mockSessions, mockGW
}

func TestCheckUserExists(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		exists  bool
		repoErr error
		want    models.ExistenceResult
		wantErr bool
	}{
		{
			name:   "existing account",
			email:  "jane@example.com",
			exists: true,
			want:   models.UserExists,
		},
		{
			name:   "unknown account",
			email:  "new@example.com",
			exists: false,
			want:   models.UserNotFound,
		},
		{
			name:    "repository failure",
			email:   "jane@example.com",
			repoErr: errors.New("connection refused"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, mockUsers, _, _ := setupAuthUCTest(t)

			mockUsers.EXPECT().
				EmailExists(gomock.Any(), tt.email).
				Return(tt.exists, tt.repoErr)

			got, err := uc.CheckUserExists(context.Background(), tt.email)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.exists, got.Exists())
		})
	}
}

func TestCheckUserExists_InvalidEmail(t *testing.T) {
	uc, _, _, _, _ := setupAuthUCTest(t)

	_, err := uc.CheckUserExists(context.Background(), "not-an-email")
	assert.Error(t, err)
}

func TestLogin_Success(t *testing.T) {
	uc, _, mockUsers, mockSessions, _ := setupAuthUCTest(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("Sup3rSecret!"), bcrypt.MinCost)
	require.NoError(t, err)

	userID := uuid.New()
	mockUsers.EXPECT().
		GetUserByEmail(gomock.Any(), "jane@example.com").
		Return(&models.User{
			ID:           userID,
			Email:        "jane@example.com",
			PasswordHash: string(hash),
			Roles:        []string{"USER"},
		}, nil)

	mockSessions.EXPECT().
		CreateSession(gomock.Any(), userID).
		Return("refresh-token", nil)

	resp, refresh, err := uc.Login(context.Background(), &models.LoginRequest{
		Email:    "jane@example.com",
		Password: "Sup3rSecret!",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "refresh-token", refresh)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, _, mockUsers, _, _ := setupAuthUCTest(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("Sup3rSecret!"), bcrypt.MinCost)
	require.NoError(t, err)

	mockUsers.EXPECT().
		GetUserByEmail(gomock.Any(), "jane@example.com").
		Return(&models.User{PasswordHash: string(hash)}, nil)

	resp, _, err := uc.Login(context.Background(), &models.LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong",
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownAccount(t *testing.T) {
	uc, _, mockUsers, _, _ := setupAuthUCTest(t)

	mockUsers.EXPECT().
		GetUserByEmail(gomock.Any(), "missing@example.com").
		Return(nil, errors.New("user not found"))

	resp, _, err := uc.Login(context.Background(), &models.LoginRequest{
		Email:    "missing@example.com",
		Password: "whatever",
	})

	assert.Nil(t, resp)
	// Unknown accounts and bad passwords fail identically
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestSignUp_Success(t *testing.T) {
	uc, _, mockUsers, _, _ := setupAuthUCTest(t)

	mockUsers.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user *models.User) error {
			assert.Equal(t, "Jane Doe", user.Name)
			assert.Equal(t, "jane@example.com", user.Email)
			assert.Equal(t, []string{"USER"}, user.Roles)
			// The hash must validate against the submitted password
			assert.NoError(t, bcrypt.CompareHashAndPassword(
				[]byte(user.PasswordHash), []byte("Sup3rSecret!")))
			user.ID = uuid.New()
			return nil
		})

	summary, err := uc.SignUp(context.Background(), &models.SignUpRequest{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "Sup3rSecret!",
	})

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", summary.Name)
	assert.Equal(t, "jane@example.com", summary.Email)
	assert.Equal(t, []string{"USER"}, summary.Roles)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	uc, _, mockUsers, _, _ := setupAuthUCTest(t)

	mockUsers.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		Return(auth.ErrEmailTaken)

	summary, err := uc.SignUp(context.Background(), &models.SignUpRequest{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "Sup3rSecret!",
	})

	assert.Nil(t, summary)
	assert.ErrorIs(t, err, auth.ErrEmailTaken)
}

func TestProfile(t *testing.T) {
	uc, _, mockUsers, _, _ := setupAuthUCTest(t)

	userID := uuid.New()
	mockUsers.EXPECT().
		GetUserByID(gomock.Any(), userID).
		Return(&models.User{
			ID:    userID,
			Name:  "Jane Doe",
			Email: "jane@example.com",
			Roles: []string{"USER"},
		}, nil)

	summary, err := uc.Profile(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, userID.String(), summary.ID)
	assert.Equal(t, "Jane Doe", summary.Name)
}

func TestSignUp_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		req  *models.SignUpRequest
	}{
		{
			name: "missing name",
			req:  &models.SignUpRequest{Email: "jane@example.com", Password: "Sup3rSecret!"},
		},
		{
			name: "bad email",
			req:  &models.SignUpRequest{Name: "Jane", Email: "nope", Password: "Sup3rSecret!"},
		},
		{
			name: "weak password",
			req:  &models.SignUpRequest{Name: "Jane", Email: "jane@example.com", Password: "short"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No repository expectations: invalid input never reaches storage
			uc, _, _, _, _ := setupAuthUCTest(t)

			summary, err := uc.SignUp(context.Background(), tt.req)

			assert.Nil(t, summary)
			assert.Error(t, err)
		})
	}
}
