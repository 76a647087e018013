package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safeshareapp/safeshare/internal/pkg/models"
	"github.com/safeshareapp/safeshare/services/auth"
)

func TestSendOTP_Success(t *testing.T) {
	uc, mockOTP, _, _, mockGW := setupAuthUCTest(t)

	mockOTP.EXPECT().
		Issue(gomock.Any(), "jane@example.com").
		Return("123456", nil)

	mockGW.EXPECT().
		PublishOTPEmail(gomock.Any(), &models.OTPEmailEvent{
			Email:      "jane@example.com",
			Code:       "123456",
			Purpose:    models.OTPPurposeSignup,
			TTLSeconds: 600,
		}).
		Return(nil)

	err := uc.SendOTP(context.Background(), "jane@example.com", models.OTPPurposeSignup)
	assert.NoError(t, err)
}

func TestSendOTP_InvalidEmail(t *testing.T) {
	uc, _, _, _, _ := setupAuthUCTest(t)

	err := uc.SendOTP(context.Background(), "not-an-email", models.OTPPurposeSignup)
	assert.Error(t, err)
}

func TestSendOTP_PublishFailure(t *testing.T) {
	uc, mockOTP, _, _, mockGW := setupAuthUCTest(t)

	mockOTP.EXPECT().
		Issue(gomock.Any(), "jane@example.com").
		Return("123456", nil)

	mockGW.EXPECT().
		PublishOTPEmail(gomock.Any(), gomock.Any()).
		Return(errors.New("nats unavailable"))

	err := uc.SendOTP(context.Background(), "jane@example.com", models.OTPPurposeSignup)
	assert.Error(t, err)
}

func TestVerifyOTP(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		stored   bool
		verified bool
		repoErr  error
		want     bool
		wantErr  bool
	}{
		{
			name:     "correct code",
			code:     "123456",
			stored:   true,
			verified: true,
			want:     true,
		},
		{
			name:   "wrong code",
			code:   "654321",
			stored: true,
			want:   false,
		},
		{
			name:    "expired record collapses to false",
			code:    "123456",
			stored:  true,
			repoErr: auth.ErrOTPExpired,
			want:    false,
		},
		{
			name:    "exhausted record collapses to false",
			code:    "123456",
			stored:  true,
			repoErr: auth.ErrOTPExhausted,
			want:    false,
		},
		{
			name:    "missing record collapses to false",
			code:    "123456",
			stored:  true,
			repoErr: auth.ErrOTPNotFound,
			want:    false,
		},
		{
			name:    "infrastructure failure surfaces",
			code:    "123456",
			stored:  true,
			repoErr: errors.New("redis down"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, mockOTP, _, _, _ := setupAuthUCTest(t)

			mockOTP.EXPECT().
				Verify(gomock.Any(), "jane@example.com", tt.code).
				Return(tt.verified, tt.repoErr)

			got, err := uc.VerifyOTP(context.Background(), "jane@example.com", tt.code)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVerifyOTP_TrimsSubmittedCode(t *testing.T) {
	// A padded but otherwise correct code reaches the store trimmed
	uc, mockOTP, _, _, _ := setupAuthUCTest(t)

	mockOTP.EXPECT().
		Verify(gomock.Any(), "jane@example.com", "123456").
		Return(true, nil)

	verified, err := uc.VerifyOTP(context.Background(), "jane@example.com", " 123456 ")
	require.NoError(t, err)
	assert.True(t, verified)
}

func TestVerifyOTP_MalformedCodeSkipsStore(t *testing.T) {
	// Codes that are not six digits never reach the store
	uc, _, _, _, _ := setupAuthUCTest(t)

	for _, code := range []string{"", "12345", "1234567", "abcdef"} {
		verified, err := uc.VerifyOTP(context.Background(), "jane@example.com", code)
		require.NoError(t, err)
		assert.False(t, verified)
	}
}
