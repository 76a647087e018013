package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safeshareapp/safeshare/internal/pkg/constants"
	"github.com/safeshareapp/safeshare/internal/pkg/database"
	"github.com/safeshareapp/safeshare/internal/pkg/models"
	"github.com/safeshareapp/safeshare/services/auth"
)

// setupMiniredis creates a new miniredis server and returns a Redis client connected to it
func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return mr, client
}

func setupOTPRepoTest(t *testing.T) (*OTPRepo, *miniredis.Miniredis) {
	mr, client := setupMiniredis(t)

	redisClient := &database.RedisClient{
		Client: client,
	}

	cfg := &models.Config{
		OTP: models.OTPConfig{
			TTLSeconds:  600,
			MaxAttempts: 5,
		},
	}

	return NewOTPRepo(cfg, redisClient), mr
}

func TestIssue(t *testing.T) {
	repo, mr := setupOTPRepoTest(t)
	defer mr.Close()

	code, err := repo.Issue(context.Background(), "user@example.com")

	require.NoError(t, err)
	assert.Regexp(t, `^\d{6}$`, code)

	// Verify data was stored in Redis
	key := fmt.Sprintf(constants.KeyAuthOTP, "user@example.com")
	val, err := mr.Get(key)
	require.NoError(t, err)

	var record models.OTP
	err = json.Unmarshal([]byte(val), &record)
	require.NoError(t, err)
	assert.Equal(t, code, record.Code)
	assert.Equal(t, 0, record.Attempts)
	assert.Greater(t, record.ExpiresAt, time.Now().UnixMilli())

	// Verify TTL
	ttl := mr.TTL(key)
	assert.True(t, ttl > 0)
	assert.True(t, ttl <= 600*time.Second)
}

func TestIssue_NormalizesEmail(t *testing.T) {
	repo, mr := setupOTPRepoTest(t)
	defer mr.Close()

	_, err := repo.Issue(context.Background(), "  User@Example.COM ")
	require.NoError(t, err)

	key := fmt.Sprintf(constants.KeyAuthOTP, "user@example.com")
	assert.True(t, mr.Exists(key))
}

func TestIssue_RedisError(t *testing.T) {
	repo, mr := setupOTPRepoTest(t)

	// Force Redis to fail by closing the connection
	mr.Close()

	_, err := repo.Issue(context.Background(), "user@example.com")
	assert.Error(t, err)
}

func TestVerify_SingleUse(t *testing.T) {
	repo, mr := setupOTPRepoTest(t)
	defer mr.Close()

	ctx := context.Background()
	code, err := repo.Issue(ctx, "user@example.com")
	require.NoError(t, err)

	// First verification succeeds and consumes the record
	verified, err := repo.Verify(ctx, "user@example.com", code)
	require.NoError(t, err)
	assert.True(t, verified)

	key := fmt.Sprintf(constants.KeyAuthOTP, "user@example.com")
	assert.False(t, mr.Exists(key))

	// Replaying the same code fails
	verified, err = repo.Verify(ctx, "user@example.com", code)
	assert.False(t, verified)
	assert.ErrorIs(t, err, auth.ErrOTPNotFound)
}

func TestVerify_MismatchPersistsAttempt(t *testing.T) {
	repo, mr := setupOTPRepoTest(t)
	defer mr.Close()

	ctx := context.Background()
	code, err := repo.Issue(ctx, "user@example.com")
	require.NoError(t, err)

	verified, err := repo.Verify(ctx, "user@example.com", "000000")
	require.NoError(t, err)
	assert.False(t, verified)

	// The spent attempt survives in Redis
	key := fmt.Sprintf(constants.KeyAuthOTP, "user@example.com")
	val, err := mr.Get(key)
	require.NoError(t, err)

	var record models.OTP
	require.NoError(t, json.Unmarshal([]byte(val), &record))
	assert.Equal(t, 1, record.Attempts)

	// The right code still works afterwards
	verified, err = repo.Verify(ctx, "user@example.com", code)
	require.NoError(t, err)
	assert.True(t, verified)
}

func TestVerify_TrimsSubmittedCode(t *testing.T) {
	repo, mr := setupOTPRepoTest(t)
	defer mr.Close()

	ctx := context.Background()
	code, err := repo.Issue(ctx, "user@example.com")
	require.NoError(t, err)

	// Surrounding whitespace on the submitted code is not significant
	verified, err := repo.Verify(ctx, "user@example.com", " "+code+" ")
	require.NoError(t, err)
	assert.True(t, verified)

	key := fmt.Sprintf(constants.KeyAuthOTP, "user@example.com")
	assert.False(t, mr.Exists(key))
}

func TestVerify_Expired(t *testing.T) {
	repo, mr := setupOTPRepoTest(t)
	defer mr.Close()

	ctx := context.Background()
	code, err := repo.Issue(ctx, "user@example.com")
	require.NoError(t, err)

	// Record still present but logically expired
	key := fmt.Sprintf(constants.KeyAuthOTP, "user@example.com")
	record := models.OTP{
		Code:      code,
		ExpiresAt: time.Now().Add(-time.Minute).UnixMilli(),
		Attempts:  0,
	}
	payload, err := json.Marshal(record)
	require.NoError(t, err)
	require.NoError(t, mr.Set(key, string(payload)))

	verified, err := repo.Verify(ctx, "user@example.com", code)
	assert.False(t, verified)
	assert.ErrorIs(t, err, auth.ErrOTPExpired)

	// Expiry purges the record
	assert.False(t, mr.Exists(key))
}

func TestVerify_TTLElapsed(t *testing.T) {
	repo, mr := setupOTPRepoTest(t)
	defer mr.Close()

	ctx := context.Background()
	code, err := repo.Issue(ctx, "user@example.com")
	require.NoError(t, err)

	mr.FastForward(601 * time.Second)

	verified, err := repo.Verify(ctx, "user@example.com", code)
	assert.False(t, verified)
	assert.ErrorIs(t, err, auth.ErrOTPNotFound)
}

func TestVerify_AttemptExhaustion(t *testing.T) {
	repo, mr := setupOTPRepoTest(t)
	defer mr.Close()

	ctx := context.Background()
	code, err := repo.Issue(ctx, "user@example.com")
	require.NoError(t, err)

	// Burn the full attempt budget with wrong codes
	for i := 0; i < 5; i++ {
		verified, err := repo.Verify(ctx, "user@example.com", "000000")
		require.NoError(t, err)
		assert.False(t, verified)
	}

	// Even the right code is rejected once the budget is spent
	verified, err := repo.Verify(ctx, "user@example.com", code)
	assert.False(t, verified)
	assert.ErrorIs(t, err, auth.ErrOTPExhausted)

	// Exhaustion purges the record
	key := fmt.Sprintf(constants.KeyAuthOTP, "user@example.com")
	assert.False(t, mr.Exists(key))
}

func TestVerify_ResendInvalidatesPriorCode(t *testing.T) {
	repo, mr := setupOTPRepoTest(t)
	defer mr.Close()

	ctx := context.Background()
	first, err := repo.Issue(ctx, "user@example.com")
	require.NoError(t, err)

	var second string
	for {
		second, err = repo.Issue(ctx, "user@example.com")
		require.NoError(t, err)
		if second != first {
			break
		}
	}

	verified, err := repo.Verify(ctx, "user@example.com", first)
	require.NoError(t, err)
	assert.False(t, verified)

	verified, err = repo.Verify(ctx, "user@example.com", second)
	require.NoError(t, err)
	assert.True(t, verified)
}

func TestVerify_EmailNormalization(t *testing.T) {
	repo, mr := setupOTPRepoTest(t)
	defer mr.Close()

	ctx := context.Background()
	code, err := repo.Issue(ctx, "User@Example.COM")
	require.NoError(t, err)

	verified, err := repo.Verify(ctx, "  user@example.com  ", code)
	require.NoError(t, err)
	assert.True(t, verified)
}

func TestVerify_RedisError(t *testing.T) {
	repo, mr := setupOTPRepoTest(t)

	mr.Close()

	verified, err := repo.Verify(context.Background(), "user@example.com", "123456")
	assert.False(t, verified)
	assert.Error(t, err)
	assert.False(t, auth.IsOTPRejection(err))
}

func TestGenerateCode_Range(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		assert.Regexp(t, `^[1-9]\d{5}$`, code)
	}
}
