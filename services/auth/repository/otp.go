package repository

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/safeshareapp/safeshare/internal/pkg/constants"
	"github.com/safeshareapp/safeshare/internal/pkg/models"
	"github.com/safeshareapp/safeshare/internal/utils"
	"github.com/safeshareapp/safeshare/services/auth"
)

// maxTxRetries bounds optimistic retries when a concurrent verify
// invalidates the watched key
const maxTxRetries = 4

func (r *OTPRepo) key(email string) string {
	return fmt.Sprintf(constants.KeyAuthOTP, utils.NormalizeEmail(email))
}

func (r *OTPRepo) ttl() time.Duration {
	return time.Duration(r.cfg.OTP.TTLSeconds) * time.Second
}

// Issue generates a fresh 6-digit code for the email and stores it with a
// zeroed attempt counter. Any prior record for the email is replaced, so a
// resend invalidates the previous code.
func (r *OTPRepo) Issue(ctx context.Context, email string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}

	ttl := r.ttl()
	record := models.OTP{
		Code:      code,
		ExpiresAt: time.Now().Add(ttl).UnixMilli(),
		Attempts:  0,
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("failed to marshal verification record: %w", err)
	}

	if err := r.redisClient.Client.Set(ctx, r.key(email), payload, ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store verification code: %w", err)
	}

	return code, nil
}

// Verify consumes one attempt against the stored code for the email. The
// submitted code is whitespace-trimmed before comparison. The whole
// check/increment/compare/delete sequence runs inside a WATCH transaction
// so the attempt cap holds under concurrent verifies.
//
// Order of checks: missing record, expiry (purges the record), attempt
// budget spent at entry (purges the record), then increment-and-persist the
// attempt counter BEFORE comparing. A match deletes the record and returns
// true; a mismatch leaves the spent attempt persisted and returns false.
func (r *OTPRepo) Verify(ctx context.Context, email, code string) (bool, error) {
	key := r.key(email)
	code = strings.TrimSpace(code)

	for i := 0; i < maxTxRetries; i++ {
		var verified bool
		var reason error

		err := r.redisClient.Client.Watch(ctx, func(tx *redis.Tx) error {
			data, err := tx.Get(ctx, key).Bytes()
			if err != nil {
				if errors.Is(err, redis.Nil) {
					reason = auth.ErrOTPNotFound
					return nil
				}
				return err
			}

			var record models.OTP
			if err := json.Unmarshal(data, &record); err != nil {
				return fmt.Errorf("failed to unmarshal verification record: %w", err)
			}

			if time.Now().UnixMilli() > record.ExpiresAt {
				if err := purge(ctx, tx, key); err != nil {
					return err
				}
				reason = auth.ErrOTPExpired
				return nil
			}

			if record.Attempts >= r.cfg.OTP.MaxAttempts {
				if err := purge(ctx, tx, key); err != nil {
					return err
				}
				reason = auth.ErrOTPExhausted
				return nil
			}

			record.Attempts++
			match := subtle.ConstantTimeCompare([]byte(record.Code), []byte(code)) == 1

			payload, err := json.Marshal(record)
			if err != nil {
				return fmt.Errorf("failed to marshal verification record: %w", err)
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				if match {
					pipe.Del(ctx, key)
				} else {
					pipe.Set(ctx, key, payload, redis.KeepTTL)
				}
				return nil
			})
			if err != nil {
				return err
			}

			verified = match
			return nil
		}, key)

		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("failed to verify code: %w", err)
		}
		if reason != nil {
			return false, reason
		}
		return verified, nil
	}

	return false, errors.New("verification transaction retries exhausted")
}

func purge(ctx context.Context, tx *redis.Tx, key string) error {
	_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		return nil
	})
	return err
}

// generateCode returns a uniformly distributed 6-digit numeric code
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
