package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/safeshareapp/safeshare/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestConfig() *models.Config {
	return &models.Config{
		JWT: models.JWTConfig{
			Secret:     "test-secret-key-for-jwt-signing",
			Expiration: 60, // 60 minutes
			Issuer:     "safeshare-test",
		},
	}
}

func TestGenerateToken(t *testing.T) {
	tests := []struct {
		name   string
		userID uuid.UUID
		email  string
		roles  []string
	}{
		{
			name:   "Valid token generation",
			userID: uuid.New(),
			email:  "alice@example.com",
			roles:  []string{"USER"},
		},
		{
			name:   "Multiple roles",
			userID: uuid.New(),
			email:  "admin@example.com",
			roles:  []string{"USER", "ADMIN"},
		},
		{
			name:   "Empty email still generates a token",
			userID: uuid.New(),
			email:  "",
			roles:  []string{"USER"},
		},
		{
			name:   "Zero UUID still generates a token",
			userID: uuid.UUID{},
			email:  "alice@example.com",
			roles:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := getTestConfig()
			tokenString, expiresAt, err := GenerateToken(tt.userID, tt.email, tt.roles, cfg)

			assert.NoError(t, err)
			assert.NotEmpty(t, tokenString)
			assert.Greater(t, expiresAt, time.Now().Unix())

			// Verify token structure
			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				return []byte(cfg.JWT.Secret), nil
			})
			require.NoError(t, err)
			require.True(t, token.Valid)

			claims, ok := token.Claims.(jwt.MapClaims)
			require.True(t, ok)

			userIDClaim, exists := claims["user_id"]
			assert.True(t, exists)
			assert.Equal(t, tt.userID.String(), userIDClaim)

			emailClaim, exists := claims["email"]
			assert.True(t, exists)
			assert.Equal(t, tt.email, emailClaim)

			issuerClaim, exists := claims["iss"]
			assert.True(t, exists)
			assert.Equal(t, cfg.JWT.Issuer, issuerClaim)
		})
	}
}

func TestValidateToken(t *testing.T) {
	cfg := getTestConfig()
	userID := uuid.New()

	tokenString, _, err := GenerateToken(userID, "alice@example.com", []string{"USER"}, cfg)
	require.NoError(t, err)

	t.Run("Valid token", func(t *testing.T) {
		claims, err := ValidateToken(tokenString, cfg.JWT.Secret)
		require.NoError(t, err)
		require.NotNil(t, claims)
		assert.Equal(t, userID.String(), (*claims)["user_id"])
		assert.Equal(t, "alice@example.com", (*claims)["email"])
	})

	t.Run("Wrong secret", func(t *testing.T) {
		claims, err := ValidateToken(tokenString, "wrong-secret")
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Malformed token", func(t *testing.T) {
		claims, err := ValidateToken("not-a-token", cfg.JWT.Secret)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Expired token", func(t *testing.T) {
		expiredCfg := getTestConfig()
		expiredCfg.JWT.Expiration = -1
		expired, _, err := GenerateToken(userID, "alice@example.com", []string{"USER"}, expiredCfg)
		require.NoError(t, err)

		claims, err := ValidateToken(expired, cfg.JWT.Secret)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})
}
