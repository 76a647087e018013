package authflow

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// accessTokenKey is the fixed slot the access token lives under
const accessTokenKey = "accessToken"

// TokenStore is a durable client-side key-value slot for the access token.
// With an empty path it degrades to in-memory storage.
type TokenStore struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// NewTokenStore opens the store at path, reading back any persisted values.
// An unreadable or corrupt file starts empty rather than failing; the next
// save rewrites it.
func NewTokenStore(path string) *TokenStore {
	s := &TokenStore{
		path:   path,
		values: make(map[string]string),
	}

	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			_ = json.Unmarshal(data, &s.values)
		}
	}

	return s
}

// DefaultTokenPath returns the conventional token location under the user
// config dir
func DefaultTokenPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "safeshare", "credentials.json"), nil
}

// AccessToken returns the persisted access token, empty when absent
func (s *TokenStore) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[accessTokenKey]
}

// SaveAccessToken persists the access token
func (s *TokenStore) SaveAccessToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[accessTokenKey] = token
	return s.flush()
}

// ClearAccessToken removes the persisted access token
func (s *TokenStore) ClearAccessToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, accessTokenKey)
	return s.flush()
}

func (s *TokenStore) flush() error {
	if s.path == "" {
		return nil
	}

	data, err := json.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("failed to marshal token store: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token store dir: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write token store: %w", err)
	}

	return nil
}
