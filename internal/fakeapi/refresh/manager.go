// Package refresh issues and validates the fake API's refresh tokens.
package refresh

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/jrsteele09/go-internship-client/internal/config"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Manager handles refresh token creation and lookup.
type Manager struct {
	repo   Repo
	config config.FakeAPIConfig
}

func NewManager(repo Repo, cfg config.FakeAPIConfig) *Manager {
	return &Manager{
		repo:   repo,
		config: cfg,
	}
}

// Create issues a new refresh token for userID, replacing any previous one.
func (m *Manager) Create(userID string) (string, error) {
	if existing, err := m.repo.GetByUserID(userID); err == nil && existing != nil {
		if err := m.repo.Delete(existing.Token); err != nil {
			return "", fmt.Errorf("failed to delete existing refresh token: %w", err)
		}
	}

	tokenBytes := make([]byte, m.config.GetRefreshTokenLength())
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	tokenStr := hex.EncodeToString(tokenBytes)
	if err := m.repo.Upsert(&StoredRefreshToken{
		Token:  tokenStr,
		UserID: userID,
		Iat:    NowTimeFunc(),
	}); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}
	return tokenStr, nil
}

func (m *Manager) Get(token string) (*StoredRefreshToken, error) {
	return m.repo.Get(token)
}

// RevokeUser deletes the refresh token held by userID, if any.
func (m *Manager) RevokeUser(userID string) {
	if existing, err := m.repo.GetByUserID(userID); err == nil {
		_ = m.repo.Delete(existing.Token)
	}
}

// RevokeAll deletes every refresh token and returns how many there were.
func (m *Manager) RevokeAll() int {
	return m.repo.DeleteAll()
}
