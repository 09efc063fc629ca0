package accesstoken

import (
	"sync"
	"time"
)

// RevokedCache remembers revoked token ids until their expiry.
type RevokedCache struct {
	revoked map[string]time.Time
	mu      sync.RWMutex
}

func NewRevokedCache() *RevokedCache {
	return &RevokedCache{
		revoked: make(map[string]time.Time),
	}
}

func (c *RevokedCache) Add(jti string, exp time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleanup()
	c.revoked[jti] = exp
}

func (c *RevokedCache) IsRevoked(jti string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, exists := c.revoked[jti]
	return exists
}

// cleanup drops entries whose tokens have expired anyway. Caller holds the lock.
func (c *RevokedCache) cleanup() {
	now := NowTimeFunc()
	for jti, exp := range c.revoked {
		if now.After(exp) {
			delete(c.revoked, jti)
		}
	}
}
