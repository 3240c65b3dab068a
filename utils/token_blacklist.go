package utils

import (
	"context"
	"sync"
	"time"
)

var (
	blacklist   = map[string]time.Time{}
	blacklistMu sync.RWMutex
)

const blacklistPrefix = "jwt:blacklist:"

// RevokeToken blacklists a token id until its natural expiration to support logout.
func RevokeToken(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		return rc.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
	}
	blacklistMu.Lock()
	blacklist[jti] = expiresAt
	blacklistMu.Unlock()
	return nil
}

// IsTokenRevoked checks if a token id was revoked before natural expiration.
func IsTokenRevoked(ctx context.Context, jti string) bool {
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		n, err := rc.Exists(ctx, blacklistPrefix+jti).Result()
		if err == nil {
			return n > 0
		}
		// fail open on Redis errors
		if Sugar != nil {
			Sugar.Warnf("token revocation lookup failed: %v", err)
		}
		return false
	}

	blacklistMu.RLock()
	expiresAt, ok := blacklist[jti]
	blacklistMu.RUnlock()
	if !ok {
		return false
	}
	if time.Now().After(expiresAt) {
		blacklistMu.Lock()
		delete(blacklist, jti)
		blacklistMu.Unlock()
		return false
	}
	return true
}
