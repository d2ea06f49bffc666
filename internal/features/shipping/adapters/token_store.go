package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shipping-gateway/internal/core/cache"
	"shipping-gateway/internal/features/shipping/domain"
)

const tokenKey = "shiprocket:token"

// CacheTokenStore keeps the carrier token in a core cache, so replicas
// sharing Redis share one login.
type CacheTokenStore struct {
	cache cache.Cache
	now   func() time.Time
}

// NewCacheTokenStore creates a TokenStore backed by c.
func NewCacheTokenStore(c cache.Cache) *CacheTokenStore {
	return &CacheTokenStore{cache: c, now: time.Now}
}

// Load returns the stored token. A missing key is not an error.
func (s *CacheTokenStore) Load(ctx context.Context) (domain.AuthToken, bool, error) {
	raw, err := s.cache.Get(ctx, tokenKey)
	if err != nil {
		if errors.Is(err, cache.ErrKeyNotFound) {
			return domain.AuthToken{}, false, nil
		}
		return domain.AuthToken{}, false, fmt.Errorf("failed to load token: %w", err)
	}

	var tok domain.AuthToken
	if err := json.Unmarshal(raw, &tok); err != nil {
		return domain.AuthToken{}, false, fmt.Errorf("failed to decode stored token: %w", err)
	}
	return tok, true, nil
}

// Save stores tok until it expires. Already expired tokens clear the store.
func (s *CacheTokenStore) Save(ctx context.Context, tok domain.AuthToken) error {
	ttl := tok.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return s.Clear(ctx)
	}

	raw, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	if err := s.cache.Set(ctx, tokenKey, raw, ttl); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// Clear forgets the token.
func (s *CacheTokenStore) Clear(ctx context.Context) error {
	if err := s.cache.Delete(ctx, tokenKey); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}
