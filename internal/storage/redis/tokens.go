package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"job-tracker-api/internal/storage"

	goredis "github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "revoked_token:"

// TokenStore records revoked session tokens until they would have expired anyway.
type TokenStore struct {
	client *goredis.Client
}

// NewTokenStore creates a TokenStore backed by client.
func NewTokenStore(client *goredis.Client) *TokenStore {
	return &TokenStore{client: client}
}

var _ storage.TokenRevocationStore = (*TokenStore)(nil)

func (s *TokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := s.client.Get(ctx, revokedKeyPrefix+tokenID).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, goredis.Nil):
		return false, nil
	default:
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
}
