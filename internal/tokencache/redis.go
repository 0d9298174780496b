package tokencache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "revoked:"

// Cache is a fast-path lookup for revoked tokens in front of the
// database ledger. Entries carry the token's remaining lifetime as TTL
// so Redis drops them on its own once the token would have expired
// anyway.
type Cache struct {
	client *redis.Client
}

func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Add marks the token revoked until expiresAt. Tokens already past their
// expiry are skipped; the embedded exp claim rejects them regardless.
func (c *Cache) Add(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return c.client.Set(ctx, key(token), 1, ttl).Err()
}

// Contains reports whether the token is cached as revoked. Errors are
// returned so the caller can fall through to the ledger.
func (c *Cache) Contains(ctx context.Context, token string) (bool, error) {
	err := c.client.Get(ctx, key(token)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// key hashes the token so raw JWTs never land in Redis.
func key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return keyPrefix + hex.EncodeToString(sum[:])
}
