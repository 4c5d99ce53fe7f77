// Package cache provides the Redis-backed short-lived storage used by the
// auth flow (verification codes) and the practice UI (session state
// snapshots).
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a key is absent or expired.
var ErrNotFound = errors.New("cache: not found")

// Cache wraps a Redis client with the key conventions this service uses.
type Cache struct {
	client *redis.Client
}

// Connect creates and pings a Redis client from a connection URL.
func Connect(ctx context.Context, url string) (*Cache, error) {
	if url == "" {
		return nil, fmt.Errorf("cache URL is empty")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid cache URL: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging cache: %w", err)
	}
	return &Cache{client: client}, nil
}

// Close shuts down the client.
func (c *Cache) Close() error {
	return c.client.Close()
}

// HealthCheck verifies the connection is alive.
func (c *Cache) HealthCheck(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// PutCode stores a verification code for an email address with a TTL.
// Issuing a new code replaces any outstanding one.
func (c *Cache) PutCode(ctx context.Context, email, code string, ttl time.Duration) error {
	if err := c.client.Set(ctx, codeKey(email), code, ttl).Err(); err != nil {
		return fmt.Errorf("storing verification code: %w", err)
	}
	return nil
}

// TakeCode retrieves and deletes the verification code for an email, so a
// code can be redeemed at most once.
func (c *Cache) TakeCode(ctx context.Context, email string) (string, error) {
	code, err := c.client.GetDel(ctx, codeKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading verification code: %w", err)
	}
	return code, nil
}

// PutState persists a user's practice-state snapshot blob. The blob is
// opaque here; the server layer owns its schema.
func (c *Cache) PutState(ctx context.Context, userID string, blob []byte) error {
	if err := c.client.Set(ctx, stateKey(userID), blob, 0).Err(); err != nil {
		return fmt.Errorf("storing state snapshot: %w", err)
	}
	return nil
}

// GetState returns a user's practice-state snapshot blob.
func (c *Cache) GetState(ctx context.Context, userID string) ([]byte, error) {
	blob, err := c.client.Get(ctx, stateKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading state snapshot: %w", err)
	}
	return blob, nil
}

func codeKey(email string) string {
	return "satprep:code:" + email
}

func stateKey(userID string) string {
	return "satprep:state:" + userID
}
