package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"messagely/internal/model"
)

// DirectoryCache keeps the ordered user listing in Redis for a short TTL.
// Writers to the users table invalidate it; a stale miss only costs one
// database round trip.
type DirectoryCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewDirectoryCache(client *redisv9.Client, ttl time.Duration) *DirectoryCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &DirectoryCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *DirectoryCache) GetAll(ctx context.Context) ([]model.UserSummary, bool, error) {
	raw, err := c.client.Get(ctx, c.listKey()).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get directory failed: %w", err)
	}

	var users []model.UserSummary
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached directory failed: %w", err)
	}
	return users, true, nil
}

func (c *DirectoryCache) SetAll(ctx context.Context, users []model.UserSummary) error {
	payload, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("marshal directory cache failed: %w", err)
	}
	if err := c.client.Set(ctx, c.listKey(), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set directory failed: %w", err)
	}
	return nil
}

func (c *DirectoryCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.listKey()).Err(); err != nil {
		return fmt.Errorf("redis delete directory failed: %w", err)
	}
	return nil
}

func (c *DirectoryCache) listKey() string {
	return "users:directory"
}
