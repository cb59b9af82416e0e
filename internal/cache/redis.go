// Package cache provides the Redis-backed role cache.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/sports-academy/internal/model"
	"github.com/go-redis/redis/v8"
)

const keyPrefix = "sports-academy:role:"

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// RoleCache stores resolved roles with a TTL.
type RoleCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRoleCache constructs a RoleCache.
func NewRoleCache(client redis.Cmdable, ttl time.Duration) *RoleCache {
	return &RoleCache{client: client, ttl: ttl}
}

// Get returns the cached role and whether it was present.
func (c *RoleCache) Get(ctx context.Context, email string) (model.Role, bool, error) {
	v, err := c.client.Get(ctx, keyPrefix+email).Result()
	if errors.Is(err, redis.Nil) {
		return model.RoleUnset, false, nil
	}
	if err != nil {
		return model.RoleUnset, false, fmt.Errorf("get cached role: %w", err)
	}
	role, err := model.ParseRole(v)
	if err != nil {
		return model.RoleUnset, false, nil
	}
	return role, true, nil
}

// Set stores role for email.
func (c *RoleCache) Set(ctx context.Context, email string, role model.Role) error {
	if err := c.client.Set(ctx, keyPrefix+email, role.String(), c.ttl).Err(); err != nil {
		return fmt.Errorf("set cached role: %w", err)
	}
	return nil
}

// Forget removes the cached role for email.
func (c *RoleCache) Forget(ctx context.Context, email string) error {
	if err := c.client.Del(ctx, keyPrefix+email).Err(); err != nil {
		return fmt.Errorf("delete cached role: %w", err)
	}
	return nil
}
