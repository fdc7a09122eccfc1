// internal/common/cache/cache.go

// Package cache provides the key-value cache used to short-circuit
// recommendation scoring. It is a side channel, never a source of truth.
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Cache is the get/set/delete-with-TTL contract shared by every backend.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// GetJSON decodes a cached JSON value into dst. A value that no longer
// decodes is reported as a miss.
func GetJSON(ctx context.Context, c Cache, key string, dst interface{}) (bool, error) {
	data, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, nil
	}
	return true, nil
}

// SetJSON encodes value as JSON and stores it.
func SetJSON(ctx context.Context, c Cache, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, ttl)
}
