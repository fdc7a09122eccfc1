// internal/common/cache/ristretto.go
package cache

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// MemoryCache is the in-process L1, bounded by total value size in bytes.
type MemoryCache struct {
	c *ristretto.Cache[string, []byte]
}

func NewMemoryCache(maxCostBytes int64) (*MemoryCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: maxCostBytes / 100 * 10,
		MaxCost:     maxCostBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &MemoryCache{c: c}, nil
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	val, found := m.c.Get(key)
	if !found {
		return nil, false, nil
	}
	return val, true, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.c.SetWithTTL(key, value, int64(len(value)), ttl)
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.c.Del(key)
	return nil
}

// Wait blocks until buffered writes are applied.
func (m *MemoryCache) Wait() {
	m.c.Wait()
}

func (m *MemoryCache) Close() {
	m.c.Close()
}
