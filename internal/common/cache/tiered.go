// internal/common/cache/tiered.go
package cache

import (
	"context"
	"time"
)

// Tiered checks L1 then L2, backfilling L1 on an L2 hit. Writes and deletes
// go to both levels.
type Tiered struct {
	l1       Cache
	l2       Cache
	l1Expire time.Duration
}

func NewTiered(l1, l2 Cache, l1Expire time.Duration) *Tiered {
	return &Tiered{l1: l1, l2: l2, l1Expire: l1Expire}
}

func (t *Tiered) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, found, err := t.l1.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if found {
		return val, true, nil
	}

	val, found, err = t.l2.Get(ctx, key)
	if err != nil || !found {
		return nil, false, err
	}

	_ = t.l1.Set(ctx, key, val, t.l1Expire)
	return val, true, nil
}

func (t *Tiered) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	l1TTL := ttl
	if t.l1Expire > 0 && t.l1Expire < ttl {
		l1TTL = t.l1Expire
	}
	if err := t.l1.Set(ctx, key, value, l1TTL); err != nil {
		return err
	}
	return t.l2.Set(ctx, key, value, ttl)
}

func (t *Tiered) Delete(ctx context.Context, key string) error {
	if err := t.l1.Delete(ctx, key); err != nil {
		return err
	}
	return t.l2.Delete(ctx, key)
}
