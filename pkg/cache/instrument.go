package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/galdraw/pkg/observability"
)

// instrumented reports cache traffic to [observability.Cache].
type instrumented struct {
	Cache
}

// Instrument wraps c so that every Get reports a hit or miss and every Set
// reports its size. The key type passed to the hooks is the key prefix
// ("layout", "artifact").
func Instrument(c Cache) Cache {
	if c == nil {
		return nil
	}
	if _, ok := c.(instrumented); ok {
		return c
	}
	return instrumented{Cache: c}
}

func (c instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.Cache.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, keyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, keyType(key))
		}
	}
	return data, hit, err
}

func (c instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.Cache.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	return nil
}

// keyType returns the segment before the hash, ignoring any scope prefix.
func keyType(key string) string {
	i := strings.LastIndex(key, ":")
	if i < 0 {
		return "unknown"
	}
	head := key[:i]
	if j := strings.LastIndex(head, ":"); j >= 0 {
		head = head[j+1:]
	}
	return head
}
