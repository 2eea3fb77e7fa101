package cache

import "context"

// NullCache always misses and discards writes. It is the cache used
// when caching is disabled (config.Env.CacheKind == "none"), so callers
// never need a nil check.
type NullCache struct{}

func (NullCache) Get(context.Context, Key) ([]Entry, bool, error) { return nil, false, nil }
func (NullCache) Put(context.Context, Key, []Entry) error         { return nil }
