package cache

import "errors"

// ErrCacheMiss is returned by helpers that treat a miss as an error rather
// than a boolean. Cache.Get itself reports misses via its second return.
var ErrCacheMiss = errors.New("cache miss")
