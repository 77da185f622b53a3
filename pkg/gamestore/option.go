package gamestore

import "time"

type options struct {
	prefix         string
	cacheSize      int
	cacheTTL       time.Duration
	lockTTL        time.Duration
	lockRetries    int
	lockRetryDelay time.Duration
}

// apply apply options
func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// setDefault default configuration
func (o *options) setDefault() {
	if o.prefix == "" {
		o.prefix = "guandan"
	}
	if o.cacheSize <= 0 {
		o.cacheSize = 4096
	}
	if o.cacheTTL <= 0 {
		o.cacheTTL = time.Minute * 10
	}
	if o.lockTTL <= 0 {
		o.lockTTL = time.Second * 3
	}
	if o.lockRetries <= 0 {
		o.lockRetries = 3
	}
	if o.lockRetryDelay <= 0 {
		o.lockRetryDelay = time.Millisecond * 100
	}
}

type Option func(*options)

// WithPrefix sets the redis key prefix
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithCacheSize sets the max cached games
func WithCacheSize(size int) Option {
	return func(o *options) {
		o.cacheSize = size
	}
}

// WithCacheTTL sets the cache entry lifetime
func WithCacheTTL(d time.Duration) Option {
	return func(o *options) {
		o.cacheTTL = d
	}
}

// WithLockTTL sets the game lock expiry
func WithLockTTL(d time.Duration) Option {
	return func(o *options) {
		o.lockTTL = d
	}
}

// WithLockRetries sets how many times acquiring a busy lock is retried
func WithLockRetries(n int) Option {
	return func(o *options) {
		o.lockRetries = n
	}
}

// WithLockRetryDelay sets the wait between lock retries
func WithLockRetryDelay(d time.Duration) Option {
	return func(o *options) {
		o.lockRetryDelay = d
	}
}
