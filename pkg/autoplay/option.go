package autoplay

import (
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/play/guandan/pkg/ai"
	"github.com/play/guandan/pkg/gamestore"
)

type options struct {
	difficulty  ai.Difficulty
	jitter      func() float64
	maxAttempts int
	backoff     time.Duration
	maxActions  int
	locker      *gamestore.GameLocker
}

// apply apply options
func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// setDefault default configuration, falls back to viper keys then built-ins
func (o *options) setDefault() {
	if o.difficulty == "" {
		o.difficulty = ai.Difficulty(cast.ToString(viper.Get("autoplay.difficulty")))
	}
	if o.difficulty == "" {
		o.difficulty = ai.DifficultyNormal
	}
	if o.maxAttempts <= 0 {
		o.maxAttempts = viper.GetInt("autoplay.max_attempts")
	}
	if o.maxAttempts <= 0 {
		o.maxAttempts = 3
	}
	if o.backoff <= 0 {
		o.backoff = viper.GetDuration("autoplay.backoff")
	}
	if o.backoff <= 0 {
		o.backoff = 10 * time.Millisecond
	}
	if o.maxActions <= 0 {
		o.maxActions = viper.GetInt("autoplay.max_actions")
	}
	if o.maxActions <= 0 {
		o.maxActions = 2000
	}
}

type Option func(*options)

// WithDifficulty sets the engine strength for all seats
func WithDifficulty(d ai.Difficulty) Option {
	return func(o *options) {
		o.difficulty = d
	}
}

// WithJitter sets the engine randomness source, mainly for deterministic tests
func WithJitter(fn func() float64) Option {
	return func(o *options) {
		o.jitter = fn
	}
}

// WithMaxAttempts sets how many times a failed action is retried before falling back
func WithMaxAttempts(n int) Option {
	return func(o *options) {
		o.maxAttempts = n
	}
}

// WithBackoff sets the wait between retries
func WithBackoff(d time.Duration) Option {
	return func(o *options) {
		o.backoff = d
	}
}

// WithMaxActions sets the per-round action budget
func WithMaxActions(n int) Option {
	return func(o *options) {
		o.maxActions = n
	}
}

// WithLocker serializes steps per game across instances sharing one store
func WithLocker(locker *gamestore.GameLocker) Option {
	return func(o *options) {
		o.locker = locker
	}
}
