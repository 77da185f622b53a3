package ai

import "math/rand/v2"

// Difficulty 出牌策略强度
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

type options struct {
	difficulty Difficulty
	jitter     func() float64
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
	if o.difficulty == "" {
		o.difficulty = DifficultyNormal
	}
	if o.jitter == nil {
		o.jitter = rand.Float64
	}
}

type Option func(*options)

// WithDifficulty sets the play strength
func WithDifficulty(d Difficulty) Option {
	return func(o *options) {
		o.difficulty = d
	}
}

// WithJitter sets the randomness source, mainly for deterministic tests
func WithJitter(fn func() float64) Option {
	return func(o *options) {
		o.jitter = fn
	}
}
