package chash

import (
	"fmt"

	"go.uber.org/zap"
)

const (
	// DefaultGrowthFactor is the directory multiplier applied on a chain collision.
	DefaultGrowthFactor = 8
	// DefaultMaxBuckets caps the directory; growth past it is skipped.
	DefaultMaxBuckets = 1 << 24
)

type options struct {
	hasher       Hasher
	growthFactor int
	maxEntries   int
	maxBuckets   int
	logger       *zap.Logger
}

func defaultOptions() options {
	return options{
		hasher:       DJB33X,
		growthFactor: DefaultGrowthFactor,
		maxBuckets:   DefaultMaxBuckets,
		logger:       zap.NewNop(),
	}
}

// Option configures a Table.
type Option func(*options)

// WithHasher replaces the default DJB33X hash.
func WithHasher(h Hasher) Option {
	return func(o *options) {
		o.hasher = h
	}
}

// WithGrowthFactor sets how many times larger the directory becomes when an
// insert lands in a non-empty chain. It must be at least 2.
func WithGrowthFactor(factor int) Option {
	return func(o *options) {
		o.growthFactor = factor
	}
}

// WithMaxEntries limits the number of live entries. Inserting a new key
// beyond the limit fails with ErrAllocation. Zero means no limit.
func WithMaxEntries(n int) Option {
	return func(o *options) {
		o.maxEntries = n
	}
}

// WithMaxBuckets limits the directory size. New fails with ErrAllocation if
// the initial size exceeds it, and growth beyond it is silently skipped.
// Zero restores DefaultMaxBuckets.
func WithMaxBuckets(n int) Option {
	return func(o *options) {
		if n == 0 {
			n = DefaultMaxBuckets
		}
		o.maxBuckets = n
	}
}

// WithLogger sets the logger used for resize diagnostics.
// If nil is passed, logging is disabled.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = zap.NewNop()
		}
		o.logger = l
	}
}

func (o *options) validate() error {
	switch {
	case o.hasher == nil:
		return fmt.Errorf("nil hasher: %w", ErrInvalidArgument)
	case o.growthFactor < 2:
		return fmt.Errorf("growth factor %d: %w", o.growthFactor, ErrInvalidArgument)
	case o.maxEntries < 0:
		return fmt.Errorf("max entries %d: %w", o.maxEntries, ErrInvalidArgument)
	case o.maxBuckets < 0:
		return fmt.Errorf("max buckets %d: %w", o.maxBuckets, ErrInvalidArgument)
	}
	return nil
}
