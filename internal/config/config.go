// Package config loads the TOML configuration of the chash command.
//
// Example file:
//
//	[table]
//	initial-size = 8
//	growth-factor = 8
//	max-entries = 0
//	max-buckets = 16777216
//	hasher = "djb33x"
//
//	[log]
//	level = "info"
//	format = "console"
package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/theflywheel/chash"
	"github.com/theflywheel/chash/internal/logutil"
)

// Names accepted by table.hasher
const (
	HasherDJB33X = "djb33x"
	HasherXXHash = "xxhash"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// TableConfig mirrors the chash table options
type TableConfig struct {
	InitialSize  int    `toml:"initial-size"`
	GrowthFactor int    `toml:"growth-factor"`
	MaxEntries   int    `toml:"max-entries"`
	MaxBuckets   int    `toml:"max-buckets"`
	Hasher       string `toml:"hasher"`
}

// Config is the top-level layout of a chash TOML file
type Config struct {
	Table TableConfig       `toml:"table"`
	Log   logutil.LogConfig `toml:"log"`
}

// Default returns the settings used when no file is given
func Default() Config {
	return Config{
		Table: TableConfig{
			InitialSize:  8,
			GrowthFactor: chash.DefaultGrowthFactor,
			MaxBuckets:   chash.DefaultMaxBuckets,
			Hasher:       HasherDJB33X,
		},
		Log: logutil.DefaultConfig(),
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default values; unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown keys %v in %s: %w", undecoded, path, ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section against the values chash and zap accept.
// Errors wrap ErrInvalidConfig.
func (c Config) Validate() error {
	t := c.Table
	if t.InitialSize <= 0 {
		return fmt.Errorf("table.initial-size must be positive, got %d: %w", t.InitialSize, ErrInvalidConfig)
	}
	if t.GrowthFactor < 2 {
		return fmt.Errorf("table.growth-factor must be at least 2, got %d: %w", t.GrowthFactor, ErrInvalidConfig)
	}
	if t.MaxEntries < 0 || t.MaxBuckets < 0 {
		return fmt.Errorf("table limits must not be negative: %w", ErrInvalidConfig)
	}
	if _, err := hasherByName(t.Hasher); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalidConfig)
	}
	return nil
}

func hasherByName(name string) (chash.Hasher, error) {
	switch name {
	case "", HasherDJB33X:
		return chash.DJB33X, nil
	case HasherXXHash:
		return chash.XXHash, nil
	default:
		return nil, fmt.Errorf("unknown hasher %q: %w", name, ErrInvalidConfig)
	}
}

// HashFunc returns the configured hash function
func (c TableConfig) HashFunc() (chash.Hasher, error) {
	return hasherByName(c.Hasher)
}

// TableOptions converts the table section into chash options
func (c Config) TableOptions(logger *zap.Logger) ([]chash.Option, error) {
	h, err := c.Table.HashFunc()
	if err != nil {
		return nil, err
	}
	return []chash.Option{
		chash.WithHasher(h),
		chash.WithGrowthFactor(c.Table.GrowthFactor),
		chash.WithMaxEntries(c.Table.MaxEntries),
		chash.WithMaxBuckets(c.Table.MaxBuckets),
		chash.WithLogger(logger),
	}, nil
}
