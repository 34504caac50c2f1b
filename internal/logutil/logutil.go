// Package logutil builds zap loggers for the chash command line tools.
package logutil

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogConfig selects the level and encoding of a logger
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DefaultConfig logs info and above to stderr in console format
func DefaultConfig() LogConfig {
	return LogConfig{Level: "info", Format: "console"}
}

func (c LogConfig) getLevel() (zap.AtomicLevel, error) {
	if c.Level == "" {
		return zap.NewAtomicLevelAt(zap.InfoLevel), nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(c.Level))); err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}
	return zap.NewAtomicLevelAt(lvl), nil
}

func (c LogConfig) getEncoding() (string, error) {
	switch strings.ToLower(c.Format) {
	case "", "console":
		return "console", nil
	case "json":
		return "json", nil
	default:
		return "", fmt.Errorf("invalid log format %q", c.Format)
	}
}

// Validate reports whether the level and format are recognized
func (c LogConfig) Validate() error {
	if _, err := c.getLevel(); err != nil {
		return err
	}
	_, err := c.getEncoding()
	return err
}

// NewLogger builds a logger writing to stderr
func NewLogger(c LogConfig) (*zap.Logger, error) {
	level, err := c.getLevel()
	if err != nil {
		return nil, err
	}
	encoding, err := c.getEncoding()
	if err != nil {
		return nil, err
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if encoding == "console" {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	cfg := zap.Config{
		Level:            level,
		Encoding:         encoding,
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	return cfg.Build(zap.AddStacktrace(zapcore.FatalLevel))
}
