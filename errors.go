package chash

import "errors"

var (
	// ErrAllocation is returned when the directory or an entry cannot be allocated
	// within the configured limits.
	ErrAllocation = errors.New("chash: allocation failed")
	// ErrInvalidArgument is returned for a non-positive size, a nil key or a bad option.
	ErrInvalidArgument = errors.New("chash: invalid argument")
	// ErrDestroyed is returned when a destroyed table is mutated.
	ErrDestroyed = errors.New("chash: table destroyed")
)
