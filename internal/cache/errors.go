package cache

import (
	"github.com/jmgilman/go/errors"
)

var (
	// ErrInvalidUnit is returned when a TTL string has no recognised unit.
	ErrInvalidUnit = errors.New(errors.CodeInvalidInput, "invalid TTL unit")

	// ErrInvalidAmount is returned when a TTL amount is not a non-negative integer
	// or the resulting duration does not fit in a time.Duration.
	ErrInvalidAmount = errors.New(errors.CodeInvalidInput, "invalid TTL amount")

	// ErrUnserializableParams is returned by the memoization helpers when the
	// function arguments cannot be encoded into a cache key.
	ErrUnserializableParams = errors.New(errors.CodeInvalidInput, "function parameters cannot be serialized")
)
