package bonsai

import (
	"errors"
	"fmt"
)

// Domain errors for tree construction.
var (
	// ErrScreenTooSmall indicates a screen that leaves no room past the margin.
	ErrScreenTooSmall = errors.New("bonsai: screen too small for margin")

	// ErrTrunkTooWide indicates a trunk width above MaxTrunkWidth.
	ErrTrunkTooWide = errors.New("bonsai: trunk width out of range")
)

// ConfigError wraps a construction error with the offending field.
type ConfigError struct {
	Field string
	Value any
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s (%s=%v)", e.Err, e.Field, e.Value)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
