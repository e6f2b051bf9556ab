package lattice

import (
	"errors"
	"fmt"
)

// Lattice errors. Match with errors.Is.
var (
	// ErrNotFound is matched by every LookupError.
	ErrNotFound = errors.New("not found")

	// ErrConfiguration is matched by every ConfigurationError.
	ErrConfiguration = errors.New("configuration error")
)

// LookupError reports a missing element or beam path.
type LookupError struct {
	// Name is the missing element. Empty when the beam path itself is missing.
	Name string

	// Path is the beam path the lookup was scoped to, if any.
	Path string
}

func (e *LookupError) Error() string {
	switch {
	case e.Name == "":
		return fmt.Sprintf("beam path %s does not exist", e.Path)
	case e.Path != "":
		return fmt.Sprintf("element %s does not exist along the beam path %s", e.Name, e.Path)
	default:
		return fmt.Sprintf("element %s does not exist anywhere in the lattice", e.Name)
	}
}

// Is matches ErrNotFound.
func (e *LookupError) Is(target error) bool {
	return target == ErrNotFound
}

// ConfigurationError reports malformed or inconsistent lattice definitions.
type ConfigurationError struct {
	Reason string
	Cause  error
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Reason, e.Cause)
	}
	return "configuration error: " + e.Reason
}

// Is matches ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// Unwrap returns the underlying cause.
func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

func configErrorf(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}
