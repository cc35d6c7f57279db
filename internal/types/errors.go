// Package types provides type definitions for structured data used throughout the resume-scorer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"errors"
	"fmt"
)

// Sentinel causes for caller misconfiguration
var (
	ErrUnknownMode           = errors.New("unknown scoring mode")
	ErrUnknownLevel          = errors.New("unknown experience level")
	ErrMissingJobDescription = errors.New("missing job description")
)

// UsageError reports caller misuse (bad mode, bad level, ATS mode without a job description).
// Data quality problems never produce a UsageError.
type UsageError struct {
	Message string
	Cause   error
}

func (e *UsageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("usage error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("usage error: %s", e.Message)
}

func (e *UsageError) Unwrap() error {
	return e.Cause
}

// IsUsageError reports whether err is (or wraps) a UsageError
func IsUsageError(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}
