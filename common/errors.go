// Package common provides shared constants, types, and utilities
// used across the GhostCAT application.
package common

import "errors"

// Sentinel errors for daemon and device operations.
// These can be checked with errors.Is() for proper error handling.
var (
	// Daemon errors.
	ErrDaemonUnavailable = errors.New("ghostcatd is not available")
	ErrVersionMismatch   = errors.New("ghostcatd API version mismatch")
	ErrTimeout           = errors.New("operation timed out")

	// Device errors.
	ErrDeviceNotFound     = errors.New("device not found")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrResolutionNotFound = errors.New("resolution not found")
	ErrCommitFailed       = errors.New("failed to commit changes to device")

	// Configuration errors.
	ErrConfigLoad = errors.New("failed to load configuration")
	ErrConfigSave = errors.New("failed to save configuration")

	// Terminal errors.
	ErrNotTerminal = errors.New("standard output is not a terminal")
)

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}
