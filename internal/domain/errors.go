package domain

import (
	"errors"
	"strconv"
)

// Domain errors.
var (
	// ErrURLRequired is returned when a request carries no URL.
	ErrURLRequired = errors.New("URL is required")

	// ErrInvalidURL is returned when the URL does not look like http(s)://...
	ErrInvalidURL = errors.New("Invalid URL format")

	// ErrToolNotFound is returned when the downloader executable cannot be started.
	ErrToolNotFound = errors.New("downloader tool not found")

	// ErrToolFailed is returned when the downloader exits with a non-zero status.
	ErrToolFailed = errors.New("downloader tool failed")

	// ErrToolTimeout is returned when the downloader exceeds its deadline.
	ErrToolTimeout = errors.New("downloader tool timed out")

	// ErrParseFailed is returned when the downloader output is not valid JSON.
	ErrParseFailed = errors.New("failed to parse downloader output")

	// ErrStorageFull is returned when there is insufficient storage space.
	ErrStorageFull = errors.New("insufficient storage space")
)

// ToolError wraps a failed downloader invocation.
type ToolError struct {
	Op       string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ToolError) Error() string {
	msg := e.Op + ": " + e.Err.Error()
	if e.ExitCode > 0 {
		msg += " (exit " + strconv.Itoa(e.ExitCode) + ")"
	}
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// NewToolError creates a new ToolError.
func NewToolError(op string, exitCode int, stderr string, err error) *ToolError {
	return &ToolError{
		Op:       op,
		ExitCode: exitCode,
		Stderr:   stderr,
		Err:      err,
	}
}

// ParseError wraps a failure to decode downloader output.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return ErrParseFailed.Error()
	}
	return ErrParseFailed.Error() + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	if e.Err == nil {
		return ErrParseFailed
	}
	return e.Err
}

// Is reports ErrParseFailed as matching any ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParseFailed
}

// IsValidationError reports whether err is an input validation failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrURLRequired) || errors.Is(err, ErrInvalidURL)
}
