package service

import (
	"fmt"

	"github.com/iconidentify/vidgrab/internal/domain"
)

// StrictPlatformError is returned instead of a fallback result when the
// downloader fails for a platform configured as strict.
type StrictPlatformError struct {
	Platform domain.Platform
	Op       string // "analysis" or "download"
	Err      error
}

func (e *StrictPlatformError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Platform, e.Op, e.Err)
}

func (e *StrictPlatformError) Unwrap() error {
	return e.Err
}
