package downloader

import (
	"context"

	"github.com/iconidentify/vidgrab/internal/domain"
)

// Downloader drives the external video tool.
type Downloader interface {
	// FetchMetadata asks the tool for a JSON description of the video at url.
	FetchMetadata(ctx context.Context, url string) (*domain.VideoInfo, error)

	// FetchMedia downloads the video to req.OutputPath. On failure any
	// partial output is removed before returning.
	FetchMedia(ctx context.Context, req MediaRequest) error

	// Version reports the tool version, or an error if it cannot be run.
	Version(ctx context.Context) (string, error)
}

// MediaRequest describes a single media download.
type MediaRequest struct {
	URL        string
	OutputPath string
	Format     string // container or audio format, e.g. "mp4", "mp3"
	Quality    string // "best", "1080p", "720p", "480p"
	FormatID   string // tool-specific format id; overrides Format and Quality
}
