package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iconidentify/vidgrab/internal/config"
	"github.com/iconidentify/vidgrab/internal/domain"
	"github.com/iconidentify/vidgrab/internal/downloader"
	"github.com/iconidentify/vidgrab/internal/platform"
	"github.com/iconidentify/vidgrab/internal/repository"
)

var urlPattern = regexp.MustCompile(`^https?://.+`)

// VideoService orchestrates analysis and download requests.
type VideoService struct {
	classifier *platform.Classifier
	downloader downloader.Downloader
	history    repository.HistoryRepository
	strict     map[domain.Platform]bool
	cfg        config.StorageConfig
	logger     *slog.Logger
	now        func() time.Time
}

// NewVideoService creates a new video service.
func NewVideoService(
	classifier *platform.Classifier,
	dl downloader.Downloader,
	history repository.HistoryRepository,
	storageCfg config.StorageConfig,
	fallbackCfg config.FallbackConfig,
	logger *slog.Logger,
) *VideoService {
	return &VideoService{
		classifier: classifier,
		downloader: dl,
		history:    history,
		strict:     fallbackCfg.StrictPlatformSet(),
		cfg:        storageCfg,
		logger:     logger,
		now:        time.Now,
	}
}

// AnalyzeResult is the outcome of an analysis. Fallback is set when
// VideoInfo comes from the mock provider, with Error carrying the reason.
type AnalyzeResult struct {
	Platform  domain.Platform
	VideoInfo *domain.VideoInfo
	Fallback  bool
	Error     string
}

// DownloadRequest represents a media download request.
type DownloadRequest struct {
	URL      string
	Format   string
	Quality  string
	FormatID string
}

// DownloadResult holds the attachment to send back. Closing Body releases
// any file backing it.
type DownloadResult struct {
	ID       string
	Platform domain.Platform
	Filename string
	Body     io.ReadCloser
	Size     int64
	Fallback bool
	Error    string
}

// ValidateURL checks that rawURL is present and looks like an http(s) URL.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return domain.ErrURLRequired
	}
	if !urlPattern.MatchString(rawURL) {
		return domain.ErrInvalidURL
	}
	return nil
}

// Analyze fetches metadata for rawURL, falling back to mock data unless the
// platform is strict.
func (s *VideoService) Analyze(ctx context.Context, rawURL string) (*AnalyzeResult, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}

	p := s.classifier.Detect(rawURL)
	logger := s.logger.With("platform", p, "url", rawURL)

	info, err := s.downloader.FetchMetadata(ctx, rawURL)
	if err == nil {
		s.record(ctx, rawURL, info, p, false)
		logger.Info("video analyzed", "title", info.Title, "formats", len(info.Formats))
		return &AnalyzeResult{Platform: p, VideoInfo: info}, nil
	}

	if s.strict[p] {
		logger.Error("analysis failed", "error", err)
		return nil, &StrictPlatformError{Platform: p, Op: "analysis", Err: err}
	}

	logger.Warn("analysis failed, falling back to mock data", "error", err)

	mock := platform.MockVideoInfo(p, rawURL)
	s.record(ctx, rawURL, mock, p, true)

	return &AnalyzeResult{
		Platform:  p,
		VideoInfo: mock,
		Fallback:  true,
		Error:     err.Error(),
	}, nil
}

// Download fetches media for req into the downloads directory and returns it
// as an attachment. The backing file is removed when Body is closed.
func (s *VideoService) Download(ctx context.Context, req DownloadRequest) (*DownloadResult, error) {
	if req.URL == "" {
		return nil, domain.ErrURLRequired
	}
	if req.Format == "" {
		req.Format = "mp4"
	}
	if req.Quality == "" {
		req.Quality = "best"
	}

	ext := sanitizeExt(req.Format)
	id := "dl_" + uuid.New().String()[:8]
	p := s.classifier.Detect(req.URL)
	logger := s.logger.With("download_id", id, "platform", p, "url", req.URL)

	// A storage shortfall counts as a failed fetch: the sample payload
	// needs no disk.
	err := s.checkDiskSpace()
	if err == nil {
		millis := s.now().UnixMilli()
		filename := fmt.Sprintf("video_%d.%s", millis, ext)
		// The id keeps concurrent downloads in the same millisecond apart on disk.
		path := filepath.Join(s.cfg.DownloadsPath, fmt.Sprintf("video_%d_%s.%s", millis, id, ext))

		logger.Info("download started",
			"format", req.Format,
			"quality", req.Quality,
			"format_id", req.FormatID,
		)

		err = s.downloader.FetchMedia(ctx, downloader.MediaRequest{
			URL:        req.URL,
			OutputPath: path,
			Format:     req.Format,
			Quality:    req.Quality,
			FormatID:   req.FormatID,
		})
		if err == nil {
			body, size, openErr := openDeleteOnClose(path, logger)
			if openErr != nil {
				return nil, fmt.Errorf("open download: %w", openErr)
			}
			logger.Info("download completed", "size", domain.FormatFileSize(size))
			return &DownloadResult{
				ID:       id,
				Platform: p,
				Filename: filename,
				Body:     body,
				Size:     size,
			}, nil
		}
	}

	if s.strict[p] {
		logger.Error("download failed", "error", err)
		return nil, &StrictPlatformError{Platform: p, Op: "download", Err: err}
	}

	logger.Warn("download failed, falling back to sample content", "error", err)

	payload := platform.FallbackPayload(req.URL, req.Format, req.Quality)
	return &DownloadResult{
		ID:       id,
		Platform: p,
		Filename: "video_sample." + ext,
		Body:     io.NopCloser(bytes.NewReader(payload)),
		Size:     int64(len(payload)),
		Fallback: true,
		Error:    err.Error(),
	}, nil
}

// History returns recorded analyses, most recent first.
func (s *VideoService) History(ctx context.Context) ([]*domain.HistoryEntry, error) {
	return s.history.List(ctx)
}

// HistoryByPlatform returns recorded analyses for a single platform.
func (s *VideoService) HistoryByPlatform(ctx context.Context, p domain.Platform) ([]*domain.HistoryEntry, error) {
	entries, err := s.history.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*domain.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		if e.Platform == p {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

// Readiness summarizes whether the service can do real work.
type Readiness struct {
	ToolVersion    string `json:"tool_version,omitempty"`
	ToolError      string `json:"tool_error,omitempty"`
	HistorySize    int    `json:"history_size"`
	DownloadsPath  string `json:"downloads_path"`
	DiskFreeBytes  int64  `json:"disk_free_bytes"`
	DiskTotalBytes int64  `json:"disk_total_bytes"`
	DiskFree       string `json:"disk_free"`
	StorageError   string `json:"storage_error,omitempty"`
}

// ToolAvailable reports whether the downloader answered its version probe.
func (r *Readiness) ToolAvailable() bool {
	return r.ToolError == ""
}

// StorageAvailable reports whether the downloads directory could be inspected.
func (r *Readiness) StorageAvailable() bool {
	return r.StorageError == ""
}

// Readiness probes the downloader and the downloads directory.
func (s *VideoService) Readiness(ctx context.Context) *Readiness {
	r := &Readiness{
		HistorySize:   s.history.Len(ctx),
		DownloadsPath: s.cfg.DownloadsPath,
	}

	if version, err := s.downloader.Version(ctx); err != nil {
		r.ToolError = err.Error()
	} else {
		r.ToolVersion = version
	}

	if total, free, err := diskUsage(s.cfg.DownloadsPath); err != nil {
		r.StorageError = err.Error()
	} else {
		r.DiskTotalBytes = total
		r.DiskFreeBytes = free
		r.DiskFree = domain.FormatFileSize(free)
	}

	return r
}

func (s *VideoService) record(ctx context.Context, rawURL string, info *domain.VideoInfo, p domain.Platform, isFallback bool) {
	entry := domain.NewHistoryEntry(rawURL, info, p, isFallback, s.now())
	entry.Site = platform.Site(rawURL)

	if err := s.history.Add(ctx, entry); err != nil {
		s.logger.Warn("failed to record history", "url", rawURL, "error", err)
	}
}

func (s *VideoService) checkDiskSpace() error {
	if s.cfg.MinFreeBytes <= 0 {
		return nil
	}

	_, free, err := diskUsage(s.cfg.DownloadsPath)
	if err != nil {
		s.logger.Warn("disk space check failed", "path", s.cfg.DownloadsPath, "error", err)
		return nil
	}

	if free < s.cfg.MinFreeBytes {
		return fmt.Errorf("%w: %s free, %s required", domain.ErrStorageFull,
			domain.FormatFileSize(free), domain.FormatFileSize(s.cfg.MinFreeBytes))
	}
	return nil
}

// sanitizeExt keeps only ASCII letters and digits so the requested format
// is safe to use as a file extension and in Content-Disposition.
func sanitizeExt(format string) string {
	ext := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return -1
		}
	}, format)
	if ext == "" {
		return "mp4"
	}
	return ext
}

// deleteOnCloseFile removes its backing file once closed.
type deleteOnCloseFile struct {
	*os.File
	path   string
	once   sync.Once
	logger *slog.Logger
}

func openDeleteOnClose(path string, logger *slog.Logger) (*deleteOnCloseFile, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		_ = os.Remove(path)
		return nil, 0, err
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		_ = os.Remove(path)
		return nil, 0, err
	}

	return &deleteOnCloseFile{File: f, path: path, logger: logger}, stat.Size(), nil
}

func (d *deleteOnCloseFile) Close() error {
	err := d.File.Close()
	d.once.Do(func() {
		if rmErr := os.Remove(d.path); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			d.logger.Warn("failed to remove download", "path", d.path, "error", rmErr)
		}
	})
	return err
}
