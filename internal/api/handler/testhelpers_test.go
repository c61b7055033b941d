package handler

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/iconidentify/vidgrab/internal/config"
	"github.com/iconidentify/vidgrab/internal/domain"
	"github.com/iconidentify/vidgrab/internal/downloader"
	"github.com/iconidentify/vidgrab/internal/platform"
	"github.com/iconidentify/vidgrab/internal/repository"
	"github.com/iconidentify/vidgrab/internal/service"
)

// testLogger returns a silent logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockDownloader is a test implementation of downloader.Downloader.
type mockDownloader struct {
	info        *domain.VideoInfo
	metadataErr error
	mediaErr    error
	content     string
	version     string
	versionErr  error
	lastMedia   downloader.MediaRequest
}

func (m *mockDownloader) FetchMetadata(ctx context.Context, url string) (*domain.VideoInfo, error) {
	if m.metadataErr != nil {
		return nil, m.metadataErr
	}
	return m.info, nil
}

func (m *mockDownloader) FetchMedia(ctx context.Context, req downloader.MediaRequest) error {
	m.lastMedia = req
	if m.mediaErr != nil {
		return m.mediaErr
	}
	return os.WriteFile(req.OutputPath, []byte(m.content), 0644)
}

func (m *mockDownloader) Version(ctx context.Context) (string, error) {
	return m.version, m.versionErr
}

// toolMissing mirrors the error the real downloader returns without yt-dlp.
var toolMissing = domain.NewToolError("metadata", 0, "", domain.ErrToolNotFound)

// newTestService wires a VideoService around dl with a temporary downloads dir.
func newTestService(t *testing.T, dl downloader.Downloader) (*service.VideoService, string) {
	t.Helper()
	return newTestServiceWithFloor(t, dl, 0)
}

// newTestServiceWithFloor is newTestService with a free-space floor.
func newTestServiceWithFloor(t *testing.T, dl downloader.Downloader, minFree int64) (*service.VideoService, string) {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Storage.DownloadsPath = dir
	cfg.Storage.MinFreeBytes = minFree

	svc := service.NewVideoService(
		platform.MustNewClassifier(nil),
		dl,
		repository.NewInMemoryHistoryRepository(cfg.History.Capacity),
		cfg.Storage,
		cfg.Fallback,
		testLogger(),
	)
	return svc, dir
}
