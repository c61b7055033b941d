package downloader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/iconidentify/vidgrab/internal/config"
	"github.com/iconidentify/vidgrab/internal/domain"
)

const (
	versionTimeout = 10 * time.Second
	maxStderrBytes = 64 << 10

	// waitDelay bounds how long Wait blocks on pipes held open by
	// grandchildren after the tool itself has been killed.
	waitDelay = 2 * time.Second
)

// YTDLP implements Downloader by running yt-dlp (or a compatible tool)
// as a child process.
type YTDLP struct {
	cfg    config.DownloaderConfig
	sem    chan struct{}
	logger *slog.Logger
}

// NewYTDLP creates a new process-backed downloader.
func NewYTDLP(cfg config.DownloaderConfig, logger *slog.Logger) *YTDLP {
	d := &YTDLP{
		cfg:    cfg,
		logger: logger,
	}
	if cfg.MaxConcurrent > 0 {
		d.sem = make(chan struct{}, cfg.MaxConcurrent)
	}
	return d
}

// FetchMetadata runs the tool in --dump-json mode and parses its output.
func (d *YTDLP) FetchMetadata(ctx context.Context, url string) (*domain.VideoInfo, error) {
	release, err := d.acquire(ctx)
	if err != nil {
		return nil, domain.NewToolError("metadata", 0, "", err)
	}
	defer release()

	stdout := &cappedBuffer{limit: d.cfg.MaxOutputBytes}
	start := time.Now()
	if err := d.run(ctx, "metadata", d.cfg.MetadataTimeout, stdout, buildMetadataArgs(url)...); err != nil {
		return nil, err
	}
	if stdout.truncated {
		return nil, &domain.ParseError{Err: fmt.Errorf("output exceeds %d bytes", d.cfg.MaxOutputBytes)}
	}

	info, err := parseVideoInfo(stdout.Bytes())
	if err != nil {
		return nil, err
	}

	d.logger.Debug("metadata fetched",
		"url", url,
		"formats", len(info.Formats),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return info, nil
}

// FetchMedia downloads media to req.OutputPath.
func (d *YTDLP) FetchMedia(ctx context.Context, req MediaRequest) error {
	release, err := d.acquire(ctx)
	if err != nil {
		return domain.NewToolError("download", 0, "", err)
	}
	defer release()

	start := time.Now()
	if err := d.run(ctx, "download", d.cfg.DownloadTimeout, io.Discard, buildMediaArgs(req)...); err != nil {
		removePartial(req.OutputPath)
		return err
	}

	if _, err := os.Stat(req.OutputPath); err != nil {
		removePartial(req.OutputPath)
		return domain.NewToolError("download", 0, "",
			fmt.Errorf("%w: output file missing: %v", domain.ErrToolFailed, err))
	}

	d.logger.Debug("media fetched",
		"url", req.URL,
		"path", req.OutputPath,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// Version returns the first line of the tool's --version output.
func (d *YTDLP) Version(ctx context.Context) (string, error) {
	var stdout bytes.Buffer
	if err := d.run(ctx, "version", versionTimeout, &stdout, "--version"); err != nil {
		return "", err
	}
	version, _, _ := strings.Cut(strings.TrimSpace(stdout.String()), "\n")
	return strings.TrimSpace(version), nil
}

func (d *YTDLP) acquire(ctx context.Context) (func(), error) {
	if d.sem == nil {
		return func() {}, nil
	}
	select {
	case d.sem <- struct{}{}:
		return func() { <-d.sem }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// run executes the tool once and translates every failure into a ToolError.
func (d *YTDLP) run(ctx context.Context, op string, timeout time.Duration, stdout io.Writer, args ...string) error {
	path, prefix, err := resolveCommand(d.cfg.Command, d.cfg.BundledDir)
	if err != nil {
		return domain.NewToolError(op, 0, "", fmt.Errorf("%w: %v", domain.ErrToolNotFound, err))
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	stderr := &cappedBuffer{limit: maxStderrBytes}
	cmd := exec.CommandContext(ctx, path, append(prefix, args...)...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = waitDelay

	err = cmd.Run()
	if err == nil {
		return nil
	}

	msg := strings.TrimSpace(stderr.String())
	var exitErr *exec.ExitError
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return domain.NewToolError(op, 0, msg, fmt.Errorf("%w after %s", domain.ErrToolTimeout, timeout))
	case ctx.Err() != nil:
		return domain.NewToolError(op, 0, msg, ctx.Err())
	case errors.As(err, &exitErr):
		d.logger.Warn("downloader exited with error",
			"op", op,
			"exit_code", exitErr.ExitCode(),
			"stderr", msg,
		)
		return domain.NewToolError(op, exitErr.ExitCode(), msg, domain.ErrToolFailed)
	default:
		return domain.NewToolError(op, 0, msg, fmt.Errorf("%w: %v", domain.ErrToolNotFound, err))
	}
}

// removePartial deletes the output file and any sidecar the tool left next
// to it (.part, .ytdl, intermediate extensions).
func removePartial(outputPath string) {
	_ = os.Remove(outputPath)
	matches, _ := filepath.Glob(escapeGlob(outputPath) + ".*")
	for _, m := range matches {
		_ = os.Remove(m)
	}
}

func escapeGlob(s string) string {
	if filepath.Separator == '\\' {
		return s
	}
	return strings.NewReplacer(`*`, `\*`, `?`, `\?`, `[`, `\[`).Replace(s)
}

// cappedBuffer keeps at most limit bytes and silently discards the rest,
// so a chatty child never blocks on a full pipe. It must not implement
// io.ReaderFrom, or io.Copy would bypass the limit.
type cappedBuffer struct {
	buf       bytes.Buffer
	limit     int64
	truncated bool
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	if b.limit <= 0 {
		return b.buf.Write(p)
	}
	room := b.limit - int64(b.buf.Len())
	if room <= 0 {
		if len(p) > 0 {
			b.truncated = true
		}
		return len(p), nil
	}
	if int64(len(p)) > room {
		b.buf.Write(p[:room])
		b.truncated = true
		return len(p), nil
	}
	return b.buf.Write(p)
}

func (b *cappedBuffer) Bytes() []byte  { return b.buf.Bytes() }
func (b *cappedBuffer) String() string { return b.buf.String() }
