package worker

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ErrShutdownTimeout is returned when the janitor doesn't stop within timeout.
var ErrShutdownTimeout = errors.New("janitor shutdown timed out")

// Janitor periodically removes files left behind in the downloads directory,
// e.g. by a crash between download and delivery.
type Janitor struct {
	dir      string
	ttl      time.Duration
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// Config holds janitor configuration.
type Config struct {
	Dir      string
	TTL      time.Duration
	Interval time.Duration
}

// NewJanitor creates a new janitor for cfg.Dir.
func NewJanitor(cfg Config, logger *slog.Logger) *Janitor {
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Minute
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Janitor{
		dir:      cfg.Dir,
		ttl:      cfg.TTL,
		interval: cfg.Interval,
		logger:   logger,
		now:      time.Now,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start runs one sweep immediately, then one per interval.
func (j *Janitor) Start() {
	j.logger.Info("starting janitor",
		"dir", j.dir,
		"ttl", j.ttl,
		"interval", j.interval,
	)

	j.wg.Add(1)
	go j.run()
}

// Stop signals the janitor to exit and waits up to timeout for it.
func (j *Janitor) Stop(timeout time.Duration) error {
	j.logger.Info("stopping janitor")
	j.cancel()

	done := make(chan struct{})
	go func() {
		j.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		j.logger.Info("janitor stopped gracefully")
		return nil
	case <-time.After(timeout):
		return ErrShutdownTimeout
	}
}

func (j *Janitor) run() {
	defer j.wg.Done()

	j.Sweep()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-j.ctx.Done():
			return
		case <-ticker.C:
			j.Sweep()
		}
	}
}

// Sweep deletes regular files in the directory whose modification time is
// older than the TTL. It returns the number of files removed.
func (j *Janitor) Sweep() int {
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		j.logger.Error("failed to read downloads directory", "dir", j.dir, "error", err)
		return 0
	}

	cutoff := j.now().Add(-j.ttl)
	removed := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Removed concurrently.
			continue
		}
		if !info.Mode().IsRegular() || !info.ModTime().Before(cutoff) {
			continue
		}

		path := filepath.Join(j.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			j.logger.Warn("failed to remove orphaned file", "path", path, "error", err)
			continue
		}
		removed++
		j.logger.Info("removed orphaned file",
			"path", path,
			"age", j.now().Sub(info.ModTime()).Round(time.Second),
		)
	}

	if removed > 0 {
		j.logger.Info("sweep completed", "removed", removed)
	}
	return removed
}
