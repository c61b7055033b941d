package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/iconidentify/vidgrab/internal/service"
)

var startTime = time.Now()

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	videoSvc *service.VideoService
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(videoSvc *service.VideoService) *HealthHandler {
	return &HealthHandler{
		videoSvc: videoSvc,
	}
}

// HealthResponse is the JSON response for health checks.
type HealthResponse struct {
	Status    string             `json:"status"`
	Timestamp string             `json:"timestamp"`
	Checks    *service.Readiness `json:"checks,omitempty"`
}

// Live handles GET /health - liveness probe.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready handles GET /ready - readiness probe.
// A missing downloader reports "degraded" with 200; an unusable downloads
// directory reports "error" with 503.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	checks := h.videoSvc.Readiness(ctx)

	status, code := "ok", http.StatusOK
	switch {
	case !checks.StorageAvailable():
		status, code = "error", http.StatusServiceUnavailable
	case !checks.ToolAvailable():
		status = "degraded"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	})
}

// SystemStats contains process and storage statistics.
type SystemStats struct {
	Uptime         int64   `json:"uptime_seconds"`
	UptimeHuman    string  `json:"uptime_human"`
	MemAllocMB     int64   `json:"mem_alloc_mb"`
	MemSysMB       int64   `json:"mem_sys_mb"`
	MemHeapMB      int64   `json:"mem_heap_mb"`
	NumGoroutines  int     `json:"num_goroutines"`
	NumCPU         int     `json:"num_cpu"`
	HistorySize    int     `json:"history_size"`
	ToolVersion    string  `json:"tool_version,omitempty"`
	DiskFreeBytes  int64   `json:"disk_free_bytes"`
	DiskTotalBytes int64   `json:"disk_total_bytes"`
	DiskUsedPct    float64 `json:"disk_used_pct"`
	DownloadsPath  string  `json:"downloads_path"`
}

// Stats handles GET /api/stats - system statistics.
func (h *HealthHandler) Stats(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(startTime)
	checks := h.videoSvc.Readiness(r.Context())

	stats := SystemStats{
		Uptime:         int64(uptime.Seconds()),
		UptimeHuman:    formatUptime(uptime),
		MemAllocMB:     int64(m.Alloc / 1024 / 1024),
		MemSysMB:       int64(m.Sys / 1024 / 1024),
		MemHeapMB:      int64(m.HeapAlloc / 1024 / 1024),
		NumGoroutines:  runtime.NumGoroutine(),
		NumCPU:         runtime.NumCPU(),
		HistorySize:    checks.HistorySize,
		ToolVersion:    checks.ToolVersion,
		DiskFreeBytes:  checks.DiskFreeBytes,
		DiskTotalBytes: checks.DiskTotalBytes,
		DownloadsPath:  checks.DownloadsPath,
	}
	if stats.DiskTotalBytes > 0 {
		used := stats.DiskTotalBytes - stats.DiskFreeBytes
		stats.DiskUsedPct = float64(used) / float64(stats.DiskTotalBytes) * 100
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(stats)
}

func formatUptime(d time.Duration) string {
	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	mins := int(d.Minutes()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, mins)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}
