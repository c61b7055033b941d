package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/iconidentify/vidgrab/internal/domain"
	"github.com/iconidentify/vidgrab/internal/service"
)

const maxRequestBodyBytes = 1 << 20

// VideoHandler handles analyze, download and history requests.
type VideoHandler struct {
	videoSvc *service.VideoService
	logger   *slog.Logger
}

// NewVideoHandler creates a new video handler.
func NewVideoHandler(videoSvc *service.VideoService, logger *slog.Logger) *VideoHandler {
	return &VideoHandler{
		videoSvc: videoSvc,
		logger:   logger,
	}
}

// AnalyzeRequest is the JSON request body for analysis.
type AnalyzeRequest struct {
	URL string `json:"url"`
}

// AnalyzeResponse is the JSON response for analysis.
type AnalyzeResponse struct {
	Success   bool              `json:"success"`
	Platform  domain.Platform   `json:"platform"`
	VideoInfo *domain.VideoInfo `json:"videoInfo"`
	Fallback  bool              `json:"fallback,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// DownloadRequest is the JSON request body for downloads.
type DownloadRequest struct {
	URL      string `json:"url"`
	Format   string `json:"format,omitempty"`
	Quality  string `json:"quality,omitempty"`
	FormatID string `json:"format_id,omitempty"`
}

// HistoryResponse is the JSON response for history listings.
type HistoryResponse struct {
	History []*domain.HistoryEntry `json:"history"`
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Analyze handles POST /api/analyze
func (h *VideoHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.videoSvc.Analyze(r.Context(), req.URL)
	if err != nil {
		h.writeServiceError(w, err, "Failed to analyze video")
		return
	}

	h.writeJSON(w, http.StatusOK, AnalyzeResponse{
		Success:   true,
		Platform:  result.Platform,
		VideoInfo: result.VideoInfo,
		Fallback:  result.Fallback,
		Error:     result.Error,
	})
}

// Download handles POST /api/download
func (h *VideoHandler) Download(w http.ResponseWriter, r *http.Request) {
	var req DownloadRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.videoSvc.Download(r.Context(), service.DownloadRequest{
		URL:      req.URL,
		Format:   req.Format,
		Quality:  req.Quality,
		FormatID: req.FormatID,
	})
	if err != nil {
		h.writeServiceError(w, err, "Failed to download video")
		return
	}
	defer result.Body.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	w.Header().Set("Content-Length", strconv.FormatInt(result.Size, 10))
	w.Header().Set("X-Download-ID", result.ID)
	w.Header().Set("X-Content-Size", domain.FormatFileSize(result.Size))
	if result.Fallback {
		w.Header().Set("X-Fallback", "true")
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, result.Body); err != nil {
		h.logger.Warn("download stream interrupted",
			"download_id", result.ID,
			"error", err,
		)
	}
}

// History handles GET /api/history
func (h *VideoHandler) History(w http.ResponseWriter, r *http.Request) {
	var (
		entries []*domain.HistoryEntry
		err     error
	)

	if name := r.URL.Query().Get("platform"); name != "" {
		p, ok := domain.ParsePlatform(name)
		if !ok {
			h.writeError(w, http.StatusBadRequest, "unknown platform")
			return
		}
		entries, err = h.videoSvc.HistoryByPlatform(r.Context(), p)
	} else {
		entries, err = h.videoSvc.History(r.Context())
	}
	if err != nil {
		h.logger.Error("failed to list history", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to list history")
		return
	}

	h.writeJSON(w, http.StatusOK, HistoryResponse{History: entries})
}

// decode reads a JSON body into v. An empty body leaves v zero-valued so
// the usual "URL is required" validation applies.
func (h *VideoHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (h *VideoHandler) writeServiceError(w http.ResponseWriter, err error, message string) {
	if domain.IsValidationError(err) {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.Error(message, "error", err)
	h.writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   message,
		Details: err.Error(),
	})
}

func (h *VideoHandler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *VideoHandler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, ErrorResponse{Error: message})
}
