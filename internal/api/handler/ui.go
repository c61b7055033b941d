package handler

import (
	"net/http"

	"github.com/iconidentify/vidgrab/pkg/ui"
)

// UIHandler serves the web UI.
type UIHandler struct{}

// NewUIHandler creates a new UI handler.
func NewUIHandler() *UIHandler {
	return &UIHandler{}
}

// Index serves the single-page UI.
func (h *UIHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(ui.IndexHTML)
}
