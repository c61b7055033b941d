package api

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/iconidentify/vidgrab/internal/api/handler"
	mw "github.com/iconidentify/vidgrab/internal/api/middleware"
)

// requestTimeout bounds every route except downloads, which are bounded by
// the downloader's own timeout.
const requestTimeout = 5 * time.Minute

// NewRouter creates the HTTP router with all routes configured.
func NewRouter(
	videoHandler *handler.VideoHandler,
	healthHandler *handler.HealthHandler,
	uiHandler *handler.UIHandler,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CleanPath) // Normalize paths (e.g., //ready -> /ready)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Logger(logger))
	r.Use(mw.Recovery(logger))
	r.Use(mw.CORS)

	// Health endpoints
	r.Get("/health", healthHandler.Live)
	r.Get("/ready", healthHandler.Ready)

	// Web UI
	r.Get("/", uiHandler.Index)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(requestTimeout))

			r.Get("/stats", healthHandler.Stats)
			r.Get("/history", videoHandler.History)
			r.Post("/analyze", videoHandler.Analyze)
		})

		r.Post("/download", videoHandler.Download)
	})

	return r
}
