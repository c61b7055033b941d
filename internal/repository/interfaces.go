package repository

import (
	"context"

	"github.com/iconidentify/vidgrab/internal/domain"
)

// HistoryRepository keeps a bounded, most-recent-first log of analyses.
type HistoryRepository interface {
	// Add records an entry as the most recent one, evicting the oldest
	// entry when the repository is full.
	Add(ctx context.Context, entry *domain.HistoryEntry) error

	// List returns all entries, most recent first.
	List(ctx context.Context) ([]*domain.HistoryEntry, error)

	// Len returns the number of stored entries.
	Len(ctx context.Context) int

	// Clear removes all entries.
	Clear(ctx context.Context)
}
