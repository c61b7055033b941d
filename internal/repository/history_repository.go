package repository

import (
	"context"
	"sync"

	"github.com/iconidentify/vidgrab/internal/domain"
)

// DefaultHistoryCapacity is the number of entries kept when no capacity is configured.
const DefaultHistoryCapacity = 50

// InMemoryHistoryRepository implements HistoryRepository with a fixed-size
// ring buffer.
type InMemoryHistoryRepository struct {
	mu      sync.RWMutex
	entries []*domain.HistoryEntry
	head    int // Next write position
	count   int // Number of entries in buffer
}

// NewInMemoryHistoryRepository creates a repository holding at most capacity entries.
func NewInMemoryHistoryRepository(capacity int) *InMemoryHistoryRepository {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &InMemoryHistoryRepository{
		entries: make([]*domain.HistoryEntry, capacity),
	}
}

// Add records entry as the most recent one.
func (r *InMemoryHistoryRepository) Add(ctx context.Context, entry *domain.HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	size := len(r.entries)
	r.entries[r.head] = entry
	r.head = (r.head + 1) % size
	if r.count < size {
		r.count++
	}

	return nil
}

// List returns all entries, most recent first.
func (r *InMemoryHistoryRepository) List(ctx context.Context) ([]*domain.HistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	size := len(r.entries)
	result := make([]*domain.HistoryEntry, 0, r.count)
	for i := 0; i < r.count; i++ {
		// Read backwards from head-1
		idx := (r.head - 1 - i + size) % size
		result = append(result, r.entries[idx])
	}

	return result, nil
}

// Len returns the number of stored entries.
func (r *InMemoryHistoryRepository) Len(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.count
}

// Clear removes all entries.
func (r *InMemoryHistoryRepository) Clear(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.entries)
	r.head = 0
	r.count = 0
}

// Capacity returns the maximum number of entries retained.
func (r *InMemoryHistoryRepository) Capacity() int {
	return len(r.entries)
}
