package domain

import (
	"time"
)

// HistoryEntry records a single analyze call.
type HistoryEntry struct {
	ID         int64      `json:"id"`
	URL        string     `json:"url"`
	VideoInfo  *VideoInfo `json:"videoInfo"`
	Platform   Platform   `json:"platform"`
	IsFallback bool       `json:"isFallback"`
	Timestamp  string     `json:"timestamp"`
	Site       string     `json:"site,omitempty"`
}

// NewHistoryEntry creates an entry stamped with the given time.
// The ID is the Unix time in milliseconds.
func NewHistoryEntry(url string, info *VideoInfo, platform Platform, isFallback bool, now time.Time) *HistoryEntry {
	return &HistoryEntry{
		ID:         now.UnixMilli(),
		URL:        url,
		VideoInfo:  info,
		Platform:   platform,
		IsFallback: isFallback,
		Timestamp:  now.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
}
