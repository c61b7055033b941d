package domain

// VideoInfo describes a video as reported by the external downloader,
// or as synthesized by the fallback provider.
type VideoInfo struct {
	Title     string   `json:"title"`
	Duration  *int     `json:"duration,omitempty"` // seconds
	Thumbnail string   `json:"thumbnail"`
	Formats   []Format `json:"formats"`
}

// Format is one selectable encoding/quality variant of a video.
// FormatID is opaque and defined by the downloader tool.
type Format struct {
	FormatID   string `json:"format_id"`
	Ext        string `json:"ext"`
	Resolution string `json:"resolution"`
	Filesize   *int64 `json:"filesize"`
	Quality    string `json:"quality"`
}

// Seconds returns a pointer to n, for populating optional durations.
func Seconds(n int) *int {
	return &n
}

// Bytes returns a pointer to n, for populating optional file sizes.
func Bytes(n int64) *int64 {
	return &n
}
