package platform

import (
	"fmt"

	"github.com/iconidentify/vidgrab/internal/domain"
)

const defaultMockTitle = "Sample Video Title"

// mockDuration is the fixed length reported for synthesized videos (4:05).
const mockDuration = 245

var mockTitles = map[domain.Platform]string{
	domain.PlatformYouTube:   "Amazing Video Content - Best Tutorial Ever!",
	domain.PlatformFacebook:  "Funny Cat Video - You Won't Believe This!",
	domain.PlatformInstagram: "Beautiful Sunset Timelapse #Nature #Photography",
	domain.PlatformTikTok:    "Dance Challenge 2024 - Viral Trend!",
	domain.PlatformTwitter:   "Breaking News: Major Announcement Today",
	domain.PlatformVimeo:     "Professional Video Production Showcase",
	domain.PlatformDramaWave: "Drama Episode - Latest Korean Drama Series",
	domain.PlatformUnknown:   defaultMockTitle,
}

// MockTitle returns the canned title for p.
func MockTitle(p domain.Platform) string {
	if title, ok := mockTitles[p]; ok {
		return title
	}
	return defaultMockTitle
}

// MockFormats returns the canned format list served with fallback responses.
func MockFormats() []domain.Format {
	return []domain.Format{
		{FormatID: "22", Ext: "mp4", Resolution: "1280x720", Filesize: domain.Bytes(52428800), Quality: "720p"},
		{FormatID: "18", Ext: "mp4", Resolution: "640x360", Filesize: domain.Bytes(15728640), Quality: "360p"},
		{FormatID: "140", Ext: "m4a", Resolution: "audio only", Filesize: domain.Bytes(3932160), Quality: "128kbps"},
	}
}

// MockVideoInfo synthesizes the VideoInfo returned when analysis falls back.
func MockVideoInfo(p domain.Platform, rawURL string) *domain.VideoInfo {
	return &domain.VideoInfo{
		Title:     MockTitle(p),
		Duration:  domain.Seconds(mockDuration),
		Thumbnail: ResolveThumbnail(p, rawURL),
		Formats:   MockFormats(),
	}
}

// FallbackPayload is the sample attachment body served when a download falls back.
func FallbackPayload(rawURL, format, quality string) []byte {
	return []byte(fmt.Sprintf(
		"This is a sample %s file downloaded from %s at quality %s. \nIn a real implementation, this would contain the actual video data.",
		format, rawURL, quality,
	))
}
