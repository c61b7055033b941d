package platform

import (
	"strings"
	"testing"

	"github.com/iconidentify/vidgrab/internal/domain"
)

func TestMockTitle(t *testing.T) {
	tests := []struct {
		platform domain.Platform
		want     string
	}{
		{domain.PlatformYouTube, "Amazing Video Content - Best Tutorial Ever!"},
		{domain.PlatformDramaWave, "Drama Episode - Latest Korean Drama Series"},
		{domain.PlatformUnknown, "Sample Video Title"},
		{domain.PlatformTwitch, "Sample Video Title"},
		{domain.Platform("bogus"), "Sample Video Title"},
	}

	for _, tt := range tests {
		t.Run(string(tt.platform), func(t *testing.T) {
			if got := MockTitle(tt.platform); got != tt.want {
				t.Errorf("MockTitle(%q) = %q, want %q", tt.platform, got, tt.want)
			}
		})
	}
}

func TestMockVideoInfo(t *testing.T) {
	url := "https://vimeo.com/12345"
	info := MockVideoInfo(domain.PlatformVimeo, url)

	if info.Title != "Professional Video Production Showcase" {
		t.Errorf("Title = %q", info.Title)
	}
	if info.Duration == nil || *info.Duration != 245 {
		t.Errorf("Duration = %v, want 245", info.Duration)
	}
	if info.Thumbnail != "https://vumbnail.com/12345.jpg" {
		t.Errorf("Thumbnail = %q", info.Thumbnail)
	}
	if len(info.Formats) != 3 {
		t.Fatalf("len(Formats) = %d, want 3", len(info.Formats))
	}

	wantIDs := []string{"22", "18", "140"}
	for i, f := range info.Formats {
		if f.FormatID != wantIDs[i] {
			t.Errorf("Formats[%d].FormatID = %q, want %q", i, f.FormatID, wantIDs[i])
		}
		if f.Filesize == nil {
			t.Errorf("Formats[%d].Filesize should be set", i)
		}
	}
	if info.Formats[2].Resolution != "audio only" || info.Formats[2].Quality != "128kbps" {
		t.Errorf("audio format = %+v", info.Formats[2])
	}
}

func TestMockFormats_Independent(t *testing.T) {
	a := MockFormats()
	a[0].FormatID = "mutated"

	if b := MockFormats(); b[0].FormatID != "22" {
		t.Errorf("MockFormats should return a fresh slice, got %q", b[0].FormatID)
	}
}

func TestFallbackPayload(t *testing.T) {
	url := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	body := string(FallbackPayload(url, "mp4", "720p"))

	for _, want := range []string{url, "sample mp4 file", "at quality 720p"} {
		if !strings.Contains(body, want) {
			t.Errorf("payload %q missing %q", body, want)
		}
	}
	if !strings.Contains(body, "\nIn a real implementation") {
		t.Errorf("payload should contain second line: %q", body)
	}
}
