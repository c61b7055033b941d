package platform

import (
	"strings"
	"testing"

	"github.com/iconidentify/vidgrab/internal/domain"
)

func TestResolveThumbnail(t *testing.T) {
	tests := []struct {
		name     string
		platform domain.Platform
		url      string
		want     string
	}{
		{
			name:     "youtube watch",
			platform: domain.PlatformYouTube,
			url:      "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=10",
			want:     "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg",
		},
		{
			name:     "youtube short link",
			platform: domain.PlatformYouTube,
			url:      "https://youtu.be/abc123?t=5",
			want:     "https://img.youtube.com/vi/abc123/maxresdefault.jpg",
		},
		{
			name:     "vimeo",
			platform: domain.PlatformVimeo,
			url:      "https://vimeo.com/12345",
			want:     "https://vumbnail.com/12345.jpg",
		},
		{
			name:     "dailymotion",
			platform: domain.PlatformDailymotion,
			url:      "https://www.dailymotion.com/video/x8abc12",
			want:     "https://s1.dmcdn.net/v/x8abc12/x240",
		},
		{
			name:     "twitch vod",
			platform: domain.PlatformTwitch,
			url:      "https://www.twitch.tv/videos/987654",
			want:     "https://static-cdn.jtvnw.net/s3_vods/987654/thumb/thumb0-320x180.jpg",
		},
		{
			name:     "instagram post",
			platform: domain.PlatformInstagram,
			url:      "https://www.instagram.com/p/Cx_Y-1/",
			want:     "https://www.instagram.com/p/Cx_Y-1/media/?size=l",
		},
		{
			name:     "facebook video",
			platform: domain.PlatformFacebook,
			url:      "https://www.facebook.com/page/videos/1234567890/",
			want:     "https://graph.facebook.com/1234567890/picture",
		},
		{
			name:     "tiktok proxy",
			platform: domain.PlatformTikTok,
			url:      "https://www.tiktok.com/@u/video/1",
			want:     "https://tikthumb.vercel.app/api/thumb?url=https%3A%2F%2Fwww.tiktok.com%2F%40u%2Fvideo%2F1",
		},
		{
			name:     "tiktok proxy keeps uri component marks",
			platform: domain.PlatformTikTok,
			url:      "https://www.tiktok.com/@u/video/1?x=(1)!*'~ y",
			want:     "https://tikthumb.vercel.app/api/thumb?url=https%3A%2F%2Fwww.tiktok.com%2F%40u%2Fvideo%2F1%3Fx%3D(1)!*'~%20y",
		},
		{
			name:     "youtube without id falls back",
			platform: domain.PlatformYouTube,
			url:      "abc",
			want:     "https://picsum.photos/480/360?random=294",
		},
		{
			name:     "platform without rule",
			platform: domain.PlatformReddit,
			url:      "abc",
			want:     "https://picsum.photos/480/360?random=294",
		},
		{
			name:     "empty url",
			platform: domain.PlatformYouTube,
			url:      "",
			want:     "https://picsum.photos/480/360?random=default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveThumbnail(tt.platform, tt.url); got != tt.want {
				t.Errorf("ResolveThumbnail(%q, %q) = %q, want %q", tt.platform, tt.url, got, tt.want)
			}
		})
	}
}

func TestResolveThumbnail_Deterministic(t *testing.T) {
	first := ResolveThumbnail(domain.PlatformUnknown, "abc")
	second := ResolveThumbnail(domain.PlatformUnknown, "abc")
	if first != second {
		t.Errorf("placeholder not deterministic: %q != %q", first, second)
	}

	other := ResolveThumbnail(domain.PlatformUnknown, "abd")
	if other == first {
		t.Errorf("different URLs should yield different seeds, both %q", first)
	}
}

func TestPlaceholderSeed(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "default"},
		{"a", "97"},
		{"abc", "294"},
		// 11 x 'z' = 1342 -> 342
		{strings.Repeat("z", 11), "342"},
		// 'é' is a single UTF-16 unit (233)
		{"é", "233"},
		// U+1F600 is a surrogate pair: 0xD83D + 0xDE00 = 112189 -> 189
		{"\U0001F600", "189"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := placeholderSeed(tt.in); got != tt.want {
				t.Errorf("placeholderSeed(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEncodeURIComponent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"a b", "a%20b"},
		{"a+b", "a%2Bb"},
		{"(1)!*'~", "(1)!*'~"},
		{"-_.", "-_."},
		{"a/b?c=d&e", "a%2Fb%3Fc%3Dd%26e"},
		{"%21", "%2521"},
		{"é", "%C3%A9"},
	}

	for _, tt := range tests {
		if got := encodeURIComponent(tt.in); got != tt.want {
			t.Errorf("encodeURIComponent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
