package platform

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/iconidentify/vidgrab/internal/domain"
)

const placeholderTemplate = "https://picsum.photos/480/360?random="

type thumbnailRule struct {
	patterns []*regexp.Regexp
	build    func(id string) string
}

var thumbnailRules = map[domain.Platform]thumbnailRule{
	domain.PlatformYouTube: {
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`[?&]v=([^#&?]*)`),
			regexp.MustCompile(`youtu\.be/([^#&?]*)`),
		},
		build: func(id string) string { return "https://img.youtube.com/vi/" + id + "/maxresdefault.jpg" },
	},
	domain.PlatformVimeo: {
		patterns: []*regexp.Regexp{regexp.MustCompile(`vimeo\.com/(\d+)`)},
		build:    func(id string) string { return "https://vumbnail.com/" + id + ".jpg" },
	},
	domain.PlatformDailymotion: {
		patterns: []*regexp.Regexp{regexp.MustCompile(`dailymotion\.com/video/([a-zA-Z0-9]+)`)},
		build:    func(id string) string { return "https://s1.dmcdn.net/v/" + id + "/x240" },
	},
	domain.PlatformTwitch: {
		patterns: []*regexp.Regexp{regexp.MustCompile(`twitch\.tv/videos/(\d+)`)},
		build: func(id string) string {
			return "https://static-cdn.jtvnw.net/s3_vods/" + id + "/thumb/thumb0-320x180.jpg"
		},
	},
	domain.PlatformInstagram: {
		patterns: []*regexp.Regexp{regexp.MustCompile(`instagram\.com/p/([a-zA-Z0-9_-]+)`)},
		build:    func(id string) string { return "https://www.instagram.com/p/" + id + "/media/?size=l" },
	},
	domain.PlatformFacebook: {
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`facebook\.com/.*/videos/(\d+)`),
			regexp.MustCompile(`[?&]v=(\d+)`),
		},
		build: func(id string) string { return "https://graph.facebook.com/" + id + "/picture" },
	},
}

// ResolveThumbnail returns a thumbnail URL for rawURL without touching the network.
// Unrecognized URLs get a placeholder image seeded by a checksum of the URL.
func ResolveThumbnail(p domain.Platform, rawURL string) string {
	if rawURL != "" {
		if p == domain.PlatformTikTok {
			// TikTok IDs can't be turned into an image URL directly; hand the whole link to a proxy.
			return "https://tikthumb.vercel.app/api/thumb?url=" + encodeURIComponent(rawURL)
		}
		if rule, ok := thumbnailRules[p]; ok {
			for _, re := range rule.patterns {
				if m := re.FindStringSubmatch(rawURL); m != nil {
					return rule.build(m[1])
				}
			}
		}
	}

	return PlaceholderThumbnail(rawURL)
}

// PlaceholderThumbnail returns the deterministic fallback image for rawURL.
func PlaceholderThumbnail(rawURL string) string {
	return placeholderTemplate + placeholderSeed(rawURL)
}

// placeholderSeed sums the UTF-16 code units of s modulo 1000.
func placeholderSeed(s string) string {
	if s == "" {
		return "default"
	}
	sum := 0
	for _, u := range utf16.Encode([]rune(s)) {
		sum += int(u)
	}
	return strconv.Itoa(sum % 1000)
}

// uriComponentUnescaper restores the characters encodeURIComponent leaves
// alone but url.QueryEscape escapes.
var uriComponentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeURIComponent escapes s for use as a single query value, spaces as %20.
func encodeURIComponent(s string) string {
	return uriComponentUnescaper.Replace(url.QueryEscape(s))
}
