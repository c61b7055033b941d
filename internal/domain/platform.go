package domain

// Platform identifies the site a video URL belongs to.
type Platform string

const (
	PlatformYouTube     Platform = "youtube"
	PlatformFacebook    Platform = "facebook"
	PlatformInstagram   Platform = "instagram"
	PlatformTikTok      Platform = "tiktok"
	PlatformTwitter     Platform = "twitter"
	PlatformVimeo       Platform = "vimeo"
	PlatformDramaWave   Platform = "dramawave"
	PlatformDailymotion Platform = "dailymotion"
	PlatformTwitch      Platform = "twitch"
	PlatformReddit      Platform = "reddit"
	PlatformLinkedIn    Platform = "linkedin"
	PlatformUnknown     Platform = "unknown"
)

// String returns the string representation of the Platform.
func (p Platform) String() string {
	return string(p)
}

// AllPlatforms lists every known platform, unknown last.
func AllPlatforms() []Platform {
	return []Platform{
		PlatformYouTube,
		PlatformFacebook,
		PlatformInstagram,
		PlatformTikTok,
		PlatformTwitter,
		PlatformVimeo,
		PlatformDramaWave,
		PlatformDailymotion,
		PlatformTwitch,
		PlatformReddit,
		PlatformLinkedIn,
		PlatformUnknown,
	}
}

// ParsePlatform returns the Platform named s and whether it is part of the closed set.
func ParsePlatform(s string) (Platform, bool) {
	for _, p := range AllPlatforms() {
		if string(p) == s {
			return p, true
		}
	}
	return PlatformUnknown, false
}
