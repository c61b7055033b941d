// Package platform maps video URLs to the site they belong to and
// synthesizes the static data used when the downloader is unavailable.
package platform

import (
	"fmt"
	"regexp"

	"github.com/iconidentify/vidgrab/internal/domain"
)

// Rule pairs a platform with the pattern that identifies its URLs.
type Rule struct {
	Platform domain.Platform `yaml:"name"`
	Pattern  string          `yaml:"pattern"`
}

// DefaultRules returns the built-in rule table. Order is priority.
func DefaultRules() []Rule {
	return []Rule{
		{domain.PlatformYouTube, `youtube\.com|youtu\.be`},
		{domain.PlatformFacebook, `facebook\.com|fb\.watch`},
		{domain.PlatformInstagram, `instagram\.com`},
		{domain.PlatformTikTok, `tiktok\.com`},
		{domain.PlatformTwitter, `twitter\.com|x\.com`},
		{domain.PlatformVimeo, `vimeo\.com`},
		{domain.PlatformDramaWave, `mydramawave\.com`},
		{domain.PlatformDailymotion, `dailymotion\.com`},
		{domain.PlatformTwitch, `twitch\.tv`},
		{domain.PlatformReddit, `reddit\.com`},
		{domain.PlatformLinkedIn, `linkedin\.com`},
	}
}

type compiledRule struct {
	platform domain.Platform
	re       *regexp.Regexp
}

// Classifier detects the platform of a URL using an ordered rule table.
// The first matching rule wins.
type Classifier struct {
	rules []compiledRule
}

// NewClassifier compiles rules into a Classifier.
// An empty rule set falls back to DefaultRules.
func NewClassifier(rules []Rule) (*Classifier, error) {
	if len(rules) == 0 {
		rules = DefaultRules()
	}

	c := &Classifier{rules: make([]compiledRule, 0, len(rules))}
	for i, r := range rules {
		if _, ok := domain.ParsePlatform(string(r.Platform)); !ok || r.Platform == domain.PlatformUnknown {
			return nil, fmt.Errorf("rule %d: unknown platform %q", i, r.Platform)
		}
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i, r.Platform, err)
		}
		c.rules = append(c.rules, compiledRule{platform: r.Platform, re: re})
	}

	return c, nil
}

// MustNewClassifier is like NewClassifier but panics on error.
func MustNewClassifier(rules []Rule) *Classifier {
	c, err := NewClassifier(rules)
	if err != nil {
		panic(err)
	}
	return c
}

// Detect returns the platform of rawURL, or PlatformUnknown.
func (c *Classifier) Detect(rawURL string) domain.Platform {
	for _, r := range c.rules {
		if r.re.MatchString(rawURL) {
			return r.platform
		}
	}
	return domain.PlatformUnknown
}
