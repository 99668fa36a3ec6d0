package classifier

import (
	"time"

	"github.com/supergoodsystems/supergood-sanitizer/pkg/pattern"
)

const (
	DefaultSlowRequestThreshold = 2000 * time.Millisecond
	DefaultErrorStatusThreshold = 400
)

// DefaultIgnoredDomains are analytics, advertising, monitoring and session
// replay hosts whose traffic carries no signal about the recorded app.
func DefaultIgnoredDomains() []string {
	return []string{
		"google-analytics.com",
		"analytics.google.com",
		"googletagmanager.com",
		"doubleclick.net",
		"googlesyndication.com",
		"googleadservices.com",
		"facebook.com/tr",
		"connect.facebook.net",
		"bat.bing.com",
		"clarity.ms",
		"px.ads.linkedin.com",
		"analytics.tiktok.com",
		"segment.io",
		"segment.com",
		"mixpanel.com",
		"mxpnl.com",
		"amplitude.com",
		"heapanalytics.com",
		"hotjar.com",
		"hotjar.io",
		"fullstory.com",
		"logrocket.com",
		"lr-ingest.io",
		"lr-in.com",
		"mouseflow.com",
		"smartlook.com",
		"posthog.com",
		"plausible.io",
		"intercom.io",
		"sentry.io",
		"browser-intake-datadoghq.com",
		"nr-data.net",
		"newrelic.com",
		"optimizely.com",
	}
}

// DefaultAPIPatterns are path fragments that usually identify backend calls.
func DefaultAPIPatterns() []pattern.Pattern {
	return []pattern.Pattern{
		pattern.Literal("/api/"),
		pattern.Literal("/graphql"),
		pattern.Literal("/rest/"),
		pattern.Literal("/rpc/"),
		pattern.Literal("/trpc/"),
		pattern.Literal("/v1/"),
		pattern.Literal("/v2/"),
		pattern.Literal("/v3/"),
	}
}

// DefaultIgnoredExtensions are suffixes of static assets.
func DefaultIgnoredExtensions() []string {
	return []string{
		// scripts and styles
		".js", ".mjs", ".css", ".map",
		// images
		".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico", ".webp", ".avif", ".bmp",
		// fonts
		".woff", ".woff2", ".ttf", ".otf", ".eot",
		// media
		".mp4", ".webm", ".mp3", ".wav", ".ogg", ".m4a", ".mov",
		// archives
		".zip", ".gz", ".tar", ".rar", ".7z",
	}
}
