package classifier

import (
	"strings"
	"time"

	"github.com/supergoodsystems/supergood-sanitizer/pkg/event"
	"github.com/supergoodsystems/supergood-sanitizer/pkg/pattern"
)

// Options configure a classifier. Every field is optional: zero numbers and
// nil slices fall back to the documented default, while a non-nil empty
// slice switches the corresponding rule off.
//
// Since zero selects the default, a threshold of exactly zero can not be
// expressed. Use time.Nanosecond to keep every timed call, or a status of 1
// to keep every completed call.
type Options struct {
	// SlowRequestThreshold keeps calls that took longer than this. Untimed
	// calls (zero Duration) are never slow.
	// (defaults to DefaultSlowRequestThreshold, a negative value disables the rule)
	SlowRequestThreshold time.Duration

	// ErrorStatusThreshold keeps calls whose status is at least this. Calls
	// that never completed (status 0) are not failures, whatever the threshold.
	// (defaults to DefaultErrorStatusThreshold)
	ErrorStatusThreshold int

	// IgnoredDomains drops calls whose hostname or URL contains an entry.
	// Hostname matching is case sensitive.
	// (defaults to DefaultIgnoredDomains)
	IgnoredDomains []string

	// APIPatterns keeps calls whose URL matches any pattern. Empty literals
	// are discarded like blank domains.
	// (defaults to DefaultAPIPatterns)
	APIPatterns []pattern.Pattern

	// IgnoredExtensions drops calls whose URL ends with an entry. Matching is
	// case insensitive.
	// (defaults to DefaultIgnoredExtensions)
	IgnoredExtensions []string

	// OwnDomains keeps calls whose hostname contains an entry.
	// (defaults to Origin, or nothing when Origin is empty)
	OwnDomains []string

	// Origin is the hostname of the application doing the recording.
	Origin string

	// CustomFilter keeps calls it returns true for. It runs last.
	CustomFilter func(ev *event.RequestEvent) bool
}

// Config is a fully resolved set of Options. Engines never modify it.
type Config struct {
	SlowRequestThreshold time.Duration
	ErrorStatusThreshold int
	IgnoredDomains       []string
	APIPatterns          []pattern.Pattern
	IgnoredExtensions    []string
	OwnDomains           []string
	CustomFilter         func(ev *event.RequestEvent) bool
}

// DefaultOptions returns Options with every default spelled out.
func DefaultOptions() *Options {
	c := (*Options)(nil).parse()
	return &Options{
		SlowRequestThreshold: c.SlowRequestThreshold,
		ErrorStatusThreshold: c.ErrorStatusThreshold,
		IgnoredDomains:       c.IgnoredDomains,
		APIPatterns:          c.APIPatterns,
		IgnoredExtensions:    c.IgnoredExtensions,
		OwnDomains:           c.OwnDomains,
	}
}

func (o *Options) parse() Config {
	if o == nil {
		o = &Options{}
	}

	c := Config{
		SlowRequestThreshold: o.SlowRequestThreshold,
		ErrorStatusThreshold: o.ErrorStatusThreshold,
		CustomFilter:         o.CustomFilter,
	}

	if c.SlowRequestThreshold == 0 {
		c.SlowRequestThreshold = DefaultSlowRequestThreshold
	}
	if c.ErrorStatusThreshold == 0 {
		c.ErrorStatusThreshold = DefaultErrorStatusThreshold
	}

	if o.IgnoredDomains == nil {
		c.IgnoredDomains = DefaultIgnoredDomains()
	} else {
		c.IgnoredDomains = nonEmpty(o.IgnoredDomains, false)
	}

	if o.APIPatterns == nil {
		c.APIPatterns = DefaultAPIPatterns()
	} else {
		c.APIPatterns = nonEmptyPatterns(o.APIPatterns)
	}

	if o.IgnoredExtensions == nil {
		c.IgnoredExtensions = DefaultIgnoredExtensions()
	} else {
		c.IgnoredExtensions = nonEmpty(o.IgnoredExtensions, true)
	}

	if o.OwnDomains == nil {
		c.OwnDomains = nonEmpty([]string{o.Origin}, false)
	} else {
		c.OwnDomains = nonEmpty(o.OwnDomains, false)
	}

	return c
}

// nonEmpty copies values, skipping blanks. An empty entry would be a
// substring of every URL.
func nonEmpty(values []string, lower bool) []string {
	ret := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if lower {
			v = strings.ToLower(v)
		}
		ret = append(ret, v)
	}
	return ret
}

func nonEmptyPatterns(patterns []pattern.Pattern) []pattern.Pattern {
	ret := make([]pattern.Pattern, 0, len(patterns))
	for _, p := range patterns {
		if p.Kind() == pattern.KindLiteral && p.Value() == "" {
			continue
		}
		ret = append(ret, p)
	}
	return ret
}

func (c Config) clone() Config {
	c.IgnoredDomains = append([]string{}, c.IgnoredDomains...)
	c.APIPatterns = append([]pattern.Pattern{}, c.APIPatterns...)
	c.IgnoredExtensions = append([]string{}, c.IgnoredExtensions...)
	c.OwnDomains = append([]string{}, c.OwnDomains...)
	return c
}
