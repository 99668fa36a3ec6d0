// Package scoped builds classifiers from a simple "capture only these,
// ignore those" description.
package scoped

import (
	"github.com/supergoodsystems/supergood-sanitizer/pkg/classifier"
	"github.com/supergoodsystems/supergood-sanitizer/pkg/event"
	"github.com/supergoodsystems/supergood-sanitizer/pkg/pattern"
)

// Targets lists domains and URL patterns.
type Targets struct {
	Domains  []string
	Patterns []pattern.Pattern
}

// Scope describes which traffic to capture and which to ignore. A nil
// Targets, or a nil list inside one, keeps the engine default.
type Scope struct {
	// CaptureOnly.Domains become own domains and CaptureOnly.Patterns become
	// API patterns.
	CaptureOnly *Targets
	// Ignore.Domains become ignored domains. Ignore.Patterns become a custom
	// filter that accepts every URL not matching them.
	Ignore *Targets
}

// Options translates s into classifier options.
//
// Ignore.Patterns do not force a drop: the custom filter runs last, so an
// ignored URL is still kept by any earlier rule (failure, slow, API pattern,
// mutation, own domain). Conversely every URL that is not ignored passes the
// filter and is kept.
func (s Scope) Options() *classifier.Options {
	o := &classifier.Options{}
	if s.CaptureOnly != nil {
		o.OwnDomains = s.CaptureOnly.Domains
		o.APIPatterns = s.CaptureOnly.Patterns
	}
	if s.Ignore != nil {
		o.IgnoredDomains = s.Ignore.Domains
		if len(s.Ignore.Patterns) > 0 {
			ignored := append([]pattern.Pattern{}, s.Ignore.Patterns...)
			o.CustomFilter = func(ev *event.RequestEvent) bool {
				return !pattern.MatchAny(ev.URL, ignored)
			}
		}
	}
	return o
}

// New returns a classifier for s.
func New(s Scope) classifier.Classifier {
	return classifier.New(s.Options())
}
