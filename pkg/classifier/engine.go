// Package classifier decides which captured network calls are worth keeping.
//
// An Engine runs a fixed chain of rules against each event and stops at the
// first one that decides:
//
//  1. failure: status at or above ErrorStatusThreshold is kept, always
//  2. slow: duration above SlowRequestThreshold is kept
//  3. static resource: URL ending in an ignored extension is dropped
//  4. third party: hostname or URL containing an ignored domain is dropped
//  5. api pattern: URL matching an API pattern is kept
//  6. mutation: any method besides GET, HEAD and OPTIONS is kept
//  7. own domain: hostname containing an own domain is kept
//  8. custom filter: kept when CustomFilter returns true
//  9. otherwise dropped
package classifier

import (
	"strings"

	"github.com/supergoodsystems/supergood-sanitizer/internal/domainutils"
	"github.com/supergoodsystems/supergood-sanitizer/pkg/event"
	"github.com/supergoodsystems/supergood-sanitizer/pkg/pattern"
)

// Classifier turns an event into a Verdict. Implementations in this module
// hold no mutable state and are safe for concurrent use.
type Classifier interface {
	Classify(ev *event.RequestEvent) Verdict
}

// Func adapts a plain function to Classifier.
type Func func(ev *event.RequestEvent) Verdict

func (f Func) Classify(ev *event.RequestEvent) Verdict { return f(ev) }

// Engine is the rule chain bound to one resolved Config.
type Engine struct {
	cfg Config
}

// New resolves o and returns an engine for it. A nil o uses all defaults.
func New(o *Options) *Engine {
	return &Engine{cfg: o.parse()}
}

// Config returns a copy of the resolved configuration.
func (e *Engine) Config() Config {
	return e.cfg.clone()
}

// Classify never fails and never modifies ev. A panic in CustomFilter is
// not recovered.
func (e *Engine) Classify(ev *event.RequestEvent) Verdict {
	if ev == nil {
		return Drop(RuleDefault)
	}
	c := &e.cfg

	// status 0 means the call never completed
	if ev.Status > 0 && ev.Status >= c.ErrorStatusThreshold {
		return Keep(ev, RuleFailure)
	}

	if c.SlowRequestThreshold >= 0 && ev.Duration > c.SlowRequestThreshold {
		return Keep(ev, RuleSlow)
	}

	// Suffix test on the whole URL, so "/app.js?v=3" is not caught.
	lowerURL := strings.ToLower(ev.URL)
	for _, ext := range c.IgnoredExtensions {
		if strings.HasSuffix(lowerURL, ext) {
			return Drop(RuleStaticResource)
		}
	}

	hostname := domainutils.Hostname(ev.URL)
	for _, domain := range c.IgnoredDomains {
		if pattern.HostnameContains(hostname, lowerURL, domain) {
			return Drop(RuleThirdParty)
		}
	}

	if pattern.MatchAny(ev.URL, c.APIPatterns) {
		return Keep(ev, RuleAPIPattern)
	}

	if isMutation(ev.Method) {
		return Keep(ev, RuleMutation)
	}

	for _, domain := range c.OwnDomains {
		if pattern.HostnameContains(hostname, lowerURL, domain) {
			return Keep(ev, RuleOwnDomain)
		}
	}

	if c.CustomFilter != nil && c.CustomFilter(ev) {
		return Keep(ev, RuleCustomFilter)
	}

	return Drop(RuleDefault)
}

// an empty method is left to the caller to normalize
func isMutation(method string) bool {
	switch strings.ToUpper(method) {
	case "", "GET", "HEAD", "OPTIONS":
		return false
	default:
		return true
	}
}
