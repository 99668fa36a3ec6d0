// Package presets provides ready-made classifiers for common trade-offs
// between telemetry volume and diagnostic detail.
package presets

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/supergoodsystems/supergood-sanitizer/pkg/classifier"
	"github.com/supergoodsystems/supergood-sanitizer/pkg/event"
	"github.com/supergoodsystems/supergood-sanitizer/pkg/pattern"
)

const (
	NameStrict   = "strict"
	NameBalanced = "balanced"
	NameVerbose  = "verbose"
	NameDebug    = "debug"
)

var byName = map[string]func(origins ...string) classifier.Classifier{
	NameStrict:   Strict,
	NameBalanced: Balanced,
	NameVerbose:  Verbose,
	NameDebug:    Debug,
}

// Every preset takes the hostnames of the application doing the recording.
// Calls to them are kept by the own domain rule; with no origins that rule
// never fires.

// Strict keeps failures and requests slower than five seconds. API pattern
// capture is off.
func Strict(origins ...string) classifier.Classifier {
	return classifier.New(&classifier.Options{
		SlowRequestThreshold: 5000 * time.Millisecond,
		APIPatterns:          []pattern.Pattern{},
		OwnDomains:           ownDomains(origins),
	})
}

// Balanced uses every default. It is the recommended baseline.
func Balanced(origins ...string) classifier.Classifier {
	return classifier.New(&classifier.Options{
		OwnDomains: ownDomains(origins),
	})
}

// Verbose lowers the slow threshold to one second and keeps third-party
// traffic.
func Verbose(origins ...string) classifier.Classifier {
	return classifier.New(&classifier.Options{
		SlowRequestThreshold: 1000 * time.Millisecond,
		IgnoredDomains:       []string{},
		OwnDomains:           ownDomains(origins),
	})
}

// Debug keeps every event without consulting the rule chain. Origins are
// accepted for symmetry and ignored.
func Debug(origins ...string) classifier.Classifier {
	return classifier.Func(func(ev *event.RequestEvent) classifier.Verdict {
		return classifier.Keep(ev, classifier.RuleDebug)
	})
}

// ByName returns the preset called name, ignoring case, built for origins.
func ByName(name string, origins ...string) (classifier.Classifier, error) {
	build, ok := byName[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("sanitizer: unknown preset %q (expected one of %s)", name, strings.Join(Names(), ", "))
	}
	return build(origins...), nil
}

func ownDomains(origins []string) []string {
	if len(origins) == 0 {
		return nil
	}
	return append([]string{}, origins...)
}

// Names lists the available presets in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
