package classifier

import (
	"fmt"

	"github.com/supergoodsystems/supergood-sanitizer/pkg/event"
)

// Rule identifies the step of the chain that produced a Verdict.
type Rule int

const (
	RuleNone Rule = iota
	RuleFailure
	RuleSlow
	RuleStaticResource
	RuleThirdParty
	RuleAPIPattern
	RuleMutation
	RuleOwnDomain
	RuleCustomFilter
	RuleDefault
	// RuleDebug marks verdicts from classifiers that keep everything.
	RuleDebug
)

var ruleNames = map[Rule]string{
	RuleNone:           "none",
	RuleFailure:        "failure",
	RuleSlow:           "slow",
	RuleStaticResource: "static_resource",
	RuleThirdParty:     "third_party",
	RuleAPIPattern:     "api_pattern",
	RuleMutation:       "mutation",
	RuleOwnDomain:      "own_domain",
	RuleCustomFilter:   "custom_filter",
	RuleDefault:        "default",
	RuleDebug:          "debug",
}

func (r Rule) String() string {
	if name, ok := ruleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Rule(%d)", int(r))
}

// Verdict is the outcome of classifying one event: either Keep, carrying the
// event on unchanged, or Drop.
type Verdict struct {
	event *event.RequestEvent
	keep  bool
	rule  Rule
}

// Keep returns a verdict that forwards ev.
func Keep(ev *event.RequestEvent, rule Rule) Verdict {
	return Verdict{event: ev, keep: true, rule: rule}
}

// Drop returns a verdict that discards the event.
func Drop(rule Rule) Verdict {
	return Verdict{rule: rule}
}

func (v Verdict) Kept() bool { return v.keep }

// Event returns the kept event, or nil for a dropped one.
func (v Verdict) Event() *event.RequestEvent { return v.event }

func (v Verdict) Rule() Rule { return v.rule }

func (v Verdict) String() string {
	if v.keep {
		return "keep(" + v.rule.String() + ")"
	}
	return "drop(" + v.rule.String() + ")"
}
