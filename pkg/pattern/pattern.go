// Package pattern matches captured URLs against literal and regular
// expression patterns.
package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind tags the variant held by a Pattern.
type Kind int

const (
	KindLiteral Kind = iota
	KindRegex
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindRegex:
		return "regex"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Pattern is either a literal or a regular expression. Construct with
// Literal, Regex or CompileRegex.
type Pattern struct {
	kind  Kind
	value string
	lower string
	re    *regexp.Regexp
}

// Literal matches when s occurs anywhere in the URL, ignoring case.
func Literal(s string) Pattern {
	return Pattern{kind: KindLiteral, value: s, lower: strings.ToLower(s)}
}

// Regex matches when expr finds a match in the URL. Matching is case
// sensitive. An expression that does not compile never matches.
func Regex(expr string) Pattern {
	re, _ := regexp.Compile(expr)
	return Pattern{kind: KindRegex, value: expr, re: re}
}

// CompileRegex is Regex for callers that want the compile error.
func CompileRegex(expr string) (Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, fmt.Errorf("sanitizer: invalid pattern %q: %w", expr, err)
	}
	return Pattern{kind: KindRegex, value: expr, re: re}, nil
}

func (p Pattern) Kind() Kind     { return p.kind }
func (p Pattern) Value() string  { return p.value }
func (p Pattern) String() string { return p.kind.String() + ":" + p.value }

// Match reports whether url satisfies p.
func (p Pattern) Match(url string) bool {
	switch p.kind {
	case KindLiteral:
		return strings.Contains(strings.ToLower(url), p.lower)
	case KindRegex:
		return p.re != nil && p.re.MatchString(url)
	default:
		return false
	}
}

// MatchAny reports whether url satisfies any of patterns.
func MatchAny(url string, patterns []Pattern) bool {
	if len(patterns) == 0 {
		return false
	}
	lowerURL := strings.ToLower(url)
	for _, p := range patterns {
		switch p.kind {
		case KindLiteral:
			if strings.Contains(lowerURL, p.lower) {
				return true
			}
		case KindRegex:
			if p.re != nil && p.re.MatchString(url) {
				return true
			}
		}
	}
	return false
}

// HostnameContains reports whether domain occurs in hostname. When it does
// not, domain is looked up in the lower-cased url instead, which catches
// path-style entries such as "facebook.com/tr" and relative URLs.
func HostnameContains(hostname, url, domain string) bool {
	if domain == "" {
		return false
	}
	if hostname != "" && strings.Contains(hostname, domain) {
		return true
	}
	return strings.Contains(strings.ToLower(url), domain)
}
