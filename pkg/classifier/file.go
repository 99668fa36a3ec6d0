package classifier

import (
	"fmt"
	"os"
	"time"

	"github.com/supergoodsystems/supergood-sanitizer/pkg/pattern"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Options in a YAML document. Keys that are absent keep
// their defaults; keys set to an empty list switch the rule off.
type fileConfig struct {
	SlowRequestThresholdMs float64       `yaml:"slowRequestThresholdMs"`
	ErrorStatusThreshold   int           `yaml:"errorStatusThreshold"`
	IgnoredDomains         []string      `yaml:"ignoredDomains"`
	APIPatterns            []filePattern `yaml:"apiPatterns"`
	IgnoredExtensions      []string      `yaml:"ignoredExtensions"`
	OwnDomains             []string      `yaml:"ownDomains"`
	Origin                 string        `yaml:"origin"`
}

// filePattern accepts either a bare string (a literal) or a mapping with
// exactly one of "literal" or "regex".
type filePattern struct {
	pattern.Pattern
}

func (p *filePattern) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		p.Pattern = pattern.Literal(node.Value)
		return nil
	}

	var raw struct {
		Literal *string `yaml:"literal"`
		Regex   *string `yaml:"regex"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}

	switch {
	case raw.Literal != nil && raw.Regex == nil:
		p.Pattern = pattern.Literal(*raw.Literal)
	case raw.Regex != nil && raw.Literal == nil:
		compiled, err := pattern.CompileRegex(*raw.Regex)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		p.Pattern = compiled
	default:
		return fmt.Errorf("line %d: pattern needs exactly one of literal or regex", node.Line)
	}
	return nil
}

// LoadFile reads classifier Options from a YAML file.
func LoadFile(path string) (*Options, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sanitizer: reading config: %w", err)
	}
	return ParseYAML(b)
}

// ParseYAML reads classifier Options from a YAML document.
func ParseYAML(b []byte) (*Options, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return nil, fmt.Errorf("sanitizer: invalid config: %w", err)
	}

	o := &Options{
		SlowRequestThreshold: time.Duration(fc.SlowRequestThresholdMs * float64(time.Millisecond)),
		ErrorStatusThreshold: fc.ErrorStatusThreshold,
		IgnoredDomains:       fc.IgnoredDomains,
		IgnoredExtensions:    fc.IgnoredExtensions,
		OwnDomains:           fc.OwnDomains,
		Origin:               fc.Origin,
	}
	if fc.APIPatterns != nil {
		o.APIPatterns = make([]pattern.Pattern, 0, len(fc.APIPatterns))
		for _, p := range fc.APIPatterns {
			o.APIPatterns = append(o.APIPatterns, p.Pattern)
		}
	}
	return o, nil
}
