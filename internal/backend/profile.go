// Package backend discovers locally installed text-generation backends and
// invokes them as subprocesses. A backend is an opaque prompt-in/text-out
// capability; this package knows nothing about what the prompts mean.
package backend

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// SpeedTier is a coarse latency classification for a backend.
type SpeedTier string

const (
	SpeedFast   SpeedTier = "fast"
	SpeedMedium SpeedTier = "medium"
	SpeedSlow   SpeedTier = "slow"
)

// String returns the tier as a string.
func (s SpeedTier) String() string {
	return string(s)
}

// IsValid returns true if this is a known speed tier.
func (s SpeedTier) IsValid() bool {
	switch s {
	case SpeedFast, SpeedMedium, SpeedSlow:
		return true
	default:
		return false
	}
}

// QualityTier is a coarse output-quality classification for a backend.
type QualityTier string

const (
	QualityBasic       QualityTier = "basic"
	QualityGood        QualityTier = "good"
	QualityHigh        QualityTier = "high"
	QualityMedium      QualityTier = "medium"
	QualitySpecialized QualityTier = "specialized"
)

// String returns the tier as a string.
func (q QualityTier) String() string {
	return string(q)
}

// IsValid returns true if this is a known quality tier.
func (q QualityTier) IsValid() bool {
	switch q {
	case QualityBasic, QualityGood, QualityHigh, QualityMedium, QualitySpecialized:
		return true
	default:
		return false
	}
}

// Profile describes one available backend. Profiles are built once at
// discovery time and never mutated.
type Profile struct {
	// ID is the backend identifier as reported by the host tool
	// (e.g. "llama3.1:8b").
	ID string `json:"id" yaml:"id"`

	// Size is the reported parameter-scale label (informational only).
	Size string `json:"size,omitempty" yaml:"size,omitempty"`

	// Speed is the latency tier used for strategy-based selection.
	Speed SpeedTier `json:"speed" yaml:"speed"`

	// Quality is the output-quality tier used for strategy-based selection.
	Quality QualityTier `json:"quality" yaml:"quality"`
}

// Priority ranks a profile for the consensus strategy: fast backends first,
// then medium-speed high-quality ones, then everything else.
func (p Profile) Priority() int {
	switch {
	case p.Speed == SpeedFast:
		return 3
	case p.Speed == SpeedMedium && p.Quality == QualityHigh:
		return 2
	default:
		return 1
	}
}

// classRule classifies a backend name by substring match.
type classRule struct {
	Substrings []string    `yaml:"substrings"`
	Size       string      `yaml:"size"`
	Speed      SpeedTier   `yaml:"speed"`
	Quality    QualityTier `yaml:"quality"`
}

// defaultClassRules is the built-in classification table. It is local policy:
// nothing downstream depends on it beyond the two tier enums. Order matters;
// the first matching rule wins.
var defaultClassRules = []classRule{
	{Substrings: []string{"tinyllama", "smollm"}, Size: "1-2B", Speed: SpeedFast, Quality: QualityBasic},
	{Substrings: []string{"gemma:2b", "codegemma:2b"}, Size: "2B", Speed: SpeedFast, Quality: QualityGood},
	{Substrings: []string{"phi3", "qwen2.5:14b"}, Size: "3-14B", Speed: SpeedMedium, Quality: QualityHigh},
	{Substrings: []string{"llama3.1:8b", "mistral:7b"}, Size: "7-8B", Speed: SpeedMedium, Quality: QualityHigh},
	{Substrings: []string{"codellama"}, Size: "7-13B", Speed: SpeedSlow, Quality: QualitySpecialized},
}

// Classifier assigns tiers to backend names.
type Classifier struct {
	rules []classRule
}

// NewClassifier returns a classifier using the built-in rule table.
func NewClassifier() *Classifier {
	return &Classifier{rules: defaultClassRules}
}

// ParseClassifier builds a classifier from a YAML rule list, appended in
// front of the built-in rules so overrides win.
func ParseClassifier(data []byte) (*Classifier, error) {
	var rules []classRule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, err
	}
	return &Classifier{rules: append(rules, defaultClassRules...)}, nil
}

// Classify returns the profile for a backend name. Names matching no rule
// get a medium/medium default.
func (c *Classifier) Classify(name string) Profile {
	lower := strings.ToLower(name)
	for _, rule := range c.rules {
		for _, sub := range rule.Substrings {
			if strings.Contains(lower, sub) {
				return Profile{ID: name, Size: rule.Size, Speed: rule.Speed, Quality: rule.Quality}
			}
		}
	}
	return Profile{ID: name, Size: "unknown", Speed: SpeedMedium, Quality: QualityMedium}
}
