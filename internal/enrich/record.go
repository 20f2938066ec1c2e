package enrich

import (
	"strconv"
	"time"

	"github.com/shahbajlive/lexforge/internal/validate"
	"github.com/shahbajlive/lexforge/internal/wordlist"
)

// Strategy selects how backends are combined for one word.
type Strategy string

const (
	// StrategyConsensus queries the top-priority backends in parallel and
	// merges their answers by weighted vote.
	StrategyConsensus Strategy = "consensus"

	// StrategyExpertPanel routes the word to role-specialized backends.
	StrategyExpertPanel Strategy = "expert_panel"

	// StrategyCrossCheck takes one backend's answer and has others score it.
	StrategyCrossCheck Strategy = "cross_check"
)

// String returns the strategy as a string.
func (s Strategy) String() string {
	return string(s)
}

// IsValid returns true if this is a known strategy.
func (s Strategy) IsValid() bool {
	switch s {
	case StrategyConsensus, StrategyExpertPanel, StrategyCrossCheck:
		return true
	default:
		return false
	}
}

// ParseStrategy parses a strategy name, accepting hyphenated spellings.
func ParseStrategy(s string) (Strategy, bool) {
	switch s {
	case "consensus":
		return StrategyConsensus, true
	case "expert_panel", "expert-panel":
		return StrategyExpertPanel, true
	case "cross_check", "cross-check":
		return StrategyCrossCheck, true
	default:
		return "", false
	}
}

// Record is the finished enrichment for one word. Counts are exact after
// padding: 5 synonyms, 5 antonyms, 3 sentences, and a non-empty etymology.
type Record struct {
	Word         string                `json:"word"`
	PartOfSpeech wordlist.PartOfSpeech `json:"part_of_speech"`
	Definition   string                `json:"definition"`

	Synonyms  []string `json:"synonyms"`
	Antonyms  []string `json:"antonyms"`
	Sentences []string `json:"sentences"`
	Etymology string   `json:"etymology"`

	// Strategy is the combination strategy that produced this record.
	Strategy Strategy `json:"strategy"`

	// ConsensusAchieved is true when the merged confidence cleared the
	// minimum; false means the deterministic fallback filled the record.
	ConsensusAchieved bool `json:"consensus_achieved"`

	ConfidenceScore float64  `json:"confidence_score"`
	AgreementLevel  float64  `json:"agreement_level"`
	ModelsUsed      []string `json:"models_used"`
	FallbackUsed    bool     `json:"fallback_used"`

	// Validation is the post-hoc quality report, present unless validation
	// was disabled for the run.
	Validation *validate.Report `json:"validation,omitempty"`

	// Elapsed is the wall time spent on this word.
	Elapsed time.Duration `json:"elapsed_ns"`
}

// pad grows a list to want entries using numbered placeholders.
func pad(list []string, want int, prefix string) []string {
	for len(list) < want {
		list = append(list, prefix+strconv.Itoa(len(list)+1))
	}
	return list[:want]
}

// padSentences grows a sentence list to want entries with a template that
// still mentions the word.
func padSentences(list []string, want int, word string) []string {
	for len(list) < want {
		list = append(list, "Example sentence for "+word+".")
	}
	return list[:want]
}
