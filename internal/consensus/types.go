// Package consensus turns free-text backend replies into structured
// enrichment candidates and merges candidates from multiple backends into a
// single weighted-vote result.
package consensus

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// List size limits for one enrichment record. Consensus results may hold
// fewer entries; padding to the exact counts is output formatting, handled
// by the orchestrator.
const (
	MaxSynonyms  = 5
	MaxAntonyms  = 5
	MaxSentences = 3
)

// DefaultConfidence is assumed when a backend reports no usable confidence.
const DefaultConfidence Confidence = 0.8

// Confidence is a vote weight in [0, 1].
type Confidence float64

// Validate checks that the confidence is in range.
func (c Confidence) Validate() error {
	if c < 0 || c > 1 {
		return fmt.Errorf("confidence must be between 0.0 and 1.0, got %f", float64(c))
	}
	return nil
}

// Clamp forces the confidence into [0, 1].
func (c Confidence) Clamp() Confidence {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// String returns the confidence as a percentage.
func (c Confidence) String() string {
	return fmt.Sprintf("%.0f%%", float64(c)*100)
}

// ParseConfidence converts a backend-reported confidence string to a
// Confidence. Accepts floats ("0.8"), percentages ("80%"), and qualitative
// levels ("high"=0.8, "medium"=0.5, "low"=0.2). Returns DefaultConfidence
// and false when the string is unusable.
func ParseConfidence(s string) (Confidence, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "high":
		return 0.8, true
	case "medium", "med":
		return 0.5, true
	case "low":
		return 0.2, true
	}
	pct := false
	if strings.HasSuffix(s, "%") {
		s = strings.TrimSuffix(s, "%")
		pct = true
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return DefaultConfidence, false
	}
	if pct {
		f /= 100
	}
	c := Confidence(f)
	if c.Validate() != nil {
		return DefaultConfidence, false
	}
	return c, true
}

// Candidate is one backend's parsed proposal for one word. Candidates are
// immutable after parse and discarded once folded into a Result.
type Candidate struct {
	// BackendID identifies the backend that produced this candidate.
	BackendID string `json:"backend_id"`

	// Synonyms holds up to 5 proposed synonyms, in reply order.
	Synonyms []string `json:"synonyms"`

	// Antonyms holds up to 5 proposed antonyms, in reply order.
	Antonyms []string `json:"antonyms"`

	// Sentences holds up to 3 proposed example sentences.
	Sentences []string `json:"sentences"`

	// Etymology is the proposed origin text, possibly empty.
	Etymology string `json:"etymology"`

	// Confidence is the backend's self-reported confidence, used as this
	// candidate's vote weight.
	Confidence Confidence `json:"confidence"`

	// Latency is how long the backend took to answer.
	Latency time.Duration `json:"latency"`
}

// Complete reports whether the candidate carries enough content to stand on
// its own: at least 3 synonyms, 3 antonyms, one sentence, and an etymology.
// This is the strict-mode acceptance bar.
func (c *Candidate) Complete() bool {
	return len(c.Synonyms) >= 3 && len(c.Antonyms) >= 3 && len(c.Sentences) > 0 && c.Etymology != ""
}

// Result is the merged answer for one word, built once from one or more
// candidates and immutable afterwards.
type Result struct {
	// Synonyms are the top-voted synonyms, best first, at most 5.
	Synonyms []string `json:"final_synonyms"`

	// Antonyms are the top-voted antonyms, best first, at most 5.
	Antonyms []string `json:"final_antonyms"`

	// Sentences are the selected example sentences, at most 3.
	Sentences []string `json:"final_sentences"`

	// Etymology is the winning candidate's etymology text.
	Etymology string `json:"final_etymology"`

	// ConfidenceScore is the mean of the contributing vote weights.
	ConfidenceScore Confidence `json:"confidence_score"`

	// AgreementLevel is realized weight over maximum possible weight: near
	// 1 when all backends answered with similarly high confidence, near 0
	// under high variance or a lone low-confidence respondent.
	AgreementLevel Confidence `json:"agreement_level"`

	// Votes maps each contributing backend to its vote weight.
	Votes map[string]Confidence `json:"model_votes"`
}
