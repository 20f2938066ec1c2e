// Package validate scores enrichment records against heuristic quality
// rules. Scoring is independent of how the record was produced: consensus
// results and deterministic fallbacks go through the same battery.
package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// Level selects how strict the engine is.
type Level string

const (
	// Basic runs count, duplicate, and structural checks only.
	Basic Level = "basic"
	// Intermediate adds known-word membership checks.
	Intermediate Level = "intermediate"
	// Comprehensive adds relatedness, sentiment, and grammar heuristics.
	Comprehensive Level = "comprehensive"
)

// String returns the level as a string.
func (l Level) String() string {
	return string(l)
}

// IsValid returns true if this is a known level.
func (l Level) IsValid() bool {
	switch l {
	case Basic, Intermediate, Comprehensive:
		return true
	default:
		return false
	}
}

// Weights is the per-field contribution to the overall score. The defaults
// come from the original tuning; they are policy, not derived values.
type Weights struct {
	Synonyms  float64 `json:"synonyms" toml:"synonyms"`
	Antonyms  float64 `json:"antonyms" toml:"antonyms"`
	Sentences float64 `json:"sentences" toml:"sentences"`
	Etymology float64 `json:"etymology" toml:"etymology"`
}

// DefaultWeights returns the standard field weighting.
func DefaultWeights() Weights {
	return Weights{Synonyms: 0.30, Antonyms: 0.30, Sentences: 0.25, Etymology: 0.15}
}

// validThreshold is the per-field score at which a field counts as valid.
const validThreshold = 0.6

// FieldResult is the outcome of validating one field.
type FieldResult struct {
	// Score is the penalty-adjusted quality in [0, 1].
	Score float64 `json:"score"`

	// Valid is true when Score is at or above the validity threshold.
	Valid bool `json:"is_valid"`

	// Issues lists every penalty applied, human-readable.
	Issues []string `json:"issues,omitempty"`
}

// Report is the full validation outcome for one word.
type Report struct {
	Word      string      `json:"word"`
	Synonyms  FieldResult `json:"synonyms"`
	Antonyms  FieldResult `json:"antonyms"`
	Sentences FieldResult `json:"sentences"`
	Etymology FieldResult `json:"etymology"`

	// OverallScore is the weighted sum of the field scores.
	OverallScore float64 `json:"overall_score"`
}

// Passed reports whether the overall score clears the validity threshold.
func (r Report) Passed() bool {
	return r.OverallScore >= validThreshold
}

// Engine validates enrichment records. It is pure: no side effects, no
// mutation of inputs, and malformed input only accumulates penalties.
type Engine struct {
	level   Level
	weights Weights
}

// New returns an engine at the given strictness level.
func New(level Level, weights Weights) *Engine {
	if !level.IsValid() {
		level = Intermediate
	}
	return &Engine{level: level, weights: weights}
}

// genericSentencePatterns flags deterministic filler masquerading as real
// example sentences.
var genericSentencePatterns = []string{
	"is important in understanding",
	"is commonly used in",
	"has significant implications",
	"enhances comprehension",
	"is often encountered",
}

// genericEtymologyPatterns flags templated origin text.
var genericEtymologyPatterns = []string{
	"has ancient linguistic origins",
	"derives from classical linguistic roots",
	"has evolved through historical linguistic development",
	"comes from Latin, with the prefix",
}

// sourceLanguages are names whose presence marks an etymology as specific.
var sourceLanguages = []string{
	"Latin", "Greek", "Old French", "Old English", "Old Norse",
	"Germanic", "Proto-Indo-European", "Sanskrit", "Arabic",
}

var terminalPunct = regexp.MustCompile(`[.!?]$`)

// Validate scores a complete enrichment record. The target word, its part
// of speech, and its definition provide context for the relatedness and
// sentiment heuristics at the comprehensive level.
func (e *Engine) Validate(word, pos, definition string, synonyms, antonyms, sentences []string, etymology string) Report {
	r := Report{
		Word:      word,
		Synonyms:  e.validateSynonyms(word, definition, synonyms),
		Antonyms:  e.validateAntonyms(word, definition, synonyms, antonyms),
		Sentences: e.validateSentences(word, sentences),
		Etymology: e.validateEtymology(etymology),
	}
	r.OverallScore = r.Synonyms.Score*e.weights.Synonyms +
		r.Antonyms.Score*e.weights.Antonyms +
		r.Sentences.Score*e.weights.Sentences +
		r.Etymology.Score*e.weights.Etymology
	return r
}

// field accumulates penalties against a starting score of 1.0.
type field struct {
	score  float64
	issues []string
}

func newField() *field {
	return &field{score: 1.0}
}

func (f *field) penalize(amount float64, format string, args ...any) {
	f.score -= amount
	f.issues = append(f.issues, fmt.Sprintf(format, args...))
}

func (f *field) result() FieldResult {
	score := f.score
	if score < 0 {
		score = 0
	}
	return FieldResult{Score: score, Valid: score >= validThreshold, Issues: f.issues}
}

// placeholder reports whether an entry is a padding placeholder
// (synonymN/antonymN), which is never penalized as an unknown or unrelated
// word — the padding invariant guarantees their presence on sparse records.
func placeholder(entry string) bool {
	return strings.HasPrefix(entry, "synonym") || strings.HasPrefix(entry, "antonym")
}

func (e *Engine) validateSynonyms(word, definition string, synonyms []string) FieldResult {
	f := newField()

	if len(synonyms) != 5 {
		f.penalize(0.2, "expected 5 synonyms, got %d", len(synonyms))
	}
	if dups := duplicates(synonyms); dups > 0 {
		f.penalize(0.1, "duplicate synonyms found")
	}
	if e.level != Basic {
		if unknown := unknownWords(synonyms); len(unknown) > 0 {
			f.penalize(0.1*float64(len(unknown)), "possibly invalid words: %s", strings.Join(unknown, ", "))
		}
	}
	if containsFold(synonyms, word) {
		f.penalize(0.2, "synonyms contain the original word")
	}
	if e.level == Comprehensive {
		concepts := keyConcepts(definition)
		for _, syn := range synonyms {
			if placeholder(syn) {
				continue
			}
			if !related(syn, concepts) {
				f.penalize(0.1, "%q may not be semantically related to %q", syn, word)
			}
		}
	}

	return f.result()
}

func (e *Engine) validateAntonyms(word, definition string, synonyms, antonyms []string) FieldResult {
	f := newField()

	if len(antonyms) != 5 {
		f.penalize(0.2, "expected 5 antonyms, got %d", len(antonyms))
	}
	if dups := duplicates(antonyms); dups > 0 {
		f.penalize(0.1, "duplicate antonyms found")
	}

	// Synonym/antonym overlap is a correctness bug, not a quality nuance:
	// it draws the single largest penalty in the battery.
	if overlap := intersect(antonyms, synonyms); len(overlap) > 0 {
		f.penalize(0.3, "antonyms overlap with synonyms: %s", strings.Join(overlap, ", "))
	}

	if e.level != Basic {
		if unknown := unknownWords(antonyms); len(unknown) > 0 {
			f.penalize(0.1*float64(len(unknown)), "possibly invalid words: %s", strings.Join(unknown, ", "))
		}
	}
	if containsFold(antonyms, word) {
		f.penalize(0.2, "antonyms contain the original word")
	}
	if e.level == Comprehensive {
		wordSent := sentiment(word + " " + definition)
		for _, ant := range antonyms {
			if placeholder(ant) {
				continue
			}
			if s := sentiment(ant); s == wordSent && s != neutral {
				f.penalize(0.1, "%q may not be opposite to %q", ant, word)
			}
		}
	}

	return f.result()
}

func (e *Engine) validateSentences(word string, sentences []string) FieldResult {
	f := newField()

	if len(sentences) != 3 {
		f.penalize(0.2, "expected 3 sentences, got %d", len(sentences))
	}

	for i, sentence := range sentences {
		n := i + 1
		if !strings.Contains(strings.ToLower(sentence), strings.ToLower(word)) {
			f.penalize(0.2, "sentence %d doesn't contain the target word", n)
			continue
		}
		if len(sentence) < 20 {
			f.penalize(0.1, "sentence %d is too short (%d chars)", n, len(sentence))
		}
		if !terminalPunct.MatchString(strings.TrimSpace(sentence)) {
			f.penalize(0.05, "sentence %d doesn't end with proper punctuation", n)
		}
		lower := strings.ToLower(sentence)
		for _, pattern := range genericSentencePatterns {
			if strings.Contains(lower, pattern) {
				f.penalize(0.15, "sentence %d appears generic/templated", n)
				break
			}
		}
		if e.level == Comprehensive {
			for _, issue := range grammarIssues(sentence, word) {
				f.penalize(0.1, "sentence %d: %s", n, issue)
			}
		}
	}

	return f.result()
}

func (e *Engine) validateEtymology(etymology string) FieldResult {
	f := newField()

	if len(etymology) < 30 {
		f.penalize(0.2, "etymology too short (%d chars)", len(etymology))
	}
	for _, pattern := range genericEtymologyPatterns {
		if strings.Contains(etymology, pattern) {
			f.penalize(0.3, "etymology appears generic/templated")
			break
		}
	}
	hasLanguage := false
	for _, lang := range sourceLanguages {
		if strings.Contains(etymology, lang) {
			hasLanguage = true
			break
		}
	}
	if !hasLanguage {
		f.penalize(0.2, "etymology doesn't specify source language")
	}
	lower := strings.ToLower(etymology)
	if !strings.Contains(lower, "from") && !strings.Contains(lower, "derived") {
		f.penalize(0.1, "etymology lacks derivation structure")
	}

	return f.result()
}
