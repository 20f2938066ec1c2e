package consensus

import (
	"strings"
	"time"
)

// ParseMode selects how tolerant ParseResponse is of incomplete replies.
type ParseMode int

const (
	// PartialAccept keeps a candidate with whatever fields parsed, as long
	// as at least one recognized marker was present. Missing fields are
	// supplied by fallback defaults upstream. This is the default: it
	// preserves more information from slow or terse backends.
	PartialAccept ParseMode = iota

	// Strict additionally rejects candidates that are not Complete
	// (≥3 synonyms, ≥3 antonyms, ≥1 sentence, etymology present).
	Strict
)

// Parser converts raw backend replies into candidates.
type Parser struct {
	Mode ParseMode
}

// minListTokens is the acceptance bar for a comma list: fewer parsed tokens
// and the field is left empty for this candidate rather than half-filled.
const minListTokens = 3

// ParseResponse extracts a candidate from a backend reply. Scanning is
// line-oriented and order-independent: recognized markers (SYNONYMS:,
// ANTONYMS:, SENTENCE1..3:, ORIGIN:/ETY:, CONFIDENCE:) are matched
// case-insensitively wherever they appear. When a marker occurs more than
// once, the last valid occurrence wins; occurrences that fail validation
// are ignored and do not clear an earlier value.
//
// Returns nil when no recognized marker is present at all — the low-value
// fast-reject that marks the backend call as failed.
//
// The parser's contract is syntactic extraction only. Semantic checks
// (word inclusion, sentence length) belong to the validation engine.
func (p Parser) ParseResponse(raw, backendID string, latency time.Duration) *Candidate {
	cand := &Candidate{
		BackendID:  backendID,
		Confidence: DefaultConfidence,
		Latency:    latency,
	}
	sentences := [MaxSentences]string{}
	matched := false

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		upper := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(upper, "SYNONYMS:"):
			matched = true
			if list := parseCommaList(line[len("SYNONYMS:"):]); list != nil {
				cand.Synonyms = list
			}
		case strings.HasPrefix(upper, "ANTONYMS:"):
			matched = true
			if list := parseCommaList(line[len("ANTONYMS:"):]); list != nil {
				cand.Antonyms = list
			}
		case strings.HasPrefix(upper, "SENTENCE1:"):
			matched = true
			if s := strings.TrimSpace(line[len("SENTENCE1:"):]); s != "" {
				sentences[0] = s
			}
		case strings.HasPrefix(upper, "SENTENCE2:"):
			matched = true
			if s := strings.TrimSpace(line[len("SENTENCE2:"):]); s != "" {
				sentences[1] = s
			}
		case strings.HasPrefix(upper, "SENTENCE3:"):
			matched = true
			if s := strings.TrimSpace(line[len("SENTENCE3:"):]); s != "" {
				sentences[2] = s
			}
		case strings.HasPrefix(upper, "ORIGIN:"):
			matched = true
			if s := strings.TrimSpace(line[len("ORIGIN:"):]); s != "" {
				cand.Etymology = s
			}
		case strings.HasPrefix(upper, "ETY:"):
			matched = true
			if s := strings.TrimSpace(line[len("ETY:"):]); s != "" {
				cand.Etymology = s
			}
		case strings.HasPrefix(upper, "CONFIDENCE:"):
			matched = true
			if c, ok := ParseConfidence(line[len("CONFIDENCE:"):]); ok {
				cand.Confidence = c.Clamp()
			}
		}
	}

	if !matched {
		return nil
	}

	for _, s := range sentences {
		if s != "" {
			cand.Sentences = append(cand.Sentences, s)
		}
	}

	if p.Mode == Strict && !cand.Complete() {
		return nil
	}
	return cand
}

// parseCommaList splits a comma-separated list, dropping empty and
// single-character tokens. Returns nil unless at least minListTokens
// survive; accepted lists are capped at MaxSynonyms entries.
func parseCommaList(text string) []string {
	var tokens []string
	for _, tok := range strings.Split(text, ",") {
		tok = strings.TrimSpace(tok)
		if len(tok) > 1 {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) < minListTokens {
		return nil
	}
	if len(tokens) > MaxSynonyms {
		tokens = tokens[:MaxSynonyms]
	}
	return tokens
}
