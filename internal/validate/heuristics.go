package validate

import (
	"strings"
	"unicode"
)

// duplicates returns the number of case-insensitive duplicate entries.
func duplicates(entries []string) int {
	seen := make(map[string]bool, len(entries))
	count := 0
	for _, entry := range entries {
		key := strings.ToLower(strings.TrimSpace(entry))
		if seen[key] {
			count++
		}
		seen[key] = true
	}
	return count
}

// unknownWords returns entries not found in the embedded word set.
// Placeholders and multi-word entries are exempt: the set only covers
// single dictionary words.
func unknownWords(entries []string) []string {
	var unknown []string
	for _, entry := range entries {
		w := strings.ToLower(strings.TrimSpace(entry))
		if w == "" || placeholder(w) || strings.ContainsRune(w, ' ') {
			continue
		}
		if !KnownWord(w) {
			unknown = append(unknown, entry)
		}
	}
	return unknown
}

// containsFold reports whether entries contains target, case-insensitively.
func containsFold(entries []string, target string) bool {
	for _, entry := range entries {
		if strings.EqualFold(strings.TrimSpace(entry), target) {
			return true
		}
	}
	return false
}

// intersect returns the entries of a that also appear in b,
// case-insensitively, preserving a's order.
func intersect(a, b []string) []string {
	set := make(map[string]bool, len(b))
	for _, entry := range b {
		set[strings.ToLower(strings.TrimSpace(entry))] = true
	}
	var common []string
	for _, entry := range a {
		if set[strings.ToLower(strings.TrimSpace(entry))] {
			common = append(common, entry)
		}
	}
	return common
}

// stopWords are too common to carry meaning in a definition.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "to": true, "of": true,
	"in": true, "on": true, "at": true, "or": true, "and": true,
	"is": true, "be": true, "as": true, "by": true, "for": true,
	"with": true, "that": true, "this": true, "from": true,
	"one": true, "who": true, "which": true, "make": true,
	"made": true, "cause": true, "state": true, "act": true,
}

// keyConcepts extracts the meaningful terms from a definition for the
// relatedness heuristic.
func keyConcepts(definition string) map[string]bool {
	concepts := make(map[string]bool)
	for _, tok := range strings.FieldsFunc(strings.ToLower(definition), func(r rune) bool {
		return !unicode.IsLetter(r)
	}) {
		if len(tok) > 2 && !stopWords[tok] {
			concepts[tok] = true
		}
	}
	return concepts
}

// related reports whether a candidate word plausibly relates to the
// definition's key concepts. A shared stem of 4+ characters counts.
func related(candidate string, concepts map[string]bool) bool {
	if len(concepts) == 0 {
		return true
	}
	w := strings.ToLower(strings.TrimSpace(candidate))
	if concepts[w] {
		return true
	}
	for concept := range concepts {
		if sharedStem(w, concept) >= 4 {
			return true
		}
	}
	// Single-word candidates in the known set get the benefit of the
	// doubt: the concept list is a weak proxy for meaning.
	return KnownWord(w)
}

// sharedStem returns the length of the common prefix of two words.
func sharedStem(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

type polarity int

const (
	neutral polarity = iota
	positive
	negative
)

var positiveTerms = []string{
	"good", "great", "honor", "praise", "elevate", "improve", "kind",
	"happy", "joy", "love", "noble", "strong", "success", "brave",
	"gentle", "bright", "pure", "wise", "generous",
}

var negativeTerms = []string{
	"bad", "humiliate", "degrade", "shame", "lower", "insult", "cruel",
	"sad", "fear", "hate", "weak", "fail", "coward", "harsh", "dark",
	"corrupt", "foolish", "mean", "abandon", "abase",
}

// sentiment assigns a coarse polarity from term lists. It is a tiebreak
// heuristic, not a classifier; neutral is the common outcome.
func sentiment(text string) polarity {
	lower := strings.ToLower(text)
	pos, neg := 0, 0
	for _, term := range positiveTerms {
		if strings.Contains(lower, term) {
			pos++
		}
	}
	for _, term := range negativeTerms {
		if strings.Contains(lower, term) {
			neg++
		}
	}
	switch {
	case pos > neg:
		return positive
	case neg > pos:
		return negative
	default:
		return neutral
	}
}

// grammarIssues runs light structural checks on an example sentence.
func grammarIssues(sentence, word string) []string {
	var issues []string
	trimmed := strings.TrimSpace(sentence)
	if trimmed == "" {
		return issues
	}
	first := rune(trimmed[0])
	if unicode.IsLetter(first) && !unicode.IsUpper(first) {
		issues = append(issues, "doesn't start with a capital letter")
	}
	lower := strings.ToLower(trimmed)
	target := strings.ToLower(word)
	if strings.Count(lower, target) > 2 {
		issues = append(issues, "overuses the target word")
	}
	return issues
}
