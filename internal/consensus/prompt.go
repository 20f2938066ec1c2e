package consensus

import (
	"fmt"
	"strings"

	"github.com/shahbajlive/lexforge/internal/wordlist"
)

// EnrichmentPrompt builds the prompt whose reply ParseResponse understands.
// The field markers here and the parser's recognized markers are the same
// wire format; change them together.
func EnrichmentPrompt(task wordlist.Task) string {
	w := task.Word
	return fmt.Sprintf(`For the word "%s" (%s), meaning "%s":

Provide exactly 5 synonyms, 5 antonyms, 3 example sentences, and etymology.

Format response as:
SYNONYMS: word1, word2, word3, word4, word5
ANTONYMS: word1, word2, word3, word4, word5
SENTENCE1: [sentence using %s]
SENTENCE2: [sentence using %s]
SENTENCE3: [sentence using %s]
ORIGIN: [etymology]
CONFIDENCE: [0.0-1.0 confidence in this response]

Be precise and specific.`, w, task.PartOfSpeech, task.Definition, w, w, w)
}

// CrossCheckPrompt asks a validator backend to score another backend's
// synonym and antonym lists. The reply is parsed by ParseScores.
func CrossCheckPrompt(task wordlist.Task, synonyms, antonyms []string) string {
	return fmt.Sprintf(`Evaluate these synonyms and antonyms for "%s" (%s): %s

SYNONYMS TO EVALUATE: %s
ANTONYMS TO EVALUATE: %s

Rate each list from 0.0 to 1.0:
SYNONYM_SCORE: [0.0-1.0]
ANTONYM_SCORE: [0.0-1.0]
ISSUES: [list any problems found]`,
		task.Word, task.PartOfSpeech, task.Definition,
		strings.Join(synonyms, ", "), strings.Join(antonyms, ", "))
}

// Scores is a validator backend's assessment of another backend's lists.
type Scores struct {
	Synonyms Confidence `json:"synonym_score"`
	Antonyms Confidence `json:"antonym_score"`
}

// Mean returns the average of the two list scores.
func (s Scores) Mean() Confidence {
	return (s.Synonyms + s.Antonyms) / 2
}

// ParseScores extracts SYNONYM_SCORE / ANTONYM_SCORE lines from a validator
// reply. Missing or malformed scores default to 0.7, mirroring the neutral
// prior used when a validator answers but cannot be parsed.
func ParseScores(raw string) Scores {
	scores := Scores{Synonyms: 0.7, Antonyms: 0.7}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		upper := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(upper, "SYNONYM_SCORE:"):
			if c, ok := ParseConfidence(line[len("SYNONYM_SCORE:"):]); ok {
				scores.Synonyms = c
			}
		case strings.HasPrefix(upper, "ANTONYM_SCORE:"):
			if c, ok := ParseConfidence(line[len("ANTONYM_SCORE:"):]); ok {
				scores.Antonyms = c
			}
		}
	}
	return scores
}
