package consensus

import (
	"fmt"
	"sort"
	"strings"
)

// BuilderConfig controls the weighted merge.
type BuilderConfig struct {
	// SentenceDedupeThreshold drops a sentence whose similarity to an
	// already-selected sentence is at or above this value. 1.01 disables
	// deduplication.
	SentenceDedupeThreshold float64
}

// DefaultBuilderConfig returns the default merge settings.
func DefaultBuilderConfig() BuilderConfig {
	return BuilderConfig{SentenceDedupeThreshold: 0.9}
}

// Build merges one or more candidates into a Result by weighted voting.
// Candidates must be non-empty; filtering failed parses is the caller's job.
//
// Each candidate votes with its self-reported confidence. Synonym and
// antonym votes accumulate per distinct string and the top 5 by weight win;
// the sort is stable, so ties rank in first-seen order (candidate input
// order, then list order within a candidate). Sentences are eligible only
// when they mention the word case-insensitively — a sentence that never uses
// the word is wrong, not merely weak — and are ranked by their source
// candidate's weight. Etymology is winner-take-all by weight: merging prose
// from different backends would read as nonsense.
func Build(candidates []*Candidate, word string, cfg BuilderConfig) (*Result, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("consensus requires at least one candidate for %q", word)
	}

	synVotes := newBallot()
	antVotes := newBallot()
	var sentences []weightedText
	var etymologies []weightedText

	votes := make(map[string]Confidence, len(candidates))
	var total, max Confidence

	for _, cand := range candidates {
		weight := cand.Confidence
		votes[cand.BackendID] = weight
		total += weight
		if weight > max {
			max = weight
		}

		for _, syn := range cand.Synonyms {
			synVotes.add(syn, weight)
		}
		for _, ant := range cand.Antonyms {
			antVotes.add(ant, weight)
		}
		for _, sent := range cand.Sentences {
			if strings.Contains(strings.ToLower(sent), strings.ToLower(word)) {
				sentences = append(sentences, weightedText{sent, weight})
			}
		}
		if cand.Etymology != "" {
			etymologies = append(etymologies, weightedText{cand.Etymology, weight})
		}
	}

	n := Confidence(len(candidates))
	agreement := Confidence(0)
	if max > 0 {
		agreement = (total / (n * max)).Clamp()
	}

	result := &Result{
		Synonyms:        synVotes.top(MaxSynonyms),
		Antonyms:        antVotes.top(MaxAntonyms),
		Sentences:       topSentences(sentences, cfg.SentenceDedupeThreshold),
		ConfidenceScore: (total / n).Clamp(),
		AgreementLevel:  agreement,
		Votes:           votes,
	}

	if len(etymologies) > 0 {
		sort.SliceStable(etymologies, func(i, j int) bool {
			return etymologies[i].weight > etymologies[j].weight
		})
		result.Etymology = etymologies[0].text
	} else {
		result.Etymology = fmt.Sprintf("Etymology for %s from multiple sources.", word)
	}

	return result, nil
}

type weightedText struct {
	text   string
	weight Confidence
}

// ballot accumulates vote weight per distinct string, remembering insertion
// order for stable tie-breaking.
type ballot struct {
	weights map[string]Confidence
	order   []string
}

func newBallot() *ballot {
	return &ballot{weights: make(map[string]Confidence)}
}

func (b *ballot) add(term string, weight Confidence) {
	if term == "" {
		return
	}
	if _, seen := b.weights[term]; !seen {
		b.order = append(b.order, term)
	}
	b.weights[term] += weight
}

// top returns up to k terms by accumulated weight, stable over first-seen
// order.
func (b *ballot) top(k int) []string {
	terms := make([]string, len(b.order))
	copy(terms, b.order)
	sort.SliceStable(terms, func(i, j int) bool {
		return b.weights[terms[i]] > b.weights[terms[j]]
	})
	if len(terms) > k {
		terms = terms[:k]
	}
	return terms
}

// topSentences ranks eligible sentences by source weight (stable) and takes
// the best 3, skipping near-duplicates of already-selected sentences.
func topSentences(cands []weightedText, dedupeThreshold float64) []string {
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].weight > cands[j].weight
	})
	var out []string
	for _, c := range cands {
		if len(out) >= MaxSentences {
			break
		}
		dup := false
		for _, chosen := range out {
			if TextSimilarity(chosen, c.text) >= dedupeThreshold {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, c.text)
		}
	}
	return out
}
