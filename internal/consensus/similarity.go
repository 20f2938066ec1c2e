package consensus

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// TextSimilarity returns a 0-1 similarity between two strings, where 1 means
// identical (ignoring case and surrounding whitespace). The score is the
// ratio of common text to total text from a character-level diff, so
// sentences that differ only in a clause still score high.
func TextSimilarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)

	var common, totalDelta int
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			common += len(d.Text)
		default:
			totalDelta += len(d.Text)
		}
	}
	if common+totalDelta == 0 {
		return 0
	}
	return float64(2*common) / float64(2*common+totalDelta)
}
