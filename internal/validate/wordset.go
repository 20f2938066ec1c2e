package validate

import (
	_ "embed"
	"strings"
	"sync"
)

// words.txt is a compact common-English word set used for the "is this a
// real word" heuristic. It is intentionally small: absence from the set is
// a soft penalty, not a rejection, so coverage gaps only shave score.
//
//go:embed words.txt
var embeddedWords string

var (
	wordSetOnce sync.Once
	wordSet     map[string]struct{}
)

// KnownWord reports whether w appears in the embedded word set
// (case-insensitive).
func KnownWord(w string) bool {
	wordSetOnce.Do(func() {
		wordSet = make(map[string]struct{}, 4096)
		for _, line := range strings.Split(embeddedWords, "\n") {
			line = strings.TrimSpace(strings.ToLower(line))
			if line != "" && !strings.HasPrefix(line, "#") {
				wordSet[line] = struct{}{}
			}
		}
	})
	_, ok := wordSet[strings.ToLower(w)]
	return ok
}
