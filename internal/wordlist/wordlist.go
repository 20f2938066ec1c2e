// Package wordlist parses flat vocabulary wordlists into enrichment tasks.
// The expected line format is "word pos. definition", one entry per line
// (e.g. "abase v. To lower in position, estimation, or the like; degrade.").
package wordlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// PartOfSpeech is the grammatical category of a word.
type PartOfSpeech string

const (
	Verb      PartOfSpeech = "v"
	Noun      PartOfSpeech = "n"
	Adjective PartOfSpeech = "adj"
	Adverb    PartOfSpeech = "adv"
	Other     PartOfSpeech = "other"
)

// String returns the part of speech as a string.
func (p PartOfSpeech) String() string {
	return string(p)
}

// IsValid returns true if this is a known part of speech.
func (p PartOfSpeech) IsValid() bool {
	switch p {
	case Verb, Noun, Adjective, Adverb, Other:
		return true
	default:
		return false
	}
}

// ParsePartOfSpeech maps a wordlist tag (with or without a trailing dot)
// to a PartOfSpeech. Unrecognized tags map to Other.
func ParsePartOfSpeech(tag string) PartOfSpeech {
	switch strings.TrimSuffix(strings.ToLower(tag), ".") {
	case "v", "vb", "verb":
		return Verb
	case "n", "noun":
		return Noun
	case "adj", "a", "adjective":
		return Adjective
	case "adv", "adverb":
		return Adverb
	default:
		return Other
	}
}

// Task is one unit of enrichment work. Tasks are immutable once parsed;
// one Task drives one pipeline run.
type Task struct {
	// Word is the vocabulary word to enrich.
	Word string `json:"word"`

	// PartOfSpeech is the word's grammatical category.
	PartOfSpeech PartOfSpeech `json:"part_of_speech"`

	// Definition is the dictionary definition from the wordlist.
	Definition string `json:"definition"`
}

// lineRegex matches "word pos. definition" wordlist lines.
var lineRegex = regexp.MustCompile(`^(\w+)\s+([a-z]+\.?)\s+(.+)$`)

// ParseLine parses a single wordlist line. Returns false for blank or
// non-matching lines, which callers should skip rather than treat as errors.
func ParseLine(line string) (Task, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Task{}, false
	}
	m := lineRegex.FindStringSubmatch(line)
	if m == nil {
		return Task{}, false
	}
	return Task{
		Word:         m[1],
		PartOfSpeech: ParsePartOfSpeech(m[2]),
		Definition:   strings.TrimSpace(m[3]),
	}, true
}

// Read parses all tasks from r in order, skipping non-matching lines.
// If max > 0, at most max tasks are returned.
func Read(r io.Reader, max int) ([]Task, error) {
	var tasks []Task
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		task, ok := ParseLine(scanner.Text())
		if !ok {
			continue
		}
		tasks = append(tasks, task)
		if max > 0 && len(tasks) >= max {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read wordlist: %w", err)
	}
	return tasks, nil
}

// ReadFile parses all tasks from the named file.
func ReadFile(path string, max int) ([]Task, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wordlist: %w", err)
	}
	defer f.Close()
	return Read(f, max)
}
