// Package render formats enrichment records as the study text wire format
// and converts finished files into HTML study and quiz pages.
package render

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/shahbajlive/lexforge/internal/enrich"
)

// Separator divides records in the study text file. Parsers accept any run
// of 25 or more dashes, so hand-edited files still load.
var Separator = strings.Repeat("-", 50)

// FormatRecord renders one record as a study text block, separator included.
func FormatRecord(rec enrich.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Word: %s;%s\n", rec.Word, rec.Definition)
	fmt.Fprintf(&b, "Meaning: %s\n\n", rec.Definition)

	b.WriteString("Synonyms:\n\n")
	for i, s := range rec.Synonyms {
		fmt.Fprintf(&b, "\t%d.\t%s\n", i+1, s)
	}

	b.WriteString("\nAntonyms:\n\n")
	for i, a := range rec.Antonyms {
		fmt.Fprintf(&b, "\t%d.\t%s\n", i+1, a)
	}

	b.WriteString("\nSentences:\n\n")
	for i, s := range rec.Sentences {
		fmt.Fprintf(&b, "\t%d.\t%s\n", i+1, s)
	}

	fmt.Fprintf(&b, "\nOrigin:\n%s\n\n", rec.Etymology)
	b.WriteString(Separator + "\n")
	return b.String()
}

// WriteRecords streams formatted records to w.
func WriteRecords(w io.Writer, records []enrich.Record) error {
	bw := bufio.NewWriter(w)
	for _, rec := range records {
		if _, err := bw.WriteString(FormatRecord(rec)); err != nil {
			return fmt.Errorf("write record %s: %w", rec.Word, err)
		}
	}
	return bw.Flush()
}

// AppendRecord appends one formatted record to the file at path, creating
// it if needed. Resumable runs append as they go rather than rewriting.
func AppendRecord(path string, rec enrich.Record) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(FormatRecord(rec)); err != nil {
		return fmt.Errorf("append record %s: %w", rec.Word, err)
	}
	return nil
}

// Entry is a record read back from a study text file. It is looser than
// enrich.Record: files may be hand-edited or produced by older runs.
type Entry struct {
	Word      string   `json:"word"`
	Meaning   string   `json:"meaning"`
	Synonyms  []string `json:"synonyms"`
	Antonyms  []string `json:"antonyms"`
	Sentences []string `json:"sentences"`
	Origin    string   `json:"origin"`
}

var (
	separatorLine = regexp.MustCompile(`^-{10,}$`)
	entrySplit    = regexp.MustCompile(`\n-{25,}\n`)
	listNumbering = regexp.MustCompile(`^\d+\.\s*`)
)

// ParseRecords reads every entry from a study text stream. Malformed blocks
// are skipped, not fatal.
func ParseRecords(r io.Reader) ([]Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}

	var entries []Entry
	for _, block := range entrySplit.Split(string(data), -1) {
		entry, ok := parseEntry(block)
		if ok {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// ParseRecordsFile reads every entry from the study text file at path.
func ParseRecordsFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open records: %w", err)
	}
	defer f.Close()
	return ParseRecords(f)
}

func parseEntry(block string) (Entry, bool) {
	var entry Entry
	section := ""

	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || separatorLine.MatchString(line) {
			continue
		}

		switch {
		case strings.HasPrefix(line, "Word: "):
			rest := line[len("Word: "):]
			if word, meaning, ok := strings.Cut(rest, ";"); ok {
				entry.Word, entry.Meaning = word, meaning
			} else {
				entry.Word = rest
			}
			section = ""
		case strings.HasPrefix(line, "Meaning: "):
			entry.Meaning = line[len("Meaning: "):]
		case line == "Synonyms:":
			section = "synonyms"
		case line == "Antonyms:":
			section = "antonyms"
		case line == "Sentences:":
			section = "sentences"
		case strings.HasPrefix(line, "Origin:"):
			section = "origin"
			if rest := strings.TrimSpace(line[len("Origin:"):]); rest != "" {
				entry.Origin = rest
			}
		default:
			item := strings.TrimSpace(listNumbering.ReplaceAllString(line, ""))
			if item == "" {
				continue
			}
			switch section {
			case "synonyms":
				entry.Synonyms = append(entry.Synonyms, item)
			case "antonyms":
				entry.Antonyms = append(entry.Antonyms, item)
			case "sentences":
				entry.Sentences = append(entry.Sentences, item)
			case "origin":
				if entry.Origin != "" {
					entry.Origin += " " + item
				} else {
					entry.Origin = item
				}
			}
		}
	}

	return entry, entry.Word != ""
}
