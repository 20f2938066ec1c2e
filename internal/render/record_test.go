package render

import (
	"strings"
	"testing"

	"github.com/shahbajlive/lexforge/internal/enrich"
)

func sampleRecord() enrich.Record {
	return enrich.Record{
		Word:       "abase",
		Definition: "To lower in rank or esteem.",
		Synonyms:   []string{"degrade", "demean", "humiliate", "belittle", "diminish"},
		Antonyms:   []string{"elevate", "enhance", "dignify", "uplift", "honor"},
		Sentences: []string{
			"The scandal served to abase the senator in public.",
			"He would not abase himself by begging.",
			"Critics tried to abase her achievements.",
		},
		Etymology: "From Old French abaissier, derived from Latin bassus.",
	}
}

func TestFormatRecord(t *testing.T) {
	got := FormatRecord(sampleRecord())

	wantLines := []string{
		"Word: abase;To lower in rank or esteem.",
		"Meaning: To lower in rank or esteem.",
		"Synonyms:",
		"\t1.\tdegrade",
		"\t5.\tdiminish",
		"Antonyms:",
		"\t1.\televate",
		"Sentences:",
		"\t3.\tCritics tried to abase her achievements.",
		"Origin:",
		"From Old French abaissier, derived from Latin bassus.",
		Separator,
	}
	for _, line := range wantLines {
		if !strings.Contains(got, line+"\n") {
			t.Errorf("formatted record missing line %q\n%s", line, got)
		}
	}
	if !strings.HasPrefix(got, "Word: abase;") {
		t.Errorf("record doesn't start with Word line")
	}
}

func TestRecordRoundTrip(t *testing.T) {
	rec := sampleRecord()
	var sb strings.Builder
	other := rec
	other.Word = "abate"
	other.Definition = "To lessen in intensity."
	if err := WriteRecords(&sb, []enrich.Record{rec, other}); err != nil {
		t.Fatalf("WriteRecords() error: %v", err)
	}

	entries, err := ParseRecords(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("ParseRecords() error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("parsed %d entries, want 2", len(entries))
	}

	e := entries[0]
	if e.Word != "abase" {
		t.Errorf("Word = %q", e.Word)
	}
	if e.Meaning != "To lower in rank or esteem." {
		t.Errorf("Meaning = %q", e.Meaning)
	}
	if len(e.Synonyms) != 5 || e.Synonyms[0] != "degrade" {
		t.Errorf("Synonyms = %v", e.Synonyms)
	}
	if len(e.Antonyms) != 5 || e.Antonyms[4] != "honor" {
		t.Errorf("Antonyms = %v", e.Antonyms)
	}
	if len(e.Sentences) != 3 {
		t.Errorf("Sentences = %v", e.Sentences)
	}
	if e.Origin != "From Old French abaissier, derived from Latin bassus." {
		t.Errorf("Origin = %q", e.Origin)
	}
	if entries[1].Word != "abate" {
		t.Errorf("second entry word = %q", entries[1].Word)
	}
}

func TestParseRecordsToleratesHandEdits(t *testing.T) {
	text := `Word: abbey
Meaning: A monastery.

Synonyms:

1. structure
2. edifice

Origin:
From Old French abbeie,
derived from Latin abbatia.

-------------------------

garbage block with no word line
`
	entries, err := ParseRecords(strings.NewReader(text))
	if err != nil {
		t.Fatalf("ParseRecords() error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("parsed %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Word != "abbey" || e.Meaning != "A monastery." {
		t.Errorf("entry = %+v", e)
	}
	if len(e.Synonyms) != 2 || e.Synonyms[1] != "edifice" {
		t.Errorf("Synonyms = %v", e.Synonyms)
	}
	// Multi-line origins are joined with spaces.
	if e.Origin != "From Old French abbeie, derived from Latin abbatia." {
		t.Errorf("Origin = %q", e.Origin)
	}
}

func TestParseRecordsEmptyInput(t *testing.T) {
	entries, err := ParseRecords(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ParseRecords() error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("parsed %d entries from empty input", len(entries))
	}
}
