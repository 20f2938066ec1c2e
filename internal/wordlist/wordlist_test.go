package wordlist

import (
	"strings"
	"testing"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Task
		wantOK  bool
	}{
		{
			name:   "verb entry",
			line:   "abase v. To lower in position, estimation, or the like; degrade.",
			want:   Task{Word: "abase", PartOfSpeech: Verb, Definition: "To lower in position, estimation, or the like; degrade."},
			wantOK: true,
		},
		{
			name:   "noun entry",
			line:   "abbess n. The lady superior of a nunnery.",
			want:   Task{Word: "abbess", PartOfSpeech: Noun, Definition: "The lady superior of a nunnery."},
			wantOK: true,
		},
		{
			name:   "adjective without trailing dot",
			line:   "abject adj Sunk to a low condition.",
			want:   Task{Word: "abject", PartOfSpeech: Adjective, Definition: "Sunk to a low condition."},
			wantOK: true,
		},
		{
			name:   "unknown pos maps to other",
			line:   "moreover conj. In addition to what has been said.",
			want:   Task{Word: "moreover", PartOfSpeech: Other, Definition: "In addition to what has been said."},
			wantOK: true,
		},
		{
			name:   "missing definition",
			line:   "abase v.",
			wantOK: false,
		},
		{
			name:   "blank line",
			line:   "   ",
			wantOK: false,
		},
		{
			name:   "header line",
			line:   "GRE Word List",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLine(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("ParseLine(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got != tt.want {
				t.Errorf("ParseLine(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParsePartOfSpeech(t *testing.T) {
	tests := []struct {
		tag  string
		want PartOfSpeech
	}{
		{"v.", Verb},
		{"v", Verb},
		{"n.", Noun},
		{"adj.", Adjective},
		{"adv", Adverb},
		{"conj.", Other},
		{"", Other},
	}
	for _, tt := range tests {
		if got := ParsePartOfSpeech(tt.tag); got != tt.want {
			t.Errorf("ParsePartOfSpeech(%q) = %v, want %v", tt.tag, got, tt.want)
		}
	}
}

func TestRead(t *testing.T) {
	input := strings.Join([]string{
		"abase v. To lower in position, estimation, or the like; degrade.",
		"",
		"not a valid line",
		"abbess n. The lady superior of a nunnery.",
		"abbey n. The group of buildings which collectively form the dwelling-place of a society of monks or nuns.",
	}, "\n")

	tasks, err := Read(strings.NewReader(input), 0)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("Read returned %d tasks, want 3", len(tasks))
	}
	if tasks[0].Word != "abase" || tasks[2].Word != "abbey" {
		t.Errorf("unexpected task order: %v", tasks)
	}
}

func TestReadMax(t *testing.T) {
	input := "abase v. To lower.\nabbess n. The lady superior of a nunnery.\n"
	tasks, err := Read(strings.NewReader(input), 1)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("Read with max=1 returned %d tasks, want 1", len(tasks))
	}
}
