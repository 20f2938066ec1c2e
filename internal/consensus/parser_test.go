package consensus

import (
	"reflect"
	"testing"
	"time"
)

const wellFormedReply = `SYNONYMS: degrade, demean, humiliate, belittle, diminish
ANTONYMS: elevate, enhance, dignify, uplift, honor
SENTENCE1: The scandal served to abase the politician's reputation.
SENTENCE2: His arrogant behavior would only abase him in the eyes of others.
SENTENCE3: The harsh criticism was intended to abase her confidence.
ORIGIN: From Old French "abaissier," derived from Latin "ad-" (to) + "bassus" (low).
CONFIDENCE: 0.9`

func TestParseResponseWellFormed(t *testing.T) {
	p := Parser{}
	cand := p.ParseResponse(wellFormedReply, "llama3.1:8b", 2*time.Second)
	if cand == nil {
		t.Fatal("ParseResponse returned nil for well-formed reply")
	}

	wantSyn := []string{"degrade", "demean", "humiliate", "belittle", "diminish"}
	if !reflect.DeepEqual(cand.Synonyms, wantSyn) {
		t.Errorf("Synonyms = %v, want %v", cand.Synonyms, wantSyn)
	}
	wantAnt := []string{"elevate", "enhance", "dignify", "uplift", "honor"}
	if !reflect.DeepEqual(cand.Antonyms, wantAnt) {
		t.Errorf("Antonyms = %v, want %v", cand.Antonyms, wantAnt)
	}
	if len(cand.Sentences) != 3 {
		t.Errorf("Sentences = %d, want 3", len(cand.Sentences))
	}
	if cand.Confidence != 0.9 {
		t.Errorf("Confidence = %v, want 0.9", cand.Confidence)
	}
	if cand.BackendID != "llama3.1:8b" {
		t.Errorf("BackendID = %q", cand.BackendID)
	}
	if cand.Latency != 2*time.Second {
		t.Errorf("Latency = %v", cand.Latency)
	}
	if !cand.Complete() {
		t.Error("Complete() = false for full candidate")
	}
}

func TestParseResponseIdempotent(t *testing.T) {
	p := Parser{}
	first := p.ParseResponse(wellFormedReply, "m", time.Second)
	second := p.ParseResponse(wellFormedReply, "m", time.Second)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated parse differs:\n%+v\n%+v", first, second)
	}
}

func TestParseResponseMarkersAnyOrder(t *testing.T) {
	raw := `CONFIDENCE: 0.7
origin: From Latin "abbas" meaning father.
sentence2: The abbot led the abbey.
Synonyms: monk, prior, friar, cleric`
	cand := Parser{}.ParseResponse(raw, "m", 0)
	if cand == nil {
		t.Fatal("nil candidate")
	}
	if len(cand.Synonyms) != 4 {
		t.Errorf("Synonyms = %v, want 4 entries", cand.Synonyms)
	}
	if cand.Etymology == "" {
		t.Error("Etymology not parsed from lowercase origin marker")
	}
	if len(cand.Sentences) != 1 || cand.Sentences[0] != "The abbot led the abbey." {
		t.Errorf("Sentences = %v", cand.Sentences)
	}
	if cand.Confidence != 0.7 {
		t.Errorf("Confidence = %v, want 0.7", cand.Confidence)
	}
}

func TestParseResponseETYMarker(t *testing.T) {
	cand := Parser{}.ParseResponse("ETY: From Greek roots.", "m", 0)
	if cand == nil || cand.Etymology != "From Greek roots." {
		t.Errorf("ETY marker not recognized: %+v", cand)
	}
}

func TestParseResponseFastReject(t *testing.T) {
	raw := `I can't help with that request.
Here are some general thoughts about vocabulary.`
	if cand := (Parser{}).ParseResponse(raw, "m", 0); cand != nil {
		t.Errorf("ParseResponse = %+v, want nil for markerless reply", cand)
	}
}

func TestParseResponseListAcceptanceBar(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"two tokens rejected", "SYNONYMS: degrade, demean", 0},
		{"three tokens accepted", "SYNONYMS: degrade, demean, belittle", 3},
		{"single-char tokens dropped", "SYNONYMS: a, b, degrade, demean, belittle", 3},
		{"capped at five", "SYNONYMS: one1, two2, three3, four4, five5, six6, seven7", 5},
		{"empty list rejected", "SYNONYMS:", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand := Parser{}.ParseResponse(tt.raw, "m", 0)
			if cand == nil {
				t.Fatal("nil candidate: marker was present")
			}
			if len(cand.Synonyms) != tt.want {
				t.Errorf("Synonyms = %v, want %d entries", cand.Synonyms, tt.want)
			}
		})
	}
}

func TestParseResponseDuplicateMarkerLastValidWins(t *testing.T) {
	raw := `SYNONYMS: degrade, demean, humiliate
SYNONYMS: elevate, uplift, honor, dignify
SYNONYMS: too, fe`
	cand := Parser{}.ParseResponse(raw, "m", 0)
	want := []string{"elevate", "uplift", "honor", "dignify"}
	if !reflect.DeepEqual(cand.Synonyms, want) {
		t.Errorf("Synonyms = %v, want last valid occurrence %v", cand.Synonyms, want)
	}
}

func TestParseResponseConfidenceDefaults(t *testing.T) {
	tests := []struct {
		raw  string
		want Confidence
	}{
		{"SYNONYMS: aa, bb, cc\nCONFIDENCE: 0.65", 0.65},
		{"SYNONYMS: aa, bb, cc\nCONFIDENCE: 85%", 0.85},
		{"SYNONYMS: aa, bb, cc\nCONFIDENCE: high", 0.8},
		{"SYNONYMS: aa, bb, cc\nCONFIDENCE: not-a-number", DefaultConfidence},
		{"SYNONYMS: aa, bb, cc\nCONFIDENCE: 3.7", DefaultConfidence},
		{"SYNONYMS: aa, bb, cc", DefaultConfidence},
	}
	for _, tt := range tests {
		cand := Parser{}.ParseResponse(tt.raw, "m", 0)
		if cand == nil {
			t.Fatalf("nil candidate for %q", tt.raw)
		}
		if cand.Confidence != tt.want {
			t.Errorf("Confidence for %q = %v, want %v", tt.raw, cand.Confidence, tt.want)
		}
	}
}

func TestParseResponseStrictMode(t *testing.T) {
	incomplete := "SYNONYMS: degrade, demean, humiliate"
	if cand := (Parser{Mode: Strict}).ParseResponse(incomplete, "m", 0); cand != nil {
		t.Errorf("Strict parse = %+v, want nil for incomplete candidate", cand)
	}
	if cand := (Parser{Mode: PartialAccept}).ParseResponse(incomplete, "m", 0); cand == nil {
		t.Error("PartialAccept parse = nil, want candidate with synonyms only")
	}
	if cand := (Parser{Mode: Strict}).ParseResponse(wellFormedReply, "m", 0); cand == nil {
		t.Error("Strict parse = nil for complete reply")
	}
}

func TestParseScores(t *testing.T) {
	raw := `SYNONYM_SCORE: 0.8
ANTONYM_SCORE: 0.4
ISSUES: antonym list includes a synonym`
	s := ParseScores(raw)
	if s.Synonyms != 0.8 || s.Antonyms != 0.4 {
		t.Errorf("ParseScores = %+v", s)
	}
	if mean := float64(s.Mean()); mean < 0.599 || mean > 0.601 {
		t.Errorf("Mean = %v, want 0.6", mean)
	}

	defaulted := ParseScores("no scores here")
	if defaulted.Synonyms != 0.7 || defaulted.Antonyms != 0.7 {
		t.Errorf("defaults = %+v, want 0.7/0.7", defaulted)
	}
}
