package backend

import (
	"context"
	"errors"
	"testing"
)

// stubRunner returns canned output or a canned error.
type stubRunner struct {
	out string
	err error
}

func (s stubRunner) Run(ctx context.Context, stdin string, argv []string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.out, nil
}

const sampleList = `NAME                  ID              SIZE      MODIFIED
llama3.1:8b           42182419e950    4.7 GB    2 weeks ago
tinyllama:1.1b        2644915ede35    637 MB    3 weeks ago
phi3:mini             4f2222927938    2.2 GB    5 days ago
codellama:13b         9f438cb9cd58    7.4 GB    2 months ago
custommodel:latest    abc123def456    3.1 GB    1 day ago
`

func TestDiscoverClassifiesModels(t *testing.T) {
	reg := Discover(context.Background(), stubRunner{out: sampleList}, NewClassifier())

	if reg.Degraded {
		t.Fatal("registry unexpectedly degraded")
	}
	if reg.Len() != 5 {
		t.Fatalf("Len = %d, want 5", reg.Len())
	}

	tests := []struct {
		id      string
		speed   SpeedTier
		quality QualityTier
	}{
		{"llama3.1:8b", SpeedMedium, QualityHigh},
		{"tinyllama:1.1b", SpeedFast, QualityBasic},
		{"phi3:mini", SpeedMedium, QualityHigh},
		{"codellama:13b", SpeedSlow, QualitySpecialized},
		{"custommodel:latest", SpeedMedium, QualityMedium},
	}
	for _, tt := range tests {
		p, ok := reg.Get(tt.id)
		if !ok {
			t.Fatalf("backend %q not discovered", tt.id)
		}
		if p.Speed != tt.speed || p.Quality != tt.quality {
			t.Errorf("%s classified %s/%s, want %s/%s", tt.id, p.Speed, p.Quality, tt.speed, tt.quality)
		}
	}
}

func TestDiscoverFailsOpen(t *testing.T) {
	tests := []struct {
		name   string
		runner Runner
	}{
		{"command error", stubRunner{err: errors.New("exec: ollama: not found")}},
		{"empty output", stubRunner{out: ""}},
		{"header only", stubRunner{out: "NAME ID SIZE MODIFIED\n"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := Discover(context.Background(), tt.runner, NewClassifier())
			if !reg.Degraded {
				t.Error("expected degraded registry")
			}
			if reg.Len() != 1 {
				t.Fatalf("Len = %d, want 1", reg.Len())
			}
			p, ok := reg.Get(FallbackID)
			if !ok {
				t.Fatalf("fallback profile %q missing", FallbackID)
			}
			if p.Speed != SpeedMedium || p.Quality != QualityHigh {
				t.Errorf("fallback classified %s/%s, want medium/high", p.Speed, p.Quality)
			}
		})
	}
}

func TestTopByPriority(t *testing.T) {
	reg := NewRegistry([]Profile{
		{ID: "codellama:13b", Speed: SpeedSlow, Quality: QualitySpecialized},
		{ID: "llama3.1:8b", Speed: SpeedMedium, Quality: QualityHigh},
		{ID: "tinyllama:1.1b", Speed: SpeedFast, Quality: QualityBasic},
	})

	got := reg.TopByPriority(2)
	want := []string{"tinyllama:1.1b", "llama3.1:8b"}
	if len(got) != len(want) {
		t.Fatalf("TopByPriority = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("TopByPriority[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTopByPriorityClampsK(t *testing.T) {
	reg := NewRegistry([]Profile{{ID: "only", Speed: SpeedMedium, Quality: QualityMedium}})
	if got := reg.TopByPriority(5); len(got) != 1 {
		t.Errorf("TopByPriority(5) returned %d ids, want 1", len(got))
	}
}

func TestParseClassifierOverride(t *testing.T) {
	override := []byte(`
- substrings: ["custommodel"]
  size: "3B"
  speed: fast
  quality: good
`)
	c, err := ParseClassifier(override)
	if err != nil {
		t.Fatalf("ParseClassifier error: %v", err)
	}
	p := c.Classify("custommodel:latest")
	if p.Speed != SpeedFast || p.Quality != QualityGood {
		t.Errorf("override classified %s/%s, want fast/good", p.Speed, p.Quality)
	}
	// Built-in rules still apply behind overrides.
	p = c.Classify("tinyllama:1.1b")
	if p.Speed != SpeedFast || p.Quality != QualityBasic {
		t.Errorf("builtin rule classified %s/%s, want fast/basic", p.Speed, p.Quality)
	}
}
