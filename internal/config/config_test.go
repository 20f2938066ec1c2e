package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shahbajlive/lexforge/internal/consensus"
	"github.com/shahbajlive/lexforge/internal/enrich"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Input == "" || cfg.Output == "" {
		t.Error("default file paths should not be empty")
	}
	if cfg.Enrich.Strategy != "consensus" {
		t.Errorf("Strategy = %q, want consensus", cfg.Enrich.Strategy)
	}
	if cfg.Enrich.MinConsensusConfidence != 0.5 {
		t.Errorf("MinConsensusConfidence = %v, want 0.5", cfg.Enrich.MinConsensusConfidence)
	}
	if cfg.Enrich.InvokeTimeoutSeconds != 30 {
		t.Errorf("InvokeTimeoutSeconds = %d, want 30", cfg.Enrich.InvokeTimeoutSeconds)
	}
	if !cfg.Validation.Enabled {
		t.Error("validation should be enabled by default")
	}
	if w := cfg.Validation.Weights; w.Synonyms != 0.30 || w.Etymology != 0.15 {
		t.Errorf("weights = %+v", w)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
output = "custom_output.txt"

[enrich]
strategy = "cross-check"
workers = 6
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Output != "custom_output.txt" {
		t.Errorf("Output = %q", cfg.Output)
	}
	if cfg.Input != "grewordlist.txt" {
		t.Errorf("Input = %q, want default preserved", cfg.Input)
	}
	if cfg.Enrich.Workers != 6 {
		t.Errorf("Workers = %d, want 6", cfg.Enrich.Workers)
	}
	if cfg.Enrich.MinConsensusConfidence != 0.5 {
		t.Errorf("MinConsensusConfidence = %v, want default preserved", cfg.Enrich.MinConsensusConfidence)
	}

	ec := cfg.EnrichConfig()
	if ec.Strategy != enrich.StrategyCrossCheck {
		t.Errorf("parsed strategy = %v, want cross_check", ec.Strategy)
	}
	if ec.Workers != 6 {
		t.Errorf("EnrichConfig Workers = %d", ec.Workers)
	}
	if ec.InvokeTimeout != 30*time.Second {
		t.Errorf("InvokeTimeout = %v, want 30s", ec.InvokeTimeout)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("outptu = \"typo.txt\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() accepted a misspelled key")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad strategy", "[enrich]\nstrategy = \"vote\"\n"},
		{"confidence out of range", "[enrich]\nmin_consensus_confidence = 1.5\n"},
		{"bad level", "[validation]\nlevel = \"extreme\"\n"},
		{"negative max_words", "max_words = -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("Load() accepted %s", tt.name)
			}
		})
	}
}

func TestLoadNonExistent(t *testing.T) {
	if _, err := Load("/nonexistent/path/config.toml"); err == nil {
		t.Error("expected error for non-existent config")
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() error: %v", err)
	}
	if cfg.Output != "enriched_wordlist.txt" {
		t.Errorf("Output = %q, want default", cfg.Output)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Enrich.Strategy = "expert_panel"
	cfg.Enrich.Strict = true

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Enrich.Strategy != "expert_panel" {
		t.Errorf("Strategy = %q", got.Enrich.Strategy)
	}
	ec := got.EnrichConfig()
	if ec.ParseMode != consensus.Strict {
		t.Error("strict mode not carried into parse mode")
	}
}

func TestEngineDisabled(t *testing.T) {
	cfg := Default()
	cfg.Validation.Enabled = false
	if cfg.Engine() != nil {
		t.Error("Engine() should be nil when validation is disabled")
	}
	cfg.Validation.Enabled = true
	if cfg.Engine() == nil {
		t.Error("Engine() nil with validation enabled")
	}
}

func TestLoadClassifierDefault(t *testing.T) {
	cfg := Default()
	classifier, err := cfg.LoadClassifier()
	if err != nil {
		t.Fatalf("LoadClassifier() error: %v", err)
	}
	profile := classifier.Classify("tinyllama:1.1b")
	if profile.Speed != "fast" {
		t.Errorf("built-in rules missing: tinyllama speed = %v", profile.Speed)
	}
}

func TestLoadClassifierOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classes.yaml")
	content := `
- substrings: ["mymodel"]
  size: "1B"
  speed: fast
  quality: high
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := Default()
	cfg.Classifier = path

	classifier, err := cfg.LoadClassifier()
	if err != nil {
		t.Fatalf("LoadClassifier() error: %v", err)
	}
	profile := classifier.Classify("mymodel:latest")
	if profile.Speed != "fast" || profile.Quality != "high" {
		t.Errorf("override not applied: %+v", profile)
	}
}
