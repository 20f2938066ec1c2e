// Package config loads the TOML run configuration. Every policy number in
// the pipeline lives here so runs are reproducible from one file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/shahbajlive/lexforge/internal/backend"
	"github.com/shahbajlive/lexforge/internal/consensus"
	"github.com/shahbajlive/lexforge/internal/enrich"
	"github.com/shahbajlive/lexforge/internal/validate"
)

// Config is the full run configuration.
type Config struct {
	// Input is the wordlist path ("word pos. definition" lines).
	Input string `toml:"input"`

	// Output is the enriched study text path.
	Output string `toml:"output"`

	// Backup receives a copy of Output before a run appends to it.
	Backup string `toml:"backup"`

	// Progress is the resumable checkpoint path.
	Progress string `toml:"progress"`

	// Report is the run report path, also watched by the dashboard.
	Report string `toml:"report"`

	// Cache is the SQLite response cache path. Empty disables caching.
	Cache string `toml:"cache"`

	// Classifier optionally points to a YAML backend-classification
	// override file.
	Classifier string `toml:"classifier"`

	// MaxWords caps how many wordlist lines a run processes. Zero means
	// no cap.
	MaxWords int `toml:"max_words"`

	Enrich     EnrichConfig     `toml:"enrich"`
	Validation ValidationConfig `toml:"validation"`
	Serve      ServeConfig      `toml:"serve"`
}

// EnrichConfig is the orchestration policy section.
type EnrichConfig struct {
	Strategy                 string  `toml:"strategy"`
	MinConsensusConfidence   float64 `toml:"min_consensus_confidence"`
	ConsensusBackends        int     `toml:"consensus_backends"`
	InvokeTimeoutSeconds     int     `toml:"invoke_timeout_seconds"`
	CrossCheckTimeoutSeconds int     `toml:"cross_check_timeout_seconds"`
	CrossCheckValidators     int     `toml:"cross_check_validators"`
	Workers                  int     `toml:"workers"`

	// Strict rejects incomplete backend responses instead of keeping
	// their partial fields.
	Strict bool `toml:"strict"`

	SentenceDedupeThreshold float64 `toml:"sentence_dedupe_threshold"`
}

// ValidationConfig is the quality-scoring section.
type ValidationConfig struct {
	Enabled bool             `toml:"enabled"`
	Level   string           `toml:"level"`
	Weights validate.Weights `toml:"weights"`
}

// ServeConfig is the dashboard section.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the standard configuration.
func Default() *Config {
	ec := enrich.DefaultConfig()
	return &Config{
		Input:    "grewordlist.txt",
		Output:   "enriched_wordlist.txt",
		Backup:   "enriched_wordlist_backup.txt",
		Progress: "enrichment_progress.json",
		Report:   "multi_model_report.json",
		Cache:    "lexforge_cache.db",
		Enrich: EnrichConfig{
			Strategy:                 ec.Strategy.String(),
			MinConsensusConfidence:   ec.MinConsensusConfidence,
			ConsensusBackends:        ec.ConsensusBackends,
			InvokeTimeoutSeconds:     int(ec.InvokeTimeout.Seconds()),
			CrossCheckTimeoutSeconds: int(ec.CrossCheckTimeout.Seconds()),
			CrossCheckValidators:     ec.CrossCheckValidators,
			SentenceDedupeThreshold:  ec.Builder.SentenceDedupeThreshold,
		},
		Validation: ValidationConfig{
			Enabled: true,
			Level:   validate.Intermediate.String(),
			Weights: validate.DefaultWeights(),
		},
		Serve: ServeConfig{Addr: "127.0.0.1:8632"},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "lexforge.toml"
	}
	return filepath.Join(base, "lexforge", "config.toml")
}

// Load reads a TOML config over the defaults, so partial files work.
func Load(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path if it exists, otherwise returns defaults.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Save writes the config as TOML, creating parent directories.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// Validate rejects out-of-range policy values.
func (c *Config) Validate() error {
	if _, ok := enrich.ParseStrategy(c.Enrich.Strategy); !ok {
		return fmt.Errorf("unknown strategy %q", c.Enrich.Strategy)
	}
	if c.Enrich.MinConsensusConfidence < 0 || c.Enrich.MinConsensusConfidence > 1 {
		return fmt.Errorf("min_consensus_confidence %v out of [0, 1]", c.Enrich.MinConsensusConfidence)
	}
	if c.Validation.Enabled && !validate.Level(c.Validation.Level).IsValid() {
		return fmt.Errorf("unknown validation level %q", c.Validation.Level)
	}
	w := c.Validation.Weights
	for name, v := range map[string]float64{
		"synonyms": w.Synonyms, "antonyms": w.Antonyms,
		"sentences": w.Sentences, "etymology": w.Etymology,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("validation weight %s = %v out of [0, 1]", name, v)
		}
	}
	if c.MaxWords < 0 {
		return fmt.Errorf("max_words must not be negative")
	}
	return nil
}

// EnrichConfig converts the file section into the orchestrator's policy.
func (c *Config) EnrichConfig() enrich.Config {
	ec := enrich.DefaultConfig()
	if strategy, ok := enrich.ParseStrategy(c.Enrich.Strategy); ok {
		ec.Strategy = strategy
	}
	ec.MinConsensusConfidence = c.Enrich.MinConsensusConfidence
	if c.Enrich.ConsensusBackends > 0 {
		ec.ConsensusBackends = c.Enrich.ConsensusBackends
	}
	if c.Enrich.InvokeTimeoutSeconds > 0 {
		ec.InvokeTimeout = time.Duration(c.Enrich.InvokeTimeoutSeconds) * time.Second
	}
	if c.Enrich.CrossCheckTimeoutSeconds > 0 {
		ec.CrossCheckTimeout = time.Duration(c.Enrich.CrossCheckTimeoutSeconds) * time.Second
	}
	if c.Enrich.CrossCheckValidators > 0 {
		ec.CrossCheckValidators = c.Enrich.CrossCheckValidators
	}
	ec.Workers = c.Enrich.Workers
	if c.Enrich.Strict {
		ec.ParseMode = consensus.Strict
	}
	if c.Enrich.SentenceDedupeThreshold > 0 {
		ec.Builder.SentenceDedupeThreshold = c.Enrich.SentenceDedupeThreshold
	}
	return ec
}

// Engine builds the validation engine, or nil when validation is disabled.
func (c *Config) Engine() *validate.Engine {
	if !c.Validation.Enabled {
		return nil
	}
	return validate.New(validate.Level(c.Validation.Level), c.Validation.Weights)
}

// LoadClassifier reads the YAML classification override when configured,
// falling back to the built-in rules.
func (c *Config) LoadClassifier() (*backend.Classifier, error) {
	if c.Classifier == "" {
		return backend.NewClassifier(), nil
	}
	data, err := os.ReadFile(c.Classifier)
	if err != nil {
		return nil, fmt.Errorf("read classifier %s: %w", c.Classifier, err)
	}
	classifier, err := backend.ParseClassifier(data)
	if err != nil {
		return nil, fmt.Errorf("parse classifier %s: %w", c.Classifier, err)
	}
	return classifier, nil
}
