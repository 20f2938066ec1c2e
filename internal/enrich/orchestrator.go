// Package enrich drives the end-to-end pipeline: strategy dispatch, backend
// fan-out, consensus, fallback, padding, and validation.
package enrich

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/shahbajlive/lexforge/internal/backend"
	"github.com/shahbajlive/lexforge/internal/cache"
	"github.com/shahbajlive/lexforge/internal/consensus"
	"github.com/shahbajlive/lexforge/internal/validate"
	"github.com/shahbajlive/lexforge/internal/wordlist"
)

// Config holds the orchestration policy for one run.
type Config struct {
	// Strategy is the backend combination strategy.
	Strategy Strategy `json:"strategy" toml:"strategy"`

	// MinConsensusConfidence is the floor below which a merged result is
	// discarded in favor of the deterministic fallback.
	MinConsensusConfidence float64 `json:"min_consensus_confidence" toml:"min_consensus_confidence"`

	// ConsensusBackends is how many top-priority backends the consensus
	// strategy queries per word.
	ConsensusBackends int `json:"consensus_backends" toml:"consensus_backends"`

	// InvokeTimeout bounds each enrichment call to a backend.
	InvokeTimeout time.Duration `json:"invoke_timeout" toml:"invoke_timeout"`

	// CrossCheckTimeout bounds each scoring call in the cross-check
	// strategy. Scoring prompts are short, so this is tighter.
	CrossCheckTimeout time.Duration `json:"cross_check_timeout" toml:"cross_check_timeout"`

	// CrossCheckValidators is how many backends score the primary answer.
	CrossCheckValidators int `json:"cross_check_validators" toml:"cross_check_validators"`

	// Workers is the pool width for Run. Zero means derive from the host.
	Workers int `json:"workers" toml:"workers"`

	// ParseMode controls candidate acceptance.
	ParseMode consensus.ParseMode `json:"-" toml:"-"`

	// Builder tunes the consensus merge.
	Builder consensus.BuilderConfig `json:"builder" toml:"builder"`
}

// DefaultConfig returns the standard orchestration policy.
func DefaultConfig() Config {
	return Config{
		Strategy:               StrategyConsensus,
		MinConsensusConfidence: 0.5,
		ConsensusBackends:      2,
		InvokeTimeout:          30 * time.Second,
		CrossCheckTimeout:      15 * time.Second,
		CrossCheckValidators:   2,
		ParseMode:              consensus.PartialAccept,
		Builder:                consensus.DefaultBuilderConfig(),
	}
}

// Orchestrator runs the enrichment pipeline. It is safe for concurrent use;
// all mutable state lives in the per-call stack and the stats counters.
type Orchestrator struct {
	cfg      Config
	registry *backend.Registry
	invoker  *backend.Invoker
	roles    backend.Roles
	parser   consensus.Parser
	engine   *validate.Engine
	store    *cache.Store
	logger   *slog.Logger

	mu    sync.Mutex
	stats Stats
}

// New builds an orchestrator. engine may be nil to skip validation; store
// may be nil to disable the response cache.
func New(cfg Config, reg *backend.Registry, inv *backend.Invoker, engine *validate.Engine, store *cache.Store, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Strategy.IsValid() {
		cfg.Strategy = StrategyConsensus
	}
	if cfg.ConsensusBackends <= 0 {
		cfg.ConsensusBackends = 2
	}
	if cfg.CrossCheckValidators <= 0 {
		cfg.CrossCheckValidators = 2
	}
	return &Orchestrator{
		cfg:      cfg,
		registry: reg,
		invoker:  inv,
		roles:    backend.AssignRoles(reg),
		parser:   consensus.Parser{Mode: cfg.ParseMode},
		engine:   engine,
		store:    store,
		logger:   logger,
	}
}

// Stats returns a snapshot of the run counters.
func (o *Orchestrator) Stats() Stats {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stats
}

// EnrichWord produces the finished record for one task. It never fails: on
// any backend trouble the deterministic fallback fills the record.
func (o *Orchestrator) EnrichWord(ctx context.Context, task wordlist.Task) Record {
	start := time.Now()
	log := o.logger.With("word", task.Word, "strategy", o.cfg.Strategy.String())

	result := o.runStrategy(ctx, task)

	rec := Record{
		Word:         task.Word,
		PartOfSpeech: task.PartOfSpeech,
		Definition:   task.Definition,
		Strategy:     o.cfg.Strategy,
	}

	if result != nil && float64(result.ConfidenceScore) >= o.cfg.MinConsensusConfidence {
		rec.Synonyms = result.Synonyms
		rec.Antonyms = result.Antonyms
		rec.Sentences = result.Sentences
		rec.Etymology = result.Etymology
		rec.ConsensusAchieved = true
		rec.ConfidenceScore = float64(result.ConfidenceScore)
		rec.AgreementLevel = float64(result.AgreementLevel)
		for id := range result.Votes {
			rec.ModelsUsed = append(rec.ModelsUsed, id)
		}
		sort.Strings(rec.ModelsUsed)
		log.Info("consensus achieved",
			"confidence", rec.ConfidenceScore,
			"agreement", rec.AgreementLevel,
			"models", len(rec.ModelsUsed))
		o.bumpConsensus(len(result.Votes), rec.ConfidenceScore, rec.AgreementLevel)
	} else {
		rec.Synonyms = FallbackSynonyms(task)
		rec.Antonyms = FallbackAntonyms(task)
		rec.Sentences = FallbackSentences(task)
		rec.Etymology = FallbackEtymology(task.Word)
		rec.FallbackUsed = true
		log.Warn("consensus failed, using fallback")
		o.bumpFallback()
	}

	rec.Synonyms = pad(rec.Synonyms, 5, "synonym")
	rec.Antonyms = pad(rec.Antonyms, 5, "antonym")
	rec.Sentences = padSentences(rec.Sentences, 3, task.Word)
	if rec.Etymology == "" {
		rec.Etymology = FallbackEtymology(task.Word)
	}

	if o.engine != nil {
		report := o.engine.Validate(task.Word, task.PartOfSpeech.String(), task.Definition,
			rec.Synonyms, rec.Antonyms, rec.Sentences, rec.Etymology)
		rec.Validation = &report
	}

	rec.Elapsed = time.Since(start)
	return rec
}

func (o *Orchestrator) runStrategy(ctx context.Context, task wordlist.Task) *consensus.Result {
	switch o.cfg.Strategy {
	case StrategyExpertPanel:
		return o.expertPanel(ctx, task)
	case StrategyCrossCheck:
		return o.crossCheck(ctx, task)
	default:
		return o.consensus(ctx, task)
	}
}

// consensus queries the top-priority backends in parallel and merges
// whatever answered. A single respondent is accepted.
func (o *Orchestrator) consensus(ctx context.Context, task wordlist.Task) *consensus.Result {
	ids := o.registry.TopByPriority(o.cfg.ConsensusBackends)
	candidates := o.queryAll(ctx, task, ids)
	if len(candidates) == 0 {
		return nil
	}
	result, err := consensus.Build(candidates, task.Word, o.cfg.Builder)
	if err != nil {
		o.logger.Error("consensus build failed", "word", task.Word, "error", err)
		return nil
	}
	return result
}

// expertPanel queries one backend per specialist role and merges their
// answers. A backend covering several roles is queried once.
func (o *Orchestrator) expertPanel(ctx context.Context, task wordlist.Task) *consensus.Result {
	var ids []string
	seen := map[string]bool{}
	for _, role := range []backend.Role{backend.RoleSynonymExpert, backend.RoleGrammarExpert, backend.RoleEtymologyExpert} {
		id, ok := o.roles.First(role)
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	candidates := o.queryAll(ctx, task, ids)
	if len(candidates) == 0 {
		return nil
	}
	result, err := consensus.Build(candidates, task.Word, o.cfg.Builder)
	if err != nil {
		o.logger.Error("expert panel build failed", "word", task.Word, "error", err)
		return nil
	}
	return result
}

// crossCheck takes the first backend's answer and discounts its confidence
// by how other backends score the synonym and antonym lists.
func (o *Orchestrator) crossCheck(ctx context.Context, task wordlist.Task) *consensus.Result {
	profiles := o.registry.List()
	if len(profiles) == 0 {
		return nil
	}
	primary := profiles[0].ID

	cand := o.queryOne(ctx, task, primary)
	if cand == nil {
		return nil
	}

	validators := o.roles.ValidatorsExcluding(primary, o.cfg.CrossCheckValidators)
	var means []consensus.Confidence
	for _, v := range validators {
		prompt := consensus.CrossCheckPrompt(task, cand.Synonyms, cand.Antonyms)
		raw, err := o.invoker.Invoke(ctx, v, prompt, o.cfg.CrossCheckTimeout)
		if err != nil {
			o.logger.Warn("cross-check validator failed", "word", task.Word, "backend", v, "error", err)
			continue
		}
		means = append(means, consensus.ParseScores(raw).Mean())
	}
	if len(means) > 0 {
		var total consensus.Confidence
		for _, m := range means {
			total += m
		}
		validated := total / consensus.Confidence(len(means))
		if validated < cand.Confidence {
			cand.Confidence = validated
		}
	}

	return &consensus.Result{
		Synonyms:        cand.Synonyms,
		Antonyms:        cand.Antonyms,
		Sentences:       cand.Sentences,
		Etymology:       cand.Etymology,
		ConfidenceScore: cand.Confidence,
		AgreementLevel:  cand.Confidence,
		Votes:           map[string]consensus.Confidence{primary: cand.Confidence},
	}
}

// queryAll fans out to the given backends and returns the candidates that
// answered with parseable content.
func (o *Orchestrator) queryAll(ctx context.Context, task wordlist.Task, ids []string) []*consensus.Candidate {
	type slot struct {
		cand *consensus.Candidate
	}
	slots := make([]slot, len(ids))

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			slots[i].cand = o.queryOne(ctx, task, id)
		}(i, id)
	}
	wg.Wait()

	var candidates []*consensus.Candidate
	for _, s := range slots {
		if s.cand != nil {
			candidates = append(candidates, s.cand)
		}
	}
	return candidates
}

// queryOne invokes one backend for one task, going through the response
// cache when one is configured, and parses the reply.
func (o *Orchestrator) queryOne(ctx context.Context, task wordlist.Task, id string) *consensus.Candidate {
	start := time.Now()

	invoke := func() (string, error) {
		return o.invoker.Invoke(ctx, id, consensus.EnrichmentPrompt(task), o.cfg.InvokeTimeout)
	}

	var raw string
	var err error
	var cached bool
	if o.store != nil {
		key := cache.Key(task.Word, task.PartOfSpeech.String(), task.Definition, id)
		raw, cached, err = o.store.GetOrCompute(key, id, task.Word, invoke)
	} else {
		raw, err = invoke()
	}
	if err != nil {
		o.logger.Warn("backend query failed", "word", task.Word, "backend", id, "error", err)
		return nil
	}
	if cached {
		o.logger.Debug("cache hit", "word", task.Word, "backend", id)
	}

	cand := o.parser.ParseResponse(raw, id, time.Since(start))
	if cand == nil {
		o.logger.Warn("unparseable response", "word", task.Word, "backend", id)
	}
	return cand
}

func (o *Orchestrator) bumpConsensus(models int, confidence, agreement float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stats.ConsensusAchieved++
	o.stats.TotalModelsUsed += models
	o.stats.ConfidenceSum += confidence
	o.stats.AgreementSum += agreement
}

func (o *Orchestrator) bumpFallback() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stats.ConsensusFailed++
	o.stats.SingleModelFallback++
}
