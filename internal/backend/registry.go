package backend

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"
)

// FallbackID is the synthetic profile used when discovery fails. The
// pipeline always has at least one candidate backend; discovery failure
// degrades to single-model behavior instead of aborting the run.
const FallbackID = "llama3.1:8b"

// DiscoverTimeout bounds the single discovery subprocess call.
const DiscoverTimeout = 10 * time.Second

// Registry holds the discovered backend profiles, keyed by ID.
type Registry struct {
	profiles map[string]Profile

	// Degraded is true when discovery failed and the registry holds only
	// the synthetic fallback profile.
	Degraded bool
}

// Discover queries the host tool once for installed backends and classifies
// each. It never returns an empty registry: on any failure (tool absent,
// timeout, non-zero exit, unparseable output) it returns a registry holding
// the single synthetic fallback profile.
func Discover(ctx context.Context, runner Runner, classifier *Classifier) *Registry {
	ctx, cancel := context.WithTimeout(ctx, DiscoverTimeout)
	defer cancel()

	out, err := runner.Run(ctx, "", []string{"ollama", "list"})
	if err != nil {
		slog.Warn("backend discovery failed, using fallback profile", "error", err)
		return fallbackRegistry(classifier)
	}

	profiles := parseListOutput(out, classifier)
	if len(profiles) == 0 {
		slog.Warn("backend discovery returned no models, using fallback profile")
		return fallbackRegistry(classifier)
	}

	return &Registry{profiles: profiles}
}

func fallbackRegistry(classifier *Classifier) *Registry {
	p := classifier.Classify(FallbackID)
	p.Size = "8B"
	return &Registry{
		profiles: map[string]Profile{p.ID: p},
		Degraded: true,
	}
}

// parseListOutput parses `ollama list` tabular output. The first line is a
// header; each following line is "NAME ID SIZE MODIFIED" whitespace-separated.
func parseListOutput(out string, classifier *Classifier) map[string]Profile {
	profiles := make(map[string]Profile)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) < 2 {
		return profiles
	}
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		name := fields[0]
		p := classifier.Classify(name)
		profiles[name] = p
	}
	return profiles
}

// NewRegistry builds a registry from explicit profiles. Used by tests and by
// configurations that pin the backend set instead of discovering it.
func NewRegistry(profiles []Profile) *Registry {
	m := make(map[string]Profile, len(profiles))
	for _, p := range profiles {
		m[p.ID] = p
	}
	return &Registry{profiles: m}
}

// Get returns the profile for an ID.
func (r *Registry) Get(id string) (Profile, bool) {
	p, ok := r.profiles[id]
	return p, ok
}

// Len returns the number of discovered backends.
func (r *Registry) Len() int {
	return len(r.profiles)
}

// List returns all profiles sorted by ID for deterministic iteration.
func (r *Registry) List() []Profile {
	out := make([]Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// TopByPriority returns up to k backend IDs ranked by Priority (descending),
// ties broken by ID for stability. This is the consensus strategy's
// selection rule: fast backends answer more often within the timeout, so
// they are preferred even over higher-quality slow ones.
func (r *Registry) TopByPriority(k int) []string {
	profiles := r.List()
	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].Priority() > profiles[j].Priority()
	})
	if k > len(profiles) {
		k = len(profiles)
	}
	ids := make([]string, 0, k)
	for _, p := range profiles[:k] {
		ids = append(ids, p.ID)
	}
	return ids
}
