package feature

import (
	"context"
	"io"
	"log/slog"
	"math/rand"

	"github.com/aretw0/lumen/pkg/domain"
)

// UpdateContext carries the state of one update cycle through the graph:
// the cycle number, the explicit random source, and the set of nodes already
// visited this cycle (so shared nodes refresh exactly once).
type UpdateContext struct {
	Cycle uint64
	RNG   *rand.Rand

	visited map[Feature]struct{}
}

// NewUpdateContext creates the context for one update cycle.
func NewUpdateContext(cycle uint64, rng *rand.Rand) *UpdateContext {
	return &UpdateContext{
		Cycle:   cycle,
		RNG:     rng,
		visited: make(map[Feature]struct{}),
	}
}

// Visit marks the node as updated this cycle. It returns false if the node
// was already visited, in which case the caller must skip its work.
func (uc *UpdateContext) Visit(f Feature) bool {
	if _, ok := uc.visited[f]; ok {
		return false
	}
	uc.visited[f] = struct{}{}
	return true
}

// ResolveContext carries the state of one resolve pass: the random source for
// resolve-time draws (e.g. Maybe's coin flip), per-call property overrides,
// and observability plumbing.
//
// Overrides shadow property values by name for this pass only; they are never
// written back to the persisted property cache.
type ResolveContext struct {
	Cycle     uint64
	RNG       *rand.Rand
	Overrides Values

	Ctx    context.Context
	Logger *slog.Logger
	Hooks  domain.LifecycleHooks
}

// NewResolveContext creates the context for one resolve pass.
func NewResolveContext(cycle uint64, rng *rand.Rand) *ResolveContext {
	return &ResolveContext{
		Cycle: cycle,
		RNG:   rng,
		Ctx:   context.Background(),
	}
}

// WithOverrides returns the context with per-call overrides set.
func (rc *ResolveContext) WithOverrides(overrides Values) *ResolveContext {
	rc.Overrides = overrides
	return rc
}

// overlay merges per-call overrides onto resolved values, shadowing only
// names the dict actually owns. The dict's property cache is untouched.
func (rc *ResolveContext) overlay(dict *Dict, values Values) Values {
	if len(rc.Overrides) == 0 {
		return values
	}
	out := make(Values, len(values))
	for k, v := range values {
		out[k] = v
	}
	for k, v := range rc.Overrides {
		if _, ok := dict.Get(k); ok {
			out[k] = v
		}
	}
	return out
}

// logger returns the context logger, or a no-op logger.
func (rc *ResolveContext) logger() *slog.Logger {
	if rc.Logger != nil {
		return rc.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
