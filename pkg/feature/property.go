package feature

import (
	"fmt"
	"math/rand"

	"github.com/aretw0/lumen/pkg/domain"
)

// Property is a resampling cell: a rule, a cached current value, and a cycle
// marker guaranteeing the rule executes at most once per update cycle.
//
// A Property is normally owned by exactly one feature's Dict. Passing the
// same *Property instance to several features couples their sampled values:
// the first refresh of a cycle samples it, later owners observe the cached
// value. This is intentional sharing (read-shared, single-writer) and defeats
// Repeat's independent-copy guarantee where used.
type Property struct {
	rule    Rule
	value   any
	sampled bool
	cycle   uint64
}

// NewProperty creates a property from a rule.
func NewProperty(rule Rule) (*Property, error) {
	if rule == nil {
		return nil, fmt.Errorf("property rule must not be nil")
	}
	return &Property{rule: rule}, nil
}

// Rule returns the underlying rule.
func (p *Property) Rule() Rule { return p.rule }

// Sample executes the rule unless it already ran in this cycle, caches the
// result, and returns the current value. Dependent rules receive the sibling
// values the caller has already refreshed this cycle.
func (p *Property) Sample(cycle uint64, rng *rand.Rand, siblings Values) (any, error) {
	if p.sampled && p.cycle == cycle {
		return p.value, nil
	}
	v, err := p.rule.Sample(rng, siblings)
	if err != nil {
		return nil, err
	}
	p.value = v
	p.sampled = true
	p.cycle = cycle
	return v, nil
}

// Value returns the last sampled value without resampling.
// It fails with domain.ErrNotSampled before the first Sample.
func (p *Property) Value() (any, error) {
	if !p.sampled {
		return nil, domain.ErrNotSampled
	}
	return p.value, nil
}

// Sampled reports whether the property has been sampled at least once.
func (p *Property) Sampled() bool { return p.sampled }
