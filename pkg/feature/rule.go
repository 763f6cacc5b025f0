package feature

import (
	"fmt"
	"math/rand"
)

// Values maps property names to their current resolved values.
type Values map[string]any

// Rule is a value-producing rule for a Property. Rules are stateless; all
// caching lives in the owning Property.
type Rule interface {
	// Sample produces a value. Independent rules ignore siblings; dependent
	// rules receive the already-refreshed values of their declared
	// dependencies.
	Sample(rng *rand.Rand, siblings Values) (any, error)

	// Dependencies lists the sibling property names this rule reads.
	// Empty for independent rules.
	Dependencies() []string
}

type constantRule struct {
	value any
}

func (r constantRule) Sample(*rand.Rand, Values) (any, error) { return r.value, nil }
func (r constantRule) Dependencies() []string                 { return nil }

// Constant returns a rule that always produces the same value.
// It still counts as "sampled" each cycle for provenance purposes.
func Constant(value any) Rule {
	return constantRule{value: value}
}

type samplerRule struct {
	fn func(*rand.Rand) any
}

func (r samplerRule) Sample(rng *rand.Rand, _ Values) (any, error) {
	if r.fn == nil {
		return nil, fmt.Errorf("sampler rule has no function")
	}
	return r.fn(rng), nil
}

func (r samplerRule) Dependencies() []string { return nil }

// Sampler returns a rule that invokes fn freshly on every update cycle.
// The RNG is the explicit random source threaded through the cycle.
func Sampler(fn func(*rand.Rand) any) Rule {
	return samplerRule{fn: fn}
}

type dependentRule struct {
	fn   func(Values) (any, error)
	deps []string
}

func (r dependentRule) Sample(_ *rand.Rand, siblings Values) (any, error) {
	if r.fn == nil {
		return nil, fmt.Errorf("dependent rule has no function")
	}
	return r.fn(siblings)
}

func (r dependentRule) Dependencies() []string { return r.deps }

// Dependent returns a rule computed from named sibling properties.
// The engine guarantees the named siblings are refreshed in the same cycle
// before fn runs; referencing an undeclared or undefined sibling fails with
// a missing-dependency error.
func Dependent(fn func(Values) (any, error), deps ...string) Rule {
	return dependentRule{fn: fn, deps: deps}
}
