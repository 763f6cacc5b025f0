package pipeline

import (
	"fmt"
	"math/rand"

	"github.com/aretw0/lumen/pkg/feature"
)

// CompileRule turns a rule spec into an engine rule.
func CompileRule(spec RuleSpec) (feature.Rule, error) {
	set := 0
	if spec.Constant != nil {
		set++
	}
	if spec.Uniform != nil {
		set++
	}
	if spec.UniformInt != nil {
		set++
	}
	if spec.Normal != nil {
		set++
	}
	if spec.Choice != nil {
		set++
	}
	if spec.Depends != nil {
		set++
	}
	if set != 1 {
		return nil, fmt.Errorf("rule spec must set exactly one of constant/uniform/uniform_int/normal/choice/depends")
	}

	switch {
	case spec.Constant != nil:
		return feature.Constant(spec.Constant), nil

	case spec.Uniform != nil:
		return compileUniform(spec.Uniform)

	case spec.UniformInt != nil:
		lo, hi := spec.UniformInt.Min, spec.UniformInt.Max
		if hi < lo {
			return nil, fmt.Errorf("uniform_int: max %d below min %d", hi, lo)
		}
		return feature.Sampler(func(rng *rand.Rand) any {
			return lo + rng.Intn(hi-lo+1)
		}), nil

	case spec.Normal != nil:
		mean, stddev := spec.Normal.Mean, spec.Normal.StdDev
		if stddev < 0 {
			return nil, fmt.Errorf("normal: stddev must be non-negative, got %v", stddev)
		}
		return feature.Sampler(func(rng *rand.Rand) any {
			return rng.NormFloat64()*stddev + mean
		}), nil

	case spec.Choice != nil:
		if len(spec.Choice) == 0 {
			return nil, fmt.Errorf("choice: requires at least one option")
		}
		options := append([]any(nil), spec.Choice...)
		return feature.Sampler(func(rng *rand.Rand) any {
			return options[rng.Intn(len(options))]
		}), nil

	default:
		return compileDepends(spec.Depends)
	}
}

// compileUniform builds a scalar or per-axis vector uniform draw depending
// on the bound shapes.
func compileUniform(r *RangeSpec) (feature.Rule, error) {
	minVec, okMin := feature.AsVector(r.Min)
	maxVec, okMax := feature.AsVector(r.Max)
	if !okMin || !okMax {
		return nil, fmt.Errorf("uniform: min and max must be numbers or vectors")
	}
	if len(minVec) != len(maxVec) {
		return nil, fmt.Errorf("uniform: min and max must have equal length, got %d and %d", len(minVec), len(maxVec))
	}
	for i := range minVec {
		if maxVec[i] < minVec[i] {
			return nil, fmt.Errorf("uniform: max %v below min %v at axis %d", maxVec[i], minVec[i], i)
		}
	}

	// Scalar bounds yield scalar samples; vector bounds yield vectors.
	_, minIsVector := r.Min.([]any)
	scalar := !minIsVector && len(minVec) == 1

	return feature.Sampler(func(rng *rand.Rand) any {
		out := make([]float64, len(minVec))
		for i := range out {
			out[i] = minVec[i] + rng.Float64()*(maxVec[i]-minVec[i])
		}
		if scalar {
			return out[0]
		}
		return out
	}), nil
}

// compileDepends builds a dependent rule from a named expression over
// sibling properties.
func compileDepends(d *DependsSpec) (feature.Rule, error) {
	if len(d.On) == 0 {
		return nil, fmt.Errorf("depends: requires at least one sibling name")
	}
	factor := d.Factor
	if factor == 0 {
		factor = 1
	}

	switch d.Expr {
	case "sum", "product":
		expr := d.Expr
		return feature.Dependent(func(siblings feature.Values) (any, error) {
			acc := 0.0
			if expr == "product" {
				acc = 1.0
			}
			for _, name := range d.On {
				v, ok := feature.AsFloat(siblings[name])
				if !ok {
					return nil, fmt.Errorf("depends: sibling %q is not numeric", name)
				}
				if expr == "product" {
					acc *= v
				} else {
					acc += v
				}
			}
			return acc * factor, nil
		}, d.On...), nil

	case "scale", "copy":
		if len(d.On) != 1 {
			return nil, fmt.Errorf("depends: %s expects exactly one sibling", d.Expr)
		}
		name := d.On[0]
		scale := factor
		if d.Expr == "copy" {
			scale = 1
		}
		return feature.Dependent(func(siblings feature.Values) (any, error) {
			if scale == 1 {
				return siblings[name], nil
			}
			v, ok := feature.AsFloat(siblings[name])
			if !ok {
				return nil, fmt.Errorf("depends: sibling %q is not numeric", name)
			}
			return v * scale, nil
		}, name), nil

	default:
		return nil, fmt.Errorf("depends: unknown expression %q", d.Expr)
	}
}
