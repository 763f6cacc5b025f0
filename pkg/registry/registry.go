package registry

import (
	"fmt"
	"sync"

	"github.com/aretw0/lumen/pkg/feature"
	"github.com/aretw0/lumen/pkg/pipeline"
	"github.com/aretw0/lumen/pkg/scatter"
)

// Factory builds a feature from its pipeline spec.
type Factory func(spec pipeline.NodeSpec) (feature.Feature, error)

// Registry maps feature type names to factories. The built-in scatterers are
// registered by default; combinator specs (sequence, repeat, maybe, wrap)
// are compiled structurally by Build. Callers extend the registry with their
// own feature types.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// New creates a registry with the built-in feature types.
func New() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	r.Register("point", buildPoint)
	r.Register("ellipse", buildEllipse)
	r.Register("sphere", buildSphere)
	r.Register("ellipsoid", buildEllipsoid)
	return r
}

// Register adds a factory for a feature type.
// If the type already exists, it is overwritten.
func (r *Registry) Register(typeName string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[typeName] = factory
}

// Types returns the registered type names.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.factories))
	for name := range r.factories {
		out = append(out, name)
	}
	return out
}

// Build compiles a node spec tree into a feature graph.
func (r *Registry) Build(spec pipeline.NodeSpec) (feature.Feature, error) {
	switch spec.Type {
	case "sequence":
		children := make([]feature.Feature, len(spec.Children))
		for i := range spec.Children {
			child, err := r.Build(spec.Children[i])
			if err != nil {
				return nil, err
			}
			children[i] = child
		}
		return feature.Sequence(children...), nil

	case "repeat":
		count, err := pipeline.CompileRule(*spec.Count)
		if err != nil {
			return nil, fmt.Errorf("repeat count: %w", err)
		}
		// Probe the wrapped spec eagerly so definition errors surface at
		// compile time, not on the first update cycle.
		child := *spec.Feature
		if _, err := r.Build(child); err != nil {
			return nil, err
		}
		// Each instantiation must be a fresh, independent copy, so the
		// factory rebuilds the wrapped spec on every call.
		return feature.Repeat(func() feature.Feature {
			f, _ := r.Build(child)
			return f
		}, count)

	case "maybe":
		probability, err := pipeline.CompileRule(*spec.Probability)
		if err != nil {
			return nil, fmt.Errorf("maybe probability: %w", err)
		}
		child, err := r.Build(*spec.Feature)
		if err != nil {
			return nil, err
		}
		return feature.Maybe(child, probability)

	case "wrap":
		inner, err := r.Build(*spec.Inner)
		if err != nil {
			return nil, err
		}
		outer, err := r.Build(*spec.Outer)
		if err != nil {
			return nil, err
		}
		return feature.Wrap(outer, inner), nil
	}

	r.mu.RLock()
	factory, ok := r.factories[spec.Type]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown feature type: %s", spec.Type)
	}
	return factory(spec)
}

// scatterOptions compiles the shared scatterer property rules from a spec.
func scatterOptions(spec pipeline.NodeSpec, skip ...string) ([]scatter.Option, error) {
	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		skipped[s] = true
	}
	var opts []scatter.Option
	for name, ruleSpec := range spec.Properties {
		if skipped[name] {
			continue
		}
		rule, err := pipeline.CompileRule(ruleSpec)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", name, err)
		}
		switch name {
		case "position":
			opts = append(opts, scatter.WithPosition(rule))
		case "z":
			opts = append(opts, scatter.WithZ(rule))
		case "value":
			opts = append(opts, scatter.WithValue(rule))
		case "rotation":
			opts = append(opts, scatter.WithRotation(rule))
		default:
			return nil, fmt.Errorf("unknown property %q for %s", name, spec.Type)
		}
	}
	return opts, nil
}

// requiredRule compiles a property the feature type cannot default.
func requiredRule(spec pipeline.NodeSpec, name string) (feature.Rule, error) {
	ruleSpec, ok := spec.Properties[name]
	if !ok {
		return nil, fmt.Errorf("%s requires a %q property", spec.Type, name)
	}
	rule, err := pipeline.CompileRule(ruleSpec)
	if err != nil {
		return nil, fmt.Errorf("property %q: %w", name, err)
	}
	return rule, nil
}

func buildPoint(spec pipeline.NodeSpec) (feature.Feature, error) {
	opts, err := scatterOptions(spec)
	if err != nil {
		return nil, err
	}
	return scatter.Point(opts...)
}

func buildEllipse(spec pipeline.NodeSpec) (feature.Feature, error) {
	radius, err := requiredRule(spec, "radius")
	if err != nil {
		return nil, err
	}
	opts, err := scatterOptions(spec, "radius")
	if err != nil {
		return nil, err
	}
	return scatter.Ellipse(radius, opts...)
}

func buildSphere(spec pipeline.NodeSpec) (feature.Feature, error) {
	radius, err := requiredRule(spec, "radius")
	if err != nil {
		return nil, err
	}
	opts, err := scatterOptions(spec, "radius")
	if err != nil {
		return nil, err
	}
	return scatter.Sphere(radius, opts...)
}

func buildEllipsoid(spec pipeline.NodeSpec) (feature.Feature, error) {
	radius, err := requiredRule(spec, "radius")
	if err != nil {
		return nil, err
	}
	opts, err := scatterOptions(spec, "radius")
	if err != nil {
		return nil, err
	}
	return scatter.Ellipsoid(radius, opts...)
}
