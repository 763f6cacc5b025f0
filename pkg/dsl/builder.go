package dsl

import (
	"github.com/aretw0/lumen/pkg/pipeline"
)

// PipelineBuilder manages the construction of a pipeline spec.
type PipelineBuilder struct {
	spec pipeline.Spec
}

// NewPipeline creates a new pipeline builder.
func NewPipeline(name string) *PipelineBuilder {
	return &PipelineBuilder{
		spec: pipeline.Spec{Name: name},
	}
}

// Describe sets the markdown description shown by introspection tools.
func (b *PipelineBuilder) Describe(markdown string) *PipelineBuilder {
	b.spec.Description = markdown
	return b
}

// Seed sets the pipeline's default random seed.
func (b *PipelineBuilder) Seed(seed int64) *PipelineBuilder {
	b.spec.Seed = seed
	return b
}

// Root sets the root node of the graph.
func (b *PipelineBuilder) Root(node *NodeBuilder) *PipelineBuilder {
	b.spec.Root = node.spec
	return b
}

// Build returns the assembled spec.
func (b *PipelineBuilder) Build() *pipeline.Spec {
	return &b.spec
}

// NodeBuilder provides a fluent API for configuring one node spec.
type NodeBuilder struct {
	spec pipeline.NodeSpec
}

// Node creates a builder for the given feature type.
func Node(featureType string) *NodeBuilder {
	return &NodeBuilder{spec: pipeline.NodeSpec{Type: featureType}}
}

// Prop sets the rule for a named property.
func (n *NodeBuilder) Prop(name string, rule pipeline.RuleSpec) *NodeBuilder {
	if n.spec.Properties == nil {
		n.spec.Properties = make(map[string]pipeline.RuleSpec)
	}
	n.spec.Properties[name] = rule
	return n
}

// Build returns the underlying node spec.
// This is primarily used by the pipeline builder, but exposed for advanced
// usage.
func (n *NodeBuilder) Build() pipeline.NodeSpec {
	return n.spec
}

// Sequence chains the given nodes left to right.
func Sequence(children ...*NodeBuilder) *NodeBuilder {
	specs := make([]pipeline.NodeSpec, len(children))
	for i, c := range children {
		specs[i] = c.spec
	}
	return &NodeBuilder{spec: pipeline.NodeSpec{Type: "sequence", Children: specs}}
}

// Repeat duplicates the wrapped node a rule-determined number of times.
func Repeat(child *NodeBuilder, count pipeline.RuleSpec) *NodeBuilder {
	spec := child.spec
	return &NodeBuilder{spec: pipeline.NodeSpec{Type: "repeat", Feature: &spec, Count: &count}}
}

// Maybe includes the wrapped node with the given probability each resolve.
func Maybe(child *NodeBuilder, probability pipeline.RuleSpec) *NodeBuilder {
	spec := child.spec
	return &NodeBuilder{spec: pipeline.NodeSpec{Type: "maybe", Feature: &spec, Probability: &probability}}
}

// Wrap applies outer to the output of inner.
func Wrap(outer, inner *NodeBuilder) *NodeBuilder {
	outerSpec := outer.spec
	innerSpec := inner.spec
	return &NodeBuilder{spec: pipeline.NodeSpec{Type: "wrap", Outer: &outerSpec, Inner: &innerSpec}}
}

// Constant builds a constant rule spec.
func Constant(value any) pipeline.RuleSpec {
	return pipeline.RuleSpec{Constant: value}
}

// Uniform builds a scalar uniform rule spec over [min, max).
func Uniform(min, max float64) pipeline.RuleSpec {
	return pipeline.RuleSpec{Uniform: &pipeline.RangeSpec{Min: min, Max: max}}
}

// UniformVec builds a per-axis vector uniform rule spec.
func UniformVec(min, max []float64) pipeline.RuleSpec {
	minAny := make([]any, len(min))
	maxAny := make([]any, len(max))
	for i, v := range min {
		minAny[i] = v
	}
	for i, v := range max {
		maxAny[i] = v
	}
	return pipeline.RuleSpec{Uniform: &pipeline.RangeSpec{Min: minAny, Max: maxAny}}
}

// UniformInt builds an inclusive integer uniform rule spec.
func UniformInt(min, max int) pipeline.RuleSpec {
	return pipeline.RuleSpec{UniformInt: &pipeline.IntRange{Min: min, Max: max}}
}

// Normal builds a Gaussian rule spec.
func Normal(mean, stddev float64) pipeline.RuleSpec {
	return pipeline.RuleSpec{Normal: &pipeline.NormalSpec{Mean: mean, StdDev: stddev}}
}

// Choice builds a rule spec drawing uniformly from the options.
func Choice(options ...any) pipeline.RuleSpec {
	return pipeline.RuleSpec{Choice: options}
}
