package dsl_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/lumen/pkg/dsl"
	"github.com/aretw0/lumen/pkg/feature"
	"github.com/aretw0/lumen/pkg/registry"
)

func TestBuilderProducesValidSpec(t *testing.T) {
	spec := dsl.NewPipeline("beads").
		Describe("# Beads").
		Seed(42).
		Root(dsl.Sequence(
			dsl.Repeat(
				dsl.Node("point").
					Prop("position", dsl.UniformVec([]float64{0, 0}, []float64{64, 64})).
					Prop("value", dsl.Normal(1, 0.1)),
				dsl.UniformInt(1, 5),
			),
			dsl.Maybe(
				dsl.Node("sphere").Prop("radius", dsl.Choice(2.0, 3.0)),
				dsl.Constant(0.5),
			),
		)).
		Build()

	require.NoError(t, spec.Validate())
	assert.Equal(t, "beads", spec.Name)
	assert.Equal(t, "# Beads", spec.Description)
	assert.Equal(t, int64(42), spec.Seed)

	require.Len(t, spec.Root.Children, 2)
	assert.Equal(t, "repeat", spec.Root.Children[0].Type)
	assert.Equal(t, "maybe", spec.Root.Children[1].Type)
}

func TestBuilderSpecCompiles(t *testing.T) {
	spec := dsl.NewPipeline("x").
		Root(dsl.Repeat(
			dsl.Node("point").Prop("position", dsl.UniformVec([]float64{0, 0}, []float64{8, 8})),
			dsl.Constant(2),
		)).
		Build()

	g, err := registry.New().Build(spec.Root)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	require.NoError(t, g.Update(feature.NewUpdateContext(1, rng)))
	out, err := g.Resolve(feature.NewResolveContext(1, rng), nil)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestBuilderWrap(t *testing.T) {
	node := dsl.Wrap(
		dsl.Node("ellipse").Prop("radius", dsl.Constant(2.0)),
		dsl.Node("point"),
	).Build()

	assert.Equal(t, "wrap", node.Type)
	require.NotNil(t, node.Outer)
	require.NotNil(t, node.Inner)
	assert.Equal(t, "ellipse", node.Outer.Type)
	assert.Equal(t, "point", node.Inner.Type)
}

func TestBuilderUniformScalarVsVector(t *testing.T) {
	scalar := dsl.Uniform(0, 1)
	require.NotNil(t, scalar.Uniform)
	assert.Equal(t, 0.0, scalar.Uniform.Min)

	vec := dsl.UniformVec([]float64{0, 0}, []float64{1, 1})
	require.NotNil(t, vec.Uniform)
	_, isVector := vec.Uniform.Min.([]any)
	assert.True(t, isVector, "vector bounds must survive as vectors")
}
