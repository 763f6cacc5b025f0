package registry_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/lumen/pkg/domain"
	"github.com/aretw0/lumen/pkg/feature"
	"github.com/aretw0/lumen/pkg/pipeline"
	"github.com/aretw0/lumen/pkg/registry"
)

func constant(v any) *pipeline.RuleSpec {
	return &pipeline.RuleSpec{Constant: v}
}

func pointSpec() pipeline.NodeSpec {
	return pipeline.NodeSpec{
		Type: "point",
		Properties: map[string]pipeline.RuleSpec{
			"position": {Constant: []any{1.0, 2.0}},
			"value":    {Constant: 2.0},
		},
	}
}

func resolveGraph(t *testing.T, f feature.Feature) []*domain.Frame {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	require.NoError(t, f.Update(feature.NewUpdateContext(1, rng)))
	out, err := f.Resolve(feature.NewResolveContext(1, rng), nil)
	require.NoError(t, err)
	return out
}

func TestBuildPoint(t *testing.T) {
	g, err := registry.New().Build(pointSpec())
	require.NoError(t, err)
	assert.Equal(t, "point", g.Name())

	out := resolveGraph(t, g)
	require.Len(t, out, 1)
	assert.Equal(t, 2.0, out[0].Data[0])
}

func TestBuildSequence(t *testing.T) {
	g, err := registry.New().Build(pipeline.NodeSpec{
		Type:     "sequence",
		Children: []pipeline.NodeSpec{pointSpec(), pointSpec()},
	})
	require.NoError(t, err)

	out := resolveGraph(t, g)
	assert.Len(t, out, 2)
}

func TestBuildRepeat(t *testing.T) {
	child := pointSpec()
	g, err := registry.New().Build(pipeline.NodeSpec{
		Type:    "repeat",
		Feature: &child,
		Count:   constant(3),
	})
	require.NoError(t, err)

	out := resolveGraph(t, g)
	assert.Len(t, out, 3)
}

func TestBuildRepeatSurfacesChildErrors(t *testing.T) {
	bad := pipeline.NodeSpec{Type: "ellipse"} // missing required radius
	_, err := registry.New().Build(pipeline.NodeSpec{
		Type:    "repeat",
		Feature: &bad,
		Count:   constant(2),
	})
	require.Error(t, err, "definition errors must surface at compile time")
	assert.Contains(t, err.Error(), "radius")
}

func TestBuildMaybe(t *testing.T) {
	child := pointSpec()
	g, err := registry.New().Build(pipeline.NodeSpec{
		Type:        "maybe",
		Feature:     &child,
		Probability: constant(1.0),
	})
	require.NoError(t, err)

	out := resolveGraph(t, g)
	assert.Len(t, out, 1)
}

func TestBuildWrap(t *testing.T) {
	inner := pointSpec()
	outer := pointSpec()
	g, err := registry.New().Build(pipeline.NodeSpec{
		Type:  "wrap",
		Inner: &inner,
		Outer: &outer,
	})
	require.NoError(t, err)

	// Both scatterers append, so the wrap yields two frames.
	out := resolveGraph(t, g)
	assert.Len(t, out, 2)
}

func TestBuildUnknownType(t *testing.T) {
	_, err := registry.New().Build(pipeline.NodeSpec{Type: "hologram"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown feature type")
}

func TestBuildUnknownProperty(t *testing.T) {
	_, err := registry.New().Build(pipeline.NodeSpec{
		Type: "point",
		Properties: map[string]pipeline.RuleSpec{
			"wobble": {Constant: 1.0},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wobble")
}

func TestRegisterCustomType(t *testing.T) {
	r := registry.New()
	r.Register("blank", func(spec pipeline.NodeSpec) (feature.Feature, error) {
		return feature.New("blank", func(tc *feature.TransformContext) ([]*domain.Frame, error) {
			return []*domain.Frame{domain.NewFrame(2, 2)}, nil
		}, feature.WithMergeStrategy(feature.MergeAppend))
	})
	assert.Contains(t, r.Types(), "blank")

	g, err := r.Build(pipeline.NodeSpec{Type: "blank"})
	require.NoError(t, err)
	out := resolveGraph(t, g)
	require.Len(t, out, 1)
	assert.Equal(t, []int{2, 2}, out[0].Shape)
}

func TestRepeatCopiesAreFresh(t *testing.T) {
	child := pipeline.NodeSpec{
		Type: "point",
		Properties: map[string]pipeline.RuleSpec{
			"position": {Uniform: &pipeline.RangeSpec{Min: []any{0.0, 0.0}, Max: []any{64.0, 64.0}}},
		},
	}
	g, err := registry.New().Build(pipeline.NodeSpec{
		Type:    "repeat",
		Feature: &child,
		Count:   constant(2),
	})
	require.NoError(t, err)

	out := resolveGraph(t, g)
	require.Len(t, out, 2)
	p0 := out[0].Provenance.Collect("position")
	p1 := out[1].Provenance.Collect("position")
	require.Len(t, p0, 1)
	require.Len(t, p1, 1)
	assert.NotEqual(t, p0[0], p1[0], "each copy must sample its own position")
}
