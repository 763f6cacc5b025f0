package scatter_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/lumen/pkg/domain"
	"github.com/aretw0/lumen/pkg/feature"
	"github.com/aretw0/lumen/pkg/scatter"
)

func resolveOnce(t *testing.T, f feature.Feature, seed int64) []*domain.Frame {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	require.NoError(t, f.Update(feature.NewUpdateContext(1, rng)))
	out, err := f.Resolve(feature.NewResolveContext(1, rng), nil)
	require.NoError(t, err)
	return out
}

func TestPoint(t *testing.T) {
	p, err := scatter.Point(
		scatter.WithPosition(feature.Constant([]float64{3, 4})),
		scatter.WithValue(feature.Constant(2.5)),
	)
	require.NoError(t, err)
	assert.Equal(t, feature.MergeAppend, p.Merge())

	out := resolveOnce(t, p, 1)
	require.Len(t, out, 1)
	assert.Equal(t, []int{1, 1, 1}, out[0].Shape)
	assert.Equal(t, 2.5, out[0].Data[0])

	require.Len(t, out[0].Provenance, 1)
	assert.Equal(t, []float64{3, 4}, out[0].Provenance[0].Values["position"])
}

func TestPointFieldAccumulatesFrames(t *testing.T) {
	particles, err := feature.Repeat(func() feature.Feature {
		p, err := scatter.Point(
			scatter.WithPosition(feature.Sampler(func(rng *rand.Rand) any {
				return []float64{rng.Float64() * 10, rng.Float64() * 10}
			})),
		)
		require.NoError(t, err)
		return p
	}, feature.Constant(3))
	require.NoError(t, err)

	out := resolveOnce(t, particles, 7)
	require.Len(t, out, 3, "append merge must accumulate one frame per particle")

	positions := map[string]bool{}
	for _, f := range out {
		collected := f.Provenance.Collect("position")
		require.Len(t, collected, 1, "each frame carries exactly its own position")
		pos, ok := collected[0].([]float64)
		require.True(t, ok)
		require.Len(t, pos, 2)
		positions[fmt.Sprintf("%v", pos)] = true
	}
	assert.Len(t, positions, 3, "every particle samples its own position")
}

func TestEllipseCircular(t *testing.T) {
	e, err := scatter.Ellipse(feature.Constant(3.0))
	require.NoError(t, err)

	out := resolveOnce(t, e, 1)
	require.Len(t, out, 1)
	assert.Equal(t, []int{6, 6, 1}, out[0].Shape)

	// Center pixels are inside the disk, corners are not.
	v, err := out[0].At(3, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
	v, err = out[0].At(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestEllipseRotationInvariantMass(t *testing.T) {
	mass := func(rotation float64) float64 {
		e, err := scatter.Ellipse(feature.Constant([]float64{4, 2}),
			scatter.WithRotation(feature.Constant(rotation)),
		)
		require.NoError(t, err)
		out := resolveOnce(t, e, 1)
		total := 0.0
		for _, v := range out[0].Data {
			total += v
		}
		return total
	}

	// A quarter turn swaps the axes; the occupied area stays comparable.
	m0 := mass(0)
	m90 := mass(1.5707963267948966)
	assert.Greater(t, m0, 0.0)
	assert.InDelta(t, m0, m90, m0*0.25)
}

func TestSphere(t *testing.T) {
	s, err := scatter.Sphere(feature.Constant(2.0),
		scatter.WithValue(feature.Constant(3.0)),
	)
	require.NoError(t, err)

	out := resolveOnce(t, s, 1)
	require.Len(t, out, 1)
	assert.Equal(t, []int{4, 4, 4}, out[0].Shape)

	v, err := out[0].At(2, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)
	v, err = out[0].At(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestEllipsoidRadiusBroadcast(t *testing.T) {
	// A length-2 radius pads with the minor axis for the third dimension.
	e, err := scatter.Ellipsoid(feature.Constant([]float64{3, 2}))
	require.NoError(t, err)

	out := resolveOnce(t, e, 1)
	require.Len(t, out, 1)
	assert.Equal(t, []int{6, 6, 6}, out[0].Shape)
}

func TestRadiusValidation(t *testing.T) {
	tests := []struct {
		name   string
		radius any
	}{
		{"Negative", -1.0},
		{"Zero", 0.0},
		{"Non Numeric", "big"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := scatter.Sphere(feature.Constant(tt.radius))
			require.NoError(t, err)
			rng := rand.New(rand.NewSource(1))
			require.NoError(t, s.Update(feature.NewUpdateContext(1, rng)))
			_, err = s.Resolve(feature.NewResolveContext(1, rng), nil)
			assert.Error(t, err)
		})
	}
}

func TestSharedValueAcrossScatterers(t *testing.T) {
	shared, err := feature.NewProperty(feature.Sampler(func(rng *rand.Rand) any {
		return rng.Float64()
	}))
	require.NoError(t, err)

	a, err := scatter.Point(scatter.WithSharedProperty("value", shared))
	require.NoError(t, err)
	b, err := scatter.Point(scatter.WithSharedProperty("value", shared))
	require.NoError(t, err)

	out := resolveOnce(t, feature.Sequence(a, b), 11)
	require.Len(t, out, 2)
	assert.Equal(t, out[0].Data[0], out[1].Data[0],
		"both particles must observe the one sampled intensity")
}
