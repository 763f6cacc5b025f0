package feature_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/lumen/pkg/domain"
	"github.com/aretw0/lumen/pkg/feature"
)

// emitter builds a leaf that appends one 1x1 frame holding its "value"
// property, the minimal content-generating node.
func emitter(t *testing.T, name string, value feature.Rule, opts ...feature.Option) *feature.Base {
	t.Helper()
	transform := func(tc *feature.TransformContext) ([]*domain.Frame, error) {
		v, ok := feature.AsFloat(tc.Props["value"])
		if !ok {
			return nil, fmt.Errorf("value must be numeric, got %T", tc.Props["value"])
		}
		f := domain.NewFrame(1)
		f.Data[0] = v
		return []*domain.Frame{f}, nil
	}
	base := append([]feature.Option{
		feature.WithProperty("value", value),
		feature.WithMergeStrategy(feature.MergeAppend),
	}, opts...)
	f, err := feature.New(name, transform, base...)
	require.NoError(t, err)
	return f
}

// scaler builds a leaf that multiplies every element of every frame by its
// "factor" property, replacing the working list.
func scaler(t *testing.T, factor feature.Rule, opts ...feature.Option) *feature.Base {
	t.Helper()
	transform := func(tc *feature.TransformContext) ([]*domain.Frame, error) {
		k, _ := feature.AsFloat(tc.Props["factor"])
		out := domain.CloneFrames(tc.Frames)
		for _, f := range out {
			for i := range f.Data {
				f.Data[i] *= k
			}
		}
		return out, nil
	}
	base := append([]feature.Option{feature.WithProperty("factor", factor)}, opts...)
	f, err := feature.New("scale", transform, base...)
	require.NoError(t, err)
	return f
}

func updateOnce(t *testing.T, f feature.Feature, cycle uint64) {
	t.Helper()
	require.NoError(t, f.Update(feature.NewUpdateContext(cycle, testRNG())))
}

func TestNewValidation(t *testing.T) {
	_, err := feature.New("", nil)
	assert.Error(t, err, "empty name must be rejected")

	_, err = feature.New("x", nil, feature.WithSharedProperty("value", nil))
	assert.Error(t, err, "nil shared property must be rejected")
}

func TestBaseAppendMerge(t *testing.T) {
	f := emitter(t, "point", feature.Constant(2.0))
	updateOnce(t, f, 1)

	input := []*domain.Frame{domain.NewFrame(1)}
	out, err := f.Resolve(feature.NewResolveContext(1, testRNG()), input)
	require.NoError(t, err)

	require.Len(t, out, 2, "append merge keeps the input and adds the new frame")
	assert.Same(t, input[0], out[0])
	assert.Equal(t, 2.0, out[1].Data[0])
}

func TestBaseOverrideMerge(t *testing.T) {
	f := scaler(t, feature.Constant(3.0))
	updateOnce(t, f, 1)

	input := []*domain.Frame{domain.NewFrame(1)}
	input[0].Data[0] = 2
	out, err := f.Resolve(feature.NewResolveContext(1, testRNG()), input)
	require.NoError(t, err)

	require.Len(t, out, 1, "override merge replaces the working list")
	assert.Equal(t, 6.0, out[0].Data[0])
}

func TestBaseNilTransformPassesThrough(t *testing.T) {
	f, err := feature.New("probe", nil, feature.WithProperty("value", feature.Constant(1)))
	require.NoError(t, err)
	updateOnce(t, f, 1)

	input := []*domain.Frame{domain.NewFrame(2)}
	out, err := f.Resolve(feature.NewResolveContext(1, testRNG()), input)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Same(t, input[0], out[0])
	assert.Empty(t, out[0].Provenance, "pass-through must not stamp provenance")
}

func TestBaseNoopTransform(t *testing.T) {
	f, err := feature.New("noop", func(tc *feature.TransformContext) ([]*domain.Frame, error) {
		return nil, nil
	})
	require.NoError(t, err)
	updateOnce(t, f, 1)

	input := []*domain.Frame{domain.NewFrame(1)}
	out, err := f.Resolve(feature.NewResolveContext(1, testRNG()), input)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Same(t, input[0], out[0])
	assert.Empty(t, out[0].Provenance)
}

func TestBaseDistributed(t *testing.T) {
	f := scaler(t, feature.Constant(2.0), feature.WithDistributed())
	updateOnce(t, f, 1)

	a := domain.NewFrame(1)
	a.Data[0] = 1
	b := domain.NewFrame(1)
	b.Data[0] = 10

	out, err := f.Resolve(feature.NewResolveContext(1, testRNG()), []*domain.Frame{a, b})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 2.0, out[0].Data[0])
	assert.Equal(t, 20.0, out[1].Data[0])
}

func TestBaseProvenanceStamping(t *testing.T) {
	f := emitter(t, "point", feature.Constant(1.0))
	updateOnce(t, f, 1)

	out, err := f.Resolve(feature.NewResolveContext(1, testRNG()), nil)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Len(t, out[0].Provenance, 1)
	snap := out[0].Provenance[0]
	assert.Equal(t, "point", snap.Feature)
	assert.Equal(t, 1.0, snap.Values["value"])
}

func TestBaseProvenanceSnapshotsAreIndependent(t *testing.T) {
	f := emitter(t, "point", feature.Constant(1.0))
	updateOnce(t, f, 1)
	rc := feature.NewResolveContext(1, testRNG())

	first, err := f.Resolve(rc, nil)
	require.NoError(t, err)
	second, err := f.Resolve(rc, nil)
	require.NoError(t, err)

	first[0].Provenance[0].Values["value"] = 99.0
	assert.Equal(t, 1.0, second[0].Provenance[0].Values["value"],
		"each frame must carry its own snapshot copy")
}

func TestResolveBeforeUpdateUsesInitialValues(t *testing.T) {
	f := emitter(t, "point", feature.Constant(7.0))

	// No Update has run; the resolve must lazily refresh instead of failing.
	out, err := f.Resolve(feature.NewResolveContext(0, testRNG()), nil)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 7.0, out[0].Data[0])
}

func TestResolveOverridesAreScoped(t *testing.T) {
	f := emitter(t, "point", feature.Constant(1.0))
	updateOnce(t, f, 1)

	rc := feature.NewResolveContext(1, testRNG())
	rc.Overrides = feature.Values{"value": 5.0, "unknown": 9.0}
	out, err := f.Resolve(rc, nil)
	require.NoError(t, err)
	assert.Equal(t, 5.0, out[0].Data[0])
	assert.Equal(t, 5.0, out[0].Provenance[0].Values["value"],
		"provenance records the values the transform actually saw")
	_, hasUnknown := out[0].Provenance[0].Values["unknown"]
	assert.False(t, hasUnknown, "overrides for names the node does not own are ignored")

	// A later resolve without overrides sees the persisted value again.
	out, err = f.Resolve(feature.NewResolveContext(1, testRNG()), nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, out[0].Data[0], "overrides must never persist")
}

func TestTransformErrorCarriesFeatureName(t *testing.T) {
	f, err := feature.New("broken", func(tc *feature.TransformContext) ([]*domain.Frame, error) {
		return nil, fmt.Errorf("boom")
	})
	require.NoError(t, err)
	updateOnce(t, f, 1)

	_, err = f.Resolve(feature.NewResolveContext(1, testRNG()), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"broken"`)
	assert.Contains(t, err.Error(), "boom")
}

func TestNilFrameFromTransform(t *testing.T) {
	f, err := feature.New("bad", func(tc *feature.TransformContext) ([]*domain.Frame, error) {
		return []*domain.Frame{nil}, nil
	})
	require.NoError(t, err)
	updateOnce(t, f, 1)

	_, err = f.Resolve(feature.NewResolveContext(1, testRNG()), nil)
	var shapeErr *domain.ShapeMismatchError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "bad", shapeErr.Feature)
}

func TestUpdateVisitsSharedNodeOnce(t *testing.T) {
	samples := 0
	shared := emitter(t, "shared", feature.Sampler(func(_ *rand.Rand) any {
		samples++
		return 1.0
	}))

	graph := feature.Sequence(shared, shared)
	updateOnce(t, graph, 1)
	assert.Equal(t, 1, samples, "a node reachable twice must refresh once per cycle")
}
