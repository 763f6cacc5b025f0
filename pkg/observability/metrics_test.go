package observability_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/aretw0/lumen/pkg/domain"
	"github.com/aretw0/lumen/pkg/observability"
)

func TestMetricsHooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnUpdate(ctx, &domain.UpdateEvent{Cycle: 1})
	hooks.OnUpdate(ctx, &domain.UpdateEvent{Cycle: 2})

	hooks.OnFeatureResolve(ctx, &domain.ResolveEvent{
		Feature: "point", Frames: 1, Duration: 5 * time.Millisecond,
	})
	hooks.OnFeatureResolve(ctx, &domain.ResolveEvent{
		Feature: "point", IsError: true,
	})

	hooks.OnSample(ctx, &domain.SampleEvent{SampleID: "s1", Frames: 3})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.UpdateCycles))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ResolveTotal.WithLabelValues("point", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ResolveTotal.WithLabelValues("point", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SamplesTotal))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.FramesGenerated))
}
