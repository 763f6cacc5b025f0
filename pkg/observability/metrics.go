// Package observability exposes engine activity as Prometheus metrics,
// bridged through domain.LifecycleHooks so the core stays free of metrics
// dependencies.
package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/lumen/pkg/domain"
)

// Metrics holds the Prometheus collectors for one engine.
type Metrics struct {
	UpdateCycles    prometheus.Counter
	ResolveTotal    *prometheus.CounterVec
	ResolveDuration *prometheus.HistogramVec
	SamplesTotal    prometheus.Counter
	FramesGenerated prometheus.Counter
}

// NewMetrics creates and registers the collectors.
// Pass prometheus.DefaultRegisterer for the global registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		UpdateCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lumen_update_cycles_total",
			Help: "Total number of update cycles",
		}),
		ResolveTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lumen_resolve_total",
			Help: "Total number of feature node resolutions",
		}, []string{"feature", "status"}),
		ResolveDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "lumen_resolve_duration_seconds",
			Help: "Duration of feature node resolutions",
		}, []string{"feature"}),
		SamplesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lumen_samples_total",
			Help: "Total number of labelled samples generated",
		}),
		FramesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lumen_frames_generated_total",
			Help: "Total number of frames carried by generated samples",
		}),
	}
	reg.MustRegister(m.UpdateCycles, m.ResolveTotal, m.ResolveDuration, m.SamplesTotal, m.FramesGenerated)
	return m
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnUpdate: func(context.Context, *domain.UpdateEvent) {
			m.UpdateCycles.Inc()
		},
		OnFeatureResolve: func(_ context.Context, e *domain.ResolveEvent) {
			status := "ok"
			if e.IsError {
				status = "error"
			}
			m.ResolveTotal.WithLabelValues(e.Feature, status).Inc()
			m.ResolveDuration.WithLabelValues(e.Feature).Observe(e.Duration.Seconds())
		},
		OnSample: func(_ context.Context, e *domain.SampleEvent) {
			m.SamplesTotal.Inc()
			m.FramesGenerated.Add(float64(e.Frames))
		},
	}
}
