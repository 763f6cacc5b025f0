package generator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/lumen/pkg/domain"
	"github.com/aretw0/lumen/pkg/feature"
)

// Labeler derives a training label from the resolved frames, typically by
// reading their provenance (e.g. collecting every "position" entry).
type Labeler func(frames []*domain.Frame) (any, error)

// PositionLabeler collects the "position" provenance values of every frame,
// the common ground-truth for particle tracking.
func PositionLabeler(frames []*domain.Frame) (any, error) {
	var positions []any
	for _, f := range frames {
		positions = append(positions, f.Provenance.Collect("position")...)
	}
	return positions, nil
}

// Generator drives full update → resolve → label cycles over a feature
// graph. Each call to Next is one cycle; state between cycles lives only in
// the graph's property caches.
type Generator struct {
	feature feature.Feature
	labeler Labeler
	rng     *rand.Rand
	cycle   uint64
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed seeds the generator's random source for reproducible streams.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(g *Generator) {
		g.hooks = hooks
	}
}

// New creates a generator over a feature graph. A nil labeler yields
// unlabelled samples.
func New(f feature.Feature, labeler Labeler, opts ...Option) *Generator {
	g := &Generator{
		feature: f,
		labeler: labeler,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Next runs one full cycle and returns the labelled sample.
func (g *Generator) Next(ctx context.Context) (*domain.Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.cycle++
	uc := feature.NewUpdateContext(g.cycle, g.rng)
	if err := g.feature.Update(uc); err != nil {
		return nil, fmt.Errorf("update cycle %d: %w", g.cycle, err)
	}
	if g.hooks.OnUpdate != nil {
		g.hooks.OnUpdate(ctx, &domain.UpdateEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventUpdate},
			Cycle:     g.cycle,
		})
	}

	rc := feature.NewResolveContext(g.cycle, g.rng)
	rc.Ctx = ctx
	rc.Logger = g.logger
	rc.Hooks = g.hooks

	frames, err := g.feature.Resolve(rc, nil)
	if err != nil {
		return nil, fmt.Errorf("resolve cycle %d: %w", g.cycle, err)
	}

	sample := &domain.Sample{
		ID:     uuid.NewString(),
		Frames: frames,
	}
	if g.labeler != nil {
		label, err := g.labeler(frames)
		if err != nil {
			return nil, fmt.Errorf("labelling cycle %d: %w", g.cycle, err)
		}
		sample.Label = label
	}

	if g.hooks.OnSample != nil {
		g.hooks.OnSample(ctx, &domain.SampleEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventSample},
			SampleID:  sample.ID,
			Frames:    len(frames),
		})
	}
	g.logger.Debug("sample generated", "sample", sample.ID, "cycle", g.cycle, "frames", len(frames))

	return sample, nil
}

// Batch runs n cycles and collects the samples.
func (g *Generator) Batch(ctx context.Context, n int) ([]domain.Sample, error) {
	if n < 0 {
		return nil, fmt.Errorf("batch size must be non-negative, got %d", n)
	}
	out := make([]domain.Sample, 0, n)
	for i := 0; i < n; i++ {
		sample, err := g.Next(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, *sample)
	}
	return out, nil
}

// Cycle returns the number of completed cycles.
func (g *Generator) Cycle() uint64 { return g.cycle }
