package lumen

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/aretw0/lumen/internal/logging"
	"github.com/aretw0/lumen/pkg/domain"
	"github.com/aretw0/lumen/pkg/feature"
	"github.com/aretw0/lumen/pkg/generator"
	"github.com/aretw0/lumen/pkg/pipeline"
	"github.com/aretw0/lumen/pkg/registry"
)

// Engine is the high-level entry point for the Lumen library.
// It wraps a compiled feature graph and provides a simplified API for
// driving update/resolve cycles and generating labelled samples.
type Engine struct {
	mu       sync.Mutex
	graph    feature.Feature
	spec     *pipeline.Spec
	registry *registry.Registry
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	labeler  generator.Labeler
	gen      *generator.Generator
	rng      *rand.Rand
	seed     int64
	seedSet  bool
	cycle    uint64
	Name     string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithSeed overrides the pipeline's random seed.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
		e.seedSet = true
	}
}

// WithRegistry injects a custom feature registry, e.g. with user feature
// types registered.
func WithRegistry(r *registry.Registry) Option {
	return func(e *Engine) {
		e.registry = r
	}
}

// WithFeature injects a pre-built feature graph, bypassing pipeline loading.
func WithFeature(f feature.Feature) Option {
	return func(e *Engine) {
		e.graph = f
	}
}

// WithLabeler sets the label function used by Generate and Generator.
func WithLabeler(labeler generator.Labeler) Option {
	return func(e *Engine) {
		e.labeler = labeler
	}
}

// New initializes a new Lumen Engine.
// By default, it loads and compiles the pipeline definition at the given
// path. If the WithFeature option is provided, path can be empty and no file
// is read.
func New(path string, opts ...Option) (*Engine, error) {
	eng := &Engine{}

	// Apply options first to check if a graph is provided
	for _, opt := range opts {
		opt(eng)
	}

	if eng.registry == nil {
		eng.registry = registry.New()
	}

	if eng.graph == nil {
		if path == "" {
			return nil, fmt.Errorf("pipeline path is required when no feature graph is provided")
		}
		spec, err := pipeline.Load(path)
		if err != nil {
			return nil, err
		}
		graph, err := eng.registry.Build(spec.Root)
		if err != nil {
			return nil, fmt.Errorf("failed to compile pipeline %q: %w", spec.Name, err)
		}
		eng.spec = spec
		eng.graph = graph
		eng.Name = spec.Name
		if !eng.seedSet && spec.Seed != 0 {
			eng.seed = spec.Seed
			eng.seedSet = true
		}
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("pipeline", eng.Name)
	}

	if !eng.seedSet {
		eng.seed = time.Now().UnixNano()
	}
	eng.rng = rand.New(rand.NewSource(eng.seed))

	return eng, nil
}

// Update runs one update cycle over the whole graph, resampling every
// property exactly once.
func (e *Engine) Update(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.update(ctx)
}

func (e *Engine) update(ctx context.Context) error {
	e.cycle++
	uc := feature.NewUpdateContext(e.cycle, e.rng)
	if err := e.graph.Update(uc); err != nil {
		return fmt.Errorf("update cycle %d: %w", e.cycle, err)
	}
	if e.hooks.OnUpdate != nil {
		e.hooks.OnUpdate(ctx, &domain.UpdateEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventUpdate},
			Cycle:     e.cycle,
		})
	}
	return nil
}

// ResolveOption configures a single resolve pass.
type ResolveOption func(*resolveConfig)

type resolveConfig struct {
	input     []*domain.Frame
	overrides feature.Values
}

// WithInput seeds the resolve pass with an initial frame list.
func WithInput(frames ...*domain.Frame) ResolveOption {
	return func(c *resolveConfig) {
		c.input = frames
	}
}

// WithOverride shadows a property value for this resolve call only.
// Overrides never persist into subsequent update cycles.
func WithOverride(name string, value any) ResolveOption {
	return func(c *resolveConfig) {
		if c.overrides == nil {
			c.overrides = make(feature.Values)
		}
		c.overrides[name] = value
	}
}

// Resolve runs one resolve pass over the graph with the current property
// values and returns the produced frames with attached provenance.
func (e *Engine) Resolve(ctx context.Context, opts ...ResolveOption) ([]*domain.Frame, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var cfg resolveConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	rc := feature.NewResolveContext(e.cycle, e.rng)
	rc.Ctx = ctx
	rc.Logger = e.logger
	rc.Hooks = e.hooks
	rc.Overrides = cfg.overrides

	frames, err := e.graph.Resolve(rc, cfg.input)
	if err != nil {
		return nil, fmt.Errorf("resolve cycle %d: %w", e.cycle, err)
	}
	return frames, nil
}

// Generate runs count full update+resolve cycles and returns the labelled
// samples. Repeated calls continue the same stream.
func (e *Engine) Generate(ctx context.Context, count int) ([]domain.Sample, error) {
	e.mu.Lock()
	if e.gen == nil {
		e.gen = e.Generator()
	}
	gen := e.gen
	e.mu.Unlock()
	return gen.Batch(ctx, count)
}

// Generator returns a sample generator over the engine's graph. The
// generator advances its own cycle counter, seeded from the engine's seed,
// so concurrent generators yield independent but reproducible streams.
func (e *Engine) Generator(opts ...generator.Option) *generator.Generator {
	base := []generator.Option{
		generator.WithSeed(e.seed),
		generator.WithLogger(e.logger),
		generator.WithLifecycleHooks(e.hooks),
	}
	return generator.New(e.graph, e.labeler, append(base, opts...)...)
}

// Inspect returns the structural description of the feature graph for
// visualization or introspection tools.
func (e *Engine) Inspect() *feature.Info {
	return feature.Inspect(e.graph)
}

// Spec returns the loaded pipeline definition, or nil when the engine was
// built from a pre-built graph.
func (e *Engine) Spec() *pipeline.Spec {
	return e.spec
}

// Seed returns the effective random seed.
func (e *Engine) Seed() int64 {
	return e.seed
}
