package feature

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/aretw0/lumen/pkg/domain"
)

// MergeStrategy defines how a node's transform output is combined with the
// working frame list.
type MergeStrategy int

const (
	// MergeOverride replaces the working list with the transform output.
	MergeOverride MergeStrategy = iota
	// MergeAppend concatenates the transform output onto the working list.
	// Used by content-generating nodes (e.g. scatterers) which add new
	// frames rather than editing existing ones.
	MergeAppend
)

// String returns the strategy name as used in pipeline files.
func (m MergeStrategy) String() string {
	if m == MergeAppend {
		return "append"
	}
	return "override"
}

// Feature is the atomic computation unit of the graph. Composite nodes are
// features too, so the graph is closed under composition.
type Feature interface {
	// Name identifies the node in provenance, logs and errors.
	Name() string

	// Update refreshes the node's properties and recurses into children,
	// exactly once per cycle even if the node is shared.
	Update(*UpdateContext) error

	// Resolve applies the node's transformation to the working frame list.
	Resolve(*ResolveContext, []*domain.Frame) ([]*domain.Frame, error)

	// Properties returns the node's property dict.
	Properties() *Dict

	// Children returns composed child features, in resolution order.
	Children() []Feature
}

// TransformContext is the structured input handed to a node's transform:
// the frames it operates on, the resolved property values (including any
// per-call overrides), and the resolve-time random source.
type TransformContext struct {
	Frames []*domain.Frame
	Props  Values
	RNG    *rand.Rand
}

// Transform computes a node's contribution. Returning a nil slice is the
// explicit no-op: the input passes through unchanged and no provenance is
// recorded. A non-nil (possibly empty) slice is merged per the node's
// strategy.
type Transform func(*TransformContext) ([]*domain.Frame, error)

// Base is the standard leaf node: a Dict, a Transform, and the two
// configuration flags controlling how the transform is applied and merged.
type Base struct {
	name        string
	dict        *Dict
	transform   Transform
	distributed bool
	merge       MergeStrategy
}

// Option configures a Base node at construction time.
type Option func(*Base) error

// WithProperty adds a property with the given rule.
// Each named rule becomes one resampling cell of the node.
func WithProperty(name string, rule Rule) Option {
	return func(b *Base) error {
		return b.dict.Add(name, rule)
	}
}

// WithSharedProperty attaches an existing property instance, coupling this
// node's sampled value to every other owner of the same instance.
func WithSharedProperty(name string, p *Property) Option {
	return func(b *Base) error {
		if p == nil {
			return fmt.Errorf("shared property %q must not be nil", name)
		}
		b.dict.Attach(name, p)
		return nil
	}
}

// WithDistributed makes the transform apply to each frame of the input list
// independently instead of the whole list at once.
func WithDistributed() Option {
	return func(b *Base) error {
		b.distributed = true
		return nil
	}
}

// WithMergeStrategy sets how transform output merges with the input list.
func WithMergeStrategy(m MergeStrategy) Option {
	return func(b *Base) error {
		b.merge = m
		return nil
	}
}

// New constructs a leaf feature node. Construction is pure graph building;
// nothing is evaluated until Update or Resolve.
func New(name string, transform Transform, opts ...Option) (*Base, error) {
	if name == "" {
		return nil, fmt.Errorf("feature name must not be empty")
	}
	b := &Base{
		name: name,
		dict: NewDict(name),
	}
	b.transform = transform
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, fmt.Errorf("feature %q: %w", name, err)
		}
	}
	return b, nil
}

// Name implements Feature.
func (b *Base) Name() string { return b.name }

// Properties implements Feature.
func (b *Base) Properties() *Dict { return b.dict }

// Children implements Feature. Leaf nodes have none.
func (b *Base) Children() []Feature { return nil }

// Distributed reports whether the transform applies per frame.
func (b *Base) Distributed() bool { return b.distributed }

// Merge returns the node's merge strategy.
func (b *Base) Merge() MergeStrategy { return b.merge }

// Update refreshes the node's properties once for this cycle.
func (b *Base) Update(uc *UpdateContext) error {
	if !uc.Visit(b) {
		return nil
	}
	return b.dict.Refresh(uc.Cycle, uc.RNG)
}

// Resolve applies the transform to the working list per the node's
// configuration and stamps provenance onto the frames it produced or edited.
func (b *Base) Resolve(rc *ResolveContext, input []*domain.Frame) ([]*domain.Frame, error) {
	started := time.Now()
	out, err := b.resolve(rc, input)
	if err != nil {
		rc.logger().Error("feature resolve failed", "feature", b.name, "err", err)
	}
	emitResolve(rc, b.name, len(out), time.Since(started), err)
	return out, err
}

func (b *Base) resolve(rc *ResolveContext, input []*domain.Frame) ([]*domain.Frame, error) {
	if err := b.dict.EnsureRefreshed(rc.RNG); err != nil {
		return nil, err
	}
	values, err := b.dict.Values()
	if err != nil {
		return nil, err
	}
	values = rc.overlay(b.dict, values)

	if b.transform == nil {
		return input, nil
	}

	produced, noop, err := b.apply(rc, input, values)
	if err != nil {
		return nil, err
	}
	if noop {
		return input, nil
	}

	snapshot := b.dict.Snapshot(values)
	for _, f := range produced {
		if f == nil {
			return nil, &domain.ShapeMismatchError{
				Feature: b.name,
				Reason:  fmt.Sprintf("transform returned a nil frame under %s merge", b.merge),
			}
		}
		f.Stamp(snapshot.Clone())
	}

	switch b.merge {
	case MergeAppend:
		return append(input, produced...), nil
	default:
		return produced, nil
	}
}

// apply runs the transform, honoring the distributed flag. The noop result
// is true when the transform declined to act on every invocation.
func (b *Base) apply(rc *ResolveContext, input []*domain.Frame, values Values) ([]*domain.Frame, bool, error) {
	if !b.distributed {
		out, err := b.transform(&TransformContext{Frames: input, Props: values, RNG: rc.RNG})
		if err != nil {
			return nil, false, fmt.Errorf("feature %q: %w", b.name, err)
		}
		return out, out == nil, nil
	}

	// Per-frame application, outputs reassembled in input order. A nil
	// result keeps the original frame.
	acted := false
	var out []*domain.Frame
	for _, f := range input {
		res, err := b.transform(&TransformContext{Frames: []*domain.Frame{f}, Props: values, RNG: rc.RNG})
		if err != nil {
			return nil, false, fmt.Errorf("feature %q: %w", b.name, err)
		}
		if res == nil {
			out = append(out, f)
			continue
		}
		acted = true
		out = append(out, res...)
	}
	return out, !acted, nil
}

// emitResolve fires the per-node resolve hook if registered.
func emitResolve(rc *ResolveContext, name string, frames int, d time.Duration, err error) {
	if rc.Hooks.OnFeatureResolve == nil {
		return
	}
	rc.Hooks.OnFeatureResolve(rc.Ctx, &domain.ResolveEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventFeatureResolve},
		Feature:   name,
		Frames:    frames,
		Duration:  d,
		IsError:   err != nil,
	})
}
