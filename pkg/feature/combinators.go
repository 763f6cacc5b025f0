package feature

import (
	"fmt"

	"github.com/aretw0/lumen/pkg/domain"
)

// Sequence chains features: the output of each child becomes the input of
// the next, depth-first and left-to-right. Sequencing is associative:
// Sequence(Sequence(a, b), c) and Sequence(a, Sequence(b, c)) resolve to
// identical output and identical provenance order.
func Sequence(children ...Feature) Feature {
	return &sequenceNode{
		dict:     NewDict("sequence"),
		children: children,
	}
}

type sequenceNode struct {
	dict     *Dict
	children []Feature
}

func (s *sequenceNode) Name() string        { return "sequence" }
func (s *sequenceNode) Properties() *Dict   { return s.dict }
func (s *sequenceNode) Children() []Feature { return s.children }

func (s *sequenceNode) Update(uc *UpdateContext) error {
	if !uc.Visit(s) {
		return nil
	}
	for _, child := range s.children {
		if err := child.Update(uc); err != nil {
			return err
		}
	}
	return nil
}

func (s *sequenceNode) Resolve(rc *ResolveContext, input []*domain.Frame) ([]*domain.Frame, error) {
	working := input
	for _, child := range s.children {
		var err error
		working, err = child.Resolve(rc, working)
		if err != nil {
			return nil, err
		}
	}
	return working, nil
}

// Maybe wraps a child behind a probabilistic skip. The probability value is
// a property sampled at update time; the inclusion coin flip is drawn from
// the resolve RNG once per Resolve call, independent of the child's
// distributed semantics. With p=1 the child always resolves, with p=0 the
// input passes through unchanged and no provenance is added.
func Maybe(child Feature, probability Rule) (Feature, error) {
	if child == nil {
		return nil, fmt.Errorf("maybe: child must not be nil")
	}
	name := "maybe(" + child.Name() + ")"
	dict := NewDict(name)
	if err := dict.Add("probability", probability); err != nil {
		return nil, fmt.Errorf("maybe: %w", err)
	}
	return &maybeNode{name: name, dict: dict, child: child}, nil
}

type maybeNode struct {
	name  string
	dict  *Dict
	child Feature
}

func (m *maybeNode) Name() string        { return m.name }
func (m *maybeNode) Properties() *Dict   { return m.dict }
func (m *maybeNode) Children() []Feature { return []Feature{m.child} }

func (m *maybeNode) Update(uc *UpdateContext) error {
	if !uc.Visit(m) {
		return nil
	}
	if err := m.dict.Refresh(uc.Cycle, uc.RNG); err != nil {
		return err
	}
	return m.child.Update(uc)
}

func (m *maybeNode) Resolve(rc *ResolveContext, input []*domain.Frame) ([]*domain.Frame, error) {
	if err := m.dict.EnsureRefreshed(rc.RNG); err != nil {
		return nil, err
	}
	values, err := m.dict.Values()
	if err != nil {
		return nil, err
	}
	values = rc.overlay(m.dict, values)

	p, ok := AsFloat(values["probability"])
	if !ok {
		return nil, fmt.Errorf("feature %q: probability must be numeric, got %T", m.name, values["probability"])
	}
	// rand.Float64 is in [0, 1), so p >= 1 always delegates and p <= 0
	// never does.
	if rc.RNG.Float64() >= p {
		return input, nil
	}
	return m.child.Resolve(rc, input)
}

// Repeat duplicates a sub-graph a rule-determined number of times. The count
// is sampled at update time; exactly that many independent copies are then
// instantiated through the factory closure, each with its own fresh
// properties. The count stays frozen for the duration of that cycle's
// resolve.
//
// Copies are independent unless the factory deliberately closes over a
// shared *Property, which couples their sampled values.
func Repeat(factory func() Feature, count Rule) (Feature, error) {
	if factory == nil {
		return nil, fmt.Errorf("repeat: factory must not be nil")
	}
	dict := NewDict("repeat")
	if err := dict.Add("count", count); err != nil {
		return nil, fmt.Errorf("repeat: %w", err)
	}
	return &repeatNode{dict: dict, factory: factory}, nil
}

type repeatNode struct {
	dict    *Dict
	factory func() Feature
	copies  []Feature
	built   bool
}

func (r *repeatNode) Name() string        { return "repeat" }
func (r *repeatNode) Properties() *Dict   { return r.dict }
func (r *repeatNode) Children() []Feature { return r.copies }

// instantiate freezes the sampled count into concrete copies.
func (r *repeatNode) instantiate(uc *UpdateContext) error {
	values, err := r.dict.Values()
	if err != nil {
		return err
	}
	n, ok := AsInt(values["count"])
	if !ok || n < 0 {
		return &domain.InvalidCountError{Feature: "repeat", Value: values["count"]}
	}
	r.copies = make([]Feature, n)
	for i := range r.copies {
		r.copies[i] = r.factory()
		if err := r.copies[i].Update(uc); err != nil {
			return err
		}
	}
	r.built = true
	return nil
}

func (r *repeatNode) Update(uc *UpdateContext) error {
	if !uc.Visit(r) {
		return nil
	}
	if err := r.dict.Refresh(uc.Cycle, uc.RNG); err != nil {
		return err
	}
	return r.instantiate(uc)
}

func (r *repeatNode) Resolve(rc *ResolveContext, input []*domain.Frame) ([]*domain.Frame, error) {
	if !r.built {
		// Resolve before any update: sample the count lazily and build the
		// copies from initial values.
		if err := r.dict.EnsureRefreshed(rc.RNG); err != nil {
			return nil, err
		}
		if err := r.instantiate(NewUpdateContext(0, rc.RNG)); err != nil {
			return nil, err
		}
	}
	working := input
	for _, c := range r.copies {
		var err error
		working, err = c.Resolve(rc, working)
		if err != nil {
			return nil, err
		}
	}
	return working, nil
}

// Wrap applies outer to the output of inner, mirroring the call syntax of an
// imaging device wrapping a sample: inner resolves first, then outer
// transforms its result.
func Wrap(outer, inner Feature) Feature {
	return &wrapNode{
		name:  outer.Name() + "(" + inner.Name() + ")",
		dict:  NewDict("wrap"),
		outer: outer,
		inner: inner,
	}
}

type wrapNode struct {
	name  string
	dict  *Dict
	outer Feature
	inner Feature
}

func (w *wrapNode) Name() string        { return w.name }
func (w *wrapNode) Properties() *Dict   { return w.dict }
func (w *wrapNode) Children() []Feature { return []Feature{w.inner, w.outer} }

func (w *wrapNode) Update(uc *UpdateContext) error {
	if !uc.Visit(w) {
		return nil
	}
	if err := w.inner.Update(uc); err != nil {
		return err
	}
	return w.outer.Update(uc)
}

func (w *wrapNode) Resolve(rc *ResolveContext, input []*domain.Frame) ([]*domain.Frame, error) {
	resolved, err := w.inner.Resolve(rc, input)
	if err != nil {
		return nil, err
	}
	return w.outer.Resolve(rc, resolved)
}
