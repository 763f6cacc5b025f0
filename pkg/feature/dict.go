package feature

import (
	"fmt"
	"math/rand"

	"github.com/aretw0/lumen/pkg/domain"
)

// Dict is an insertion-ordered mapping of property names to Properties,
// owned by one feature. It resolves sibling dependencies into a refresh
// order and guarantees each property samples exactly once per cycle.
type Dict struct {
	owner     string
	names     []string
	props     map[string]*Property
	refreshed bool
}

// NewDict creates an empty property dict for the named owner.
// The owner name is used only for error context.
func NewDict(owner string) *Dict {
	return &Dict{
		owner: owner,
		props: make(map[string]*Property),
	}
}

// Add creates a property from a rule and registers it under name.
// Re-adding a name replaces the rule but keeps the insertion position.
func (d *Dict) Add(name string, rule Rule) error {
	p, err := NewProperty(rule)
	if err != nil {
		return fmt.Errorf("property %q: %w", name, err)
	}
	d.Attach(name, p)
	return nil
}

// Attach registers an existing property instance under name. Attaching a
// property that is also owned by another dict couples the two features.
func (d *Dict) Attach(name string, p *Property) {
	if _, ok := d.props[name]; !ok {
		d.names = append(d.names, name)
	}
	d.props[name] = p
}

// Get returns the property registered under name.
func (d *Dict) Get(name string) (*Property, bool) {
	p, ok := d.props[name]
	return p, ok
}

// Names returns the property names in insertion order.
func (d *Dict) Names() []string {
	return append([]string(nil), d.names...)
}

// Len returns the number of properties.
func (d *Dict) Len() int { return len(d.names) }

// refreshOrder computes an evaluation order consistent with the declared
// sibling dependencies: a topological sort that falls back to insertion
// order among independent properties.
func (d *Dict) refreshOrder() ([]string, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(d.names))
	order := make([]string, 0, len(d.names))

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case done:
			return nil
		case visiting:
			return &domain.DependencyCycleError{Feature: d.owner, Properties: d.names}
		}
		state[name] = visiting
		for _, dep := range d.props[name].Rule().Dependencies() {
			if _, ok := d.props[dep]; !ok {
				return &domain.MissingDependencyError{Feature: d.owner, Property: name, Dependency: dep}
			}
			if err := visit(dep); err != nil {
				return err
			}
		}
		state[name] = done
		order = append(order, name)
		return nil
	}

	for _, name := range d.names {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// Refresh samples every property exactly once for the given cycle, in
// dependency-respecting order. Dependent rules see sibling values from the
// same cycle, never stale ones.
func (d *Dict) Refresh(cycle uint64, rng *rand.Rand) error {
	order, err := d.refreshOrder()
	if err != nil {
		return err
	}
	current := make(Values, len(order))
	for _, name := range order {
		v, err := d.props[name].Sample(cycle, rng, current)
		if err != nil {
			return fmt.Errorf("feature %q: sampling property %q: %w", d.owner, name, err)
		}
		current[name] = v
	}
	d.refreshed = true
	return nil
}

// EnsureRefreshed performs a lazy first refresh so that resolving before any
// update uses initial values rather than failing.
func (d *Dict) EnsureRefreshed(rng *rand.Rand) error {
	if d.refreshed {
		return nil
	}
	return d.Refresh(0, rng)
}

// Values snapshots the current value of every property, in insertion order
// of evaluation. All properties must have been sampled.
func (d *Dict) Values() (Values, error) {
	out := make(Values, len(d.names))
	for _, name := range d.names {
		v, err := d.props[name].Value()
		if err != nil {
			return nil, fmt.Errorf("feature %q: property %q: %w", d.owner, name, err)
		}
		out[name] = v
	}
	return out, nil
}

// Snapshot builds the provenance entry for the owning feature from the given
// resolved values (which may include per-call overrides).
func (d *Dict) Snapshot(values Values) domain.Snapshot {
	entry := make(map[string]any, len(d.names))
	for _, name := range d.names {
		entry[name] = values[name]
	}
	return domain.Snapshot{Feature: d.owner, Values: entry}
}
