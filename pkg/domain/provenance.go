package domain

// Snapshot records the resolved property values of one feature at the moment
// it contributed to a frame. Feature identifies the node; Values maps property
// names to the values the transform actually saw.
type Snapshot struct {
	Feature string         `json:"feature"`
	Values  map[string]any `json:"values"`
}

// Clone returns a copy of the snapshot with its own value map.
// Values themselves are shared; rules are expected to produce immutable
// scalars, slices created per sample, or values the caller will not mutate.
func (s Snapshot) Clone() Snapshot {
	values := make(map[string]any, len(s.Values))
	for k, v := range s.Values {
		values[k] = v
	}
	return Snapshot{Feature: s.Feature, Values: values}
}

// Provenance is the ordered list of snapshots attached to a frame, in the
// order the contributing features were visited.
type Provenance []Snapshot

// Clone deep-copies the provenance list.
func (p Provenance) Clone() Provenance {
	out := make(Provenance, len(p))
	for i, s := range p {
		out[i] = s.Clone()
	}
	return out
}

// Filter returns the snapshots that carry the given property key.
// Used by label callbacks, e.g. collecting every "position" entry.
func (p Provenance) Filter(key string) []Snapshot {
	var out []Snapshot
	for _, s := range p {
		if _, ok := s.Values[key]; ok {
			out = append(out, s)
		}
	}
	return out
}

// Collect returns the values of the given property key across all snapshots,
// in visitation order.
func (p Provenance) Collect(key string) []any {
	var out []any
	for _, s := range p {
		if v, ok := s.Values[key]; ok {
			out = append(out, v)
		}
	}
	return out
}
