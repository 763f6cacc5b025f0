package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventUpdate         EventType = "update"
	EventFeatureResolve EventType = "feature_resolve"
	EventSample         EventType = "sample"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// UpdateEvent is emitted once per update cycle over the whole graph.
type UpdateEvent struct {
	EventBase
	Cycle uint64 `json:"cycle"`
}

// ResolveEvent is emitted when a feature node finishes resolving.
type ResolveEvent struct {
	EventBase
	Feature  string        `json:"feature"`
	Frames   int           `json:"frames"`
	Duration time.Duration `json:"duration"`
	IsError  bool          `json:"is_error,omitempty"`
}

// SampleEvent is emitted when a generator yields a labelled sample.
type SampleEvent struct {
	EventBase
	SampleID string `json:"sample_id"`
	Frames   int    `json:"frames"`
}

// LifecycleHooks defines callbacks for engine observability.
// Nil hooks are skipped; hooks must not mutate the graph.
type LifecycleHooks struct {
	OnUpdate         func(context.Context, *UpdateEvent)
	OnFeatureResolve func(context.Context, *ResolveEvent)
	OnSample         func(context.Context, *SampleEvent)
}
