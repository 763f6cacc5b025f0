package domain

import (
	"errors"
	"fmt"
)

// ErrNotSampled is returned when a property value is read before the first
// sample and no initial value could be produced.
var ErrNotSampled = errors.New("property not yet sampled")

// ErrDatasetNotFound is returned when a dataset ID cannot be found in a store.
var ErrDatasetNotFound = errors.New("dataset not found")

// ErrPipelineNotFound is returned when a pipeline definition file does not
// exist at the given path.
var ErrPipelineNotFound = errors.New("pipeline not found")

// MissingDependencyError indicates a property rule referenced a sibling name
// that does not exist in its owning feature.
type MissingDependencyError struct {
	Feature    string
	Property   string
	Dependency string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("feature %q: property %q depends on undefined sibling %q", e.Feature, e.Property, e.Dependency)
}

// DependencyCycleError indicates the sibling dependency graph of a feature's
// properties contains a cycle and no valid refresh order exists.
type DependencyCycleError struct {
	Feature    string
	Properties []string
}

func (e *DependencyCycleError) Error() string {
	return fmt.Sprintf("feature %q: dependency cycle among properties %v", e.Feature, e.Properties)
}

// ShapeMismatchError indicates a transform produced output that is
// structurally incompatible with the node's declared merge strategy.
type ShapeMismatchError struct {
	Feature string
	Reason  string
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("feature %q: %s", e.Feature, e.Reason)
}

// InvalidCountError indicates a repeat count rule resolved to something other
// than a non-negative integer.
type InvalidCountError struct {
	Feature string
	Value   any
}

func (e *InvalidCountError) Error() string {
	return fmt.Sprintf("feature %q: repeat count must be a non-negative integer, got %v (%T)", e.Feature, e.Value, e.Value)
}

// StaleCycleError indicates a resolve-time override attempted to mutate
// persisted property state.
type StaleCycleError struct {
	Feature  string
	Property string
}

func (e *StaleCycleError) Error() string {
	return fmt.Sprintf("feature %q: override for %q conflicts with an in-flight update cycle", e.Feature, e.Property)
}
