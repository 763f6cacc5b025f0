/*
Package domain contains the core domain models for the Lumen engine.

It defines the fundamental entities of the feature graph, such as Frames,
Provenance snapshots, and the error taxonomy shared by every layer.
This package is kept pure and free of external dependencies like I/O or
persistence, following Hexagonal Architecture principles.

# Key Entities

  - Frame: A flat float64 tensor with a shape and an attached provenance list.
  - Snapshot: The resolved property values of one feature at one resolve step.
  - Provenance: The ordered list of snapshots accumulated by a frame.
  - LifecycleHooks: Callbacks for engine observability.
*/
package domain
