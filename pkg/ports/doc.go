/*
Package ports defines the interfaces between the Lumen core and its
infrastructure adapters, following Hexagonal Architecture principles.

The core never depends on a concrete storage backend; generators and the CLI
talk to a DatasetStore, and adapters (memory, redis) implement it. The
package also ships a reusable contract test suite so every adapter proves
the same behavior.
*/
package ports
