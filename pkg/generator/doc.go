/*
Package generator turns a feature graph into a stream of labelled samples
for model training.

A Generator pairs a feature with a Labeler and repeatedly performs
update → resolve → label, yielding Samples. Continuous runs the same loop in
a background goroutine into a bounded channel, optionally writing batches
through to a ports.DatasetStore so other processes can consume them.
*/
package generator
