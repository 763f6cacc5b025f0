/*
Package lumen is a toolkit for generating synthetic microscopy-style images
and labelled training data from composable feature graphs.

The high-level Engine wraps a feature graph (built in Go through pkg/feature
and pkg/dsl, or loaded from a YAML pipeline file) and drives the
update/resolve lifecycle:

	engine, err := lumen.New("pipelines/spheres.yaml")
	if err != nil {
		log.Fatal(err)
	}

	samples, err := engine.Generate(context.Background(), 32)

Every sample carries its frames and a provenance list recording the property
values of each feature that contributed to it, which label functions read to
produce ground truth.

See pkg/feature for the graph engine itself, pkg/scatter for the built-in
content features, and pkg/generator for training-data streams.
*/
package lumen
