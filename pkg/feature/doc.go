/*
Package feature implements the composable, lazily-evaluated feature graph at
the core of Lumen.

A graph is built from Feature nodes. Leaf nodes carry a Transform that
produces or edits frames; combinator nodes (Sequence, Maybe, Repeat, Wrap)
compose other features and are themselves features, so the graph is closed
under composition. Construction has no evaluation side effects.

Every node owns a Dict of named Properties. A Property holds a value-producing
Rule (constant, random sampler, or a function of named sibling properties) and
caches its current value. The two lifecycle calls are:

  - Update: walks the tree once, resampling every property exactly once per
    cycle in dependency-respecting order.
  - Resolve: walks the tree again, applying each node's transform to an
    accumulating list of frames and stamping provenance snapshots.

Evaluation is single-threaded, depth-first and left-to-right; given
deterministic rules and a seeded RNG the output and provenance order are
fully reproducible. Randomness is never ambient: an explicit *rand.Rand is
threaded top-down through the Update and Resolve contexts.

Example:

	particle, _ := feature.New("particle",
		pointTransform,
		feature.WithMergeStrategy(feature.MergeAppend),
		feature.WithProperty("position", feature.Sampler(randomPosition)),
	)

	graph := feature.Repeat(func() feature.Feature {
		f, _ := feature.New("particle", pointTransform,
			feature.WithMergeStrategy(feature.MergeAppend),
			feature.WithProperty("position", feature.Sampler(randomPosition)),
		)
		return f
	}, feature.Constant(3))

	rng := rand.New(rand.NewSource(42))
	_ = graph.Update(feature.NewUpdateContext(1, rng))
	frames, _ := graph.Resolve(feature.NewResolveContext(1, rng), nil)
*/
package feature
