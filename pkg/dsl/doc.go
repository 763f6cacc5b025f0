/*
Package dsl provides a fluent Go builder for Lumen pipeline specs.

It allows developers to define feature graphs using type-safe builders
instead of external YAML files. This is particularly useful for dynamic
pipeline generation, unit testing, and leveraging IDE autocompletion.

Example usage:

	spec := dsl.NewPipeline("spheres").
		Seed(42).
		Root(dsl.Repeat(
			dsl.Node("sphere").
				Prop("radius", dsl.Uniform(2, 5)).
				Prop("position", dsl.UniformVec([]float64{0, 0}, []float64{64, 64})),
			dsl.UniformInt(1, 4),
		)).
		Build()

	// The resulting spec compiles through a registry:
	graph, err := registry.New().Build(spec.Root)
*/
package dsl
