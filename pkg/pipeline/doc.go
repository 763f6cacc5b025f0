/*
Package pipeline loads declarative pipeline definitions and compiles their
rule specifications into feature property rules.

A pipeline file is YAML: a name, an optional markdown description, a seed,
and a tree of node specs rooted at "root". Each node spec names a feature
type from the registry and carries its property rules:

	name: spheres
	seed: 42
	root:
	  type: repeat
	  count: { uniform_int: { min: 1, max: 4 } }
	  feature:
	    type: sphere
	    properties:
	      radius: { uniform: { min: 2, max: 5 } }
	      position: { uniform: { min: [0, 0], max: [64, 64] } }

Rule specs support constant, uniform, uniform_int, normal, choice and
depends forms.
*/
package pipeline
