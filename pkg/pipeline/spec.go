package pipeline

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/lumen/pkg/domain"
)

// RuleSpec is the declarative form of one property rule. Exactly one of the
// fields must be set.
type RuleSpec struct {
	Constant   any          `mapstructure:"constant" yaml:"constant,omitempty"`
	Uniform    *RangeSpec   `mapstructure:"uniform" yaml:"uniform,omitempty"`
	UniformInt *IntRange    `mapstructure:"uniform_int" yaml:"uniform_int,omitempty"`
	Normal     *NormalSpec  `mapstructure:"normal" yaml:"normal,omitempty"`
	Choice     []any        `mapstructure:"choice" yaml:"choice,omitempty"`
	Depends    *DependsSpec `mapstructure:"depends" yaml:"depends,omitempty"`
}

// RangeSpec bounds a uniform draw. Min and Max are scalars or equal-length
// vectors; vector bounds produce per-axis vector samples.
type RangeSpec struct {
	Min any `mapstructure:"min" yaml:"min"`
	Max any `mapstructure:"max" yaml:"max"`
}

// IntRange bounds an inclusive uniform integer draw.
type IntRange struct {
	Min int `mapstructure:"min" yaml:"min"`
	Max int `mapstructure:"max" yaml:"max"`
}

// NormalSpec parameterizes a Gaussian draw.
type NormalSpec struct {
	Mean   float64 `mapstructure:"mean" yaml:"mean"`
	StdDev float64 `mapstructure:"stddev" yaml:"stddev"`
}

// DependsSpec derives a value from named sibling properties through a
// registered expression: currently "sum", "product", "scale" and "copy".
type DependsSpec struct {
	On     []string `mapstructure:"on" yaml:"on"`
	Expr   string   `mapstructure:"expr" yaml:"expr"`
	Factor float64  `mapstructure:"factor" yaml:"factor,omitempty"`
}

// NodeSpec describes one node of the feature graph.
type NodeSpec struct {
	Type string `mapstructure:"type" yaml:"type"`

	// Properties carries the rule spec for each named property.
	Properties map[string]RuleSpec `mapstructure:"properties" yaml:"properties,omitempty"`

	// Children is set for sequence nodes.
	Children []NodeSpec `mapstructure:"children" yaml:"children,omitempty"`

	// Feature is the wrapped child for repeat and maybe nodes.
	Feature *NodeSpec `mapstructure:"feature" yaml:"feature,omitempty"`

	// Outer and Inner are set for wrap nodes.
	Outer *NodeSpec `mapstructure:"outer" yaml:"outer,omitempty"`
	Inner *NodeSpec `mapstructure:"inner" yaml:"inner,omitempty"`

	// Count is the fan-out rule for repeat nodes.
	Count *RuleSpec `mapstructure:"count" yaml:"count,omitempty"`

	// Probability is the inclusion rule for maybe nodes.
	Probability *RuleSpec `mapstructure:"probability" yaml:"probability,omitempty"`
}

// Spec is a full pipeline definition.
type Spec struct {
	Name        string   `mapstructure:"name" yaml:"name"`
	Description string   `mapstructure:"description" yaml:"description,omitempty"`
	Seed        int64    `mapstructure:"seed" yaml:"seed,omitempty"`
	Root        NodeSpec `mapstructure:"root" yaml:"root"`
}

// Load reads and decodes a pipeline definition from a YAML file.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrPipelineNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a pipeline definition from YAML bytes. The document is
// unmarshalled generically first and then mapped onto the typed spec, so
// unknown keys surface as decode errors instead of being silently dropped.
func Parse(data []byte) (*Spec, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse pipeline yaml: %w", err)
	}

	var spec Spec
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &spec,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid pipeline definition: %w", err)
	}

	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Validate performs structural checks that do not require the registry.
func (s *Spec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("pipeline name is required")
	}
	return s.Root.validate("root")
}

func (n *NodeSpec) validate(path string) error {
	if n.Type == "" {
		return fmt.Errorf("%s: node type is required", path)
	}
	switch n.Type {
	case "sequence":
		if len(n.Children) == 0 {
			return fmt.Errorf("%s: sequence requires children", path)
		}
	case "repeat":
		if n.Feature == nil {
			return fmt.Errorf("%s: repeat requires a feature", path)
		}
		if n.Count == nil {
			return fmt.Errorf("%s: repeat requires a count rule", path)
		}
	case "maybe":
		if n.Feature == nil {
			return fmt.Errorf("%s: maybe requires a feature", path)
		}
		if n.Probability == nil {
			return fmt.Errorf("%s: maybe requires a probability rule", path)
		}
	case "wrap":
		if n.Outer == nil || n.Inner == nil {
			return fmt.Errorf("%s: wrap requires outer and inner", path)
		}
	}
	for i := range n.Children {
		if err := n.Children[i].validate(fmt.Sprintf("%s.children[%d]", path, i)); err != nil {
			return err
		}
	}
	for _, sub := range []struct {
		name string
		node *NodeSpec
	}{{"feature", n.Feature}, {"outer", n.Outer}, {"inner", n.Inner}} {
		if sub.node != nil {
			if err := sub.node.validate(path + "." + sub.name); err != nil {
				return err
			}
		}
	}
	return nil
}
