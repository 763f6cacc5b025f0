package scatter

import (
	"fmt"
	"math"

	"github.com/aretw0/lumen/pkg/domain"
	"github.com/aretw0/lumen/pkg/feature"
)

// config collects the property rules common to all scatterers.
type config struct {
	position feature.Rule
	z        feature.Rule
	value    feature.Rule
	rotation feature.Rule
	extra    []feature.Option
}

func defaults() *config {
	return &config{
		position: feature.Constant([]float64{0, 0}),
		z:        feature.Constant(0.0),
		value:    feature.Constant(1.0),
		rotation: feature.Constant(0.0),
	}
}

// Option configures a scatterer's properties.
type Option func(*config)

// WithPosition sets the rule for the particle position (length 2 or 3).
func WithPosition(rule feature.Rule) Option {
	return func(c *config) { c.position = rule }
}

// WithZ sets the rule for the position normal to the camera plane,
// used when the position rule produces length-2 vectors.
func WithZ(rule feature.Rule) Option {
	return func(c *config) { c.z = rule }
}

// WithValue sets the rule for the characteristic value of the particle
// (e.g. intensity for fluorescence imaging).
func WithValue(rule feature.Rule) Option {
	return func(c *config) { c.value = rule }
}

// WithRotation sets the rule for the orientation, in radians. Ellipses read
// a single in-plane angle; ellipsoids accept up to three Euler angles.
func WithRotation(rule feature.Rule) Option {
	return func(c *config) { c.rotation = rule }
}

// WithSharedProperty couples a named property to an existing instance,
// typically to tie duplicated scatterers to one sampled value.
func WithSharedProperty(name string, p *feature.Property) Option {
	return func(c *config) {
		c.extra = append(c.extra, feature.WithSharedProperty(name, p))
	}
}

// build assembles a scatterer node: append merge, whole-list application.
func build(name string, transform feature.Transform, c *config, opts ...feature.Option) (*feature.Base, error) {
	base := []feature.Option{
		feature.WithMergeStrategy(feature.MergeAppend),
		feature.WithProperty("position", c.position),
		feature.WithProperty("z", c.z),
		feature.WithProperty("value", c.value),
	}
	base = append(base, opts...)
	base = append(base, c.extra...)
	return feature.New(name, transform, base...)
}

// Point generates a point particle, approximated by the size of one pixel.
func Point(opts ...Option) (*feature.Base, error) {
	c := defaults()
	for _, opt := range opts {
		opt(c)
	}
	transform := func(tc *feature.TransformContext) ([]*domain.Frame, error) {
		value, ok := feature.AsFloat(tc.Props["value"])
		if !ok {
			return nil, fmt.Errorf("value must be numeric, got %T", tc.Props["value"])
		}
		f := domain.NewFrame(1, 1, 1)
		f.Data[0] = value
		return []*domain.Frame{f}, nil
	}
	return build("point", transform, c)
}

// Ellipse generates an elliptical disk. If the radius rule produces a single
// value the disk is circular.
func Ellipse(radius feature.Rule, opts ...Option) (*feature.Base, error) {
	c := defaults()
	for _, opt := range opts {
		opt(c)
	}
	transform := func(tc *feature.TransformContext) ([]*domain.Frame, error) {
		rad, err := radiusVector(tc.Props["radius"], 2)
		if err != nil {
			return nil, err
		}
		rotation, _ := feature.AsFloat(tc.Props["rotation"])
		value, _ := feature.AsFloat(tc.Props["value"])

		ceil := int(math.Ceil(math.Max(rad[0], rad[1])))
		if ceil < 1 {
			ceil = 1
		}
		side := 2 * ceil
		f := domain.NewFrame(side, side, 1)
		sin, cos := math.Sincos(-rotation)
		for yi := 0; yi < side; yi++ {
			for xi := 0; xi < side; xi++ {
				x := float64(xi - ceil)
				y := float64(yi - ceil)
				xr := x*cos + y*sin
				yr := -x*sin + y*cos
				if (xr*xr)/(rad[0]*rad[0])+(yr*yr)/(rad[1]*rad[1]) < 1 {
					if err := f.Set(value, yi, xi, 0); err != nil {
						return nil, err
					}
				}
			}
		}
		return []*domain.Frame{f}, nil
	}
	return build("ellipse", transform, c,
		feature.WithProperty("radius", radius),
		feature.WithProperty("rotation", c.rotation),
	)
}

// Sphere generates a spherical scatterer.
func Sphere(radius feature.Rule, opts ...Option) (*feature.Base, error) {
	c := defaults()
	for _, opt := range opts {
		opt(c)
	}
	transform := func(tc *feature.TransformContext) ([]*domain.Frame, error) {
		rad, err := radiusVector(tc.Props["radius"], 3)
		if err != nil {
			return nil, err
		}
		value, _ := feature.AsFloat(tc.Props["value"])
		return []*domain.Frame{ellipsoidGrid(rad, [3]float64{}, value)}, nil
	}
	return build("sphere", transform, c,
		feature.WithProperty("radius", radius),
	)
}

// Ellipsoid generates an ellipsoidal scatterer with optional rotation about
// the x, y and z axes.
func Ellipsoid(radius feature.Rule, opts ...Option) (*feature.Base, error) {
	c := defaults()
	for _, opt := range opts {
		opt(c)
	}
	transform := func(tc *feature.TransformContext) ([]*domain.Frame, error) {
		rad, err := radiusVector(tc.Props["radius"], 3)
		if err != nil {
			return nil, err
		}
		rot, err := rotationVector(tc.Props["rotation"])
		if err != nil {
			return nil, err
		}
		value, _ := feature.AsFloat(tc.Props["value"])
		return []*domain.Frame{ellipsoidGrid(rad, rot, value)}, nil
	}
	return build("ellipsoid", transform, c,
		feature.WithProperty("radius", radius),
		feature.WithProperty("rotation", c.rotation),
	)
}

// radiusVector normalizes a radius property to the requested length.
// A scalar is broadcast; a length-2 radius for a 3-dimensional shape is
// padded with its minor axis.
func radiusVector(v any, size int) ([]float64, error) {
	vec, ok := feature.AsVector(v)
	if !ok || len(vec) == 0 {
		return nil, fmt.Errorf("radius must be a number or vector, got %v (%T)", v, v)
	}
	for _, r := range vec {
		if r <= 0 {
			return nil, fmt.Errorf("radius must be positive, got %v", r)
		}
	}
	switch {
	case len(vec) == 1:
		out := make([]float64, size)
		for i := range out {
			out[i] = vec[0]
		}
		return out, nil
	case len(vec) < size:
		out := append([]float64(nil), vec...)
		for len(out) < size {
			out = append(out, vec[len(vec)-1])
		}
		return out, nil
	default:
		return vec[:size], nil
	}
}

// rotationVector pads a rotation property with zeros to three Euler angles.
func rotationVector(v any) ([3]float64, error) {
	vec, ok := feature.AsVector(v)
	if !ok {
		return [3]float64{}, fmt.Errorf("rotation must be a number or vector, got %v (%T)", v, v)
	}
	var out [3]float64
	for i := 0; i < len(vec) && i < 3; i++ {
		out[i] = vec[i]
	}
	return out, nil
}

// ellipsoidGrid rasterizes an ellipsoid occupancy volume on a grid sized by
// the largest radius, rotating the sampling grid by the given Euler angles.
func ellipsoidGrid(rad []float64, rot [3]float64, value float64) *domain.Frame {
	maxRad := math.Max(rad[0], math.Max(rad[1], rad[2]))
	ceil := int(math.Ceil(maxRad))
	if ceil < 1 {
		ceil = 1
	}
	side := 2 * ceil
	f := domain.NewFrame(side, side, side)

	sin0, cos0 := math.Sincos(rot[0])
	sin1, cos1 := math.Sincos(rot[1])
	sin2, cos2 := math.Sincos(rot[2])

	for zi := 0; zi < side; zi++ {
		for yi := 0; yi < side; yi++ {
			for xi := 0; xi < side; xi++ {
				x := float64(xi - ceil)
				y := float64(yi - ceil)
				z := float64(zi - ceil)

				xr := cos0*cos1*x + (cos0*sin1*sin2-sin0*cos2)*y + (cos0*sin1*cos2+sin0*sin2)*z
				yr := sin0*cos1*x + (sin0*sin1*sin2+cos0*cos2)*y + (sin0*sin1*cos2-cos0*sin2)*z
				zr := -sin1*x + cos1*sin2*y + cos1*cos2*z

				a := xr / rad[0]
				b := yr / rad[1]
				c := zr / rad[2]
				if a*a+b*b+c*c < 1 {
					_ = f.Set(value, yi, xi, zi)
				}
			}
		}
	}
	return f
}
