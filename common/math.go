package common

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// FrameDelta is the simulated time of one ebiten tick at the default TPS.
	FrameDelta = 1.0 / 60.0
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Vec3 is a plain 3-component vector in scene units.
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Uniform returns a vector with all components set to s.
func Uniform(s float64) Vec3 {
	return Vec3{X: s, Y: s, Z: s}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Mul(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns the unit vector, or the zero vector for a zero input.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Mul(1 / l)
}

// Lerp interpolates each component towards o.
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return Vec3{
		X: Lerp(v.X, o.X, t),
		Y: Lerp(v.Y, o.Y, t),
		Z: Lerp(v.Z, o.Z, t),
	}
}

// ApproxEqual reports whether every component differs by at most eps.
func (v Vec3) ApproxEqual(o Vec3, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps && math.Abs(v.Z-o.Z) <= eps
}

// UnmarshalYAML accepts either a mapping {x, y, z} or a flow sequence [x, y, z].
// A single-element sequence is a uniform vector.
func (v *Vec3) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		var seq []float64
		if err := value.Decode(&seq); err != nil {
			return err
		}
		switch len(seq) {
		case 1:
			*v = Uniform(seq[0])
		case 3:
			*v = Vec3{X: seq[0], Y: seq[1], Z: seq[2]}
		default:
			return fmt.Errorf("common: line %d: vector needs 1 or 3 components, got %d", value.Line, len(seq))
		}
		return nil
	}
	if value.Kind == yaml.ScalarNode {
		var s float64
		if err := value.Decode(&s); err != nil {
			return err
		}
		*v = Uniform(s)
		return nil
	}
	type plain Vec3
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*v = Vec3(p)
	return nil
}
