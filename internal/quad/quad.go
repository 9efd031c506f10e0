// Package quad holds the closed-form math behind the visualizer: evaluation,
// vertex, discriminant, real roots, curve sampling and the human-readable
// derivation trace. Everything here is pure.
package quad

import (
	"errors"
	"math"
	"sort"
)

var ErrDegenerate = errors.New("parameter a cannot be zero")

// Triple is one quadratic y = A·x² + B·x + C.
type Triple struct {
	A float64 `json:"a" yaml:"a"`
	B float64 `json:"b" yaml:"b"`
	C float64 `json:"c" yaml:"c"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Domain is the sampling range for the plotted curve.
type Domain struct {
	Min  float64 `json:"min" yaml:"min"`
	Max  float64 `json:"max" yaml:"max"`
	Step float64 `json:"step" yaml:"step"`
}

// Analysis is everything derived from a Triple for one render.
type Analysis struct {
	Triple       Triple
	Vertex       Point
	AxisX        float64
	Discriminant float64
	Roots        []float64
	Samples      []Point
	Steps        []string
}

// Evaluate returns a·x² + b·x + c.
func Evaluate(t Triple, x float64) float64 {
	return t.A*x*x + t.B*x + t.C
}

func Discriminant(t Triple) float64 {
	return t.B*t.B - 4*t.A*t.C
}

// Vertex returns the turning point at x = -b/2a.
func Vertex(t Triple) (Point, error) {
	if t.A == 0 {
		return Point{}, ErrDegenerate
	}
	x := -t.B / (2 * t.A)
	return Point{X: x, Y: Evaluate(t, x)}, nil
}

// Roots returns the real solutions of a·x² + b·x + c = 0 in ascending order.
// The discriminant is compared with zero exactly: a Δ that is a rounding hair
// above zero yields two (nearly equal) roots, not one.
func Roots(t Triple) ([]float64, error) {
	if t.A == 0 {
		return nil, ErrDegenerate
	}
	d := Discriminant(t)
	switch {
	case d > 0:
		sq := math.Sqrt(d)
		rs := []float64{(-t.B - sq) / (2 * t.A), (-t.B + sq) / (2 * t.A)}
		// for a < 0 the minus branch is the larger root
		sort.Float64s(rs)
		return rs, nil
	case d == 0:
		return []float64{-t.B / (2 * t.A)}, nil
	default:
		return []float64{}, nil
	}
}

// Analyze runs the whole pipeline for one triple over the sampling domain.
func Analyze(t Triple, d Domain) (Analysis, error) {
	if err := Validate(t); err != nil {
		return Analysis{}, err
	}
	v, err := Vertex(t)
	if err != nil {
		return Analysis{}, err
	}
	roots, err := Roots(t)
	if err != nil {
		return Analysis{}, err
	}
	delta := Discriminant(t)
	return Analysis{
		Triple:       t,
		Vertex:       v,
		AxisX:        v.X,
		Discriminant: delta,
		Roots:        roots,
		Samples:      SampleCurve(t, d),
		Steps:        DerivationSteps(t, delta, roots),
	}, nil
}
