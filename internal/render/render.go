// Package render defines the declarative payload handed to a chart renderer
// and a go-chart backed implementation of it.
package render

import (
	"errors"
	"io"
	"math"

	"github.com/xtding233/parabola/internal/quad"
)

var (
	ErrDisposed = errors.New("render instance already disposed")
	ErrNoPoints = errors.New("curve series has no points")

	// ErrNonFinite means a series overflowed, e.g. a huge coefficient.
	ErrNonFinite = errors.New("series has non-finite values")
)

// Series is one plotted data set. Width > 0 draws a line; PointRadius > 0 draws dots.
type Series struct {
	Name        string
	Points      []quad.Point
	Color       string // "#rrggbb"
	Width       float64
	PointRadius float64
}

type Axis struct {
	Name     string
	MaxTicks int
}

// Tooltip formats a hovered data point. Both functions are pure.
type Tooltip struct {
	Title func(quad.Point) string
	Label func(quad.Point) string
}

// DefaultTooltip renders "x = 2.50" / "y = -0.25".
func DefaultTooltip() Tooltip {
	return Tooltip{
		Title: func(p quad.Point) string { return "x = " + quad.Fixed2(p.X) },
		Label: func(p quad.Point) string { return "y = " + quad.Fixed2(p.Y) },
	}
}

// Description is everything a renderer needs for one frame. The core never
// touches drawing primitives; it only builds one of these.
type Description struct {
	Title     string
	Caption   string // drawn onto exported images, e.g. the equation
	Curve     Series
	Vertex    Series
	Roots     Series // may be empty
	XAxis     Axis
	YAxis     Axis
	GridColor string
	Dark      bool
	Width     int
	Height    int
	Tooltip   Tooltip
}

// Renderer turns a Description into a live Instance.
type Renderer interface {
	Render(d Description) (Instance, error)
}

// Instance is one live chart. It must be disposed before the next one is created.
type Instance interface {
	WritePNG(w io.Writer) error
	Dispose()
}

// Frame is the chart size rule: the requested width is raised to MinWidth and
// the height is Aspect times the width, kept within [MinHeight, MaxHeight].
type Frame struct {
	MinWidth  int
	Aspect    float64
	MinHeight int
	MaxHeight int
}

// Fit returns the pixel size for a requested width; 0 asks for MinWidth.
func (f Frame) Fit(width int) (int, int) {
	w := max(width, f.MinWidth)
	h := int(math.Round(float64(w) * f.Aspect))
	if f.MaxHeight > 0 {
		h = min(h, f.MaxHeight)
	}
	return w, max(h, f.MinHeight)
}
