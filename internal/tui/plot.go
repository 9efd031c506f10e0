package tui

import (
	"math"
	"strings"

	plot "github.com/chriskim06/drawille-go"

	"github.com/xtding233/parabola/internal/quad"
)

const (
	markVertex = 'V'
	markRoot   = 'o'
	markProbe  = '+'
)

// curvePlot is a braille line plot of the sampled curve with a marker ruler
// underneath for the vertex, the roots and the probe.
type curvePlot struct {
	canvas     plot.Canvas
	width      int
	minX, maxX float64
	ruler      []rune
}

func newCurvePlot(width, height int, curve []quad.Point, dark bool) *curvePlot {
	p := &curvePlot{width: max(8, width)}
	p.ruler = []rune(strings.Repeat(" ", p.width))
	p.canvas = plot.NewCanvas(p.width, max(4, height))
	p.canvas.ShowAxis = false
	if len(curve) == 0 {
		return p
	}
	p.minX, p.maxX = curve[0].X, curve[len(curve)-1].X

	ys := make([]float64, len(curve))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, pt := range curve {
		ys[i] = pt.Y
		lo, hi = math.Min(lo, pt.Y), math.Max(hi, pt.Y)
	}
	curveColor, axisColor := plot.Black, plot.LightGray
	if dark {
		curveColor, axisColor = plot.Red, plot.DimGray
	}
	series := [][]float64{ys}
	colors := []plot.Color{curveColor}
	if lo <= 0 && hi >= 0 {
		// x-axis goes first so the curve is drawn over it
		series = [][]float64{make([]float64, len(ys)), ys}
		colors = []plot.Color{axisColor, curveColor}
	}
	p.canvas.NumDataPoints = len(ys)
	p.canvas.LineColors = colors
	p.canvas.Fill(series)
	return p
}

// mark puts r on the ruler column under x. Points outside the domain are dropped.
func (p *curvePlot) mark(x float64, r rune) {
	if p.maxX <= p.minX {
		return
	}
	f := (x - p.minX) / (p.maxX - p.minX)
	if f < 0 || f > 1 {
		return
	}
	p.ruler[int(math.Round(f*float64(p.width-1)))] = r
}

func (p *curvePlot) String() string {
	return p.canvas.String() + "\n" + string(p.ruler)
}
