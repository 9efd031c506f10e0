package render

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strings"
	"sync/atomic"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/xtding233/parabola/internal/quad"
)

var (
	darkBackground = drawing.ColorFromHex("111827")
	darkForeground = drawing.ColorFromHex("e5e7eb")
)

// ChartRenderer renders Descriptions with go-chart. It counts live instances
// so callers (and tests) can check that old charts are disposed.
type ChartRenderer struct {
	live    atomic.Int64
	created atomic.Int64
}

func NewChartRenderer() *ChartRenderer { return &ChartRenderer{} }

// Live is the number of instances created and not yet disposed.
func (r *ChartRenderer) Live() int { return int(r.live.Load()) }

// Created is the total number of instances ever created.
func (r *ChartRenderer) Created() int { return int(r.created.Load()) }

func (r *ChartRenderer) Render(d Description) (Instance, error) {
	if len(d.Curve.Points) == 0 {
		return nil, ErrNoPoints
	}
	for _, sr := range []Series{d.Curve, d.Vertex, d.Roots} {
		if !finite(sr.Points) {
			return nil, fmt.Errorf("%w: %s", ErrNonFinite, sr.Name)
		}
	}
	ch := buildChart(d)
	r.live.Add(1)
	r.created.Add(1)
	return &chartInstance{owner: r, ch: ch, caption: d.Caption, dark: d.Dark}, nil
}

// finite reports whether every coordinate is a real number; go-chart only
// checks its ranges while drawing.
func finite(pts []quad.Point) bool {
	for _, p := range pts {
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			return false
		}
	}
	return true
}

type chartInstance struct {
	owner    *ChartRenderer
	ch       chart.Chart
	caption  string
	dark     bool
	disposed bool
}

func (c *chartInstance) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.owner.live.Add(-1)
}

// WritePNG renders the chart and encodes it as PNG, with the caption drawn
// in the bottom-left corner.
func (c *chartInstance) WritePNG(w io.Writer) error {
	if c.disposed {
		return ErrDisposed
	}
	var buf bytes.Buffer
	if err := c.ch.Render(chart.PNG, &buf); err != nil {
		return err
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return err
	}
	return png.Encode(w, drawCaption(img, c.caption, c.dark))
}

func hex(s string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(s, "#"))
}

func lineStyle(s Series) chart.Style {
	return chart.Style{
		StrokeWidth: s.Width,
		StrokeColor: hex(s.Color),
	}
}

// pointStyle returns a style that renders points only (no connecting line)
func pointStyle(s Series) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    s.PointRadius,
		DotColor:    hex(s.Color),
	}
}

func toSeries(s Series, style chart.Style) chart.ContinuousSeries {
	xs := make([]float64, len(s.Points))
	ys := make([]float64, len(s.Points))
	for i, p := range s.Points {
		xs[i], ys[i] = p.X, p.Y
	}
	return chart.ContinuousSeries{Name: s.Name, XValues: xs, YValues: ys, Style: style}
}

func buildChart(d Description) chart.Chart {
	series := []chart.Series{toSeries(d.Curve, lineStyle(d.Curve))}
	if len(d.Vertex.Points) > 0 {
		series = append(series, toSeries(d.Vertex, pointStyle(d.Vertex)))
	}
	// go-chart rejects empty series, so a root-less curve simply has no roots series
	if len(d.Roots.Points) > 0 {
		series = append(series, toSeries(d.Roots, pointStyle(d.Roots)))
	}

	grid := chart.Style{StrokeColor: hex(d.GridColor), StrokeWidth: 1}
	axisStyle := chart.Style{}
	background := chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 28}}
	canvas := chart.Style{}
	if d.Dark {
		axisStyle = chart.Style{FontColor: darkForeground, StrokeColor: darkForeground}
		background.FillColor = darkBackground
		background.FontColor = darkForeground
		canvas.FillColor = darkBackground
	}

	tickFormat := func(v interface{}) string {
		if f, ok := v.(float64); ok {
			return quad.Fixed2(f)
		}
		return ""
	}

	minX, maxX := bounds(d.Curve.Points)
	ch := chart.Chart{
		Title:      d.Title,
		TitleStyle: chart.Style{FontColor: background.FontColor},
		Width:      d.Width,
		Height:     d.Height,
		Background: background,
		Canvas:     canvas,
		XAxis: chart.XAxis{
			Name:           d.XAxis.Name,
			NameStyle:      axisStyle,
			Style:          axisStyle,
			ValueFormatter: tickFormat,
			Range:          &chart.ContinuousRange{Min: minX, Max: maxX},
			Ticks:          ticks(minX, maxX, d.XAxis.MaxTicks),
			GridMajorStyle: grid,
		},
		YAxis: chart.YAxis{
			Name:           d.YAxis.Name,
			NameStyle:      axisStyle,
			Style:          axisStyle,
			ValueFormatter: tickFormat,
			GridMajorStyle: grid,
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch
}

func bounds(pts []quad.Point) (float64, float64) {
	lo, hi := pts[0].X, pts[0].X
	for _, p := range pts[1:] {
		if p.X < lo {
			lo = p.X
		}
		if p.X > hi {
			hi = p.X
		}
	}
	if lo == hi {
		hi = lo + 1
	}
	return lo, hi
}

// ticks spreads n labelled ticks evenly over [lo, hi]; n < 2 leaves it to go-chart.
func ticks(lo, hi float64, n int) []chart.Tick {
	if n < 2 {
		return nil
	}
	out := make([]chart.Tick, 0, n)
	step := (hi - lo) / float64(n-1)
	for i := 0; i < n; i++ {
		v := lo + float64(i)*step
		if i == n-1 {
			v = hi
		}
		out = append(out, chart.Tick{Value: v, Label: quad.Fixed2(v)})
	}
	return out
}

// drawCaption stamps text in the lower-left corner of img on a band of the
// chart's own background colour. Spacing is measured in glyph widths.
func drawCaption(img image.Image, text string, dark bool) image.Image {
	text = strings.TrimSpace(text)
	if img == nil || text == "" {
		return img
	}
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)

	face := basicfont.Face7x13
	fg, band := darkBackground, drawing.ColorWhite.WithAlpha(200)
	if dark {
		fg, band = darkForeground, darkBackground.WithAlpha(200)
	}
	d := &font.Drawer{Dst: out, Src: image.NewUniform(fg), Face: face}

	em := face.Advance
	m := face.Metrics()
	origin := image.Pt(out.Rect.Min.X+em, out.Rect.Max.Y-em-m.Descent.Ceil())
	box := image.Rect(0, -m.Ascent.Ceil(), d.MeasureString(text).Ceil(), m.Descent.Ceil()).
		Add(origin).
		Inset(-em / 2)
	draw.Draw(out, box, image.NewUniform(band), image.Point{}, draw.Over)

	d.Dot = fixed.P(origin.X, origin.Y)
	d.DrawString(text)
	return out
}
