package session

import (
	"fmt"
	"strings"

	"github.com/xtding233/parabola/internal/config"
	"github.com/xtding233/parabola/internal/quad"
	"github.com/xtding233/parabola/internal/render"
)

// Display holds every text the front end shows for the current triple.
type Display struct {
	Triple       quad.Triple
	Equation     string
	Vertex       string
	Axis         string
	Discriminant string // replaced by the zero-parameter advisory when a == 0
	Solutions    string
	Steps        []string
	Advisory     string         // set only when a == 0
	Cleared      bool           // nothing is plotted
	Analysis     *quad.Analysis // nil when Cleared because a == 0
}

func degenerateDisplay(t quad.Triple, msgs config.Messages) Display {
	return Display{
		Triple:       t,
		Equation:     quad.FormatEquation(t),
		Discriminant: msgs.ZeroParameter,
		Advisory:     msgs.ZeroParameter,
		Cleared:      true,
	}
}

func analysisDisplay(an quad.Analysis, msgs config.Messages) Display {
	d := Display{
		Triple:       an.Triple,
		Equation:     quad.FormatEquation(an.Triple),
		Vertex:       fmt.Sprintf("Vertex: (%s, %s)", quad.Fixed2(an.Vertex.X), quad.Fixed2(an.Vertex.Y)),
		Axis:         "Axis of symmetry: x = " + quad.Fixed2(an.AxisX),
		Discriminant: "Discriminant Δ = " + quad.Fixed2(an.Discriminant),
		Steps:        an.Steps,
		Analysis:     &an,
	}
	switch len(an.Roots) {
	case 2:
		d.Solutions = fmt.Sprintf("Two solutions: x₁ = %s, x₂ = %s", quad.Fixed2(an.Roots[0]), quad.Fixed2(an.Roots[1]))
	case 1:
		d.Solutions = "One solution: x₀ = " + quad.Fixed2(an.Roots[0])
	default:
		d.Solutions = msgs.NoSolutions
	}
	return d
}

// Lines returns the display as plain lines, in the order the panels show them.
func (d Display) Lines() []string {
	lines := []string{d.Equation}
	for _, s := range []string{d.Vertex, d.Axis, d.Discriminant, d.Solutions} {
		if s != "" {
			lines = append(lines, s)
		}
	}
	return append(lines, d.Steps...)
}

// Describe builds the renderer payload for one analysed triple.
func Describe(an quad.Analysis, cfg config.Config, dark bool, width, height int) render.Description {
	roots := make([]quad.Point, 0, len(an.Roots))
	for _, x := range an.Roots {
		roots = append(roots, quad.Point{X: x, Y: 0})
	}
	eq := quad.FormatEquation(an.Triple)
	return render.Description{
		Title: eq,
		// the caption font is ASCII only
		Caption: strings.ReplaceAll(eq, "²", "^2"),
		Curve: render.Series{
			Name:   "Parabola",
			Points: an.Samples,
			Color:  cfg.Palette.Parabola,
			Width:  cfg.Style.BorderWidth,
		},
		Vertex: render.Series{
			Name:        "Vertex",
			Points:      []quad.Point{an.Vertex},
			Color:       cfg.Palette.Vertex,
			PointRadius: cfg.Style.VertexRadius,
		},
		Roots: render.Series{
			Name:        "Solutions",
			Points:      roots,
			Color:       cfg.Palette.Solutions,
			PointRadius: cfg.Style.SolutionsRadius,
		},
		XAxis:     render.Axis{Name: "x", MaxTicks: cfg.Style.MaxTicks},
		YAxis:     render.Axis{Name: "y"},
		GridColor: cfg.Palette.Grid,
		Dark:      dark,
		Width:     width,
		Height:    height,
		Tooltip:   render.DefaultTooltip(),
	}
}
