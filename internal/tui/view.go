package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/xtding233/parabola/internal/config"
	"github.com/xtding233/parabola/internal/quad"
)

const sliderWidth = 24

type theme struct {
	title  lipgloss.Style
	text   lipgloss.Style
	muted  lipgloss.Style
	alert  lipgloss.Style
	button lipgloss.Style
	panel  lipgloss.Style
}

func newTheme(dark bool, pal config.Palette) theme {
	fg, muted, border, bg := lipgloss.Color("#111827"), lipgloss.Color("#6b7280"), lipgloss.Color("#d1d5db"), lipgloss.Color("#ffffff")
	if dark {
		fg, muted, border, bg = lipgloss.Color("#e5e7eb"), lipgloss.Color("#9ca3af"), lipgloss.Color("#374151"), lipgloss.Color("#111827")
	}
	return theme{
		title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(pal.Parabola)),
		text:  lipgloss.NewStyle().Foreground(fg),
		muted: lipgloss.NewStyle().Foreground(muted),
		alert: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(pal.Solutions)),
		button: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Foreground(fg),
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(border).
			Background(bg).
			Foreground(lipgloss.Color(pal.Parabola)),
	}
}

func (m *Model) View() string {
	cfg := m.s.Config()
	th := newTheme(m.s.Dark(), cfg.Palette)
	d := m.s.Display()

	var b strings.Builder
	b.WriteString(th.title.Render(d.Equation))
	b.WriteString("\n\n")
	t := m.s.Current()
	vals := [3]float64{t.A, t.B, t.C}
	for i := range m.inputs {
		b.WriteString(m.sliderRow(i, vals[i], cfg.Sliders[i], th))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	if d.Analysis == nil {
		b.WriteString(th.alert.Render(d.Discriminant))
		b.WriteByte('\n')
	} else {
		for _, s := range []string{d.Vertex, d.Axis, d.Discriminant, d.Solutions} {
			b.WriteString(th.text.Render(s))
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
		for _, s := range d.Steps {
			b.WriteString(th.muted.Render(s))
			b.WriteByte('\n')
		}
		b.WriteString(th.panel.Render(m.plot()))
		b.WriteByte('\n')
		if tip := m.tooltip(); tip != "" {
			b.WriteString(th.muted.Render(tip))
			b.WriteByte('\n')
		}
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
		th.button.Render(m.shareLabel),
		th.button.Render(m.s.DarkLabel()),
		" "+th.muted.Render(m.status),
	))
	b.WriteByte('\n')
	b.WriteString(m.help.View(keys))
	return b.String()
}

func (m *Model) sliderRow(i int, v float64, sl config.Slider, th theme) string {
	color := lipgloss.NewStyle().Foreground(lipgloss.Color(sl.Color))
	cursor := " "
	if i == m.focus {
		cursor = color.Render("›")
	}
	return fmt.Sprintf("%s %s %s %s %s",
		cursor,
		th.muted.Render(quad.FormatNumber(sl.Min)),
		color.Render(sliderBar(v, sl, sliderWidth)),
		th.muted.Render(quad.FormatNumber(sl.Max)),
		m.inputs[i].View(),
	)
}

// sliderBar draws the knob for v; values outside the slider range pin to an end.
func sliderBar(v float64, sl config.Slider, width int) string {
	pos := 0
	if sl.Max > sl.Min {
		f := (v - sl.Min) / (sl.Max - sl.Min)
		f = math.Max(0, math.Min(1, f))
		pos = int(math.Round(f * float64(width-1)))
	}
	return strings.Repeat("━", pos) + "●" + strings.Repeat("─", width-1-pos)
}

func (m *Model) plot() string {
	an := m.s.Display().Analysis
	w := max(20, m.width-4)
	h := max(6, min(16, m.height/3))
	p := newCurvePlot(w, h, an.Samples, m.s.Dark())
	for _, x := range an.Roots {
		p.mark(x, markRoot)
	}
	p.mark(an.Vertex.X, markVertex)
	if pts := an.Samples; m.probe < len(pts) {
		p.mark(pts[m.probe].X, markProbe)
	}
	return p.String()
}

func (m *Model) tooltip() string {
	desc, ok := m.s.Description()
	pts := m.samples()
	if !ok || m.probe >= len(pts) {
		return ""
	}
	pt := pts[m.probe]
	return desc.Tooltip.Title(pt) + "  " + desc.Tooltip.Label(pt)
}
