// Package session owns the state of one visualizer session: the canonical
// triple, its undo log and the live chart. Every edit goes through Apply.
package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xtding233/parabola/internal/config"
	"github.com/xtding233/parabola/internal/history"
	"github.com/xtding233/parabola/internal/logging"
	"github.com/xtding233/parabola/internal/quad"
	"github.com/xtding233/parabola/internal/render"
	"github.com/xtding233/parabola/internal/share"
)

var (
	ErrInvalidInput = errors.New("invalid numeric input")
	ErrNoChart      = errors.New("no chart to export")
)

// Param names one coefficient.
type Param int

const (
	ParamA Param = iota
	ParamB
	ParamC
)

func (p Param) String() string {
	switch p {
	case ParamA:
		return "a"
	case ParamB:
		return "b"
	case ParamC:
		return "c"
	}
	return "?"
}

func (p Param) get(t quad.Triple) float64 {
	switch p {
	case ParamB:
		return t.B
	case ParamC:
		return t.C
	}
	return t.A
}

func (p Param) set(t quad.Triple, v float64) quad.Triple {
	switch p {
	case ParamA:
		t.A = v
	case ParamB:
		t.B = v
	case ParamC:
		t.C = v
	}
	return t
}

// Session is the single application-state object. It is not safe for
// concurrent use: events are handled one at a time, each to completion.
type Session struct {
	cfg      config.Config
	renderer render.Renderer
	history  *history.Store
	metrics  *Metrics
	log      *slog.Logger

	current  quad.Triple
	display  Display
	desc     *render.Description
	instance render.Instance
	dark     bool
	reqWidth int
	width    int
	height   int
}

type Option func(*Session)

func WithMetrics(m *Metrics) Option { return func(s *Session) { s.metrics = m } }

func WithLogger(l *slog.Logger) Option { return func(s *Session) { s.log = l } }

func WithHistoryCapacity(n int) Option { return func(s *Session) { s.history = history.New(n) } }

// WithWidth requests a chart width; chart.options.size decides the final size.
func WithWidth(w int) Option { return func(s *Session) { s.reqWidth = w } }

func WithDark(dark bool) Option { return func(s *Session) { s.dark = dark } }

// New creates a session. Nothing is rendered until Start.
func New(cfg config.Config, r render.Renderer, opts ...Option) *Session {
	s := &Session{cfg: cfg, renderer: r}
	for _, o := range opts {
		o(s)
	}
	sz := cfg.Style.Size
	frame := render.Frame{MinWidth: sz.MinWidth, Aspect: sz.Aspect, MinHeight: sz.MinHeight, MaxHeight: sz.MaxHeight}
	s.width, s.height = frame.Fit(s.reqWidth)
	if s.history == nil {
		s.history = history.New(history.DefaultCapacity)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics(nil)
	}
	if s.log == nil {
		s.log = logging.Discard()
	}
	s.log = s.log.With(slog.String("component", "session"))
	return s
}

// Start establishes the initial triple, records it as the first history
// entry and renders it. A non-finite initial triple falls back to the defaults.
func (s *Session) Start(initial quad.Triple) Display {
	if err := quad.Validate(initial); err != nil {
		s.log.Warn("initial triple rejected, using defaults",
			slog.Any("triple", initial),
			slog.String("error", err.Error()))
		initial = s.cfg.Defaults
	}
	return s.Apply(initial, true)
}

// Apply makes t the current triple, optionally records it in the undo log,
// recomputes everything derived from it and replaces the chart.
// Non-finite triples are dropped and the previous display is returned.
func (s *Session) Apply(t quad.Triple, recordHistory bool) Display {
	if err := quad.Validate(t); err != nil {
		s.metrics.IgnoredInputs.Inc()
		s.log.Debug("apply ignored", slog.Any("triple", t), slog.String("error", err.Error()))
		return s.display
	}
	s.current = t
	if recordHistory {
		s.record(t)
	}
	s.refresh()
	return s.display
}

func (s *Session) record(t quad.Triple) {
	if s.history.Record(t) {
		s.metrics.HistoryEvictions.Inc()
	}
	s.metrics.HistoryRecords.Inc()
	s.metrics.HistorySize.Set(float64(s.history.Len()))
}

// refresh recomputes the display and swaps the chart. The old instance is
// always disposed before a new one is created.
func (s *Session) refresh() {
	an, err := quad.Analyze(s.current, s.cfg.Domain)
	if err != nil {
		// only ErrDegenerate can get here; Apply already rejected non-finite input
		s.dispose()
		s.desc = nil
		s.display = degenerateDisplay(s.current, s.cfg.Messages)
		s.metrics.Clears.Inc()
		return
	}
	s.display = analysisDisplay(an, s.cfg.Messages)

	desc := Describe(an, s.cfg, s.dark, s.width, s.height)
	s.desc = &desc
	s.dispose()
	inst, err := s.renderer.Render(desc)
	if err != nil {
		s.metrics.RenderErrors.Inc()
		s.log.Warn("render failed",
			slog.String("equation", s.display.Equation),
			slog.String("error", err.Error()))
		s.display.Cleared = true
		return
	}
	s.instance = inst
	s.metrics.Renders.Inc()
}

func (s *Session) dispose() {
	if s.instance != nil {
		s.instance.Dispose()
		s.instance = nil
	}
}

// SetParam edits one coefficient from text typed into its input. Text that
// is not a finite number is ignored: no state change, no history, no render.
func (s *Session) SetParam(p Param, text string) (Display, error) {
	v, err := share.ParseNumber(text)
	if err != nil {
		s.metrics.IgnoredInputs.Inc()
		return s.display, fmt.Errorf("%w: %s=%q", ErrInvalidInput, p, text)
	}
	return s.Apply(p.set(s.current, v), true), nil
}

// Nudge moves one coefficient by steps slider increments, snapped to the
// slider grid and clamped to its bounds. It reports false when the value
// does not change (already at a bound).
func (s *Session) Nudge(p Param, steps int) (Display, bool) {
	sl := s.cfg.Sliders[p]
	cur := p.get(s.current)
	v := snap(cur+float64(steps)*sl.Step, sl)
	if v == cur {
		return s.display, false
	}
	return s.Apply(p.set(s.current, v), true), true
}

// snap rounds v onto the slider grid min + k*step, clamps it to [min, max]
// and trims float noise to the step's precision.
func snap(v float64, sl config.Slider) float64 {
	if sl.Step > 0 {
		v = sl.Min + math.Round((v-sl.Min)/sl.Step)*sl.Step
	}
	v = math.Max(sl.Min, math.Min(sl.Max, v))
	p := math.Pow(10, float64(decimals(sl.Step)))
	return math.Round(v*p) / p
}

func decimals(step float64) int {
	s := strconv.FormatFloat(step, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

// Undo steps back in history without recording a new entry.
// At the oldest entry it is a no-op and reports false.
func (s *Session) Undo() (Display, bool) {
	t, ok := s.history.Undo()
	if !ok {
		return s.display, false
	}
	s.metrics.Undos.Inc()
	return s.Apply(t, false), true
}

// Redo steps forward in history without recording a new entry.
// At the newest entry it is a no-op and reports false.
func (s *Session) Redo() (Display, bool) {
	t, ok := s.history.Redo()
	if !ok {
		return s.display, false
	}
	s.metrics.Redos.Inc()
	return s.Apply(t, false), true
}

// ApplyPreset parses an "a,b,c" preset token and applies it as a new edit.
func (s *Session) ApplyPreset(token string) (Display, error) {
	t, err := config.ParsePreset(token)
	if err != nil {
		s.metrics.IgnoredInputs.Inc()
		return s.display, err
	}
	return s.Apply(t, true), nil
}

// Reset applies the configured defaults as a new edit.
func (s *Session) Reset() Display {
	return s.Apply(s.cfg.Defaults, true)
}

// ToggleDark flips the chart theme and re-renders the current triple
// (without a history entry). It returns the new state.
func (s *Session) ToggleDark() bool {
	s.dark = !s.dark
	s.refresh()
	return s.dark
}

func (s *Session) Dark() bool { return s.dark }

// DarkLabel is the label of the theme toggle for the current state.
func (s *Session) DarkLabel() string {
	if s.dark {
		return s.cfg.Buttons.DarkModeActive
	}
	return s.cfg.Buttons.DarkMode
}

// ShareURL serializes the current triple onto base (or the configured base URL).
func (s *Session) ShareURL(base string) (string, error) {
	if base == "" {
		base = s.cfg.BaseURL
	}
	return share.Encode(base, s.current)
}

// Export writes a PNG snapshot of the live chart.
func (s *Session) Export(w io.Writer) error {
	if s.instance == nil {
		return ErrNoChart
	}
	return s.instance.WritePNG(w)
}

// ExportFile writes the snapshot to dir/<export file name> and returns the path.
func (s *Session) ExportFile(dir string) (string, error) {
	if s.instance == nil {
		return "", ErrNoChart
	}
	name := s.cfg.ExportFile
	if name == "" {
		name = "parabola.png"
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := s.Export(f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	s.log.Info("exported", slog.String("path", path))
	return path, nil
}

// Close disposes the live chart.
func (s *Session) Close() {
	s.dispose()
}

func (s *Session) Current() quad.Triple   { return s.current }
func (s *Session) Display() Display       { return s.display }
func (s *Session) Config() config.Config  { return s.cfg }
func (s *Session) CanUndo() bool          { return s.history.CanUndo() }
func (s *Session) CanRedo() bool          { return s.history.CanRedo() }
func (s *Session) HistoryLen() int        { return s.history.Len() }
func (s *Session) HistoryCursor() int     { return s.history.Cursor() }
func (s *Session) History() []quad.Triple { return s.history.Entries() }

// Description is the payload of the live chart, if any.
func (s *Session) Description() (render.Description, bool) {
	if s.desc == nil {
		return render.Description{}, false
	}
	return *s.desc, true
}
