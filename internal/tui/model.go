// Package tui is the terminal front end: one slider and one text input per
// coefficient, the derived texts, a curve preview and the keyboard shortcuts.
package tui

import (
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xtding233/parabola/internal/logging"
	"github.com/xtding233/parabola/internal/quad"
	"github.com/xtding233/parabola/internal/session"
	"github.com/xtding233/parabola/internal/share"
)

// ShareResetDelay is how long the share label shows the success text.
const ShareResetDelay = 2 * time.Second

var params = [3]session.Param{session.ParamA, session.ParamB, session.ParamC}

type Options struct {
	Clipboard share.Clipboard
	ShareBase string // empty uses the configured base URL
	ExportDir string
	Log       *slog.Logger
}

type shareDoneMsg struct {
	url string
	err error
}

type shareResetMsg struct{ seq int }

// Model is the bubbletea model. It holds no math state of its own: every
// edit goes to the session and the inputs are re-synced from its triple.
type Model struct {
	s      *session.Session
	inputs [3]textinput.Model
	focus  int
	help   help.Model
	clip   share.Clipboard
	log    *slog.Logger

	shareBase  string
	exportDir  string
	shareLabel string
	shareSeq   int
	status     string
	probe      int

	width, height int
}

// New wraps a started session.
func New(s *session.Session, opts Options) *Model {
	m := &Model{
		s:          s,
		help:       help.New(),
		clip:       opts.Clipboard,
		log:        opts.Log,
		shareBase:  opts.ShareBase,
		exportDir:  opts.ExportDir,
		shareLabel: s.Config().Buttons.Share,
		width:      80,
		height:     24,
	}
	if m.exportDir == "" {
		m.exportDir = "."
	}
	if m.log == nil {
		m.log = logging.Discard()
	}
	for i, p := range params {
		in := textinput.New()
		in.Prompt = p.String() + " = "
		in.CharLimit = 24
		in.Width = 12
		m.inputs[i] = in
	}
	m.inputs[0].Focus()
	m.syncInputs(true)
	m.resetProbe()
	return m
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	case shareDoneMsg:
		if msg.err != nil {
			m.log.Warn("share failed", slog.String("error", msg.err.Error()))
			m.status = "Could not copy link: " + msg.url
			return m, nil
		}
		m.shareSeq++
		seq := m.shareSeq
		m.shareLabel = m.s.Config().Buttons.ShareSuccess
		m.status = "Copied " + msg.url
		return m, tea.Tick(ShareResetDelay, func(time.Time) tea.Msg { return shareResetMsg{seq: seq} })
	case shareResetMsg:
		// a newer share restarted the timer
		if msg.seq == m.shareSeq {
			m.shareLabel = m.s.Config().Buttons.Share
		}
		return m, nil
	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}
	return m, m.updateInput(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit, true
	case key.Matches(msg, keys.Next):
		return m.setFocus(m.focus + 1), true
	case key.Matches(msg, keys.Prev):
		return m.setFocus(m.focus + 2), true
	case key.Matches(msg, keys.Up):
		m.nudge(msg, 1)
		return nil, true
	case key.Matches(msg, keys.Down):
		m.nudge(msg, -1)
		return nil, true
	case key.Matches(msg, keys.Undo):
		if _, ok := m.s.Undo(); ok {
			m.afterChange(true)
		}
		return nil, true
	case key.Matches(msg, keys.Redo):
		if _, ok := m.s.Redo(); ok {
			m.afterChange(true)
		}
		return nil, true
	case key.Matches(msg, keys.Preset):
		m.applyPreset(msg)
		return nil, true
	case key.Matches(msg, keys.Reset):
		m.s.Reset()
		m.afterChange(true)
		return nil, true
	case key.Matches(msg, keys.Share):
		return m.shareCmd(), true
	case key.Matches(msg, keys.Export):
		m.export()
		return nil, true
	case key.Matches(msg, keys.Dark):
		m.s.ToggleDark()
		return nil, true
	case key.Matches(msg, keys.ProbeL):
		m.moveProbe(-1)
		return nil, true
	case key.Matches(msg, keys.ProbeR):
		m.moveProbe(1)
		return nil, true
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil, true
	}
	return nil, false
}

// updateInput feeds msg to the focused input and applies its text when it
// changed. Text that does not parse leaves the session untouched.
func (m *Model) updateInput(msg tea.Msg) tea.Cmd {
	in := &m.inputs[m.focus]
	before := in.Value()
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	if in.Value() == before {
		return cmd
	}
	if _, err := m.s.SetParam(params[m.focus], in.Value()); err != nil {
		m.log.Debug("input ignored", slog.String("error", err.Error()))
		return cmd
	}
	m.afterChange(false)
	return cmd
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	// leaving an input with unparsable text shows the canonical value again
	m.syncInputs(true)
	m.focus = i % len(m.inputs)
	return m.inputs[m.focus].Focus()
}

func (m *Model) nudge(msg tea.KeyMsg, dir int) {
	steps := dir
	if msg.String() == "pgup" || msg.String() == "pgdown" {
		steps *= 10
	}
	if _, ok := m.s.Nudge(params[m.focus], steps); ok {
		m.afterChange(true)
	}
}

func (m *Model) applyPreset(msg tea.KeyMsg) {
	s := msg.String()
	n, err := strconv.Atoi(s[len(s)-1:])
	presets := m.s.Config().Presets
	if err != nil || n < 1 || n > len(presets) {
		m.status = "No preset " + s[len(s)-1:]
		return
	}
	p := presets[n-1]
	if _, err := m.s.ApplyPreset(p.Token); err != nil {
		m.status = err.Error()
		return
	}
	m.status = "Preset: " + p.Name
	m.afterChange(true)
}

func (m *Model) shareCmd() tea.Cmd {
	link, err := m.s.ShareURL(m.shareBase)
	if err != nil {
		m.status = "Share failed: " + err.Error()
		return nil
	}
	clip := m.clip
	return func() tea.Msg {
		return shareDoneMsg{url: link, err: share.Copy(clip, link)}
	}
}

func (m *Model) export() {
	path, err := m.s.ExportFile(m.exportDir)
	if err != nil {
		m.log.Warn("export failed", slog.String("error", err.Error()))
		m.status = "Export failed: " + err.Error()
		return
	}
	m.status = "Saved " + path
}

// afterChange re-syncs the inputs after the triple moved. The focused
// input keeps its text while the user is typing into it.
func (m *Model) afterChange(includeFocused bool) {
	m.syncInputs(includeFocused)
	m.clampProbe()
}

func (m *Model) syncInputs(includeFocused bool) {
	t := m.s.Current()
	vals := [3]float64{t.A, t.B, t.C}
	for i := range m.inputs {
		if i == m.focus && !includeFocused {
			continue
		}
		m.inputs[i].SetValue(strconv.FormatFloat(vals[i], 'f', -1, 64))
		m.inputs[i].CursorEnd()
	}
}

func (m *Model) samples() []quad.Point {
	if an := m.s.Display().Analysis; an != nil {
		return an.Samples
	}
	return nil
}

// resetProbe parks the probe on the sample nearest the vertex.
func (m *Model) resetProbe() {
	an := m.s.Display().Analysis
	if an == nil || len(an.Samples) == 0 {
		m.probe = 0
		return
	}
	best := 0
	for i, p := range an.Samples {
		if math.Abs(p.X-an.Vertex.X) < math.Abs(an.Samples[best].X-an.Vertex.X) {
			best = i
		}
	}
	m.probe = best
}

func (m *Model) moveProbe(d int) {
	m.probe += d
	m.clampProbe()
}

func (m *Model) clampProbe() {
	n := len(m.samples())
	if m.probe >= n {
		m.probe = n - 1
	}
	if m.probe < 0 {
		m.probe = 0
	}
}
