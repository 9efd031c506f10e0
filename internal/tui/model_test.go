package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xtding233/parabola/internal/config"
	"github.com/xtding233/parabola/internal/quad"
	"github.com/xtding233/parabola/internal/render"
	"github.com/xtding233/parabola/internal/session"
)

type memClipboard struct {
	text string
	err  error
}

func (c *memClipboard) WriteAll(s string) error {
	if c.err != nil {
		return c.err
	}
	c.text = s
	return nil
}

func newModel(t *testing.T, clip *memClipboard) (*Model, *session.Session) {
	t.Helper()
	cfg := config.Fallback()
	cfg.Presets = []config.Preset{
		{Name: "Double root", Token: "1,-4,4", Triple: quad.Triple{A: 1, B: -4, C: 4}},
		{Name: "No roots", Token: "1,2,5", Triple: quad.Triple{A: 1, B: 2, C: 5}},
	}
	s := session.New(cfg, render.NewChartRenderer())
	s.Start(quad.Triple{A: 1, B: -5, C: 6})
	t.Cleanup(s.Close)
	opts := Options{ShareBase: "https://example.test/", ExportDir: t.TempDir()}
	if clip != nil {
		opts.Clipboard = clip
	}
	return New(s, opts), s
}

func press(m *Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestTypingAppliesValidInput(t *testing.T) {
	m, s := newModel(t, nil)
	press(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyBackspace}, runes("3"))
	if s.Current().B != -3 {
		t.Fatalf("b = %v (input %q)", s.Current().B, m.inputs[1].Value())
	}
	// "-5" -> "-" is ignored, "-" -> "-3" records
	if s.HistoryLen() != 2 {
		t.Fatalf("history %d", s.HistoryLen())
	}
}

func TestTypingIgnoresInvalidInput(t *testing.T) {
	m, s := newModel(t, nil)
	press(m, runes("x"))
	if s.Current() != (quad.Triple{A: 1, B: -5, C: 6}) || s.HistoryLen() != 1 {
		t.Fatalf("current %+v len %d", s.Current(), s.HistoryLen())
	}
	if m.inputs[0].Value() != "1x" {
		t.Fatalf("input %q", m.inputs[0].Value())
	}
	press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.inputs[0].Value() != "1" {
		t.Fatalf("input not restored: %q", m.inputs[0].Value())
	}
}

func TestUndoRedoKeys(t *testing.T) {
	m, s := newModel(t, nil)
	press(m, tea.KeyMsg{Type: tea.KeyUp})
	if s.Current().A != 1.1 || m.inputs[0].Value() != "1.1" {
		t.Fatalf("nudge: %+v %q", s.Current(), m.inputs[0].Value())
	}
	press(m, tea.KeyMsg{Type: tea.KeyCtrlZ})
	if s.Current().A != 1 || m.inputs[0].Value() != "1" {
		t.Fatalf("undo: %+v %q", s.Current(), m.inputs[0].Value())
	}
	press(m, tea.KeyMsg{Type: tea.KeyCtrlZ})
	if s.Current().A != 1 {
		t.Fatal("undo past oldest moved state")
	}
	press(m, tea.KeyMsg{Type: tea.KeyCtrlY})
	if s.Current().A != 1.1 || s.HistoryLen() != 2 {
		t.Fatalf("redo: %+v len %d", s.Current(), s.HistoryLen())
	}
}

func TestPresetKeys(t *testing.T) {
	m, s := newModel(t, nil)
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}, Alt: true})
	if s.Current() != (quad.Triple{A: 1, B: -4, C: 4}) {
		t.Fatalf("preset 1: %+v", s.Current())
	}
	if !strings.Contains(s.Display().Solutions, "One solution") {
		t.Fatalf("solutions %q", s.Display().Solutions)
	}
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'9'}, Alt: true})
	if s.Current() != (quad.Triple{A: 1, B: -4, C: 4}) || !strings.Contains(m.status, "No preset") {
		t.Fatalf("missing preset changed state: %+v %q", s.Current(), m.status)
	}
	press(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if s.Current() != (quad.Triple{A: 1, B: -5, C: 6}) {
		t.Fatalf("reset %+v", s.Current())
	}
}

func TestShareLabelReverts(t *testing.T) {
	clip := &memClipboard{}
	m, _ := newModel(t, clip)
	cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("no share command")
	}
	done := cmd()
	if clip.text != "https://example.test/?a=1&b=-5&c=6" {
		t.Fatalf("clipboard %q", clip.text)
	}
	if tick := press(m, done); tick == nil {
		t.Fatal("no reset timer")
	}
	if m.shareLabel != "✓" {
		t.Fatalf("label %q", m.shareLabel)
	}
	// a stale timer from an earlier share does nothing
	press(m, done)
	press(m, shareResetMsg{seq: 1})
	if m.shareLabel != "✓" {
		t.Fatalf("stale reset changed label: %q", m.shareLabel)
	}
	press(m, shareResetMsg{seq: 2})
	if m.shareLabel != "🔗" {
		t.Fatalf("label not reverted: %q", m.shareLabel)
	}
}

func TestShareFailureKeepsLabel(t *testing.T) {
	m, _ := newModel(t, &memClipboard{err: errors.New("no display")})
	cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if next := press(m, cmd()); next != nil {
		t.Fatal("failure should not start a timer")
	}
	if m.shareLabel != "🔗" || !strings.Contains(m.status, "Could not copy") {
		t.Fatalf("label %q status %q", m.shareLabel, m.status)
	}
}

func TestExportAndDarkMode(t *testing.T) {
	m, s := newModel(t, nil)
	press(m, tea.KeyMsg{Type: tea.KeyCtrlD})
	if !s.Dark() || !strings.Contains(m.View(), "☀️") {
		t.Fatal("dark mode not toggled")
	}
	press(m, tea.KeyMsg{Type: tea.KeyCtrlE})
	path := filepath.Join(m.exportDir, "parabola.png")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("export: %v (status %q)", err, m.status)
	}
}

func TestZeroAView(t *testing.T) {
	m, s := newModel(t, nil)
	press(m, tea.KeyMsg{Type: tea.KeyBackspace}, runes("0"))
	if !s.Display().Cleared {
		t.Fatalf("display %+v", s.Display())
	}
	view := m.View()
	if !strings.Contains(view, "Parameter 'a' cannot be zero.") || strings.Contains(view, "Vertex:") {
		t.Fatalf("view:\n%s", view)
	}
	press(m, tea.KeyMsg{Type: tea.KeyCtrlE})
	if !strings.Contains(m.status, "Export failed") {
		t.Fatalf("status %q", m.status)
	}
}

func TestProbeTooltip(t *testing.T) {
	m, _ := newModel(t, nil)
	// vertex x = 2.5 is not on the 0.2 grid; nearest sample is x = 2.4 or 2.6
	tip := m.tooltip()
	if !strings.HasPrefix(tip, "x = 2.") || !strings.Contains(tip, "y = -0.2") {
		t.Fatalf("tooltip %q", tip)
	}
	for i := 0; i < 1000; i++ {
		press(m, runes("["))
	}
	if tip := m.tooltip(); !strings.HasPrefix(tip, "x = -15.00") {
		t.Fatalf("tooltip at left edge %q", tip)
	}
}

func TestQuitKeys(t *testing.T) {
	m, _ := newModel(t, nil)
	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		cmd := press(m, tea.KeyMsg{Type: k})
		if cmd == nil {
			t.Fatalf("%v: no command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%v: not quit", k)
		}
	}
}
