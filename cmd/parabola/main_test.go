package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestExplainDefaults(t *testing.T) {
	out, _, err := run(t, "explain", "--config", "")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"y = x² - 5x + 6",
		"Vertex: (2.50, -0.25)",
		"Axis of symmetry: x = 2.50",
		"Discriminant Δ = 1.00",
		"Two solutions: x₁ = 2.00, x₂ = 3.00",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in\n%s", want, out)
		}
	}
}

func TestExplainFromURLAndFlags(t *testing.T) {
	out, _, err := run(t, "explain", "--config", "", "--url", "https://x.test/?a=1&b=2&c=5")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Discriminant Δ = -16.00") || !strings.Contains(out, "No real solutions") {
		t.Fatalf("output:\n%s", out)
	}
	// a partial link is ignored; flags still apply on top of the defaults
	out, _, err = run(t, "explain", "--config", "", "--url", "https://x.test/?a=3", "--c", "4")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "y = x² - 5x + 4\n") {
		t.Fatalf("output:\n%s", out)
	}
}

func TestShareCommand(t *testing.T) {
	out, _, err := run(t, "share", "--config", "", "--a", "2", "--b", "-3", "--c", "1", "--base", "https://example.test/app/")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "https://example.test/app/?a=2&b=-3&c=1" {
		t.Fatalf("link %q", out)
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	outFile := filepath.Join(dir, "charts", "p.png")
	metrics := filepath.Join(dir, "metrics.prom")
	out, _, err := run(t, "render", "--config", "", "--out", outFile, "--width", "1000", "--dark", "--metrics-out", metrics)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != outFile {
		t.Fatalf("printed %q", out)
	}
	f, err := os.Open(outFile)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 1000 || img.Bounds().Dy() != 330 {
		t.Fatalf("bounds %v", img.Bounds())
	}
	body, err := os.ReadFile(metrics)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), "parabola_renders_total 1") {
		t.Fatalf("metrics:\n%s", body)
	}
}

func TestRenderDegenerateFails(t *testing.T) {
	dir := t.TempDir()
	_, _, err := run(t, "render", "--config", "", "--a", "0", "--out", filepath.Join(dir, "p.png"))
	if err == nil || !strings.Contains(err.Error(), "Parameter 'a' cannot be zero.") {
		t.Fatalf("err = %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "p.png")); !os.IsNotExist(statErr) {
		t.Fatalf("file left behind: %v", statErr)
	}
}

func TestConfigFileAndFallback(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "parabola.yaml")
	doc := "app:\n  default_values: {a: -1, b: 0, c: 4}\nui:\n  messages: {no_solutions: \"None\"}\n"
	if err := os.WriteFile(p, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err := run(t, "explain", "--config", p)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Two solutions: x₁ = -2.00, x₂ = 2.00") {
		t.Fatalf("output:\n%s", out)
	}

	out, errOut, err := run(t, "explain", "--config", filepath.Join(dir, "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "y = x² - 5x + 6") || !strings.Contains(errOut, "WARN") {
		t.Fatalf("fallback output:\n%s\nstderr:\n%s", out, errOut)
	}
}
