package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// ErrLoad marks a configuration that could not be fetched, parsed or validated.
// Callers get the fallback config alongside it and are expected to carry on.
var ErrLoad = errors.New("config load failed")

const maxDocumentBytes = 1 << 20

// Paths resolves the base document and its optional local override.
type Paths struct {
	Source string // file path or http(s) URL, e.g. ./parabola.yaml
}

func (p Paths) IsRemote() bool {
	return strings.HasPrefix(p.Source, "http://") || strings.HasPrefix(p.Source, "https://")
}

func (p Paths) BasePath() string { return p.Source }

// LocalPath is the override next to a file source: parabola.yaml → parabola.local.yaml.
// Remote sources have no local override.
func (p Paths) LocalPath() string {
	if p.Source == "" || p.IsRemote() {
		return ""
	}
	ext := filepath.Ext(p.Source)
	return strings.TrimSuffix(p.Source, ext) + ".local" + ext
}

// Loader reads config documents and merges fallback → base → local.
type Loader struct {
	paths  Paths
	client *http.Client
}

// NewLoader creates a loader for the given source. A nil client means http.DefaultClient.
func NewLoader(source string, client *http.Client) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{paths: Paths{Source: source}, client: client}
}

// LoadMerged loads the base document (required) and the local override
// (optional) and merges both over the built-in fallback. It returns the merged
// RawConfig without validation.
func (l *Loader) LoadMerged(ctx context.Context) (RawConfig, error) {
	var base RawConfig
	var err error
	if l.paths.IsRemote() {
		base, err = l.fetchYAML(ctx, l.paths.BasePath())
	} else {
		base, err = readYAML(l.paths.BasePath(), true)
	}
	if err != nil {
		return RawConfig{}, fmt.Errorf("read %s: %w", l.paths.BasePath(), err)
	}

	var local RawConfig
	if lp := l.paths.LocalPath(); lp != "" {
		local, err = readYAML(lp, false)
		if err != nil {
			return RawConfig{}, fmt.Errorf("read %s: %w", lp, err)
		}
	}

	merged := FallbackRaw()
	merged = mergeRaw(merged, base)
	merged = mergeRaw(merged, local)
	return merged, nil
}

// Load resolves source into a normalized Config. Any failure returns the
// fallback Config together with an error wrapping ErrLoad. An empty source
// means "no document" and returns the fallback with no error.
func Load(ctx context.Context, source string, client *http.Client) (Config, error) {
	if source == "" {
		return Fallback(), nil
	}
	raw, err := NewLoader(source, client).LoadMerged(ctx)
	if err != nil {
		return Fallback(), fmt.Errorf("%w: %v", ErrLoad, err)
	}
	if err := ValidateRaw(raw); err != nil {
		return Fallback(), fmt.Errorf("%w: %v", ErrLoad, err)
	}
	cfg, err := Normalize(raw)
	if err != nil {
		return Fallback(), fmt.Errorf("%w: %v", ErrLoad, err)
	}
	return cfg, nil
}

// readYAML loads a YAML (or JSON) file into RawConfig. A missing file is an
// error only when required.
func readYAML(path string, required bool) (RawConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	return decode(b)
}

func (l *Loader) fetchYAML(ctx context.Context, url string) (RawConfig, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return RawConfig{}, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return RawConfig{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return RawConfig{}, fmt.Errorf("unexpected status %s", resp.Status)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return RawConfig{}, err
	}
	return decode(b)
}

// decode parses a document strictly: unknown keys are errors. Mapping keys
// written in camelCase (defaultValues, xRange, darkModeActive) are accepted
// as aliases of their snake_case names.
func decode(b []byte) (RawConfig, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return RawConfig{}, err
	}
	if len(doc.Content) == 0 {
		return RawConfig{}, nil
	}
	snakeKeys(&doc)
	folded, err := yaml.Marshal(&doc)
	if err != nil {
		return RawConfig{}, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(folded))
	dec.KnownFields(true)
	var cfg RawConfig
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return RawConfig{}, err
	}
	return cfg, nil
}

func snakeKeys(n *yaml.Node) {
	if n.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(n.Content); i += 2 {
			n.Content[i].Value = snakeCase(n.Content[i].Value)
		}
	}
	for _, c := range n.Content {
		snakeKeys(c)
	}
}

// snakeCase maps baseURL to base_url and darkModeActive to dark_mode_active.
func snakeCase(s string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range s {
		upper := unicode.IsUpper(r)
		if upper && prevLower {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
		prevLower = !upper && r != '_'
	}
	return b.String()
}

// mergeRaw performs a deep merge: 'b' overrides 'a' where set.
// Presets in 'b' replace the whole list.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}

	// app
	out.App.DefaultValues = mergeTriple(a.App.DefaultValues, b.App.DefaultValues)
	if b.App.BaseURL != "" {
		out.App.BaseURL = b.App.BaseURL
	}
	if b.App.ExportFile != "" {
		out.App.ExportFile = b.App.ExportFile
	}

	// presets
	if len(b.Presets) > 0 {
		out.Presets = append([]PresetConfig(nil), b.Presets...)
	}

	// parameters
	out.Parameters.A = mergeSlider(a.Parameters.A, b.Parameters.A)
	out.Parameters.B = mergeSlider(a.Parameters.B, b.Parameters.B)
	out.Parameters.C = mergeSlider(a.Parameters.C, b.Parameters.C)

	// chart
	switch {
	case a.Chart.XRange == nil && b.Chart.XRange != nil:
		c := *b.Chart.XRange
		out.Chart.XRange = &c
	case a.Chart.XRange != nil && b.Chart.XRange != nil:
		c := *a.Chart.XRange
		overrideF(&c.Min, b.Chart.XRange.Min)
		overrideF(&c.Max, b.Chart.XRange.Max)
		overrideF(&c.Step, b.Chart.XRange.Step)
		out.Chart.XRange = &c
	}
	overrideS(&out.Chart.Colors.Parabola, b.Chart.Colors.Parabola)
	overrideS(&out.Chart.Colors.Vertex, b.Chart.Colors.Vertex)
	overrideS(&out.Chart.Colors.Solutions, b.Chart.Colors.Solutions)
	overrideS(&out.Chart.Colors.Grid, b.Chart.Colors.Grid)
	overrideF(&out.Chart.Options.BorderWidth, b.Chart.Options.BorderWidth)
	overrideF(&out.Chart.Options.PointRadius.Vertex, b.Chart.Options.PointRadius.Vertex)
	overrideF(&out.Chart.Options.PointRadius.Solutions, b.Chart.Options.PointRadius.Solutions)
	if b.Chart.Options.MaxTicks != nil {
		out.Chart.Options.MaxTicks = b.Chart.Options.MaxTicks
	}
	out.Chart.Options.Size = mergeSize(a.Chart.Options.Size, b.Chart.Options.Size)

	// ui
	overrideS(&out.UI.Messages.ZeroParameter, b.UI.Messages.ZeroParameter)
	overrideS(&out.UI.Messages.NoSolutions, b.UI.Messages.NoSolutions)
	overrideS(&out.UI.Buttons.DarkMode, b.UI.Buttons.DarkMode)
	overrideS(&out.UI.Buttons.DarkModeActive, b.UI.Buttons.DarkModeActive)
	overrideS(&out.UI.Buttons.Share, b.UI.Buttons.Share)
	overrideS(&out.UI.Buttons.ShareSuccess, b.UI.Buttons.ShareSuccess)

	return out
}

func mergeTriple(a, b *TripleConfig) *TripleConfig {
	switch {
	case b == nil:
		return a
	case a == nil:
		c := *b
		return &c
	}
	c := *a
	overrideF(&c.A, b.A)
	overrideF(&c.B, b.B)
	overrideF(&c.C, b.C)
	return &c
}

func mergeSlider(a, b *SliderConfig) *SliderConfig {
	switch {
	case b == nil:
		return a
	case a == nil:
		c := *b
		return &c
	}
	c := *a
	overrideF(&c.Min, b.Min)
	overrideF(&c.Max, b.Max)
	overrideF(&c.Step, b.Step)
	overrideS(&c.Color, b.Color)
	return &c
}

func mergeSize(a, b *SizeConfig) *SizeConfig {
	switch {
	case b == nil:
		return a
	case a == nil:
		c := *b
		return &c
	}
	c := *a
	overrideI(&c.MinWidth, b.MinWidth)
	overrideF(&c.Aspect, b.Aspect)
	overrideI(&c.MinHeight, b.MinHeight)
	overrideI(&c.MaxHeight, b.MaxHeight)
	return &c
}

func overrideI(dst **int, v *int) {
	if v != nil {
		*dst = v
	}
}

func overrideF(dst **float64, v *float64) {
	if v != nil {
		*dst = v
	}
}

func overrideS(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
