package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xtding233/parabola/internal/quad"
)

var (
	ErrIncomplete    = errors.New("config is missing required fields")
	ErrInvalidPreset = errors.New(`preset must be "a,b,c" with three finite numbers`)
)

// ParsePreset turns the literal "a,b,c" token of a preset into a triple.
func ParsePreset(token string) (quad.Triple, error) {
	parts := strings.Split(token, ",")
	if len(parts) != 3 {
		return quad.Triple{}, ErrInvalidPreset
	}
	var vs [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return quad.Triple{}, ErrInvalidPreset
		}
		vs[i] = v
	}
	return quad.Triple{A: vs[0], B: vs[1], C: vs[2]}, nil
}

// Normalize converts a merged RawConfig into the Config the rest of the
// program reads. Fields the fallback always provides are required here.
func Normalize(raw RawConfig) (Config, error) {
	dv := raw.App.DefaultValues
	xr := raw.Chart.XRange
	opts := raw.Chart.Options
	if dv == nil || dv.A == nil || dv.B == nil || dv.C == nil ||
		xr == nil || xr.Min == nil || xr.Max == nil || xr.Step == nil ||
		opts.BorderWidth == nil || opts.PointRadius.Vertex == nil ||
		opts.PointRadius.Solutions == nil || opts.MaxTicks == nil ||
		opts.Size == nil || opts.Size.MinWidth == nil || opts.Size.Aspect == nil ||
		opts.Size.MinHeight == nil || opts.Size.MaxHeight == nil {
		return Config{}, ErrIncomplete
	}

	cfg := Config{
		Defaults:   quad.Triple{A: *dv.A, B: *dv.B, C: *dv.C},
		BaseURL:    raw.App.BaseURL,
		ExportFile: raw.App.ExportFile,
		Domain:     quad.Domain{Min: *xr.Min, Max: *xr.Max, Step: *xr.Step},
		Palette: Palette{
			Parabola:  raw.Chart.Colors.Parabola,
			Vertex:    raw.Chart.Colors.Vertex,
			Solutions: raw.Chart.Colors.Solutions,
			Grid:      raw.Chart.Colors.Grid,
		},
		Style: ChartStyle{
			BorderWidth:     *opts.BorderWidth,
			VertexRadius:    *opts.PointRadius.Vertex,
			SolutionsRadius: *opts.PointRadius.Solutions,
			MaxTicks:        *opts.MaxTicks,
			Size: Size{
				MinWidth:  *opts.Size.MinWidth,
				Aspect:    *opts.Size.Aspect,
				MinHeight: *opts.Size.MinHeight,
				MaxHeight: *opts.Size.MaxHeight,
			},
		},
		Messages: Messages{
			ZeroParameter: raw.UI.Messages.ZeroParameter,
			NoSolutions:   raw.UI.Messages.NoSolutions,
		},
		Buttons: Buttons{
			DarkMode:       raw.UI.Buttons.DarkMode,
			DarkModeActive: raw.UI.Buttons.DarkModeActive,
			Share:          raw.UI.Buttons.Share,
			ShareSuccess:   raw.UI.Buttons.ShareSuccess,
		},
		Version: raw.Version,
	}

	for i, s := range []*SliderConfig{raw.Parameters.A, raw.Parameters.B, raw.Parameters.C} {
		if s == nil || s.Min == nil || s.Max == nil || s.Step == nil {
			return Config{}, fmt.Errorf("%w: parameters.%c", ErrIncomplete, 'a'+i)
		}
		cfg.Sliders[i] = Slider{Min: *s.Min, Max: *s.Max, Step: *s.Step, Color: s.Color}
	}

	for _, p := range raw.Presets {
		t, err := ParsePreset(p.Value)
		if err != nil {
			return Config{}, fmt.Errorf("preset %q: %w", p.Name, err)
		}
		cfg.Presets = append(cfg.Presets, Preset{Name: p.Name, Token: p.Value, Triple: t})
	}
	return cfg, nil
}
