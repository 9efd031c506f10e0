package config

import (
	"fmt"
	"math"
	"strings"
)

func bad(v *float64) bool {
	return v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0))
}

// ValidateRaw checks semantic constraints of a RawConfig.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	// app.default_values
	if dv := cfg.App.DefaultValues; dv != nil {
		if bad(dv.A) || bad(dv.B) || bad(dv.C) {
			errs = append(errs, "app.default_values must be finite numbers")
		}
	}

	// parameters
	for i, s := range []*SliderConfig{cfg.Parameters.A, cfg.Parameters.B, cfg.Parameters.C} {
		name := string(rune('a' + i))
		if s == nil {
			continue
		}
		if bad(s.Min) || bad(s.Max) || bad(s.Step) {
			errs = append(errs, fmt.Sprintf("parameters.%s bounds must be finite", name))
			continue
		}
		if s.Min != nil && s.Max != nil && *s.Min >= *s.Max {
			errs = append(errs, fmt.Sprintf("parameters.%s.min must be < max", name))
		}
		if s.Step != nil && *s.Step <= 0 {
			errs = append(errs, fmt.Sprintf("parameters.%s.step must be > 0", name))
		}
	}

	// chart.x_range
	if r := cfg.Chart.XRange; r != nil {
		switch {
		case bad(r.Min) || bad(r.Max) || bad(r.Step):
			errs = append(errs, "chart.x_range must be finite")
		default:
			if r.Min != nil && r.Max != nil && *r.Min >= *r.Max {
				errs = append(errs, "chart.x_range.min must be < max")
			}
			if r.Step != nil && *r.Step <= 0 {
				errs = append(errs, "chart.x_range.step must be > 0")
			}
		}
	}

	// chart.options
	if bw := cfg.Chart.Options.BorderWidth; bw != nil && *bw < 0 {
		errs = append(errs, "chart.options.border_width must be >= 0")
	}
	if mt := cfg.Chart.Options.MaxTicks; mt != nil && *mt < 2 {
		errs = append(errs, "chart.options.max_ticks must be >= 2")
	}

	if sz := cfg.Chart.Options.Size; sz != nil {
		if bad(sz.Aspect) || (sz.Aspect != nil && *sz.Aspect <= 0) {
			errs = append(errs, "chart.options.size.aspect must be > 0")
		}
		for _, f := range []struct {
			name string
			v    *int
		}{{"min_width", sz.MinWidth}, {"min_height", sz.MinHeight}, {"max_height", sz.MaxHeight}} {
			if f.v != nil && *f.v < 1 {
				errs = append(errs, fmt.Sprintf("chart.options.size.%s must be >= 1", f.name))
			}
		}
		if sz.MinHeight != nil && sz.MaxHeight != nil && *sz.MinHeight > *sz.MaxHeight {
			errs = append(errs, "chart.options.size.min_height must be <= max_height")
		}
	}

	// presets
	for i, p := range cfg.Presets {
		if _, err := ParsePreset(p.Value); err != nil {
			errs = append(errs, fmt.Sprintf("presets[%d] (%s): %v", i, p.Name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
