package config

func f64(v float64) *float64 { return &v }
func intp(v int) *int         { return &v }

// FallbackRaw is the built-in document every loaded config is merged over.
// It is also what the visualizer runs with when no source can be loaded.
func FallbackRaw() RawConfig {
	return RawConfig{
		Version: "builtin",
		App: AppConfig{
			DefaultValues: &TripleConfig{A: f64(1), B: f64(-5), C: f64(6)},
			BaseURL:       "http://localhost/",
			ExportFile:    "parabola.png",
		},
		Parameters: ParametersConfig{
			A: &SliderConfig{Min: f64(-5), Max: f64(5), Step: f64(0.1), Color: "#ef4444"},
			B: &SliderConfig{Min: f64(-10), Max: f64(10), Step: f64(0.1), Color: "#22c55e"},
			C: &SliderConfig{Min: f64(-10), Max: f64(10), Step: f64(0.1), Color: "#3b82f6"},
		},
		Chart: ChartConfig{
			XRange: &RangeConfig{Min: f64(-15), Max: f64(15), Step: f64(0.2)},
			Colors: ColorsConfig{
				Parabola:  "#3b82f6",
				Vertex:    "#8b5cf6",
				Solutions: "#ef4444",
				Grid:      "#e5e7eb",
			},
			Options: OptionsConfig{
				BorderWidth: f64(3),
				PointRadius: PointRadiusConfig{Vertex: f64(8), Solutions: f64(6)},
				MaxTicks:    intp(15),
				Size:        &SizeConfig{MinWidth: intp(800), Aspect: f64(0.33), MinHeight: intp(280), MaxHeight: intp(520)},
			},
		},
		UI: UIConfig{
			Messages: MessagesConfig{
				ZeroParameter: "Parameter 'a' cannot be zero.",
				NoSolutions:   "No real solutions",
			},
			Buttons: ButtonsConfig{
				DarkMode:       "🌙",
				DarkModeActive: "☀️",
				Share:          "🔗",
				ShareSuccess:   "✓",
			},
		},
	}
}

// Fallback returns the normalized built-in configuration.
func Fallback() Config {
	cfg, _ := Normalize(FallbackRaw())
	return cfg
}
