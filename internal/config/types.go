// types.go
package config

import "github.com/xtding233/parabola/internal/quad"

// Raw config loaded from YAML (or JSON); pointers distinguish "unset" from zero.
type RawConfig struct {
	Version    string           `yaml:"version"`
	App        AppConfig        `yaml:"app"`
	Presets    []PresetConfig   `yaml:"presets,omitempty"`
	Parameters ParametersConfig `yaml:"parameters"`
	Chart      ChartConfig      `yaml:"chart"`
	UI         UIConfig         `yaml:"ui"`
}

type AppConfig struct {
	DefaultValues *TripleConfig `yaml:"default_values,omitempty"`
	BaseURL       string        `yaml:"base_url,omitempty"`
	ExportFile    string        `yaml:"export_file,omitempty"`
}

type TripleConfig struct {
	A *float64 `yaml:"a"`
	B *float64 `yaml:"b"`
	C *float64 `yaml:"c"`
}

// PresetConfig is one named shortcut; Value is the literal "a,b,c" token.
type PresetConfig struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

type ParametersConfig struct {
	A *SliderConfig `yaml:"a,omitempty"`
	B *SliderConfig `yaml:"b,omitempty"`
	C *SliderConfig `yaml:"c,omitempty"`
}

type SliderConfig struct {
	Min   *float64 `yaml:"min"`
	Max   *float64 `yaml:"max"`
	Step  *float64 `yaml:"step"`
	Color string   `yaml:"color,omitempty"`
}

type ChartConfig struct {
	XRange  *RangeConfig  `yaml:"x_range,omitempty"`
	Colors  ColorsConfig  `yaml:"colors"`
	Options OptionsConfig `yaml:"options"`
}

type RangeConfig struct {
	Min  *float64 `yaml:"min"`
	Max  *float64 `yaml:"max"`
	Step *float64 `yaml:"step"`
}

type ColorsConfig struct {
	Parabola  string `yaml:"parabola,omitempty"`
	Vertex    string `yaml:"vertex,omitempty"`
	Solutions string `yaml:"solutions,omitempty"`
	Grid      string `yaml:"grid,omitempty"`
}

type OptionsConfig struct {
	BorderWidth *float64          `yaml:"border_width,omitempty"`
	PointRadius PointRadiusConfig `yaml:"point_radius"`
	MaxTicks    *int              `yaml:"max_ticks,omitempty"`
	Size        *SizeConfig       `yaml:"size,omitempty"`
}

// SizeConfig drives the exported chart size from a requested width.
type SizeConfig struct {
	MinWidth  *int     `yaml:"min_width"`
	Aspect    *float64 `yaml:"aspect"`
	MinHeight *int     `yaml:"min_height"`
	MaxHeight *int     `yaml:"max_height"`
}

type PointRadiusConfig struct {
	Vertex    *float64 `yaml:"vertex,omitempty"`
	Solutions *float64 `yaml:"solutions,omitempty"`
}

type UIConfig struct {
	Messages MessagesConfig `yaml:"messages"`
	Buttons  ButtonsConfig  `yaml:"buttons"`
}

type MessagesConfig struct {
	ZeroParameter string `yaml:"zero_parameter,omitempty"`
	NoSolutions   string `yaml:"no_solutions,omitempty"`
}

type ButtonsConfig struct {
	DarkMode       string `yaml:"dark_mode,omitempty"`
	DarkModeActive string `yaml:"dark_mode_active,omitempty"`
	Share          string `yaml:"share,omitempty"`
	ShareSuccess   string `yaml:"share_success,omitempty"`
}

// Normalized settings used by the session and the adapters. Read-only after load.
type Config struct {
	Defaults   quad.Triple
	BaseURL    string
	ExportFile string
	Presets    []Preset
	Sliders    [3]Slider // indexed a, b, c
	Domain     quad.Domain
	Palette    Palette
	Style      ChartStyle
	Messages   Messages
	Buttons    Buttons
	Version    string // effective config version for tracing
}

type Preset struct {
	Name   string
	Token  string
	Triple quad.Triple
}

type Slider struct {
	Min, Max, Step float64
	Color          string
}

type Palette struct {
	Parabola, Vertex, Solutions, Grid string
}

type ChartStyle struct {
	BorderWidth     float64
	VertexRadius    float64
	SolutionsRadius float64
	MaxTicks        int
	Size            Size
}

// Size: width is at least MinWidth, height is Aspect·width within [MinHeight, MaxHeight].
type Size struct {
	MinWidth  int
	Aspect    float64
	MinHeight int
	MaxHeight int
}

type Messages struct {
	ZeroParameter string
	NoSolutions   string
}

type Buttons struct {
	DarkMode, DarkModeActive, Share, ShareSuccess string
}
