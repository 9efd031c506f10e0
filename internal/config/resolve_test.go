package config_test

import (
	"testing"

	"github.com/xtding233/parabola/internal/config"
	"github.com/xtding233/parabola/internal/quad"
)

func fp(v float64) *float64 { return &v }

func TestResolve(t *testing.T) {
	cfg := config.Fallback()

	if got := config.Resolve(cfg); got != cfg.Defaults {
		t.Fatalf("no overrides: %+v", got)
	}
	partial := config.Overrides{A: fp(3), B: fp(1)}
	if got := config.Resolve(cfg, partial); got != cfg.Defaults {
		t.Fatalf("partial override must be ignored: %+v", got)
	}
	full := config.Overrides{A: fp(2), B: fp(-3), C: fp(1)}
	flags := config.Overrides{A: fp(9), B: fp(9), C: fp(9)}
	if got := config.Resolve(cfg, partial, full, flags); got != (quad.Triple{A: 2, B: -3, C: 1}) {
		t.Fatalf("first complete override wins: %+v", got)
	}
}

func TestParsePreset(t *testing.T) {
	good := map[string]quad.Triple{
		"1,-5,6":        {A: 1, B: -5, C: 6},
		" -1 , 0 , 4 ":  {A: -1, B: 0, C: 4},
		"0.5,1e1,-0.25": {A: 0.5, B: 10, C: -0.25},
	}
	for in, want := range good {
		got, err := config.ParsePreset(in)
		if err != nil || got != want {
			t.Fatalf("%q: got %+v err=%v", in, got, err)
		}
	}
	for _, in := range []string{"", "1,2", "1,2,3,4", "a,b,c", "1,,3", "NaN,1,1", "1,Inf,1"} {
		if _, err := config.ParsePreset(in); err == nil {
			t.Fatalf("%q: want error", in)
		}
	}
}
