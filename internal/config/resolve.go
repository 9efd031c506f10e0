// resolve.go
package config

import "github.com/xtding233/parabola/internal/quad"

// Overrides carries startup overrides of the configured defaults, e.g. the
// a/b/c query of a shared URL or --a/--b/--c flags.
type Overrides struct {
	A *float64
	B *float64
	C *float64
}

// Complete reports whether all three coefficients were given.
func (o Overrides) Complete() bool {
	return o.A != nil && o.B != nil && o.C != nil
}

func (o Overrides) Triple() quad.Triple {
	return quad.Triple{A: *o.A, B: *o.B, C: *o.C}
}

// Resolve picks the triple a session starts from. The first complete set of
// overrides wins; partial overrides are ignored.
func Resolve(cfg Config, overrides ...Overrides) quad.Triple {
	for _, o := range overrides {
		if o.Complete() {
			return o.Triple()
		}
	}
	return cfg.Defaults
}
