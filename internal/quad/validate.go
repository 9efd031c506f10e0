package quad

import (
	"errors"
	"math"
)

var ErrNonFinite = errors.New("coefficient must be a finite number")

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Validate reports ErrNonFinite when any coefficient is NaN or infinite.
// a == 0 is allowed here; it is handled as a degenerate curve, not an invalid one.
func Validate(t Triple) error {
	if !finite(t.A) || !finite(t.B) || !finite(t.C) {
		return ErrNonFinite
	}
	return nil
}

// validateDomain returns false when sampling over d would not terminate.
func validateDomain(d Domain) bool {
	if !finite(d.Min) || !finite(d.Max) || !finite(d.Step) {
		return false
	}
	return d.Step > 0 && d.Min <= d.Max
}
