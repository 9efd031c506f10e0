package quad

import (
	"fmt"
	"math"
)

const NoRealSolutionsStep = "No real solutions (Δ < 0)"

// DerivationSteps returns the textual trace shown next to the chart. The
// branch follows len(roots), so it mirrors whatever Roots selected for delta.
func DerivationSteps(t Triple, delta float64, roots []float64) []string {
	steps := []string{
		fmt.Sprintf("Given: y = %sx² + %sx + %s", FormatNumber(t.A), FormatNumber(t.B), FormatNumber(t.C)),
		fmt.Sprintf("Discriminant: Δ = b² - 4ac = %s² - 4(%s)(%s) = %s",
			paren(t.B), FormatNumber(t.A), FormatNumber(t.C), Fixed2(delta)),
	}
	twoA := FormatNumber(2 * t.A)
	switch len(roots) {
	case 2:
		// each line shows its own branch of the formula; for a < 0 that puts the
		// larger root first, unlike the ascending Roots slice
		sq := math.Sqrt(delta)
		steps = append(steps,
			fmt.Sprintf("x₁ = (-%s - √%s) / %s = %s", paren(t.B), Fixed2(delta), twoA, Fixed2((-t.B-sq)/(2*t.A))),
			fmt.Sprintf("x₂ = (-%s + √%s) / %s = %s", paren(t.B), Fixed2(delta), twoA, Fixed2((-t.B+sq)/(2*t.A))),
		)
	case 1:
		steps = append(steps, fmt.Sprintf("x₀ = -%s / %s = %s", paren(t.B), twoA, Fixed2(roots[0])))
	default:
		steps = append(steps, NoRealSolutionsStep)
	}
	return steps
}
