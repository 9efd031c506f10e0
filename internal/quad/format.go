package quad

import (
	"math"
	"strconv"
	"strings"
)

// Fixed2 formats v with exactly two decimals. Display only; math keeps full precision.
func Fixed2(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if s == "-0.00" {
		return "0.00"
	}
	return s
}

// FormatNumber renders a coefficient in its shortest decimal form ("2", "-0.5").
func FormatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatEquation builds "y = ax² ± |b|x ± |c|", dropping zero b/c terms and a
// coefficient of exactly 1 (or just the sign for -1).
func FormatEquation(t Triple) string {
	var sb strings.Builder
	sb.WriteString("y = ")
	switch t.A {
	case 1:
	case -1:
		sb.WriteString("-")
	default:
		sb.WriteString(FormatNumber(t.A))
	}
	sb.WriteString("x²")
	if t.B != 0 {
		sb.WriteString(signed(t.B))
		sb.WriteString(FormatNumber(math.Abs(t.B)))
		sb.WriteString("x")
	}
	if t.C != 0 {
		sb.WriteString(signed(t.C))
		sb.WriteString(FormatNumber(math.Abs(t.C)))
	}
	return sb.String()
}

func signed(v float64) string {
	if v > 0 {
		return " + "
	}
	return " - "
}

// paren wraps negative numbers so substitutions read "(-5)²" rather than "-5²".
func paren(v float64) string {
	if v < 0 {
		return "(" + FormatNumber(v) + ")"
	}
	return FormatNumber(v)
}
