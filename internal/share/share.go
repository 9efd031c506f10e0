// Package share turns a triple into a shareable link and back, and puts
// links on the system clipboard.
package share

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/xtding233/parabola/internal/config"
	"github.com/xtding233/parabola/internal/quad"
)

var ErrNotANumber = errors.New("not a finite number")

// ParseNumber parses user-entered decimal text. Empty, non-numeric and
// non-finite ("NaN", "Inf") text is rejected.
func ParseNumber(text string) (float64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, ErrNotANumber
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotANumber
	}
	return v, nil
}

// Encode appends a, b and c to base, replacing any query or fragment it had.
// Values use the shortest decimal form that parses back to the same float.
func Encode(base string, t quad.Triple) (string, error) {
	if err := quad.Validate(t); err != nil {
		return "", err
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	q := url.Values{}
	q.Set("a", strconv.FormatFloat(t.A, 'f', -1, 64))
	q.Set("b", strconv.FormatFloat(t.B, 'f', -1, 64))
	q.Set("c", strconv.FormatFloat(t.C, 'f', -1, 64))
	u.RawQuery = q.Encode()
	u.Fragment = ""
	return u.String(), nil
}

// Overrides reads a, b and c from a link's query. Keys that are missing or
// not numbers stay nil, so the result is only Complete when all three parsed.
func Overrides(rawURL string) config.Overrides {
	var o config.Overrides
	u, err := url.Parse(rawURL)
	if err != nil {
		return o
	}
	q := u.Query()
	get := func(k string) *float64 {
		if !q.Has(k) {
			return nil
		}
		v, err := ParseNumber(q.Get(k))
		if err != nil {
			return nil
		}
		return &v
	}
	o.A, o.B, o.C = get("a"), get("b"), get("c")
	return o
}

// Decode returns the triple in rawURL when all three keys parse.
func Decode(rawURL string) (quad.Triple, bool) {
	o := Overrides(rawURL)
	if !o.Complete() {
		return quad.Triple{}, false
	}
	return o.Triple(), true
}
