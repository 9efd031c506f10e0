package quad

// SampleCurve evaluates t from d.Min to d.Max by accumulating d.Step.
// Because x is accumulated rather than computed as Min+i*Step, the last sample
// lands on Max only when the float sum does; callers must not rely on it.
// An unusable domain (non-positive step, Min > Max, non-finite bounds) yields nil.
func SampleCurve(t Triple, d Domain) []Point {
	if !validateDomain(d) {
		return nil
	}
	n := int((d.Max-d.Min)/d.Step) + 1
	pts := make([]Point, 0, n+1)
	for x := d.Min; x <= d.Max; x += d.Step {
		pts = append(pts, Point{X: x, Y: Evaluate(t, x)})
	}
	return pts
}
