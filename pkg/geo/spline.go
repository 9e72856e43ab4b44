package geo

import "math"

// QuadraticPoint evaluates the quadratic Bezier curve p0 -> p2 with control p1
// at t in [0,1].
func QuadraticPoint(p0, p1, p2 Point, t float64) Point {
	u := 1 - t
	return Point{
		X: u*u*p0.X + 2*u*t*p1.X + t*t*p2.X,
		Y: u*u*p0.Y + 2*u*t*p1.Y + t*t*p2.Y,
	}
}

// SmoothCorner returns samples along the quadratic curve that runs from the
// midpoint of a-b to the midpoint of b-c with b as control. Consecutive calls
// over a sliding window of three input points yield a continuous curve that
// never passes exactly through the noisy middle sample.
//
// The first sample (t=0) is omitted so chained windows do not repeat points.
func SmoothCorner(a, b, c Point, samples int) []Point {
	if samples < 1 {
		samples = 1
	}
	start := MidPoint(a, b)
	end := MidPoint(b, c)
	pts := make([]Point, 0, samples)
	for i := 1; i <= samples; i++ {
		t := float64(i) / float64(samples)
		pts = append(pts, QuadraticPoint(start, b, end, t))
	}
	return pts
}

// CurveLength approximates the arc length of the SmoothCorner curve.
func CurveLength(a, b, c Point) float64 {
	start := MidPoint(a, b)
	end := MidPoint(b, c)
	const n = 8
	total := 0.0
	prev := start
	for i := 1; i <= n; i++ {
		p := QuadraticPoint(start, b, end, float64(i)/n)
		total += prev.Distance(p)
		prev = p
	}
	return total
}

// SampleCount chooses how many samples to take along a curve of the given
// length so that consecutive samples are at most spacing apart, clamped to
// [1, limit].
func SampleCount(length, spacing float64, limit int) int {
	if spacing <= 0 {
		return 1
	}
	n := int(math.Ceil(length / spacing))
	if n < 1 {
		n = 1
	}
	if limit > 0 && n > limit {
		n = limit
	}
	return n
}
