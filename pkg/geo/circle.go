package geo

import "math"

// Circle is a disc on the painting plane. Zones are unions of circles.
type Circle struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Radius float64 `json:"radius" yaml:"radius"`
}

// C is a shorthand constructor for Circle.
func C(x, y, radius float64) Circle {
	return Circle{X: x, Y: y, Radius: radius}
}

// Center returns the circle center.
func (c Circle) Center() Point {
	return Point{c.X, c.Y}
}

// Area returns the disc area.
func (c Circle) Area() float64 {
	return math.Pi * c.Radius * c.Radius
}

// Contains reports whether p lies inside the circle grown by tolerance.
func (c Circle) Contains(p Point, tolerance float64) bool {
	r := c.Radius + tolerance
	return c.Center().DistanceSq(p) <= r*r
}

// Overlaps reports whether two discs share area. Tangent discs do not overlap.
func (c Circle) Overlaps(o Circle) bool {
	r := c.Radius + o.Radius
	return c.Center().DistanceSq(o.Center()) < r*r
}

// DistanceToEdge returns the signed distance from p to the circle boundary;
// negative inside.
func (c Circle) DistanceToEdge(p Point) float64 {
	return c.Center().Distance(p) - c.Radius
}

// AnyContains reports whether any circle contains p (grown by tolerance).
func AnyContains(circles []Circle, p Point, tolerance float64) bool {
	for _, c := range circles {
		if c.Contains(p, tolerance) {
			return true
		}
	}
	return false
}

// SegmentCovered samples n evenly spaced points on a-b (endpoints included)
// and reports whether every sample satisfies covered.
func SegmentCovered(a, b Point, n int, covered func(Point) bool) bool {
	if n < 2 {
		n = 2
	}
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		if !covered(a.Lerp(b, t)) {
			return false
		}
	}
	return true
}
