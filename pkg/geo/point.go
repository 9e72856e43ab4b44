package geo

import "math"

// Point is a position or vector on the painting plane. Y grows downward,
// matching the screen coordinates the brush input arrives in.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is a shorthand constructor for Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Scale returns p * s.
func (p Point) Scale(s float64) Point {
	return Point{p.X * s, p.Y * s}
}

// Length returns the Euclidean length of the vector.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Normalize returns the unit vector in the same direction.
// Returns zero vector if length is zero.
func (p Point) Normalize() Point {
	l := p.Length()
	if l < 1e-12 {
		return Point{}
	}
	return Point{p.X / l, p.Y / l}
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the 2D cross product (z-component of 3D cross).
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Distance returns the Euclidean distance from p to q.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// DistanceSq returns the squared distance from p to q.
func (p Point) DistanceSq(q Point) float64 {
	dx, dy := p.X-q.X, p.Y-q.Y
	return dx*dx + dy*dy
}

// Lerp returns the linear interpolation between p and q at t in [0,1].
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Perp returns a vector perpendicular to p (rotated 90 degrees counterclockwise).
func (p Point) Perp() Point {
	return Point{-p.Y, p.X}
}

// Direction returns the unit vector pointing from p toward q.
func (p Point) Direction(q Point) Point {
	return q.Sub(p).Normalize()
}

// MoveToward steps from p toward target by at most step. The second result
// reports whether the target was reached (in which case it is returned exactly).
func (p Point) MoveToward(target Point, step float64) (Point, bool) {
	d := p.Distance(target)
	if d <= step {
		return target, true
	}
	return p.Add(target.Sub(p).Scale(step / d)), false
}

// MidPoint returns the midpoint between p and q.
func MidPoint(p, q Point) Point {
	return p.Lerp(q, 0.5)
}

// Rect is an axis-aligned rectangle anchored at the origin, used for the world extent.
type Rect struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains reports whether p lies inside the rectangle (edges inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= r.Width && p.Y <= r.Height
}

// EdgeDistance returns the distance from p to the nearest rectangle edge.
// Points outside the rectangle report 0.
func (r Rect) EdgeDistance(p Point) float64 {
	if !r.Contains(p) {
		return 0
	}
	return math.Min(math.Min(p.X, r.Width-p.X), math.Min(p.Y, r.Height-p.Y))
}
