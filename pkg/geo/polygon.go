package geo

import "math"

// Polygon is a closed polygon defined by its vertices in order.
type Polygon struct {
	Vertices []Point `json:"vertices"`
}

// NewPolygon creates a polygon from a list of vertices.
func NewPolygon(pts ...Point) Polygon {
	return Polygon{Vertices: pts}
}

// Len returns the number of vertices.
func (p Polygon) Len() int {
	return len(p.Vertices)
}

// IsEmpty returns true if the polygon has fewer than 3 vertices.
func (p Polygon) IsEmpty() bool {
	return len(p.Vertices) < 3
}

// Edge returns the i-th edge as (start, end). Wraps around.
func (p Polygon) Edge(i int) (Point, Point) {
	n := len(p.Vertices)
	return p.Vertices[i%n], p.Vertices[(i+1)%n]
}

// SignedArea returns the signed area using the shoelace formula.
func (p Polygon) SignedArea() float64 {
	n := len(p.Vertices)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += p.Vertices[i].X * p.Vertices[j].Y
		area -= p.Vertices[j].X * p.Vertices[i].Y
	}
	return area / 2
}

// Area returns the unsigned area of the polygon.
func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

// Centroid returns the vertex average of the polygon. Lots and territories
// are star-shaped around their anchor, so the average is sufficient.
func (p Polygon) Centroid() Point {
	n := len(p.Vertices)
	if n == 0 {
		return Point{}
	}
	sum := Point{}
	for _, v := range p.Vertices {
		sum = sum.Add(v)
	}
	return sum.Scale(1.0 / float64(n))
}

// BoundingBox returns the axis-aligned bounding box as (min, max).
func (p Polygon) BoundingBox() (Point, Point) {
	if len(p.Vertices) == 0 {
		return Point{}, Point{}
	}
	minP := p.Vertices[0]
	maxP := p.Vertices[0]
	for _, v := range p.Vertices[1:] {
		minP.X = math.Min(minP.X, v.X)
		minP.Y = math.Min(minP.Y, v.Y)
		maxP.X = math.Max(maxP.X, v.X)
		maxP.Y = math.Max(maxP.Y, v.Y)
	}
	return minP, maxP
}

// Contains returns true if the point is inside the polygon using ray casting.
func (p Polygon) Contains(pt Point) bool {
	n := len(p.Vertices)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi := p.Vertices[i]
		vj := p.Vertices[j]
		if (vi.Y > pt.Y) != (vj.Y > pt.Y) &&
			pt.X < (vj.X-vi.X)*(pt.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// Overlaps reports whether two polygons share area. Polygons that only
// touch along an edge or at a vertex do not overlap.
func (p Polygon) Overlaps(q Polygon) bool {
	if p.IsEmpty() || q.IsEmpty() {
		return false
	}
	pMin, pMax := p.BoundingBox()
	qMin, qMax := q.BoundingBox()
	if pMax.X < qMin.X || qMax.X < pMin.X || pMax.Y < qMin.Y || qMax.Y < pMin.Y {
		return false
	}
	for i := range p.Vertices {
		a1, a2 := p.Edge(i)
		for j := range q.Vertices {
			b1, b2 := q.Edge(j)
			if SegmentsCross(a1, a2, b1, b2) {
				return true
			}
		}
	}
	return p.interiorIn(q) || q.interiorIn(p)
}

// interiorIn reports whether a vertex, an edge midpoint or the centroid of p
// lies strictly inside q.
func (p Polygon) interiorIn(q Polygon) bool {
	inside := func(pt Point) bool { return q.Contains(pt) && !q.OnBoundary(pt) }
	for i, v := range p.Vertices {
		a, b := p.Edge(i)
		if inside(v) || inside(MidPoint(a, b)) {
			return true
		}
	}
	return inside(p.Centroid())
}

// OnBoundary reports whether pt lies on one of the polygon's edges.
func (p Polygon) OnBoundary(pt Point) bool {
	for i := range p.Vertices {
		a, b := p.Edge(i)
		if math.Abs(orientation(a, b, pt)) < 1e-9 && onSegment(a, b, pt) {
			return true
		}
	}
	return false
}

// RegularPolygon returns a polygon approximating a circle with the given
// center, radius, and number of segments. Vertices are in CCW order.
func RegularPolygon(center Point, radius float64, segments int) Polygon {
	if segments < 3 {
		segments = 3
	}
	pts := make([]Point, segments)
	for i := 0; i < segments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = Point{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
	}
	return Polygon{Vertices: pts}
}

// SegmentsCross reports whether segments p1-p2 and q1-q2 cross at a point
// interior to both. Touching endpoints and collinear overlap do not count.
func SegmentsCross(p1, p2, q1, q2 Point) bool {
	d1 := orientation(q1, q2, p1)
	d2 := orientation(q1, q2, p2)
	d3 := orientation(p1, p2, q1)
	d4 := orientation(p1, p2, q2)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func orientation(a, b, c Point) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// onSegment assumes c is collinear with a-b.
func onSegment(a, b, c Point) bool {
	return c.X >= math.Min(a.X, b.X) && c.X <= math.Max(a.X, b.X) &&
		c.Y >= math.Min(a.Y, b.Y) && c.Y <= math.Max(a.Y, b.Y)
}
