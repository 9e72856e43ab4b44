package geo

import (
	"math"
	"testing"
)

const tolerance = 0.01

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

// --- Point tests ---

func TestPointDistance(t *testing.T) {
	a := Pt(0, 0)
	b := Pt(3, 4)
	if !approxEqual(a.Distance(b), 5.0, tolerance) {
		t.Errorf("expected distance 5.0, got %f", a.Distance(b))
	}
	if !approxEqual(a.DistanceSq(b), 25.0, tolerance) {
		t.Errorf("expected squared distance 25.0, got %f", a.DistanceSq(b))
	}
}

func TestPointNormalize(t *testing.T) {
	p := Pt(3, 4)
	n := p.Normalize()
	if !approxEqual(n.Length(), 1.0, tolerance) {
		t.Errorf("expected unit length, got %f", n.Length())
	}
	if z := (Point{}).Normalize(); z != (Point{}) {
		t.Errorf("expected zero vector, got %v", z)
	}
}

func TestPointPerpIsOrthogonal(t *testing.T) {
	p := Pt(2, 7)
	if !approxEqual(p.Dot(p.Perp()), 0, tolerance) {
		t.Errorf("perp not orthogonal: dot = %f", p.Dot(p.Perp()))
	}
}

func TestPointMoveToward(t *testing.T) {
	p, arrived := Pt(0, 0).MoveToward(Pt(10, 0), 3)
	if arrived || !approxEqual(p.X, 3, tolerance) {
		t.Errorf("expected (3,0) not arrived, got %v arrived=%v", p, arrived)
	}
	p, arrived = Pt(9, 0).MoveToward(Pt(10, 0), 3)
	if !arrived || p != Pt(10, 0) {
		t.Errorf("expected exact snap to (10,0), got %v arrived=%v", p, arrived)
	}
}

func TestRectEdgeDistance(t *testing.T) {
	r := Rect{Width: 100, Height: 50}
	if d := r.EdgeDistance(Pt(10, 25)); !approxEqual(d, 10, tolerance) {
		t.Errorf("expected 10, got %f", d)
	}
	if d := r.EdgeDistance(Pt(-5, 25)); d != 0 {
		t.Errorf("outside point should report 0, got %f", d)
	}
}

// --- Polygon tests ---

func TestPolygonAreaSquare(t *testing.T) {
	sq := NewPolygon(Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10))
	if !approxEqual(sq.Area(), 100, tolerance) {
		t.Errorf("expected area 100, got %f", sq.Area())
	}
}

func TestPolygonContains(t *testing.T) {
	sq := NewPolygon(Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10))
	if !sq.Contains(Pt(5, 5)) {
		t.Error("expected (5,5) inside square")
	}
	if sq.Contains(Pt(15, 5)) {
		t.Error("expected (15,5) outside square")
	}
	if sq.Contains(Pt(-1, 5)) {
		t.Error("expected (-1,5) outside square")
	}
}

func TestPolygonOverlaps(t *testing.T) {
	a := NewPolygon(Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10))
	b := NewPolygon(Pt(5, 5), Pt(15, 5), Pt(15, 15), Pt(5, 15))
	c := NewPolygon(Pt(20, 20), Pt(30, 20), Pt(30, 30))
	// Cross shape: no vertex of either inside the other, edges cross.
	h := NewPolygon(Pt(-5, 4), Pt(15, 4), Pt(15, 6), Pt(-5, 6))
	if !a.Overlaps(b) {
		t.Error("expected a and b to overlap")
	}
	if a.Overlaps(c) {
		t.Error("expected a and c disjoint")
	}
	v := NewPolygon(Pt(4, -5), Pt(6, -5), Pt(6, 15), Pt(4, 15))
	if !h.Overlaps(v) {
		t.Error("expected crossing bars to overlap")
	}
}

func TestPolygonCentroid(t *testing.T) {
	sq := NewPolygon(Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10))
	c := sq.Centroid()
	if !approxEqual(c.X, 5, tolerance) || !approxEqual(c.Y, 5, tolerance) {
		t.Errorf("expected centroid (5,5), got (%f,%f)", c.X, c.Y)
	}
}

func TestPolygonBoundingBox(t *testing.T) {
	sq := NewPolygon(Pt(-5, -3), Pt(10, 0), Pt(7, 12))
	mn, mx := sq.BoundingBox()
	if !approxEqual(mn.X, -5, tolerance) || !approxEqual(mn.Y, -3, tolerance) {
		t.Errorf("expected min (-5,-3), got (%f,%f)", mn.X, mn.Y)
	}
	if !approxEqual(mx.X, 10, tolerance) || !approxEqual(mx.Y, 12, tolerance) {
		t.Errorf("expected max (10,12), got (%f,%f)", mx.X, mx.Y)
	}
}

func TestRegularPolygonArea(t *testing.T) {
	poly := RegularPolygon(Pt(0, 0), 100, 128)
	expected := math.Pi * 100 * 100
	if math.Abs(poly.Area()-expected)/expected > 0.01 {
		t.Errorf("expected area ~%.0f, got %.0f", expected, poly.Area())
	}
	if RegularPolygon(Pt(0, 0), 1, 1).Len() != 3 {
		t.Error("expected segment count clamped to 3")
	}
}

func TestSegmentsCross(t *testing.T) {
	if !SegmentsCross(Pt(0, 0), Pt(10, 10), Pt(0, 10), Pt(10, 0)) {
		t.Error("expected diagonals to cross")
	}
	if SegmentsCross(Pt(0, 0), Pt(10, 0), Pt(0, 5), Pt(10, 5)) {
		t.Error("expected parallel segments not to cross")
	}
	if SegmentsCross(Pt(0, 0), Pt(10, 0), Pt(10, 0), Pt(10, 5)) {
		t.Error("expected touching endpoints not to cross")
	}
}

func TestPolygonOverlapsTouching(t *testing.T) {
	a := NewPolygon(Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10))
	side := NewPolygon(Pt(10, 0), Pt(20, 0), Pt(20, 10), Pt(10, 10))
	corner := NewPolygon(Pt(10, 10), Pt(20, 10), Pt(20, 20), Pt(10, 20))
	tip := NewPolygon(Pt(10, 5), Pt(20, 0), Pt(20, 10))
	if a.Overlaps(side) || side.Overlaps(a) {
		t.Error("expected squares sharing an edge not to overlap")
	}
	if a.Overlaps(corner) {
		t.Error("expected squares sharing a corner not to overlap")
	}
	if a.Overlaps(tip) || tip.Overlaps(a) {
		t.Error("expected a vertex resting on an edge not to overlap")
	}
	if !a.Overlaps(a) {
		t.Error("expected a polygon to overlap itself")
	}
	inner := NewPolygon(Pt(0, 0), Pt(5, 0), Pt(5, 5), Pt(0, 5))
	if !a.Overlaps(inner) || !inner.Overlaps(a) {
		t.Error("expected a nested square sharing a corner to overlap")
	}
}

func TestPolygonOnBoundary(t *testing.T) {
	sq := NewPolygon(Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10))
	if !sq.OnBoundary(Pt(10, 5)) || !sq.OnBoundary(Pt(0, 0)) {
		t.Error("expected edge and vertex points on the boundary")
	}
	if sq.OnBoundary(Pt(5, 5)) || sq.OnBoundary(Pt(11, 5)) {
		t.Error("expected interior and exterior points off the boundary")
	}
}

// --- Circle tests ---

func TestCircleContainsAndOverlaps(t *testing.T) {
	c := C(0, 0, 10)
	if !c.Contains(Pt(10, 0), 0) {
		t.Error("boundary point should be contained")
	}
	if c.Contains(Pt(12, 0), 0) {
		t.Error("(12,0) should be outside")
	}
	if !c.Contains(Pt(12, 0), 3) {
		t.Error("(12,0) should be inside with tolerance 3")
	}
	if c.Overlaps(C(20, 0, 10)) {
		t.Error("tangent circles must not overlap")
	}
	if !c.Overlaps(C(19, 0, 10)) {
		t.Error("expected overlap at distance 19")
	}
}

func TestSegmentCovered(t *testing.T) {
	circles := []Circle{C(0, 0, 10), C(15, 0, 10)}
	covered := func(p Point) bool { return AnyContains(circles, p, 0) }
	if !SegmentCovered(Pt(0, 0), Pt(15, 0), 10, covered) {
		t.Error("expected segment inside the union")
	}
	if SegmentCovered(Pt(0, 0), Pt(0, 30), 10, covered) {
		t.Error("expected segment leaving the union to fail")
	}
}

// --- Ray tests ---

func TestMarchStopsAtBlock(t *testing.T) {
	hit := March(Pt(0, 0), Pt(1, 0), 2, 100, func(p Point) bool { return p.X > 9 })
	if !hit.Blocked {
		t.Fatal("expected blocked hit")
	}
	if !approxEqual(hit.Distance, 8, tolerance) {
		t.Errorf("expected free distance 8, got %f", hit.Distance)
	}
}

func TestMarchRunsOut(t *testing.T) {
	hit := March(Pt(0, 0), Pt(0, 5), 2, 10, func(Point) bool { return false })
	if hit.Blocked {
		t.Error("expected unblocked march")
	}
	if !approxEqual(hit.Distance, 10, tolerance) || !approxEqual(hit.Point.Y, 10, tolerance) {
		t.Errorf("expected distance 10 at (0,10), got %f at %v", hit.Distance, hit.Point)
	}
}
