package geo

import "testing"

func TestQuadraticPointEndpoints(t *testing.T) {
	p0, p1, p2 := Pt(0, 0), Pt(5, 10), Pt(10, 0)
	if got := QuadraticPoint(p0, p1, p2, 0); got != p0 {
		t.Errorf("t=0: expected %v, got %v", p0, got)
	}
	if got := QuadraticPoint(p0, p1, p2, 1); got != p2 {
		t.Errorf("t=1: expected %v, got %v", p2, got)
	}
	mid := QuadraticPoint(p0, p1, p2, 0.5)
	if !approxEqual(mid.X, 5, tolerance) || !approxEqual(mid.Y, 5, tolerance) {
		t.Errorf("t=0.5: expected (5,5), got %v", mid)
	}
}

func TestSmoothCornerEndsAtMidpoint(t *testing.T) {
	a, b, c := Pt(0, 0), Pt(10, 0), Pt(10, 10)
	pts := SmoothCorner(a, b, c, 6)
	if len(pts) != 6 {
		t.Fatalf("expected 6 samples, got %d", len(pts))
	}
	last := pts[len(pts)-1]
	if !approxEqual(last.X, 10, tolerance) || !approxEqual(last.Y, 5, tolerance) {
		t.Errorf("expected last sample at midpoint (10,5), got %v", last)
	}
}

func TestSmoothCornerStraightLine(t *testing.T) {
	pts := SmoothCorner(Pt(0, 0), Pt(10, 0), Pt(20, 0), 4)
	for _, p := range pts {
		if !approxEqual(p.Y, 0, tolerance) {
			t.Errorf("collinear input should stay on the line, got %v", p)
		}
	}
}

func TestCurveLengthStraight(t *testing.T) {
	l := CurveLength(Pt(0, 0), Pt(10, 0), Pt(20, 0))
	if !approxEqual(l, 10, tolerance) {
		t.Errorf("expected length 10 between midpoints, got %f", l)
	}
}

func TestSampleCount(t *testing.T) {
	if n := SampleCount(25, 10, 0); n != 3 {
		t.Errorf("expected 3, got %d", n)
	}
	if n := SampleCount(1000, 1, 16); n != 16 {
		t.Errorf("expected clamp to 16, got %d", n)
	}
	if n := SampleCount(0, 10, 16); n != 1 {
		t.Errorf("expected at least 1, got %d", n)
	}
}
