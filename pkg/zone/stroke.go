package zone

import (
	"time"

	"github.com/ChicagoDave/townpaint/pkg/geo"
)

const (
	// fastStroke is the brush speed (units per millisecond) above which the
	// sample spacing is halved.
	fastStroke  = 1.0
	maxSamples  = 32
	minSpacing  = 1.0
	spacingFrac = 0.25
)

// Stroke smooths a sequence of raw brush positions into densely sampled
// points along quadratic curves through their midpoints. Callers feed each
// point it returns to Store.Paint or Store.Erase.
type Stroke struct {
	radius  float64
	pts     []geo.Point
	times   []time.Duration
	emitted int
}

// NewStroke starts a stroke with the given brush radius.
func NewStroke(radius float64) *Stroke {
	return &Stroke{radius: radius}
}

// Add records a brush sample at time at and returns the smoothed points
// that became final.
func (s *Stroke) Add(p geo.Point, at time.Duration) []geo.Point {
	s.pts = append(s.pts, p)
	s.times = append(s.times, at)
	s.emitted++

	n := len(s.pts)
	switch n {
	case 1:
		return []geo.Point{p}
	case 2:
		return s.line(s.pts[0], geo.MidPoint(s.pts[0], s.pts[1]))
	}

	a, b, c := s.pts[n-3], s.pts[n-2], s.pts[n-1]
	length := geo.CurveLength(a, b, c)
	spacing := s.spacing(b, c, s.times[n-2], s.times[n-1])
	out := geo.SmoothCorner(a, b, c, geo.SampleCount(length, spacing, maxSamples))

	s.pts = s.pts[n-2:]
	s.times = s.times[n-2:]
	return out
}

// End finishes the stroke, returning the tail from the last midpoint to the
// final sample.
func (s *Stroke) End() []geo.Point {
	n := len(s.pts)
	if n < 2 {
		return nil
	}
	last := s.pts[n-1]
	return s.line(geo.MidPoint(s.pts[n-2], last), last)
}

// Samples returns how many raw positions were added.
func (s *Stroke) Samples() int { return s.emitted }

func (s *Stroke) spacing(b, c geo.Point, tb, tc time.Duration) float64 {
	spacing := s.radius * spacingFrac
	if spacing < minSpacing {
		spacing = minSpacing
	}
	ms := float64(tc-tb) / float64(time.Millisecond)
	if ms > 0 && b.Distance(c)/ms > fastStroke {
		spacing /= 2
	}
	return spacing
}

// line samples a straight segment, excluding from.
func (s *Stroke) line(from, to geo.Point) []geo.Point {
	d := from.Distance(to)
	if d == 0 {
		return nil
	}
	spacing := s.radius * spacingFrac
	if spacing < minSpacing {
		spacing = minSpacing
	}
	n := geo.SampleCount(d, spacing, maxSamples)
	out := make([]geo.Point, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, from.Lerp(to, float64(i)/float64(n)))
	}
	return out
}
