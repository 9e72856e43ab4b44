// Package zone holds the painted residential and road zones. A zone is the
// union of the circles its strokes laid down.
package zone

import (
	"math"

	"github.com/ChicagoDave/townpaint/pkg/geo"
)

// Kind distinguishes residential zones from roads.
type Kind string

const (
	Residential Kind = "residential"
	Road        Kind = "road"
)

// ParseKind converts a brush name into a Kind.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case Residential, Road:
		return Kind(s), true
	}
	return "", false
}

// ID identifies a zone for its whole lifetime. Merged zones keep the ID of
// the survivor; IDs are never reused.
type ID int

// Zone is a union of circles of one kind.
type Zone struct {
	ID      ID           `json:"id"`
	Kind    Kind         `json:"kind"`
	Circles []geo.Circle `json:"circles"`
}

// Area returns the summed area of the zone's circles. Overlap between
// circles is counted twice; capacity is defined on this sum.
func (z *Zone) Area() float64 {
	total := 0.0
	for _, c := range z.Circles {
		total += c.Area()
	}
	return total
}

// Contains reports whether p lies inside any circle of the zone grown by
// tolerance.
func (z *Zone) Contains(p geo.Point, tolerance float64) bool {
	return geo.AnyContains(z.Circles, p, tolerance)
}

// EdgeDistance returns the distance from p to the nearest circle boundary of
// the zone, negative when p is inside that circle.
func (z *Zone) EdgeDistance(p geo.Point) float64 {
	best := math.Inf(1)
	for _, c := range z.Circles {
		if d := c.DistanceToEdge(p); d < best {
			best = d
		}
	}
	return best
}

// Within reports whether any circle center lies within dist of p.
func (z *Zone) Within(p geo.Point, dist float64) bool {
	d2 := dist * dist
	for _, c := range z.Circles {
		if c.Center().DistanceSq(p) <= d2 {
			return true
		}
	}
	return false
}
