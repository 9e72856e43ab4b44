package zone

import "github.com/ChicagoDave/townpaint/pkg/geo"

// PaintResult describes what a single paint operation changed.
type PaintResult struct {
	// Zone is the zone that received the circle. Zero when Rejected.
	Zone ID `json:"zone"`
	// Created is set when no existing zone was close enough to merge with.
	Created bool `json:"created"`
	// Absorbed lists zones unioned into Zone and discarded.
	Absorbed []ID `json:"absorbed,omitempty"`
	// Trimmed lists residential zones that lost circles to a road stroke.
	Trimmed []ID `json:"trimmed,omitempty"`
	// Removed lists residential zones deleted because a road stroke took all
	// of their circles.
	Removed []ID `json:"removed,omitempty"`
	// Rejected is set when residential paint would overlap a road.
	Rejected bool `json:"rejected"`
}

// EraseResult describes what a single erase operation changed.
type EraseResult struct {
	Changed []ID `json:"changed,omitempty"`
	Removed []ID `json:"removed,omitempty"`
}

// Store owns the residential and road zone collections. Each collection is
// kept in creation order; merges always keep the lowest-index match.
type Store struct {
	mergeFactor float64
	residential []*Zone
	roads       []*Zone
	nextID      ID
}

// NewStore creates an empty store. Strokes join existing zones whose circle
// centers lie within radius*mergeFactor of the stroke point.
func NewStore(mergeFactor float64) *Store {
	return &Store{mergeFactor: mergeFactor, nextID: 1}
}

func (s *Store) list(kind Kind) *[]*Zone {
	if kind == Road {
		return &s.roads
	}
	return &s.residential
}

// Zones returns the zones of one kind in store order. The slice must not be
// modified.
func (s *Store) Zones(kind Kind) []*Zone {
	return *s.list(kind)
}

// Residential returns the residential zones in store order.
func (s *Store) Residential() []*Zone { return s.residential }

// Roads returns the road zones in store order.
func (s *Store) Roads() []*Zone { return s.roads }

// Get returns the zone with the given ID, or nil.
func (s *Store) Get(id ID) *Zone {
	for _, z := range s.residential {
		if z.ID == id {
			return z
		}
	}
	for _, z := range s.roads {
		if z.ID == id {
			return z
		}
	}
	return nil
}

// Len returns the total number of zones.
func (s *Store) Len() int {
	return len(s.residential) + len(s.roads)
}

// OnRoad reports whether p lies inside any road circle.
func (s *Store) OnRoad(p geo.Point) bool {
	for _, z := range s.roads {
		if z.Contains(p, 0) {
			return true
		}
	}
	return false
}

// RoadCircles returns every road circle across all road zones.
func (s *Store) RoadCircles() []geo.Circle {
	var out []geo.Circle
	for _, z := range s.roads {
		out = append(out, z.Circles...)
	}
	return out
}

// ResidentialAt returns the first residential zone containing p, or nil.
func (s *Store) ResidentialAt(p geo.Point) *Zone {
	for _, z := range s.residential {
		if z.Contains(p, 0) {
			return z
		}
	}
	return nil
}

// Paint adds a circle of the given kind at (x, y).
//
// Residential paint overlapping any road circle is rejected. Road paint
// first removes every residential circle it overlaps. The circle then joins
// the first same-kind zone within merge distance, absorbing any further
// matches, or starts a new zone.
func (s *Store) Paint(kind Kind, x, y, radius float64) PaintResult {
	c := geo.C(x, y, radius)
	var res PaintResult

	if kind == Residential {
		for _, road := range s.roads {
			for _, rc := range road.Circles {
				if rc.Overlaps(c) {
					res.Rejected = true
					return res
				}
			}
		}
	} else {
		res.Trimmed, res.Removed = s.clearResidential(c)
	}

	list := s.list(kind)
	p := c.Center()
	mergeDist := radius * s.mergeFactor

	var target *Zone
	kept := (*list)[:0]
	for _, z := range *list {
		if !z.Within(p, mergeDist) {
			kept = append(kept, z)
			continue
		}
		if target == nil {
			target = z
			kept = append(kept, z)
			continue
		}
		target.Circles = append(target.Circles, z.Circles...)
		res.Absorbed = append(res.Absorbed, z.ID)
	}
	clearTail(*list, len(kept))
	*list = kept

	if target == nil {
		target = &Zone{ID: s.nextID, Kind: kind}
		s.nextID++
		*list = append(*list, target)
		res.Created = true
	}
	target.Circles = append(target.Circles, c)
	res.Zone = target.ID
	return res
}

// clearResidential drops residential circles overlapping c.
func (s *Store) clearResidential(c geo.Circle) (trimmed, removed []ID) {
	kept := s.residential[:0]
	for _, z := range s.residential {
		circles := z.Circles[:0]
		for _, rc := range z.Circles {
			if !rc.Overlaps(c) {
				circles = append(circles, rc)
			}
		}
		if len(circles) == len(z.Circles) {
			kept = append(kept, z)
			continue
		}
		z.Circles = circles
		if len(circles) == 0 {
			removed = append(removed, z.ID)
			continue
		}
		trimmed = append(trimmed, z.ID)
		kept = append(kept, z)
	}
	clearTail(s.residential, len(kept))
	s.residential = kept
	return trimmed, removed
}

// Erase removes every circle, of either kind, whose center lies within
// radius of (x, y). Zones left without circles are deleted.
func (s *Store) Erase(x, y, radius float64) EraseResult {
	var res EraseResult
	p := geo.Pt(x, y)
	r2 := radius * radius
	for _, list := range []*[]*Zone{&s.residential, &s.roads} {
		kept := (*list)[:0]
		for _, z := range *list {
			circles := z.Circles[:0]
			for _, c := range z.Circles {
				if c.Center().DistanceSq(p) > r2 {
					circles = append(circles, c)
				}
			}
			if len(circles) == len(z.Circles) {
				kept = append(kept, z)
				continue
			}
			z.Circles = circles
			if len(circles) == 0 {
				res.Removed = append(res.Removed, z.ID)
				continue
			}
			res.Changed = append(res.Changed, z.ID)
			kept = append(kept, z)
		}
		clearTail(*list, len(kept))
		*list = kept
	}
	return res
}

// clearTail nils out the entries past n so filtered-away zones are not
// retained by the backing array.
func clearTail(zs []*Zone, n int) {
	for i := n; i < len(zs); i++ {
		zs[i] = nil
	}
}
