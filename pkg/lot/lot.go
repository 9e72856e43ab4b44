// Package lot computes the parcels settled agents claim: a quadrilateral lot
// facing the nearest road, and a ray-marched territory around the agent.
package lot

import (
	"math"

	"github.com/ChicagoDave/townpaint/pkg/config"
	"github.com/ChicagoDave/townpaint/pkg/geo"
	"github.com/ChicagoDave/townpaint/pkg/zone"
)

// Claim is the space another agent already holds.
type Claim struct {
	Position  geo.Point
	Lot       geo.Polygon
	Territory geo.Polygon
}

// Covers reports whether p lies inside the claim's lot or territory.
func (c Claim) Covers(p geo.Point) bool {
	return c.Lot.Contains(p) || c.Territory.Contains(p)
}

// Lot is a generated parcel.
type Lot struct {
	Polygon geo.Polygon `json:"polygon"`
	// Front is the center of the road-facing side.
	Front geo.Point `json:"front"`
	// RoadDir is the unit direction of the road the lot faces.
	RoadDir  geo.Point `json:"road_dir"`
	Depth    float64   `json:"depth"`
	Width    float64   `json:"width"`
	Fallback bool      `json:"fallback,omitempty"`
}

// Generator builds lots against the current zones.
type Generator struct {
	cfg   config.LotsDef
	store *zone.Store
}

// NewGenerator creates a lot generator.
func NewGenerator(cfg config.LotsDef, store *zone.Store) *Generator {
	return &Generator{cfg: cfg, store: store}
}

// Generate computes the lot for an agent settled at pos inside z. Without a
// road within the search radius it returns a regular polygon around pos.
func (g *Generator) Generate(z *zone.Zone, pos geo.Point, others []Claim) Lot {
	road, ok := g.nearestRoad(pos)
	if !ok || z == nil {
		return g.fallback(pos)
	}

	dir := g.roadDirection(road, pos)
	inward := dir.Perp()
	if inward.Dot(pos.Sub(road)) < 0 {
		inward = inward.Scale(-1)
	}
	front := pos.Sub(inward.Scale(g.cfg.FrontOffset))

	blocked := func(p geo.Point) bool {
		if !z.Contains(p, 0) {
			return true
		}
		return g.claimed(p, others)
	}

	depth := geo.March(front, inward, g.cfg.MarchStep, g.cfg.MaxDepth, blocked).Distance
	depth = clamp(depth, g.cfg.MinDepth, g.cfg.MaxDepth)

	half := g.cfg.MaxWidth / 2
	left := geo.March(front, dir, g.cfg.MarchStep, half, blocked).Distance
	right := geo.March(front, dir.Scale(-1), g.cfg.MarchStep, half, blocked).Distance
	width := clamp(left+right, g.cfg.MinWidth, g.cfg.MaxWidth)

	hw := width / 2
	f1 := front.Add(dir.Scale(hw))
	f2 := front.Sub(dir.Scale(hw))
	back := inward.Scale(depth)
	return Lot{
		Polygon: geo.NewPolygon(f1, f2, f2.Add(back), f1.Add(back)),
		Front:   front,
		RoadDir: dir,
		Depth:   depth,
		Width:   width,
	}
}

func (g *Generator) fallback(pos geo.Point) Lot {
	return Lot{
		Polygon:  geo.RegularPolygon(pos, g.cfg.FallbackRadius, g.cfg.FallbackSegments),
		Front:    pos,
		Fallback: true,
	}
}

// nearestRoad returns the road circle center closest to p within the
// search radius.
func (g *Generator) nearestRoad(p geo.Point) (geo.Point, bool) {
	best := geo.Point{}
	bestD := g.cfg.RoadSearchRadius * g.cfg.RoadSearchRadius
	found := false
	for _, c := range g.store.RoadCircles() {
		if d := c.Center().DistanceSq(p); d <= bestD {
			best, bestD, found = c.Center(), d, true
		}
	}
	return best, found
}

// roadDirection estimates the local road direction at a road sample from the
// offsets to its neighbors. Offsets are sign-aligned so samples on either
// side reinforce rather than cancel, and nearer samples weigh more. A lone
// sample yields the direction perpendicular to the line toward pos.
func (g *Generator) roadDirection(road, pos geo.Point) geo.Point {
	var sum, ref geo.Point
	r2 := g.cfg.DirectionSampleRadius * g.cfg.DirectionSampleRadius
	for _, c := range g.store.RoadCircles() {
		off := c.Center().Sub(road)
		d2 := off.Dot(off)
		if d2 < 1e-9 || d2 > r2 {
			continue
		}
		if ref == (geo.Point{}) {
			ref = off
		}
		if off.Dot(ref) < 0 {
			off = off.Scale(-1)
		}
		w := 1 / (1 + math.Sqrt(d2))
		sum = sum.Add(off.Normalize().Scale(w))
	}
	if dir := sum.Normalize(); dir != (geo.Point{}) {
		return dir
	}
	dir := road.Direction(pos).Perp()
	if dir == (geo.Point{}) {
		return geo.Pt(1, 0)
	}
	return dir
}

func (g *Generator) claimed(p geo.Point, others []Claim) bool {
	r2 := g.cfg.ClaimRadius * g.cfg.ClaimRadius
	for _, o := range others {
		if o.Position.DistanceSq(p) < r2 || o.Covers(p) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
