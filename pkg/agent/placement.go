package agent

import (
	"math"

	"github.com/ChicagoDave/townpaint/pkg/geo"
	"github.com/ChicagoDave/townpaint/pkg/roadnet"
	"github.com/ChicagoDave/townpaint/pkg/zone"
)

// spawn builds a fully specified agent for zone z: a reserved settle
// position, a spawn origin on the road network and a path between them.
// It fails only when no free settle position is found.
func (p *Population) spawn(g *roadnet.Graph, z *zone.Zone) (*Agent, bool) {
	target, ok := p.place(z)
	if !ok {
		return nil, false
	}
	origin := p.origin(g, z, target)

	a := &Agent{
		ID:     p.nextID,
		X:      origin.X,
		Y:      origin.Y,
		Phase:  TravelingToNode,
		Zone:   z.ID,
		Target: target,
		Speed:  p.cfg.Speed,
		Radius: p.cfg.Radius,
	}
	p.nextID++

	if g != nil {
		a.Path = g.Route(origin, target)
	}
	if len(a.Path) == 0 && p.conn != nil {
		a.Path = p.conn.PathToZone(p.store, origin, z)
		a.GridPath = len(a.Path) > 0
	}
	return a, true
}

// place draws candidate positions uniformly over the zone's circles (each
// circle weighted by its area) and returns the first that is on dry land,
// clear of every claim and at least MinSeparation from every reserved
// position.
func (p *Population) place(z *zone.Zone) (geo.Point, bool) {
	if len(z.Circles) == 0 {
		return geo.Point{}, false
	}
	total := z.Area()
	claims := p.claims(nil)
	sep2 := p.cfg.MinSeparation * p.cfg.MinSeparation

	for attempt := 0; attempt < p.cfg.PlacementAttempts; attempt++ {
		c := z.Circles[len(z.Circles)-1]
		pick := p.rng.Float64() * total
		for _, cc := range z.Circles {
			if pick < cc.Area() {
				c = cc
				break
			}
			pick -= cc.Area()
		}

		r := c.Radius * math.Sqrt(p.rng.Float64())
		theta := 2 * math.Pi * p.rng.Float64()
		pt := geo.Pt(c.X+r*math.Cos(theta), c.Y+r*math.Sin(theta))

		if !p.world.Contains(pt) || p.store.OnRoad(pt) {
			continue
		}
		free := true
		for _, cl := range claims {
			if cl.Position.DistanceSq(pt) < sep2 || cl.Covers(pt) {
				free = false
				break
			}
		}
		if free {
			return pt, true
		}
	}
	return geo.Point{}, false
}

// origin picks where a new agent enters the world: a random edge waypoint,
// else a random entry waypoint of the zone, else a random on-road point on
// the world boundary. With none of those the agent starts at its target.
func (p *Population) origin(g *roadnet.Graph, z *zone.Zone, target geo.Point) geo.Point {
	if g != nil {
		if ids := g.EdgePoints(); len(ids) > 0 {
			return g.Waypoint(ids[p.rng.IntN(len(ids))]).Point()
		}
		if ids := g.Entries(z.ID); len(ids) > 0 {
			return g.Waypoint(ids[p.rng.IntN(len(ids))]).Point()
		}
	}
	if p.conn != nil {
		if pts := p.conn.BoundaryPoints(p.store); len(pts) > 0 {
			return pts[p.rng.IntN(len(pts))]
		}
	}
	return target
}
