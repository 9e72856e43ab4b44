package lot

import (
	"math"

	"github.com/ChicagoDave/townpaint/pkg/config"
	"github.com/ChicagoDave/townpaint/pkg/geo"
	"github.com/ChicagoDave/townpaint/pkg/zone"
)

// StopReason says why a territory ray stopped.
type StopReason string

const (
	StopTerritory   StopReason = "territory"
	StopProximity   StopReason = "proximity"
	StopZoneEdge    StopReason = "zone_edge"
	StopRoad        StopReason = "road"
	StopWorld       StopReason = "world_boundary"
	StopMaxDistance StopReason = "max_distance"
)

// Ray is one cast of the territory march.
type Ray struct {
	Angle    float64    `json:"angle"`
	Distance float64    `json:"distance"`
	Reason   StopReason `json:"reason"`
}

// Territory is the space an agent claims around its settle position.
type Territory struct {
	Polygon geo.Polygon `json:"polygon"`
	Rays    []Ray       `json:"rays"`
}

// Surveyor casts territory rays against the current zones.
type Surveyor struct {
	cfg   config.TerritoryDef
	world geo.Rect
	store *zone.Store
}

// NewSurveyor creates a territory surveyor.
func NewSurveyor(cfg config.TerritoryDef, world geo.Rect, store *zone.Store) *Surveyor {
	return &Surveyor{cfg: cfg, world: world, store: store}
}

// Survey casts the configured number of rays from origin and returns the
// smoothed polygon through their endpoints.
func (s *Surveyor) Survey(z *zone.Zone, origin geo.Point, others []Claim) Territory {
	n := max(s.cfg.Rays, 3)
	rays := make([]Ray, n)
	for i := range rays {
		angle := 2 * math.Pi * float64(i) / float64(n)
		dir := geo.Pt(math.Cos(angle), math.Sin(angle))

		reason := StopMaxDistance
		hit := geo.March(origin, dir, s.cfg.Step, s.cfg.MaxDistance, func(p geo.Point) bool {
			if r, stop := s.stop(z, p, others); stop {
				reason = r
				return true
			}
			return false
		})
		rays[i] = Ray{Angle: angle, Distance: hit.Distance, Reason: reason}
	}

	dist := smooth(rays)
	pts := make([]geo.Point, n)
	for i, r := range rays {
		pts[i] = origin.Add(geo.Pt(math.Cos(r.Angle), math.Sin(r.Angle)).Scale(dist[i]))
	}
	return Territory{Polygon: geo.NewPolygon(pts...), Rays: rays}
}

func (s *Surveyor) stop(z *zone.Zone, p geo.Point, others []Claim) (StopReason, bool) {
	p2 := s.cfg.Proximity * s.cfg.Proximity
	for _, o := range others {
		if o.Territory.Contains(p) {
			return StopTerritory, true
		}
	}
	for _, o := range others {
		if o.Position.DistanceSq(p) < p2 {
			return StopProximity, true
		}
	}
	if z == nil || !z.Contains(p, 0) {
		return StopZoneEdge, true
	}
	if s.store.OnRoad(p) {
		return StopRoad, true
	}
	if !s.world.Contains(p) {
		return StopWorld, true
	}
	return "", false
}

// smooth averages each ray distance with its two neighbors, never letting a
// ray grow past where it stopped.
func smooth(rays []Ray) []float64 {
	n := len(rays)
	out := make([]float64, n)
	for i, r := range rays {
		avg := (rays[(i+n-1)%n].Distance + r.Distance + rays[(i+1)%n].Distance) / 3
		out[i] = math.Min(avg, r.Distance)
	}
	return out
}
