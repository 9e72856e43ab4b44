package view

import (
	"fmt"

	"github.com/ChicagoDave/townpaint/pkg/agent"
	"github.com/ChicagoDave/townpaint/pkg/geo"
	"github.com/ChicagoDave/townpaint/pkg/validation"
	"github.com/ChicagoDave/townpaint/pkg/zone"
)

// ValidateSnapshot checks a snapshot against the invariants the simulation
// maintains: symmetric adjacency, waypoint spacing, disjoint road and
// residential circles, the population bound and agent phase integrity.
// Overlapping territories are reported as info.
func ValidateSnapshot(s *Snapshot) *validation.Report {
	r := validation.NewReport()

	if s == nil {
		r.AddError(validation.Result{
			Level:   validation.LevelSnapshot,
			Message: "snapshot is nil",
		})
		return r
	}

	validateAdjacency(s, r)
	validateSpacing(s, r)
	validateOverlap(s, r)
	validatePopulation(s, r)
	validateAgents(s, r)
	validateTerritories(s, r)

	return r
}

func validateAdjacency(s *Snapshot, r *validation.Report) {
	for id, ns := range s.Graph.Adjacency {
		for _, n := range ns {
			back := false
			for _, m := range s.Graph.Adjacency[n] {
				if m == id {
					back = true
					break
				}
			}
			if !back {
				r.AddError(validation.Result{
					Level:       validation.LevelSnapshot,
					Message:     fmt.Sprintf("edge %d-%d is not symmetric", id, n),
					Path:        fmt.Sprintf("graph.adjacency[%d]", n),
					ActualValue: s.Graph.Adjacency[n],
					Expected:    fmt.Sprintf("contains %d", id),
				})
			}
		}
	}
}

func validateSpacing(s *Snapshot, r *validation.Report) {
	wps := s.Graph.Waypoints
	minDist := s.Metadata.MinPointDistance
	for i := range wps {
		for j := i + 1; j < len(wps); j++ {
			d := wps[i].Point().Distance(wps[j].Point())
			if d < minDist {
				r.AddError(validation.Result{
					Level:       validation.LevelSnapshot,
					Message:     fmt.Sprintf("waypoints %d and %d are %.2f apart", wps[i].ID, wps[j].ID, d),
					Path:        fmt.Sprintf("graph.waypoints[%d]", j),
					ActualValue: d,
					Expected:    fmt.Sprintf(">= %.2f", minDist),
				})
			}
		}
	}
}

func validateOverlap(s *Snapshot, r *validation.Report) {
	var roads []geo.Circle
	for _, z := range s.Zones {
		if z.Kind == zone.Road {
			roads = append(roads, z.Circles...)
		}
	}
	for i, z := range s.Zones {
		if z.Kind != zone.Residential {
			continue
		}
		for ci, c := range z.Circles {
			for _, rc := range roads {
				if c.Overlaps(rc) {
					r.AddError(validation.Result{
						Level:       validation.LevelSnapshot,
						Message:     fmt.Sprintf("residential zone %d overlaps a road", z.ID),
						Path:        fmt.Sprintf("zones[%d].circles[%d]", i, ci),
						ActualValue: c,
					})
					break
				}
			}
		}
	}
}

func validatePopulation(s *Snapshot, r *validation.Report) {
	for i, z := range s.Zones {
		if z.Kind != zone.Residential {
			continue
		}
		if z.Population > z.Capacity {
			r.AddError(validation.Result{
				Level:       validation.LevelSnapshot,
				Message:     fmt.Sprintf("zone %d holds %d agents over capacity %d", z.ID, z.Population, z.Capacity),
				Path:        fmt.Sprintf("zones[%d].population", i),
				ActualValue: z.Population,
				Expected:    fmt.Sprintf("<= %d", z.Capacity),
			})
		}
		if !z.Connected && z.Population > 0 && !s.Metadata.ConnectivityStale {
			r.AddError(validation.Result{
				Level:       validation.LevelSnapshot,
				Message:     fmt.Sprintf("disconnected zone %d still has %d agents", z.ID, z.Population),
				Path:        fmt.Sprintf("zones[%d].population", i),
				ActualValue: z.Population,
				Expected:    "0",
			})
		}
	}
}

func validateAgents(s *Snapshot, r *validation.Report) {
	zones := make(map[zone.ID]bool, len(s.Zones))
	for _, z := range s.Zones {
		if z.Kind == zone.Residential {
			zones[z.ID] = true
		}
	}
	seen := make(map[agent.ID]bool, len(s.Agents)+len(s.Queued))

	check := func(list string, i int, a AgentView) {
		path := fmt.Sprintf("%s[%d]", list, i)
		if seen[a.ID] {
			r.AddError(validation.Result{
				Level:       validation.LevelSnapshot,
				Message:     fmt.Sprintf("duplicate agent id %d", a.ID),
				Path:        path + ".id",
				ActualValue: a.ID,
			})
		}
		seen[a.ID] = true

		if a.Phase < agent.TravelingToNode || a.Phase > agent.Settled {
			r.AddError(validation.Result{
				Level:       validation.LevelSnapshot,
				Message:     fmt.Sprintf("agent %d has invalid phase %d", a.ID, int(a.Phase)),
				Path:        path + ".phase",
				ActualValue: int(a.Phase),
			})
		}
		if !zones[a.Zone] && !s.Metadata.ConnectivityStale {
			r.AddError(validation.Result{
				Level:       validation.LevelSnapshot,
				Message:     fmt.Sprintf("agent %d targets missing zone %d", a.ID, a.Zone),
				Path:        path + ".zone",
				ActualValue: a.Zone,
			})
		}
		if a.Phase == agent.Settled && a.Lot == nil {
			r.AddError(validation.Result{
				Level:   validation.LevelSnapshot,
				Message: fmt.Sprintf("settled agent %d has no lot", a.ID),
				Path:    path + ".lot",
			})
		}
		if a.Phase != agent.Settled && a.Lot != nil {
			r.AddWarning(validation.Result{
				Level:   validation.LevelSnapshot,
				Message: fmt.Sprintf("agent %d has a lot before settling", a.ID),
				Path:    path + ".lot",
			})
		}
	}

	for i, a := range s.Agents {
		check("agents", i, a)
	}
	for i, a := range s.Queued {
		check("queued", i, a)
		if a.Phase != agent.TravelingToNode {
			r.AddError(validation.Result{
				Level:       validation.LevelSnapshot,
				Message:     fmt.Sprintf("queued agent %d already left its first phase", a.ID),
				Path:        fmt.Sprintf("queued[%d].phase", i),
				ActualValue: a.Phase.String(),
			})
		}
	}
}

// validateTerritories reports pairs of settled agents whose territories share
// area. Rays stop at territories computed earlier in the same pass, but later
// neighbors and the chords between ray ends can still cut into one.
func validateTerritories(s *Snapshot, r *validation.Report) {
	for i, a := range s.Agents {
		if a.Territory == nil {
			continue
		}
		for _, b := range s.Agents[i+1:] {
			if b.Territory == nil || !a.Territory.Polygon.Overlaps(b.Territory.Polygon) {
				continue
			}
			r.AddInfo(validation.Result{
				Level:       validation.LevelSnapshot,
				Message:     fmt.Sprintf("territories of agents %d and %d overlap", a.ID, b.ID),
				Path:        fmt.Sprintf("agents[%d].territory", i),
				ActualValue: b.ID,
			})
		}
	}
}
