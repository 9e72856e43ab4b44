// Package analytics derives per-zone and road-graph statistics from a
// simulation snapshot.
package analytics

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/ChicagoDave/townpaint/pkg/agent"
	"github.com/ChicagoDave/townpaint/pkg/roadnet"
	"github.com/ChicagoDave/townpaint/pkg/validation"
	"github.com/ChicagoDave/townpaint/pkg/view"
	"github.com/ChicagoDave/townpaint/pkg/zone"
)

// Summarize computes statistics for a snapshot and reports zones that are
// likely to surprise the user (disconnected, unreachable by graph, unable to
// house anyone).
func Summarize(s *view.Snapshot) (*Summary, *validation.Report) {
	report := validation.NewReport()

	sum := &Summary{
		Tick:   s.Metadata.Tick,
		Graph:  summarizeGraph(s.Graph),
		Phases: make(map[string]int),
	}

	byZone := make(map[zone.ID]*ZoneStats)
	for _, z := range s.Zones {
		if z.Kind == zone.Road {
			sum.RoadZones++
			sum.RoadArea += z.Area
			continue
		}
		st := ZoneStats{
			ID:        int(z.ID),
			Circles:   len(z.Circles),
			Area:      z.Area,
			Connected: z.Connected,
			Capacity:  z.Capacity,
			Entries:   len(s.Graph.Entries[z.ID]),
		}
		sum.Residential = append(sum.Residential, st)
		sum.TotalCapacity += z.Capacity
	}
	for i := range sum.Residential {
		byZone[zone.ID(sum.Residential[i].ID)] = &sum.Residential[i]
	}

	for _, a := range s.Agents {
		sum.TotalAgents++
		sum.Phases[a.Phase.String()]++
		st := byZone[a.Zone]
		if st == nil {
			continue
		}
		st.Population++
		if a.GridPath {
			st.GridPaths++
		}
		if a.Phase == agent.Settled {
			st.Settled++
			if a.Lot != nil {
				st.LotArea += a.Lot.Polygon.Area()
				if a.Lot.Fallback {
					st.FallbackLot++
				}
			}
		} else {
			st.Traveling++
		}
	}
	for _, a := range s.Queued {
		sum.TotalQueued++
		if st := byZone[a.Zone]; st != nil {
			st.Population++
			st.Queued++
		}
	}
	for i := range sum.Residential {
		st := &sum.Residential[i]
		if st.Capacity > 0 {
			st.Fill = float64(st.Population) / float64(st.Capacity)
		}
	}

	validateSummary(sum, report)
	return sum, report
}

func summarizeGraph(g view.GraphView) GraphStats {
	st := GraphStats{
		Waypoints:  len(g.Waypoints),
		EdgePoints: len(g.EdgePoints),
	}
	degrees := 0
	for _, w := range g.Waypoints {
		if w.Flags.RoadCenter {
			st.RoadCenters++
		}
		if w.Flags.Intermediate {
			st.Intermediates++
		}
		if w.Flags.Intersection {
			st.Intersections++
		}
		if w.Flags.Approach {
			st.Approaches++
		}
		degrees += len(g.Adjacency[w.ID])
	}
	st.Edges = degrees / 2
	if st.Waypoints > 0 {
		st.AvgDegree = float64(degrees) / float64(st.Waypoints)
	}
	st.Components = components(g)
	return st
}

// components counts connected components of the graph by breadth-first
// search.
func components(g view.GraphView) int {
	visited := mapset.New[roadnet.WaypointID]()
	n := 0
	for _, w := range g.Waypoints {
		if visited.Has(w.ID) {
			continue
		}
		n++
		visited.Put(w.ID)
		queue := []roadnet.WaypointID{w.ID}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, nb := range g.Adjacency[cur] {
				if !visited.Has(nb) {
					visited.Put(nb)
					queue = append(queue, nb)
				}
			}
		}
	}
	return n
}
