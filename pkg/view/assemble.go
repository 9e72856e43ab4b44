package view

import (
	"time"

	"github.com/ChicagoDave/townpaint/pkg/agent"
	"github.com/ChicagoDave/townpaint/pkg/roadnet"
	"github.com/ChicagoDave/townpaint/pkg/sim"
	"github.com/ChicagoDave/townpaint/pkg/zone"
)

// Assemble captures the current state of s. Territories of settled agents
// are recomputed first, since they are only derived on query.
func Assemble(s *sim.Sim) *Snapshot {
	s.Territories()
	graphStale, connStale := s.Dirty()
	return &Snapshot{
		Metadata: Metadata{
			Tick:              s.Ticks(),
			World:             s.World(),
			MinPointDistance:  s.Config().Roads.MinPointDistance,
			GraphStale:        graphStale,
			ConnectivityStale: connStale,
			GeneratedAt:       time.Now().UTC().Format(time.RFC3339),
		},
		Zones:  assembleZones(s),
		Graph:  assembleGraph(s.Graph()),
		Agents: assembleAgents(s.Population().Agents()),
		Queued: assembleAgents(s.Population().Queued()),
	}
}

func assembleZones(s *sim.Sim) []ZoneView {
	pop := s.Population()
	var out []ZoneView
	for _, kind := range []zone.Kind{zone.Residential, zone.Road} {
		for _, z := range s.Zones().Zones(kind) {
			zv := ZoneView{
				ID:      z.ID,
				Kind:    z.Kind,
				Circles: append(z.Circles[:0:0], z.Circles...),
				Area:    z.Area(),
			}
			if kind == zone.Residential {
				zv.Connected = s.Connected(z.ID)
				zv.Capacity = pop.MaxAgents(z)
				zv.Population = pop.Count(z.ID)
			}
			out = append(out, zv)
		}
	}
	return out
}

func assembleGraph(g *roadnet.Graph) GraphView {
	gv := GraphView{
		Adjacency:  make(map[roadnet.WaypointID][]roadnet.WaypointID, g.Len()),
		EdgePoints: append([]roadnet.WaypointID(nil), g.EdgePoints()...),
		Entries:    make(map[zone.ID][]roadnet.WaypointID),
	}
	for _, w := range g.Waypoints() {
		gv.Waypoints = append(gv.Waypoints, *w)
		gv.Adjacency[w.ID] = g.Neighbors(w.ID)
	}
	for _, id := range g.EntryZones() {
		gv.Entries[id] = append([]roadnet.WaypointID(nil), g.Entries(id)...)
	}
	return gv
}

func assembleAgents(as []*agent.Agent) []AgentView {
	out := make([]AgentView, 0, len(as))
	for _, a := range as {
		out = append(out, AgentView{
			ID:        a.ID,
			X:         a.X,
			Y:         a.Y,
			Phase:     a.Phase,
			Zone:      a.Zone,
			Target:    a.Target,
			PathLen:   len(a.Path),
			GridPath:  a.GridPath,
			Lot:       a.Lot,
			Territory: a.Territory,
		})
	}
	return out
}
