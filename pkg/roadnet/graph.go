// Package roadnet derives a waypoint graph from painted road zones.
package roadnet

import (
	"math"
	"sort"

	"github.com/ChicagoDave/townpaint/pkg/geo"
	"github.com/ChicagoDave/townpaint/pkg/zone"
)

// WaypointID identifies a waypoint within one built graph. IDs start at 1.
type WaypointID int

// Flags record how a waypoint came to exist. They are set at creation and
// never cleared.
type Flags struct {
	RoadCenter   bool `json:"road_center,omitempty"`
	Intermediate bool `json:"intermediate,omitempty"`
	Intersection bool `json:"intersection,omitempty"`
	Approach     bool `json:"approach,omitempty"`
}

// Waypoint is a node of the road graph.
type Waypoint struct {
	ID    WaypointID `json:"id"`
	X     float64    `json:"x"`
	Y     float64    `json:"y"`
	Flags Flags      `json:"flags"`
	// Parent is the intersection an approach waypoint belongs to.
	Parent WaypointID `json:"parent,omitempty"`
}

// Point returns the waypoint position.
func (w *Waypoint) Point() geo.Point {
	return geo.Pt(w.X, w.Y)
}

// Graph is an undirected waypoint graph. Waypoints live in an arena keyed by
// ID; adjacency is kept symmetric by link and unlink.
type Graph struct {
	waypoints map[WaypointID]*Waypoint
	order     []WaypointID
	adj       map[WaypointID]map[WaypointID]bool
	edge      []WaypointID
	entries   map[zone.ID][]WaypointID
	ix        *index
	nextID    WaypointID
}

// NewGraph returns an empty graph whose spatial index uses the given cell
// size.
func NewGraph(cellSize float64) *Graph {
	return &Graph{
		waypoints: make(map[WaypointID]*Waypoint),
		adj:       make(map[WaypointID]map[WaypointID]bool),
		entries:   make(map[zone.ID][]WaypointID),
		ix:        newIndex(cellSize),
		nextID:    1,
	}
}

// Len returns the number of waypoints.
func (g *Graph) Len() int { return len(g.order) }

// Waypoint returns the waypoint with the given id, or nil.
func (g *Graph) Waypoint(id WaypointID) *Waypoint { return g.waypoints[id] }

// Waypoints returns every waypoint in creation order.
func (g *Graph) Waypoints() []*Waypoint {
	out := make([]*Waypoint, len(g.order))
	for i, id := range g.order {
		out[i] = g.waypoints[id]
	}
	return out
}

// Neighbors returns the ids adjacent to id in ascending order.
func (g *Graph) Neighbors(id WaypointID) []WaypointID {
	ns := make([]WaypointID, 0, len(g.adj[id]))
	for n := range g.adj[id] {
		ns = append(ns, n)
	}
	sort.Slice(ns, func(i, j int) bool { return ns[i] < ns[j] })
	return ns
}

// Degree returns the number of neighbors of id.
func (g *Graph) Degree(id WaypointID) int { return len(g.adj[id]) }

// Connected reports whether a and b share an edge.
func (g *Graph) Connected(a, b WaypointID) bool { return g.adj[a][b] }

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, ns := range g.adj {
		n += len(ns)
	}
	return n / 2
}

// EdgePoints returns the waypoints near the world boundary.
func (g *Graph) EdgePoints() []WaypointID { return g.edge }

// Entries returns the entry waypoints of a residential zone.
func (g *Graph) Entries(id zone.ID) []WaypointID { return g.entries[id] }

// EntryZones returns the zone ids that have at least one entry waypoint, in
// ascending order.
func (g *Graph) EntryZones() []zone.ID {
	ids := make([]zone.ID, 0, len(g.entries))
	for id := range g.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Nearest returns the waypoint closest to p, or false if the graph is empty.
func (g *Graph) Nearest(p geo.Point) (WaypointID, bool) {
	if len(g.order) == 0 {
		return 0, false
	}
	// Try the local neighborhood first, then fall back to a full scan.
	if id, ok := g.ix.nearest(p, g.ix.cellSize*2); ok {
		return id, true
	}
	best := g.order[0]
	bestD := math.Inf(1)
	for _, id := range g.order {
		if d := g.waypoints[id].Point().DistanceSq(p); d < bestD {
			best, bestD = id, d
		}
	}
	return best, true
}

// add creates a waypoint unconditionally.
func (g *Graph) add(p geo.Point, flags Flags) WaypointID {
	id := g.nextID
	g.nextID++
	g.waypoints[id] = &Waypoint{ID: id, X: p.X, Y: p.Y, Flags: flags}
	g.order = append(g.order, id)
	g.adj[id] = make(map[WaypointID]bool)
	g.ix.insert(id, p)
	return id
}

// addOrGet resolves p to an existing waypoint closer than minDist, or
// creates a new one. The second result is true when a waypoint was created.
func (g *Graph) addOrGet(p geo.Point, flags Flags, minDist float64) (WaypointID, bool) {
	if id, ok := g.ix.nearest(p, minDist); ok && g.waypoints[id].Point().Distance(p) < minDist {
		return id, false
	}
	return g.add(p, flags), true
}

func (g *Graph) link(a, b WaypointID) {
	if a == b {
		return
	}
	g.adj[a][b] = true
	g.adj[b][a] = true
}

func (g *Graph) unlink(a, b WaypointID) {
	delete(g.adj[a], b)
	delete(g.adj[b], a)
}
