package roadnet

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/ChicagoDave/townpaint/pkg/geo"
)

// Path returns the waypoints of an unweighted breadth-first path from one
// waypoint to another, both ends included. Neighbors are expanded in
// ascending id order and the first path found wins. Nil when unreachable.
func (g *Graph) Path(from, to WaypointID) []WaypointID {
	if g.waypoints[from] == nil || g.waypoints[to] == nil {
		return nil
	}
	if from == to {
		return []WaypointID{from}
	}

	visited := mapset.New[WaypointID]()
	visited.Put(from)
	prev := make(map[WaypointID]WaypointID)
	queue := []WaypointID{from}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range g.Neighbors(cur) {
			if visited.Has(n) {
				continue
			}
			visited.Put(n)
			prev[n] = cur
			if n == to {
				return walkBack(prev, from, to)
			}
			queue = append(queue, n)
		}
	}
	return nil
}

func walkBack(prev map[WaypointID]WaypointID, from, to WaypointID) []WaypointID {
	var path []WaypointID
	for at := to; at != from; at = prev[at] {
		path = append(path, at)
	}
	path = append(path, from)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Route finds a graph path from the waypoint nearest origin to the waypoint
// nearest target and returns its positions. Nil when the graph is empty or
// the two waypoints are not connected.
func (g *Graph) Route(origin, target geo.Point) []geo.Point {
	from, ok := g.Nearest(origin)
	if !ok {
		return nil
	}
	to, _ := g.Nearest(target)
	ids := g.Path(from, to)
	if ids == nil {
		return nil
	}
	pts := make([]geo.Point, len(ids))
	for i, id := range ids {
		pts[i] = g.waypoints[id].Point()
	}
	return pts
}
