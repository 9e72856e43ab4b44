// Package connectivity decides which residential zones can be reached by
// road from the edge of the world, using a grid flood-fill that is
// independent of the waypoint graph.
package connectivity

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/ChicagoDave/townpaint/pkg/config"
	"github.com/ChicagoDave/townpaint/pkg/geo"
	"github.com/ChicagoDave/townpaint/pkg/zone"
)

// Checker runs the boundary flood-fill.
type Checker struct {
	cfg   config.ConnectivityDef
	world geo.Rect
}

// NewChecker creates a checker over the given world extent.
func NewChecker(cfg config.ConnectivityDef, world geo.Rect) *Checker {
	return &Checker{cfg: cfg, world: world}
}

// BoundaryPoints returns the points along the four world edges, at the
// configured stride, that lie on road.
func (c *Checker) BoundaryPoints(store *zone.Store) []geo.Point {
	var out []geo.Point
	add := func(p geo.Point) {
		if store.OnRoad(p) {
			out = append(out, p)
		}
	}
	w, h := c.world.Width, c.world.Height
	for x := 0.0; x <= w; x += c.cfg.EdgeStride {
		add(geo.Pt(x, 0))
		add(geo.Pt(x, h))
	}
	for y := c.cfg.EdgeStride; y < h; y += c.cfg.EdgeStride {
		add(geo.Pt(0, y))
		add(geo.Pt(w, y))
	}
	return out
}

// IsZoneConnected reports whether a breadth-first search over on-road grid
// cells, started from any on-road boundary point, reaches a cell inside the
// zone's circles (grown by the touch tolerance).
func (c *Checker) IsZoneConnected(store *zone.Store, z *zone.Zone) bool {
	if z == nil || len(z.Circles) == 0 {
		return false
	}
	g := newGrid(store, c.world, c.cfg.GridSize)
	return c.search(g, c.sources(g, store), c.touches(g, z)) != nil
}

// ComputeAll evaluates every residential zone and returns the result keyed
// by zone ID.
func (c *Checker) ComputeAll(store *zone.Store) map[zone.ID]bool {
	out := make(map[zone.ID]bool, len(store.Residential()))
	if len(store.Residential()) == 0 {
		return out
	}
	g := newGrid(store, c.world, c.cfg.GridSize)
	src := c.sources(g, store)
	for _, z := range store.Residential() {
		out[z.ID] = len(z.Circles) > 0 && c.search(g, src, c.touches(g, z)) != nil
	}
	return out
}

// PathToZone returns grid cell centers from the cell containing from to a
// cell touching the zone, moving only through on-road cells. Nil when no
// such path exists.
func (c *Checker) PathToZone(store *zone.Store, from geo.Point, z *zone.Zone) []geo.Point {
	if z == nil || len(z.Circles) == 0 {
		return nil
	}
	g := newGrid(store, c.world, c.cfg.GridSize)
	cells := c.search(g, []cell{g.cellOf(from)}, c.touches(g, z))
	if cells == nil {
		return nil
	}
	pts := make([]geo.Point, len(cells))
	for i, cl := range cells {
		pts[i] = g.center(cl)
	}
	return pts
}

func (c *Checker) sources(g *grid, store *zone.Store) []cell {
	seen := mapset.New[cell]()
	var out []cell
	for _, p := range c.BoundaryPoints(store) {
		cl := g.cellOf(p)
		if seen.Has(cl) {
			continue
		}
		seen.Put(cl)
		out = append(out, cl)
	}
	return out
}

func (c *Checker) touches(g *grid, z *zone.Zone) func(cell) bool {
	return func(cl cell) bool {
		return z.Contains(g.center(cl), c.cfg.TouchTolerance)
	}
}

// search is a multi-source breadth-first search. Source cells are trusted
// as passable; every other expanded cell must be on road, except that a
// goal cell may be entered from a road cell. It returns the cell path from a
// source to the first goal found.
func (c *Checker) search(g *grid, sources []cell, goal func(cell) bool) []cell {
	visited := mapset.New[cell]()
	prev := make(map[cell]cell)
	var queue []cell
	for _, s := range sources {
		if visited.Has(s) {
			continue
		}
		visited.Put(s)
		if goal(s) {
			return []cell{s}
		}
		queue = append(queue, s)
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, st := range steps {
			n := cell{cur[0] + st[0], cur[1] + st[1]}
			if !g.inBounds(n) || visited.Has(n) {
				continue
			}
			visited.Put(n)
			if goal(n) {
				prev[n] = cur
				return trace(prev, n, visited.Size())
			}
			if !g.onRoad(n) {
				continue
			}
			prev[n] = cur
			queue = append(queue, n)
		}
	}
	return nil
}

func trace(prev map[cell]cell, end cell, limit int) []cell {
	path := []cell{end}
	for at := end; len(path) <= limit; {
		p, ok := prev[at]
		if !ok {
			break
		}
		path = append(path, p)
		at = p
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
