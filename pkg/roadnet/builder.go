package roadnet

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/ChicagoDave/townpaint/pkg/config"
	"github.com/ChicagoDave/townpaint/pkg/geo"
	"github.com/ChicagoDave/townpaint/pkg/validation"
	"github.com/ChicagoDave/townpaint/pkg/zone"
)

// Builder turns the road zones of a store into a waypoint graph.
type Builder struct {
	cfg   config.RoadsDef
	world geo.Rect
	log   *slog.Logger
}

// NewBuilder creates a builder for the given road settings and world extent.
func NewBuilder(cfg config.RoadsDef, world geo.Rect, log *slog.Logger) *Builder {
	if log == nil {
		log = slog.Default()
	}
	return &Builder{cfg: cfg, world: world, log: log}
}

// Rebuild builds a fresh graph from the store. A panic during the build is
// recovered and reported as a rebuild error; the partially built graph is
// returned so the caller can keep running on it.
func (b *Builder) Rebuild(store *zone.Store) (g *Graph, report *validation.Report) {
	report = validation.NewReport()
	g = NewGraph(b.cfg.ConnectionRadius)
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("road graph rebuild failed", "error", r, "waypoints", g.Len())
			report.AddError(validation.Result{
				Level:       validation.LevelRebuild,
				Message:     fmt.Sprintf("rebuild aborted: %v", r),
				ActualValue: g.Len(),
			})
		}
	}()

	b.build(g, store)

	b.log.Debug("road graph rebuilt",
		"waypoints", g.Len(),
		"edges", g.EdgeCount(),
		"edge_points", len(g.edge),
		"entry_zones", len(g.entries))
	report.AddInfo(validation.Result{
		Level:   validation.LevelRebuild,
		Message: fmt.Sprintf("%d waypoints, %d edges", g.Len(), g.EdgeCount()),
	})
	return g, report
}

func (b *Builder) build(g *Graph, store *zone.Store) {
	for _, road := range store.Roads() {
		for _, cluster := range b.clusters(road.Circles) {
			b.emit(g, store, chain(cluster))
		}
	}
	b.connect(g, store)
	b.markIntersections(g, store)
	b.classify(g, store)
}

// clusters groups circles whose centers are chained together by steps no
// longer than the connection radius. Each cluster keeps store order.
func (b *Builder) clusters(circles []geo.Circle) [][]geo.Circle {
	visited := mapset.New[int]()
	var out [][]geo.Circle
	for start := range circles {
		if visited.Has(start) {
			continue
		}
		visited.Put(start)
		members := []int{start}
		queue := []int{start}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for j := range circles {
				if visited.Has(j) {
					continue
				}
				if circles[cur].Center().Distance(circles[j].Center()) <= b.cfg.ConnectionRadius {
					visited.Put(j)
					members = append(members, j)
					queue = append(queue, j)
				}
			}
		}
		sort.Ints(members)
		cluster := make([]geo.Circle, len(members))
		for i, m := range members {
			cluster[i] = circles[m]
		}
		out = append(out, cluster)
	}
	return out
}

// chain orders circles by greedy nearest-neighbor, starting from the first.
func chain(circles []geo.Circle) []geo.Circle {
	if len(circles) < 3 {
		return circles
	}
	used := make([]bool, len(circles))
	out := make([]geo.Circle, 0, len(circles))
	cur := 0
	used[0] = true
	out = append(out, circles[0])
	for len(out) < len(circles) {
		next := -1
		bestD := 0.0
		for j, c := range circles {
			if used[j] {
				continue
			}
			d := circles[cur].Center().DistanceSq(c.Center())
			if next < 0 || d < bestD {
				next, bestD = j, d
			}
		}
		used[next] = true
		out = append(out, circles[next])
		cur = next
	}
	return out
}

// emit adds one waypoint per circle center plus on-road intermediates across
// long gaps between consecutive circles.
func (b *Builder) emit(g *Graph, store *zone.Store, ordered []geo.Circle) {
	for i, c := range ordered {
		g.addOrGet(c.Center(), Flags{RoadCenter: true}, b.cfg.MinPointDistance)
		if i == 0 {
			continue
		}
		prev := ordered[i-1].Center()
		cur := c.Center()
		d := prev.Distance(cur)
		if d <= b.cfg.IntermediateThreshold {
			continue
		}
		n := geo.SampleCount(d, b.cfg.IntermediateSpacing, 0)
		for k := 1; k < n; k++ {
			p := prev.Lerp(cur, float64(k)/float64(n))
			if store.OnRoad(p) {
				g.addOrGet(p, Flags{Intermediate: true}, b.cfg.MinPointDistance)
			}
		}
	}
}

// connect links every pair of waypoints within the connection radius whose
// straight line stays on road at every sample.
func (b *Builder) connect(g *Graph, store *zone.Store) {
	for _, id := range g.order {
		p := g.waypoints[id].Point()
		for _, other := range g.ix.within(p, b.cfg.ConnectionRadius) {
			if other <= id || g.adj[id][other] {
				continue
			}
			q := g.waypoints[other].Point()
			if geo.SegmentCovered(p, q, b.cfg.LineCheckSamples, store.OnRoad) {
				g.link(id, other)
			}
		}
	}
}

// markIntersections flags high-degree waypoints and inserts approach
// waypoints along the edges of the busiest ones.
func (b *Builder) markIntersections(g *Graph, store *zone.Store) {
	var busy []WaypointID
	for _, id := range g.order {
		deg := g.Degree(id)
		if deg >= b.cfg.IntersectionMinDegree {
			g.waypoints[id].Flags.Intersection = true
		}
		if deg >= b.cfg.ApproachMinDegree {
			busy = append(busy, id)
		}
	}
	for _, id := range busy {
		center := g.waypoints[id].Point()
		for _, n := range g.Neighbors(id) {
			np := g.waypoints[n].Point()
			if center.Distance(np) <= b.cfg.ApproachDistance {
				continue
			}
			p := center.Add(center.Direction(np).Scale(b.cfg.ApproachDistance))
			if !store.OnRoad(p) {
				continue
			}
			if _, near := g.ix.nearest(p, b.cfg.MinPointDistance); near {
				continue
			}
			a := g.add(p, Flags{Approach: true})
			g.waypoints[a].Parent = id
			g.unlink(id, n)
			g.link(id, a)
			g.link(a, n)
		}
	}
}

// classify records edge points and per-zone entry waypoints.
func (b *Builder) classify(g *Graph, store *zone.Store) {
	for _, id := range g.order {
		p := g.waypoints[id].Point()
		if b.world.EdgeDistance(p) <= b.cfg.EdgeThreshold {
			g.edge = append(g.edge, id)
		}
		for _, z := range store.Residential() {
			d := z.EdgeDistance(p)
			if d > 0 && d <= b.cfg.EntryBand {
				g.entries[z.ID] = append(g.entries[z.ID], id)
			}
		}
	}
}
