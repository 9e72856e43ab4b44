package roadnet

import (
	"math"

	"github.com/ChicagoDave/townpaint/pkg/geo"
)

// index buckets waypoint positions into square cells so radius queries only
// visit nearby cells.
type index struct {
	cellSize float64
	buckets  map[[2]int][]WaypointID
	pos      map[WaypointID]geo.Point
}

func newIndex(cellSize float64) *index {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &index{
		cellSize: cellSize,
		buckets:  make(map[[2]int][]WaypointID),
		pos:      make(map[WaypointID]geo.Point),
	}
}

func (ix *index) key(p geo.Point) [2]int {
	return [2]int{int(math.Floor(p.X / ix.cellSize)), int(math.Floor(p.Y / ix.cellSize))}
}

func (ix *index) insert(id WaypointID, p geo.Point) {
	k := ix.key(p)
	ix.buckets[k] = append(ix.buckets[k], id)
	ix.pos[id] = p
}

// within returns ids whose position lies within r of p, in insertion order
// per cell.
func (ix *index) within(p geo.Point, r float64) []WaypointID {
	var out []WaypointID
	ix.each(p, r, func(id WaypointID, q geo.Point) bool {
		out = append(out, id)
		return true
	})
	return out
}

// nearest returns the closest id within r of p.
func (ix *index) nearest(p geo.Point, r float64) (WaypointID, bool) {
	best := WaypointID(0)
	bestD := math.Inf(1)
	ix.each(p, r, func(id WaypointID, q geo.Point) bool {
		d := q.DistanceSq(p)
		if d < bestD || (d == bestD && id < best) {
			best, bestD = id, d
		}
		return true
	})
	return best, bestD < math.Inf(1)
}

func (ix *index) each(p geo.Point, r float64, fn func(WaypointID, geo.Point) bool) {
	span := int(math.Ceil(r / ix.cellSize))
	k := ix.key(p)
	r2 := r * r
	for dx := -span; dx <= span; dx++ {
		for dy := -span; dy <= span; dy++ {
			for _, id := range ix.buckets[[2]int{k[0] + dx, k[1] + dy}] {
				q := ix.pos[id]
				if q.DistanceSq(p) > r2 {
					continue
				}
				if !fn(id, q) {
					return
				}
			}
		}
	}
}
