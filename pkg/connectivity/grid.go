package connectivity

import (
	"math"

	"github.com/ChicagoDave/townpaint/pkg/geo"
	"github.com/ChicagoDave/townpaint/pkg/zone"
)

type cell [2]int

var steps = [4]cell{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// grid quantizes the world into square cells and caches which cell centers
// lie on road.
type grid struct {
	size       float64
	cols, rows int
	road       []bool
}

func newGrid(store *zone.Store, world geo.Rect, size float64) *grid {
	g := &grid{
		size: size,
		cols: int(math.Ceil(world.Width / size)),
		rows: int(math.Ceil(world.Height / size)),
	}
	g.road = make([]bool, g.cols*g.rows)
	circles := store.RoadCircles()
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			g.road[r*g.cols+c] = geo.AnyContains(circles, g.center(cell{c, r}), 0)
		}
	}
	return g
}

func (g *grid) inBounds(c cell) bool {
	return c[0] >= 0 && c[1] >= 0 && c[0] < g.cols && c[1] < g.rows
}

func (g *grid) onRoad(c cell) bool {
	return g.inBounds(c) && g.road[c[1]*g.cols+c[0]]
}

func (g *grid) center(c cell) geo.Point {
	return geo.Pt((float64(c[0])+0.5)*g.size, (float64(c[1])+0.5)*g.size)
}

// cellOf returns the cell containing p, clamped to the grid.
func (g *grid) cellOf(p geo.Point) cell {
	c := cell{int(math.Floor(p.X / g.size)), int(math.Floor(p.Y / g.size))}
	c[0] = min(max(c[0], 0), g.cols-1)
	c[1] = min(max(c[1], 0), g.rows-1)
	return c
}
