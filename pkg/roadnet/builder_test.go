package roadnet

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChicagoDave/townpaint/pkg/config"
	"github.com/ChicagoDave/townpaint/pkg/geo"
	"github.com/ChicagoDave/townpaint/pkg/validation"
	"github.com/ChicagoDave/townpaint/pkg/zone"
)

func straightRoad(t *testing.T) (*zone.Store, zone.ID) {
	t.Helper()
	s := zone.NewStore(1.5)
	for x := 0.0; x <= 300; x += 10 {
		s.Paint(zone.Road, x, 300, 40)
	}
	home := s.Paint(zone.Residential, 150, 195, 60)
	require.False(t, home.Rejected)
	return s, home.Zone
}

func newBuilder(roads config.RoadsDef) *Builder {
	cfg := config.Default()
	return NewBuilder(roads, geo.Rect{Width: cfg.World.Width, Height: cfg.World.Height}, nil)
}

func TestRebuildStraightRoad(t *testing.T) {
	store, home := straightRoad(t)
	b := newBuilder(config.Default().Roads)

	g, report := b.Rebuild(store)
	require.True(t, report.Valid)
	assert.GreaterOrEqual(t, g.Len(), 3)
	assert.Len(t, g.EdgePoints(), 3, "waypoints at x=0, 20, 40 lie within 50 of the left edge")
	assert.NotEmpty(t, g.Entries(home))

	for _, id := range g.Entries(home) {
		d := store.Get(home).EdgeDistance(g.Waypoint(id).Point())
		assert.Greater(t, d, 0.0)
		assert.LessOrEqual(t, d, 60.0)
	}
}

func TestRebuildInvariants(t *testing.T) {
	store, _ := straightRoad(t)
	store.Paint(zone.Road, 150, 300, 40)
	for y := 300.0; y <= 590; y += 12 {
		store.Paint(zone.Road, 150, y, 30)
	}
	g, _ := newBuilder(config.Default().Roads).Rebuild(store)

	wps := g.Waypoints()
	for i, a := range wps {
		for _, n := range g.Neighbors(a.ID) {
			assert.True(t, g.Connected(n, a.ID), "edge %d-%d is not symmetric", a.ID, n)
		}
		for _, b := range wps[i+1:] {
			assert.GreaterOrEqual(t, a.Point().Distance(b.Point()), 15.0,
				"waypoints %d and %d are too close", a.ID, b.ID)
		}
	}
}

func TestLineCheckKeepsFingersApart(t *testing.T) {
	s := zone.NewStore(1.5)
	for x := 0.0; x <= 200; x += 10 {
		s.Paint(zone.Road, x, 100, 10)
		s.Paint(zone.Road, x, 140, 10)
	}
	require.Len(t, s.Roads(), 2)

	g, _ := newBuilder(config.Default().Roads).Rebuild(s)
	for _, w := range g.Waypoints() {
		for _, n := range g.Neighbors(w.ID) {
			assert.Equal(t, w.Y, g.Waypoint(n).Y, "edge %d-%d bridges the gap", w.ID, n)
		}
	}
}

func TestApproachWaypoints(t *testing.T) {
	s := zone.NewStore(1.5)
	s.Paint(zone.Road, 200, 200, 40)
	s.Paint(zone.Road, 250, 200, 40)
	s.Paint(zone.Road, 150, 200, 40)
	s.Paint(zone.Road, 200, 250, 40)
	s.Paint(zone.Road, 200, 150, 40)
	require.Len(t, s.Roads(), 1)

	roads := config.Default().Roads
	roads.IntermediateThreshold = 100
	g, report := newBuilder(roads).Rebuild(s)
	require.True(t, report.Valid)

	center, ok := g.Nearest(geo.Pt(200, 200))
	require.True(t, ok)
	assert.True(t, g.Waypoint(center).Flags.Intersection)
	assert.Equal(t, 4, g.Degree(center))

	approaches := 0
	for _, w := range g.Waypoints() {
		if !w.Flags.Approach {
			continue
		}
		approaches++
		assert.Equal(t, center, w.Parent)
		assert.InDelta(t, 20.0, w.Point().Distance(geo.Pt(200, 200)), 1e-9)
		assert.True(t, g.Connected(center, w.ID))
	}
	assert.Equal(t, 4, approaches)

	arm, _ := g.Nearest(geo.Pt(250, 200))
	assert.False(t, g.Connected(center, arm), "approach replaces the direct edge")
	assert.Len(t, g.Path(center, arm), 3)
}

func TestRebuildRecoversPanic(t *testing.T) {
	b := newBuilder(config.Default().Roads)
	g, report := b.Rebuild(nil)
	require.NotNil(t, g)
	assert.False(t, report.Valid)
	assert.True(t, report.HasLevel(validation.LevelRebuild))
}

func TestRebuildEmpty(t *testing.T) {
	g, report := newBuilder(config.Default().Roads).Rebuild(zone.NewStore(1.5))
	assert.True(t, report.Valid)
	assert.Equal(t, 0, g.Len())
	_, ok := g.Nearest(geo.Pt(0, 0))
	assert.False(t, ok)
	assert.Nil(t, g.Route(geo.Pt(0, 0), geo.Pt(10, 10)))
}

func TestPathAndRoute(t *testing.T) {
	store, _ := straightRoad(t)
	g, _ := newBuilder(config.Default().Roads).Rebuild(store)

	from, _ := g.Nearest(geo.Pt(0, 300))
	to, _ := g.Nearest(geo.Pt(300, 300))
	path := g.Path(from, to)
	require.NotEmpty(t, path)
	assert.Equal(t, from, path[0])
	assert.Equal(t, to, path[len(path)-1])
	for i := 1; i < len(path); i++ {
		assert.True(t, g.Connected(path[i-1], path[i]))
	}

	pts := g.Route(geo.Pt(-5, 300), geo.Pt(305, 300))
	require.NotEmpty(t, pts)
	assert.Equal(t, geo.Pt(0, 300), pts[0])
	assert.Equal(t, geo.Pt(300, 300), pts[len(pts)-1])
}

func TestChain(t *testing.T) {
	in := []geo.Circle{geo.C(0, 0, 1), geo.C(30, 0, 1), geo.C(10, 0, 1), geo.C(20, 0, 1)}
	out := chain(in)
	xs := make([]float64, len(out))
	for i, c := range out {
		xs[i] = c.X
	}
	assert.Equal(t, []float64{0, 10, 20, 30}, xs)
}

func TestIndexNearest(t *testing.T) {
	ix := newIndex(10)
	ix.insert(1, geo.Pt(0, 0))
	ix.insert(2, geo.Pt(25, 0))
	ix.insert(3, geo.Pt(-40, 3))

	id, ok := ix.nearest(geo.Pt(20, 1), 10)
	require.True(t, ok)
	assert.Equal(t, WaypointID(2), id)

	_, ok = ix.nearest(geo.Pt(100, 100), 10)
	assert.False(t, ok)

	got := ix.within(geo.Pt(0, 0), 41)
	assert.ElementsMatch(t, []WaypointID{1, 2, 3}, got)
	assert.Len(t, ix.within(geo.Pt(0, 0), math.SmallestNonzeroFloat64), 1)
}
