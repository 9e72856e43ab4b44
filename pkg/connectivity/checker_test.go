package connectivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChicagoDave/townpaint/pkg/config"
	"github.com/ChicagoDave/townpaint/pkg/geo"
	"github.com/ChicagoDave/townpaint/pkg/zone"
)

func newChecker() *Checker {
	cfg := config.Default()
	return NewChecker(cfg.Connectivity, geo.Rect{Width: cfg.World.Width, Height: cfg.World.Height})
}

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

func TestBoundaryPoints(t *testing.T) {
	s, _ := straightRoad(t)
	pts := newChecker().BoundaryPoints(s)
	assert.Len(t, pts, 9)
	for _, p := range pts {
		assert.Equal(t, 0.0, p.X)
		assert.True(t, s.OnRoad(p))
	}
}

func TestConnectedViaBoundaryRoad(t *testing.T) {
	s, home := straightRoad(t)
	c := newChecker()
	assert.True(t, c.IsZoneConnected(s, s.Get(home)))
	assert.Equal(t, map[zone.ID]bool{home: true}, c.ComputeAll(s))
}

func TestIsolatedRoadNotConnected(t *testing.T) {
	s := zone.NewStore(1.5)
	for x := 300.0; x <= 500; x += 10 {
		s.Paint(zone.Road, x, 300, 40)
	}
	home := s.Paint(zone.Residential, 400, 195, 60)
	require.False(t, home.Rejected)

	c := newChecker()
	assert.False(t, c.IsZoneConnected(s, s.Get(home.Zone)))
	assert.False(t, c.ComputeAll(s)[home.Zone])
}

func TestZoneFarFromRoadNotConnected(t *testing.T) {
	s, home := straightRoad(t)
	far := s.Paint(zone.Residential, 600, 100, 40)
	all := newChecker().ComputeAll(s)
	assert.True(t, all[home])
	assert.False(t, all[far.Zone])
}

func TestNoRoadsNoZones(t *testing.T) {
	c := newChecker()
	s := zone.NewStore(1.5)
	assert.Empty(t, c.ComputeAll(s))
	assert.Empty(t, c.BoundaryPoints(s))
	assert.False(t, c.IsZoneConnected(s, nil))
}

func TestPathToZone(t *testing.T) {
	s, home := straightRoad(t)
	c := newChecker()
	z := s.Get(home)

	path := c.PathToZone(s, geo.Pt(0, 300), z)
	require.NotEmpty(t, path)
	assert.Equal(t, geo.Pt(5, 305), path[0])
	assert.True(t, z.Contains(path[len(path)-1], config.Default().Connectivity.TouchTolerance))
	for i := 1; i < len(path); i++ {
		assert.InDelta(t, 10.0, path[i-1].Distance(path[i]), 1e-9)
	}
	for _, p := range path[:len(path)-1] {
		assert.True(t, s.OnRoad(p) || p == path[0], "path cell %v is off road", p)
	}
}

func TestPathToZoneUnreachable(t *testing.T) {
	s, home := straightRoad(t)
	assert.Nil(t, newChecker().PathToZone(s, geo.Pt(700, 50), s.Get(home)))
}
