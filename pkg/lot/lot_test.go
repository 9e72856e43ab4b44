package lot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChicagoDave/townpaint/pkg/config"
	"github.com/ChicagoDave/townpaint/pkg/geo"
	"github.com/ChicagoDave/townpaint/pkg/zone"
)

func roadside(t *testing.T) (*zone.Store, *zone.Zone) {
	t.Helper()
	s := zone.NewStore(1.5)
	for x := 0.0; x <= 300; x += 10 {
		s.Paint(zone.Road, x, 300, 40)
	}
	home := s.Paint(zone.Residential, 150, 195, 60)
	require.False(t, home.Rejected)
	return s, s.Get(home.Zone)
}

func TestGenerateFacesRoad(t *testing.T) {
	s, z := roadside(t)
	g := NewGenerator(config.Default().Lots, s)

	l := g.Generate(z, geo.Pt(150, 200), nil)
	require.False(t, l.Fallback)
	assert.InDelta(t, 1.0, math.Abs(l.RoadDir.X), 1e-9)
	assert.InDelta(t, 30.0, l.Depth, 1e-9)
	assert.InDelta(t, 28.0, l.Width, 1e-9)
	assert.Equal(t, geo.Pt(150, 206), l.Front)
	require.Equal(t, 4, l.Polygon.Len())
	assert.InDelta(t, 840.0, l.Polygon.Area(), 1e-6)
	for _, v := range l.Polygon.Vertices {
		assert.True(t, z.Contains(v, 0), "vertex %v outside zone", v)
		assert.LessOrEqual(t, v.Y, 206.0, "lot extends toward the road")
	}
}

func TestGenerateStopsAtClaims(t *testing.T) {
	s, z := roadside(t)
	g := NewGenerator(config.Default().Lots, s)

	other := Claim{Position: geo.Pt(150, 185)}
	l := g.Generate(z, geo.Pt(150, 200), []Claim{other})
	assert.InDelta(t, 12.0, l.Depth, 1e-9)
}

func TestGenerateClampsDepth(t *testing.T) {
	s, z := roadside(t)
	g := NewGenerator(config.Default().Lots, s)

	other := Claim{Position: geo.Pt(150, 200)}
	l := g.Generate(z, geo.Pt(150, 200), []Claim{other})
	assert.Equal(t, config.Default().Lots.MinDepth, l.Depth)
}

func TestGenerateFallback(t *testing.T) {
	s := zone.NewStore(1.5)
	home := s.Paint(zone.Residential, 400, 300, 50)
	g := NewGenerator(config.Default().Lots, s)

	pos := geo.Pt(400, 300)
	l := g.Generate(s.Get(home.Zone), pos, nil)
	assert.True(t, l.Fallback)
	assert.Equal(t, 8, l.Polygon.Len())
	assert.True(t, l.Polygon.Contains(pos))
	for _, v := range l.Polygon.Vertices {
		assert.InDelta(t, 10.0, v.Distance(pos), 1e-9)
	}
}

func TestClaimCovers(t *testing.T) {
	c := Claim{
		Lot:       geo.NewPolygon(geo.Pt(0, 0), geo.Pt(10, 0), geo.Pt(10, 10), geo.Pt(0, 10)),
		Territory: geo.RegularPolygon(geo.Pt(50, 50), 5, 8),
	}
	assert.True(t, c.Covers(geo.Pt(5, 5)))
	assert.True(t, c.Covers(geo.Pt(50, 51)))
	assert.False(t, c.Covers(geo.Pt(30, 30)))
}
