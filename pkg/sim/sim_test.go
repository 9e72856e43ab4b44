package sim

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChicagoDave/townpaint/pkg/agent"
	"github.com/ChicagoDave/townpaint/pkg/config"
	"github.com/ChicagoDave/townpaint/pkg/validation"
	"github.com/ChicagoDave/townpaint/pkg/zone"
)

const frame = 16 * time.Millisecond

// straightRoadTown paints a radius-40 road from the left world edge 300
// units across, with a radius-60 residential zone beside its midpoint.
func straightRoadTown(t *testing.T) (*Sim, zone.ID) {
	t.Helper()
	s := New(config.Default(), nil)
	for x := 0.0; x <= 300; x += 10 {
		s.Paint(zone.Road, x, 300, 40)
	}
	res := s.Paint(zone.Residential, 150, 195, 60)
	require.False(t, res.Rejected)
	return s, res.Zone
}

func TestStraightRoadScenario(t *testing.T) {
	s, home := straightRoadTown(t)

	graphDirty, connDirty := s.Dirty()
	require.True(t, graphDirty)
	require.True(t, connDirty)

	first := s.Tick(frame)
	assert.True(t, first.Rebuilt)
	assert.True(t, first.Recomputed)
	assert.True(t, first.Report.Valid)
	assert.Equal(t, []Transition{{Zone: home, Connected: true}}, first.Transitions)
	assert.GreaterOrEqual(t, s.Graph().Len(), 3)
	assert.True(t, s.Connected(home))

	graphDirty, connDirty = s.Dirty()
	assert.False(t, graphDirty)
	assert.False(t, connDirty)

	s.Run(1500, frame)

	settled := 0
	for _, a := range s.Population().Agents() {
		if a.Phase == agent.Settled {
			settled++
			assert.NotNil(t, a.Lot)
		}
	}
	assert.GreaterOrEqual(t, settled, 1)
	assert.LessOrEqual(t, s.Population().Count(home), s.Population().MaxAgents(s.Zones().Get(home)))
}

func TestPopulationReachesCapacity(t *testing.T) {
	cfg := config.Default()
	cfg.Agents.FootprintRadius = 25
	s := New(cfg, nil)
	for x := 0.0; x <= 300; x += 10 {
		s.Paint(zone.Road, x, 300, 40)
	}
	home := s.Paint(zone.Residential, 150, 195, 60).Zone

	s.Run(2000, frame)
	z := s.Zones().Get(home)
	assert.Equal(t, s.Population().MaxAgents(z), len(s.Population().Agents()))
	assert.Empty(t, s.Population().Queued())
}

func TestEraseRoadDisconnects(t *testing.T) {
	s, home := straightRoadTown(t)
	s.Run(300, frame)
	require.True(t, s.Connected(home))
	require.NotZero(t, s.Population().Count(home))

	for x := 0.0; x <= 300; x += 10 {
		s.Erase(x, 300, 30)
	}
	require.Empty(t, s.Zones().Roads())
	require.NotNil(t, s.Zones().Get(home))

	res := s.Tick(frame)
	assert.Equal(t, []Transition{{Zone: home, Connected: false}}, res.Transitions)
	assert.False(t, s.Connected(home))
	assert.Zero(t, s.Population().Count(home))
	assert.Zero(t, s.Graph().Len())
}

func TestEraseZoneVanishes(t *testing.T) {
	s, home := straightRoadTown(t)
	s.Run(50, frame)

	s.Erase(150, 195, 5)
	res := s.Tick(frame)
	assert.Equal(t, []Transition{{Zone: home, Connected: false}}, res.Transitions)
	assert.Zero(t, s.Population().Count(home))
}

func TestSingleFootprintCapacity(t *testing.T) {
	cfg := config.Default()
	s := New(cfg, nil)
	r2 := cfg.Agents.FootprintRadius * cfg.Agents.FootprintRadius / cfg.Agents.PackingEfficiency
	res := s.Paint(zone.Residential, 400, 300, math.Sqrt(r2))
	assert.Equal(t, 1, s.Population().MaxAgents(s.Zones().Get(res.Zone)))
}

func TestMergeRetargetsAgents(t *testing.T) {
	s, home := straightRoadTown(t)
	s.Run(20, frame)
	require.NotZero(t, s.Population().Count(home))
	before := s.Population().Count(home)

	// A second zone to the right, then a stroke that joins the two.
	other := s.Paint(zone.Residential, 250, 170, 40)
	require.True(t, other.Created)
	bridge := s.Paint(zone.Residential, 200, 182, 40)
	require.Equal(t, home, bridge.Zone)
	require.Contains(t, bridge.Absorbed, other.Zone)

	s.Tick(frame)
	assert.True(t, s.Connected(home))
	assert.GreaterOrEqual(t, s.Population().Count(home), before)
	assert.Zero(t, s.Population().Count(other.Zone))
}

func TestRejectedPaintStillMarksDirty(t *testing.T) {
	s, _ := straightRoadTown(t)
	s.Tick(frame)
	res := s.Paint(zone.Residential, 150, 300, 20)
	assert.True(t, res.Rejected)
	g, c := s.Dirty()
	assert.True(t, g)
	assert.True(t, c)
}

func TestTickRecoversFailure(t *testing.T) {
	s, _ := straightRoadTown(t)
	s.store = nil

	res := s.Tick(frame)
	assert.False(t, res.Report.Valid)
	assert.True(t, res.Report.HasLevel(validation.LevelRebuild))
	assert.True(t, res.Report.HasLevel(validation.LevelTick))
	graphDirty, _ := s.Dirty()
	assert.False(t, graphDirty, "rebuild failure still clears the flag")
	assert.Equal(t, 1, s.Ticks())
}

func TestReplayProject(t *testing.T) {
	p, err := config.LoadProject("../config/testdata/straight-road")
	require.NoError(t, err)

	s := New(p.Settings, nil)
	require.NoError(t, s.ReplayAll(p.Strokes))
	require.Len(t, s.Zones().Roads(), 1)
	require.Len(t, s.Zones().Residential(), 1)

	s.Run(p.Ticks, p.Settings.Sim.Tick)
	home := s.Zones().Residential()[0].ID
	assert.True(t, s.Connected(home))

	settled := 0
	for _, a := range s.Population().Agents() {
		if a.Phase == agent.Settled {
			settled++
		}
	}
	assert.GreaterOrEqual(t, settled, 1)
}

func TestReplayRejectsUnknownKind(t *testing.T) {
	s := New(config.Default(), nil)
	_, err := s.Replay(config.Stroke{Op: config.OpPaint, Kind: "park", Radius: 5, Points: [][]float64{{1, 1}}})
	assert.Error(t, err)
}

func BenchmarkTickDenseWorld(b *testing.B) {
	cfg := config.Default()
	s := New(cfg, nil)
	for y := 50.0; y <= 550; y += 100 {
		for x := 0.0; x <= cfg.World.Width; x += 10 {
			s.Paint(zone.Road, x, y, 20)
		}
	}
	for y := 100.0; y <= 500; y += 100 {
		for x := 60.0; x < cfg.World.Width; x += 120 {
			s.Paint(zone.Residential, x, y, 25)
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Erase(5, 50, 1)
		s.Paint(zone.Road, 5, 50, 20)
		s.Tick(frame)
	}
}
