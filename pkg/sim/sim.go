// Package sim composes the zone store, road network, connectivity checker and
// agent population into one frame-driven simulation.
package sim

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/ChicagoDave/townpaint/pkg/agent"
	"github.com/ChicagoDave/townpaint/pkg/config"
	"github.com/ChicagoDave/townpaint/pkg/connectivity"
	"github.com/ChicagoDave/townpaint/pkg/geo"
	"github.com/ChicagoDave/townpaint/pkg/roadnet"
	"github.com/ChicagoDave/townpaint/pkg/validation"
	"github.com/ChicagoDave/townpaint/pkg/zone"
)

// Transition is a change in a zone's connectivity between two passes.
type Transition struct {
	Zone      zone.ID `json:"zone"`
	Connected bool    `json:"connected"`
}

// TickResult reports what one tick did. Failures recovered during the tick
// appear as errors in Report; the simulation keeps running regardless.
type TickResult struct {
	Tick        int                `json:"tick"`
	Rebuilt     bool               `json:"rebuilt"`
	Recomputed  bool               `json:"recomputed"`
	Transitions []Transition       `json:"transitions,omitempty"`
	Events      []agent.Event      `json:"events,omitempty"`
	Report      *validation.Report `json:"report"`
}

// Sim is the whole simulation state. It is not safe for concurrent use.
type Sim struct {
	cfg   config.Config
	log   *slog.Logger
	world geo.Rect

	store   *zone.Store
	builder *roadnet.Builder
	checker *connectivity.Checker
	pop     *agent.Population

	graph     *roadnet.Graph
	connected map[zone.ID]bool

	graphDirty bool
	connDirty  bool
	ticks      int
}

// New creates an empty simulation. A nil logger uses slog.Default().
func New(cfg config.Config, log *slog.Logger) *Sim {
	if log == nil {
		log = slog.Default()
	}
	world := geo.Rect{Width: cfg.World.Width, Height: cfg.World.Height}
	store := zone.NewStore(cfg.Zones.MergeFactor)
	checker := connectivity.NewChecker(cfg.Connectivity, world)
	return &Sim{
		cfg:       cfg,
		log:       log,
		world:     world,
		store:     store,
		builder:   roadnet.NewBuilder(cfg.Roads, world, log),
		checker:   checker,
		pop:       agent.NewPopulation(cfg, store, checker, log),
		graph:     roadnet.NewGraph(cfg.Roads.ConnectionRadius),
		connected: make(map[zone.ID]bool),
	}
}

// Config returns the configuration the simulation was built with.
func (s *Sim) Config() config.Config { return s.cfg }

// World returns the world extent.
func (s *Sim) World() geo.Rect { return s.world }

// Zones returns the zone store. Callers must mutate it only through Paint
// and Erase.
func (s *Sim) Zones() *zone.Store { return s.store }

// Graph returns the road graph from the most recent rebuild.
func (s *Sim) Graph() *roadnet.Graph { return s.graph }

// Population returns the agents and spawn queue.
func (s *Sim) Population() *agent.Population { return s.pop }

// Connected reports the last connectivity result for a zone.
func (s *Sim) Connected(id zone.ID) bool { return s.connected[id] }

// Connectivity returns a copy of the last connectivity pass.
func (s *Sim) Connectivity() map[zone.ID]bool { return maps.Clone(s.connected) }

// Dirty reports whether the graph and connectivity are stale.
func (s *Sim) Dirty() (graph, conn bool) { return s.graphDirty, s.connDirty }

// Ticks returns the number of ticks run.
func (s *Sim) Ticks() int { return s.ticks }

// Paint adds a circle of the given kind. Agents bound for zones absorbed by
// the merge follow the surviving zone.
func (s *Sim) Paint(kind zone.Kind, x, y, radius float64) zone.PaintResult {
	res := s.store.Paint(kind, x, y, radius)
	s.markDirty()
	if res.Rejected {
		return res
	}
	if len(res.Absorbed) > 0 {
		s.pop.Retarget(res.Absorbed, res.Zone)
		for _, id := range res.Absorbed {
			if s.connected[id] {
				s.connected[res.Zone] = true
			}
			delete(s.connected, id)
		}
	}
	return res
}

// Erase removes circles within radius of (x, y) from every zone.
func (s *Sim) Erase(x, y, radius float64) zone.EraseResult {
	res := s.store.Erase(x, y, radius)
	s.markDirty()
	return res
}

func (s *Sim) markDirty() {
	s.graphDirty = true
	s.connDirty = true
}

// Tick advances the simulation by one step of dt: rebuild the graph if
// stale, recompute connectivity if stale and react to transitions, drain at
// most one queued spawn, then step every agent.
func (s *Sim) Tick(dt time.Duration) (res *TickResult) {
	s.ticks++
	res = &TickResult{Tick: s.ticks, Report: validation.NewReport()}
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("tick failed", "tick", s.ticks, "error", r)
			res.Report.AddError(validation.Result{
				Level:   validation.LevelTick,
				Message: fmt.Sprintf("tick %d aborted: %v", s.ticks, r),
			})
		}
	}()

	if s.graphDirty {
		g, report := s.builder.Rebuild(s.store)
		s.graph = g
		s.graphDirty = false
		res.Rebuilt = true
		res.Report.Merge(report)
	}

	if s.connDirty {
		next := s.checker.ComputeAll(s.store)
		res.Transitions = s.transitions(next)
		res.Events = append(res.Events, s.pop.React(s.graph, s.connected, next)...)
		s.connected = next
		s.connDirty = false
		res.Recomputed = true
		for _, tr := range res.Transitions {
			s.log.Info("zone connectivity changed", "zone", tr.Zone, "connected", tr.Connected)
			res.Report.AddInfo(validation.Result{
				Level:       validation.LevelConnectivity,
				Message:     fmt.Sprintf("zone %d connected=%t", tr.Zone, tr.Connected),
				ActualValue: tr.Connected,
			})
		}
	}

	if a := s.pop.Drain(dt); a != nil {
		res.Events = append(res.Events, agent.Event{Kind: agent.EventSpawned, Zone: a.Zone, Agent: a.ID})
	}
	res.Events = append(res.Events, s.pop.Step()...)
	return res
}

// transitions lists zones whose connectivity differs from the last pass,
// including zones that vanished while connected, in zone order.
func (s *Sim) transitions(next map[zone.ID]bool) []Transition {
	var out []Transition
	for id, was := range s.connected {
		now, ok := next[id]
		if was && !ok {
			out = append(out, Transition{Zone: id, Connected: false})
		} else if ok && now != was {
			out = append(out, Transition{Zone: id, Connected: now})
		}
	}
	for id, now := range next {
		if _, ok := s.connected[id]; !ok && now {
			out = append(out, Transition{Zone: id, Connected: true})
		}
	}
	slices.SortFunc(out, func(a, b Transition) int { return int(a.Zone - b.Zone) })
	return out
}

// Territories recomputes the territory polygon of every settled agent.
func (s *Sim) Territories() {
	s.pop.Territories()
}

// Run ticks n times with a fixed step and returns every result that carried
// a transition, an event or a failure.
func (s *Sim) Run(n int, dt time.Duration) []*TickResult {
	var out []*TickResult
	for i := 0; i < n; i++ {
		res := s.Tick(dt)
		if len(res.Transitions) > 0 || len(res.Events) > 0 || !res.Report.Valid {
			out = append(out, res)
		}
	}
	return out
}
