package agent

import (
	"log/slog"
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/ChicagoDave/townpaint/pkg/config"
	"github.com/ChicagoDave/townpaint/pkg/connectivity"
	"github.com/ChicagoDave/townpaint/pkg/geo"
	"github.com/ChicagoDave/townpaint/pkg/lot"
	"github.com/ChicagoDave/townpaint/pkg/roadnet"
	"github.com/ChicagoDave/townpaint/pkg/zone"
)

// Population owns the live agents and the spawn queue.
type Population struct {
	cfg      config.AgentsDef
	world    geo.Rect
	store    *zone.Store
	conn     *connectivity.Checker
	lots     *lot.Generator
	surveyor *lot.Surveyor
	rng      *rand.Rand
	log      *slog.Logger

	agents     []*Agent
	queue      []*Agent
	sinceDrain time.Duration
	nextID     ID
}

// NewPopulation creates an empty population over the given store.
func NewPopulation(cfg config.Config, store *zone.Store, conn *connectivity.Checker, log *slog.Logger) *Population {
	if log == nil {
		log = slog.Default()
	}
	world := geo.Rect{Width: cfg.World.Width, Height: cfg.World.Height}
	seed := cfg.Agents.Seed
	return &Population{
		cfg:        cfg.Agents,
		world:      world,
		store:      store,
		conn:       conn,
		lots:       lot.NewGenerator(cfg.Lots, store),
		surveyor:   lot.NewSurveyor(cfg.Territory, world, store),
		rng:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		log:        log,
		sinceDrain: cfg.Agents.SpawnDelay,
		nextID:     1,
	}
}

// Agents returns the live agents in creation order.
func (p *Population) Agents() []*Agent { return p.agents }

// Queued returns the pending spawns in drain order.
func (p *Population) Queued() []*Agent { return p.queue }

// MaxAgents is the capacity of a zone: its circle area divided by the
// per-agent footprint, scaled by the packing efficiency and clamped to
// [0, MaxPerZone].
func (p *Population) MaxAgents(z *zone.Zone) int {
	return Capacity(p.cfg, z)
}

// Capacity computes MaxAgents for the given agent settings.
func Capacity(cfg config.AgentsDef, z *zone.Zone) int {
	if z == nil {
		return 0
	}
	footprint := math.Pi * cfg.FootprintRadius * cfg.FootprintRadius
	if footprint <= 0 {
		return 0
	}
	n := int(math.Floor(z.Area()/footprint*cfg.PackingEfficiency + 1e-9))
	return max(0, min(n, cfg.MaxPerZone))
}

// Count returns the live plus queued agents targeting a zone.
func (p *Population) Count(id zone.ID) int {
	n := 0
	for _, a := range p.agents {
		if a.Zone == id {
			n++
		}
	}
	for _, a := range p.queue {
		if a.Zone == id {
			n++
		}
	}
	return n
}

// Retarget moves agents aimed at absorbed zones onto the survivor.
func (p *Population) Retarget(absorbed []zone.ID, survivor zone.ID) {
	if len(absorbed) == 0 {
		return
	}
	for _, list := range [][]*Agent{p.agents, p.queue} {
		for _, a := range list {
			if slices.Contains(absorbed, a.Zone) {
				a.Zone = survivor
			}
		}
	}
}

// React applies connectivity results. prev holds the previous pass, next
// the current one.
//
//   - newly connected zones queue their full shortfall;
//   - zones that stay connected spawn any shortfall immediately, or trim a
//     surplus after shrinking;
//   - disconnected or deleted zones lose every agent at once.
func (p *Population) React(g *roadnet.Graph, prev, next map[zone.ID]bool) []Event {
	var events []Event

	for _, id := range p.targetedZones() {
		if next[id] && p.store.Get(id) != nil {
			continue
		}
		if n := p.removeZone(id); n > 0 {
			p.log.Info("zone disconnected, agents removed", "zone", id, "count", n)
			events = append(events, Event{Kind: EventRemoved, Zone: id, Count: n})
		}
	}

	for _, z := range p.store.Residential() {
		if !next[z.ID] {
			continue
		}
		events = append(events, p.fill(g, z, !prev[z.ID])...)
		events = append(events, p.trim(z)...)
	}
	return events
}

// fill spawns agents until the zone reaches capacity or no free position
// remains. Queued spawns wait for Drain; live spawns start moving this tick.
func (p *Population) fill(g *roadnet.Graph, z *zone.Zone, queued bool) []Event {
	var events []Event
	short := p.MaxAgents(z) - p.Count(z.ID)
	for i := 0; i < short; i++ {
		a, ok := p.spawn(g, z)
		if !ok {
			p.log.Debug("no free position", "zone", z.ID, "remaining", short-i)
			events = append(events, Event{Kind: EventPlacementFailed, Zone: z.ID, Count: short - i})
			break
		}
		if queued {
			p.queue = append(p.queue, a)
			events = append(events, Event{Kind: EventQueued, Zone: z.ID, Agent: a.ID})
		} else {
			p.agents = append(p.agents, a)
			events = append(events, Event{Kind: EventSpawned, Zone: z.ID, Agent: a.ID})
		}
	}
	return events
}

// trim removes agents above capacity: those whose settle position no longer
// lies in the zone go first, then the newest.
func (p *Population) trim(z *zone.Zone) []Event {
	surplus := p.Count(z.ID) - p.MaxAgents(z)
	if surplus <= 0 {
		return nil
	}
	var cands []*Agent
	for _, list := range [][]*Agent{p.agents, p.queue} {
		for _, a := range list {
			if a.Zone == z.ID {
				cands = append(cands, a)
			}
		}
	}
	slices.SortStableFunc(cands, func(a, b *Agent) int {
		ao, bo := !z.Contains(a.Target, 0), !z.Contains(b.Target, 0)
		if ao != bo {
			if ao {
				return -1
			}
			return 1
		}
		return int(b.ID - a.ID)
	})

	drop := make(map[ID]bool, surplus)
	var events []Event
	for _, a := range cands[:surplus] {
		drop[a.ID] = true
		events = append(events, Event{Kind: EventTrimmed, Zone: z.ID, Agent: a.ID})
	}
	keep := func(a *Agent) bool { return !drop[a.ID] }
	p.agents = filter(p.agents, keep)
	p.queue = filter(p.queue, keep)
	p.log.Info("zone shrank, agents trimmed", "zone", z.ID, "count", surplus)
	return events
}

func (p *Population) removeZone(id zone.ID) int {
	before := len(p.agents) + len(p.queue)
	keep := func(a *Agent) bool { return a.Zone != id }
	p.agents = filter(p.agents, keep)
	p.queue = filter(p.queue, keep)
	return before - len(p.agents) - len(p.queue)
}

func (p *Population) targetedZones() []zone.ID {
	var ids []zone.ID
	for _, list := range [][]*Agent{p.agents, p.queue} {
		for _, a := range list {
			if !slices.Contains(ids, a.Zone) {
				ids = append(ids, a.Zone)
			}
		}
	}
	return ids
}

// Drain moves at most one queued spawn into the live population once the
// spawn delay has elapsed since the previous drain.
func (p *Population) Drain(dt time.Duration) *Agent {
	p.sinceDrain += dt
	if p.sinceDrain > p.cfg.SpawnDelay {
		p.sinceDrain = p.cfg.SpawnDelay
	}
	if len(p.queue) == 0 || p.sinceDrain < p.cfg.SpawnDelay {
		return nil
	}
	a := p.queue[0]
	p.queue[0] = nil
	p.queue = p.queue[1:]
	p.agents = append(p.agents, a)
	p.sinceDrain = 0
	return a
}

// Step advances every live agent. Agents arriving this tick get their lot.
func (p *Population) Step() []Event {
	var events []Event
	for _, a := range p.agents {
		if !a.Step() {
			continue
		}
		l := p.lots.Generate(p.store.Get(a.Zone), a.Target, p.claims(a))
		a.Lot = &l
		events = append(events, Event{Kind: EventSettled, Zone: a.Zone, Agent: a.ID})
	}
	return events
}

// Territories recomputes the territory of every settled agent in creation
// order. Each agent sees the territories already computed in this pass.
func (p *Population) Territories() {
	fresh := make(map[ID]bool)
	for _, a := range p.agents {
		if a.Phase != Settled {
			continue
		}
		var others []lot.Claim
		for _, o := range p.agents {
			if o == a {
				continue
			}
			c := lot.Claim{Position: o.Target}
			if fresh[o.ID] {
				c.Territory = o.Territory.Polygon
			}
			others = append(others, c)
		}
		t := p.surveyor.Survey(p.store.Get(a.Zone), a.Target, others)
		a.Territory = &t
		fresh[a.ID] = true
	}
}

// claims collects the space held by every live or queued agent other than
// self.
func (p *Population) claims(self *Agent) []lot.Claim {
	var out []lot.Claim
	for _, list := range [][]*Agent{p.agents, p.queue} {
		for _, a := range list {
			if a != self {
				out = append(out, a.claim())
			}
		}
	}
	return out
}

func filter(as []*Agent, keep func(*Agent) bool) []*Agent {
	out := as[:0]
	for _, a := range as {
		if keep(a) {
			out = append(out, a)
		}
	}
	for i := len(out); i < len(as); i++ {
		as[i] = nil
	}
	return out
}
