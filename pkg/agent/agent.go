// Package agent simulates the residents that travel the road graph and
// settle inside connected residential zones.
package agent

import (
	"fmt"

	"github.com/ChicagoDave/townpaint/pkg/geo"
	"github.com/ChicagoDave/townpaint/pkg/lot"
	"github.com/ChicagoDave/townpaint/pkg/zone"
)

// Phase is a step of the agent state machine. Phases only advance.
type Phase int

const (
	TravelingToNode Phase = iota
	TravelingToArea
	Settling
	Settled
)

var phaseNames = [...]string{"traveling_to_node", "traveling_to_area", "settling", "settled"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	if p < 0 || int(p) >= len(phaseNames) {
		return nil, fmt.Errorf("invalid phase %d", int(p))
	}
	return []byte(phaseNames[p]), nil
}

// UnmarshalText decodes a phase name.
func (p *Phase) UnmarshalText(b []byte) error {
	for i, name := range phaseNames {
		if name == string(b) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", b)
}

// ID identifies an agent. IDs grow with creation order.
type ID int

// Agent is one resident.
type Agent struct {
	ID    ID      `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Phase Phase   `json:"phase"`
	// Zone is the residential zone the agent is headed for.
	Zone zone.ID `json:"zone"`
	// Target is the reserved settle position.
	Target    geo.Point   `json:"target"`
	Path      []geo.Point `json:"path,omitempty"`
	PathIndex int         `json:"path_index"`
	// GridPath is set when Path came from the flood-fill fallback.
	GridPath  bool           `json:"grid_path,omitempty"`
	Speed     float64        `json:"speed"`
	Radius    float64        `json:"radius"`
	Lot       *lot.Lot       `json:"lot,omitempty"`
	Territory *lot.Territory `json:"territory,omitempty"`
}

// Position returns the agent's current position.
func (a *Agent) Position() geo.Point {
	return geo.Pt(a.X, a.Y)
}

func (a *Agent) moveTo(p geo.Point) {
	a.X, a.Y = p.X, p.Y
}

// Step advances the agent by one tick. It returns true on the tick the
// agent arrives at its settle position.
func (a *Agent) Step() bool {
	switch a.Phase {
	case TravelingToNode:
		if a.PathIndex >= len(a.Path) {
			a.Phase = TravelingToArea
			return false
		}
		next, arrived := a.Position().MoveToward(a.Path[a.PathIndex], a.Speed)
		a.moveTo(next)
		if arrived {
			a.PathIndex++
		}

	case TravelingToArea:
		if a.Position().Distance(a.Target) <= a.Speed {
			a.Phase = Settling
			return false
		}
		next, _ := a.Position().MoveToward(a.Target, a.Speed)
		a.moveTo(next)

	case Settling:
		next, arrived := a.Position().MoveToward(a.Target, a.Speed)
		a.moveTo(next)
		if arrived {
			a.moveTo(a.Target)
			a.Phase = Settled
			return true
		}
	}
	return false
}

// claim returns the space the agent holds for lot and territory checks.
func (a *Agent) claim() lot.Claim {
	c := lot.Claim{Position: a.Target}
	if a.Lot != nil {
		c.Lot = a.Lot.Polygon
	}
	if a.Territory != nil {
		c.Territory = a.Territory.Polygon
	}
	return c
}
