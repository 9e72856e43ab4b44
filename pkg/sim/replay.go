package sim

import (
	"fmt"

	"github.com/ChicagoDave/townpaint/pkg/config"
	"github.com/ChicagoDave/townpaint/pkg/geo"
	"github.com/ChicagoDave/townpaint/pkg/zone"
)

// Replay feeds a scripted stroke through the smoothing front-end into Paint
// or Erase. It returns the number of brush applications.
func (s *Sim) Replay(st config.Stroke) (int, error) {
	var apply func(p geo.Point)
	switch st.Op {
	case config.OpPaint:
		kind, ok := zone.ParseKind(st.Kind)
		if !ok {
			return 0, fmt.Errorf("unknown zone kind %q", st.Kind)
		}
		apply = func(p geo.Point) { s.Paint(kind, p.X, p.Y, st.Radius) }
	case config.OpErase:
		apply = func(p geo.Point) { s.Erase(p.X, p.Y, st.Radius) }
	default:
		return 0, fmt.Errorf("unknown op %q", st.Op)
	}

	stroke := zone.NewStroke(st.Radius)
	n := 0
	for _, smp := range st.Samples() {
		for _, p := range stroke.Add(geo.Pt(smp.X, smp.Y), smp.At) {
			apply(p)
			n++
		}
	}
	for _, p := range stroke.End() {
		apply(p)
		n++
	}
	return n, nil
}

// ReplayAll replays strokes in order. No ticks are run.
func (s *Sim) ReplayAll(strokes []config.Stroke) error {
	for i, st := range strokes {
		if _, err := s.Replay(st); err != nil {
			return fmt.Errorf("strokes[%d]: %w", i, err)
		}
	}
	return nil
}
