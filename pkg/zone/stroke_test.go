package zone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChicagoDave/townpaint/pkg/geo"
)

func TestStrokeContinuous(t *testing.T) {
	s := NewStroke(20)
	raw := []geo.Point{{X: 0, Y: 0}, {X: 40, Y: 0}, {X: 80, Y: 40}, {X: 80, Y: 100}}

	var out []geo.Point
	for i, p := range raw {
		out = append(out, s.Add(p, time.Duration(i)*16*time.Millisecond)...)
	}
	out = append(out, s.End()...)

	require.NotEmpty(t, out)
	assert.Equal(t, raw[0], out[0])
	assert.Equal(t, raw[len(raw)-1], out[len(out)-1])
	for i := 1; i < len(out); i++ {
		assert.LessOrEqual(t, out[i-1].Distance(out[i]), 20*spacingFrac+0.5,
			"gap between samples %d and %d", i-1, i)
	}
	assert.Equal(t, 4, s.Samples())
}

func TestStrokeFastIsDenser(t *testing.T) {
	slow := NewStroke(20)
	fast := NewStroke(20)
	raw := []geo.Point{{X: 0, Y: 0}, {X: 30, Y: 0}, {X: 60, Y: 30}}

	var nSlow, nFast int
	for i, p := range raw {
		nSlow += len(slow.Add(p, time.Duration(i)*200*time.Millisecond))
		nFast += len(fast.Add(p, time.Duration(i)*5*time.Millisecond))
	}
	assert.Greater(t, nFast, nSlow)
}

func TestStrokeSinglePoint(t *testing.T) {
	s := NewStroke(10)
	out := s.Add(geo.Pt(5, 5), 0)
	assert.Equal(t, []geo.Point{{X: 5, Y: 5}}, out)
	assert.Empty(t, s.End())
}
