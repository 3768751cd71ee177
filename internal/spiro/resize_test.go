package spiro

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfansharif/spirograph/internal/geom"
	"github.com/irfansharif/spirograph/internal/trochoid"
)

func TestResizeFixedCircle(t *testing.T) {
	m := newTestModel(t, trochoid.Inner)
	path := m.Path()

	// 97 snaps back to 96: nothing changes, the path survives.
	m.ResizeFixedCircle(geom.MakePoint(250+97, 250))
	assert.Equal(t, 96, m.FixedRadius())
	assert.Same(t, &path[0], &m.Path()[0])

	m.ResizeFixedCircle(geom.MakePoint(250, 250+101))
	assert.Equal(t, 99, m.FixedRadius())
	checkInvariants(t, m)

	// Dragging onto the center clamps to the smallest fixed circle that can
	// hold the moving one, then snaps 41 → 42 (6 orbits rather than 36).
	m.ResizeFixedCircle(DefaultLocation)
	assert.Equal(t, 42, m.FixedRadius())
	checkInvariants(t, m)
}

func TestResizeMovingCircle(t *testing.T) {
	for _, tc := range []struct {
		kind   trochoid.Kind
		cursor geom.Point
	}{
		// The moving circle touches the fixed one at (96, 0); a cursor 80
		// units across from the contact point makes a circle of radius 40.
		{trochoid.Inner, geom.MakePoint(250+16, 250)},
		{trochoid.Outer, geom.MakePoint(250+176, 250)},
	} {
		t.Run(tc.kind.String(), func(t *testing.T) {
			m := newTestModel(t, tc.kind)
			m.ResizeMovingCircle(tc.cursor)
			assert.Equal(t, 40, m.MovingRadius())
			assert.Equal(t, 96, m.FixedRadius())
			checkInvariants(t, m)
		})
	}
}

func TestResizeMovingCircleClamps(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, kind := range []trochoid.Kind{trochoid.Outer, trochoid.Inner} {
		m := newTestModel(t, kind)
		for i := 0; i < 500; i++ {
			pt := geom.MakePoint(rng.Float64()*2000-750, rng.Float64()*2000-750)
			m.ResizeMovingCircle(pt)
			checkInvariants(t, m)
			if i%50 == 0 {
				m.ResizeFixedCircle(pt)
				checkInvariants(t, m)
			}
		}
		// The contact point itself is degenerate (zero-length chord).
		m.ResizeMovingCircle(m.Location().Add(m.fixedCirclePoint().Round()))
		checkInvariants(t, m)
	}
}

func TestResize(t *testing.T) {
	m := newTestModel(t, trochoid.Inner)
	ref := m.Clone()

	// 96:36 is 8:3, so the fixed radius moves in steps of 8.
	m.Resize(ref, 20)
	assert.Equal(t, 120, m.FixedRadius())
	assert.Equal(t, 45, m.MovingRadius())
	assert.Equal(t, 25, m.PenDistance())
	checkInvariants(t, m)

	m.Resize(ref, -40)
	assert.Equal(t, 56, m.FixedRadius())
	assert.Equal(t, 21, m.MovingRadius())
	checkInvariants(t, m)

	// Too small: 8/3 is the smallest multiple, with r < 5.
	before := m.Record()
	m.Resize(ref, -90)
	assert.Equal(t, before, m.Record())
}

func TestResizeZeroDeltaIsNoop(t *testing.T) {
	m := newTestModel(t, trochoid.Outer)
	m.Tick()
	path := m.Path()
	before := m.Record()

	m.Resize(m.Clone(), 0)
	assert.Equal(t, before, m.Record())
	assert.Equal(t, 1, m.Counter(), "no reset side effects")
	assert.Same(t, &path[0], &m.Path()[0], "sample path must not be invalidated")
}

func TestResizeKeepsInnerGap(t *testing.T) {
	// 30:25 is 6:5; shrinking to 12:10 would leave the circles 2 apart.
	m := NewWith(trochoid.Inner, 30, 25, 10, DefaultLocation)
	ref := m.Clone()
	m.Resize(ref, -18)
	assert.Equal(t, 30, m.FixedRadius())
	assert.Equal(t, 25, m.MovingRadius())
	checkInvariants(t, m)
}

func TestMovePen(t *testing.T) {
	m := newTestModel(t, trochoid.Inner)
	path := m.Path()

	// The moving circle's center is at (60, 0).
	m.MovePen(geom.MakePoint(250+60+20, 250))
	assert.Equal(t, 20, m.PenDistance())
	assert.Same(t, &path[0], &m.Path()[0])

	m.MovePen(geom.MakePoint(250+60, 250+30))
	assert.Equal(t, 30, m.PenDistance())
	require.Len(t, m.Path(), 61)
	assert.InDelta(t, 30, geom.Dist(m.MovingCircleCenter(), m.PenPoint()), 1e-9)
}
