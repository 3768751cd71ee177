package spiro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfansharif/spirograph/internal/trochoid"
)

func TestTickCycle(t *testing.T) {
	m := newTestModel(t, trochoid.Inner)
	require.Len(t, m.Path(), 61)

	for i := 1; i <= 60; i++ {
		r := m.Tick()
		require.Equal(t, RedrawIncremental, r.Kind, "tick %d", i)
		require.Equal(t, i, m.Counter())
	}
	assert.True(t, m.Paused())
	assert.Len(t, m.VisiblePath(), 61)

	for i := 61; i <= 159; i++ {
		r := m.Tick()
		require.Equal(t, RedrawIncremental, r.Kind, "tick %d", i)
		require.False(t, r.CycleComplete())
		require.Equal(t, 60, m.Counter())
	}

	r := m.Tick()
	assert.Equal(t, RedrawFull, r.Kind)
	assert.True(t, r.CycleComplete())
	assert.Equal(t, 0, m.Counter())
	assert.False(t, m.Complete(), "repeating curves never complete")
	assert.True(t, r.Region.Bounds().Contains(m.BoundingRect().Center()))

	// And around again.
	r = m.Tick()
	assert.Equal(t, RedrawIncremental, r.Kind)
	assert.Equal(t, 1, m.Counter())
}

func TestTickWithoutRepeat(t *testing.T) {
	m := newTestModel(t, trochoid.Outer)
	m.SetRepeat(false)

	n := len(m.Path())
	var full int
	for i := 0; i < n-1+finalPause; i++ {
		if m.Tick().CycleComplete() {
			full++
		}
	}
	assert.Equal(t, 1, full)
	assert.True(t, m.Complete())
	assert.Len(t, m.VisiblePath(), n, "a completed curve is drawn in full")

	m.SetRepeat(true)
	assert.False(t, m.Complete())
	assert.Equal(t, 0, m.Counter())
}

func TestTickSuspended(t *testing.T) {
	m := newTestModel(t, trochoid.Inner)
	m.Tick()

	m.SetSelected(true)
	for i := 0; i < 10; i++ {
		r := m.Tick()
		assert.Equal(t, RedrawNone, r.Kind)
		assert.Empty(t, r.Region)
	}
	assert.Equal(t, 1, m.Counter())

	m.SetSelected(false)
	m.SetAnimate(false)
	assert.Equal(t, RedrawNone, m.Tick().Kind)
	assert.Equal(t, 1, m.Counter())

	m.SetAnimate(true)
	assert.Equal(t, RedrawIncremental, m.Tick().Kind)
	assert.Equal(t, 2, m.Counter())
}

func TestTickRegion(t *testing.T) {
	m := newTestModel(t, trochoid.Inner)
	path := m.Path()
	before := m.Trace()

	r := m.Tick()
	after := m.Trace()
	// The new segment, and the trace both before and after the step.
	assert.True(t, r.Region.Contains(path[0].Add(m.Location())))
	assert.True(t, r.Region.Contains(path[1].Add(m.Location())))
	assert.True(t, r.Region.Contains(before.MovingCenter))
	assert.True(t, r.Region.Contains(after.MovingCenter))
	assert.True(t, r.Region.Contains(after.Cross.Center()))
	// Nowhere near the curve.
	assert.False(t, r.Region.Contains(m.Location().Add(m.Location())))

	// Without the trace only the segment is invalidated.
	m.SetShowTrace(false)
	r = m.Tick()
	require.Len(t, r.Region, 1)
	assert.True(t, r.Region.Contains(path[2].Add(m.Location())))
	assert.False(t, r.Region.Contains(before.MovingCenter))

	// While paused at the end there's no new segment, only the trace.
	for !m.Paused() {
		m.Tick()
	}
	assert.Empty(t, m.Tick().Region)
}

func TestTickRandomisesOnCycle(t *testing.T) {
	m := newTestModel(t, trochoid.Inner)
	m.SetRandomise(true)
	m.SetMaxRandomDiameter(200)

	ticks := len(m.Path()) - 1 + finalPause
	for i := 0; i < ticks-1; i++ {
		require.NotEqual(t, RedrawFull, m.Tick().Kind)
	}
	r := m.Tick()
	require.Equal(t, RedrawFull, r.Kind)

	checkInvariants(t, m)
	assert.Equal(t, 0, m.Counter())
	assert.LessOrEqual(t, m.Kind().MaxPenDistance(m.params()), 200)
	assert.True(t, r.Region.Bounds().Contains(m.BoundingRect().Center()))
}

func TestRedrawKindString(t *testing.T) {
	assert.Equal(t, "none", RedrawNone.String())
	assert.Equal(t, "incremental", RedrawIncremental.String())
	assert.Equal(t, "full", RedrawFull.String())
}
