package spiro

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfansharif/spirograph/internal/geom"
	"github.com/irfansharif/spirograph/internal/trochoid"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

var approx = cmpopts.EquateApprox(0, 1e-9)

// newTestModel returns the 96/36/20 curve at resolution 10, which has a
// 61-point path.
func newTestModel(t *testing.T, kind trochoid.Kind) *Model {
	t.Helper()
	m := NewWith(kind, 96, 36, 20, DefaultLocation)
	m.SetRand(rand.New(rand.NewSource(42)))
	m.SetSpeed(1)
	require.Equal(t, 10, m.Resolution())
	return m
}

func checkInvariants(t *testing.T, m *Model) {
	t.Helper()
	p := m.params()
	assert.GreaterOrEqual(t, m.FixedRadius(), m.Kind().MinFixedRadius(p), "R below minimum")
	assert.LessOrEqual(t, m.MovingRadius(), m.Kind().MaxMovingRadius(p), "r above maximum")
	assert.GreaterOrEqual(t, m.MovingRadius(), trochoid.MinRadius, "r below minimum")
	if m.Kind() == trochoid.Inner {
		assert.Greater(t, m.FixedRadius(), m.MovingRadius())
	}
	path := m.Path()
	assert.Equal(t, 2*m.Orbits()*m.Resolution()+1, len(path))
	assert.Equal(t, 1, len(path)%2, "path length must be odd")
}

func TestDefaults(t *testing.T) {
	for _, kind := range []trochoid.Kind{trochoid.Outer, trochoid.Inner} {
		m := New(kind)
		assert.Equal(t, DefaultFixed, m.FixedRadius())
		assert.Equal(t, DefaultMoving, m.MovingRadius())
		assert.Equal(t, DefaultPen, m.PenDistance())
		assert.Equal(t, DefaultLocation, m.Location())
		assert.True(t, m.Animate())
		assert.True(t, m.Repeat())
		assert.True(t, m.ShowTrace())
		assert.False(t, m.Selected())
		checkInvariants(t, m)
	}
}

func TestNewWithClamps(t *testing.T) {
	m := NewWith(trochoid.Inner, 20, 30, 10, DefaultLocation)
	checkInvariants(t, m)
	assert.Equal(t, 35, m.FixedRadius(), "R grows to fit r")
	assert.Equal(t, 30, m.MovingRadius())

	m = NewWith(trochoid.Outer, 0, -4, -1, DefaultLocation)
	checkInvariants(t, m)
	assert.Equal(t, 5, m.FixedRadius())
	assert.Equal(t, 5, m.MovingRadius())
	assert.Equal(t, 0, m.PenDistance())

	m = NewWith(trochoid.Inner, 6, 5, 0, DefaultLocation)
	checkInvariants(t, m)
	assert.Equal(t, 10, m.FixedRadius())
}

func TestScenarioSampleCount(t *testing.T) {
	m := newTestModel(t, trochoid.Inner)
	assert.Equal(t, 12, GCD(96, 36))
	assert.Equal(t, 3, m.Orbits())
	assert.Len(t, m.Path(), 61)

	info := m.Info()
	diff(t, Info{Fixed: 96, Moving: 36, Pen: 20, Orbits: 3, GCD: 12, Resolution: 10}, info)
}

func TestPathFollowsVariant(t *testing.T) {
	m := newTestModel(t, trochoid.Outer)
	path := m.Path()
	p := m.params()
	for i := range path {
		diff(t, trochoid.Outer.Point(p, float64(i)*3.141592653589793/10), path[i], approx)
	}
	// The path closes on itself.
	diff(t, path[0], path[len(path)-1], cmpopts.EquateApprox(0, 1e-6))
}

func TestPathLengthAfterEdits(t *testing.T) {
	m := New(trochoid.Inner)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		switch i % 4 {
		case 0:
			m.SetFixedRadius(5 + rng.Intn(300))
		case 1:
			m.SetMovingRadius(5 + rng.Intn(200))
		case 2:
			m.SetPenDistance(rng.Intn(150))
		case 3:
			m.SetSpeed(float64(rng.Intn(60)))
		}
		checkInvariants(t, m)
	}
}

func TestResetKeepsPhase(t *testing.T) {
	m := newTestModel(t, trochoid.Inner)
	for i := 0; i < 7; i++ {
		m.Tick()
	}
	center := m.MovingCircleCenter()

	m.SetPenDistance(25)
	assert.Equal(t, 0, m.Counter())
	diff(t, center, m.MovingCircleCenter(), cmpopts.EquateApprox(0, 1e-9))
}

func TestClone(t *testing.T) {
	m := newTestModel(t, trochoid.Inner)
	m.SetShowInfo(true)
	path := m.Path()
	bounds := m.BoundingRect()

	c := m.Clone()
	require.Same(t, &path[0], &c.Path()[0], "clone should share the sampled path")
	diff(t, m.Record(), c.Record())
	assert.Equal(t, m.ShowInfo(), c.ShowInfo())

	c.SetFixedRadius(150)
	assert.Equal(t, 150, c.FixedRadius())
	assert.Equal(t, 96, m.FixedRadius())
	assert.Same(t, &path[0], &m.Path()[0])
	assert.Len(t, m.Path(), 61)
	diff(t, bounds, m.BoundingRect())
	assert.NotEqual(t, bounds, c.BoundingRect())
}

func TestCloneSharesRandomSource(t *testing.T) {
	a, b := New(trochoid.Outer), New(trochoid.Outer)
	a.SetRand(rand.New(rand.NewSource(7)))
	b.SetRand(rand.New(rand.NewSource(7)))

	a.Clone()
	a.Randomize(300)
	b.Randomize(300)
	diff(t, b.Record(), a.Record())

	// A copy committed in place of its original carries on the sequence.
	c := a.Clone()
	c.Randomize(300)
	b.Randomize(300)
	diff(t, b.Record(), c.Record())
}

func TestWithKind(t *testing.T) {
	m := NewWith(trochoid.Outer, 20, 30, 10, DefaultLocation)
	inner := m.WithKind(trochoid.Inner)
	assert.Equal(t, trochoid.Inner, inner.Kind())
	assert.Equal(t, trochoid.Outer, m.Kind())
	checkInvariants(t, inner)
	assert.Equal(t, 35, inner.FixedRadius())
	assert.Equal(t, 30, inner.MovingRadius(), "the moving circle keeps its size")
	assert.Equal(t, 10, inner.PenDistance())

	same := m.WithKind(trochoid.Outer)
	diff(t, m.Record(), same.Record())
}

func TestSetRepeat(t *testing.T) {
	m := newTestModel(t, trochoid.Inner)
	m.Tick()
	m.Tick()
	require.Equal(t, 2, m.Counter())

	m.SetRepeat(true) // unchanged
	assert.Equal(t, 2, m.Counter())

	m.SetRepeat(false)
	assert.Equal(t, 0, m.Counter())
	assert.False(t, m.Repeat())
}

func TestVisiblePath(t *testing.T) {
	m := newTestModel(t, trochoid.Inner)
	assert.Nil(t, m.VisiblePath())

	for i := 0; i < 3; i++ {
		m.Tick()
	}
	assert.Len(t, m.VisiblePath(), 4)

	m.SetAnimate(false)
	assert.Len(t, m.VisiblePath(), 61)
}

func TestRects(t *testing.T) {
	m := newTestModel(t, trochoid.Inner)
	m.SetPenWidth(2)

	diff(t, geom.MakeBox(154, 154, 192, 192), m.TrueBoundingRect())
	diff(t, geom.MakeBox(150, 150, 200, 200), m.FocusRect())
	diff(t, geom.MakeBox(347, 347, 6, 6), m.ResizeHandleRect())
	diff(t, geom.MakeBox(144, 144, 212, 212), m.BoundingRect())
	assert.Equal(t, 96, m.MaxExtent())

	m.SetSelected(true)
	diff(t, geom.MakeBox(144, 144, 212, 292), m.BoundingRect())
}

func TestTrace(t *testing.T) {
	m := newTestModel(t, trochoid.Inner)
	tr := m.Trace()
	diff(t, Trace{
		FixedCenter:  DefaultLocation,
		FixedRadius:  96,
		MovingCenter: geom.MakePoint(310, 250),
		MovingRadius: 36,
		Pen:          geom.MakePoint(330, 250),
		Cross:        geom.MakeBox(324, 244, 12, 12),
	}, tr, approx)
}
