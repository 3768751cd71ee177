package spiro

import (
	"github.com/irfansharif/spirograph/internal/trochoid"
)

// minRandomMoving is the smallest moving radius Randomize picks.
const minRandomMoving = 10

// Randomize replaces the curve with a random one. With maxDiameter zero the
// new curve stays within the current curve's extent; otherwise its extent is
// picked at random between 50 and maxDiameter.
func (m *Model) Randomize(maxDiameter int) {
	n := m.kind.MaxPenDistance(m.params())
	if maxDiameter != 0 {
		n = m.randInt(50, maxDiameter)
	}

	// Keep the fixed circle clear of the extent's center and edge.
	lo := max(min(20, n/2), trochoid.MinRadius)
	hi := max(n-20, lo)
	fixed := snapFixed(m.moving, lo, m.randInt(lo, hi), hi)

	hi = max(m.kind.MaxMovingRadiusWithinBounds(m.params(), fixed)-5, minRandomMoving)
	moving := snapMoving(fixed, minRandomMoving, m.randInt(minRandomMoving, hi), hi)

	m.fixed, m.moving = fixed, moving
	if m.clampRadii() {
		spiroLogger.Printf("randomize: clamped to R=%d r=%d (n=%d)", m.fixed, m.moving, n)
	}
	// f may come out negative for outer curves; the pen then sits on the
	// far side of the moving circle and the extent is still n.
	m.pen = m.kind.MaxPenDistanceWithinBounds(m.params(), n)
	spiroLogger.Printf("randomize: %s R=%d r=%d f=%d within %d", m.kind, m.fixed, m.moving, m.pen, n)
	m.reset()
}

// randInt returns a random integer in [lo, hi), or lo if the range is empty.
func (m *Model) randInt(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + m.rng.Intn(hi-lo)
}
