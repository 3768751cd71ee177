package spiro

import (
	"math"

	"github.com/irfansharif/spirograph/internal/geom"
	"github.com/irfansharif/spirograph/internal/trochoid"
)

// ResizeFixedCircle resizes the fixed circle so that it passes (roughly)
// through pt, given in canvas coordinates.
func (m *Model) ResizeFixedCircle(pt geom.Point) {
	minFixed := m.kind.MinFixedRadius(m.params())
	requested := max(roundToInt(geom.Dist(m.location, pt)), minFixed)

	fixed := snapFixed(m.moving, minFixed, requested, math.MaxInt32)
	if fixed == m.fixed {
		return
	}
	m.saveMovingAngle()
	m.fixed = fixed
	m.reset()
}

// ResizeMovingCircle resizes the moving circle so that it passes through pt
// while still touching the fixed circle at the same point. Resizing around
// the contact point (rather than the moving circle's center) keeps the circle
// from jumping about under the cursor.
func (m *Model) ResizeMovingCircle(pt geom.Point) {
	local := pt.Sub(m.location).Round()
	contact := m.fixedCirclePoint().Round()

	// The chord from the contact point to the cursor subtends the new
	// circle's radius; solve the isosceles triangle for it.
	xa := geom.Dist(contact, local) / 2
	oa := contact.X - local.X
	ob := contact.Y - local.Y
	alpha := math.Atan2(oa, ob) + m.currentAngle()
	if m.kind == trochoid.Outer {
		alpha += math.Pi // the circle sits on the other side of the contact point
	}

	maxMoving := m.kind.MaxMovingRadius(m.params())
	d := xa / math.Sin(alpha)
	var requested int
	switch {
	case math.IsNaN(d) || d < trochoid.MinRadius:
		requested = trochoid.MinRadius
	case d > float64(maxMoving):
		requested = maxMoving
	default:
		requested = int(math.Round(d))
	}

	moving := snapMoving(m.fixed, trochoid.MinRadius, requested, maxMoving)
	if moving == m.moving {
		return
	}
	m.saveMovingAngle()
	m.moving = moving
	m.reset()
}

// Resize scales both circles (and the pen distance) relative to ref, the
// curve as it was when the resize gesture started, keeping the exact ratio of
// the radii. Both radii move in steps of their ratio in lowest terms.
func (m *Model) Resize(ref *Model, delta int) {
	if delta == 0 {
		return
	}

	g := GCD(m.fixed, m.moving)
	stepFixed, stepMoving := m.fixed/g, m.moving/g

	target := ref.fixed + delta
	fixed := roundToInt(float64(target)/float64(stepFixed)) * stepFixed
	moving := fixed * stepMoving / stepFixed
	pen := roundToInt(float64(m.pen) * float64(fixed) / float64(m.fixed))

	if fixed < trochoid.MinRadius || moving < trochoid.MinRadius {
		return // too small
	}
	next := trochoid.Params{Fixed: fixed, Moving: moving, Pen: pen}
	if fixed < m.kind.MinFixedRadius(next) || moving > m.kind.MaxMovingRadius(next) {
		return
	}
	if fixed == m.fixed && moving == m.moving {
		return
	}

	m.saveMovingAngle()
	m.fixed, m.moving, m.pen = fixed, moving, pen
	m.reset()
}

// MovePen moves the pen so that it sits under pt, given in canvas
// coordinates.
func (m *Model) MovePen(pt geom.Point) {
	local := pt.Sub(m.location)
	pen := roundToInt(geom.Dist(m.movingCircleCenterLocal(), local))
	if pen == m.pen {
		return
	}
	m.saveMovingAngle()
	m.pen = pen
	m.reset()
}

// roundToInt rounds to the nearest integer, saturating instead of overflowing.
func roundToInt(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= math.MinInt32:
		return math.MinInt32
	}
	return int(math.Round(v))
}
