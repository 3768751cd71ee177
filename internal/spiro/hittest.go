package spiro

import (
	"github.com/irfansharif/spirograph/internal/geom"
)

// HitInfo describes the part of a curve under a point.
type HitInfo int

const (
	HitNone         HitInfo = iota // not on the curve at all
	HitBounds                      // somewhere within the focus rect
	HitFixedCircle                 // on the fixed circle
	HitMovingCircle                // on the moving circle
	HitPen                         // on or near the pen
	HitCurve                       // near the drawn curve
	HitResize                      // on the resize handle
)

func (h HitInfo) String() string {
	switch h {
	case HitNone:
		return "none"
	case HitBounds:
		return "bounds"
	case HitFixedCircle:
		return "fixed-circle"
	case HitMovingCircle:
		return "moving-circle"
	case HitPen:
		return "pen"
	case HitCurve:
		return "curve"
	case HitResize:
		return "resize"
	}
	return "unknown"
}

// HitTestMode selects which parts of the curve a hit test looks for.
type HitTestMode int

const (
	// ModeDefault only finds the fixed circle and the curve itself, for
	// curves that aren't selected.
	ModeDefault HitTestMode = iota
	// ModeSelected finds every editable part of a selected curve, and
	// anything else within its focus rect.
	ModeSelected
)

// hitTolerance is how close (in units) a point must be to a line to hit it.
const hitTolerance = 5

// HitTest reports what lies under pt, given in canvas coordinates.
func (m *Model) HitTest(pt geom.Point, mode HitTestMode) HitInfo {
	m.Path()

	local := pt.Sub(m.location)
	distance := local.Len()

	if mode == ModeDefault {
		if distance > float64(m.MaxExtent()+hitTolerance) {
			return HitNone
		}
		if nearCircle(distance, m.fixed) {
			return HitFixedCircle
		}
		if m.nearCurve(local) {
			return HitCurve
		}
		return HitNone
	}

	if m.ResizeHandleRect().Contains(pt) {
		return HitResize
	}
	if !m.FocusRect().Contains(pt) {
		return HitNone
	}
	if geom.BoxAround(m.penPointLocal(), hitTolerance, hitTolerance).Contains(local) {
		return HitPen
	}
	if nearCircle(geom.Dist(m.movingCircleCenterLocal(), local), m.moving) {
		return HitMovingCircle
	}
	if nearCircle(distance, m.fixed) {
		return HitFixedCircle
	}
	return HitBounds
}

func nearCircle(distance float64, radius int) bool {
	r := float64(radius)
	return distance > r-hitTolerance && distance < r+hitTolerance
}

// nearCurve reports whether local (relative to the fixed circle's center) is
// within hitTolerance of any segment of the path.
func (m *Model) nearCurve(local geom.Point) bool {
	path := m.Path()
	for i := 1; i < len(path); i++ {
		if geom.PointToSegmentDist(local, geom.MakeSegment(path[i-1], path[i])) < hitTolerance {
			return true
		}
	}
	return false
}
