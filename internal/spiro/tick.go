package spiro

import (
	"github.com/irfansharif/spirograph/internal/geom"
)

// finalPause is the number of ticks a finished drawing is held before the
// cycle restarts.
const finalPause = 100

// RedrawKind tells the host how much of the canvas a tick invalidated.
type RedrawKind int

const (
	// RedrawNone means nothing changed (the curve is selected or not
	// animating).
	RedrawNone RedrawKind = iota
	// RedrawIncremental means only Region needs repainting.
	RedrawIncremental
	// RedrawFull means a cycle completed; everything the curve covered
	// before and after the tick (Region) needs repainting.
	RedrawFull
)

func (k RedrawKind) String() string {
	switch k {
	case RedrawNone:
		return "none"
	case RedrawIncremental:
		return "incremental"
	case RedrawFull:
		return "full"
	}
	return "unknown"
}

// Redraw is the result of a tick.
type Redraw struct {
	Kind   RedrawKind
	Region geom.Region // canvas coordinates
}

// CycleComplete reports whether the tick finished a drawing cycle.
func (r Redraw) CycleComplete() bool { return r.Kind == RedrawFull }

// Tick advances the animation by one step and returns what needs
// repainting. The curve is drawn one segment per tick; once complete it's
// held for finalPause ticks, after which the cycle restarts (or, with
// randomise on, a new curve is generated).
func (m *Model) Tick() Redraw {
	path := m.Path()
	if m.selected || !m.animate {
		return Redraw{}
	}

	last := len(path) - 1
	if m.counter >= last {
		if m.finalPauseCount < finalPause-1 {
			m.finalPauseCount++
			return Redraw{Kind: RedrawIncremental, Region: m.traceRegion()}
		}
		return m.completeCycle()
	}

	region := m.traceRegion()
	m.counter++
	if m.counter == last {
		m.finalPauseCount = 0
	}

	w := float64(m.penWidth + 2)
	segment := geom.MakeSegment(path[m.counter-1], path[m.counter]).Bounds()
	region = region.Add(segment.Inflate(w, w).Offset(m.location))
	region = region.Union(m.traceRegion())
	return Redraw{Kind: RedrawIncremental, Region: region}
}

func (m *Model) completeCycle() Redraw {
	region := geom.Region{}.Add(m.BoundingRect())

	m.resetCounter()
	m.complete = !m.repeat
	spiroLogger.Printf("cycle complete: %s R=%d r=%d f=%d (repeat=%t, randomise=%t)",
		m.kind, m.fixed, m.moving, m.pen, m.repeat, m.randomise)
	if m.randomise {
		m.Randomize(m.maxRandomDiameter)
	}

	return Redraw{Kind: RedrawFull, Region: region.Add(m.BoundingRect())}
}

// traceRegion covers the moving circle, the pen cross and the arm between
// them at the current counter. It's empty when the trace isn't shown.
func (m *Model) traceRegion() geom.Region {
	if !m.showTrace {
		return nil
	}
	trace := m.Trace()
	w := float64(m.moving + m.penWidth + 2)
	return geom.Region{}.Add(
		geom.BoxAround(trace.MovingCenter, w, w),
		trace.Cross.Inflate(1, 1),
		geom.BoxFromPoints(m.MovingCircleCenter(), trace.Pen).Inflate(1, 1),
	)
}
