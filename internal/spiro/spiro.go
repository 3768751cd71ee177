// Package spiro implements a single interactive spirograph curve: its
// parameters, its lazily sampled path, interactive resizing with orbit-count
// snapping, hit testing, and the animation state machine that tells the host
// what to redraw after every tick.
//
// A Model is not safe for concurrent use. Hosts that render on a different
// goroutine than the one mutating the model must serialize access; the slice
// returned by Path is never mutated in place, so holding on to it after
// releasing a lock is fine.
package spiro

import (
	"image/color"
	"io"
	"log"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/irfansharif/spirograph/internal/geom"
	"github.com/irfansharif/spirograph/internal/trochoid"
)

var spiroLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	if os.Getenv("SPIRO_DEBUG_SPIRO") == "1" {
		spiroLogger = log.New(os.Stderr, "[spiro] ", log.Ltime|log.Lmsgprefix)
	}
}

// Defaults for a freshly created curve.
const (
	DefaultFixed      = 210
	DefaultMoving     = 30
	DefaultPen        = 40
	DefaultPenWidth   = 2
	DefaultSpeed      = 35.0
	initialResolution = 10
)

var (
	DefaultLocation = geom.MakePoint(250, 250)
	DefaultColour   = color.RGBA{R: 138, G: 43, B: 226, A: 255} // blue violet
)

const twoPi = 2 * math.Pi

// Model is a single spirograph curve.
type Model struct {
	kind     trochoid.Kind
	location geom.Point // center of the fixed circle, canvas coordinates

	fixed  int // R
	moving int // r
	pen    int // f

	baseAngle       float64 // keeps the drawing position across edits
	baseMovingAngle float64

	counter         int          // index of the current pen sample
	finalPauseCount int          // ticks spent paused at the end of a cycle
	orbits          int          // orbits of the moving circle before the curve closes
	resolution      int          // samples per half orbit
	points          []geom.Point // nil until needed; never mutated once built

	penWidth int
	colour   color.RGBA
	speed    float64 // drawing-rate divisor, higher means more samples

	selected  bool
	complete  bool
	animate   bool
	repeat    bool
	showTrace bool
	showInfo  bool
	randomise bool

	maxRandomDiameter int

	rng *rand.Rand
}

// New creates a curve of the given kind with default parameters.
func New(kind trochoid.Kind) *Model {
	return NewWith(kind, DefaultFixed, DefaultMoving, DefaultPen, DefaultLocation)
}

// NewWith creates a curve with explicit radii, pen distance and location.
// Radii are clamped so that the curve is always valid for its kind.
func NewWith(kind trochoid.Kind, fixed, moving, pen int, location geom.Point) *Model {
	m := &Model{
		kind:       kind,
		location:   location,
		fixed:      fixed,
		moving:     moving,
		pen:        pen,
		resolution: initialResolution,
		penWidth:   DefaultPenWidth,
		colour:     DefaultColour,
		speed:      DefaultSpeed,
		animate:    true,
		repeat:     true,
		showTrace:  true,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	m.pen = max(m.pen, 0)
	m.clampRadii()
	m.reset()
	return m
}

// Clone returns an independent copy of the curve. The sampled path is shared
// until either copy is reset, which only replaces that copy's reference.
//
// The copy draws from the same random source. Cloning itself consumes
// nothing, and a copy committed in place of its original carries on the
// original's sequence.
func (m *Model) Clone() *Model {
	c := *m
	return &c
}

// WithKind returns a copy of the curve converted to the given kind, with its
// radii clamped to what the new kind allows.
func (m *Model) WithKind(kind trochoid.Kind) *Model {
	c := m.Clone()
	if kind != m.kind {
		c.kind = kind
		c.reset()
	}
	if c.clampRadii() {
		c.reset()
	}
	return c
}

func (m *Model) params() trochoid.Params {
	return trochoid.Params{
		Fixed:           m.fixed,
		Moving:          m.moving,
		Pen:             m.pen,
		BaseAngle:       m.baseAngle,
		BaseMovingAngle: m.baseMovingAngle,
	}
}

// clampRadii forces the radii into the range allowed by the curve's kind and
// reports whether anything changed. R grows to fit r before r is limited by
// R, so a moving circle keeps its size when the fixed one can make room.
func (m *Model) clampRadii() bool {
	fixed, moving := m.fixed, m.moving
	m.fixed = max(m.fixed, trochoid.MinRadius)
	m.moving = max(m.moving, trochoid.MinRadius)
	if mn := m.kind.MinFixedRadius(m.params()); m.fixed < mn {
		m.fixed = mn
	}
	if mx := m.kind.MaxMovingRadius(m.params()); m.moving > mx {
		m.moving = max(mx, trochoid.MinRadius)
	}
	return fixed != m.fixed || moving != m.moving
}

// reset recomputes everything derived from the parameters after an edit. The
// current drawing angle becomes the new base angle, so the trace continues
// from the same spot.
func (m *Model) reset() {
	m.baseAngle = normalizeAngle(m.currentAngle())
	m.orbits = orbitCount(m.fixed, m.moving)
	m.points = nil
	m.resetCounter()
	m.resolution = m.kind.Resolution(m.params(), m.speed)
}

func (m *Model) resetCounter() {
	m.counter = 0
	m.finalPauseCount = 0
}

// saveMovingAngle records the moving circle's rotation so that a reshaped
// curve starts from the same pen orientation.
func (m *Model) saveMovingAngle() {
	m.baseMovingAngle = normalizeAngle(m.kind.MovingAngle(m.params(), m.absoluteAngle()))
}

func normalizeAngle(a float64) float64 {
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	return a
}

// absoluteAngle is the angle travelled since the start of the path.
func (m *Model) absoluteAngle() float64 {
	return math.Pi / float64(m.resolution) * float64(m.counter)
}

func (m *Model) currentAngle() float64 {
	return m.absoluteAngle() + m.baseAngle
}

// sampleCount is the number of points in the path: 2·orbits·resolution + 1.
func (m *Model) sampleCount() int {
	return 2*m.orbits*m.resolution + 1
}

// Path returns the sampled curve relative to the fixed circle's center,
// building it if needed. The returned slice must not be modified.
func (m *Model) Path() []geom.Point {
	if m.points == nil {
		n := m.sampleCount()
		p := m.params()
		step := math.Pi / float64(m.resolution)
		points := make([]geom.Point, n)
		for t := range points {
			points[t] = m.kind.Point(p, step*float64(t))
		}
		m.points = points
	}
	return m.points
}

// VisiblePath returns the part of the path that is currently drawn. While
// animating, that's the prefix up to the pen; nil means nothing to draw yet.
func (m *Model) VisiblePath() []geom.Point {
	path := m.Path()
	if !m.animate || m.complete {
		return path
	}
	if m.counter == 0 {
		return nil
	}
	return path[:m.counter+1]
}

func (m *Model) penPointLocal() geom.Point { return m.Path()[m.counter] }

func (m *Model) movingCircleCenterLocal() geom.Point {
	return m.kind.MovingCircleCenter(m.params(), m.currentAngle())
}

// fixedCirclePoint is where the moving circle touches the fixed circle.
func (m *Model) fixedCirclePoint() geom.Point {
	return geom.Polar(float64(m.fixed), m.currentAngle())
}

// PenPoint returns the current pen position in canvas coordinates.
func (m *Model) PenPoint() geom.Point { return m.penPointLocal().Add(m.location) }

// MovingCircleCenter returns the moving circle's current center in canvas
// coordinates.
func (m *Model) MovingCircleCenter() geom.Point {
	return m.movingCircleCenterLocal().Add(m.location)
}

// TrueBoundingRect bounds the curve and its trace overlay.
func (m *Model) TrueBoundingRect() geom.Box {
	return m.kind.TrueBoundingRect(m.params(), m.location)
}

// FocusRect is the rectangle drawn around a selected curve.
func (m *Model) FocusRect() geom.Box {
	w := float64(m.penWidth + 2)
	return m.TrueBoundingRect().Inflate(w, w)
}

// ResizeHandleRect is the small square on the focus rect's bottom-right
// corner used to resize both circles at once.
func (m *Model) ResizeHandleRect() geom.Box {
	return geom.BoxAround(m.FocusRect().BottomRight(), 3, 3)
}

// BoundingRect is everything the curve may paint, including the info box
// shown beneath it when selected.
func (m *Model) BoundingRect() geom.Box {
	rc := m.TrueBoundingRect()
	if m.selected || m.showInfo {
		rc.H += infoHeight
	}
	return rc.Inflate(10, 10)
}

const infoHeight = 80

// MaxExtent is the furthest anything drawn for this curve gets from the fixed
// circle's center.
func (m *Model) MaxExtent() int { return m.kind.HalfExtent(m.params()) }

// Trace is the overlay drawn while animating or editing: both circles, the
// arm from the moving circle's center to the pen, and a cross at the pen.
type Trace struct {
	FixedCenter  geom.Point
	FixedRadius  int
	MovingCenter geom.Point // rounded
	MovingRadius int
	Pen          geom.Point
	Cross        geom.Box
}

// Trace returns the overlay geometry in canvas coordinates.
func (m *Model) Trace() Trace {
	pen := m.PenPoint()
	return Trace{
		FixedCenter:  m.location,
		FixedRadius:  m.fixed,
		MovingCenter: m.movingCircleCenterLocal().Round().Add(m.location),
		MovingRadius: m.moving,
		Pen:          pen,
		Cross:        geom.BoxAround(pen, crossSize, crossSize),
	}
}

const crossSize = 6

// Info holds the figures shown in the info box.
type Info struct {
	Fixed      int
	Moving     int
	Pen        int
	Orbits     int
	GCD        int
	Resolution int
}

func (m *Model) Info() Info {
	return Info{
		Fixed:      m.fixed,
		Moving:     m.moving,
		Pen:        m.pen,
		Orbits:     m.orbits,
		GCD:        GCD(m.fixed, m.moving),
		Resolution: m.resolution,
	}
}

func (m *Model) Kind() trochoid.Kind    { return m.kind }
func (m *Model) Location() geom.Point   { return m.location }
func (m *Model) FixedRadius() int       { return m.fixed }
func (m *Model) MovingRadius() int      { return m.moving }
func (m *Model) PenDistance() int       { return m.pen }
func (m *Model) Counter() int           { return m.counter }
func (m *Model) Orbits() int            { return m.orbits }
func (m *Model) Resolution() int        { return m.resolution }
func (m *Model) PenWidth() int          { return m.penWidth }
func (m *Model) Colour() color.RGBA     { return m.colour }
func (m *Model) Speed() float64         { return m.speed }
func (m *Model) Selected() bool         { return m.selected }
func (m *Model) Complete() bool         { return m.complete }
func (m *Model) Animate() bool          { return m.animate }
func (m *Model) Repeat() bool           { return m.repeat }
func (m *Model) ShowTrace() bool        { return m.showTrace }
func (m *Model) ShowInfo() bool         { return m.showInfo }
func (m *Model) Randomise() bool        { return m.randomise }
func (m *Model) MaxRandomDiameter() int { return m.maxRandomDiameter }

// Paused reports whether the curve is holding at the end of a cycle.
func (m *Model) Paused() bool { return m.counter >= m.sampleCount()-1 }

// SetFixedRadius sets R, clamped to the smallest radius the kind allows.
func (m *Model) SetFixedRadius(fixed int) {
	m.fixed = max(fixed, m.kind.MinFixedRadius(m.params()))
	m.reset()
}

// SetMovingRadius sets r, clamped to the range the kind allows.
func (m *Model) SetMovingRadius(moving int) {
	m.moving = min(max(moving, trochoid.MinRadius), m.kind.MaxMovingRadius(m.params()))
	m.reset()
}

// SetPenDistance sets f. Negative distances are treated as zero.
func (m *Model) SetPenDistance(pen int) {
	m.pen = max(pen, 0)
	m.reset()
}

// SetSpeed sets the drawing-rate divisor, which changes the resolution.
func (m *Model) SetSpeed(speed float64) {
	m.speed = math.Max(speed, 0)
	m.reset()
}

// SetRepeat sets whether the animation restarts after a cycle. Changing it
// restarts the animation.
func (m *Model) SetRepeat(repeat bool) {
	if m.repeat == repeat {
		return
	}
	m.repeat = repeat
	if repeat {
		m.complete = false
	}
	m.resetCounter()
}

func (m *Model) SetLocation(p geom.Point)    { m.location = p }
func (m *Model) SetColour(c color.RGBA)      { m.colour = c }
func (m *Model) SetSelected(selected bool)   { m.selected = selected }
func (m *Model) SetAnimate(animate bool)     { m.animate = animate }
func (m *Model) SetShowTrace(showTrace bool) { m.showTrace = showTrace }
func (m *Model) SetShowInfo(showInfo bool)   { m.showInfo = showInfo }
func (m *Model) SetRandomise(randomise bool) { m.randomise = randomise }
func (m *Model) SetMaxRandomDiameter(d int)  { m.maxRandomDiameter = max(d, 0) }
func (m *Model) SetRand(rng *rand.Rand)      { m.rng = rng }

// SetPenWidth sets the pen thickness, at least one unit.
func (m *Model) SetPenWidth(w int) { m.penWidth = max(w, 1) }
