// Package trochoid holds the two curve families drawn by the spirograph:
//   - Outer: the moving circle rolls around the outside of the fixed circle
//     (epitrochoid).
//   - Inner: the moving circle rolls around the inside of the fixed circle
//     (hypotrochoid).
//
// Each family is a table of pure functions of the curve parameters. Nothing
// here holds state, so every function is safe to call concurrently.
package trochoid

import (
	"fmt"
	"math"
	"strings"

	"github.com/irfansharif/spirograph/internal/geom"
)

// Kind selects a curve family.
type Kind int

const (
	Outer Kind = iota // epitrochoid
	Inner             // hypotrochoid
)

const (
	// MinRadius is the smallest radius either circle may have.
	MinRadius = 5
	// maxOuterMovingRadius is an arbitrary cap on the outer moving circle,
	// keeping sample counts (and integer maths) bounded while resizing.
	maxOuterMovingRadius = 1000
	// minResolution is the lowest number of samples per half orbit.
	minResolution = 10
)

// Params are the inputs shared by every variant function.
type Params struct {
	Fixed           int     // R, radius of the fixed circle
	Moving          int     // r, radius of the moving circle
	Pen             int     // f, pen distance from the moving circle's center; negative puts it on the far side
	BaseAngle       float64 // phase of the moving circle's center, radians
	BaseMovingAngle float64 // phase of the moving circle's rotation, radians
}

// ratio returns R/r as a float.
func (p Params) ratio() float64 { return float64(p.Fixed) / float64(p.Moving) }

// reach is |f|, how far the pen actually gets from the moving circle's center.
func (p Params) reach() int {
	if p.Pen < 0 {
		return -p.Pen
	}
	return p.Pen
}

type variant struct {
	name                  string
	point                 func(p Params, t float64) geom.Point
	centerRadius          func(p Params) int
	movingAngle           func(p Params, absAngle float64) float64
	maxPenDistance        func(p Params) int
	maxPenWithinBounds    func(p Params, n int) int
	maxMovingWithinBounds func(p Params, fixed int) int
	minFixedRadius        func(p Params) int
	maxMovingRadius       func(p Params) int
	halfExtent            func(p Params) int
	velocity              func(p Params) float64
}

var variants = [...]variant{
	Outer: {
		name: "outer",
		point: func(p Params, t float64) geom.Point {
			a := t + p.BaseAngle
			b := (p.ratio()+1)*t + p.BaseMovingAngle
			c := float64(p.Fixed + p.Moving)
			f := float64(p.Pen)
			return geom.Point{
				X: c*math.Cos(a) - f*math.Cos(b),
				Y: c*math.Sin(a) - f*math.Sin(b),
			}
		},
		centerRadius: func(p Params) int { return p.Fixed + p.Moving },
		movingAngle: func(p Params, absAngle float64) float64 {
			return (p.ratio()+1)*absAngle + p.BaseMovingAngle
		},
		maxPenDistance:     func(p Params) int { return p.Fixed + p.Moving + p.Pen },
		maxPenWithinBounds: func(p Params, n int) int { return n - (p.Fixed + p.Moving) },
		maxMovingWithinBounds: func(p Params, fixed int) int {
			return p.Fixed + p.Moving + p.Pen - fixed
		},
		minFixedRadius:  func(Params) int { return MinRadius },
		maxMovingRadius: func(Params) int { return maxOuterMovingRadius },
		// The trace overlay draws the whole moving circle, so when the pen
		// sits inside it the extent is 2r rather than r+f.
		halfExtent: func(p Params) int { return p.Fixed + max(2*p.Moving, p.Moving+p.reach()) },
		velocity: func(p Params) float64 {
			return float64(p.Fixed+p.Moving) + float64(p.reach())*(p.ratio()+1)
		},
	},
	Inner: {
		name: "inner",
		point: func(p Params, t float64) geom.Point {
			a := t + p.BaseAngle
			b := (p.ratio()-1)*t + p.BaseMovingAngle
			c := float64(p.Fixed - p.Moving)
			f := float64(p.Pen)
			return geom.Point{
				X: c*math.Cos(a) + f*math.Cos(b),
				Y: c*math.Sin(a) - f*math.Sin(b),
			}
		},
		centerRadius: func(p Params) int { return p.Fixed - p.Moving },
		movingAngle: func(p Params, absAngle float64) float64 {
			return (p.ratio()-1)*absAngle + p.BaseMovingAngle
		},
		maxPenDistance:        func(p Params) int { return p.Fixed - p.Moving + p.Pen },
		maxPenWithinBounds:    func(p Params, n int) int { return n - (p.Fixed - p.Moving) },
		maxMovingWithinBounds: func(_ Params, fixed int) int { return fixed - MinRadius },
		minFixedRadius:        func(p Params) int { return p.Moving + MinRadius },
		maxMovingRadius:       func(p Params) int { return p.Fixed - MinRadius },
		halfExtent: func(p Params) int {
			return max(p.Fixed, p.Fixed-p.Moving+p.reach())
		},
		velocity: func(p Params) float64 {
			return float64(p.Fixed-p.Moving) + float64(p.reach())*(p.ratio()-1)
		},
	},
}

func (k Kind) v() *variant {
	if k != Outer && k != Inner {
		panic(fmt.Sprintf("trochoid: invalid kind %d", int(k)))
	}
	return &variants[k]
}

// String returns the persisted tag of the kind ("outer" or "inner").
func (k Kind) String() string {
	if k != Outer && k != Inner {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return variants[k].name
}

// Other returns the opposite family.
func (k Kind) Other() Kind {
	if k == Outer {
		return Inner
	}
	return Outer
}

// ParseKind parses a persisted kind tag. The historical names "epitrochoid"
// and "hypotrochoid" are accepted too.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "outer", "epitrochoid":
		return Outer, nil
	case "inner", "hypotrochoid":
		return Inner, nil
	}
	return 0, fmt.Errorf("unknown curve kind %q", s)
}

// Point returns the pen position at parameter t, relative to the fixed
// circle's center.
func (k Kind) Point(p Params, t float64) geom.Point { return k.v().point(p, t) }

// MovingCircleCenter returns the center of the moving circle when its center
// sits at the given absolute angle around the fixed circle.
func (k Kind) MovingCircleCenter(p Params, currentAngle float64) geom.Point {
	return geom.Polar(float64(k.v().centerRadius(p)), currentAngle)
}

// MovingAngle returns how far the moving circle has turned about its own
// center after its center travelled absAngle around the fixed circle.
func (k Kind) MovingAngle(p Params, absAngle float64) float64 {
	return k.v().movingAngle(p, absAngle)
}

// MaxPenDistance is the furthest the pen ever gets from the fixed circle's
// center.
func (k Kind) MaxPenDistance(p Params) int { return k.v().maxPenDistance(p) }

// MaxPenDistanceWithinBounds is the largest pen distance keeping
// MaxPenDistance <= n.
func (k Kind) MaxPenDistanceWithinBounds(p Params, n int) int {
	return k.v().maxPenWithinBounds(p, n)
}

// MaxMovingRadiusWithinBounds is the largest moving radius that keeps the
// curve within its current bounds, given a fixed radius.
func (k Kind) MaxMovingRadiusWithinBounds(p Params, fixed int) int {
	return k.v().maxMovingWithinBounds(p, fixed)
}

// MinFixedRadius is the smallest fixed radius allowed for the current moving
// radius.
func (k Kind) MinFixedRadius(p Params) int { return k.v().minFixedRadius(p) }

// MaxMovingRadius is the largest moving radius allowed for the current fixed
// radius.
func (k Kind) MaxMovingRadius(p Params) int { return k.v().maxMovingRadius(p) }

// HalfExtent is half the side of the square bounding the curve and its trace
// overlay, centered on the fixed circle.
func (k Kind) HalfExtent(p Params) int { return k.v().halfExtent(p) }

// TrueBoundingRect is the square bounding the curve and its trace overlay
// when the fixed circle is centered at location.
func (k Kind) TrueBoundingRect(p Params, location geom.Point) geom.Box {
	m := float64(k.HalfExtent(p))
	return geom.BoxAround(location, m, m)
}

// Resolution returns the number of samples per half orbit. It approximates
// the peak pen velocity so that consecutive samples stay close together
// whatever the curve's size and the drawing speed.
func (k Kind) Resolution(p Params, speed float64) int {
	return resolution(speed, k.v().velocity(p), k.MaxPenDistance(p))
}

func resolution(speed, dxy float64, maxPenDistance int) int {
	if maxPenDistance <= 0 {
		return minResolution
	}
	val := speed * math.Sqrt(2*dxy*dxy) / float64(maxPenDistance)
	if math.IsNaN(val) || val < minResolution {
		return minResolution
	}
	if val > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Round(val))
}
