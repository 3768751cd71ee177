// Package geom provides 2D geometric primitives and affine transformations:
// - Point arithmetic and vector operations
// - Point-to-segment distance
// - Axis-aligned boxes and box regions (unions of boxes)
// - 2D affine transformations (scaling, translation) for viewport mapping
package geom

import (
	"fmt"
	"log"
	"math"
)

// Point represents a 2D point or vector in Cartesian coordinates.
type Point struct {
	X float64
	Y float64
}

// Segment is an ordered pair of points.
type Segment struct {
	P0 Point
	P1 Point
}

// Box represents an axis-aligned rectangle. W and H are never negative for
// boxes built through this package.
type Box struct {
	X float64
	Y float64
	W float64
	H float64
}

// Affine represents a 2D affine transform in row-major form:
// [ a b c ]
// [ d e f ]
// where (x', y') = (a*x + b*y + c, d*x + e*y + f)
type Affine struct {
	A float64
	B float64
	C float64
	D float64
	E float64
	F float64
}

func MakePoint(x, y float64) Point               { return Point{X: x, Y: y} }
func MakeSegment(p0, p1 Point) Segment           { return Segment{P0: p0, P1: p1} }
func MakeBox(x, y, w, h float64) Box             { return Box{X: x, Y: y, W: w, H: h} }
func MakeAffine(a, b, c, d, e, f float64) Affine { return Affine{A: a, B: b, C: c, D: d, E: e, F: f} }

func (p Point) Add(q Point) Point     { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point     { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }
func (p Point) Round() Point          { return Point{math.Round(p.X), math.Round(p.Y)} }
func (p Point) Len() float64          { return math.Sqrt(Dot(p, p)) }

func (p Point) String() string { return fmt.Sprintf("(%g, %g)", p.X, p.Y) }

func Dot(p, q Point) float64 { return p.X*q.X + p.Y*q.Y }

func Dist(p, q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Polar returns the point at the given radius and angle (radians) from the
// origin.
func Polar(radius, angle float64) Point {
	sin, cos := math.Sincos(angle)
	return Point{X: radius * cos, Y: radius * sin}
}

// PointToSegmentDist returns the distance from p to the closest point of
// segment s. A zero-length segment is treated as the point s.P0.
func PointToSegmentDist(p Point, s Segment) float64 {
	v := s.P1.Sub(s.P0)
	w := p.Sub(s.P0)

	c1 := Dot(w, v)
	if c1 <= 0 {
		return Dist(p, s.P0) // before P0, or a zero-length segment
	}
	c2 := Dot(v, v)
	if c2 <= c1 {
		return Dist(p, s.P1) // past P1
	}
	return Dist(p, s.P0.Add(v.Scale(c1/c2)))
}

// Bounds returns the smallest box containing the segment.
func (s Segment) Bounds() Box { return BoxFromPoints(s.P0, s.P1) }

// BoxFromPoints returns the smallest box containing all the given points.
// It returns the zero box if no points are given.
func BoxFromPoints(pts ...Point) Box {
	if len(pts) == 0 {
		return Box{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return Box{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// BoxAround returns a box of half-extent (dx, dy) centered at c.
func BoxAround(c Point, dx, dy float64) Box {
	return Box{X: c.X - dx, Y: c.Y - dy, W: 2 * dx, H: 2 * dy}
}

func (b Box) Right() float64  { return b.X + b.W }
func (b Box) Bottom() float64 { return b.Y + b.H }
func (b Box) Empty() bool     { return b.W <= 0 || b.H <= 0 }

// Center returns the center point of the box.
func (b Box) Center() Point { return Point{b.X + 0.5*b.W, b.Y + 0.5*b.H} }

// BottomRight returns the bottom-right corner of the box.
func (b Box) BottomRight() Point { return Point{b.Right(), b.Bottom()} }

// Inflate grows the box by dx on the left and right and by dy on the top and
// bottom.
func (b Box) Inflate(dx, dy float64) Box {
	return Box{X: b.X - dx, Y: b.Y - dy, W: b.W + 2*dx, H: b.H + 2*dy}
}

// Offset translates the box by d.
func (b Box) Offset(d Point) Box {
	return Box{X: b.X + d.X, Y: b.Y + d.Y, W: b.W, H: b.H}
}

// Contains reports whether p lies inside the box. The left and top edges are
// inclusive, the right and bottom edges exclusive.
func (b Box) Contains(p Point) bool {
	return p.X >= b.X && p.X < b.Right() && p.Y >= b.Y && p.Y < b.Bottom()
}

// Intersects reports whether the two boxes overlap.
func (b Box) Intersects(o Box) bool {
	return b.X < o.Right() && o.X < b.Right() && b.Y < o.Bottom() && o.Y < b.Bottom()
}

// Union returns the smallest box containing both boxes. Empty boxes are
// ignored.
func (b Box) Union(o Box) Box {
	if b.Empty() {
		return o
	}
	if o.Empty() {
		return b
	}
	x0, y0 := math.Min(b.X, o.X), math.Min(b.Y, o.Y)
	x1, y1 := math.Max(b.Right(), o.Right()), math.Max(b.Bottom(), o.Bottom())
	return Box{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Region is a union of boxes. It is kept as a list rather than merged into a
// single bounding box so that small, far-apart updates stay small.
type Region []Box

// Add appends non-empty boxes to the region.
func (r Region) Add(boxes ...Box) Region {
	for _, b := range boxes {
		if !b.Empty() {
			r = append(r, b)
		}
	}
	return r
}

// Union merges two regions.
func (r Region) Union(o Region) Region { return r.Add(o...) }

// Bounds returns the bounding box of the whole region.
func (r Region) Bounds() Box {
	var out Box
	for _, b := range r {
		out = out.Union(b)
	}
	return out
}

// Intersects reports whether any box of the region overlaps b.
func (r Region) Intersects(b Box) bool {
	for _, rb := range r {
		if rb.Intersects(b) {
			return true
		}
	}
	return false
}

// Contains reports whether any box of the region contains p.
func (r Region) Contains(p Point) bool {
	for _, rb := range r {
		if rb.Contains(p) {
			return true
		}
	}
	return false
}

// MulPoint applies the affine transform to a point.
func (t Affine) MulPoint(p Point) Point {
	return Point{
		X: t.A*p.X + t.B*p.Y + t.C,
		Y: t.D*p.X + t.E*p.Y + t.F,
	}
}

// Mul composes two affine transforms (applies u then t).
func (t Affine) Mul(u Affine) Affine {
	return MakeAffine(
		t.A*u.A+t.B*u.D,
		t.A*u.B+t.B*u.E,
		t.A*u.C+t.B*u.F+t.C,
		t.D*u.A+t.E*u.D,
		t.D*u.B+t.E*u.E,
		t.D*u.C+t.E*u.F+t.F,
	)
}

// Inv returns the inverse of the affine transform.
// Returns an error if the transform is not invertible (determinant is zero).
func (t Affine) Inv() (Affine, error) {
	det := t.A*t.E - t.B*t.D
	if math.Abs(det) < 1e-10 {
		return Affine{}, fmt.Errorf("affine transform is not invertible (determinant ≈ 0)")
	}
	return MakeAffine(
		t.E/det, -t.B/det, (t.B*t.F-t.C*t.E)/det,
		-t.D/det, t.A/det, (t.C*t.D-t.A*t.F)/det,
	), nil
}

// FillBox returns a transform that maps box b1 into b2, preserving aspect
// ratio and centering the result.
func FillBox(b1, b2 Box) Affine {
	if b1.W <= 0 || b1.H <= 0 {
		log.Fatalf("source box must have positive width and height, got W=%v H=%v", b1.W, b1.H)
	}
	if b2.W <= 0 || b2.H <= 0 {
		log.Fatalf("destination box must have positive width and height, got W=%v H=%v", b2.W, b2.H)
	}

	sc := math.Min(b2.W/b1.W, b2.H/b1.H)
	centerDst := MakeAffine(1, 0, b2.X+0.5*b2.W, 0, 1, b2.Y+0.5*b2.H)
	centerSrc := MakeAffine(1, 0, -(b1.X + 0.5*b1.W), 0, 1, -(b1.Y + 0.5*b1.H))
	return centerDst.Mul(MakeAffine(sc, 0, 0, 0, sc, 0)).Mul(centerSrc)
}
