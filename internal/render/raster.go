package render

import (
	"math"

	"github.com/irfansharif/spirograph/internal/geom"
)

// plotFunc receives one cell of a rasterised shape.
type plotFunc func(x, y int)

// line rasterises the segment between two cells (Bresenham), endpoints
// included.
func line(x0, y0, x1, y1 int, plot plotFunc) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// polyline rasterises consecutive points (in fractional screen cells).
// Cells shared by neighbouring segments are plotted once.
func polyline(pts []geom.Point, plot plotFunc) {
	if len(pts) == 0 {
		return
	}
	lastX, lastY := cell(pts[0])
	plot(lastX, lastY)
	for _, p := range pts[1:] {
		x, y := cell(p)
		if x == lastX && y == lastY {
			continue
		}
		first := true
		line(lastX, lastY, x, y, func(px, py int) {
			if first {
				first = false
				return
			}
			plot(px, py)
		})
		lastX, lastY = x, y
	}
}

// ellipse rasterises the outline of an axis-aligned ellipse. Circles on the
// canvas become ellipses on screen since cells aren't square.
func ellipse(center geom.Point, rx, ry float64, plot plotFunc) {
	if rx < 0.5 && ry < 0.5 {
		plot(cell(center))
		return
	}
	// Enough steps that consecutive samples land in neighbouring cells.
	steps := max(8, int(math.Ceil(2*math.Pi*math.Max(rx, ry))))
	pts := make([]geom.Point, steps+1)
	for i := range pts {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		pts[i] = geom.MakePoint(center.X+rx*math.Cos(theta), center.Y+ry*math.Sin(theta))
	}
	polyline(pts, plot)
}

// Box-drawing runes for rectangle outlines.
const (
	runeHorizontal  = '─'
	runeVertical    = '│'
	runeTopLeft     = '┌'
	runeTopRight    = '┐'
	runeBottomLeft  = '└'
	runeBottomRight = '┘'
)

// rectOutline draws the outline of the cells [x0, x1] x [y0, y1] with
// box-drawing runes.
func rectOutline(x0, y0, x1, y1 int, set func(x, y int, r rune)) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for x := x0 + 1; x < x1; x++ {
		set(x, y0, runeHorizontal)
		set(x, y1, runeHorizontal)
	}
	for y := y0 + 1; y < y1; y++ {
		set(x0, y, runeVertical)
		set(x1, y, runeVertical)
	}
	set(x0, y0, runeTopLeft)
	set(x1, y0, runeTopRight)
	set(x0, y1, runeBottomLeft)
	set(x1, y1, runeBottomRight)
}

// cell returns the cell containing p.
func cell(p geom.Point) (int, int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Y))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
