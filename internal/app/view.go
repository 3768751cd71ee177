package app

import (
	"log"

	"github.com/irfansharif/spirograph/internal/geom"
)

const (
	minZoom     = 0.02
	maxZoom     = 8.0
	defaultZoom = 0.1

	// defaultCellAspect is the height of a terminal cell over its width.
	defaultCellAspect = 2.0
)

// View maps canvas coordinates onto screen cells: zoom about the viewport
// center, followed by a pan in cells. Cells are taller than they are wide, so
// the vertical axis is scaled down by CellAspect.
type View struct {
	Zoom          float64
	PanX, PanY    float64
	Width, Height int
	CellAspect    float64
}

// NewView creates a new view state with default values.
func NewView(width, height int) *View {
	return &View{
		Zoom:       defaultZoom,
		Width:      width,
		Height:     height,
		CellAspect: defaultCellAspect,
	}
}

// SetZoom sets the zoom level, clamping to valid range.
func (vs *View) SetZoom(zoom float64) {
	if zoom < minZoom {
		vs.Zoom = minZoom
	} else if zoom > maxZoom {
		vs.Zoom = maxZoom
	} else {
		vs.Zoom = zoom
	}
}

// SetPan sets the pan position to the given coordinates.
func (vs *View) SetPan(x, y float64) {
	vs.PanX = x
	vs.PanY = y
}

// SetViewport updates the viewport dimensions.
func (vs *View) SetViewport(width, height int) {
	vs.Width = width
	vs.Height = height
}

func (vs *View) center() geom.Point {
	return geom.MakePoint(float64(vs.Width)/2.0, float64(vs.Height)/2.0)
}

// Transform returns the canvas-to-screen transform.
func (vs *View) Transform() geom.Affine {
	c := vs.center()
	translateToOrigin := geom.MakeAffine(1, 0, -c.X, 0, 1, -c.Y)
	scale := geom.MakeAffine(vs.Zoom, 0, 0, 0, vs.Zoom/vs.CellAspect, 0)
	translateBack := geom.MakeAffine(1, 0, c.X+vs.PanX, 0, 1, c.Y+vs.PanY)
	return translateBack.Mul(scale.Mul(translateToOrigin))
}

// ToScreen maps a canvas point to (fractional) screen cells.
func (vs *View) ToScreen(p geom.Point) geom.Point {
	return vs.Transform().MulPoint(p)
}

// ToCanvas maps a screen cell to canvas coordinates. Mouse events report the
// cell's top-left corner, so callers pass the cell center.
func (vs *View) ToCanvas(p geom.Point) geom.Point {
	inv, err := vs.Transform().Inv()
	if err != nil {
		log.Fatalf("view transform is not invertible (zoom=%v): %v", vs.Zoom, err)
	}
	return inv.MulPoint(p)
}

// ToScreenBox maps a canvas box to screen cells.
func (vs *View) ToScreenBox(b geom.Box) geom.Box {
	return geom.BoxFromPoints(vs.ToScreen(geom.MakePoint(b.X, b.Y)), vs.ToScreen(b.BottomRight()))
}

// VisibleCanvas returns the part of the canvas currently on screen.
func (vs *View) VisibleCanvas() geom.Box {
	return geom.BoxFromPoints(
		vs.ToCanvas(geom.MakePoint(0, 0)),
		vs.ToCanvas(geom.MakePoint(float64(vs.Width), float64(vs.Height))),
	)
}

// ResetTo returns to the default zoom and pans to center the given point in
// the viewport.
func (vs *View) ResetTo(pos geom.Point) {
	vs.Zoom = defaultZoom
	vs.CenterOn(pos)
}

// CenterOn pans, keeping the zoom, so that pos sits in the middle of the
// viewport.
func (vs *View) CenterOn(pos geom.Point) {
	c := vs.center()
	vs.PanX = -vs.Zoom * (pos.X - c.X)
	vs.PanY = -vs.Zoom / vs.CellAspect * (pos.Y - c.Y)
}

// Fit zooms and pans so that b fills the viewport, keeping its aspect ratio.
func (vs *View) Fit(b geom.Box) {
	if b.Empty() || vs.Width <= 0 || vs.Height <= 0 {
		return
	}
	// Fit in cell-corrected space so that circles stay round on screen.
	src := geom.MakeBox(b.X, b.Y/vs.CellAspect, b.W, b.H/vs.CellAspect)
	dst := geom.MakeBox(0, 0, float64(vs.Width), float64(vs.Height))
	vs.SetZoom(geom.FillBox(src, dst).A)
	vs.CenterOn(b.Center())
}

// Pan moves the view by (dx, dy) screen cells.
func (vs *View) Pan(dx, dy float64) {
	vs.SetPan(vs.PanX+dx, vs.PanY+dy)
}

// ZoomAt scales the zoom by factor, keeping the canvas point under the given
// screen position fixed.
func (vs *View) ZoomAt(screen geom.Point, factor float64) {
	anchor := vs.ToCanvas(screen)
	vs.SetZoom(vs.Zoom * factor)
	moved := vs.ToScreen(anchor)
	vs.Pan(screen.X-moved.X, screen.Y-moved.Y)
}
