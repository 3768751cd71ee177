package app

import (
	"math"

	"github.com/irfansharif/spirograph/internal/geom"
	"github.com/irfansharif/spirograph/internal/spiro"
)

// dragThreshold is how far (canvas units) the pointer must travel after
// selecting a curve before the press turns into a drag.
const dragThreshold = 3

// drag is the per-gesture state, captured on press.
type drag struct {
	hit     spiro.HitInfo // what was under the pointer at press
	start   geom.Point    // press position
	offset  geom.Point    // press position relative to the curve's location
	capture *spiro.Model  // edited copy; replaces the original on release
	active  bool          // the pointer is captured
}

// Hover records what lies under the pointer when no button is held, and
// reports what needs repainting (the selected curve's highlight, if the part
// under the pointer changed).
func (app *App) Hover(pt geom.Point) geom.Region {
	prev := app.hover
	app.hoverID, app.hover = app.Scene.HitTest(pt)

	id, m := app.Scene.Current()
	if m == nil || id != app.hoverID || prev == app.hover {
		return nil
	}
	return geom.Region{}.Add(m.BoundingRect())
}

// HoverHit returns what the pointer was last over.
func (app *App) HoverHit() (ID, spiro.HitInfo) { return app.hoverID, app.hover }

// Press starts a gesture at pt (canvas coordinates). Pressing on a different
// curve selects it; pressing on the selected curve captures the pointer;
// pressing on nothing deselects.
func (app *App) Press(pt geom.Point) geom.Region {
	underID, hit := app.Scene.HitTest(pt)
	app.hoverID, app.hover = underID, hit
	currentID, current := app.Scene.Current()

	if underID == NoID {
		app.drag = drag{}
		if current == nil {
			return nil
		}
		region := geom.Region{}.Add(current.BoundingRect())
		app.Scene.SetCurrent(NoID)
		return region
	}

	var region geom.Region
	if underID != currentID {
		if current != nil {
			region = region.Add(current.BoundingRect())
		}
		app.Scene.SetCurrent(underID)
		_, current = app.Scene.Current()
		if hit == spiro.HitCurve {
			hit = spiro.HitBounds
		}
		app.drag = drag{
			hit:     hit,
			start:   pt,
			offset:  pt.Sub(current.Location()),
			capture: current.Clone(),
		}
		return region.Add(current.BoundingRect())
	}

	app.drag = drag{
		hit:     current.HitTest(pt, spiro.ModeSelected),
		start:   pt,
		offset:  pt.Sub(current.Location()),
		capture: current.Clone(),
		active:  true,
	}
	return nil
}

// Move continues a gesture. Until the pointer is captured (or it has moved
// far enough after selecting) it's a plain hover.
func (app *App) Move(pt geom.Point) geom.Region {
	d := &app.drag
	if d.capture == nil {
		return app.Hover(pt)
	}
	if !d.active {
		if geom.Dist(d.start, pt) <= dragThreshold {
			return nil
		}
		d.active = true
	}
	return app.processDrag(pt)
}

func (app *App) processDrag(pt geom.Point) geom.Region {
	d := &app.drag
	_, current := app.Scene.Current()
	if current == nil {
		return nil
	}

	before := d.capture.BoundingRect()
	switch d.hit {
	case spiro.HitFixedCircle:
		d.capture.ResizeFixedCircle(pt)
	case spiro.HitMovingCircle:
		d.capture.ResizeMovingCircle(pt)
	case spiro.HitPen:
		d.capture.MovePen(pt)
	case spiro.HitBounds:
		d.capture.SetLocation(pt.Sub(d.offset))
	case spiro.HitResize:
		rel := pt.Sub(current.Location()).Sub(d.offset)
		diff := rel.Y
		if math.Abs(rel.X) > math.Abs(rel.Y) {
			diff = rel.X
		}
		d.capture.Resize(current, int(math.Round(diff)))
	default:
		return nil
	}
	return geom.Region{}.Add(before, d.capture.BoundingRect())
}

// Release ends a gesture, committing the edited copy in place of the
// selected curve.
func (app *App) Release() geom.Region {
	d := app.drag
	app.drag = drag{}
	if !d.active {
		return nil
	}

	id, current := app.Scene.Current()
	if current == nil {
		return nil
	}
	region := geom.Region{}.Add(current.BoundingRect(), d.capture.BoundingRect())
	app.Scene.Replace(id, d.capture)
	return region
}

// Dragging returns the curve being edited, if any. Renderers draw it in
// place of the selected curve.
func (app *App) Dragging() *spiro.Model {
	if !app.drag.active {
		return nil
	}
	return app.drag.capture
}
