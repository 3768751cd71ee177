// Package render draws the scene onto a terminal.
//
// Curves live on the canvas; the app's View maps them onto screen cells. The
// renderer:
//  1. Accumulates the canvas regions that changed since the last frame.
//  2. Blanks the screen cells those regions cover, and nothing else.
//  3. Redraws, clipped to those cells, every curve whose bounding rect meets
//     the dirty region, along with its overlay (trace, focus rect, resize
//     handle, info box).
package render

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/irfansharif/spirograph/internal/app"
	"github.com/irfansharif/spirograph/internal/geom"
	"github.com/irfansharif/spirograph/internal/palette"
	"github.com/irfansharif/spirograph/internal/spiro"
)

var renderLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	if os.Getenv("SPIRO_DEBUG_RENDER") == "1" {
		renderLogger = log.New(os.Stderr, "[render] ", log.Ltime|log.Lmsgprefix)
	}
}

// Pen runes by pen width.
var penRunes = [...]rune{'·', '•', '●', '█'}

// Renderer draws an app's scene onto a tcell screen.
type Renderer struct {
	screen tcell.Screen

	dirty geom.Region // canvas coordinates
	full  bool

	clip  []geom.Box // screen cells writable this frame
	stats Stats
}

// Stats tracks rendering performance metrics.
type Stats struct {
	LastDrawTimeUs float64 // time spent in last Draw() call in microseconds
	CellsDrawn     int     // cells written (blanked or painted) by the last Draw()
	SpirosDrawn    int     // curves redrawn by the last Draw()
}

// New initialises the terminal and returns a renderer drawing to it.
func New() (*Renderer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()
	return NewWithScreen(screen), nil
}

// NewWithScreen returns a renderer drawing to an already initialised screen.
func NewWithScreen(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen, full: true}
}

// Screen returns the underlying screen, for polling events.
func (r *Renderer) Screen() tcell.Screen { return r.screen }

// Fini restores the terminal.
func (r *Renderer) Fini() { r.screen.Fini() }

// Stats returns the metrics of the last draw.
func (r *Renderer) Stats() Stats { return r.stats }

// Invalidate marks canvas regions for redrawing on the next Draw.
func (r *Renderer) Invalidate(region geom.Region) {
	r.dirty = r.dirty.Union(region)
}

// InvalidateAll marks the whole screen for redrawing, as after a resize or a
// change of view.
func (r *Renderer) InvalidateAll() { r.full = true }

// Dirty reports whether there's anything to redraw.
func (r *Renderer) Dirty() bool { return r.full || len(r.dirty) > 0 }

// Draw repaints whatever was invalidated since the last draw. It reports
// whether anything was drawn.
func (r *Renderer) Draw(a *app.App) bool {
	if !r.Dirty() {
		r.stats = Stats{}
		return false
	}
	startTime := time.Now()
	r.stats = Stats{}

	w, h := r.screen.Size()
	screenBox := geom.MakeBox(0, 0, float64(w), float64(h))
	view := a.View

	full, dirty := r.full, r.dirty
	r.full, r.dirty = false, nil

	// Work out which cells may be written this frame, and blank them.
	r.clip = r.clip[:0]
	if full {
		r.clip = append(r.clip, screenBox)
		r.screen.Clear()
		r.stats.CellsDrawn += w * h
	} else {
		for _, b := range dirty {
			sb := snapToCells(view.ToScreenBox(b).Inflate(1, 1), screenBox)
			if sb.Empty() {
				continue
			}
			r.clip = append(r.clip, sb)
			r.blank(sb)
		}
		if len(r.clip) == 0 {
			renderLogger.Printf("dirty region %v is off screen", dirty.Bounds())
			return false
		}
	}

	currentID, _ := a.Scene.Current()
	hoverID, hover := a.HoverHit()
	if hoverID != currentID {
		hover = spiro.HitNone
	}
	for _, id := range a.Scene.IDs() {
		m := a.Scene.Get(id)
		if id == currentID {
			if capture := a.Dragging(); capture != nil {
				m = capture
			}
		}
		if !full && !dirty.Intersects(m.BoundingRect()) {
			continue
		}
		if !view.ToScreenBox(m.BoundingRect()).Intersects(screenBox) {
			continue
		}
		r.drawSpiro(view, m, hover)
		r.stats.SpirosDrawn++
	}

	r.screen.Show()
	r.stats.LastDrawTimeUs = float64(time.Since(startTime).Nanoseconds()) / 1000.0
	renderLogger.Printf("drew %d curves, %d cells in %d clip boxes (full=%t) in %.1fµs",
		r.stats.SpirosDrawn, r.stats.CellsDrawn, len(r.clip), full, r.stats.LastDrawTimeUs)
	return true
}

// snapToCells grows b to whole cells and clips it to the screen.
func snapToCells(b, screen geom.Box) geom.Box {
	x0 := math.Max(math.Floor(b.X), screen.X)
	y0 := math.Max(math.Floor(b.Y), screen.Y)
	x1 := math.Min(math.Ceil(b.Right()), screen.Right())
	y1 := math.Min(math.Ceil(b.Bottom()), screen.Bottom())
	return geom.MakeBox(x0, y0, x1-x0, y1-y0)
}

func (r *Renderer) blank(b geom.Box) {
	for y := int(b.Y); y < int(b.Bottom()); y++ {
		for x := int(b.X); x < int(b.Right()); x++ {
			r.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
			r.stats.CellsDrawn++
		}
	}
}

// set writes a cell if it lies within this frame's clip.
func (r *Renderer) set(x, y int, ch rune, style tcell.Style) {
	pt := geom.MakePoint(float64(x)+0.5, float64(y)+0.5)
	for _, b := range r.clip {
		if b.Contains(pt) {
			r.screen.SetContent(x, y, ch, nil, style)
			r.stats.CellsDrawn++
			return
		}
	}
}

func (r *Renderer) plotter(ch rune, style tcell.Style) plotFunc {
	return func(x, y int) { r.set(x, y, ch, style) }
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		r.set(x, y, ch, style)
		x++
	}
}

func styleFor(c color.RGBA) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

func (r *Renderer) drawSpiro(view *app.View, m *spiro.Model, hover spiro.HitInfo) {
	if m.Selected() {
		r.drawFocus(view, m, hover) // underneath everything else
	}

	penWidth := min(max(m.PenWidth(), 1), len(penRunes))
	penStyle := styleFor(m.Colour())

	visible := m.VisiblePath()
	pts := make([]geom.Point, len(visible))
	for i, p := range visible {
		pts[i] = view.ToScreen(p.Add(m.Location()))
	}
	polyline(pts, r.plotter(penRunes[penWidth-1], penStyle))

	animating := m.Animate() && !m.Complete()
	if m.Selected() || (m.ShowTrace() && animating) {
		traceColour := palette.Gray
		if !m.Selected() {
			traceColour = palette.Fade(m.Colour(), palette.Gray, 0.5)
		}
		r.drawTrace(view, m.Trace(), traceColour, hover)
	}
	if m.Selected() || m.ShowInfo() {
		r.drawInfo(view, m)
	}
}

func partStyle(part, hover spiro.HitInfo, c color.RGBA) tcell.Style {
	if part == hover {
		return styleFor(palette.Hot)
	}
	return styleFor(c)
}

func (r *Renderer) drawTrace(view *app.View, tr spiro.Trace, c color.RGBA, hover spiro.HitInfo) {
	circle := func(center geom.Point, radius int, style tcell.Style) {
		sc := view.ToScreen(center)
		edge := view.ToScreen(center.Add(geom.MakePoint(float64(radius), float64(radius))))
		ellipse(sc, edge.X-sc.X, edge.Y-sc.Y, r.plotter('∙', style))
	}
	circle(tr.FixedCenter, tr.FixedRadius, partStyle(spiro.HitFixedCircle, hover, c))
	circle(tr.MovingCenter, tr.MovingRadius, partStyle(spiro.HitMovingCircle, hover, c))

	penStyle := partStyle(spiro.HitPen, hover, c)
	mx, my := cell(view.ToScreen(tr.MovingCenter))
	px, py := cell(view.ToScreen(tr.Pen))
	line(mx, my, px, py, r.plotter('∙', penStyle))

	cross := view.ToScreenBox(tr.Cross)
	x0, y0 := cell(geom.MakePoint(cross.X, cross.Y))
	x1, y1 := cell(cross.BottomRight())
	line(x0, py, x1, py, r.plotter('─', penStyle))
	line(px, y0, px, y1, r.plotter('│', penStyle))
	r.set(px, py, '┼', penStyle)
}

func (r *Renderer) drawFocus(view *app.View, m *spiro.Model, hover spiro.HitInfo) {
	focus := view.ToScreenBox(m.FocusRect())
	x0, y0 := cell(geom.MakePoint(focus.X, focus.Y))
	x1, y1 := cell(focus.BottomRight())
	style := partStyle(spiro.HitBounds, hover, palette.DarkGray)
	rectOutline(x0, y0, x1, y1, func(x, y int, ch rune) { r.set(x, y, ch, style) })

	hx, hy := cell(view.ToScreen(m.ResizeHandleRect().Center()))
	r.set(hx, hy, '◢', partStyle(spiro.HitResize, hover, palette.DarkGray))
}

// drawInfo writes the curve's figures beneath it.
func (r *Renderer) drawInfo(view *app.View, m *spiro.Model) {
	info := m.Info()
	box := view.ToScreenBox(m.FocusRect())
	x, y := cell(geom.MakePoint(box.X, box.Bottom()))
	style := styleFor(palette.LightGray)
	lines := []string{
		fmt.Sprintf("%s R=%d r=%d f=%d", m.Kind(), info.Fixed, info.Moving, info.Pen),
		fmt.Sprintf("orbits=%d gcd=%d res=%d", info.Orbits, info.GCD, info.Resolution),
	}
	for i, l := range lines {
		r.text(x, y+1+i, l, style)
	}
}
