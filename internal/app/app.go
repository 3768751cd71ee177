// Package app is the canvas that hosts the curves: the scene, the view onto
// it, pointer gestures that edit the selected curve, and the commands bound
// to keys.
package app

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/irfansharif/spirograph/internal/geom"
	"github.com/irfansharif/spirograph/internal/palette"
	"github.com/irfansharif/spirograph/internal/spiro"
	"github.com/irfansharif/spirograph/internal/trochoid"
)

const (
	maxPlacementAttempts = 10 // attempts at placing a random curve clear of the others
	maxScreensaverSpiros = 4  // curves on screen in screensaver mode
	screensaverSpeed     = 20
	screensaverMargin    = 100 // keep random locations this far from the edges
	cloneOffset          = 100
)

// App encapsulates the main application state and logic.
type App struct {
	Scene *Scene
	View  *View

	// Screensaver regenerates every curve that finishes a cycle, adding more
	// curves (up to maxScreensaverSpiros) as it goes.
	Screensaver bool

	// MaxRandomDiameter bounds curves generated by the screensaver. Zero
	// derives it from the visible canvas.
	MaxRandomDiameter int

	rng     *rand.Rand
	drag    drag
	hoverID ID
	hover   spiro.HitInfo
}

// NewApp creates a new application instance with an empty scene.
func NewApp(view *View, seed int64) *App {
	return &App{
		Scene:   NewScene(),
		View:    view,
		rng:     rand.New(rand.NewSource(seed)),
		hoverID: NoID,
	}
}

// newModel creates a curve whose randomness derives from the app's seed.
func (app *App) newModel(kind trochoid.Kind, location geom.Point) *spiro.Model {
	m := spiro.New(kind)
	m.SetLocation(location)
	m.SetRand(rand.New(rand.NewSource(app.rng.Int63())))
	return m
}

// AddSpiro adds a default curve of the given kind at location.
func (app *App) AddSpiro(kind trochoid.Kind, location geom.Point) ID {
	return app.Scene.AddSpiro(app.newModel(kind, location))
}

// AddInner adds a default inner curve in the middle of the view.
func (app *App) AddInner() ID {
	return app.AddSpiro(trochoid.Inner, app.View.VisibleCanvas().Center())
}

// AddOuter adds a default outer curve in the middle of the view.
func (app *App) AddOuter() ID {
	return app.AddSpiro(trochoid.Outer, app.View.VisibleCanvas().Center())
}

// SelectNext selects the next or previous curve in creation order. With
// nothing selected it starts from the curve nearest the middle of the view.
func (app *App) SelectNext(next bool) (ID, *spiro.Model) {
	if id, _ := app.Scene.Current(); id == NoID {
		if id, _ := app.Scene.Closest(app.View.VisibleCanvas().Center()); id != NoID {
			app.Scene.SetCurrent(id)
		}
		return app.Scene.Current()
	}
	return app.Scene.IterSpiro(next)
}

// ResetView returns to unit zoom, centred on the selected curve or, with
// nothing selected, on the middle of the scene.
func (app *App) ResetView() {
	if _, m := app.Scene.Current(); m != nil {
		app.View.ResetTo(m.Location())
		return
	}
	if b := app.Scene.Bounds(); !b.Empty() {
		app.View.ResetTo(b.Center())
		return
	}
	app.View.ResetTo(app.View.VisibleCanvas().Center())
}

// CloneCurrent adds a copy of the selected curve, offset down and to the
// right. The copy starts out still and unselected.
func (app *App) CloneCurrent() ID {
	_, m := app.Scene.Current()
	if m == nil {
		return NoID
	}
	c := m.Clone()
	c.SetLocation(c.Location().Add(geom.MakePoint(cloneOffset, cloneOffset)))
	c.SetSelected(false)
	c.SetAnimate(false)
	return app.Scene.AddSpiro(c)
}

// DeleteCurrent removes the selected curve. The last curve can't be deleted.
func (app *App) DeleteCurrent() bool {
	id, m := app.Scene.Current()
	if m == nil || app.Scene.Len() <= 1 {
		return false
	}
	return app.Scene.Remove(id)
}

// ChangeType converts the selected curve to the other family.
func (app *App) ChangeType() bool {
	id, m := app.Scene.Current()
	if m == nil {
		return false
	}
	return app.Scene.Replace(id, m.WithKind(m.Kind().Other()))
}

// ToggleAnimate starts or stops the selected curve's animation. Starting it
// deselects the curve, since selected curves don't animate.
func (app *App) ToggleAnimate() bool {
	_, m := app.Scene.Current()
	if m == nil {
		return false
	}
	m.SetAnimate(!m.Animate())
	if m.Animate() {
		app.Scene.SetCurrent(NoID)
	}
	return true
}

// ToggleRepeat flips whether the selected curve restarts after a cycle.
func (app *App) ToggleRepeat() bool {
	return app.withCurrent(func(m *spiro.Model) { m.SetRepeat(!m.Repeat()) })
}

// ToggleRandomise flips whether the selected curve is regenerated after
// every cycle.
func (app *App) ToggleRandomise() bool {
	return app.withCurrent(func(m *spiro.Model) { m.SetRandomise(!m.Randomise()) })
}

// ToggleTrace flips whether the selected curve shows its circles while
// animating.
func (app *App) ToggleTrace() bool {
	return app.withCurrent(func(m *spiro.Model) { m.SetShowTrace(!m.ShowTrace()) })
}

// ToggleInfo flips whether the selected curve shows its info box.
func (app *App) ToggleInfo() bool {
	return app.withCurrent(func(m *spiro.Model) { m.SetShowInfo(!m.ShowInfo()) })
}

// SetPenWidth sets the selected curve's pen width.
func (app *App) SetPenWidth(w int) bool {
	return app.withCurrent(func(m *spiro.Model) { m.SetPenWidth(w) })
}

// RandomizeCurrent replaces the selected curve with a random one of the same
// extent.
func (app *App) RandomizeCurrent() bool {
	return app.withCurrent(func(m *spiro.Model) { m.Randomize(0) })
}

func (app *App) withCurrent(fn func(m *spiro.Model)) bool {
	_, m := app.Scene.Current()
	if m == nil {
		return false
	}
	fn(m)
	return true
}

// Tick advances every curve by one step. In screensaver mode, curves that
// completed a cycle are regenerated elsewhere and new ones are spawned.
func (app *App) Tick() Dirty {
	dirty := app.Scene.Tick()
	if !app.Screensaver {
		return dirty
	}
	for _, id := range dirty.Completed {
		m := app.Scene.Get(id)
		if m == nil {
			continue
		}
		if app.Scene.Len() < maxScreensaverSpiros {
			kind := trochoid.Inner
			if app.Scene.Len()%2 == 1 {
				kind = trochoid.Outer
			}
			next := app.newScreensaverModel(kind)
			app.Scene.AddSpiro(next)
			dirty.Region = dirty.Region.Add(next.BoundingRect())
		}
		dirty.Region = dirty.Region.Add(m.BoundingRect())
		app.AutoRandom(m)
		dirty.Region = dirty.Region.Add(m.BoundingRect())
	}
	return dirty
}

// StartScreensaver clears the scene and seeds it with one random curve.
func (app *App) StartScreensaver() {
	app.Screensaver = true
	app.Scene.Clear()
	app.Scene.AddSpiro(app.newScreensaverModel(trochoid.Inner))
}

func (app *App) newScreensaverModel(kind trochoid.Kind) *spiro.Model {
	m := spiro.NewWith(kind, 65, 20, 28, geom.MakePoint(100, 100))
	m.SetRand(rand.New(rand.NewSource(app.rng.Int63())))
	m.SetShowTrace(false)
	app.AutoRandom(m)
	return m
}

// AutoRandom regenerates m for the screensaver: a new random shape, colour,
// pen width and location, preferring a spot clear of the other curves.
func (app *App) AutoRandom(m *spiro.Model) {
	visible := app.View.VisibleCanvas()
	maxDiameter := app.MaxRandomDiameter
	if maxDiameter <= 0 {
		maxDiameter = max(int(min(visible.W, visible.H)/4), 50)
	}
	m.SetRandomise(false)
	m.SetMaxRandomDiameter(maxDiameter)

	for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
		m.Randomize(maxDiameter)
		m.SetColour(palette.RandomPastel(app.rng))
		m.SetLocation(app.randomLocation(visible))
		m.SetSpeed(screensaverSpeed)
		m.SetPenWidth(1 + app.rng.Intn(4))
		if !app.Scene.IntersectsAny(m) {
			return
		}
	}
	log.Printf("WARNING: could not place curve clear of the others after %d attempts", maxPlacementAttempts)
}

func (app *App) randomLocation(visible geom.Box) geom.Point {
	inner := visible.Inflate(-screensaverMargin, -screensaverMargin)
	if inner.Empty() {
		return visible.Center()
	}
	return geom.MakePoint(
		inner.X+app.rng.Float64()*inner.W,
		inner.Y+app.rng.Float64()*inner.H,
	)
}

// Records returns the persistable form of every curve, in drawing order.
func (app *App) Records() []spiro.Record {
	spiros := app.Scene.Spiros()
	out := make([]spiro.Record, len(spiros))
	for i, m := range spiros {
		out[i] = m.Record()
	}
	return out
}

// LoadRecords replaces the scene with the given curves. The scene is left
// untouched if any record is invalid.
func (app *App) LoadRecords(records []spiro.Record) error {
	models := make([]*spiro.Model, len(records))
	for i, rec := range records {
		m, err := spiro.FromRecord(rec)
		if err != nil {
			return fmt.Errorf("loading curve %d: %w", i, err)
		}
		m.SetRand(rand.New(rand.NewSource(app.rng.Int63())))
		models[i] = m
	}

	app.drag = drag{}
	app.Scene.Clear()
	for _, m := range models {
		app.Scene.AddSpiro(m)
	}
	return nil
}
