package main

import (
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/irfansharif/spirograph/internal/app"
	"github.com/irfansharif/spirograph/internal/chime"
	"github.com/irfansharif/spirograph/internal/config"
	"github.com/irfansharif/spirograph/internal/geom"
	"github.com/irfansharif/spirograph/internal/render"
)

const (
	panCellsX = 4 // cells per pan step; rows are about twice as tall
	panCellsY = 2
	zoomStep  = 1.15
)

// EventHandlers manages all event handling for the application.
type EventHandlers struct {
	application *app.App
	renderer    *render.Renderer
	chime       *chime.Chime

	conf       *config.Config
	configPath string

	// Whether the left button is down, i.e. a press/drag/release gesture
	// is in progress.
	buttonHeld bool
}

// NewEventHandlers creates a new event handlers manager.
func NewEventHandlers(application *app.App, renderer *render.Renderer, c *chime.Chime, conf *config.Config, configPath string) *EventHandlers {
	return &EventHandlers{
		application: application,
		renderer:    renderer,
		chime:       c,
		conf:        conf,
		configPath:  configPath,
	}
}

// run is the main loop: terminal events and animation ticks, with a redraw
// of whatever changed after each.
func (eh *EventHandlers) run(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	screen := eh.renderer.Screen()
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil { // screen finalized
				close(events)
				return
			}
			events <- ev
		}
	}()

	frameCount, tickCount := 0, 0
	drawTimeSum := 0.0
	lastStats := time.Now()
	for {
		select {
		case ev, ok := <-events:
			if !ok || !eh.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			eh.handleTick()
			tickCount++
		}

		if eh.renderer.Draw(eh.application) {
			frameCount++
			drawTimeSum += eh.renderer.Stats().LastDrawTimeUs
		}

		now := time.Now()
		if now.Sub(lastStats) >= time.Second {
			elapsed := now.Sub(lastStats).Seconds()
			avgDrawTime := 0.0
			if frameCount > 0 {
				avgDrawTime = drawTimeSum / float64(frameCount)
			}
			runtimeLogger.Printf("%.1f ticks/s, %.1f frames/s, %.1fµs/frame, %d curves",
				float64(tickCount)/elapsed, float64(frameCount)/elapsed, avgDrawTime, eh.application.Scene.Len())
			frameCount, tickCount, drawTimeSum = 0, 0, 0
			lastStats = now
		}
	}
}

func (eh *EventHandlers) handleTick() {
	dirty := eh.application.Tick()
	eh.renderer.Invalidate(dirty.Region)
	if len(dirty.Completed) > 0 {
		eh.chime.Play()
	}
}

// handleEvent dispatches a terminal event. It returns false when the viewer
// should quit.
func (eh *EventHandlers) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		eh.application.View.SetViewport(w, h)
		eh.renderer.Screen().Sync()
		eh.renderer.InvalidateAll()
	case *tcell.EventKey:
		return eh.handleKey(ev)
	case *tcell.EventMouse:
		eh.handleMouse(ev)
	}
	return true
}

// handleKey handles keyboard input events.
func (eh *EventHandlers) handleKey(ev *tcell.EventKey) bool {
	a := eh.application
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyTab:
		eh.handleNavigation(ev.Modifiers()&tcell.ModShift == 0)
		return true
	case tcell.KeyBacktab:
		eh.handleNavigation(false)
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case 'q':
		return false
	case 'i':
		a.AddInner()
		eh.renderer.InvalidateAll()
	case 'o':
		a.AddOuter()
		eh.renderer.InvalidateAll()
	case 'c':
		a.CloneCurrent()
		eh.renderer.InvalidateAll()
	case 'd':
		a.DeleteCurrent()
		eh.renderer.InvalidateAll()
	case 't':
		eh.withRepaint(a.ChangeType)
	case 'a':
		eh.withRepaint(a.ToggleAnimate)
	case 'r':
		eh.withRepaint(a.ToggleRepeat)
	case 'z':
		eh.withRepaint(a.ToggleRandomise)
	case ' ':
		eh.withRepaint(a.RandomizeCurrent)
	case 's':
		eh.withRepaint(a.ToggleTrace)
	case 'n':
		eh.withRepaint(a.ToggleInfo)
	case '1', '2', '3', '4':
		w := int(ev.Rune() - '0')
		eh.withRepaint(func() bool { return a.SetPenWidth(w) })
	case 'w':
		eh.handleSave()
	case 'f':
		a.View.Fit(a.Scene.Bounds())
		eh.renderer.InvalidateAll()
	case '0':
		a.ResetView()
		eh.renderer.InvalidateAll()
	case 'h':
		eh.performPan(1, 0) // pan right
	case 'l':
		eh.performPan(-1, 0) // pan left
	case 'j':
		eh.performPan(0, -1) // pan down
	case 'k':
		eh.performPan(0, 1) // pan up
	case '+', '=':
		eh.performZoom(eh.screenCenter(), zoomStep)
	case '-':
		eh.performZoom(eh.screenCenter(), 1/zoomStep)
	}
	return true
}

// withRepaint runs a command on the selected curve, repainting what it
// covered before and after.
func (eh *EventHandlers) withRepaint(fn func() bool) {
	before := eh.currentRect()
	if !fn() {
		return
	}
	eh.renderer.Invalidate(geom.Region{}.Add(before, eh.currentRect()))
}

func (eh *EventHandlers) currentRect() geom.Box {
	_, m := eh.application.Scene.Current()
	if m == nil {
		return geom.Box{}
	}
	return m.BoundingRect()
}

// handleNavigation handles tab and shift+tab key presses, selecting the
// next or previous curve and bringing it into view.
func (eh *EventHandlers) handleNavigation(next bool) {
	_, m := eh.application.SelectNext(next)
	if m == nil {
		return // nothing to do
	}
	eh.application.View.CenterOn(m.Location())
	eh.renderer.InvalidateAll()
}

// performPan moves the view by one step in the given direction.
func (eh *EventHandlers) performPan(dx, dy float64) {
	eh.application.View.Pan(dx*panCellsX, dy*panCellsY)
	eh.renderer.InvalidateAll()
}

// performZoom zooms by factor, keeping the canvas point under the given
// screen position in place.
func (eh *EventHandlers) performZoom(screen geom.Point, factor float64) {
	eh.application.View.ZoomAt(screen, factor)
	eh.renderer.InvalidateAll()
}

func (eh *EventHandlers) screenCenter() geom.Point {
	view := eh.application.View
	return geom.MakePoint(float64(view.Width)/2, float64(view.Height)/2)
}

// handleMouse turns terminal mouse reports into press, drag, release and
// hover gestures, and the wheel into zoom.
func (eh *EventHandlers) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	// Reports name a cell; aim for its middle.
	screenPt := geom.MakePoint(float64(x)+0.5, float64(y)+0.5)
	a := eh.application
	pt := a.View.ToCanvas(screenPt)

	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		eh.performZoom(screenPt, zoomStep)
	case buttons&tcell.WheelDown != 0:
		eh.performZoom(screenPt, 1/zoomStep)
	case buttons&tcell.Button1 != 0:
		if !eh.buttonHeld {
			eh.buttonHeld = true
			eh.renderer.Invalidate(a.Press(pt))
		} else {
			eh.renderer.Invalidate(a.Move(pt))
		}
	default:
		if eh.buttonHeld {
			eh.buttonHeld = false
			eh.renderer.Invalidate(a.Move(pt))
			eh.renderer.Invalidate(a.Release())
		} else {
			eh.renderer.Invalidate(a.Hover(pt))
		}
	}
}

// handleSave writes the settings and curves back to the config file.
func (eh *EventHandlers) handleSave() {
	eh.conf.Spiro = eh.application.Records()
	if err := config.Save(eh.configPath, eh.conf); err != nil {
		log.Printf("Failed to save config: %v", err)
		eh.renderer.InvalidateAll()
		return
	}
	runtimeLogger.Printf("saved %d curves to %s", len(eh.conf.Spiro), eh.configPath)
}
