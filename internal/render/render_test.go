package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfansharif/spirograph/internal/app"
	"github.com/irfansharif/spirograph/internal/geom"
	"github.com/irfansharif/spirograph/internal/palette"
	"github.com/irfansharif/spirograph/internal/spiro"
	"github.com/irfansharif/spirograph/internal/trochoid"
)

const testWidth, testHeight = 80, 40

func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(testWidth, testHeight)
	return screen
}

// newTestScene returns an app holding one still default curve drawn around
// the middle of the screen.
func newTestScene(t *testing.T) (*app.App, app.ID, *spiro.Model) {
	t.Helper()
	a := app.NewApp(app.NewView(testWidth, testHeight), 1)
	id := a.AddSpiro(trochoid.Inner, geom.MakePoint(40, 20))
	m := a.Scene.Get(id)
	m.SetAnimate(false)
	return a, id, m
}

func rowText(screen tcell.SimulationScreen, y int) string {
	var sb strings.Builder
	for x := 0; x < testWidth; x++ {
		ch, _, _, _ := screen.GetContent(x, y)
		sb.WriteRune(ch)
	}
	return sb.String()
}

func screenText(screen tcell.SimulationScreen) string {
	var sb strings.Builder
	for y := 0; y < testHeight; y++ {
		sb.WriteString(rowText(screen, y))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func TestDrawFull(t *testing.T) {
	screen := newTestScreen(t)
	r := NewWithScreen(screen)
	a, _, m := newTestScene(t)

	require.True(t, r.Draw(a), "a new renderer starts dirty")
	assert.Equal(t, 1, r.Stats().SpirosDrawn)
	assert.Greater(t, r.Stats().CellsDrawn, testWidth*testHeight)

	x, y := cell(a.View.ToScreen(m.Path()[0].Add(m.Location())))
	ch, _, style, _ := screen.GetContent(x, y)
	assert.Equal(t, penRunes[m.PenWidth()-1], ch)
	assert.Equal(t, styleFor(m.Colour()), style)

	// The path's far side is drawn too.
	x, y = cell(a.View.ToScreen(m.Path()[len(m.Path())/2].Add(m.Location())))
	ch, _, _, _ = screen.GetContent(x, y)
	assert.Equal(t, penRunes[m.PenWidth()-1], ch)

	assert.False(t, r.Draw(a), "nothing changed")
	assert.Zero(t, r.Stats().CellsDrawn)
}

func TestDrawClipsToDirtyRegion(t *testing.T) {
	screen := newTestScreen(t)
	r := NewWithScreen(screen)
	a, _, m := newTestScene(t)
	r.Draw(a)

	screen.SetContent(0, 0, 'X', nil, tcell.StyleDefault)
	r.Invalidate(geom.Region{m.BoundingRect()})
	require.True(t, r.Dirty())
	require.True(t, r.Draw(a))
	assert.Equal(t, 1, r.Stats().SpirosDrawn)

	ch, _, _, _ := screen.GetContent(0, 0)
	assert.Equal(t, 'X', ch, "cells outside the dirty region are untouched")

	x, y := cell(a.View.ToScreen(m.Path()[0].Add(m.Location())))
	ch, _, _, _ = screen.GetContent(x, y)
	assert.Equal(t, penRunes[m.PenWidth()-1], ch)
}

func TestDrawSkipsCleanSpiros(t *testing.T) {
	screen := newTestScreen(t)
	r := NewWithScreen(screen)
	a, _, m := newTestScene(t)
	r.Draw(a)
	screen.SetContent(0, 0, 'X', nil, tcell.StyleDefault)

	// A region well clear of the curve, in the top-left corner of the screen.
	corner := geom.BoxFromPoints(
		a.View.ToCanvas(geom.MakePoint(0, 0)),
		a.View.ToCanvas(geom.MakePoint(2, 1)),
	)
	require.False(t, corner.Intersects(m.BoundingRect()))
	r.Invalidate(geom.Region{corner})
	require.True(t, r.Draw(a))
	assert.Zero(t, r.Stats().SpirosDrawn)

	ch, _, _, _ := screen.GetContent(0, 0)
	assert.Equal(t, ' ', ch, "dirty cells are blanked")
	x, y := cell(a.View.ToScreen(m.Path()[0].Add(m.Location())))
	ch, _, _, _ = screen.GetContent(x, y)
	assert.Equal(t, penRunes[m.PenWidth()-1], ch, "clean cells keep their content")
}

func TestDrawOffScreenRegion(t *testing.T) {
	screen := newTestScreen(t)
	r := NewWithScreen(screen)
	a, _, _ := newTestScene(t)
	r.Draw(a)

	r.Invalidate(geom.Region{geom.MakeBox(1e6, 1e6, 10, 10)})
	assert.False(t, r.Draw(a))
	assert.False(t, r.Dirty())
}

func TestDrawSelected(t *testing.T) {
	screen := newTestScreen(t)
	r := NewWithScreen(screen)
	a, id, m := newTestScene(t)
	a.Scene.SetCurrent(id)

	r.InvalidateAll()
	require.True(t, r.Draw(a))
	text := screenText(screen)
	for _, ch := range []rune{runeTopLeft, runeTopRight, runeBottomLeft, '◢', '┼'} {
		assert.Contains(t, text, string(ch))
	}
	assert.Contains(t, text, "inner R=210 r=30 f=40")

	// The hovered part is highlighted.
	a.Hover(m.ResizeHandleRect().Center())
	_, hit := a.HoverHit()
	require.Equal(t, spiro.HitResize, hit)
	r.InvalidateAll()
	r.Draw(a)
	hx, hy := cell(a.View.ToScreen(m.ResizeHandleRect().Center()))
	_, _, style, _ := screen.GetContent(hx, hy)
	assert.Equal(t, styleFor(palette.Hot), style)
}

func TestDrawDragging(t *testing.T) {
	screen := newTestScreen(t)
	r := NewWithScreen(screen)
	a, id, m := newTestScene(t)
	a.Scene.SetCurrent(id)

	// Drag the whole curve by its bounds, far enough to move it on screen.
	start := m.Location().Add(geom.MakePoint(10, 0))
	a.Press(start)
	a.Move(start.Add(geom.MakePoint(100, 0)))
	capture := a.Dragging()
	require.NotNil(t, capture)

	r.InvalidateAll()
	r.Draw(a)
	// Half way round, clear of the trace overlay at the pen.
	path := capture.Path()
	x, y := cell(a.View.ToScreen(path[len(path)/2].Add(capture.Location())))
	ch, _, _, _ := screen.GetContent(x, y)
	assert.Equal(t, penRunes[capture.PenWidth()-1], ch, "the dragged copy is drawn")
}
