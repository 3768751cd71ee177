package spiro

import (
	"fmt"

	"github.com/irfansharif/spirograph/internal/geom"
	"github.com/irfansharif/spirograph/internal/palette"
	"github.com/irfansharif/spirograph/internal/trochoid"
)

// Record is the flat, persistable form of a curve. The sampled path and the
// animation state are not part of it; they're rebuilt after a restore.
type Record struct {
	Kind      string  `toml:"kind"`
	Fixed     int     `toml:"fixed"`
	Moving    int     `toml:"moving"`
	Pen       int     `toml:"pen"`
	X         float64 `toml:"x"`
	Y         float64 `toml:"y"`
	PenWidth  int     `toml:"pen_width"`
	Colour    string  `toml:"colour"`
	Animate   bool    `toml:"animate"`
	Repeat    bool    `toml:"repeat"`
	ShowTrace bool    `toml:"show_trace"`
	Randomise bool    `toml:"randomise"`
	Speed     float64 `toml:"speed"`
}

// Record returns the persistable form of the curve.
func (m *Model) Record() Record {
	return Record{
		Kind:      m.kind.String(),
		Fixed:     m.fixed,
		Moving:    m.moving,
		Pen:       m.pen,
		X:         m.location.X,
		Y:         m.location.Y,
		PenWidth:  m.penWidth,
		Colour:    palette.Hex(m.colour),
		Animate:   m.animate,
		Repeat:    m.repeat,
		ShowTrace: m.showTrace,
		Randomise: m.randomise,
		Speed:     m.speed,
	}
}

// FromRecord restores a curve. Radii are clamped as for NewWith, but the pen
// distance is kept as saved, sign included. A missing colour, pen width or
// speed falls back to the default.
func FromRecord(rec Record) (*Model, error) {
	kind, err := trochoid.ParseKind(rec.Kind)
	if err != nil {
		return nil, fmt.Errorf("restoring curve: %w", err)
	}
	colour := DefaultColour
	if rec.Colour != "" {
		if colour, err = palette.ParseHex(rec.Colour); err != nil {
			return nil, fmt.Errorf("restoring curve: %w", err)
		}
	}

	m := NewWith(kind, rec.Fixed, rec.Moving, rec.Pen, geom.MakePoint(rec.X, rec.Y))
	if rec.Pen < 0 {
		// Randomize can leave outer curves with the pen inside out.
		m.pen = rec.Pen
		m.reset()
	}
	m.colour = colour
	if rec.PenWidth > 0 {
		m.penWidth = rec.PenWidth
	}
	m.animate = rec.Animate
	m.repeat = rec.Repeat
	m.showTrace = rec.ShowTrace
	m.randomise = rec.Randomise
	if rec.Speed > 0 && rec.Speed != m.speed {
		m.SetSpeed(rec.Speed)
	}
	return m, nil
}
