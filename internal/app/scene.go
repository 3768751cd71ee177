package app

import (
	"sort"

	"github.com/irfansharif/spirograph/internal/geom"
	"github.com/irfansharif/spirograph/internal/spiro"
)

// ID identifies a curve within a scene. IDs are never reused.
type ID int

// NoID is returned when no curve matches.
const NoID ID = -1

// Scene holds the curves on the canvas, in creation order, and tracks which
// one (if any) is selected.
type Scene struct {
	spiros  map[ID]*spiro.Model // map of IDs to curves
	current ID                  // ID of the selected curve
	nextID  ID                  // next ID to assign
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{
		spiros:  make(map[ID]*spiro.Model),
		current: NoID,
	}
}

// AddSpiro adds a curve to the scene, on top of the existing ones.
func (s *Scene) AddSpiro(m *spiro.Model) ID {
	id := s.nextID
	s.spiros[id] = m
	s.nextID++
	return id
}

// Remove removes a curve by ID, deselecting it first if needed.
func (s *Scene) Remove(id ID) bool {
	if _, ok := s.spiros[id]; !ok {
		return false
	}
	if id == s.current {
		s.SetCurrent(NoID)
	}
	delete(s.spiros, id)
	return true
}

// Replace swaps the curve stored under id, keeping its place in the order.
func (s *Scene) Replace(id ID, m *spiro.Model) bool {
	if _, ok := s.spiros[id]; !ok {
		return false
	}
	m.SetSelected(id == s.current)
	s.spiros[id] = m
	return true
}

// Clear removes every curve.
func (s *Scene) Clear() {
	s.SetCurrent(NoID)
	clear(s.spiros)
}

// Get returns the curve with the given ID, or nil.
func (s *Scene) Get(id ID) *spiro.Model { return s.spiros[id] }

// Len returns the number of curves.
func (s *Scene) Len() int { return len(s.spiros) }

// IDs returns all IDs sorted ascending, which is creation (and drawing) order.
func (s *Scene) IDs() []ID {
	ids := make([]ID, 0, len(s.spiros))
	for id := range s.spiros {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Spiros returns all curves in drawing order.
func (s *Scene) Spiros() []*spiro.Model {
	ids := s.IDs()
	out := make([]*spiro.Model, len(ids))
	for i, id := range ids {
		out[i] = s.spiros[id]
	}
	return out
}

// Current returns the selected curve, or (NoID, nil).
func (s *Scene) Current() (ID, *spiro.Model) {
	if m, ok := s.spiros[s.current]; ok {
		return s.current, m
	}
	return NoID, nil
}

// SetCurrent selects the curve with the given ID, deselecting the previous
// one. NoID deselects everything.
func (s *Scene) SetCurrent(id ID) {
	if m, ok := s.spiros[s.current]; ok {
		m.SetSelected(false)
	}
	s.current = NoID
	if m, ok := s.spiros[id]; ok {
		m.SetSelected(true)
		s.current = id
	}
}

// IterSpiro selects the next or previous curve in creation order, wrapping
// around.
func (s *Scene) IterSpiro(next bool) (ID, *spiro.Model) {
	if len(s.spiros) == 0 {
		s.current = NoID
		return NoID, nil
	}

	direction := 1
	if !next {
		direction = -1
	}

	ids := s.IDs()
	pos := -1
	for i, id := range ids {
		if id == s.current {
			pos = i
			break
		}
	}
	var newPos int
	if pos == -1 {
		// Nothing selected, start from the first or last.
		if !next {
			newPos = len(ids) - 1
		}
	} else {
		newPos = (pos + direction + len(ids)) % len(ids)
	}

	s.SetCurrent(ids[newPos])
	return s.Current()
}

// HitTest finds the first curve under pt (canvas coordinates), in creation
// order. The selected curve is tested in selected mode, so that anywhere in
// its focus rect counts; the others must be hit on the curve or the fixed
// circle.
func (s *Scene) HitTest(pt geom.Point) (ID, spiro.HitInfo) {
	for _, id := range s.IDs() {
		m := s.spiros[id]
		mode := spiro.ModeDefault
		if m.Selected() {
			mode = spiro.ModeSelected
		}
		if hit := m.HitTest(pt, mode); hit != spiro.HitNone {
			return id, hit
		}
	}
	return NoID, spiro.HitNone
}

// Closest returns the curve whose fixed circle is closest to pt, or
// (NoID, nil) for an empty scene. Ties go to the most recent curve.
func (s *Scene) Closest(pt geom.Point) (ID, *spiro.Model) {
	best, bestDist := NoID, 0.0
	for _, id := range s.IDs() {
		d := geom.Dist(s.spiros[id].Location(), pt)
		if best == NoID || d <= bestDist+1e-4 {
			best, bestDist = id, d
		}
	}
	return best, s.spiros[best]
}

// Bounds is the union of every curve's bounding rect.
func (s *Scene) Bounds() geom.Box {
	var out geom.Box
	for _, m := range s.spiros {
		out = out.Union(m.BoundingRect())
	}
	return out
}

// IntersectsAny reports whether m's bounding rect overlaps any curve in the
// scene other than m itself.
func (s *Scene) IntersectsAny(m *spiro.Model) bool {
	rc := m.BoundingRect()
	for _, other := range s.spiros {
		if other == m {
			continue
		}
		if other.BoundingRect().Intersects(rc) {
			return true
		}
	}
	return false
}

// Dirty is the merged result of ticking every curve.
type Dirty struct {
	Full      bool        // at least one curve finished a cycle
	Region    geom.Region // canvas coordinates
	Completed []ID        // curves that finished a cycle, in order
}

// Tick advances every curve's animation by one step.
func (s *Scene) Tick() Dirty {
	var dirty Dirty
	for _, id := range s.IDs() {
		r := s.spiros[id].Tick()
		if r.Kind == spiro.RedrawNone {
			continue
		}
		dirty.Region = dirty.Region.Union(r.Region)
		if r.CycleComplete() {
			dirty.Full = true
			dirty.Completed = append(dirty.Completed, id)
		}
	}
	return dirty
}
