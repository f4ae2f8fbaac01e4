package drafting

import (
	"math"

	"github.com/alexiusacademia/gorcdraft/internal/floor"
	"github.com/alexiusacademia/gorcdraft/internal/geometry"
)

// splitEpsilon guards against zero-length beam pieces when a column lands on a beam end.
const splitEpsilon = 1e-9

func (e *Engine) beamTolerance(f *floor.Floor) float64 {
	return e.tolerance(f, e.opts.BeamHitWidth/2)
}

func (e *Engine) selectDown(f *floor.Floor, p Pointer) {
	r, hit := f.Structure.HitTest(p.Pos, e.beamTolerance(f))
	if !hit {
		if !p.multi() {
			f.Selection.Clear()
			e.emit(Event{Type: EventSelectionChanged, Floor: f.ID})
		}
		start := p.Pos
		f.Pending.SelectFrom = &start
		f.Pending.SelectBox = nil
		return
	}
	if p.multi() {
		f.Selection.Toggle(r)
	} else {
		f.Selection.Set(r)
	}
	e.emit(Event{Type: EventSelectionChanged, Floor: f.ID})
}

func (e *Engine) deleteAt(f *floor.Floor, p geometry.Point, kinds ...floor.Kind) {
	r, hit := f.Structure.HitTest(p, e.beamTolerance(f), kinds...)
	if !hit {
		return
	}
	f.Remove(r)
	f.Selection.Clear()
	e.emit(Event{Type: EventStructureChanged, Floor: f.ID})
	e.emit(Event{Type: EventSelectionChanged, Floor: f.ID})
}

// findWall returns the index of the first wall within pick distance of p.
func (e *Engine) findWall(f *floor.Floor, p geometry.Point) (int, bool) {
	tol := e.tolerance(f, e.opts.WallPickDistance)
	for i, w := range f.Draft.Walls {
		if geometry.PointToSegment(p, w.A(), w.B()) < tol {
			return i, true
		}
	}
	return 0, false
}

// cutDoor replaces the wall under p by the pieces left after a door-wide gap
// centered on p's projection. The gap is clipped to the wall, and a side with
// no wall left is dropped.
func (e *Engine) cutDoor(f *floor.Floor, p geometry.Point) error {
	i, ok := e.findWall(f, p)
	if !ok {
		return nil
	}
	w := f.Draft.Walls[i]
	a, b := w.A(), w.B()
	length := a.Distance(b)
	_, t := geometry.ProjectOnLine(p, a, b)
	at := math.Min(math.Max(t, 0), 1) * length
	half := e.opts.DoorWidth * f.Scale / 2
	lo, hi := math.Max(at-half, 0), math.Min(at+half, length)
	dir := geometry.UnitDirection(a, b)

	walls := make([]floor.Wall, 0, len(f.Draft.Walls)+1)
	walls = append(walls, f.Draft.Walls[:i]...)
	walls = append(walls, f.Draft.Walls[i+1:]...)
	if lo > 0 {
		walls = append(walls, floor.NewWall(e.opts.NewID(IDWall), a, a.Add(dir.Scale(lo)), w.Thickness))
	}
	if hi < length {
		walls = append(walls, floor.NewWall(e.opts.NewID(IDWall), a.Add(dir.Scale(hi)), b, w.Thickness))
	}
	f.Draft.Walls = walls
	if err := f.Checkpoint(); err != nil {
		return err
	}
	e.emit(Event{Type: EventDraftChanged, Floor: f.ID})
	return nil
}

// placeColumn drops a column at p, projected onto a nearby wall, and splits every beam it lands on.
func (e *Engine) placeColumn(f *floor.Floor, p geometry.Point) {
	if i, ok := e.findWall(f, p); ok {
		w := f.Draft.Walls[i]
		p = geometry.ProjectOnSegment(p, w.A(), w.B())
	}
	size := f.ColumnSize()
	tol := size / 2

	beams := f.Structure.Beams()
	for _, b := range beams {
		if geometry.IsPointOnSegment(p, b.Start, b.End, tol) {
			if d := geometry.PointToSegment(p, b.Start, b.End); d > splitEpsilon {
				p = geometry.ProjectOnSegment(p, b.Start, b.End)
			}
			break
		}
	}

	col := &floor.Column{ID: e.opts.NewID(IDColumn), Center: p, Size: size}
	ref := f.Structure.Add(col)

	for _, b := range beams {
		if !geometry.IsPointOnSegment(p, b.Start, b.End, tol) {
			continue
		}
		if p.Distance(b.Start) <= splitEpsilon || p.Distance(b.End) <= splitEpsilon {
			continue
		}
		end := b.End
		b.End = p
		f.Structure.Add(&floor.Beam{
			ID:          b.ID + "_split",
			Start:       p,
			End:         end,
			Type:        b.Type,
			StrokeWidth: b.StrokeWidth,
		})
	}

	f.Selection.Set(ref)
	f.Pending.Reset()
	e.emit(Event{Type: EventStructureChanged, Floor: f.ID})
	e.emit(Event{Type: EventSelectionChanged, Floor: f.ID})
}

func (e *Engine) slabClick(f *floor.Floor, p geometry.Point) {
	pend := &f.Pending
	if pend.Anchor == nil {
		start := p
		ghost := geometry.Rect{X: p.X, Y: p.Y}
		pend.Anchor, pend.GhostSlab = &start, &ghost
		return
	}
	r := geometry.NormalizeRect(*pend.Anchor, p)
	pend.Reset()
	if r.Width < e.opts.MinSlabSize || r.Height < e.opts.MinSlabSize {
		return
	}
	id := e.opts.NewID(IDSlab)
	f.Structure.Add(&floor.Slab{ID: id, Rect: r, Label: floor.SlabLabel(id)})
	e.emit(Event{Type: EventStructureChanged, Floor: f.ID})
}

// lineClick drives the two-click tools: wall, scale, stair and add-beam.
func (e *Engine) lineClick(f *floor.Floor, p geometry.Point) error {
	pend := &f.Pending
	if pend.Anchor == nil {
		start, end := p, p
		pend.Anchor, pend.GhostEnd = &start, &end
		return nil
	}
	anchor := *pend.Anchor

	switch e.tool {
	case ToolWall:
		f.AddWall(floor.NewWall(e.opts.NewID(IDWall), anchor, p, e.opts.WallThicknessMM/1000))
		next, end := p, p
		pend.Anchor, pend.GhostEnd = &next, &end
		if err := f.Checkpoint(); err != nil {
			return err
		}
		e.emit(Event{Type: EventDraftChanged, Floor: f.ID})

	case ToolScale:
		pend.Reset()
		e.openPrompt(&Prompt{
			Kind:    PromptScaleDistance,
			Floor:   f.ID,
			Message: "Enter " + string(f.ID) + " distance in METERS:",
			pixels:  anchor.Distance(p),
		})

	case ToolStair:
		f.AddStair(floor.NewStair(anchor, p))
		pend.Reset()
		if err := f.Checkpoint(); err != nil {
			return err
		}
		e.emit(Event{Type: EventDraftChanged, Floor: f.ID})

	case ToolAddBeam:
		pend.Reset()
		ref := f.Structure.Add(&floor.Beam{
			ID:          e.opts.NewID(IDBeam),
			Start:       anchor,
			End:         p,
			Type:        floor.BeamPrimary,
			StrokeWidth: f.BeamStroke(),
		})
		f.Selection.Set(ref)
		e.emit(Event{Type: EventStructureChanged, Floor: f.ID})
		e.emit(Event{Type: EventSelectionChanged, Floor: f.ID})
	}
	return nil
}

// DeleteSelection removes the selected elements of the active floor. With
// nothing selected it removes the most recently drawn wall instead.
func (e *Engine) DeleteSelection() error {
	f := e.ActiveFloor()
	if f.Selection.Empty() {
		if !f.PopWall() {
			return nil
		}
		if err := f.Checkpoint(); err != nil {
			return err
		}
		e.emit(Event{Type: EventDraftChanged, Floor: f.ID})
		return nil
	}
	for _, r := range f.Selection.Refs() {
		f.Structure.Remove(r)
	}
	f.Selection.Clear()
	e.emit(Event{Type: EventStructureChanged, Floor: f.ID})
	e.emit(Event{Type: EventSelectionChanged, Floor: f.ID})
	return nil
}
