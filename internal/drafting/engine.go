// Package drafting is the interaction engine: it interprets pointer input on
// the active floor according to the current tool and mutates floor state.
package drafting

import (
	"errors"
	"fmt"

	"github.com/alexiusacademia/gorcdraft/internal/floor"
	"github.com/alexiusacademia/gorcdraft/internal/geometry"
)

var (
	ErrScaleNotSet       = errors.New("set scale first")
	ErrPromptPending     = errors.New("a prompt is awaiting a response")
	ErrNoPrompt          = errors.New("no prompt is pending")
	ErrMergeSelection    = errors.New("select at least 2 beams or 2 panels to merge")
	ErrNoSeparatingBeams = errors.New("could not find separating beams")
	ErrRenameSelection   = errors.New("select exactly one element to rename")
	ErrNoBeamsSelected   = errors.New("no beams selected")
	ErrEmptyID           = errors.New("id must not be empty")
)

// Button is the pointer button of a press.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
)

// Pointer is one pointer event in canvas coordinates.
type Pointer struct {
	Pos    geometry.Point
	Button Button
	Shift  bool
	Ctrl   bool
}

func (p Pointer) multi() bool { return p.Shift || p.Ctrl }

// Options tune snapping, picking and the sizes of drawn elements.
type Options struct {
	Snap             bool
	Ortho            bool
	SnapDistance     float64 // screen px
	WallPickDistance float64 // screen px
	BeamHitWidth     float64 // screen px
	WallThicknessMM  float64
	MinSlabSize      float64 // canvas px
	DoorWidth        float64 // m
	NewID            IDFunc
}

// DefaultOptions returns the stock drafting settings with snapping on.
func DefaultOptions() Options {
	return Options{
		Snap:             true,
		SnapDistance:     15,
		WallPickDistance: 10,
		BeamHitWidth:     20,
		WallThicknessMM:  230,
		MinSlabSize:      10,
		DoorWidth:        0.9,
		NewID:            RandomIDs,
	}
}

func (o *Options) fill() {
	d := DefaultOptions()
	if o.SnapDistance <= 0 {
		o.SnapDistance = d.SnapDistance
	}
	if o.WallPickDistance <= 0 {
		o.WallPickDistance = d.WallPickDistance
	}
	if o.BeamHitWidth <= 0 {
		o.BeamHitWidth = d.BeamHitWidth
	}
	if o.WallThicknessMM <= 0 {
		o.WallThicknessMM = d.WallThicknessMM
	}
	if o.MinSlabSize <= 0 {
		o.MinSlabSize = d.MinSlabSize
	}
	if o.DoorWidth <= 0 {
		o.DoorWidth = d.DoorWidth
	}
	if o.NewID == nil {
		o.NewID = d.NewID
	}
}

// Engine owns both floors and routes input to the active one.
type Engine struct {
	opts      Options
	floors    map[floor.ID]*floor.Floor
	active    floor.ID
	tool      Tool
	prompt    *Prompt
	listeners map[EventType][]EventListener
}

// New returns an engine with two empty floors, the ground floor active and the select tool chosen.
func New(opts Options) *Engine {
	opts.fill()
	e := &Engine{
		opts:      opts,
		floors:    make(map[floor.ID]*floor.Floor, len(floor.IDs)),
		active:    floor.GroundFloor,
		tool:      ToolSelect,
		listeners: make(map[EventType][]EventListener),
	}
	for _, id := range floor.IDs {
		e.floors[id] = floor.New(id)
	}
	return e
}

// Options returns the current settings.
func (e *Engine) Options() Options { return e.opts }

// SetSnap toggles endpoint snapping.
func (e *Engine) SetSnap(on bool) { e.opts.Snap = on }

// SetOrtho toggles the orthogonal constraint.
func (e *Engine) SetOrtho(on bool) { e.opts.Ortho = on }

// SetWallThickness sets the thickness of subsequently drawn walls.
func (e *Engine) SetWallThickness(mm float64) {
	if mm > 0 {
		e.opts.WallThicknessMM = mm
	}
}

// Floor returns the floor with the given id, or nil.
func (e *Engine) Floor(id floor.ID) *floor.Floor {
	return e.floors[id]
}

// Active returns the id of the floor receiving input.
func (e *Engine) Active() floor.ID { return e.active }

// ActiveFloor returns the floor receiving input.
func (e *Engine) ActiveFloor() *floor.Floor { return e.floors[e.active] }

// SetActive routes input to another floor. Floor state is left untouched.
func (e *Engine) SetActive(id floor.ID) error {
	if _, ok := e.floors[id]; !ok {
		return fmt.Errorf("unknown floor %q", id)
	}
	if id == e.active {
		return nil
	}
	e.active = id
	e.emit(Event{Type: EventActiveFloorChanged, Floor: id, Message: e.Indicator()})
	return nil
}

// Indicator is the active-floor label shown to the user.
func (e *Engine) Indicator() string {
	return "Active: " + e.active.Label()
}

// Tool returns the current tool.
func (e *Engine) Tool() Tool { return e.tool }

// SelectTool switches tools and cancels in-progress draws on both floors.
func (e *Engine) SelectTool(t Tool) {
	for _, id := range floor.IDs {
		e.floors[id].Pending.Reset()
	}
	e.tool = t
	e.emit(Event{Type: EventToolChanged, Floor: e.active, Message: t.String()})
}

// LoadImage resets a floor onto a new plan image.
func (e *Engine) LoadImage(id floor.ID, width, height float64) error {
	f, ok := e.floors[id]
	if !ok {
		return fmt.Errorf("unknown floor %q", id)
	}
	if e.prompt != nil && e.prompt.Floor == id {
		e.prompt = nil
	}
	f.LoadImage(width, height)
	e.emit(Event{Type: EventDraftChanged, Floor: id})
	e.emit(Event{Type: EventStructureChanged, Floor: id})
	return nil
}

// SetZoom sets the stage zoom of a floor, which scales pick and snap tolerances.
func (e *Engine) SetZoom(id floor.ID, zoom float64) error {
	f, ok := e.floors[id]
	if !ok {
		return fmt.Errorf("unknown floor %q", id)
	}
	if zoom > 0 {
		f.Zoom = zoom
	}
	return nil
}

// route activates the addressed floor and returns it.
func (e *Engine) route(id floor.ID) (*floor.Floor, error) {
	f, ok := e.floors[id]
	if !ok {
		return nil, fmt.Errorf("unknown floor %q", id)
	}
	if err := e.SetActive(id); err != nil {
		return nil, err
	}
	return f, nil
}

// Cancel drops any in-progress draw on a floor.
func (e *Engine) Cancel(id floor.ID) {
	if f, ok := e.floors[id]; ok {
		f.Pending.Reset()
	}
}

func (e *Engine) tolerance(f *floor.Floor, base float64) float64 {
	return geometry.SnapTolerance(base, f.Zoom)
}

// snap pulls p to the nearest wall endpoint when snapping is on and records the indicator.
func (e *Engine) snap(f *floor.Floor, p geometry.Point) geometry.Point {
	f.Pending.Snap = nil
	if !e.opts.Snap {
		return p
	}
	target, ok := geometry.Nearest(p, f.Draft.Endpoints(), e.tolerance(f, e.opts.SnapDistance))
	if !ok {
		return p
	}
	f.Pending.Snap = &target
	return target
}

// constrain applies the orthogonal lock relative to the anchor, then snapping.
func (e *Engine) constrain(f *floor.Floor, p geometry.Point) geometry.Point {
	if e.opts.Ortho && f.Pending.Anchor != nil {
		p = geometry.Orthogonal(*f.Pending.Anchor, p)
	}
	return e.snap(f, p)
}

// PointerDown handles a press on a floor's canvas.
func (e *Engine) PointerDown(id floor.ID, p Pointer) error {
	if e.prompt != nil {
		return ErrPromptPending
	}
	f, err := e.route(id)
	if err != nil {
		return err
	}
	if p.Button == ButtonSecondary {
		f.Pending.Reset()
		return nil
	}
	if e.tool.needsScale() && !f.HasScale() {
		e.notice(f.ID, fmt.Sprintf("%s: Set Scale First!", f.ID))
		return fmt.Errorf("%s: %w", f.ID, ErrScaleNotSet)
	}

	switch e.tool {
	case ToolSelect:
		e.selectDown(f, p)
		return nil
	case ToolDeleteStruct:
		e.deleteAt(f, p.Pos)
		return nil
	case ToolDeleteSlab:
		e.deleteAt(f, p.Pos, floor.KindSlab)
		return nil
	case ToolDoor:
		return e.cutDoor(f, p.Pos)
	case ToolAddColumn:
		e.placeColumn(f, e.snap(f, p.Pos))
		return nil
	case ToolAddSlab:
		e.slabClick(f, e.snap(f, p.Pos))
		return nil
	}
	return e.lineClick(f, e.constrain(f, p.Pos))
}

// PointerMove updates previews: the rubber band, the dashed line or the ghost slab.
func (e *Engine) PointerMove(id floor.ID, p Pointer) {
	f, ok := e.floors[id]
	if !ok {
		return
	}
	pend := &f.Pending
	if pend.SelectFrom != nil {
		box := geometry.NormalizeRect(*pend.SelectFrom, p.Pos)
		pend.SelectBox = &box
		return
	}
	if pend.Anchor == nil {
		return
	}
	switch {
	case e.tool == ToolAddSlab:
		end := e.snap(f, p.Pos)
		ghost := geometry.NormalizeRect(*pend.Anchor, end)
		pend.GhostSlab = &ghost
	case e.tool.drawsLine():
		end := e.constrain(f, p.Pos)
		pend.GhostEnd = &end
	}
}

// PointerUp ends a rubber-band selection on whichever floor has one open.
func (e *Engine) PointerUp() {
	for _, id := range floor.IDs {
		f := e.floors[id]
		if f.Pending.SelectFrom == nil {
			continue
		}
		box := f.Pending.SelectBox
		f.Pending.SelectFrom, f.Pending.SelectBox = nil, nil
		if box == nil {
			continue
		}
		if hits := f.Structure.Intersecting(*box); len(hits) > 0 {
			f.Selection.Set(hits...)
			e.emit(Event{Type: EventSelectionChanged, Floor: id})
		}
	}
}

// Undo restores the previous drafted state of the active floor.
func (e *Engine) Undo() bool {
	f := e.ActiveFloor()
	if !f.Undo() {
		return false
	}
	f.Pending.Reset()
	e.emit(Event{Type: EventDraftChanged, Floor: f.ID})
	return true
}

// Redo is not supported and never changes state.
func (e *Engine) Redo() bool {
	return false
}

// Clear removes all drafted walls and stairs from the active floor.
func (e *Engine) Clear() error {
	f := e.ActiveFloor()
	if err := f.Clear(); err != nil {
		return err
	}
	e.emit(Event{Type: EventDraftChanged, Floor: f.ID})
	return nil
}
