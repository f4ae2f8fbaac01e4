// Package floor holds the editable state of one building level: drafted walls
// and stairs, computed structural elements, selection, undo history and scale.
package floor

import (
	"errors"
	"fmt"
	"math"

	"github.com/alexiusacademia/gorcdraft/internal/geometry"
)

// ID names a building level.
type ID string

const (
	GroundFloor ID = "GF"
	FirstFloor  ID = "FF"
)

// IDs lists the levels in drafting order.
var IDs = []ID{GroundFloor, FirstFloor}

// Label is the human-readable name of the level.
func (id ID) Label() string {
	switch id {
	case GroundFloor:
		return "Ground Floor"
	case FirstFloor:
		return "First Floor"
	}
	return string(id)
}

// ParseID validates a level name.
func ParseID(s string) (ID, error) {
	switch ID(s) {
	case GroundFloor, FirstFloor:
		return ID(s), nil
	}
	return "", fmt.Errorf("unknown floor %q (want GF or FF)", s)
}

// ColumnSizeMeters is the side of a drawn column.
const ColumnSizeMeters = 0.3

// BeamStrokeMeters is the drawn width of a beam.
const BeamStrokeMeters = 0.2

// Wall is a drafted wall segment in canvas pixels.
type Wall struct {
	ID        string  `json:"id"`
	X1        float64 `json:"x1"`
	Y1        float64 `json:"y1"`
	X2        float64 `json:"x2"`
	Y2        float64 `json:"y2"`
	Thickness float64 `json:"thickness"` // m
}

// A returns the wall's start point.
func (w Wall) A() geometry.Point { return geometry.Pt(w.X1, w.Y1) }

// B returns the wall's end point.
func (w Wall) B() geometry.Point { return geometry.Pt(w.X2, w.Y2) }

// NewWall builds a wall from two points.
func NewWall(id string, a, b geometry.Point, thickness float64) Wall {
	return Wall{ID: id, X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y, Thickness: thickness}
}

// Stair is a drafted stair rectangle stored by its min and max corners.
type Stair struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// NewStair normalizes two opposite corners into a Stair.
func NewStair(a, b geometry.Point) Stair {
	r := geometry.NormalizeRect(a, b)
	return Stair{X1: r.X, Y1: r.Y, X2: r.X + r.Width, Y2: r.Y + r.Height}
}

// Rect returns the stair's rectangle.
func (s Stair) Rect() geometry.Rect {
	return geometry.NormalizeRect(geometry.Pt(s.X1, s.Y1), geometry.Pt(s.X2, s.Y2))
}

// Draft is the raw user-drafted data that history snapshots.
type Draft struct {
	Walls  []Wall  `json:"walls"`
	Stairs []Stair `json:"stairs"`
}

// Endpoints returns every wall endpoint, the snap targets.
func (d Draft) Endpoints() []geometry.Point {
	pts := make([]geometry.Point, 0, 2*len(d.Walls))
	for _, w := range d.Walls {
		pts = append(pts, w.A(), w.B())
	}
	return pts
}

// Pending is the in-progress drawing state of a floor.
type Pending struct {
	Anchor     *geometry.Point // last committed click of a multi-click tool
	GhostEnd   *geometry.Point // end of the dashed preview line
	GhostSlab  *geometry.Rect  // live slab rectangle
	Snap       *geometry.Point // active snap target indicator
	SelectFrom *geometry.Point // rubber-band origin
	SelectBox  *geometry.Rect  // rubber-band rectangle
}

// Reset clears every pending anchor and preview.
func (p *Pending) Reset() {
	*p = Pending{}
}

// Drawing reports whether a multi-click draw is in progress.
func (p *Pending) Drawing() bool {
	return p.Anchor != nil
}

// ErrInvalidScale is returned when a calibration would not produce a finite positive scale.
var ErrInvalidScale = errors.New("scale distance must be a positive finite number")

// Floor is the mutable state of one building level.
type Floor struct {
	ID        ID
	Scale     float64 // px per meter, 0 until calibrated
	Width     float64 // canvas width, px
	Height    float64 // canvas height, px
	Zoom      float64
	TaskID    string
	Draft     Draft
	Structure *Structure
	Selection Selection
	History   *History
	Pending   Pending
}

// New returns an empty, uncalibrated floor.
func New(id ID) *Floor {
	return &Floor{
		ID:        id,
		Zoom:      1,
		Structure: NewStructure(),
		History:   NewHistory(Draft{}),
	}
}

// LoadImage starts the floor over on a new plan image of the given size.
func (f *Floor) LoadImage(width, height float64) {
	*f = *New(f.ID)
	f.Width, f.Height = width, height
}

// HasScale reports whether the floor has been calibrated.
func (f *Floor) HasScale() bool {
	return f.Scale > 0
}

// Calibrate sets the scale from a measured pixel distance and its real length in meters.
func (f *Floor) Calibrate(pixels, meters float64) error {
	if !finitePositive(pixels) || !finitePositive(meters) {
		return ErrInvalidScale
	}
	scale := pixels / meters
	if !finitePositive(scale) {
		return ErrInvalidScale
	}
	f.Scale = scale
	return nil
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// ToMeters converts a canvas length to meters using the floor scale.
func (f *Floor) ToMeters(px float64) float64 {
	if !f.HasScale() {
		return px
	}
	return px / f.Scale
}

// ToPixels converts a length in meters to canvas pixels.
func (f *Floor) ToPixels(m float64) float64 {
	return m * f.Scale
}

// Checkpoint records the current draft in history.
func (f *Floor) Checkpoint() error {
	return f.History.Push(f.Draft)
}

// AddWall appends a wall without checkpointing.
func (f *Floor) AddWall(w Wall) {
	f.Draft.Walls = append(f.Draft.Walls, w)
}

// AddStair appends a stair without checkpointing.
func (f *Floor) AddStair(s Stair) {
	f.Draft.Stairs = append(f.Draft.Stairs, s)
}

// PopWall removes the most recent wall. It reports false when there are none.
func (f *Floor) PopWall() bool {
	n := len(f.Draft.Walls)
	if n == 0 {
		return false
	}
	f.Draft.Walls = f.Draft.Walls[:n-1]
	return true
}

// Undo restores the previous history entry; it reports false at the first one.
func (f *Floor) Undo() bool {
	d, ok := f.History.Undo()
	if !ok {
		return false
	}
	f.Draft = d
	return true
}

// Clear drops all drafted data and checkpoints the empty draft.
func (f *Floor) Clear() error {
	f.Draft = Draft{}
	f.Pending.Reset()
	return f.Checkpoint()
}

// ReplaceStructure swaps in a new computed layer and drops the selection.
func (f *Floor) ReplaceStructure(s *Structure) {
	if s == nil {
		s = NewStructure()
	}
	f.Structure = s
	f.Selection.Clear()
}

// ColumnSize returns the drawn column side in pixels.
func (f *Floor) ColumnSize() float64 {
	return ColumnSizeMeters * f.Scale
}

// BeamStroke returns the drawn beam width in pixels.
func (f *Floor) BeamStroke() float64 {
	return BeamStrokeMeters * f.Scale
}

// Selected returns the selected elements in selection order.
func (f *Floor) Selected() []Element {
	var out []Element
	for _, r := range f.Selection.Refs() {
		if e := f.Structure.Get(r); e != nil {
			out = append(out, e)
		}
	}
	return out
}

// Remove deletes an element and drops it from the selection.
func (f *Floor) Remove(r Ref) bool {
	f.Selection.Remove(r)
	return f.Structure.Remove(r)
}
