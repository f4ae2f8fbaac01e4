package floor

import (
	"math"
	"strings"

	"github.com/alexiusacademia/gorcdraft/internal/geometry"
)

// Kind identifies the structural element variant.
type Kind int

const (
	KindColumn Kind = iota
	KindBeam
	KindSlab
)

func (k Kind) String() string {
	switch k {
	case KindColumn:
		return "column"
	case KindBeam:
		return "beam"
	case KindSlab:
		return "slab"
	}
	return "unknown"
}

// BeamType tags a beam for analysis and display.
type BeamType string

const (
	BeamPrimary   BeamType = "Primary"
	BeamSecondary BeamType = "Secondary"
	BeamHidden    BeamType = "Hidden"
)

// ParseBeamType maps a type tag to a BeamType. Unknown or empty tags
// (including the legacy "Main") become Primary.
func ParseBeamType(s string) BeamType {
	switch strings.TrimSpace(s) {
	case string(BeamSecondary):
		return BeamSecondary
	case string(BeamHidden):
		return BeamHidden
	}
	return BeamPrimary
}

// SlabType is derived from a slab's aspect ratio.
type SlabType string

const (
	OneWay SlabType = "One-way"
	TwoWay SlabType = "Two-way"
)

// ClassifySlab returns One-way when the long side exceeds twice the short side.
func ClassifySlab(width, height float64) SlabType {
	long, short := math.Max(width, height), math.Min(width, height)
	if short > 0 && long/short > 2 {
		return OneWay
	}
	return TwoWay
}

// Element is a computed structural element: *Column, *Beam or *Slab.
type Element interface {
	ElementID() string
	SetElementID(id string)
	Kind() Kind
	// Bounds is the element's client rectangle in canvas pixels.
	Bounds() geometry.Rect
	// Hit reports whether p picks the element; tol applies to line elements.
	Hit(p geometry.Point, tol float64) bool
	element()
}

// Column is a square column placed by its center.
type Column struct {
	ID       string
	Center   geometry.Point
	Rotation float64 // degrees
	Size     float64 // side length, px
}

func (c *Column) ElementID() string { return c.ID }
func (c *Column) SetElementID(id string) { c.ID = id }
func (c *Column) Kind() Kind { return KindColumn }
func (c *Column) element() {}

// Corners returns the four corners of the (possibly rotated) square.
func (c *Column) Corners() [4]geometry.Point {
	h := c.Size / 2
	raw := [4]geometry.Point{
		{X: c.Center.X - h, Y: c.Center.Y - h},
		{X: c.Center.X + h, Y: c.Center.Y - h},
		{X: c.Center.X + h, Y: c.Center.Y + h},
		{X: c.Center.X - h, Y: c.Center.Y + h},
	}
	if c.Rotation == 0 {
		return raw
	}
	for i, p := range raw {
		raw[i] = geometry.Rotate(p, c.Center, c.Rotation)
	}
	return raw
}

func (c *Column) Bounds() geometry.Rect {
	pts := c.Corners()
	return geometry.BoundsOf(pts[:]...)
}

func (c *Column) Hit(p geometry.Point, _ float64) bool {
	local := geometry.Rotate(p, c.Center, -c.Rotation)
	h := c.Size / 2
	return math.Abs(local.X-c.Center.X) <= h && math.Abs(local.Y-c.Center.Y) <= h
}

// Beam is a line member between two canvas points.
type Beam struct {
	ID          string
	Start, End  geometry.Point
	Type        BeamType
	StrokeWidth float64 // px
}

func (b *Beam) ElementID() string { return b.ID }
func (b *Beam) SetElementID(id string) { b.ID = id }
func (b *Beam) Kind() Kind { return KindBeam }
func (b *Beam) element() {}

func (b *Beam) Bounds() geometry.Rect {
	return geometry.BoundsOf(b.Start, b.End).Grow(b.StrokeWidth / 2)
}

func (b *Beam) Hit(p geometry.Point, tol float64) bool {
	return geometry.PointToSegment(p, b.Start, b.End) <= math.Max(tol, b.StrokeWidth/2)
}

// Length returns the beam length in canvas units.
func (b *Beam) Length() float64 {
	return b.Start.Distance(b.End)
}

// Slab is a rectangular panel with its display label.
type Slab struct {
	ID    string
	Rect  geometry.Rect
	Label string
}

func (s *Slab) ElementID() string { return s.ID }

// SetElementID renames the slab and keeps its label in step.
func (s *Slab) SetElementID(id string) {
	s.ID = id
	s.Label = SlabLabel(id)
}

func (s *Slab) Kind() Kind { return KindSlab }
func (s *Slab) element() {}
func (s *Slab) Bounds() geometry.Rect { return s.Rect }
func (s *Slab) Hit(p geometry.Point, _ float64) bool { return s.Rect.Contains(p) }

// Type derives the slab's spanning behavior from its rectangle.
func (s *Slab) Type() SlabType {
	return ClassifySlab(s.Rect.Width, s.Rect.Height)
}

// SlabLabel turns a slab id into its panel label: S3 -> P3, S_user_0042 -> P0042.
func SlabLabel(id string) string {
	if rest, ok := strings.CutPrefix(id, "S_user_"); ok {
		return "P" + rest
	}
	if rest, ok := strings.CutPrefix(id, "S"); ok {
		return "P" + rest
	}
	return id
}
