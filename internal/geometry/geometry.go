// Package geometry provides the planar primitives used by the drafting engine.
package geometry

import "math"

// Point is a position on the drawing canvas (pixels) or on the floor (meters).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Distance returns the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// Add returns the sum of two points.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the difference of two points.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Scale returns the point scaled by a factor.
func (p Point) Scale(factor float64) Point {
	return Point{X: p.X * factor, Y: p.Y * factor}
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// PointToSegment returns the distance from p to the closest point of segment ab.
// A degenerate segment is treated as the point a.
func PointToSegment(p, a, b Point) float64 {
	return p.Distance(ProjectOnSegment(p, a, b))
}

// ProjectOnSegment returns the orthogonal projection of p onto segment ab,
// clamped to the segment's endpoints.
func ProjectOnSegment(p, a, b Point) Point {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return a
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	switch {
	case t < 0:
		return a
	case t > 1:
		return b
	}
	return Point{X: a.X + t*dx, Y: a.Y + t*dy}
}

// ProjectOnLine returns the unclamped projection of p onto the infinite line
// through a and b together with its parameter t (0 at a, 1 at b).
func ProjectOnLine(p, a, b Point) (Point, float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return a, 0
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	return Point{X: a.X + t*dx, Y: a.Y + t*dy}, t
}

// IsPointOnSegment reports whether p lies on segment ab within tol: p must be
// inside the segment's bounding box grown by tol and closer than tol to the segment.
func IsPointOnSegment(p, a, b Point, tol float64) bool {
	if p.X < math.Min(a.X, b.X)-tol || p.X > math.Max(a.X, b.X)+tol {
		return false
	}
	if p.Y < math.Min(a.Y, b.Y)-tol || p.Y > math.Max(a.Y, b.Y)+tol {
		return false
	}
	return PointToSegment(p, a, b) < tol
}

// UnitDirection returns the unit direction vector from a to b.
// A degenerate segment yields the zero vector.
func UnitDirection(a, b Point) Point {
	d := a.Distance(b)
	if d == 0 {
		return Point{}
	}
	return Point{X: (b.X - a.X) / d, Y: (b.Y - a.Y) / d}
}

// SnapTolerance converts a screen-space tolerance into canvas units at the given zoom.
func SnapTolerance(base, zoom float64) float64 {
	if zoom <= 0 {
		return base
	}
	return base / zoom
}

// Orthogonal locks p to the horizontal or vertical through anchor, whichever
// axis carries the greater displacement. Ties lock to the vertical.
func Orthogonal(anchor, p Point) Point {
	if math.Abs(p.X-anchor.X) > math.Abs(p.Y-anchor.Y) {
		return Point{X: p.X, Y: anchor.Y}
	}
	return Point{X: anchor.X, Y: p.Y}
}

// Nearest returns the candidate strictly closer to p than tol, preferring the
// closest one. The boolean is false when no candidate qualifies.
func Nearest(p Point, candidates []Point, tol float64) (Point, bool) {
	best := tol
	var found Point
	ok := false
	for _, c := range candidates {
		if d := p.Distance(c); d < best {
			best = d
			found = c
			ok = true
		}
	}
	return found, ok
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NormalizeRect builds the rectangle spanned by two opposite corners.
func NormalizeRect(a, b Point) Rect {
	return Rect{
		X:      math.Min(a.X, b.X),
		Y:      math.Min(a.Y, b.Y),
		Width:  math.Abs(b.X - a.X),
		Height: math.Abs(b.Y - a.Y),
	}
}

// Min returns the top-left corner.
func (r Rect) Min() Point {
	return Point{X: r.X, Y: r.Y}
}

// Max returns the bottom-right corner.
func (r Rect) Max() Point {
	return Point{X: r.X + r.Width, Y: r.Y + r.Height}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains returns true if the point is inside the rectangle or on its border.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// ContainsInset reports whether p lies strictly inside the rectangle shrunk by margin on every side.
func (r Rect) ContainsInset(p Point, margin float64) bool {
	return p.X > r.X+margin && p.X < r.X+r.Width-margin &&
		p.Y > r.Y+margin && p.Y < r.Y+r.Height-margin
}

// Intersects returns true if the rectangles overlap. Touching edges count.
func (r Rect) Intersects(other Rect) bool {
	return !(other.X > r.X+r.Width || other.X+other.Width < r.X ||
		other.Y > r.Y+r.Height || other.Y+other.Height < r.Y)
}

// Union returns the smallest rectangle containing both rectangles.
func (r Rect) Union(other Rect) Rect {
	x := math.Min(r.X, other.X)
	y := math.Min(r.Y, other.Y)
	x2 := math.Max(r.X+r.Width, other.X+other.Width)
	y2 := math.Max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: x, Y: y, Width: x2 - x, Height: y2 - y}
}

// Grow returns the rectangle expanded by d on every side.
func (r Rect) Grow(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
}

// Area returns width times height.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// BoundsOf returns the bounding rectangle of the given points.
func BoundsOf(pts ...Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Rotate returns p rotated by deg degrees around origin.
func Rotate(p, origin Point, deg float64) Point {
	rad := deg * math.Pi / 180
	s, c := math.Sin(rad), math.Cos(rad)
	dx, dy := p.X-origin.X, p.Y-origin.Y
	return Point{X: origin.X + dx*c - dy*s, Y: origin.Y + dx*s + dy*c}
}
