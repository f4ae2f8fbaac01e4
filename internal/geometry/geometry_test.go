package geometry

import (
	"math"
	"testing"
)

func TestPointToSegment(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		a, b Point
		want float64
	}{
		{"perpendicular", Pt(5, 3), Pt(0, 0), Pt(10, 0), 3},
		{"beyond end", Pt(13, 4), Pt(0, 0), Pt(10, 0), 5},
		{"before start", Pt(-3, 4), Pt(0, 0), Pt(10, 0), 5},
		{"degenerate", Pt(3, 4), Pt(0, 0), Pt(0, 0), 5},
		{"on segment", Pt(2, 2), Pt(0, 0), Pt(4, 4), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointToSegment(tt.p, tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("PointToSegment = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsPointOnSegment(t *testing.T) {
	a, b := Pt(0, 0), Pt(100, 0)
	if !IsPointOnSegment(Pt(50, 4), a, b, 5) {
		t.Error("expected point within tolerance to be on segment")
	}
	if IsPointOnSegment(Pt(50, 5), a, b, 5) {
		t.Error("distance equal to tolerance must not count")
	}
	if IsPointOnSegment(Pt(110, 0), a, b, 5) {
		t.Error("point past the grown bounding box must not count")
	}
}

func TestProjectOnLineIsUnclamped(t *testing.T) {
	p, tt := ProjectOnLine(Pt(15, 3), Pt(0, 0), Pt(10, 0))
	if p != Pt(15, 0) || tt != 1.5 {
		t.Errorf("ProjectOnLine = %v, %v", p, tt)
	}
	if got := ProjectOnSegment(Pt(15, 3), Pt(0, 0), Pt(10, 0)); got != Pt(10, 0) {
		t.Errorf("ProjectOnSegment = %v, want clamp to (10,0)", got)
	}
}

func TestOrthogonal(t *testing.T) {
	anchor := Pt(10, 10)
	if got := Orthogonal(anchor, Pt(30, 14)); got != Pt(30, 10) {
		t.Errorf("horizontal lock = %v", got)
	}
	if got := Orthogonal(anchor, Pt(12, 40)); got != Pt(10, 40) {
		t.Errorf("vertical lock = %v", got)
	}
}

func TestNearest(t *testing.T) {
	cands := []Point{Pt(0, 0), Pt(10, 0), Pt(4, 0)}
	got, ok := Nearest(Pt(5, 0), cands, 3)
	if !ok || got != Pt(4, 0) {
		t.Errorf("Nearest = %v, %v", got, ok)
	}
	if _, ok := Nearest(Pt(50, 50), cands, 3); ok {
		t.Error("expected no candidate within tolerance")
	}
	if got := SnapTolerance(15, 2); got != 7.5 {
		t.Errorf("SnapTolerance = %v", got)
	}
}

func TestRect(t *testing.T) {
	r := NormalizeRect(Pt(30, 30), Pt(10, 10))
	if r != (Rect{X: 10, Y: 10, Width: 20, Height: 20}) {
		t.Fatalf("NormalizeRect = %+v", r)
	}
	if !r.Intersects(Rect{X: 30, Y: 0, Width: 5, Height: 5}) {
		t.Error("touching rectangles should intersect")
	}
	if r.Intersects(Rect{X: 31, Y: 0, Width: 5, Height: 5}) {
		t.Error("separate rectangles should not intersect")
	}
	u := r.Union(Rect{X: 40, Y: 10, Width: 10, Height: 20})
	if u != (Rect{X: 10, Y: 10, Width: 40, Height: 20}) {
		t.Errorf("Union = %+v", u)
	}
	if !u.ContainsInset(Pt(35, 20), 2) {
		t.Error("center point should be inside inset")
	}
	if u.ContainsInset(Pt(11, 20), 2) {
		t.Error("point within margin should be outside inset")
	}
}
