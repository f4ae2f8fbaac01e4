package floor

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/alexiusacademia/gorcdraft/internal/geometry"
)

func commitWalls(t *testing.T, f *Floor, n int) [][]Wall {
	t.Helper()
	states := [][]Wall{nil}
	for i := 0; i < n; i++ {
		f.AddWall(NewWall(fmt.Sprintf("w%d", i), geometry.Pt(float64(i), 0), geometry.Pt(float64(i+1), 0), 0.23))
		if err := f.Checkpoint(); err != nil {
			t.Fatalf("Checkpoint: %v", err)
		}
		states = append(states, append([]Wall(nil), f.Draft.Walls...))
	}
	return states
}

func TestFloor_UndoRestoresEarlierCommits(t *testing.T) {
	const commits = 5
	for undos := 0; undos <= commits; undos++ {
		f := New(GroundFloor)
		states := commitWalls(t, f, commits)
		for i := 0; i < undos; i++ {
			if !f.Undo() {
				t.Fatalf("undo %d of %d reported no-op", i+1, undos)
			}
		}
		want := states[commits-undos]
		if len(want) == 0 && len(f.Draft.Walls) == 0 {
			continue
		}
		if !reflect.DeepEqual(f.Draft.Walls, want) {
			t.Errorf("after %d undos walls = %v, want %v", undos, f.Draft.Walls, want)
		}
	}
}

func TestFloor_UndoBelowFirstEntryIsNoop(t *testing.T) {
	f := New(GroundFloor)
	if f.Undo() {
		t.Fatal("undo on fresh floor should be a no-op")
	}
	commitWalls(t, f, 1)
	f.Undo()
	if f.Undo() {
		t.Error("second undo should be a no-op")
	}
	if _, ok := f.History.Redo(); ok {
		t.Error("redo must never succeed")
	}
}

func TestFloor_UndoThenCommitAppends(t *testing.T) {
	f := New(GroundFloor)
	commitWalls(t, f, 3)
	f.Undo()
	f.AddWall(NewWall("late", geometry.Pt(0, 5), geometry.Pt(5, 5), 0.23))
	if err := f.Checkpoint(); err != nil {
		t.Fatal(err)
	}
	if f.History.Len() != 5 {
		t.Errorf("history length = %d, want 5", f.History.Len())
	}
	if f.History.Cursor() != 4 {
		t.Errorf("cursor = %d, want 4", f.History.Cursor())
	}
	f.Undo()
	if len(f.Draft.Walls) != 3 {
		t.Errorf("undo after append restored %d walls, want 3", len(f.Draft.Walls))
	}
}

func TestFloor_Calibrate(t *testing.T) {
	f := New(FirstFloor)
	if err := f.Calibrate(100, 2); err != nil {
		t.Fatalf("Calibrate: %v", err)
	}
	if f.Scale != 50 {
		t.Errorf("scale = %v, want 50", f.Scale)
	}
	tests := []struct {
		name           string
		pixels, meters float64
	}{
		{"zero meters", 100, 0},
		{"infinite meters", 100, math.Inf(1)},
		{"NaN meters", 100, math.NaN()},
		{"infinite pixels", math.Inf(1), 2},
		{"denormal meters", 100, 1e-320},
	}
	for _, tt := range tests {
		if err := f.Calibrate(tt.pixels, tt.meters); err != ErrInvalidScale {
			t.Errorf("%s: err = %v, want ErrInvalidScale", tt.name, err)
		}
		if f.Scale != 50 {
			t.Errorf("%s: scale = %v, failed calibration must not change it", tt.name, f.Scale)
		}
	}
}

func TestFloor_LoadImageResets(t *testing.T) {
	f := New(GroundFloor)
	f.Scale = 20
	commitWalls(t, f, 2)
	f.Structure.Add(&Slab{ID: "S1"})
	f.LoadImage(800, 600)
	if f.HasScale() || len(f.Draft.Walls) != 0 || f.Structure.Len() != 0 {
		t.Errorf("LoadImage did not reset floor: %+v", f)
	}
	if f.Width != 800 || f.Height != 600 || f.ID != GroundFloor {
		t.Errorf("LoadImage size/id = %v %v %v", f.Width, f.Height, f.ID)
	}
}

func TestStructure_HitTestOrder(t *testing.T) {
	s := NewStructure()
	slab := s.Add(&Slab{ID: "S1", Rect: geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100}})
	beam := s.Add(&Beam{ID: "B1", Start: geometry.Pt(0, 50), End: geometry.Pt(100, 50), StrokeWidth: 4})
	col := s.Add(&Column{ID: "C1", Center: geometry.Pt(50, 50), Size: 10})

	if r, _ := s.HitTest(geometry.Pt(50, 50), 10); r != col {
		t.Errorf("expected column on top, got %v", r)
	}
	if r, _ := s.HitTest(geometry.Pt(20, 52), 10); r != beam {
		t.Errorf("expected beam, got %v", r)
	}
	if r, _ := s.HitTest(geometry.Pt(20, 80), 10); r != slab {
		t.Errorf("expected slab, got %v", r)
	}
	if r, _ := s.HitTest(geometry.Pt(50, 50), 10, KindSlab); r != slab {
		t.Errorf("kind filter ignored, got %v", r)
	}
	if _, ok := s.HitTest(geometry.Pt(500, 500), 10); ok {
		t.Error("expected no hit outside elements")
	}
}

func TestSelection(t *testing.T) {
	var sel Selection
	sel.Set(3, 1, 3)
	if !reflect.DeepEqual(sel.Refs(), []Ref{3, 1}) {
		t.Fatalf("Set dedupe = %v", sel.Refs())
	}
	sel.Toggle(1)
	sel.Toggle(7)
	if !reflect.DeepEqual(sel.Refs(), []Ref{3, 7}) {
		t.Errorf("Toggle = %v", sel.Refs())
	}
	st := NewStructure()
	keep := st.Add(&Slab{ID: "S1"})
	sel.Set(keep, 99)
	sel.Prune(st)
	if !reflect.DeepEqual(sel.Refs(), []Ref{keep}) {
		t.Errorf("Prune = %v", sel.Refs())
	}
}

func TestSlabTypeAndLabel(t *testing.T) {
	s := &Slab{ID: "S_user_0042", Rect: geometry.Rect{Width: 10, Height: 25}}
	if s.Type() != OneWay {
		t.Errorf("ratio 2.5 should be one-way")
	}
	s.Rect.Height = 20
	if s.Type() != TwoWay {
		t.Errorf("ratio 2 should be two-way")
	}
	if got := SlabLabel(s.ID); got != "P0042" {
		t.Errorf("label = %q", got)
	}
	s.SetElementID("S3")
	if s.Label != "P3" {
		t.Errorf("rename label = %q", s.Label)
	}
}

func TestParseBeamType(t *testing.T) {
	cases := map[string]BeamType{"Hidden": BeamHidden, "Secondary": BeamSecondary, "Main": BeamPrimary, "": BeamPrimary}
	for in, want := range cases {
		if got := ParseBeamType(in); got != want {
			t.Errorf("ParseBeamType(%q) = %v, want %v", in, got, want)
		}
	}
}
