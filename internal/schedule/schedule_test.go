package schedule

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gorcdraft/internal/client"
	"github.com/alexiusacademia/gorcdraft/internal/floor"
)

func sampleSnapshot() *client.Snapshot {
	return &client.Snapshot{
		Grid: &client.Grid{
			XLines: []client.GridLine{{Val: 0, Label: "A"}, {Val: 4, Label: "B"}, {Val: 8, Label: "C"}},
			YLines: []client.GridLine{{Val: 0, Label: "1"}, {Val: 3, Label: "2"}},
		},
		Beams: []client.Beam{
			{ID: "B10", Type: "Primary", X1: 0, Y1: 0, X2: 8, Y2: 0},
			{ID: "B3", Type: "Secondary", X1: 4, Y1: 0, X2: 4, Y2: 3},
			{ID: "B2", Type: "Primary", X1: 0, Y1: 3, X2: 3, Y2: 3.1},
		},
		Slabs: []client.Slab{
			{ID: "S1", Width: 4, Height: 3},
			{ID: "S2", Width: 8, Height: 2.5},
		},
	}
}

func TestBuild(t *testing.T) {
	snap := sampleSnapshot()
	s := Build("t-1", floor.GroundFloor, snap)

	wantOrder := []string{"B2", "B10", "B3"}
	for i, id := range wantOrder {
		if s.Beams[i].ID != id || snap.Beams[i].ID != id || s.Beams[i].Index != i {
			t.Errorf("beam %d = %+v (snapshot %s), want %s", i, s.Beams[i], snap.Beams[i].ID, id)
		}
	}
	if b := s.Beams[1]; b.Length != 8 || b.From != "A-1" || b.To != "C-1" {
		t.Errorf("B10 row = %+v", b)
	}
	if b := s.Beams[0]; b.From != "A-2" || b.To != "B-2" {
		t.Errorf("B2 grid refs = %s -> %s", b.From, b.To)
	}

	if sl := s.Slabs[0]; sl.Area != 12 || sl.Type != floor.TwoWay || math.Abs(sl.Ratio-4.0/3) > 1e-9 {
		t.Errorf("S1 row = %+v", sl)
	}
	if sl := s.Slabs[1]; sl.Type != floor.OneWay || sl.Ratio != 3.2 {
		t.Errorf("S2 row = %+v", sl)
	}
	if s.Summary.Beams != 3 || s.Summary.Slabs != 2 || s.Summary.AreaText() != "32.00 m²" {
		t.Errorf("summary = %+v (%s)", s.Summary, s.Summary.AreaText())
	}
}

func TestGridRefWithoutGrid(t *testing.T) {
	if got := GridRef(1, 1, nil); got != UnknownGridRef {
		t.Errorf("GridRef(nil) = %q", got)
	}
	if got := GridRef(1, 1, &client.Grid{XLines: []client.GridLine{{Label: "A"}}}); got != UnknownGridRef {
		t.Errorf("GridRef(no y lines) = %q", got)
	}
}

func TestNaturalLess(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"B2", "B10", true},
		{"B10", "B2", false},
		{"b1", "B2", true},
		{"B", "B1", true},
		{"B1", "B1", false},
		{"beam_user_9", "beam_user_10", true},
		{"1", "01", true},
	}
	for _, tt := range tests {
		if got := NaturalLess(tt.a, tt.b); got != tt.want {
			t.Errorf("NaturalLess(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestEdits(t *testing.T) {
	snap := sampleSnapshot()

	if err := RenameBeam(snap, 0, "GB1"); err != nil || snap.Beams[0].ID != "GB1" {
		t.Errorf("RenameBeam: %v, %s", err, snap.Beams[0].ID)
	}
	if err := SetBeamType(snap, 1, "Hidden"); err != nil || snap.Beams[1].Type != "Hidden" {
		t.Errorf("SetBeamType: %v, %s", err, snap.Beams[1].Type)
	}
	if err := RenameBeam(snap, 7, "x"); !errors.Is(err, ErrNoRow) {
		t.Errorf("out of range rename: %v", err)
	}

	// B10 runs 0,0 -> 8,0; shorten to 6 m keeping the start
	ok, err := ResizeBeam(snap, 0, 6)
	if err != nil || !ok || snap.Beams[0].X2 != 6 || snap.Beams[0].X1 != 0 {
		t.Errorf("ResizeBeam: ok=%v err=%v beam=%+v", ok, err, snap.Beams[0])
	}
	if ok, _ := ResizeBeam(snap, 0, -1); ok || snap.Beams[0].X2 != 6 {
		t.Error("negative length must be ignored")
	}

	if ok, _ := SetSlabDim(snap, 0, DimHeight, 0); ok || snap.Slabs[0].Height != 3 {
		t.Error("zero dimension must be ignored")
	}
	if ok, _ := SetSlabDim(snap, 0, DimWidth, 5); !ok || snap.Slabs[0].Width != 5 {
		t.Errorf("SetSlabDim width: %+v", snap.Slabs[0])
	}
	if err := RenameSlab(snap, 1, "S9"); err != nil || snap.Slabs[1].ID != "S9" {
		t.Errorf("RenameSlab: %v", err)
	}
	if _, err := ParseDim("depth"); err == nil {
		t.Error("ParseDim accepted depth")
	}
}

func TestWriteXLSX(t *testing.T) {
	s := Build("t-1", floor.FirstFloor, sampleSnapshot())
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, s); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex("Sheet1"); idx != -1 {
		t.Error("default sheet should be removed")
	}
	rows, err := f.GetRows(SheetBeams)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 || rows[0][0] != "Beam ID" || rows[1][0] != "B2" || rows[2][3] != "A-1" {
		t.Errorf("beam rows = %v", rows)
	}
	rows, _ = f.GetRows(SheetSlabs)
	if len(rows) != 3 || rows[2][5] != "One-way" {
		t.Errorf("slab rows = %v", rows)
	}
	if v, _ := f.GetCellValue(SheetSummary, "B5"); v != "32.00 m²" {
		t.Errorf("total area cell = %q", v)
	}
	if v, _ := f.GetCellValue(SheetSummary, "B2"); v != "First Floor" {
		t.Errorf("floor cell = %q", v)
	}
}
