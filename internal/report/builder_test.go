package report

import (
	"encoding/json"
	"strings"
	"testing"
)

func headers(blocks []Block) []string {
	var out []string
	for _, b := range blocks {
		if h, ok := b.(SectionHeader); ok {
			out = append(out, h.Title)
		}
	}
	return out
}

func TestBuildSectionOrder(t *testing.T) {
	both := headers(Build(Floors{FF: &Data{}, GF: &Data{}}))
	want := []string{SectionRoofSlabs, SectionRoofBeams, SectionFloorSlabs, SectionFloorBeams,
		SectionStairs, SectionColumns, SectionFoundations, SectionConclusion}
	if strings.Join(both, "|") != strings.Join(want, "|") {
		t.Errorf("both floors: %v", both)
	}

	gfOnly := headers(Build(Floors{GF: &Data{}}))
	if gfOnly[0] != SectionFloorSlabs || len(gfOnly) != 6 {
		t.Errorf("ground floor only: %v", gfOnly)
	}

	none := headers(Build(Floors{}))
	if len(none) != 1 || none[0] != SectionConclusion {
		t.Errorf("no data: %v", none)
	}
}

func TestBuildPlaceholders(t *testing.T) {
	blocks := Build(Floors{GF: &Data{}})
	var calcs []string
	for _, b := range blocks {
		if r, ok := b.(Row); ok {
			calcs = append(calcs, r.Calc)
		}
	}
	joined := strings.Join(calcs, "\n")
	for _, p := range []string{NoSlabs, NoBeams, NoStairs, NoColumns, NoFoundations} {
		if !strings.Contains(joined, p) {
			t.Errorf("placeholder %q missing", p)
		}
	}
}

func TestColumnsFallBackToRoof(t *testing.T) {
	blocks := Build(Floors{FF: &Data{Columns: []Column{{ID: "C7"}}}, GF: &Data{}})
	found := false
	for _, b := range blocks {
		if r, ok := b.(Row); ok && strings.Contains(r.Calc, "**Column C7**") {
			found = true
		}
	}
	if !found {
		t.Error("roof columns should be used when the ground floor has none")
	}
}

const groupJSON = `{
  "beamGroups": [{
    "grid": "A",
    "type": "MDM",
    "udl": 8,
    "educationalSteps": ["[Iteration 1]", "| Iter | S0 |", "| 1 | 0.5 |"],
    "spans": [
      {"id": "B1", "L": 4, "w": 12, "diagramPoints": [{"x": 0, "moment": 0, "shear": 24}, {"x": 4, "moment": -10, "shear": -24}],
       "design": {"flexure": {"bars": "4Y20"}, "deflection": {"ok": true, "ratio": "0.8"}}},
      {"id": "B2", "length": "5", "shapes": [{"type": "point", "val": 10, "start": 2}, {"type": "slab-trap", "geom": {"lx": 3}}],
       "diagramPoints": [{"x": 0, "moment": -10, "shear": 30}, {"x": 5, "moment": 0, "shear": -30}]}
    ]
  }]
}`

func TestBuildBeamGroup(t *testing.T) {
	var d Data
	if err := json.Unmarshal([]byte(groupJSON), &d); err != nil {
		t.Fatal(err)
	}
	bm := &d.DesignBeams()[0]
	pts, total := bm.Stitched()
	if total != 9 || len(pts) != 4 || pts[2].X != 4 || pts[3].X != 9 {
		t.Fatalf("stitched = %v over %v", pts, total)
	}
	if got := spanLoad(&bm.Spans[0], bm); got != 12 {
		t.Errorf("span result load = %v", got)
	}
	if got := spanLoad(&bm.Spans[1], bm); got != 8 {
		t.Errorf("group udl fallback = %v", got)
	}

	blocks := Build(Floors{GF: &d})
	var labels, calcs []string
	tables := 0
	for _, b := range blocks {
		switch b := b.(type) {
		case Visual:
			labels = append(labels, b.Label)
		case Row:
			calcs = append(calcs, b.Calc)
		case Table:
			tables++
		}
	}
	wantLabels := []string{
		"Loading Diagram - B1",
		"Load Area Geometry - B2", "Loading Diagram - B2",
		"Bending Moment Diagram (BMD)", "Shear Force Diagram (SFD)",
		"REINFORCEMENT DETAIL: B1",
	}
	if strings.Join(labels, "|") != strings.Join(wantLabels, "|") {
		t.Errorf("visuals = %v", labels)
	}
	if tables != 2 {
		t.Errorf("tables = %d, want 2", tables)
	}
	joined := strings.Join(calcs, "\n")
	for _, want := range []string{"**Beam Grid: A**", "Analysis Method: Moment Distribution Method", "Status: PASS", "*Design for B2:*"} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing row %q", want)
		}
	}
}

func TestPlainBeamFallback(t *testing.T) {
	d := Data{Beams: []Beam{{Span: Span{ID: "B9", L: Q(3), UDL: Q(5), Logs: []string{"Calc: Moment M = wL^2/8"}}}}}
	bm := &d.DesignBeams()[0]
	if bm.Group() || len(bm.AllSpans()) != 1 {
		t.Fatal("plain beam should be its own single span")
	}
	n := 0
	for _, b := range Build(Floors{GF: &d}) {
		if r, ok := b.(Row); ok && r.Calc == "Moment M = wL^2/8" {
			n++
		}
	}
	if n != 1 {
		t.Errorf("beam log rendered %d times, want once", n)
	}
}
