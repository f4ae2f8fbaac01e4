package svgdraw

import (
	"strings"
	"testing"
)

func TestParseBars(t *testing.T) {
	tests := []struct {
		in    string
		count int
		dia   int
		ok    bool
	}{
		{"3Y16", 3, 16, true},
		{"4T20 top", 4, 20, true},
		{"2 Y12", 2, 12, true},
		{"R10 @ 200", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tt := range tests {
		n, d, ok := ParseBars(tt.in)
		if n != tt.count || d != tt.dia || ok != tt.ok {
			t.Errorf("ParseBars(%q) = %d, %d, %v", tt.in, n, d, ok)
		}
	}
}

func TestBeamSectionLayers(t *testing.T) {
	d := BeamSection{MainBars: "3Y16"}.Draw()
	if !strings.HasPrefix(d.Markup, "<svg") {
		t.Fatalf("markup should start with <svg, got %.40q", d.Markup)
	}
	if d.MaxHeight != 280 || d.Width != 230+140 || d.Height != 450+140 {
		t.Errorf("size = %dx%d max %d", d.Width, d.Height, d.MaxHeight)
	}
	// 3 main bars + 2 hanger bars
	if got := strings.Count(d.Markup, "<circle"); got != 5 {
		t.Errorf("circles = %d, want 5", got)
	}
	if !strings.Contains(d.Markup, "Rect GROUP SECTION: 3Y16 (Bottom) + Y8 @ 200") {
		t.Error("caption missing")
	}

	d = BeamSection{MainBars: "5Y20", Shape: ShapeT, Width: 230, Depth: 450}.Draw()
	if got := strings.Count(d.Markup, "<circle"); got != 7 {
		t.Errorf("two-layer circles = %d, want 7", got)
	}
	if !strings.Contains(d.Markup, "bf=530") || !strings.Contains(d.Markup, "bw=230") || !strings.Contains(d.Markup, "hf=150") {
		t.Error("flanged dimensions missing")
	}
}

func TestColumnSectionBars(t *testing.T) {
	for bars, want := range map[string]int{"4Y16": 4, "6Y16": 6, "8Y20": 8, "12Y25": 8, "junk": 4} {
		d := ColumnSection{Width: 300, Depth: 300, MainBars: bars}.Draw()
		if got := strings.Count(d.Markup, "<circle"); got != want {
			t.Errorf("%s: circles = %d, want %d", bars, got, want)
		}
	}
}

func TestSlabDetail(t *testing.T) {
	d := SlabDetail(4, 5, 0)
	if !strings.Contains(d.Markup, "Lx = 4.00m") || !strings.Contains(d.Markup, "Ly = 5.00m") {
		t.Error("span labels missing")
	}
	if !strings.Contains(d.Markup, "Interior panel") {
		t.Error("panel name missing")
	}
	if strings.Contains(d.Markup, "stroke-dasharray:8,4") {
		t.Error("interior panel should have no discontinuous edge")
	}
	// two-way cross
	if got := strings.Count(d.Markup, "url(#arrowS)"); got != 4 {
		t.Errorf("two-way arrow markers = %d, want 4", got)
	}

	d = SlabDetail(2, 5, 42)
	if !strings.Contains(d.Markup, "Four edges discontinuous") {
		t.Error("unknown index should fall back to the fully discontinuous case")
	}
	if got := strings.Count(d.Markup, "url(#arrowS)"); got != 2 {
		t.Errorf("one-way arrow markers = %d, want 2", got)
	}
}

func TestEnvelope(t *testing.T) {
	if d := Envelope(nil, 5, BMD); !d.Empty() {
		t.Fatal("no points should give an empty drawing")
	}
	pts := []EnvelopePoint{
		{X: 0, Moment: 0, Shear: 20},
		{X: 2.5, Moment: 25, Shear: 0},
		{X: 5, Moment: 0, Shear: -20},
	}
	bmd := Envelope(pts, 5, BMD)
	// sagging drawn downward: peak at bY + (80-40) = 120
	if !strings.Contains(bmd.Markup, "L 200.00 120.00") {
		t.Errorf("BMD peak not below axis:\n%s", bmd.Markup)
	}
	if !strings.Contains(bmd.Markup, ">25.0<") {
		t.Error("max moment label missing")
	}
	if !strings.Contains(bmd.Markup, "BENDING MOMENT (KNM)") {
		t.Error("caption missing")
	}

	sfd := Envelope(pts, 5, SFD)
	if !strings.Contains(sfd.Markup, "M 40.00 40.00") {
		t.Errorf("positive shear should plot above the axis:\n%s", sfd.Markup)
	}
	if !strings.Contains(sfd.Markup, ">20.0<") || !strings.Contains(sfd.Markup, ">-20.0<") {
		t.Error("shear extremes not labelled")
	}

	flat := Envelope([]EnvelopePoint{{X: 0}, {X: 1}}, 1, BMD)
	if strings.Contains(flat.Markup, ">0.0<") {
		t.Error("near-zero extremes should not be labelled")
	}
}

func TestExtremesFirstWins(t *testing.T) {
	pts := []EnvelopePoint{{Moment: 3}, {Moment: 3}, {Moment: -1}, {Moment: -1}}
	maxIdx, minIdx := Extremes(pts, BMD)
	if maxIdx != 0 || minIdx != 2 {
		t.Errorf("Extremes = %d, %d", maxIdx, minIdx)
	}
}

func TestBeamLoading(t *testing.T) {
	d := BeamLoading(5, 12.5, []PointLoad{{P: 10, A: 2.5}})
	if !strings.Contains(d.Markup, "w = 12.50 kN/m") {
		t.Error("udl label missing")
	}
	if !strings.Contains(d.Markup, ">10kN<") {
		t.Error("point load label missing")
	}
	if got := strings.Count(d.Markup, "url(#arrowhead-red)"); got != 16 {
		t.Errorf("udl arrows = %d, want 16", got)
	}
}

func TestSmallDrawings(t *testing.T) {
	if d := StairSection(nil); !d.Empty() {
		t.Error("nil stair should draw nothing")
	}
	st := StairSection(&StairDesign{})
	for _, want := range []string{"R=170", "G=250", "h=150", "Main: TBD"} {
		if !strings.Contains(st.Markup, want) {
			t.Errorf("stair missing %q", want)
		}
	}
	ft := FootingSection(1500, 500)
	if !strings.Contains(ft.Markup, "B = 1500mm") || !strings.Contains(ft.Markup, "D = 500mm") {
		t.Error("footing dimensions missing")
	}
	if !strings.Contains(SlabTransfer(TransferTriangle).Markup, "<polygon") {
		t.Error("triangle transfer should draw a polygon")
	}
	g := SlabLoadGeometry(6, []LoadShape{{Type: "slab-tri"}, {Type: "slab-trap", Lx: 3}, {Type: "other"}})
	if got := strings.Count(g.Markup, "<polygon"); got != 2 {
		t.Errorf("load shapes = %d, want 2", got)
	}
}
