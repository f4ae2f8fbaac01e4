package diagram

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexiusacademia/gorcdraft/internal/svgdraw"
)

var span = []svgdraw.EnvelopePoint{
	{X: 0, Moment: 0, Shear: 20},
	{X: 2, Moment: 20, Shear: 0},
	{X: 4, Moment: 0, Shear: -20},
}

func TestResample(t *testing.T) {
	got := Resample(span, svgdraw.BMD, 5)
	want := []float64{0, 10, 20, 10, 0}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("Resample = %v, want %v", got, want)
		}
	}
	if got := Resample(span[:1], svgdraw.SFD, 3); len(got) != 3 || got[2] != 20 {
		t.Errorf("single point resample = %v", got)
	}
	if Resample(nil, svgdraw.BMD, 4) != nil {
		t.Error("empty input should give nil")
	}
}

func TestASCIIEnvelope(t *testing.T) {
	out := ASCIIEnvelope(span, svgdraw.SFD, 40)
	if !strings.Contains(out, "SHEAR FORCE (KN)  max 20.0 @ 0.00m  min -20.0 @ 4.00m") {
		t.Errorf("caption missing:\n%s", out)
	}
	if ASCIIEnvelope(nil, svgdraw.BMD, 40) != "" {
		t.Error("no points should give no chart")
	}
}

func TestDrawSummaryBox(t *testing.T) {
	box := DrawSummaryBox("GF", []string{"Total area: 32.00 m²", "Beams: 3"})
	lines := strings.Split(strings.TrimRight(box, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines:\n%s", len(lines), box)
	}
	width := len([]rune(lines[0]))
	for _, l := range lines {
		if len([]rune(l)) != width {
			t.Errorf("ragged box line %q", l)
		}
	}
}

func TestExportEnvelope(t *testing.T) {
	dir := t.TempDir()
	name, err := ExportEnvelope(span, svgdraw.BMD, "Beam Grid: A", filepath.Join(dir, "out", "bmd.svg"))
	if err != nil {
		t.Fatalf("ExportEnvelope: %v", err)
	}
	if info, err := os.Stat(name); err != nil || info.Size() == 0 {
		t.Fatalf("no output at %s: %v", name, err)
	}

	name, err = ExportEnvelope(span, svgdraw.SFD, "Beam Grid: A", filepath.Join(dir, "sfd"))
	if err != nil {
		t.Fatalf("ExportEnvelope: %v", err)
	}
	if filepath.Ext(name) != ".png" {
		t.Errorf("name = %s, want .png", name)
	}

	if _, err := ExportEnvelope(nil, svgdraw.BMD, "", filepath.Join(dir, "x.png")); !errors.Is(err, ErrNoPoints) {
		t.Errorf("err = %v, want ErrNoPoints", err)
	}
}
