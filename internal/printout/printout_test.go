package printout

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alexiusacademia/gorcdraft/internal/report"
	"github.com/alexiusacademia/gorcdraft/internal/svgdraw"
)

func sampleReport(pages int) *report.Report {
	rep := &report.Report{TaskID: "task-42", Generated: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)}
	for i := 1; i <= pages; i++ {
		rep.Pages = append(rep.Pages, report.Page{
			Number: i,
			Blocks: []report.Block{
				report.SectionHeader{Title: "1.0 ROOF SLAB ANALYSIS & DESIGN"},
				report.Row{Ref: "Table 3.14", Calc: "**Panel S1** uses <script>", Out: "PASS"},
				report.SubHeader{Text: "[Step 1]"},
				report.Table{Cells: []string{"Iter", "S0"}, Header: true},
				report.Visual{Drawing: svgdraw.FootingSection(1200, 450)},
			},
		})
	}
	return rep
}

func TestInline(t *testing.T) {
	if got := Inline("**Panel S1** (4m)"); got != "<strong>Panel S1</strong> (4m)" {
		t.Errorf("Inline = %q", got)
	}
	if got := string(Inline("a <b>c</b>")); strings.Contains(got, "<b>") {
		t.Errorf("raw html should be escaped: %q", got)
	}
	if Inline("") != "" {
		t.Error("empty text should render nothing")
	}
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	sel, _ := report.ParseSelection("2-2")
	if err := WriteHTML(&buf, sampleReport(3), sel); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if got := strings.Count(out, `class="page hidden-page"`); got != 2 {
		t.Errorf("hidden pages = %d, want 2", got)
	}
	if got := strings.Count(out, `<div class="section-header">`); got != 3 {
		t.Errorf("section headers = %d, want 3", got)
	}
	for _, want := range []string{"Sheet <span class=\"sheet-num\">3</span> of 3", "<strong>Panel S1</strong>", "FOOTING SECTION DETAIL", `value="1-3"`, "All Pages (3)"} {
		if !strings.Contains(out, want) {
			t.Errorf("html missing %q", want)
		}
	}
	if strings.Contains(out, "<script>") {
		t.Error("row text must be escaped")
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, sampleReport(2), PDFOptions{}); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Errorf("not a PDF: %.10q", buf.String())
	}
}

func TestRasterize(t *testing.T) {
	img, err := Rasterize(svgdraw.ColumnSection{Width: 300, Depth: 300}.Draw(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 420 || b.Dy() != 420 {
		t.Errorf("bounds = %v", b)
	}
}

func TestPDFMeasurer(t *testing.T) {
	m := NewPDFMeasurer()
	short := m.Height(report.Row{Calc: "short"})
	long := m.Height(report.Row{Calc: strings.Repeat("a long calculation line ", 20)})
	if short <= 0 || long <= short {
		t.Errorf("heights short=%v long=%v", short, long)
	}
	if h := m.Height(report.Visual{Drawing: svgdraw.BeamSection{}.Draw()}); h > 280+11*PxPerMM+1 {
		t.Errorf("visual height %v exceeds the drawing cap", h)
	}
}
