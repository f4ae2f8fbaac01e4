package printout

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/alexiusacademia/gorcdraft/internal/report"
	"github.com/alexiusacademia/gorcdraft/internal/svgdraw"
)

// A4 portrait geometry in mm
const (
	pageWidth    = 210.0
	marginX      = 15.0
	marginTop    = 20.0
	usableWidth  = pageWidth - 2*marginX
	usableHeight = 257.0
	lineHeight   = 4.5
	refWidth     = 28.0
	outWidth     = 32.0
	calcWidth    = usableWidth - refWidth - outWidth
)

// PxPerMM maps the report's pixel budget onto the printable height
const PxPerMM = report.DefaultBudget / usableHeight

// rasterScale is the pixel density drawings are rasterised at
const rasterScale = 2

// PDFOptions controls WritePDF
type PDFOptions struct {
	Selection report.Selection // zero value = every page
}

type layout struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	images int
}

func newLayout() *layout {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginX, marginTop, marginX)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Helvetica", "", 9)
	return &layout{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

var markup = strings.NewReplacer("**", "", "*", "", "`", "", "$", "")

// plain strips inline markdown and math delimiters for PDF text
func plain(s string) string { return markup.Replace(s) }

func (l *layout) lines(text string, width float64) int {
	if text == "" {
		return 0
	}
	return len(l.pdf.SplitText(l.tr(text), width))
}

// imageSize returns the printed size of a drawing in mm
func imageSize(d svgdraw.Drawing) (w, h float64) {
	if d.Empty() || d.Width <= 0 || d.Height <= 0 {
		return 0, 0
	}
	w, h = float64(d.Width)/PxPerMM, float64(d.Height)/PxPerMM
	if w > usableWidth {
		h *= usableWidth / w
		w = usableWidth
	}
	if d.MaxHeight > 0 {
		if limit := float64(d.MaxHeight) / PxPerMM; h > limit {
			w *= limit / h
			h = limit
		}
	}
	return w, h
}

// height returns the printed height of a block in mm
func (l *layout) height(b report.Block) float64 {
	switch b := b.(type) {
	case report.SectionHeader:
		return 10
	case report.SubHeader:
		return 7
	case report.Row:
		l.pdf.SetFont("Helvetica", "", 9)
		n := max(1, l.lines(plain(b.Calc), calcWidth-2), l.lines(b.Ref, refWidth-2))
		l.pdf.SetFont("Helvetica", "B", 9)
		n = max(n, l.lines(b.Out, outWidth-2))
		return float64(n)*lineHeight + 2
	case report.Table:
		if len(b.Cells) == 0 {
			return lineHeight
		}
		l.pdf.SetFont("Helvetica", "", 8)
		cw := calcWidth / float64(len(b.Cells))
		n := 1
		for _, c := range b.Cells {
			n = max(n, l.lines(c, cw-1))
		}
		return float64(n)*4 + 2
	case report.Visual:
		_, h := imageSize(b.Drawing)
		return 5 + h + 6
	}
	return 0
}

func (l *layout) sheetHeader(taskID, date string, page, total int) {
	p := l.pdf
	p.SetFont("Helvetica", "", 8)
	p.SetTextColor(80, 80, 80)
	p.SetXY(marginX, 10)
	p.CellFormat(usableWidth/3, 5, l.tr("Task: "+taskID), "", 0, "L", false, 0, "")
	p.CellFormat(usableWidth/3, 5, l.tr("Date: "+date), "", 0, "C", false, 0, "")
	p.CellFormat(usableWidth/3, 5, fmt.Sprintf("Sheet %d of %d", page, total), "", 0, "R", false, 0, "")
	p.SetDrawColor(34, 34, 34)
	p.SetLineWidth(0.5)
	p.Line(marginX, 16, marginX+usableWidth, 16)
	p.SetLineWidth(0.2)
	p.SetTextColor(0, 0, 0)
	p.SetXY(marginX, marginTop)
}

func (l *layout) draw(b report.Block) error {
	p := l.pdf
	y := p.GetY()
	h := l.height(b)
	switch b := b.(type) {
	case report.SectionHeader:
		p.SetFont("Helvetica", "B", 10)
		p.SetFillColor(34, 34, 34)
		p.SetTextColor(255, 255, 255)
		p.SetXY(marginX, y+1)
		p.CellFormat(usableWidth, 7, l.tr(b.Title), "", 0, "L", true, 0, "")
		p.SetTextColor(0, 0, 0)
	case report.SubHeader:
		p.SetFont("Helvetica", "B", 9)
		p.SetXY(marginX+5, y+1)
		p.CellFormat(usableWidth-5, 6, l.tr(b.Text), "", 0, "L", false, 0, "")
	case report.Row:
		p.SetFont("Helvetica", "", 9)
		p.SetTextColor(85, 85, 85)
		p.SetXY(marginX, y+1)
		p.MultiCell(refWidth, lineHeight, l.tr(b.Ref), "", "L", false)
		p.SetTextColor(0, 0, 0)
		p.SetXY(marginX+refWidth, y+1)
		p.MultiCell(calcWidth, lineHeight, l.tr(plain(b.Calc)), "", "L", false)
		p.SetFont("Helvetica", "B", 9)
		p.SetXY(marginX+refWidth+calcWidth, y+1)
		p.MultiCell(outWidth, lineHeight, l.tr(b.Out), "", "L", false)
		l.rule(y + h)
	case report.Table:
		p.SetFont("Helvetica", "", 7)
		p.SetXY(marginX, y+1)
		p.CellFormat(refWidth, 4, "TABLE", "", 0, "C", false, 0, "")
		style := ""
		if b.Header {
			style = "B"
		}
		p.SetFont("Helvetica", style, 8)
		if len(b.Cells) > 0 {
			cw := calcWidth / float64(len(b.Cells))
			for i, c := range b.Cells {
				p.SetXY(marginX+refWidth+float64(i)*cw, y+1)
				p.MultiCell(cw, 4, l.tr(c), "", "L", false)
			}
		}
		l.rule(y + h)
	case report.Visual:
		p.SetFont("Helvetica", "B", 7)
		p.SetTextColor(102, 102, 102)
		p.SetXY(marginX, y)
		p.CellFormat(usableWidth, 5, l.tr(strings.ToUpper(b.Caption())), "", 0, "C", false, 0, "")
		w, ih := imageSize(b.Drawing)
		if ih > 0 {
			if err := l.image(b.Drawing, marginX+(usableWidth-w)/2, y+5, w, ih); err != nil {
				return err
			}
		}
		p.SetFont("Helvetica", "", 6)
		p.SetTextColor(153, 153, 153)
		p.SetXY(marginX, y+5+ih)
		p.CellFormat(usableWidth, 5, "[ SCALE: NOT TO SCALE ]", "", 0, "C", false, 0, "")
		p.SetTextColor(0, 0, 0)
	}
	p.SetXY(marginX, y+h)
	return p.Error()
}

func (l *layout) rule(y float64) {
	l.pdf.SetDrawColor(221, 221, 221)
	l.pdf.Line(marginX, y, marginX+usableWidth, y)
}

func (l *layout) image(d svgdraw.Drawing, x, y, w, h float64) error {
	img, err := Rasterize(d, rasterScale)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	l.images++
	name := fmt.Sprintf("drawing-%d", l.images)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	l.pdf.RegisterImageOptionsReader(name, opts, &buf)
	l.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	return nil
}

// Rasterize renders a drawing onto a white image at the given pixel density
func Rasterize(d svgdraw.Drawing, scale float64) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(strings.NewReader(d.Markup), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse drawing: %w", err)
	}
	w, h := int(float64(d.Width)*scale), int(float64(d.Height)*scale)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("drawing has no size")
	}
	icon.SetTarget(0, 0, float64(w), float64(h))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return img, nil
}

// WritePDF writes the selected pages of the report as an A4 PDF, one PDF
// page per report page.
func WritePDF(w io.Writer, rep *report.Report, opts PDFOptions) error {
	sel := opts.Selection
	if sel == (report.Selection{}) {
		sel = report.SelectAll
	}
	l := newLayout()
	date := rep.Generated.Format("2006-01-02")
	total := len(rep.Pages)
	for _, page := range rep.Pages {
		if !sel.Visible(page.Number) {
			continue
		}
		l.pdf.AddPage()
		l.sheetHeader(rep.TaskID, date, page.Number, total)
		for _, b := range page.Blocks {
			if err := l.draw(b); err != nil {
				return fmt.Errorf("sheet %d: %w", page.Number, err)
			}
		}
	}
	if l.pdf.PageCount() == 0 {
		l.pdf.AddPage()
	}
	return l.pdf.Output(w)
}

// PDFMeasurer measures blocks with the PDF writer's fonts and column widths
// so pagination matches the printed sheets. It is not safe for concurrent
// use.
type PDFMeasurer struct {
	l *layout
}

// NewPDFMeasurer creates a measurer
func NewPDFMeasurer() *PDFMeasurer {
	return &PDFMeasurer{l: newLayout()}
}

// Height implements report.Measurer, in report px
func (m *PDFMeasurer) Height(b report.Block) float64 {
	return m.l.height(b) * PxPerMM
}
