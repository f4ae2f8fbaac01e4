package svgdraw

import (
	"fmt"
	"strings"
)

// SectionShape is the concrete outline of a beam group
type SectionShape string

const (
	ShapeRect SectionShape = "Rect"
	ShapeT    SectionShape = "T"
	ShapeL    SectionShape = "L"
)

// ParseSectionShape accepts "T", "L" or anything else as rectangular
func ParseSectionShape(s string) SectionShape {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "T":
		return ShapeT
	case "L":
		return ShapeL
	default:
		return ShapeRect
	}
}

// Default beam section detail values (mm)
const (
	DefaultBeamBars  = "3Y16"
	DefaultLinks     = "Y8 @ 200"
	DefaultBeamWidth = 230
	DefaultBeamDepth = 450
	DefaultFlange    = 150
)

// BeamSection holds the inputs of a beam cross-section detail. Dimensions are
// in mm.
type BeamSection struct {
	Width      float64 // b, web width
	Depth      float64 // h
	MainBars   string  // e.g. "3Y16"
	Links      string  // e.g. "Y8 @ 200"
	Shape      SectionShape
	Flange     float64 // hf
	FlangeWide float64 // bf, 0 = b + 300 for flanged shapes
}

func (s BeamSection) withDefaults() BeamSection {
	if s.Width <= 0 {
		s.Width = DefaultBeamWidth
	}
	if s.Depth <= 0 {
		s.Depth = DefaultBeamDepth
	}
	if s.MainBars == "" {
		s.MainBars = DefaultBeamBars
	}
	if s.Links == "" {
		s.Links = DefaultLinks
	}
	if s.Shape == "" {
		s.Shape = ShapeRect
	}
	if s.Flange <= 0 {
		s.Flange = DefaultFlange
	}
	return s
}

// Draw renders the section with links, bottom bars, hanger bars and dimension
// lines. Up to four bars sit in one bottom layer; more are split over two.
func (s BeamSection) Draw() Drawing {
	s = s.withDefaults()
	const (
		padding  = 70.0
		cover    = 30.0
		linkDiam = 8.0
	)
	b, h, hf := s.Width, s.Depth, s.Flange
	bf := b
	if s.Shape != ShapeRect {
		bf = s.FlangeWide
		if bf <= 0 {
			bf = b + 300
		}
	}
	width, height := bf+2*padding, h+2*padding
	c := newCanvas(r(width), r(height), `style="max-height:280px;background:#fff;`+fontFamily+`"`)
	c.arrowMarker("arrow", 10, "#999")

	// concrete outline
	webX := padding + (bf-b)/2
	var d []string
	switch s.Shape {
	case ShapeT:
		d = []string{
			pathf("M", padding, padding), pathf("L", padding+bf, padding), pathf("L", padding+bf, padding+hf),
			pathf("L", webX+b, padding+hf), pathf("L", webX+b, padding+h), pathf("L", webX, padding+h),
			pathf("L", webX, padding+hf), pathf("L", padding, padding+hf),
		}
	case ShapeL:
		d = []string{
			pathf("M", padding, padding), pathf("L", padding+bf, padding), pathf("L", padding+bf, padding+hf),
			pathf("L", padding+b, padding+hf), pathf("L", padding+b, padding+h), pathf("L", padding, padding+h),
		}
	default:
		d = []string{
			pathf("M", padding, padding), pathf("L", padding+b, padding),
			pathf("L", padding+b, padding+h), pathf("L", padding, padding+h),
		}
	}
	c.Path(strings.Join(d, " ")+" Z", "fill:#f9f9f9;stroke:#333;stroke-width:2.5")

	// links
	stirrupX := webX + cover
	if s.Shape == ShapeL {
		stirrupX = padding + cover
	}
	stirrupY := padding + cover
	stirrupW, stirrupH := b-2*cover, h-2*cover
	c.Roundrect(r(stirrupX), r(stirrupY), r(stirrupW), r(stirrupH), 4, 4, "fill:none;stroke:#666;stroke-width:2")

	// bars
	count, dia := barsOr(s.MainBars, 3, 16)
	radius := float64(dia) / 2
	bar := func(x, y, rad float64, color string) {
		c.Circle(r(x), r(y), r(rad), "fill:"+color+";stroke:#000;stroke-width:0.8")
	}
	startX := stirrupX + linkDiam + radius + 4
	endX := stirrupX + stirrupW - linkDiam - radius - 4
	bottomY := padding + h - cover - linkDiam - radius - 4
	topY := stirrupY + linkDiam + radius + 4

	layer := func(n int, y float64) {
		for i := 0; i < n; i++ {
			x := (startX + endX) / 2
			if n > 1 {
				x = startX + float64(i)*(endX-startX)/float64(n-1)
			}
			bar(x, y, radius, barRed)
		}
	}
	if count <= 4 {
		layer(count, bottomY)
	} else {
		first := (count + 1) / 2
		layer(first, bottomY)
		layer(count-first, bottomY-float64(dia)-12)
	}
	bar(startX, topY, 4.5, "#999")
	bar(endX, topY, 4.5, "#999")

	// dimensions
	dimStyle := []string{"stroke:#aaa;stroke-width:1", `marker-start="url(#arrow)"`, `marker-end="url(#arrow)"`}
	hdim := func(x1, x2, y float64, label string, off float64) {
		c.Line(r(x1), r(y-off), r(x2), r(y-off), dimStyle...)
		c.Text(r((x1+x2)/2), r(y-off-8), label, textMuted)
	}
	vdim := func(x, y1, y2 float64, label string, off float64) {
		c.Line(r(x-off), r(y1), r(x-off), r(y2), dimStyle...)
		c.vtext(r(x-off-10), r((y1+y2)/2), label, textMuted)
	}
	hdim(padding, padding+bf, padding, fmt.Sprintf("bf=%.0f", bf), 25)
	if s.Shape != ShapeRect {
		hdim(webX, webX+b, padding+h, "bw="+trimFloat(b), -30)
		vdim(padding+bf, padding, padding+hf, "hf="+trimFloat(hf), -20)
	} else {
		hdim(padding, padding+b, padding+h, "b="+trimFloat(b), -30)
	}
	vdim(padding, padding, padding+h, "h="+trimFloat(h), 30)

	c.Text(r(width/2), r(height-15), fmt.Sprintf("%s GROUP SECTION: %s (Bottom) + %s", s.Shape, s.MainBars, s.Links), captionCSS)
	return c.finish(280)
}

// ColumnSection holds the inputs of a column cross-section detail (mm)
type ColumnSection struct {
	Width    float64
	Depth    float64
	MainBars string
	Links    string
}

// Draw renders the column with corner bars, mid-face bars on the top and
// bottom faces from six bars and on the side faces from eight.
func (s ColumnSection) Draw() Drawing {
	if s.Width <= 0 {
		s.Width = 230
	}
	if s.Depth <= 0 {
		s.Depth = 230
	}
	if s.MainBars == "" {
		s.MainBars = "4Y16"
	}
	if s.Links == "" {
		s.Links = DefaultLinks
	}
	const (
		padding  = 60.0
		cover    = 30.0
		linkDiam = 8.0
	)
	b, h := s.Width, s.Depth
	width, height := b+2*padding, h+2*padding
	c := newCanvas(r(width), r(height), `style="max-height:240px;background:#fff;`+fontFamily+`"`)

	c.Rect(r(padding), r(padding), r(b), r(h), "fill:#fcfcfc;stroke:#333;stroke-width:2.5")
	sX, sY := padding+cover, padding+cover
	sW, sH := b-2*cover, h-2*cover
	c.Roundrect(r(sX), r(sY), r(sW), r(sH), 4, 4, "fill:none;stroke:#666;stroke-width:2")

	count, dia := barsOr(s.MainBars, 4, 16)
	radius := max(4, float64(dia)/4)
	inner := linkDiam + 2
	xL, xR := sX+inner, sX+sW-inner
	yT, yB := sY+inner, sY+sH-inner
	bar := func(x, y float64) {
		c.Circle(r(x), r(y), r(radius), "fill:"+barRed+";stroke:#000;stroke-width:0.5")
	}
	bar(xL, yT)
	bar(xR, yT)
	bar(xL, yB)
	bar(xR, yB)
	if count >= 6 {
		bar((xL+xR)/2, yT)
		bar((xL+xR)/2, yB)
	}
	if count >= 8 {
		bar(xL, (yT+yB)/2)
		bar(xR, (yT+yB)/2)
	}

	c.Text(r(width/2), r(height-15), fmt.Sprintf("COLUMN: %sx%s | %s + %s", trimFloat(b), trimFloat(h), s.MainBars, s.Links), captionCSS)
	return c.finish(240)
}
