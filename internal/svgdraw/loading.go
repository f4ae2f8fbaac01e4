package svgdraw

import (
	"fmt"
	"strings"
)

// PointLoad is a concentrated load P (kN) at distance A (m) from the left support
type PointLoad struct {
	P float64 `json:"P"`
	A float64 `json:"a"`
}

// BeamLoading draws a simply supported span with a uniform load udl (kN/m)
// and any point loads.
func BeamLoading(spanM, udl float64, loads []PointLoad) Drawing {
	const w, h, pad = 400.0, 150.0, 40.0
	c := newCanvas(int(w), int(h), `style="background:#fff"`)
	c.Def()
	c.Marker("arrowhead-red", 3, 3, 6, 6, `orient="auto"`)
	c.Polygon([]int{0, 6, 0}, []int{0, 3, 6}, "fill:#c62828")
	c.MarkerEnd()
	c.Marker("arrowhead-blue", 4, 4, 8, 8, `orient="auto"`)
	c.Polygon([]int{0, 8, 0}, []int{0, 4, 8}, "fill:#283593")
	c.MarkerEnd()
	c.DefEnd()

	bY := h - 40
	c.Line(r(pad), r(bY), r(w-pad), r(bY), "stroke:#333;stroke-width:6;stroke-linecap:round")

	const arrows = 15
	for i := 0; i <= arrows; i++ {
		x := pad + float64(i)*(w-2*pad)/arrows
		c.Line(r(x), r(bY-40), r(x), r(bY-10), "stroke:#c62828;stroke-width:1.5", `marker-end="url(#arrowhead-red)"`)
	}
	c.Line(r(pad), r(bY-40), r(w-pad), r(bY-40), "stroke:#c62828;stroke-width:2")
	c.Text(r(w/2), r(bY-50), fmt.Sprintf("w = %.2f kN/m", udl), "font-size:12px;font-weight:bold;text-anchor:middle;fill:#c62828")

	if spanM > 0 {
		for _, p := range loads {
			x := pad + (p.A/spanM)*(w-2*pad)
			c.Line(r(x), r(bY-70), r(x), r(bY-10), "stroke:#283593;stroke-width:4", `marker-end="url(#arrowhead-blue)"`)
			c.Text(r(x), r(bY-75), trimFloat(p.P)+"kN", "font-size:12px;font-weight:bold;text-anchor:middle;fill:#283593")
		}
	}

	support := func(x float64) {
		c.Polygon([]int{r(x - 10), r(x), r(x + 10)}, []int{r(bY + 15), r(bY), r(bY + 15)}, "fill:#333")
	}
	support(pad)
	support(w - pad)
	return c.finish(0)
}

// DiagramKind selects the quantity an envelope plots
type DiagramKind string

const (
	BMD DiagramKind = "BMD"
	SFD DiagramKind = "SFD"
)

// Title is the caption of the diagram
func (k DiagramKind) Title() string {
	if k == BMD {
		return "Bending Moment (kNm)"
	}
	return "Shear Force (kN)"
}

// EnvelopePoint is one station of a beam analysis
type EnvelopePoint struct {
	X      float64 `json:"x"`      // m from the start of the beam
	Moment float64 `json:"moment"` // kNm, sagging positive
	Shear  float64 `json:"shear"`  // kN
}

// Value returns the quantity plotted by kind
func (p EnvelopePoint) Value(kind DiagramKind) float64 {
	if kind == BMD {
		return p.Moment
	}
	return p.Shear
}

// Extremes returns the indices of the largest and smallest values; the first
// occurrence wins on ties.
func Extremes(points []EnvelopePoint, kind DiagramKind) (maxIdx, minIdx int) {
	for i, p := range points {
		v := p.Value(kind)
		if v > points[maxIdx].Value(kind) {
			maxIdx = i
		}
		if v < points[minIdx].Value(kind) {
			minIdx = i
		}
	}
	return maxIdx, minIdx
}

// Envelope draws a bending moment or shear force diagram over a beam of
// length spanM. Sagging moment is drawn below the axis and positive shear
// above it. The maximum and minimum are labelled when larger than 0.1 in
// magnitude. No points give an empty Drawing.
func Envelope(points []EnvelopePoint, spanM float64, kind DiagramKind) Drawing {
	if len(points) == 0 {
		return Drawing{}
	}
	const w, h, pad = 400.0, 160.0, 40.0
	bY := h / 2
	c := newCanvas(int(w), int(h), `style="background:#fcfdff"`)

	maxAbs := 0.1
	for _, p := range points {
		maxAbs = max(maxAbs, abs(p.Value(kind)))
	}
	scaleY := (bY - pad) / maxAbs
	if spanM <= 0 {
		spanM = points[len(points)-1].X
		if spanM <= 0 {
			spanM = 1
		}
	}
	mapX := func(x float64) float64 { return pad + x/spanM*(w-2*pad) }
	mapY := func(v float64) float64 {
		if kind == BMD {
			return bY + v*scaleY
		}
		return bY - v*scaleY
	}

	c.Line(r(pad), r(bY), r(w-pad), r(bY), "stroke:#333;stroke-width:1;stroke-dasharray:4,2;opacity:0.5")

	segs := make([]string, len(points))
	for i, p := range points {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		segs[i] = pathf(cmd, mapX(p.X), mapY(p.Value(kind)))
	}
	line := strings.Join(segs, " ")
	startX, endX := mapX(points[0].X), mapX(points[len(points)-1].X)
	fill := fmt.Sprintf("M %.2f %.2f L%s L %.2f %.2f Z", startX, bY, line[1:], endX, bY)

	fillColor, stroke, labelColor := "rgba(211,47,47,0.08)", barRed, "#B71C1C"
	if kind == BMD {
		fillColor, stroke, labelColor = "rgba(25,118,210,0.1)", "#1565C0", "#0D47A1"
	}
	c.Path(fill, "fill:"+fillColor+";stroke:none")
	c.Path(line, "fill:none;stroke:"+stroke+";stroke-width:2.5;stroke-linejoin:round")

	label := func(i int) {
		v := points[i].Value(kind)
		x, y := mapX(points[i].X), mapY(v)
		up := v > 0
		if kind == BMD {
			up = v < 0
		}
		if up {
			y -= 10
		} else {
			y += 15
		}
		c.Text(r(x), r(y), fmt.Sprintf("%.1f", v), "font-size:10px;font-weight:bold;text-anchor:middle;fill:"+labelColor)
	}
	maxIdx, minIdx := Extremes(points, kind)
	if abs(points[maxIdx].Value(kind)) > 0.1 {
		label(maxIdx)
	}
	if abs(points[minIdx].Value(kind)) > 0.1 && minIdx != maxIdx {
		label(minIdx)
	}

	c.Text(r(w/2), r(h-8), strings.ToUpper(kind.Title()), "font-size:11px;font-weight:900;text-anchor:middle;fill:#222")
	return c.finish(0)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
