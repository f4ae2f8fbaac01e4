package svgdraw

import (
	"fmt"

	"github.com/alexiusacademia/gorcdraft/internal/bs8110"
)

// SlabDetail draws a slab panel with its edge continuity and span arrows.
// Continuous edges are heavy red lines, discontinuous edges dashed. Panels
// with a span ratio beyond 2 get a single one-way arrow along the short span,
// others a two-way cross. Unknown panel indices draw as fully discontinuous.
func SlabDetail(lx, ly float64, panelIndex int) Drawing {
	const w, h = 320.0, 240.0
	c := newCanvas(int(w), int(h), `style="max-height:240px;background:#fff;font-family:sans-serif"`)
	c.arrowMarker("arrowS", 6, "#1976D2")

	ratio := 1.0
	if lx > 0 {
		ratio = ly / lx
	}
	dLx := 200.0
	dLy := min(140, dLx*ratio)
	x1, y1 := (w-dLx)/2, (h-dLy)/2
	panel := bs8110.Panel(panelIndex)

	c.Rect(r(x1), r(y1), r(dLx), r(dLy), "fill:#fcfcfc;stroke:#444;stroke-width:2")
	edge := func(ax, ay, bx, by float64, e bs8110.Edge) {
		if panel.Continuous[e] {
			c.Line(r(ax), r(ay), r(bx), r(by), "stroke:"+barRed+";stroke-width:5")
		} else {
			c.Line(r(ax), r(ay), r(bx), r(by), "stroke:#666;stroke-width:2;stroke-dasharray:8,4")
		}
	}
	edge(x1, y1, x1+dLx, y1, bs8110.EdgeTop)
	edge(x1, y1+dLy, x1+dLx, y1+dLy, bs8110.EdgeBottom)
	edge(x1, y1, x1, y1+dLy, bs8110.EdgeLeft)
	edge(x1+dLx, y1, x1+dLx, y1+dLy, bs8110.EdgeRight)

	cx, cy := x1+dLx/2, y1+dLy/2
	arrow := func(ax, ay, bx, by float64) {
		c.Line(r(ax), r(ay), r(bx), r(by), "stroke:#1976D2;stroke-width:2", `marker-start="url(#arrowS)"`, `marker-end="url(#arrowS)"`)
	}
	if ratio > 2 || ratio < 0.5 {
		half := min(dLx, dLy) * 0.6 / 2
		if dLx < dLy {
			arrow(cx-half, cy, cx+half, cy)
		} else {
			arrow(cx, cy-half, cx, cy+half)
		}
	} else {
		arm := min(dLx, dLy) * 0.35
		arrow(cx-arm, cy, cx+arm, cy)
		arrow(cx, cy-arm, cx, cy+arm)
	}

	label := "font-size:14px;font-weight:bold;text-anchor:middle"
	c.Text(r(cx), r(y1-15), fmt.Sprintf("Lx = %.2fm", lx), label)
	c.vtext(r(x1-20), r(cy), fmt.Sprintf("Ly = %.2fm", ly), label)
	c.Text(r(w/2), r(h-15), panel.Name, "font-size:12px;font-weight:bold;text-anchor:middle;fill:"+barRed)
	return c.finish(240)
}

// TransferShape is the tributary area a slab hands to a supporting beam
type TransferShape string

const (
	TransferTriangle  TransferShape = "triangle"
	TransferTrapezium TransferShape = "trapezium"
	TransferRectangle TransferShape = "rectangle"
)

// SlabTransfer draws a small icon of the tributary shape. Unknown shapes give
// an empty frame.
func SlabTransfer(shape TransferShape) Drawing {
	const w, h, pad = 120, 80, 10
	c := newCanvas(w, h, `style="max-width:120px;background:#fff"`)
	switch shape {
	case TransferTriangle:
		c.Polygon([]int{pad, w / 2, w - pad}, []int{h - pad, pad, h - pad}, "fill:#FFF9C4;stroke:#FBC02D;stroke-width:2")
	case TransferTrapezium:
		c.Polygon([]int{pad, pad + 20, w - pad - 20, w - pad}, []int{h - pad, pad, pad, h - pad}, "fill:#E1F5FE;stroke:#0288D1;stroke-width:2")
	case TransferRectangle:
		c.Rect(pad, pad, w-2*pad, h-2*pad, "fill:#E8F5E9;stroke:#4CAF50;stroke-width:2")
	}
	return c.finish(0)
}

// LoadShape is one slab contribution on a beam span
type LoadShape struct {
	Type string  // "slab-tri" or "slab-trap"
	Lx   float64 // short span of the contributing slab (m), 0 = 4.0
}

// SlabLoadGeometry draws the tributary load areas acting along a beam span
// of length spanM (m). Shapes of other types are skipped.
func SlabLoadGeometry(spanM float64, shapes []LoadShape) Drawing {
	const w, h, pad = 400.0, 80.0, 40.0
	c := newCanvas(int(w), int(h), `style="background:#fafafa"`)
	bY := h - 20
	c.Line(r(pad), r(bY), r(w-pad), r(bY), "stroke:#333;stroke-width:4;stroke-linecap:round")

	visualL := w - 2*pad
	peakY := bY - 40
	for i, s := range shapes {
		var xs, ys []int
		switch s.Type {
		case "slab-tri":
			xs = []int{r(pad), r(pad + visualL/2), r(w - pad)}
			ys = []int{r(bY), r(peakY), r(bY)}
		case "slab-trap":
			lx := s.Lx
			if lx <= 0 {
				lx = 4.0
			}
			visualA := 0.0
			if spanM > 0 {
				visualA = min(visualL/2, (lx/2)/spanM*visualL)
			}
			xs = []int{r(pad), r(pad + visualA), r(w - pad - visualA), r(w - pad)}
			ys = []int{r(bY), r(peakY), r(peakY), r(bY)}
		default:
			continue
		}
		opacity := 0.15 + float64(i)*0.05
		c.Polygon(xs, ys, fmt.Sprintf("fill:rgba(33,150,243,%.2f);stroke:#1976D2;stroke-width:1.5;stroke-dasharray:4,2", opacity))
	}
	c.Text(r(w/2), r(h-5), "LOAD AREA GEOMETRY", "font-size:10px;font-weight:900;text-anchor:middle;fill:#555")
	return c.finish(0)
}
