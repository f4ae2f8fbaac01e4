package svgdraw

import "fmt"

// FootingSection draws a pad footing of width b and depth d (mm) with its
// bottom mesh and column starter bars. The outline is schematic; only the
// dimension labels carry the real sizes.
func FootingSection(b, d float64) Drawing {
	if b <= 0 {
		b = 1200
	}
	if d <= 0 {
		d = 450
	}
	const w, h, pad = 400, 300, 50
	const fW, fH, cW = 240, 80, 50
	const fX, fY = (w - fW) / 2, h - pad - fH
	const cX, cY = (w - cW) / 2, pad
	const cover = 10

	c := newCanvas(w, h, `style="max-height:280px;background:#fff;`+fontFamily+`"`)
	c.arrowMarker("arrowSD", 6, "#999")

	concrete := "fill:#f0f0f0;stroke:#333;stroke-width:2"
	c.Rect(fX, fY, fW, fH, concrete)
	c.Rect(cX, cY, cW, fY-cY, concrete)

	c.Line(fX+cover, fY+fH-cover, fX+fW-cover, fY+fH-cover, "stroke:"+barRed+";stroke-width:3")
	for i := 0; i < 6; i++ {
		c.Circle(fX+cover+10+i*40, fY+fH-cover-5, 2, "fill:"+barRed)
	}
	starter := "fill:none;stroke:#1976D2;stroke-width:2"
	barY := fY + fH - cover - 5
	c.Polyline([]int{cX + 15, cX + 15, fX + 50}, []int{cY, barY, barY}, starter)
	c.Polyline([]int{cX + cW - 15, cX + cW - 15, fX + fW - 50}, []int{cY, barY, barY}, starter)

	dim := []string{"stroke:#999;stroke-width:1", `marker-start="url(#arrowSD)"`, `marker-end="url(#arrowSD)"`}
	c.Line(fX, fY+fH+20, fX+fW, fY+fH+20, dim...)
	c.Text((fX+fX+fW)/2, fY+fH+10, fmt.Sprintf("B = %smm", trimFloat(b)), textMuted)
	c.Line(fX-20, fY, fX-20, fY+fH, dim...)
	c.vtext(fX-30, fY+fH/2, fmt.Sprintf("D = %smm", trimFloat(d)), textMuted)

	c.Text(w/2, h-10, "FOOTING SECTION DETAIL", captionCSS)
	return c.finish(280)
}
