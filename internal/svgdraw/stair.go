package svgdraw

import (
	"fmt"
	"math"
	"strings"
)

// StairDesign is the geometry of a flight (mm) and its main bar callout
type StairDesign struct {
	Riser    float64 `json:"R"`
	Going    float64 `json:"G"`
	Waist    float64 `json:"h"`
	Steps    int     `json:"numSteps"`
	MainInfo string  `json:"mainInfo"`
}

// StairSection draws the flight profile with the main bar along the soffit.
// A nil design draws nothing.
func StairSection(d *StairDesign) Drawing {
	if d == nil {
		return Drawing{}
	}
	R, G, waist, steps := d.Riser, d.Going, d.Waist, d.Steps
	if R <= 0 {
		R = 170
	}
	if G <= 0 {
		G = 250
	}
	if waist <= 0 {
		waist = 150
	}
	if steps <= 0 {
		steps = 10
	}
	const width, height, p, scale = 600.0, 400.0, 50.0, 0.35
	waistVert := waist / math.Cos(math.Atan(R/G))

	c := newCanvas(int(width), int(height), `style="background:#fff;`+fontFamily+`"`)

	startX, startY := p, height-p
	cx, cy := startX, startY
	pts := []string{fmt.Sprintf("%.2f,%.2f", cx, cy)}
	for i := 0; i < steps; i++ {
		cy -= R * scale
		pts = append(pts, fmt.Sprintf("%.2f,%.2f", cx, cy))
		cx += G * scale
		pts = append(pts, fmt.Sprintf("%.2f,%.2f", cx, cy))
	}
	cx += 40
	pts = append(pts, fmt.Sprintf("%.2f,%.2f", cx, cy))
	cy += waist * scale
	pts = append(pts,
		fmt.Sprintf("%.2f,%.2f", cx, cy),
		fmt.Sprintf("%.2f,%.2f", startX, startY+waistVert*scale),
		fmt.Sprintf("%.2f,%.2f", startX, startY),
	)
	c.Path("M "+strings.Join(pts, " L ")+" Z", "fill:#f5f5f5;stroke:#333;stroke-width:2")

	cover := 25 * scale
	soffit := startY + waistVert*scale - cover
	c.Line(r(startX+20), r(soffit), r(cx-20), r(cy-cover), "stroke:#e63946;stroke-width:4")

	rise := float64(steps) * R * scale
	const dist = 6
	for i := 1; i < dist; i++ {
		f := float64(i) / dist
		c.Circle(r(startX+(cx-startX)*f), r(soffit-(rise+20)*f), 3, "fill:#333")
	}

	muted := "font-size:12px;fill:#666"
	c.Text(r(startX-15), r(startY-R*scale/2), "R="+trimFloat(R), muted+";text-anchor:end")
	c.Text(r(startX+G*scale/2), r(startY-R*scale-5), "G="+trimFloat(G), muted+";text-anchor:middle")
	c.Text(r(startX+100), r(startY+80), "h="+trimFloat(waist), muted+";text-anchor:middle")

	main := d.MainInfo
	if main == "" {
		main = "TBD"
	}
	c.Text(r(width/2), r(height-20), "Main: "+main, "font-size:14px;font-weight:bold;text-anchor:middle;fill:#e63946")
	return c.finish(0)
}
