// Package svgdraw renders the structural detail drawings embedded in the
// calculation report: member sections, slab panels, loading and envelope
// diagrams. Every function is stateless and returns a self-contained <svg>
// element.
package svgdraw

import (
	"bytes"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// Drawing is a rendered SVG fragment and its nominal size in px
type Drawing struct {
	Markup    string
	Width     int
	Height    int
	MaxHeight int // display cap in px, 0 = none
}

// Empty reports whether nothing was drawn
func (d Drawing) Empty() bool { return d.Markup == "" }

// String returns the markup
func (d Drawing) String() string { return d.Markup }

const (
	fontFamily = "font-family:Inter,sans-serif"
	textMuted  = "font-size:11px;text-anchor:middle;fill:#666"
	captionCSS = "font-size:13px;font-weight:bold;text-anchor:middle;fill:#222"
	barRed     = "#d32f2f"
)

// canvas wraps an svgo writer that renders into memory
type canvas struct {
	*svg.SVG
	buf  *bytes.Buffer
	w, h int
}

func newCanvas(w, h int, extra ...string) *canvas {
	buf := new(bytes.Buffer)
	c := &canvas{SVG: svg.New(buf), buf: buf, w: w, h: h}
	attrs := append([]string{fmt.Sprintf(`viewBox="0 0 %d %d"`, w, h)}, extra...)
	c.Start(w, h, attrs...)
	return c
}

// finish closes the document and drops the XML prolog so the markup can be
// inlined into HTML.
func (c *canvas) finish(maxHeight int) Drawing {
	c.End()
	markup := c.buf.String()
	if i := strings.Index(markup, "<svg"); i > 0 {
		markup = markup[i:]
	}
	return Drawing{Markup: markup, Width: c.w, Height: c.h, MaxHeight: maxHeight}
}

// arrowMarker defines a filled triangular arrowhead usable with
// marker-start/marker-end
func (c *canvas) arrowMarker(id string, size int, fill string) {
	c.Def()
	c.Marker(id, size/2, size/2, size, size, `orient="auto"`)
	c.Path(fmt.Sprintf("M 0 0 L %d %d L 0 %d Z", size, size/2, size), "fill:"+fill)
	c.MarkerEnd()
	c.DefEnd()
}

// vtext writes text rotated to read bottom-to-top, centred on (x, y)
func (c *canvas) vtext(x, y int, s string, style string) {
	c.Text(x, y, s, style, fmt.Sprintf(`transform="rotate(-90,%d,%d)"`, x, y))
}

func r(v float64) int { return int(math.Round(v)) }

// pathf formats path coordinates with two decimals
func pathf(cmd string, x, y float64) string {
	return fmt.Sprintf("%s %.2f %.2f", cmd, x, y)
}

var barPattern = regexp.MustCompile(`(\d+)\s*[TYty](\d+)`)

// ParseBars reads a bar callout such as "3Y16" or "4T20" into count and
// diameter (mm). ok is false when the callout does not match, in which case
// the caller's defaults apply.
func ParseBars(callout string) (count, diameter int, ok bool) {
	m := barPattern.FindStringSubmatch(callout)
	if m == nil {
		return 0, 0, false
	}
	count, _ = strconv.Atoi(m[1])
	diameter, _ = strconv.Atoi(m[2])
	return count, diameter, true
}

func barsOr(callout string, defCount, defDia int) (int, int) {
	if n, d, ok := ParseBars(callout); ok {
		return n, d
	}
	return defCount, defDia
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
