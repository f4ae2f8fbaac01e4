package report

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/alexiusacademia/gorcdraft/internal/svgdraw"
)

// Measurer reports the rendered height of a block in px
type Measurer interface {
	Height(b Block) float64
}

// EstimateMeasurer approximates rendered heights from character counts. It
// is the measurer used when no renderer-backed one is available.
type EstimateMeasurer struct {
	LineHeight   float64 // px per text line, 0 = 18
	CalcChars    int     // characters per line in the calculation column, 0 = 70
	SideChars    int     // characters per line in the ref/output columns, 0 = 14
	ContentWidth float64 // px available to visuals, 0 = 640
}

func (m EstimateMeasurer) withDefaults() EstimateMeasurer {
	if m.LineHeight <= 0 {
		m.LineHeight = 18
	}
	if m.CalcChars <= 0 {
		m.CalcChars = 70
	}
	if m.SideChars <= 0 {
		m.SideChars = 14
	}
	if m.ContentWidth <= 0 {
		m.ContentWidth = 640
	}
	return m
}

// Height implements Measurer
func (m EstimateMeasurer) Height(b Block) float64 {
	m = m.withDefaults()
	switch b := b.(type) {
	case SectionHeader:
		return 44
	case SubHeader:
		return m.LineHeight + 10
	case Row:
		lines := max(1, wrappedLines(b.Calc, m.CalcChars), wrappedLines(b.Ref, m.SideChars), wrappedLines(b.Out, m.SideChars))
		return float64(lines)*m.LineHeight + 12
	case Table:
		if len(b.Cells) == 0 {
			return m.LineHeight
		}
		per := max(4, m.CalcChars/len(b.Cells))
		lines := 1
		for _, c := range b.Cells {
			lines = max(lines, wrappedLines(c, per))
		}
		return float64(lines)*m.LineHeight + 10
	case Visual:
		return 74 + DisplayHeight(b.Drawing, m.ContentWidth)
	default:
		return 0
	}
}

// DisplayHeight is the height a drawing occupies when scaled down to fit
// width and capped at its maximum display height.
func DisplayHeight(d svgdraw.Drawing, width float64) float64 {
	if d.Empty() || d.Width <= 0 {
		return 0
	}
	h := float64(d.Height) * math.Min(1, width/float64(d.Width))
	if d.MaxHeight > 0 && h > float64(d.MaxHeight) {
		h = float64(d.MaxHeight)
	}
	return h
}

func wrappedLines(s string, perLine int) int {
	if s == "" {
		return 0
	}
	n := 0
	for _, l := range strings.Split(s, "\n") {
		c := utf8.RuneCountInString(l)
		n += max(1, (c+perLine-1)/perLine)
	}
	return n
}
