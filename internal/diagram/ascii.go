// Package diagram renders beam envelopes for the terminal and as chart
// images, and draws the summary boxes printed by the CLI.
package diagram

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/alexiusacademia/gorcdraft/internal/svgdraw"
)

// ASCIIEnvelope plots an envelope as a terminal chart width columns wide.
// Values are resampled so the x axis is proportional to distance.
func ASCIIEnvelope(points []svgdraw.EnvelopePoint, kind svgdraw.DiagramKind, width int) string {
	if len(points) == 0 {
		return ""
	}
	if width < 2 {
		width = 60
	}
	series := Resample(points, kind, width)
	maxIdx, minIdx := svgdraw.Extremes(points, kind)
	caption := fmt.Sprintf("%s  max %.1f @ %.2fm  min %.1f @ %.2fm",
		strings.ToUpper(kind.Title()),
		points[maxIdx].Value(kind), points[maxIdx].X,
		points[minIdx].Value(kind), points[minIdx].X)

	return asciigraph.Plot(series,
		asciigraph.Height(12),
		asciigraph.Precision(1),
		asciigraph.Caption(caption),
	)
}

// Resample interpolates the envelope at n evenly spaced stations between the
// first and last point. Points are expected in ascending x.
func Resample(points []svgdraw.EnvelopePoint, kind svgdraw.DiagramKind, n int) []float64 {
	if len(points) == 0 || n < 1 {
		return nil
	}
	out := make([]float64, n)
	first, last := points[0].X, points[len(points)-1].X
	if n == 1 || last <= first {
		for i := range out {
			out[i] = points[0].Value(kind)
		}
		return out
	}

	j := 0
	for i := range out {
		x := first + (last-first)*float64(i)/float64(n-1)
		for j < len(points)-2 && points[j+1].X < x {
			j++
		}
		a, b := points[j], points[min(j+1, len(points)-1)]
		if b.X <= a.X {
			out[i] = a.Value(kind)
			continue
		}
		t := (x - a.X) / (b.X - a.X)
		t = max(0, min(1, t))
		out[i] = a.Value(kind) + t*(b.Value(kind)-a.Value(kind))
	}
	return out
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if l := len([]rune(line)); l > maxLen {
			maxLen = l
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// pad right-pads s to n runes; %-*s counts bytes, which misaligns "m²".
func pad(s string, n int) string {
	if l := len([]rune(s)); l < n {
		return s + strings.Repeat(" ", n-l)
	}
	return s
}
