package diagram

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/alexiusacademia/gorcdraft/internal/svgdraw"
)

// ErrNoPoints is returned when there is nothing to plot.
var ErrNoPoints = errors.New("no diagram points")

var (
	momentColor = color.RGBA{R: 37, G: 99, B: 235, A: 255}
	shearColor  = color.RGBA{R: 22, G: 163, B: 74, A: 255}
)

// plotValue maps a value to the plot's y axis. Sagging moment is drawn below
// the axis, as on the calculation sheets.
func plotValue(v float64, kind svgdraw.DiagramKind) float64 {
	if kind == svgdraw.BMD {
		return -v
	}
	return v
}

// EnvelopePlot builds a bending moment or shear force plot of a beam.
func EnvelopePlot(points []svgdraw.EnvelopePoint, kind svgdraw.DiagramKind, title string) (*plot.Plot, error) {
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Distance (m)"
	p.Y.Label.Text = kind.Title()
	if kind == svgdraw.BMD {
		p.Y.Label.Text += ", sagging down"
	}

	lineColor := shearColor
	if kind == svgdraw.BMD {
		lineColor = momentColor
	}

	// Closed outline along the beam axis
	first, last := points[0].X, points[len(points)-1].X
	area := make(plotter.XYs, 0, len(points)+2)
	area = append(area, plotter.XY{X: first, Y: 0})
	curve := make(plotter.XYs, len(points))
	for i, pt := range points {
		xy := plotter.XY{X: pt.X, Y: plotValue(pt.Value(kind), kind)}
		curve[i] = xy
		area = append(area, xy)
	}
	area = append(area, plotter.XY{X: last, Y: 0})

	fill, err := plotter.NewPolygon(area)
	if err != nil {
		return nil, err
	}
	fill.Color = color.RGBA{R: lineColor.R, G: lineColor.G, B: lineColor.B, A: 60}
	fill.LineStyle.Width = 0
	p.Add(fill)

	line, err := plotter.NewLine(curve)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = lineColor
	p.Add(line)

	axis, err := plotter.NewLine(plotter.XYs{{X: first, Y: 0}, {X: last, Y: 0}})
	if err != nil {
		return nil, err
	}
	axis.LineStyle.Width = vg.Points(1)
	axis.LineStyle.Color = color.Gray{Y: 128}
	axis.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(axis)

	// Mark and label the extremes
	maxIdx, minIdx := svgdraw.Extremes(points, kind)
	marks := plotter.XYs{curve[maxIdx]}
	texts := []string{fmt.Sprintf("%.1f", points[maxIdx].Value(kind))}
	if minIdx != maxIdx {
		marks = append(marks, curve[minIdx])
		texts = append(texts, fmt.Sprintf("%.1f", points[minIdx].Value(kind)))
	}
	scatter, err := plotter.NewScatter(marks)
	if err != nil {
		return nil, err
	}
	scatter.GlyphStyle.Color = color.RGBA{R: 220, G: 38, B: 38, A: 255}
	scatter.GlyphStyle.Radius = vg.Points(4)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(scatter)

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: marks, Labels: texts})
	if err != nil {
		return nil, err
	}
	p.Add(labels)

	return p, nil
}

// ExportEnvelope writes the plot to filename. The format follows the
// extension (.png, .svg or .pdf); anything else gets .png appended.
func ExportEnvelope(points []svgdraw.EnvelopePoint, kind svgdraw.DiagramKind, title, filename string) (string, error) {
	p, err := EnvelopePlot(points, kind, title)
	if err != nil {
		return "", err
	}

	width := 8 * vg.Inch
	height := 4 * vg.Inch

	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
	default:
		filename += ".png"
	}
	return filename, p.Save(width, height, filename)
}
