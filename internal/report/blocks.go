// Package report turns the analysis service's computed design model into a
// paginated engineering calculation sheet.
package report

import "github.com/alexiusacademia/gorcdraft/internal/svgdraw"

// Block is one discrete unit of report content with a measurable height
type Block interface {
	block()
}

// SectionHeader opens a numbered report section
type SectionHeader struct {
	Title string
}

// Row is a calculation row: code reference, calculation text (inline
// markdown) and output
type Row struct {
	Ref  string
	Calc string
	Out  string
}

// SubHeader is a bold step title inside a calculation
type SubHeader struct {
	Text string
}

// DefaultVisualLabel captions visuals that have no specific label
const DefaultVisualLabel = "Technical Illustration / Diagram"

// Visual is an embedded drawing
type Visual struct {
	Label   string
	Drawing svgdraw.Drawing
}

// Table is one row of a pipe-delimited table from a calculation log
type Table struct {
	Cells  []string
	Header bool
}

func (SectionHeader) block() {}
func (Row) block()           {}
func (SubHeader) block()     {}
func (Visual) block()        {}
func (Table) block()         {}

// Caption returns the visual's label or the default
func (v Visual) Caption() string {
	if v.Label == "" {
		return DefaultVisualLabel
	}
	return v.Label
}
