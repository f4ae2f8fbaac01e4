package report

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/alexiusacademia/gorcdraft/internal/bs8110"
	"github.com/alexiusacademia/gorcdraft/internal/svgdraw"
)

// Quantity is a numeric field of the analysis service's report payload. The
// service sends some numbers as strings, so both forms are accepted; text
// that is not a number is kept for display.
type Quantity struct {
	Value float64
	Raw   string // non-numeric text as received
	Valid bool   // a number was present
}

// Q returns a valid Quantity
func Q(v float64) Quantity { return Quantity{Value: v, Valid: true} }

// UnmarshalJSON accepts a number, a numeric string, any other string or null
func (q *Quantity) UnmarshalJSON(b []byte) error {
	*q = Quantity{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			q.Value, q.Valid = v, true
			return nil
		}
		q.Raw = s
		return nil
	}
	if b[0] == 't' || b[0] == 'f' {
		return nil
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	q.Value, q.Valid = v, true
	return nil
}

// MarshalJSON writes the number, the raw text, or null
func (q Quantity) MarshalJSON() ([]byte, error) {
	switch {
	case q.Valid:
		return json.Marshal(q.Value)
	case q.Raw != "":
		return json.Marshal(q.Raw)
	default:
		return []byte("null"), nil
	}
}

// Set reports whether the quantity is a non-zero number
func (q Quantity) Set() bool { return q.Valid && q.Value != 0 }

// Or returns the value, or def when absent or zero
func (q Quantity) Or(def float64) float64 {
	if q.Set() {
		return q.Value
	}
	return def
}

// Text formats the quantity for a calculation sheet, falling back to the raw
// text and then to missing.
func (q Quantity) Text(missing string) string {
	if q.Set() {
		return strconv.FormatFloat(q.Value, 'f', -1, 64)
	}
	if q.Raw != "" {
		return q.Raw
	}
	return missing
}

// Fixed formats with d decimals; absent values print as zero
func (q Quantity) Fixed(d int) string {
	return strconv.FormatFloat(q.Value, 'f', d, 64)
}

// Data is the computed design model for one floor
type Data struct {
	Slabs       []Slab       `json:"slabs"`
	Beams       []Beam       `json:"beams"`
	BeamGroups  []Beam       `json:"beamGroups"`
	Columns     []Column     `json:"columns"`
	Foundations []Foundation `json:"foundations"`
	Stairs      []Stair      `json:"stairs"`
	Meta        Meta         `json:"_meta"`
}

// Meta carries report-wide values
type Meta struct {
	Settings *bs8110.Settings `json:"settings,omitempty"`
}

// DesignBeams returns the beam groups when the service sent them, else the
// individual beams.
func (d *Data) DesignBeams() []Beam {
	if d.BeamGroups != nil {
		return d.BeamGroups
	}
	return d.Beams
}

// SlabLoads are the characteristic and ultimate slab loads (kPa)
type SlabLoads struct {
	Dead     Quantity `json:"dead"`
	Live     Quantity `json:"live"`
	Ultimate Quantity `json:"ultimate"`
}

// SlabMoment is one design moment with the steel provided for it
type SlabMoment struct {
	ID       string   `json:"id"`
	Ref      string   `json:"ref"`
	M        Quantity `json:"M"`
	Provided string   `json:"provided"`
}

// Slab is the analysis of one slab panel
type Slab struct {
	ID         string       `json:"id"`
	Lx         Quantity     `json:"lx"`
	Ly         Quantity     `json:"ly"`
	Type       string       `json:"type"`
	PanelIndex Quantity     `json:"panelIndex"`
	Loads      SlabLoads    `json:"loads"`
	Logs       []string     `json:"logs"`
	Design     *SlabDesign  `json:"design"`
	Moments    []SlabMoment `json:"moments"`
}

// SlabDesign holds the slab's design calculation
type SlabDesign struct {
	Logs    []string     `json:"logs"`
	Moments []SlabMoment `json:"moments"`
}

// BeamDesign is the reinforcement design of a span
type BeamDesign struct {
	W       Quantity `json:"w"`
	Logs    []string `json:"logs"`
	Flexure *struct {
		Bars string `json:"bars"`
	} `json:"flexure"`
	Shear *struct {
		Links string `json:"links"`
	} `json:"shear"`
	Deflection *struct {
		OK    bool     `json:"ok"`
		Ratio Quantity `json:"ratio"`
	} `json:"deflection"`
}

// LoadShape is one load contribution on a beam: a point load or a slab's
// tributary area
type LoadShape struct {
	Type  string   `json:"type"` // point, slab-tri, slab-trap, udl
	Val   Quantity `json:"val"`
	Start Quantity `json:"start"`
	Geom  *struct {
		Lx    Quantity `json:"lx"`
		Shape string   `json:"shape"`
	} `json:"geom"`
}

// SectionSize is the cross-section of a beam or span (mm)
type SectionSize struct {
	BMM      Quantity `json:"b_mm"`
	HMM      Quantity `json:"h_mm"`
	HF       Quantity `json:"hf"`
	BeamType string   `json:"beamType"`
}

// Span is one span of a beam group, or a whole single-span beam
type Span struct {
	ID            string                  `json:"id"`
	L             Quantity                `json:"L"`
	Length        Quantity                `json:"length"`
	W             Quantity                `json:"w"`
	UDL           Quantity                `json:"udl"`
	Design        *BeamDesign             `json:"design"`
	PointLoads    []svgdraw.PointLoad     `json:"pointLoads"`
	Shapes        []LoadShape             `json:"shapes"`
	LoadLogs      []string                `json:"loadLogs"`
	DiagramPoints []svgdraw.EnvelopePoint `json:"diagramPoints"`
	Logs          []string                `json:"logs"`
	SectionSize
}

// Len returns the span length in m
func (s *Span) Len() float64 {
	return s.L.Or(s.Length.Or(0))
}

// Beam is a beam group (continuous multi-span assembly) or a plain beam
// whose own fields describe its single span.
type Beam struct {
	Span
	Grid             string   `json:"grid"`
	Type             string   `json:"type"`
	Spans            []Span   `json:"spans"`
	EducationalSteps []string `json:"educationalSteps"`
	GlobalMaxV       Quantity `json:"globalMaxV"`
	TotalLength      Quantity `json:"totalLength"`
}

// Group reports whether the beam carries explicit spans
func (b *Beam) Group() bool { return b.Spans != nil }

// AllSpans returns the spans of a group, or the beam itself as a single span
// when it has an id.
func (b *Beam) AllSpans() []Span {
	if b.Group() {
		return b.Spans
	}
	if b.ID != "" {
		return []Span{b.Span}
	}
	return nil
}

// Title names the beam on the calculation sheet
func (b *Beam) Title() string {
	switch {
	case b.Grid != "":
		return "Beam Grid: " + b.Grid
	case b.ID != "":
		return "Beam " + b.ID
	default:
		return "Structural Beam"
	}
}

// Stitched joins the spans' diagram points into one envelope along the
// whole beam. Each span's stations are offset by the lengths of the spans
// before it. The second result is the total length.
func (b *Beam) Stitched() ([]svgdraw.EnvelopePoint, float64) {
	var out []svgdraw.EnvelopePoint
	total := 0.0
	for _, s := range b.AllSpans() {
		for _, p := range s.DiagramPoints {
			p.X += total
			out = append(out, p)
		}
		total += s.Len()
	}
	return out, total
}

// HasDiagrams reports whether any span carries analysis stations
func (b *Beam) HasDiagrams() bool {
	for _, s := range b.AllSpans() {
		if s.DiagramPoints != nil {
			return true
		}
	}
	return false
}

// Dimensions is a member's cross-section in mm
type Dimensions struct {
	B Quantity `json:"b"`
	H Quantity `json:"h"`
}

// ColumnDesign is a column's reinforcement result
type ColumnDesign struct {
	MainInfo string   `json:"mainInfo"`
	Rho      Quantity `json:"rho"`
}

// Column is the analysis of one column
type Column struct {
	ID      string        `json:"id"`
	Dim     *Dimensions   `json:"dim"`
	LoadKN  Quantity      `json:"load_kN"`
	Logs    []string      `json:"logs"`
	Design  *ColumnDesign `json:"design"`
	RhoUser Quantity      `json:"rho_user"`
}

// Size returns b and h in mm with the 230 mm default
func (c *Column) Size() (b, h float64) {
	if c.Dim == nil {
		return 230, 230
	}
	return c.Dim.B.Or(230), c.Dim.H.Or(230)
}

// Foundation is the design of one pad footing
type Foundation struct {
	ID            string   `json:"id"`
	WidthMM       Quantity `json:"width_mm"`
	DepthMM       Quantity `json:"depth_mm"`
	Logs          []string `json:"logs"`
	Reinforcement string   `json:"reinforcement"`
}

// StairDesign is a flight's design calculation
type StairDesign struct {
	Logs     []string `json:"logs"`
	MainInfo string   `json:"mainInfo"`
}

// Stair is the analysis of one flight
type Stair struct {
	L        Quantity     `json:"L"`
	R        Quantity     `json:"R"`
	G        Quantity     `json:"G"`
	H        Quantity     `json:"h"`
	NumSteps Quantity     `json:"numSteps"`
	Design   *StairDesign `json:"design"`
}

// Drawing returns the inputs of the flight's section drawing
func (s *Stair) Drawing() *svgdraw.StairDesign {
	d := &svgdraw.StairDesign{
		Riser: s.R.Or(0),
		Going: s.G.Or(0),
		Waist: s.H.Or(0),
		Steps: int(s.NumSteps.Or(0)),
	}
	if s.Design != nil {
		d.MainInfo = s.Design.MainInfo
	}
	return d
}
