package report

import (
	"fmt"

	"github.com/alexiusacademia/gorcdraft/internal/bs8110"
	"github.com/alexiusacademia/gorcdraft/internal/svgdraw"
)

// Section titles in report order
const (
	SectionRoofSlabs   = "1.0 ROOF SLAB ANALYSIS & DESIGN"
	SectionRoofBeams   = "2.0 ROOF BEAM ANALYSIS & DESIGN"
	SectionFloorSlabs  = "3.0 SUSPENDED SLAB ANALYSIS & DESIGN"
	SectionFloorBeams  = "4.0 FLOOR BEAM ANALYSIS & DESIGN"
	SectionStairs      = "5.0 STAIRCASE ANALYSIS & DESIGN"
	SectionColumns     = "6.0 COLUMN ANALYSIS & DESIGN"
	SectionFoundations = "7.0 FOUNDATION (BASE) DESIGN"
	SectionConclusion  = "8.0 PROJECT CONCLUSION"
)

// Placeholder rows for sections without data
const (
	NoSlabs       = "No slabs reported for this floor."
	NoBeams       = "No beams identified for design on this floor."
	NoStairs      = "No staircase identified for analysis."
	NoColumns     = "No columns reported."
	NoFoundations = "No foundations reported."
)

// Floors holds the report data of both levels; a nil floor had no data
type Floors struct {
	FF *Data
	GF *Data
}

// Any reports whether at least one floor has data
func (f Floors) Any() bool { return f.FF != nil || f.GF != nil }

// Build lays out the content of the whole project in report order: roof
// slabs and beams, floor slabs and beams, staircases of both levels,
// columns, foundations and the closing summary. A floor without data has
// its sections left out.
func Build(f Floors) []Block {
	b := &builder{}
	if f.FF != nil {
		b.header(SectionRoofSlabs)
		b.slabs(f.FF.Slabs)
		b.header(SectionRoofBeams)
		b.beams(f.FF.DesignBeams())
	}
	if f.GF != nil {
		b.header(SectionFloorSlabs)
		b.slabs(f.GF.Slabs)
		b.header(SectionFloorBeams)
		b.beams(f.GF.DesignBeams())
	}
	if f.Any() {
		b.header(SectionStairs)
		var stairs []Stair
		if f.GF != nil {
			stairs = append(stairs, f.GF.Stairs...)
		}
		if f.FF != nil {
			stairs = append(stairs, f.FF.Stairs...)
		}
		if len(stairs) == 0 {
			b.row("", NoStairs, "")
		}
		for i := range stairs {
			b.stair(&stairs[i])
		}

		b.header(SectionColumns)
		var cols []Column
		if f.GF != nil {
			cols = f.GF.Columns
		}
		if len(cols) == 0 && f.FF != nil {
			cols = f.FF.Columns
		}
		if len(cols) == 0 {
			b.row("", NoColumns, "")
		}
		for i := range cols {
			b.column(&cols[i])
		}

		b.header(SectionFoundations)
		var bases []Foundation
		if f.GF != nil {
			bases = f.GF.Foundations
		}
		if len(bases) == 0 {
			b.row("", NoFoundations, "")
		}
		for i := range bases {
			b.foundation(&bases[i])
		}
	}
	b.header(SectionConclusion)
	b.row("Summary", "Total structural project analyzed. Loads traced from Roof to Foundation. All members compliant with BS 8110-1:1997.", "PASSED")
	return b.blocks
}

type builder struct {
	blocks []Block
}

func (b *builder) add(bl Block) {
	b.blocks = append(b.blocks, bl)
}

func (b *builder) header(title string) {
	b.add(SectionHeader{Title: title})
}

func (b *builder) row(ref, calc, out string) {
	b.add(Row{Ref: ref, Calc: calc, Out: out})
}

func (b *builder) visual(d svgdraw.Drawing, label string) {
	b.add(Visual{Label: label, Drawing: d})
}

func (b *builder) logs(lines []string) {
	for _, bl := range ParseLogs(lines) {
		b.add(bl)
	}
}

func (b *builder) slabs(slabs []Slab) {
	if len(slabs) == 0 {
		b.row("", NoSlabs, "")
	}
	for i := range slabs {
		b.slab(&slabs[i])
	}
}

func (b *builder) slab(s *Slab) {
	kind := s.Type
	if kind == "" {
		kind = "Slab"
	}
	b.row("", fmt.Sprintf("**Panel %s** (%sm x %sm - %s)", s.ID, s.Lx.Text("?"), s.Ly.Text("?"), kind), "")

	b.row(bs8110.Code+" "+bs8110.ClauseSlabLoad, "Calculate Ultimate Load: $n = 1.4 G_k + 1.6 Q_k$", "")
	ultimate := s.Loads.Ultimate.Text("?")
	if !s.Loads.Ultimate.Set() && s.Loads.Dead.Valid && s.Loads.Live.Valid {
		ultimate = fmt.Sprintf("%.2f", bs8110.UltimateLoad(s.Loads.Dead.Value, s.Loads.Live.Value))
	}
	b.row("", fmt.Sprintf("Input: $G_k = %s kPa, Q_k = %s kPa$", s.Loads.Dead.Text("?"), s.Loads.Live.Text("?")), fmt.Sprintf("$n = %s kPa$", ultimate))

	b.logs(s.Logs)
	moments := s.Moments
	if s.Design != nil {
		b.logs(s.Design.Logs)
		if len(moments) == 0 {
			moments = s.Design.Moments
		}
	}
	for _, m := range moments {
		ref := m.Ref
		if ref == "" {
			ref = bs8110.TableMoment
		}
		b.row(ref, fmt.Sprintf(`Design Moment %s: $M = \beta_s n L_x^2$`, m.ID), m.M.Text("?")+" kNm")
		b.row("", "Provided Steel: "+m.Provided, "OK")
	}

	panel := int(s.PanelIndex.Or(bs8110.DefaultPanel))
	b.visual(svgdraw.SlabDetail(s.Lx.Value, s.Ly.Value, panel), "")
}

// spanLoad picks the uniform load drawn on a span: the span's result, its
// design load, its own udl, then the group's udl.
func spanLoad(s *Span, group *Beam) float64 {
	switch {
	case s.W.Valid && s.W.Value > 0:
		return s.W.Value
	case s.Design != nil && s.Design.W.Valid:
		return s.Design.W.Value
	case s.UDL.Valid && s.UDL.Value > 0:
		return s.UDL.Value
	case group.UDL.Valid && group.UDL.Value > 0:
		return group.UDL.Value
	}
	return 0
}

func spanName(s *Span, idx int) string {
	if s.ID != "" {
		return s.ID
	}
	return fmt.Sprintf("Span %d", idx+1)
}

func (b *builder) beams(beams []Beam) {
	if len(beams) == 0 {
		b.row("", NoBeams, "")
	}
	for i := range beams {
		b.beam(&beams[i])
	}
}

func (b *builder) beam(bm *Beam) {
	spans := bm.AllSpans()
	b.row("", "**"+bm.Title()+"**", "")
	method := "Simple Support Analysis"
	if bm.EducationalSteps != nil {
		method = "Moment Distribution Method"
	}
	b.row("BS 8110 "+bs8110.ClauseBeams, "Analysis Method: "+method, "")

	b.row("", "**3.4.1 LOADING ANALYSIS**", "")
	for i := range spans {
		s := &spans[i]
		name := spanName(s, i)
		b.row("", "**"+name+"**", "")
		b.logs(s.LoadLogs)

		loads := append([]svgdraw.PointLoad(nil), s.PointLoads...)
		var areas []svgdraw.LoadShape
		for _, sh := range s.Shapes {
			switch sh.Type {
			case "point":
				loads = append(loads, svgdraw.PointLoad{P: sh.Val.Value, A: sh.Start.Value})
			case "slab-tri", "slab-trap":
				ls := svgdraw.LoadShape{Type: sh.Type}
				if sh.Geom != nil {
					ls.Lx = sh.Geom.Lx.Value
				}
				areas = append(areas, ls)
			}
		}
		if len(areas) > 0 {
			b.visual(svgdraw.SlabLoadGeometry(s.Len(), areas), "Load Area Geometry - "+name)
		}
		b.visual(svgdraw.BeamLoading(s.Len(), spanLoad(s, bm), loads), "Loading Diagram - "+name)
	}

	if len(bm.EducationalSteps) > 0 {
		b.row("", "**3.4.2 STRUCTURAL ANALYSIS: MDM CONVERGENCE (BS 8110)**", "")
		b.logs(bm.EducationalSteps)
	} else if len(bm.Logs) > 0 {
		b.logs(bm.Logs)
	}

	if bm.HasDiagrams() {
		b.row("", "**3.4.3 ANALYSIS DIAGRAMS (ENVELOPE)**", "")
		pts, total := bm.Stitched()
		b.visual(svgdraw.Envelope(pts, total, svgdraw.BMD), "Bending Moment Diagram (BMD)")
		b.visual(svgdraw.Envelope(pts, total, svgdraw.SFD), "Shear Force Diagram (SFD)")
	}

	b.row("", "**3.4.4 REINFORCEMENT DESIGN CALCULATIONS**", "")
	for i := range spans {
		s := &spans[i]
		name := spanName(s, i)
		b.row("", "*Design for "+name+":*", "")

		design := s.Design
		if design == nil {
			design = bm.Design
		}
		if design != nil {
			b.logs(design.Logs)
			b.visual(beamSection(s, bm, design).Draw(), "REINFORCEMENT DETAIL: "+name)

			status, ratio := "FAIL", 0.0
			if d := design.Deflection; d != nil {
				if d.OK {
					status = "PASS"
				}
				ratio = d.Ratio.Value
			}
			b.row("", "Status: "+status, fmt.Sprintf("Ratio: %.2f", ratio))
		}
		if bm.Group() && s.Logs != nil {
			b.logs(s.Logs)
		}
	}
}

func beamSection(s *Span, bm *Beam, d *BeamDesign) svgdraw.BeamSection {
	sec := svgdraw.BeamSection{
		Width:    s.BMM.Or(bm.BMM.Or(svgdraw.DefaultBeamWidth)),
		Depth:    s.HMM.Or(bm.HMM.Or(svgdraw.DefaultBeamDepth)),
		Flange:   s.HF.Or(bm.HF.Or(svgdraw.DefaultFlange)),
		MainBars: svgdraw.DefaultBeamBars,
		Links:    "Y8@200",
	}
	if d.Flexure != nil && d.Flexure.Bars != "" {
		sec.MainBars = d.Flexure.Bars
	}
	if d.Shear != nil && d.Shear.Links != "" {
		sec.Links = d.Shear.Links
	}
	shape := s.BeamType
	if shape == "" {
		shape = bm.BeamType
	}
	sec.Shape = svgdraw.ParseSectionShape(shape)
	return sec
}

func (b *builder) stair(s *Stair) {
	b.row("", fmt.Sprintf("**Staircase Analysis** (Span = %sm)", s.L.Text("3.5")), "")
	main := "Y12@150"
	if s.Design != nil {
		b.logs(s.Design.Logs)
		if s.Design.MainInfo != "" {
			main = s.Design.MainInfo
		}
	}
	b.visual(svgdraw.StairSection(s.Drawing()), "")
	b.row(bs8110.Code, "Reinforcement (Main): "+main, "OK")
}

func (b *builder) column(c *Column) {
	w, h := c.Size()
	b.row("", fmt.Sprintf("**Column %s** (%gx%gmm)", c.ID, w, h), "")
	b.row(bs8110.ClauseColumns, fmt.Sprintf("Ultimate Axial Load $N_u = %s kN$", c.LoadKN.Text("?")), "")
	b.logs(c.Logs)
	if c.Dim != nil && c.Design != nil {
		sec := svgdraw.ColumnSection{Width: w, Depth: h, MainBars: c.Design.MainInfo, Links: "Y8@200"}
		b.visual(sec.Draw(), "")
		b.row("", "Total Steel: "+c.Design.MainInfo, "PASS")
	}
}

func (b *builder) foundation(f *Foundation) {
	b.row("", fmt.Sprintf("**Footing %s** (%sx%sx%smm)", f.ID, f.WidthMM.Text("?"), f.WidthMM.Text("?"), f.DepthMM.Text("?")), "")
	b.row(bs8110.ClauseFoundation, `Check Soil Pressure: $P_{svc} \le q_{allow}$`, "")
	b.logs(f.Logs)
	b.visual(svgdraw.FootingSection(f.WidthMM.Or(1200), f.DepthMM.Or(450)), "")
	reinf := f.Reinforcement
	if reinf == "" {
		reinf = "TBD"
	}
	b.row("", reinf, "OK")
}
