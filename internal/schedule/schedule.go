// Package schedule turns a floor's analysis snapshot into beam and slab
// schedules, applies tabular edits to it and exports it as a workbook.
package schedule

import (
	"fmt"
	"math"
	"sort"

	"github.com/alexiusacademia/gorcdraft/internal/client"
	"github.com/alexiusacademia/gorcdraft/internal/floor"
)

// UnknownGridRef is shown when the snapshot carries no grid.
const UnknownGridRef = "??"

// BeamRow is one line of the beam schedule. Index addresses the beam in the
// snapshot it was built from.
type BeamRow struct {
	Index  int
	ID     string
	Type   floor.BeamType
	Length float64 // m
	From   string
	To     string
}

// SlabRow is one line of the slab schedule.
type SlabRow struct {
	Index  int
	ID     string
	Width  float64 // m
	Height float64 // m
	Area   float64 // m²
	Ratio  float64
	Type   floor.SlabType
}

// Summary totals a floor.
type Summary struct {
	Beams int
	Slabs int
	Area  float64 // m²
}

// AreaText formats the total slab area.
func (s Summary) AreaText() string {
	return fmt.Sprintf("%.2f m²", s.Area)
}

// Schedule is the tabular view of one floor.
type Schedule struct {
	TaskID  string
	Floor   floor.ID
	Beams   []BeamRow
	Slabs   []SlabRow
	Summary Summary
}

// Build sorts the snapshot's beams (Primary first, then by id in natural
// order) and derives both schedules. Row indices refer to the sorted order,
// so edits made through them land on the right element.
func Build(taskID string, id floor.ID, snap *client.Snapshot) *Schedule {
	s := &Schedule{TaskID: taskID, Floor: id}
	if snap == nil {
		return s
	}
	SortBeams(snap.Beams)

	for i, b := range snap.Beams {
		s.Beams = append(s.Beams, BeamRow{
			Index:  i,
			ID:     b.ID,
			Type:   floor.ParseBeamType(b.Type),
			Length: beamLength(b),
			From:   GridRef(b.X1, b.Y1, snap.Grid),
			To:     GridRef(b.X2, b.Y2, snap.Grid),
		})
	}
	for i, sl := range snap.Slabs {
		s.Slabs = append(s.Slabs, SlabRow{
			Index:  i,
			ID:     sl.ID,
			Width:  sl.Width,
			Height: sl.Height,
			Area:   sl.Width * sl.Height,
			Ratio:  aspectRatio(sl.Width, sl.Height),
			Type:   floor.ClassifySlab(sl.Width, sl.Height),
		})
	}
	s.Summary = Summarize(snap.Beams, snap.Slabs)
	return s
}

// Summarize counts beams and slabs and totals slab area.
func Summarize(beams []client.Beam, slabs []client.Slab) Summary {
	sum := Summary{Beams: len(beams), Slabs: len(slabs)}
	for _, sl := range slabs {
		sum.Area += sl.Width * sl.Height
	}
	return sum
}

// SortBeams puts Primary beams first and orders ids naturally (B2 before B10).
func SortBeams(beams []client.Beam) {
	sort.SliceStable(beams, func(i, j int) bool {
		pi := floor.ParseBeamType(beams[i].Type) == floor.BeamPrimary
		pj := floor.ParseBeamType(beams[j].Type) == floor.BeamPrimary
		if pi != pj {
			return pi
		}
		return NaturalLess(beams[i].ID, beams[j].ID)
	})
}

// GridRef names the grid intersection nearest to (x, y), e.g. "A-1".
func GridRef(x, y float64, g *client.Grid) string {
	if g == nil || len(g.XLines) == 0 || len(g.YLines) == 0 {
		return UnknownGridRef
	}
	return nearestLine(g.XLines, x).Label + "-" + nearestLine(g.YLines, y).Label
}

func nearestLine(lines []client.GridLine, v float64) client.GridLine {
	best, bestDist := lines[0], math.Inf(1)
	for _, l := range lines {
		if d := math.Abs(l.Val - v); d < bestDist {
			best, bestDist = l, d
		}
	}
	return best
}

func beamLength(b client.Beam) float64 {
	return math.Hypot(b.X2-b.X1, b.Y2-b.Y1)
}

func aspectRatio(w, h float64) float64 {
	short := math.Min(w, h)
	if short <= 0 {
		return 0
	}
	return math.Max(w, h) / short
}
