package syncer

import (
	"fmt"
	"sort"

	"github.com/alexiusacademia/gorcdraft/internal/client"
	"github.com/alexiusacademia/gorcdraft/internal/floor"
	"github.com/alexiusacademia/gorcdraft/internal/geometry"
)

// Ingest replaces f's computed layer with a service result given in meters.
// A floor without a scale adopts the result's.
func Ingest(f *floor.Floor, r *client.FloorResult) {
	scale := r.Scale
	if scale <= 0 {
		scale = f.Scale
	}
	if !f.HasScale() && scale > 0 {
		f.Scale = scale
	}
	toPx := func(m float64) float64 { return m * scale }

	st := floor.NewStructure()
	for _, s := range r.Slabs {
		st.Add(&floor.Slab{
			ID:    s.ID,
			Rect:  geometry.Rect{X: toPx(s.X), Y: toPx(s.Y), Width: toPx(s.Width), Height: toPx(s.Height)},
			Label: floor.SlabLabel(s.ID),
		})
	}
	for _, c := range r.Columns {
		st.Add(&floor.Column{
			ID:       c.ID,
			Center:   geometry.Pt(toPx(c.X), toPx(c.Y)),
			Rotation: c.Rotation,
			Size:     toPx(floor.ColumnSizeMeters),
		})
	}
	for _, b := range r.Beams {
		st.Add(&floor.Beam{
			ID:          b.ID,
			Start:       geometry.Pt(toPx(b.X1), toPx(b.Y1)),
			End:         geometry.Pt(toPx(b.X2), toPx(b.Y2)),
			Type:        floor.ParseBeamType(b.Type),
			StrokeWidth: toPx(floor.BeamStrokeMeters),
		})
	}
	f.ReplaceStructure(st)
}

// CollectStructure reads back f's computed elements in meters. Beams without
// a type are sent as Primary and slabs are renumbered.
func CollectStructure(f *floor.Floor) (client.Structure, error) {
	if !f.HasScale() {
		return client.Structure{}, fmt.Errorf("%s %w", f.ID, ErrScaleMissing)
	}
	toM := f.ToMeters
	st := client.Structure{
		Columns: []client.Column{},
		Beams:   []client.Beam{},
		Slabs:   []client.Slab{},
	}
	for _, c := range f.Structure.Columns() {
		st.Columns = append(st.Columns, client.Column{
			ID:       c.ID,
			X:        toM(c.Center.X),
			Y:        toM(c.Center.Y),
			Rotation: c.Rotation,
		})
	}
	for _, b := range f.Structure.Beams() {
		t := b.Type
		if t == "" {
			t = floor.BeamPrimary
		}
		st.Beams = append(st.Beams, client.Beam{
			ID:   b.ID,
			Type: string(t),
			X1:   toM(b.Start.X),
			Y1:   toM(b.Start.Y),
			X2:   toM(b.End.X),
			Y2:   toM(b.End.Y),
		})
	}
	for _, s := range f.Structure.Slabs() {
		st.Slabs = append(st.Slabs, client.Slab{
			ID:     s.ID,
			X:      toM(s.Rect.X),
			Y:      toM(s.Rect.Y),
			Width:  toM(s.Rect.Width),
			Height: toM(s.Rect.Height),
		})
	}
	RenumberSlabs(st.Slabs)
	return st, nil
}

// RenumberSlabs orders slabs top to bottom then left to right and names them
// S1..Sk in that order.
func RenumberSlabs(slabs []client.Slab) {
	sort.SliceStable(slabs, func(i, j int) bool {
		if slabs[i].Y != slabs[j].Y {
			return slabs[i].Y < slabs[j].Y
		}
		return slabs[i].X < slabs[j].X
	})
	for i := range slabs {
		slabs[i].ID = fmt.Sprintf("S%d", i+1)
	}
}
