package drafting

import (
	"fmt"

	"github.com/alexiusacademia/gorcdraft/internal/floor"
)

// mergeMargin keeps beams lying on the union's border out of a slab merge.
const mergeMargin = 2

// MergeKind tells what a Merge call did.
type MergeKind int

const (
	// MergeBeamsPending means a PromptMergeID was opened for the selected beams.
	MergeBeamsPending MergeKind = iota
	// MergeSlabs means internal beams between the selected slabs were hidden.
	MergeSlabs
)

// MergeResult reports the outcome of Merge.
type MergeResult struct {
	Kind   MergeKind
	Hidden int
}

func (e *Engine) selectedOfKind(f *floor.Floor, k floor.Kind) []floor.Ref {
	var out []floor.Ref
	for _, r := range f.Selection.Refs() {
		if el := f.Structure.Get(r); el != nil && el.Kind() == k {
			out = append(out, r)
		}
	}
	return out
}

// Merge combines the selection of the active floor. Two or more beams open a
// prompt for their shared id; otherwise two or more slabs hide the beams
// between them. Geometry is never unioned.
func (e *Engine) Merge() (MergeResult, error) {
	if e.prompt != nil {
		return MergeResult{}, ErrPromptPending
	}
	f := e.ActiveFloor()

	if beams := e.selectedOfKind(f, floor.KindBeam); len(beams) >= 2 {
		first := f.Structure.Get(beams[0]).ElementID()
		e.openPrompt(&Prompt{
			Kind:    PromptMergeID,
			Floor:   f.ID,
			Message: fmt.Sprintf("Merging %d beams. Enter new ID for the merged beam:", len(beams)),
			Default: first,
			refs:    beams,
		})
		return MergeResult{Kind: MergeBeamsPending}, nil
	}

	slabs := e.selectedOfKind(f, floor.KindSlab)
	if len(slabs) < 2 {
		e.notice(f.ID, "Select at least 2 beams OR 2 panels to merge.")
		return MergeResult{}, ErrMergeSelection
	}

	hidden := 0
	for i := 0; i < len(slabs); i++ {
		for j := i + 1; j < len(slabs); j++ {
			union := f.Structure.Get(slabs[i]).Bounds().Union(f.Structure.Get(slabs[j]).Bounds())
			for _, b := range f.Structure.Beams() {
				if b.Type == floor.BeamHidden {
					continue
				}
				if union.ContainsInset(b.Bounds().Center(), mergeMargin) {
					b.Type = floor.BeamHidden
					hidden++
				}
			}
		}
	}
	if hidden == 0 {
		e.notice(f.ID, "Could not find separating beams. Ensure panels are adjacent.")
		return MergeResult{Kind: MergeSlabs}, ErrNoSeparatingBeams
	}
	e.notice(f.ID, fmt.Sprintf("Merged panels. Hidden %d internal beam(s). Click Save to update analysis.", hidden))
	e.emit(Event{Type: EventStructureChanged, Floor: f.ID})
	return MergeResult{Kind: MergeSlabs, Hidden: hidden}, nil
}

func (e *Engine) applyBeamMerge(f *floor.Floor, refs []floor.Ref, id string) {
	for i, r := range refs {
		b, ok := f.Structure.Get(r).(*floor.Beam)
		if !ok {
			continue
		}
		b.ID = id
		if i > 0 {
			b.Type = floor.BeamHidden
		}
	}
	e.notice(f.ID, fmt.Sprintf("Merged %d beams into %s.", len(refs), id))
	e.emit(Event{Type: EventStructureChanged, Floor: f.ID})
}

// Rename gives the single selected element a new id. Renaming a beam onto an
// id another beam already carries opens a PromptConfirmRename instead.
func (e *Engine) Rename(id string) error {
	if e.prompt != nil {
		return ErrPromptPending
	}
	if id == "" {
		return ErrEmptyID
	}
	f := e.ActiveFloor()
	refs := f.Selection.Refs()
	if len(refs) != 1 {
		return ErrRenameSelection
	}
	r := refs[0]
	el := f.Structure.Get(r)
	if el == nil {
		return ErrRenameSelection
	}
	if el.ElementID() == id {
		return nil
	}
	if el.Kind() == floor.KindBeam {
		for _, other := range f.Structure.FindByID(id, floor.KindBeam) {
			if other != r {
				e.openPrompt(&Prompt{
					Kind:    PromptConfirmRename,
					Floor:   f.ID,
					Message: fmt.Sprintf("Beam %s already exists. Rename %s to %s and merge them?", id, el.ElementID(), id),
					Default: "no",
					refs:    []floor.Ref{r},
					target:  id,
				})
				return nil
			}
		}
	}
	e.applyRename(f, r, id)
	return nil
}

func (e *Engine) applyRename(f *floor.Floor, r floor.Ref, id string) {
	el := f.Structure.Get(r)
	if el == nil {
		return
	}
	el.SetElementID(id)
	e.emit(Event{Type: EventStructureChanged, Floor: f.ID})
}

// SetBeamType retags every selected beam of the active floor.
func (e *Engine) SetBeamType(t floor.BeamType) error {
	f := e.ActiveFloor()
	beams := e.selectedOfKind(f, floor.KindBeam)
	if len(beams) == 0 {
		return ErrNoBeamsSelected
	}
	for _, r := range beams {
		f.Structure.Get(r).(*floor.Beam).Type = t
	}
	e.emit(Event{Type: EventStructureChanged, Floor: f.ID})
	return nil
}

// Inspector is the property panel model for the active selection.
type Inspector struct {
	Visible     bool
	ID          string
	TypeEnabled bool
	Type        floor.BeamType
}

// Inspect describes the active floor's selection for the property panel.
func (e *Engine) Inspect() Inspector {
	sel := e.ActiveFloor().Selected()
	if len(sel) == 0 {
		return Inspector{}
	}
	in := Inspector{Visible: true, ID: sel[0].ElementID()}
	if len(sel) > 1 {
		in.ID = fmt.Sprintf("(%d items)", len(sel))
	}
	in.TypeEnabled = true
	for _, el := range sel {
		if el.Kind() != floor.KindBeam {
			in.TypeEnabled = false
			break
		}
	}
	if in.TypeEnabled {
		in.Type = sel[0].(*floor.Beam).Type
		if in.Type == "" {
			in.Type = floor.BeamPrimary
		}
	}
	return in
}
