package floor

import "github.com/alexiusacademia/gorcdraft/internal/geometry"

// Ref is a stable handle to an element in a Structure. User-visible ids may
// repeat (merged beams share one), refs never do.
type Ref uint64

// Structure is the owned arena of computed structural elements.
type Structure struct {
	next  Ref
	order []Ref
	items map[Ref]Element
}

// NewStructure returns an empty arena.
func NewStructure() *Structure {
	return &Structure{items: make(map[Ref]Element)}
}

// Add stores e and returns its handle.
func (s *Structure) Add(e Element) Ref {
	s.next++
	r := s.next
	s.items[r] = e
	s.order = append(s.order, r)
	return r
}

// Get returns the element behind r, or nil.
func (s *Structure) Get(r Ref) Element {
	return s.items[r]
}

// Remove deletes r and reports whether it existed.
func (s *Structure) Remove(r Ref) bool {
	if _, ok := s.items[r]; !ok {
		return false
	}
	delete(s.items, r)
	for i, o := range s.order {
		if o == r {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of elements.
func (s *Structure) Len() int {
	return len(s.order)
}

// Refs returns all handles in insertion order.
func (s *Structure) Refs() []Ref {
	out := make([]Ref, len(s.order))
	copy(out, s.order)
	return out
}

// OfKind returns the handles of one element kind in insertion order.
func (s *Structure) OfKind(k Kind) []Ref {
	var out []Ref
	for _, r := range s.order {
		if s.items[r].Kind() == k {
			out = append(out, r)
		}
	}
	return out
}

// Columns returns all columns in insertion order.
func (s *Structure) Columns() []*Column {
	var out []*Column
	for _, r := range s.order {
		if c, ok := s.items[r].(*Column); ok {
			out = append(out, c)
		}
	}
	return out
}

// Beams returns all beams in insertion order.
func (s *Structure) Beams() []*Beam {
	var out []*Beam
	for _, r := range s.order {
		if b, ok := s.items[r].(*Beam); ok {
			out = append(out, b)
		}
	}
	return out
}

// Slabs returns all slabs in insertion order.
func (s *Structure) Slabs() []*Slab {
	var out []*Slab
	for _, r := range s.order {
		if sl, ok := s.items[r].(*Slab); ok {
			out = append(out, sl)
		}
	}
	return out
}

// FindByID returns the handles whose element carries id, optionally limited to one kind.
func (s *Structure) FindByID(id string, kinds ...Kind) []Ref {
	var out []Ref
	for _, r := range s.order {
		e := s.items[r]
		if e.ElementID() != id {
			continue
		}
		if len(kinds) > 0 && !hasKind(kinds, e.Kind()) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func hasKind(kinds []Kind, k Kind) bool {
	for _, kk := range kinds {
		if kk == k {
			return true
		}
	}
	return false
}

// pickOrder is the drawing stack from the top: columns over beams over slabs.
var pickOrder = [...]Kind{KindColumn, KindBeam, KindSlab}

// HitTest returns the topmost element under p, limited to the given kinds when any are passed.
// Within a kind the most recently added element wins.
func (s *Structure) HitTest(p geometry.Point, tol float64, kinds ...Kind) (Ref, bool) {
	for _, k := range pickOrder {
		if len(kinds) > 0 && !hasKind(kinds, k) {
			continue
		}
		for i := len(s.order) - 1; i >= 0; i-- {
			r := s.order[i]
			e := s.items[r]
			if e.Kind() == k && e.Hit(p, tol) {
				return r, true
			}
		}
	}
	return 0, false
}

// Intersecting returns, in insertion order, the elements whose bounds intersect box.
func (s *Structure) Intersecting(box geometry.Rect) []Ref {
	var out []Ref
	for _, r := range s.order {
		if s.items[r].Bounds().Intersects(box) {
			out = append(out, r)
		}
	}
	return out
}
