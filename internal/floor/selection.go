package floor

// Selection is an ordered, duplicate-free set of structural element handles.
type Selection struct {
	refs []Ref
}

// Refs returns the selected handles in selection order.
func (s *Selection) Refs() []Ref {
	out := make([]Ref, len(s.refs))
	copy(out, s.refs)
	return out
}

func (s *Selection) Len() int { return len(s.refs) }

func (s *Selection) Empty() bool { return len(s.refs) == 0 }

// Contains reports whether r is selected.
func (s *Selection) Contains(r Ref) bool {
	return s.index(r) >= 0
}

func (s *Selection) index(r Ref) int {
	for i, o := range s.refs {
		if o == r {
			return i
		}
	}
	return -1
}

// Set replaces the selection, dropping duplicates.
func (s *Selection) Set(refs ...Ref) {
	s.refs = s.refs[:0]
	for _, r := range refs {
		if !s.Contains(r) {
			s.refs = append(s.refs, r)
		}
	}
}

// Toggle adds r if absent, removes it otherwise.
func (s *Selection) Toggle(r Ref) {
	if i := s.index(r); i >= 0 {
		s.refs = append(s.refs[:i], s.refs[i+1:]...)
		return
	}
	s.refs = append(s.refs, r)
}

// Remove drops r from the selection if present.
func (s *Selection) Remove(r Ref) {
	if i := s.index(r); i >= 0 {
		s.refs = append(s.refs[:i], s.refs[i+1:]...)
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.refs = nil
}

// Prune drops handles that no longer resolve in st.
func (s *Selection) Prune(st *Structure) {
	kept := s.refs[:0]
	for _, r := range s.refs {
		if st.Get(r) != nil {
			kept = append(kept, r)
		}
	}
	s.refs = kept
}
