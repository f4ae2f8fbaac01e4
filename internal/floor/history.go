package floor

import (
	"encoding/json"
	"fmt"
)

// History is an append-only list of serialized Draft snapshots with a cursor.
// Redo is not supported: undo only ever walks the cursor backwards.
type History struct {
	entries [][]byte
	cursor  int
}

// NewHistory returns a history seeded with the given baseline draft.
func NewHistory(baseline Draft) *History {
	h := &History{cursor: -1}
	// marshalling a Draft cannot fail
	_ = h.Push(baseline)
	return h
}

// Push appends a deep copy of d and moves the cursor to it.
func (h *History) Push(d Draft) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("snapshot draft: %w", err)
	}
	h.entries = append(h.entries, raw)
	h.cursor = len(h.entries) - 1
	return nil
}

// Undo steps the cursor back and returns the draft stored there.
// It reports false, leaving the cursor alone, when already at the first entry.
func (h *History) Undo() (Draft, bool) {
	if h.cursor <= 0 {
		return Draft{}, false
	}
	h.cursor--
	var d Draft
	if err := json.Unmarshal(h.entries[h.cursor], &d); err != nil {
		h.cursor++
		return Draft{}, false
	}
	return d, true
}

// Redo is unsupported and always reports false.
func (h *History) Redo() (Draft, bool) {
	return Draft{}, false
}

// Len returns the number of stored snapshots.
func (h *History) Len() int { return len(h.entries) }

// Cursor returns the index of the current snapshot.
func (h *History) Cursor() int { return h.cursor }
