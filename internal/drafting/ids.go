package drafting

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// IDKind names the element family an id is minted for.
type IDKind int

const (
	IDWall IDKind = iota
	IDColumn
	IDBeam
	IDSlab
)

// IDFunc mints a new element id.
type IDFunc func(kind IDKind) string

// RandomIDs mints ids from random UUIDs. Slab ids carry four digits so that
// their labels read like P0427.
func RandomIDs(kind IDKind) string {
	u := uuid.New()
	switch kind {
	case IDWall:
		return "w_" + u.String()[:8]
	case IDColumn:
		return "col_user_" + u.String()[:8]
	case IDBeam:
		return "beam_user_" + u.String()[:8]
	case IDSlab:
		n := binary.BigEndian.Uint32(u[:4]) % 10000
		return fmt.Sprintf("S_user_%04d", n)
	}
	return u.String()
}

// SequentialIDs returns a deterministic IDFunc, mostly for tests and scripted sessions.
func SequentialIDs() IDFunc {
	counters := map[IDKind]int{}
	return func(kind IDKind) string {
		counters[kind]++
		n := counters[kind]
		switch kind {
		case IDWall:
			return fmt.Sprintf("w_%d", n)
		case IDColumn:
			return fmt.Sprintf("col_user_%d", n)
		case IDBeam:
			return fmt.Sprintf("beam_user_%d", n)
		case IDSlab:
			return fmt.Sprintf("S_user_%04d", n)
		}
		return fmt.Sprintf("id_%d", n)
	}
}
