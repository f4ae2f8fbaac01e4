package schedule

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/alexiusacademia/gorcdraft/internal/client"
	"github.com/alexiusacademia/gorcdraft/internal/floor"
)

var ErrNoRow = errors.New("no such row")

// Dim is an editable slab dimension.
type Dim int

const (
	DimWidth Dim = iota
	DimHeight
)

// ParseDim accepts "width"/"w" and "height"/"h".
func ParseDim(s string) (Dim, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "width", "w":
		return DimWidth, nil
	case "height", "h":
		return DimHeight, nil
	}
	return 0, fmt.Errorf("unknown slab dimension %q", s)
}

func beamAt(snap *client.Snapshot, idx int) (*client.Beam, error) {
	if snap == nil || idx < 0 || idx >= len(snap.Beams) {
		return nil, fmt.Errorf("beam %d: %w", idx, ErrNoRow)
	}
	return &snap.Beams[idx], nil
}

func slabAt(snap *client.Snapshot, idx int) (*client.Slab, error) {
	if snap == nil || idx < 0 || idx >= len(snap.Slabs) {
		return nil, fmt.Errorf("slab %d: %w", idx, ErrNoRow)
	}
	return &snap.Slabs[idx], nil
}

// RenameBeam sets a beam's id.
func RenameBeam(snap *client.Snapshot, idx int, id string) error {
	b, err := beamAt(snap, idx)
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

// SetBeamType retags a beam; unknown tags become Primary.
func SetBeamType(snap *client.Snapshot, idx int, t string) error {
	b, err := beamAt(snap, idx)
	if err != nil {
		return err
	}
	b.Type = string(floor.ParseBeamType(t))
	return nil
}

// ResizeBeam moves a beam's end point along its direction so the beam is
// length meters long, keeping the start point. Non-positive lengths and
// zero-length beams are left alone; applied reports whether anything changed.
func ResizeBeam(snap *client.Snapshot, idx int, length float64) (applied bool, err error) {
	b, err := beamAt(snap, idx)
	if err != nil {
		return false, err
	}
	old := math.Hypot(b.X2-b.X1, b.Y2-b.Y1)
	if !(length > 0) || !(old > 0) {
		return false, nil
	}
	ratio := length / old
	b.X2 = b.X1 + (b.X2-b.X1)*ratio
	b.Y2 = b.Y1 + (b.Y2-b.Y1)*ratio
	return true, nil
}

// RenameSlab sets a slab's id.
func RenameSlab(snap *client.Snapshot, idx int, id string) error {
	s, err := slabAt(snap, idx)
	if err != nil {
		return err
	}
	s.ID = id
	return nil
}

// SetSlabDim changes one slab dimension. Only positive values are applied.
func SetSlabDim(snap *client.Snapshot, idx int, dim Dim, v float64) (applied bool, err error) {
	s, err := slabAt(snap, idx)
	if err != nil {
		return false, err
	}
	if !(v > 0) {
		return false, nil
	}
	switch dim {
	case DimWidth:
		s.Width = v
	case DimHeight:
		s.Height = v
	default:
		return false, nil
	}
	return true, nil
}
