package client

import (
	"github.com/alexiusacademia/gorcdraft/internal/bs8110"
	"github.com/alexiusacademia/gorcdraft/internal/floor"
)

// Geometry is a floor's drafted data in canvas pixels plus its scale.
type Geometry struct {
	Walls  []floor.Wall  `json:"walls"`
	Stairs []floor.Stair `json:"stairs"`
	Scale  float64       `json:"scale"` // px per meter
}

// FloorGeometry is one floor of a submission.
type FloorGeometry struct {
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	Geometry Geometry `json:"geometry"`
}

// SubmitRequest is keyed by floor; undrafted floors are absent.
type SubmitRequest struct {
	Floors map[floor.ID]FloorGeometry `json:"floors"`
}

// Column positions are in meters.
type Column struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
}

type Beam struct {
	ID   string  `json:"id"`
	Type string  `json:"type"`
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
	X2   float64 `json:"x2"`
	Y2   float64 `json:"y2"`
}

type Slab struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FloorResult is the computed structural model of one floor.
type FloorResult struct {
	Scale   float64  `json:"scale"`
	Columns []Column `json:"columns"`
	Beams   []Beam   `json:"beams"`
	Slabs   []Slab   `json:"slabs"`
}

// SubmitResponse carries the analysis task id and the per-floor results.
type SubmitResponse struct {
	TaskID  string                    `json:"taskId"`
	Results map[floor.ID]*FloorResult `json:"results"`
}

// Structure is the full replacement element set of a floor, in meters.
type Structure struct {
	Columns  []Column         `json:"columns"`
	Beams    []Beam           `json:"beams"`
	Slabs    []Slab           `json:"slabs"`
	Settings *bs8110.Settings `json:"settings,omitempty"`
}

// UpdateRequest is the body of a structural edit save.
type UpdateRequest struct {
	TaskID    string    `json:"taskId"`
	Floor     floor.ID  `json:"floor"`
	Structure Structure `json:"structure"`
}

// GridLine is one labelled structural grid line at a coordinate in meters.
type GridLine struct {
	Val   float64 `json:"val"`
	Label string  `json:"label"`
}

// Grid holds the vertical (x) and horizontal (y) grid lines.
type Grid struct {
	XLines []GridLine `json:"xLines"`
	YLines []GridLine `json:"yLines"`
}

// Snapshot is the stored analysis state of a floor.
type Snapshot struct {
	TaskID   string           `json:"taskId,omitempty"`
	Floor    floor.ID         `json:"floor,omitempty"`
	Scale    float64          `json:"scale"`
	Grid     *Grid            `json:"grid,omitempty"`
	Columns  []Column         `json:"columns"`
	Beams    []Beam           `json:"beams"`
	Slabs    []Slab           `json:"slabs"`
	Stairs   []floor.Stair    `json:"stairs"`
	Walls    []floor.Wall     `json:"walls"`
	Settings *bs8110.Settings `json:"settings,omitempty"`
}

// SnapshotRequest is the body of a snapshot save.
type SnapshotRequest struct {
	TaskID   string   `json:"taskId"`
	Floor    floor.ID `json:"floor"`
	Snapshot Snapshot `json:"snapshot"`
}
