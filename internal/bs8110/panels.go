package bs8110

// Edges of a rectangular slab panel
type Edge int

const (
	EdgeTop Edge = iota
	EdgeRight
	EdgeBottom
	EdgeLeft
)

// PanelCase is one support condition of BS 8110 Table 3.14
type PanelCase struct {
	Index      int
	Name       string
	Continuous [4]bool // indexed by Edge
}

// PanelCases lists the nine restrained-slab support conditions
var PanelCases = []PanelCase{
	{0, "Interior panel", [4]bool{true, true, true, true}},
	{1, "One short edge discontinuous", [4]bool{true, false, true, true}},
	{2, "One long edge discontinuous", [4]bool{false, true, true, true}},
	{3, "Two adjacent edges discontinuous", [4]bool{false, false, true, true}},
	{4, "Two short edges discontinuous", [4]bool{true, false, true, false}},
	{5, "Two long edges discontinuous", [4]bool{false, true, false, true}},
	{6, "Three edges discontinuous (one long edge continuous)", [4]bool{false, false, false, true}},
	{7, "Three edges discontinuous (one short edge continuous)", [4]bool{false, true, false, false}},
	{8, "Four edges discontinuous", [4]bool{false, false, false, false}},
}

// DefaultPanel is assumed when the analysis does not report a panel case
const DefaultPanel = 1

// Panel returns the case for an index; out-of-range indices are treated as
// fully discontinuous
func Panel(index int) PanelCase {
	if index < 0 || index >= len(PanelCases) {
		return PanelCases[len(PanelCases)-1]
	}
	return PanelCases[index]
}
