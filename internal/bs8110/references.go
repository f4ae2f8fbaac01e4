package bs8110

import "strings"

// BS 8110-1:1997 references quoted in the calculation sheets
const (
	Code             = "BS8110"
	TableMoment      = "Table 3.14" // moment coefficients, two-way slabs
	TableShear       = "Table 3.8"  // vc design concrete shear stress
	TableDeflection  = "Table 3.10" // span/effective depth ratios
	ClauseSteelArea  = "Cl 3.12.10" // minimum/maximum reinforcement
	ClauseSpacing    = "Cl 3.12.11" // bar spacing
	ClauseSlabLoad   = "Cl 3.5"
	ClauseColumns    = "Cl 3.8"
	ClauseFoundation = "Cl 3.11"
	ClauseStairs     = "Cl 3.10"
	ClauseBeams      = "Cl 3.4"
)

type keywordRef struct {
	keywords []string
	ref      string
}

// order matters: the first matching keyword wins
var keywordRefs = []keywordRef{
	{[]string{"moment"}, TableMoment},
	{[]string{"shear"}, TableShear},
	{[]string{"defl"}, TableDeflection},
	{[]string{"steel", "area"}, ClauseSteelArea},
	{[]string{"spacing"}, ClauseSpacing},
	{[]string{"formula"}, Code},
}

// ReferenceFor picks the clause a free-text calculation line most likely
// refers to. Lines that mention none of the keywords get no reference.
func ReferenceFor(line string) string {
	lower := strings.ToLower(line)
	for _, kr := range keywordRefs {
		for _, kw := range kr.keywords {
			if strings.Contains(lower, kw) {
				return kr.ref
			}
		}
	}
	return ""
}
