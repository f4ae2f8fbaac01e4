package bs8110

// LoadCombination represents a BS 8110 ultimate limit state load combination
// Based on BS 8110-1:1997 Table 2.1 - Load combinations and values of γf
type LoadCombination struct {
	ID          string
	Description string
	// Partial safety factors for each load type
	Dead float64 // Gk - characteristic dead load
	Live float64 // Qk - characteristic imposed load
	Wind float64 // Wk - characteristic wind load
}

// LoadCombinations lists the ultimate combinations of Table 2.1 (adverse factors)
var LoadCombinations = []LoadCombination{
	{
		ID:          "1",
		Description: "1.4Gk + 1.6Qk",
		Dead:        1.4,
		Live:        1.6,
	},
	{
		ID:          "2",
		Description: "1.4Gk + 1.4Wk",
		Dead:        1.4,
		Wind:        1.4,
	},
	{
		ID:          "3",
		Description: "1.2Gk + 1.2Qk + 1.2Wk",
		Dead:        1.2,
		Live:        1.2,
		Wind:        1.2,
	},
}

// GravityCombination is the dead plus imposed combination used for slabs, beams and stairs
var GravityCombination = LoadCombinations[0]

// Loads holds characteristic loads of one load type each
type Loads struct {
	Dead float64 // Gk (kPa, kN/m or kN)
	Live float64 // Qk
	Wind float64 // Wk
}

// Factored applies the combination's partial safety factors
func (lc LoadCombination) Factored(l Loads) float64 {
	return lc.Dead*l.Dead + lc.Live*l.Live + lc.Wind*l.Wind
}

// UltimateLoad returns n = 1.4Gk + 1.6Qk
func UltimateLoad(gk, qk float64) float64 {
	return GravityCombination.Factored(Loads{Dead: gk, Live: qk})
}

// Governing finds the largest factored load among the combinations
func Governing(l Loads, combinations []LoadCombination) (float64, LoadCombination) {
	var maxLoad float64
	var governing LoadCombination

	for _, combo := range combinations {
		n := combo.Factored(l)
		if n > maxLoad {
			maxLoad = n
			governing = combo
		}
	}

	return maxLoad, governing
}
