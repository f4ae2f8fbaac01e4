package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gorcdraft/internal/bs8110"
	"github.com/spf13/cobra"
)

var (
	// Characteristic loads (kPa, kN/m or kN)
	loadDead float64
	loadLive float64
	loadWind float64

	// Slab loads from settings
	loadSlab      bool
	loadThickness float64
	loadFinish    float64
	loadImposed   float64
	loadDensity   float64

	loadShowAll bool
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Calculate the ultimate load using BS 8110 load combinations",
	Long: `Calculate the ultimate design load n from characteristic loads using the
BS 8110-1 Table 2.1 load combinations.

Load Types:
  Gk - Dead load
  Qk - Imposed load
  Wk - Wind load

With --slab the dead and imposed loads of a slab panel are derived from the
slab thickness, concrete density and finishes the analysis uses.

Examples:
  # Dead and imposed load
  gorcdraft load --dead 5.1 --imposed 1.5

  # With wind, listing every combination
  gorcdraft load --dead 12 --imposed 6 --wind 4 --all

  # Slab panel with the default settings
  gorcdraft load --slab`,
	Args: cobra.NoArgs,
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().Float64VarP(&loadDead, "dead", "d", 0, "Characteristic dead load Gk")
	loadCmd.Flags().Float64VarP(&loadLive, "imposed", "l", 0, "Characteristic imposed load Qk")
	loadCmd.Flags().Float64VarP(&loadWind, "wind", "w", 0, "Characteristic wind load Wk")

	loadCmd.Flags().BoolVar(&loadSlab, "slab", false, "Derive Gk and Qk of a slab from the settings below")
	loadCmd.Flags().Float64Var(&loadThickness, "thickness", 0, "Slab thickness (m), default 0.15")
	loadCmd.Flags().Float64Var(&loadFinish, "finish", 0, "Finishes load (kPa), default 1.5")
	loadCmd.Flags().Float64Var(&loadImposed, "live-load", 0, "Slab imposed load (kPa), default 1.5")
	loadCmd.Flags().Float64Var(&loadDensity, "density", 0, "Concrete density (kN/m³), default 24")

	loadCmd.Flags().BoolVarP(&loadShowAll, "all", "a", false, "Show all load combination results")
}

func runLoad(cmd *cobra.Command, args []string) error {
	loads := bs8110.Loads{Dead: loadDead, Live: loadLive, Wind: loadWind}

	if loadSlab {
		s := bs8110.Settings{
			SlabThickness: loadThickness,
			FinishLoad:    loadFinish,
			LiveLoad:      loadImposed,
			Density:       loadDensity,
		}.WithDefaults()
		if err := s.Validate(); err != nil {
			return err
		}
		loads.Dead = s.SlabDeadLoad()
		loads.Live = s.LiveLoad
		fmt.Println()
		fmt.Printf("  Slab self weight h·γ = %.2f × %.0f = %.2f kPa\n", s.SlabThickness, s.Density, s.SlabSelfWeight())
		fmt.Printf("  Gk = %.2f + %.2f (finishes) = %.2f kPa\n", s.SlabSelfWeight(), s.FinishLoad, loads.Dead)
	}

	if loads.Dead == 0 && loads.Live == 0 && loads.Wind == 0 {
		return errors.New("provide at least one characteristic load (see 'gorcdraft load --help')")
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("          BS 8110 ULTIMATE LOAD CALCULATION")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("CHARACTERISTIC LOADS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if loads.Dead != 0 {
		fmt.Fprintf(w, "  Dead Load (Gk):\t%.2f\n", loads.Dead)
	}
	if loads.Live != 0 {
		fmt.Fprintf(w, "  Imposed Load (Qk):\t%.2f\n", loads.Live)
	}
	if loads.Wind != 0 {
		fmt.Fprintf(w, "  Wind Load (Wk):\t%.2f\n", loads.Wind)
	}
	w.Flush()
	fmt.Println()

	maxN, governing := bs8110.Governing(loads, bs8110.LoadCombinations)

	if loadShowAll {
		fmt.Println("LOAD COMBINATIONS (BS 8110-1 Table 2.1):")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  #\tCombination\tn\n")
		fmt.Fprintf(w, "  ─\t───────────\t─\n")
		for _, combo := range bs8110.LoadCombinations {
			marker := ""
			if combo.ID == governing.ID {
				marker = " ← GOVERNS"
			}
			fmt.Fprintf(w, "  %s\t%s\t%.2f%s\n", combo.ID, combo.Description, combo.Factored(loads), marker)
		}
		w.Flush()
		fmt.Println()
	}

	fmt.Println("RESULT:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	fmt.Printf("  Governing Combination: %s (%s)\n", governing.ID, governing.Description)
	fmt.Println()
	fmt.Printf("  ╔═══════════════════════════════════╗\n")
	fmt.Printf("  ║  ULTIMATE LOAD (n) = %.2f\n", maxN)
	fmt.Printf("  ╚═══════════════════════════════════╝\n")
	fmt.Println()
	return nil
}
