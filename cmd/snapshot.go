package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gorcdraft/internal/bs8110"
	"github.com/alexiusacademia/gorcdraft/internal/floor"
	"github.com/spf13/cobra"
)

var (
	snapTask  string
	snapFloor string
	snapSave  bool

	snapFcu   float64
	snapFy    float64
	snapCover float64
	snapLive  float64
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Show a floor's stored analysis state and save it for the report",
	Long: `Fetch the snapshot of a floor (scale, grid, columns, beams, slabs,
stairs, walls and material settings) and print its settings.

With --save the snapshot is stored back as the floor's full report snapshot,
after applying any material overrides, so the report is generated from
exactly this state.

Examples:
  gorcdraft snapshot --task 6f1c --floor GF
  gorcdraft snapshot --floor FF --fcu 30 --save`,
	Args: cobra.NoArgs,
	RunE: runSnapshot,
}

func init() {
	rootCmd.AddCommand(snapshotCmd)

	snapshotCmd.Flags().StringVarP(&snapTask, "task", "t", "", "Analysis task id (default: the last one)")
	snapshotCmd.Flags().StringVar(&snapFloor, "floor", "GF", "Floor (GF or FF)")
	snapshotCmd.Flags().BoolVar(&snapSave, "save", false, "Persist the snapshot as the report snapshot")

	snapshotCmd.Flags().Float64Var(&snapFcu, "fcu", 0, "Concrete strength fcu (N/mm²)")
	snapshotCmd.Flags().Float64Var(&snapFy, "fy", 0, "Main steel strength fy (N/mm²)")
	snapshotCmd.Flags().Float64Var(&snapCover, "cover", 0, "Nominal cover (mm)")
	snapshotCmd.Flags().Float64Var(&snapLive, "live-load", 0, "Imposed floor load (kPa)")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	id, err := floor.ParseID(snapFloor)
	if err != nil {
		return err
	}

	syn, _, st, err := newSyncer()
	if err != nil {
		return err
	}
	defer st.Close()
	taskID, err := syn.ResolveTaskID(ctx, snapTask, nil)
	if err != nil {
		return err
	}

	snap, settings, err := syn.LoadSnapshot(ctx, taskID, id)
	if err != nil {
		return err
	}
	settings = overrideSettings(cmd, settings)
	if err := settings.Validate(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("SNAPSHOT %s / %s:\n", taskID, id.Label())
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Scale:\t%.2f px/m\n", snap.Scale)
	fmt.Fprintf(w, "  Elements:\t%d columns, %d beams, %d slabs, %d stairs, %d walls\n",
		len(snap.Columns), len(snap.Beams), len(snap.Slabs), len(snap.Stairs), len(snap.Walls))
	fmt.Fprintf(w, "  Slab thickness:\t%.3f m\n", settings.SlabThickness)
	fmt.Fprintf(w, "  Finishes / imposed:\t%.2f / %.2f kPa\n", settings.FinishLoad, settings.LiveLoad)
	fmt.Fprintf(w, "  Beam size:\t%.0f x %.0f mm\n", settings.BeamWidth*1000, settings.BeamDepth*1000)
	fmt.Fprintf(w, "  fcu / fy / fyv:\t%.0f / %.0f / %.0f N/mm²\n", settings.Fcu, settings.Fy, settings.Fyv)
	fmt.Fprintf(w, "  Cover:\t%.0f mm\n", settings.Cover)
	fmt.Fprintf(w, "  Slab ultimate load:\t%.2f kPa\n", settings.SlabUltimateLoad())
	w.Flush()
	fmt.Println()

	if !snapSave {
		return nil
	}
	if err := syn.SaveSnapshot(ctx, taskID, id, snap, settings); err != nil {
		return err
	}
	fmt.Printf("  Snapshot saved for task %s\n\n", taskID)
	return nil
}

// overrideSettings applies only the material flags given on the command line.
func overrideSettings(cmd *cobra.Command, s bs8110.Settings) bs8110.Settings {
	flags := cmd.Flags()
	if flags.Changed("fcu") {
		s.Fcu = snapFcu
	}
	if flags.Changed("fy") {
		s.Fy = snapFy
	}
	if flags.Changed("cover") {
		s.Cover = snapCover
	}
	if flags.Changed("live-load") {
		s.LiveLoad = snapLive
	}
	return s
}
