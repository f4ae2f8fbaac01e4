package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/gorcdraft/internal/client"
	"github.com/alexiusacademia/gorcdraft/internal/diagram"
	"github.com/alexiusacademia/gorcdraft/internal/floor"
	"github.com/alexiusacademia/gorcdraft/internal/schedule"
	"github.com/spf13/cobra"
)

var (
	schedTask  string
	schedFloor string
	schedOut   string
	schedSave  bool

	schedBeamID     []string
	schedBeamType   []string
	schedBeamLength []string
	schedSlabID     []string
	schedSlabWidth  []string
	schedSlabHeight []string
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Print and export the beam and slab schedules of a floor",
	Long: `List the beams (primary first, in natural id order, with their grid
references) and slabs (area, aspect ratio, one-way or two-way) of a floor's
analysis, optionally edit them by row number and export them to Excel.

Edits take ROW=VALUE with the row numbers printed in the schedule. Lengths
and dimensions are in meters; a beam is resized from its start point.

Examples:
  # Print the ground floor schedules
  gorcdraft schedule --task 6f1c --floor GF

  # Export to a workbook
  gorcdraft schedule --floor FF --output schedule.xlsx

  # Rename beam row 2, make it secondary and save the change
  gorcdraft schedule --beam-id 2=B7 --beam-type 2=Secondary --save`,
	Args: cobra.NoArgs,
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().StringVarP(&schedTask, "task", "t", "", "Analysis task id (default: the last one)")
	scheduleCmd.Flags().StringVar(&schedFloor, "floor", "GF", "Floor (GF or FF)")
	scheduleCmd.Flags().StringVarP(&schedOut, "output", "o", "", "Export the schedules to an .xlsx file")
	scheduleCmd.Flags().BoolVar(&schedSave, "save", false, "Persist the edited beams and slabs to the task")

	scheduleCmd.Flags().StringSliceVar(&schedBeamID, "beam-id", nil, "Rename a beam, ROW=ID")
	scheduleCmd.Flags().StringSliceVar(&schedBeamType, "beam-type", nil, "Set a beam type, ROW=Primary|Secondary")
	scheduleCmd.Flags().StringSliceVar(&schedBeamLength, "beam-length", nil, "Resize a beam, ROW=METERS")
	scheduleCmd.Flags().StringSliceVar(&schedSlabID, "slab-id", nil, "Rename a slab, ROW=ID")
	scheduleCmd.Flags().StringSliceVar(&schedSlabWidth, "slab-width", nil, "Set a slab width, ROW=METERS")
	scheduleCmd.Flags().StringSliceVar(&schedSlabHeight, "slab-height", nil, "Set a slab height, ROW=METERS")
}

// rowEdit parses ROW=VALUE into a zero-based row index.
func rowEdit(s string) (int, string, error) {
	row, val, ok := strings.Cut(s, "=")
	if !ok {
		return 0, "", fmt.Errorf("edit %q: want ROW=VALUE", s)
	}
	n, err := strconv.Atoi(strings.TrimSpace(row))
	if err != nil {
		return 0, "", fmt.Errorf("edit %q: %w", s, err)
	}
	return n - 1, strings.TrimSpace(val), nil
}

func rowFloat(s string) (int, float64, error) {
	idx, val, err := rowEdit(s)
	if err != nil {
		return 0, 0, err
	}
	v, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("edit %q: %w", s, err)
	}
	return idx, v, nil
}

// applyEdits runs every edit flag against snap. Rows refer to the sorted
// schedule, which Build leaves as the snapshot's beam order.
func applyEdits(snap *client.Snapshot) (int, error) {
	edits := 0
	for _, e := range schedBeamID {
		idx, v, err := rowEdit(e)
		if err == nil {
			err = schedule.RenameBeam(snap, idx, v)
		}
		if err != nil {
			return edits, err
		}
		edits++
	}
	for _, e := range schedBeamType {
		idx, v, err := rowEdit(e)
		if err == nil {
			err = schedule.SetBeamType(snap, idx, v)
		}
		if err != nil {
			return edits, err
		}
		edits++
	}
	for _, e := range schedBeamLength {
		idx, v, err := rowFloat(e)
		if err != nil {
			return edits, err
		}
		applied, err := schedule.ResizeBeam(snap, idx, v)
		if err != nil {
			return edits, err
		}
		if applied {
			edits++
		}
	}
	for _, e := range schedSlabID {
		idx, v, err := rowEdit(e)
		if err == nil {
			err = schedule.RenameSlab(snap, idx, v)
		}
		if err != nil {
			return edits, err
		}
		edits++
	}
	dims := []struct {
		dim   schedule.Dim
		edits []string
	}{{schedule.DimWidth, schedSlabWidth}, {schedule.DimHeight, schedSlabHeight}}
	for _, d := range dims {
		for _, e := range d.edits {
			idx, v, err := rowFloat(e)
			if err != nil {
				return edits, err
			}
			applied, err := schedule.SetSlabDim(snap, idx, d.dim, v)
			if err != nil {
				return edits, err
			}
			if applied {
				edits++
			}
		}
	}
	return edits, nil
}

func runSchedule(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	id, err := floor.ParseID(schedFloor)
	if err != nil {
		return err
	}

	syn, _, st, err := newSyncer()
	if err != nil {
		return err
	}
	defer st.Close()
	taskID, err := syn.ResolveTaskID(ctx, schedTask, nil)
	if err != nil {
		return err
	}

	snap, settings, err := syn.LoadSnapshot(ctx, taskID, id)
	if err != nil {
		return err
	}
	schedule.Build(taskID, id, snap)
	edits, err := applyEdits(snap)
	if err != nil {
		return err
	}
	s := schedule.Build(taskID, id, snap)

	printSchedule(s)

	if edits > 0 && schedSave {
		if err := syn.SaveAnalysis(ctx, taskID, id, snap, settings); err != nil {
			return err
		}
		fmt.Printf("  Saved %d edit(s) to task %s\n", edits, taskID)
	} else if edits > 0 {
		fmt.Printf("  %d edit(s) applied locally; use --save to persist them\n", edits)
	}

	if schedOut != "" {
		if err := writeFile(schedOut, func(w io.Writer) error { return schedule.WriteXLSX(w, s) }); err != nil {
			return err
		}
		fmt.Printf("  Schedules written to %s\n", schedOut)
	}
	return nil
}

func printSchedule(s *schedule.Schedule) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("          %s SCHEDULES - TASK %s\n", strings.ToUpper(s.Floor.Label()), s.TaskID)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("BEAMS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  #\tID\tType\tLength (m)\tStart\tEnd\n")
	fmt.Fprintf(w, "  ─\t──\t────\t──────────\t─────\t───\n")
	for _, b := range s.Beams {
		fmt.Fprintf(w, "  %d\t%s\t%s\t%.2f\t%s\t%s\n", b.Index+1, b.ID, b.Type, b.Length, b.From, b.To)
	}
	w.Flush()
	fmt.Println()

	fmt.Println("SLABS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  #\tID\tWidth (m)\tHeight (m)\tArea (m²)\tRatio\tType\n")
	fmt.Fprintf(w, "  ─\t──\t─────────\t──────────\t─────────\t─────\t────\n")
	for _, sl := range s.Slabs {
		fmt.Fprintf(w, "  %d\t%s\t%.2f\t%.2f\t%.2f\t%.2f\t%s\n", sl.Index+1, sl.ID, sl.Width, sl.Height, sl.Area, sl.Ratio, sl.Type)
	}
	w.Flush()
	fmt.Println()

	fmt.Print(diagram.DrawSummaryBox("SUMMARY", []string{
		fmt.Sprintf("Total beams: %d", s.Summary.Beams),
		fmt.Sprintf("Total slabs: %d", s.Summary.Slabs),
		fmt.Sprintf("Total area:  %s", s.Summary.AreaText()),
	}))
	fmt.Println()
}
