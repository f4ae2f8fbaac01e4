package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gorcdraft/internal/client"
	"github.com/alexiusacademia/gorcdraft/internal/drafting"
	"github.com/alexiusacademia/gorcdraft/internal/floor"
	"github.com/alexiusacademia/gorcdraft/internal/session"
	"github.com/alexiusacademia/gorcdraft/internal/store"
	"github.com/alexiusacademia/gorcdraft/internal/syncer"
	"github.com/spf13/cobra"
)

var (
	draftScript   string
	draftSubmit   bool
	draftSave     string
	draftTask     string
	draftResume   bool
	draftContinue bool
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Replay a drafting session and sync it with the analysis service",
	Long: `Replay a recorded drafting session against both floors.

The script is JSON with the plan image size of each floor and the ordered
pointer and keyboard actions. The traced walls, stairs and structure of each
floor are kept in the local database so the next run can resume them.
A resumed floor also reloads its structure from its analysis task; leave it
out of the script's "floors" so the replay does not start it over.

Examples:
  # Replay and show what was drawn
  gorcdraft draft --script plan.json

  # Submit the traced walls for analysis
  gorcdraft draft --script plan.json --submit

  # Save edited columns, beams and slabs of the ground floor
  gorcdraft draft --script edits.json --resume --save GF`,
	Args: cobra.NoArgs,
	RunE: runDraft,
}

func init() {
	rootCmd.AddCommand(draftCmd)

	draftCmd.Flags().StringVarP(&draftScript, "script", "s", "", "Session script (JSON) [required]")
	draftCmd.Flags().BoolVar(&draftSubmit, "submit", false, "Submit wall and stair geometry for analysis")
	draftCmd.Flags().StringVar(&draftSave, "save", "", "Persist the structure of a floor (GF or FF)")
	draftCmd.Flags().StringVarP(&draftTask, "task", "t", "", "Analysis task id (default: the floor's or the last one)")
	draftCmd.Flags().BoolVar(&draftResume, "resume", false, "Start from the floors stored by the previous run")
	draftCmd.Flags().BoolVar(&draftContinue, "continue", false, "Report failed preconditions and keep replaying")

	draftCmd.MarkFlagRequired("script")
}

func runDraft(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	script, err := session.LoadFile(draftScript)
	if err != nil {
		return err
	}
	syn, _, st, err := newSyncer()
	if err != nil {
		return err
	}
	defer st.Close()

	opts := drafting.DefaultOptions()
	opts.SnapDistance = cfg.SnapDistance
	opts.WallThicknessMM = cfg.WallThickness
	engine := drafting.New(script.EngineOptions(opts))

	if draftResume {
		for _, id := range floor.IDs {
			state, ok, err := st.LoadDraft(ctx, id)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			f := engine.Floor(id)
			state.Apply(f)
			if f.TaskID == "" {
				continue
			}
			snap, _, err := syn.LoadSnapshot(ctx, f.TaskID, id)
			if err != nil {
				fmt.Printf("  ! %s structure not restored: %v\n", id, err)
				continue
			}
			syncer.Ingest(f, &client.FloorResult{
				Scale:   snap.Scale,
				Columns: snap.Columns,
				Beams:   snap.Beams,
				Slabs:   snap.Slabs,
			})
		}
	}

	replayer := &session.Replayer{ContinueOnError: draftContinue}
	replayErr := replayer.Replay(engine, script)
	for _, n := range replayer.Notices {
		fmt.Printf("  ! %s\n", n)
	}
	for _, id := range floor.IDs {
		if err := st.SaveDraft(ctx, id, store.StateOf(engine.Floor(id))); err != nil {
			return err
		}
	}
	if replayErr != nil {
		return replayErr
	}

	gf, ff := engine.Floor(floor.GroundFloor), engine.Floor(floor.FirstFloor)
	if draftSubmit {
		resp, err := syn.Submit(ctx, gf, ff)
		if err != nil {
			return err
		}
		fmt.Printf("Submitted: task %s (%d floor results)\n", resp.TaskID, len(resp.Results))
		for _, id := range floor.IDs {
			if err := st.SaveDraft(ctx, id, store.StateOf(engine.Floor(id))); err != nil {
				return err
			}
		}
	}

	if draftSave != "" {
		id, err := floor.ParseID(draftSave)
		if err != nil {
			return err
		}
		f := engine.Floor(id)
		taskID, err := syn.ResolveTaskID(ctx, draftTask, f)
		if err != nil {
			return err
		}
		if err := syn.PersistEdits(ctx, taskID, f, nil); err != nil {
			return err
		}
		fmt.Printf("Saved %s structure to task %s\n", id.Label(), taskID)
	}

	printFloorSummary(engine)
	return nil
}

func printFloorSummary(e *drafting.Engine) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("                     DRAFTING SUMMARY")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Floor\tScale (px/m)\tWalls\tStairs\tColumns\tBeams\tSlabs\tTask\n")
	fmt.Fprintf(w, "  ─────\t────────────\t─────\t──────\t───────\t─────\t─────\t────\n")
	for _, id := range floor.IDs {
		f := e.Floor(id)
		scale := "not set"
		if f.HasScale() {
			scale = fmt.Sprintf("%.2f", f.Scale)
		}
		task := f.TaskID
		if task == "" {
			task = "-"
		}
		fmt.Fprintf(w, "  %s\t%s\t%d\t%d\t%d\t%d\t%d\t%s\n", id, scale,
			len(f.Draft.Walls), len(f.Draft.Stairs),
			len(f.Structure.Columns()), len(f.Structure.Beams()), len(f.Structure.Slabs()), task)
	}
	w.Flush()
	fmt.Printf("\n  Active: %s\n\n", e.Indicator())
}
