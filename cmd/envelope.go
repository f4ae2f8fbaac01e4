package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alexiusacademia/gorcdraft/internal/diagram"
	"github.com/alexiusacademia/gorcdraft/internal/floor"
	"github.com/alexiusacademia/gorcdraft/internal/svgdraw"
	"github.com/spf13/cobra"
)

var (
	envTask  string
	envFloor string
	envGroup int
	envKind  string
	envOut   string
	envASCII bool
	envWidth int
)

var envelopeCmd = &cobra.Command{
	Use:   "envelope",
	Short: "Plot the bending moment and shear force envelope of a beam",
	Long: `Join the analysis stations of every span of a beam group into one
envelope along the whole beam and plot it.

Bending moment is drawn with sagging downward, shear force positive up.
Images are written as png, svg or pdf depending on the file extension.

Examples:
  # Both diagrams of the first ground floor beam group as PNG
  gorcdraft envelope --task 6f1c --floor GF

  # Shear force of group 3 in the terminal
  gorcdraft envelope --task 6f1c --floor FF --group 3 --kind sfd --ascii`,
	Args: cobra.NoArgs,
	RunE: runEnvelope,
}

func init() {
	rootCmd.AddCommand(envelopeCmd)

	envelopeCmd.Flags().StringVarP(&envTask, "task", "t", "", "Analysis task id (default: the last one)")
	envelopeCmd.Flags().StringVar(&envFloor, "floor", "GF", "Floor (GF or FF)")
	envelopeCmd.Flags().IntVarP(&envGroup, "group", "g", 1, "Beam group number, as listed in the report")
	envelopeCmd.Flags().StringVarP(&envKind, "kind", "k", "both", "Diagram (bmd, sfd, both)")
	envelopeCmd.Flags().StringVarP(&envOut, "output", "o", "", "Image file (png, svg, pdf), default envelope-<floor>-<group>.png")
	envelopeCmd.Flags().BoolVar(&envASCII, "ascii", false, "Print ASCII charts instead of writing images")
	envelopeCmd.Flags().IntVar(&envWidth, "width", 60, "ASCII chart width in columns")
}

func parseKinds(s string) ([]svgdraw.DiagramKind, error) {
	switch strings.ToLower(s) {
	case "bmd":
		return []svgdraw.DiagramKind{svgdraw.BMD}, nil
	case "sfd":
		return []svgdraw.DiagramKind{svgdraw.SFD}, nil
	case "both", "":
		return []svgdraw.DiagramKind{svgdraw.BMD, svgdraw.SFD}, nil
	}
	return nil, fmt.Errorf("unknown diagram %q (use bmd, sfd or both)", s)
}

func runEnvelope(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	kinds, err := parseKinds(envKind)
	if err != nil {
		return err
	}
	id, err := floor.ParseID(envFloor)
	if err != nil {
		return err
	}

	syn, c, st, err := newSyncer()
	if err != nil {
		return err
	}
	defer st.Close()
	taskID, err := syn.ResolveTaskID(ctx, envTask, nil)
	if err != nil {
		return err
	}

	data, err := c.FetchReport(ctx, taskID, id)
	if err != nil {
		return err
	}
	beams := data.DesignBeams()
	if envGroup < 1 || envGroup > len(beams) {
		return fmt.Errorf("%s has %d beam groups, no group %d", id.Label(), len(beams), envGroup)
	}
	b := beams[envGroup-1]
	points, total := b.Stitched()
	if len(points) == 0 {
		return fmt.Errorf("%s: %w", b.Title(), diagram.ErrNoPoints)
	}

	fmt.Println()
	fmt.Print(diagram.DrawSummaryBox(b.Title(), []string{
		fmt.Sprintf("Floor: %s", id.Label()),
		fmt.Sprintf("Spans: %d", len(b.AllSpans())),
		fmt.Sprintf("Total length: %.2f m", total),
		fmt.Sprintf("Stations: %d", len(points)),
	}))
	fmt.Println()

	if envASCII {
		for _, k := range kinds {
			fmt.Println(diagram.ASCIIEnvelope(points, k, envWidth))
			fmt.Println()
		}
		return nil
	}

	out := envOut
	if out == "" {
		out = fmt.Sprintf("envelope-%s-%d.png", id, envGroup)
	}
	for _, k := range kinds {
		name := out
		if len(kinds) > 1 {
			ext := filepath.Ext(out)
			name = strings.TrimSuffix(out, ext) + "-" + strings.ToLower(string(k)) + ext
		}
		written, err := diagram.ExportEnvelope(points, k, b.Title(), name)
		if err != nil {
			return err
		}
		fmt.Printf("  %s written to %s\n", k.Title(), written)
	}
	return nil
}
