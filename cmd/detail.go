package cmd

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexiusacademia/gorcdraft/internal/printout"
	"github.com/alexiusacademia/gorcdraft/internal/svgdraw"
	"github.com/spf13/cobra"
)

var (
	detailOut string

	// Section inputs (mm)
	detailWidth       float64
	detailDepth       float64
	detailBars        string
	detailLinks       string
	detailShape       string
	detailFlange      float64
	detailFlangeWidth float64

	// Slab panel inputs (m)
	detailLx    float64
	detailLy    float64
	detailPanel int

	// Stair inputs (mm)
	detailRiser float64
	detailGoing float64
	detailWaist float64
	detailSteps int

	// Loading inputs
	detailSpan   float64
	detailUDL    float64
	detailPoints []string
)

var detailCmd = &cobra.Command{
	Use:   "detail",
	Short: "Render a single SVG detail from numeric parameters",
	Long: `Render one of the report's detail drawings on its own.

The drawing is written as SVG, or rasterised when the output file ends in
.png. Without --output the SVG markup is printed.

Examples:
  gorcdraft detail beam --width 230 --depth 450 --bars 3Y16 --links "Y8 @ 200"
  gorcdraft detail beam --shape T --flange 150 -o t-beam.png
  gorcdraft detail slab --lx 4 --ly 5 --panel 3 -o s1.svg
  gorcdraft detail loading --span 5 --udl 18.6 --point 40@2.5`,
}

var detailBeamCmd = &cobra.Command{
	Use:   "beam",
	Short: "Beam cross-section with main bars and links",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeDrawing(svgdraw.BeamSection{
			Width:      detailWidth,
			Depth:      detailDepth,
			MainBars:   detailBars,
			Links:      detailLinks,
			Shape:      svgdraw.ParseSectionShape(detailShape),
			Flange:     detailFlange,
			FlangeWide: detailFlangeWidth,
		}.Draw())
	},
}

var detailColumnCmd = &cobra.Command{
	Use:   "column",
	Short: "Column cross-section with bar arrangement",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeDrawing(svgdraw.ColumnSection{
			Width:    detailWidth,
			Depth:    detailDepth,
			MainBars: detailBars,
			Links:    detailLinks,
		}.Draw())
	},
}

var detailSlabCmd = &cobra.Command{
	Use:   "slab",
	Short: "Slab panel with edge continuity and span direction",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeDrawing(svgdraw.SlabDetail(detailLx, detailLy, detailPanel))
	},
}

var detailStairCmd = &cobra.Command{
	Use:   "stair",
	Short: "Stair flight profile with the main bar",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeDrawing(svgdraw.StairSection(&svgdraw.StairDesign{
			Riser:    detailRiser,
			Going:    detailGoing,
			Waist:    detailWaist,
			Steps:    detailSteps,
			MainInfo: detailBars,
		}))
	},
}

var detailFootingCmd = &cobra.Command{
	Use:   "footing",
	Short: "Pad footing section",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeDrawing(svgdraw.FootingSection(detailWidth, detailDepth))
	},
}

var detailTransferCmd = &cobra.Command{
	Use:       "transfer triangle|trapezium|rectangle",
	Short:     "Tributary shape a slab hands to a beam",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"triangle", "trapezium", "rectangle"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeDrawing(svgdraw.SlabTransfer(svgdraw.TransferShape(strings.ToLower(args[0]))))
	},
}

var detailLoadingCmd = &cobra.Command{
	Use:   "loading",
	Short: "Simply supported span with its uniform and point loads",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var loads []svgdraw.PointLoad
		for _, p := range detailPoints {
			load, err := parsePointLoad(p)
			if err != nil {
				return err
			}
			loads = append(loads, load)
		}
		return writeDrawing(svgdraw.BeamLoading(detailSpan, detailUDL, loads))
	},
}

func init() {
	rootCmd.AddCommand(detailCmd)
	detailCmd.AddCommand(detailBeamCmd, detailColumnCmd, detailSlabCmd, detailStairCmd,
		detailFootingCmd, detailTransferCmd, detailLoadingCmd)

	detailCmd.PersistentFlags().StringVarP(&detailOut, "output", "o", "", "Output file (.svg or .png), default stdout")

	for _, c := range []*cobra.Command{detailBeamCmd, detailColumnCmd} {
		c.Flags().Float64VarP(&detailWidth, "width", "b", 0, "Section width (mm), default 230")
		c.Flags().Float64Var(&detailDepth, "depth", 0, "Section depth (mm)")
		c.Flags().StringVar(&detailBars, "bars", "", "Main bars, e.g. 3Y16")
		c.Flags().StringVar(&detailLinks, "links", "", "Links, e.g. \"Y8 @ 200\"")
	}
	detailBeamCmd.Flags().StringVar(&detailShape, "shape", "Rect", "Section shape (Rect, T, L)")
	detailBeamCmd.Flags().Float64Var(&detailFlange, "flange", 0, "Flange thickness hf (mm)")
	detailBeamCmd.Flags().Float64Var(&detailFlangeWidth, "flange-width", 0, "Flange width bf (mm), default b + 300")

	detailSlabCmd.Flags().Float64Var(&detailLx, "lx", 0, "Short span (m)")
	detailSlabCmd.Flags().Float64Var(&detailLy, "ly", 0, "Long span (m)")
	detailSlabCmd.Flags().IntVar(&detailPanel, "panel", 1, "Table 3.14 panel case (0-8)")

	detailStairCmd.Flags().Float64Var(&detailRiser, "riser", 0, "Riser R (mm)")
	detailStairCmd.Flags().Float64Var(&detailGoing, "going", 0, "Going G (mm)")
	detailStairCmd.Flags().Float64Var(&detailWaist, "waist", 0, "Waist thickness h (mm)")
	detailStairCmd.Flags().IntVar(&detailSteps, "steps", 0, "Number of steps")
	detailStairCmd.Flags().StringVar(&detailBars, "bars", "", "Main bar callout")

	detailFootingCmd.Flags().Float64VarP(&detailWidth, "width", "b", 0, "Footing width (mm), default 1200")
	detailFootingCmd.Flags().Float64Var(&detailDepth, "depth", 0, "Footing depth (mm), default 450")

	detailLoadingCmd.Flags().Float64Var(&detailSpan, "span", 0, "Span length (m)")
	detailLoadingCmd.Flags().Float64Var(&detailUDL, "udl", 0, "Uniform load (kN/m)")
	detailLoadingCmd.Flags().StringSliceVar(&detailPoints, "point", nil, "Point load P@a in kN and m from the left support (repeatable)")
}

// parsePointLoad reads "40@2.5" as 40 kN at 2.5 m.
func parsePointLoad(s string) (svgdraw.PointLoad, error) {
	p, a, ok := strings.Cut(s, "@")
	if !ok {
		return svgdraw.PointLoad{}, fmt.Errorf("point load %q: want P@a", s)
	}
	pv, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
	if err != nil {
		return svgdraw.PointLoad{}, fmt.Errorf("point load %q: %w", s, err)
	}
	av, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
	if err != nil {
		return svgdraw.PointLoad{}, fmt.Errorf("point load %q: %w", s, err)
	}
	return svgdraw.PointLoad{P: pv, A: av}, nil
}

func writeDrawing(d svgdraw.Drawing) error {
	if d.Empty() {
		return errors.New("nothing to draw")
	}
	if detailOut == "" {
		fmt.Println(d.Markup)
		return nil
	}
	err := writeFile(detailOut, func(w io.Writer) error {
		if strings.EqualFold(filepath.Ext(detailOut), ".png") {
			img, err := printout.Rasterize(d, 2)
			if err != nil {
				return err
			}
			return png.Encode(w, img)
		}
		_, err := io.WriteString(w, d.Markup)
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Detail written to %s\n", detailOut)
	return nil
}
