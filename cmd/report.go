package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alexiusacademia/gorcdraft/internal/printout"
	"github.com/alexiusacademia/gorcdraft/internal/report"
	"github.com/spf13/cobra"
)

var (
	reportTask   string
	reportFormat string
	reportOut    string
	reportBand   string
	reportBudget float64
	reportRho    []string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the paginated calculation report of an analysis task",
	Long: `Fetch the computed design of both floors and lay it out as numbered
calculation sheets: roof slabs and beams, floor slabs and beams, stairs,
columns, foundations and the project conclusion.

Reports longer than 80 pages open on the first band of 80 sheets; use
--band to pick another range or "all".

Examples:
  # HTML report of the last submitted task
  gorcdraft report

  # PDF of pages 81 to 160
  gorcdraft report --task 6f1c --format pdf --band 81-160

  # Override the steel ratio of column C3 (0.4 to 6.0 %)
  gorcdraft report --task 6f1c --rho C3=2.5`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportTask, "task", "t", "", "Analysis task id (default: the last one)")
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "html", "Output format (html, pdf)")
	reportCmd.Flags().StringVarP(&reportOut, "output", "o", "", "Output file (default report-<task>.<format>)")
	reportCmd.Flags().StringVar(&reportBand, "band", "", "Pages to show: start-end or all")
	reportCmd.Flags().Float64Var(&reportBudget, "budget", 0, "Page height budget in px (default $GORCDRAFT_PAGE_BUDGET)")
	reportCmd.Flags().StringSliceVar(&reportRho, "rho", nil, "Manual column steel ratio, COLUMN=PERCENT (repeatable)")
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	format := strings.ToLower(reportFormat)
	if format != "html" && format != "pdf" {
		return fmt.Errorf("unsupported format %q (use html or pdf)", reportFormat)
	}

	syn, c, st, err := newSyncer()
	if err != nil {
		return err
	}
	defer st.Close()

	taskID, err := syn.ResolveTaskID(ctx, reportTask, nil)
	if err != nil {
		return err
	}

	budget := reportBudget
	if budget <= 0 {
		budget = cfg.PageBudget
	}
	gen := &report.Generator{Fetcher: c, Budget: budget}
	if format == "pdf" {
		gen.Measurer = printout.NewPDFMeasurer()
	}

	floors, err := gen.Fetch(ctx, taskID)
	if err != nil {
		return err
	}
	for _, o := range reportRho {
		if err := overrideRho(floors, o); err != nil {
			return err
		}
	}
	rep := gen.Layout(taskID, floors)

	sel := report.DefaultSelection(len(rep.Pages))
	if reportBand != "" {
		if sel, err = report.ParseSelection(reportBand); err != nil {
			return err
		}
	}

	out := reportOut
	if out == "" {
		out = fmt.Sprintf("report-%s.%s", taskID, format)
	}
	err = writeFile(out, func(w io.Writer) error {
		if format == "pdf" {
			return printout.WritePDF(w, rep, printout.PDFOptions{Selection: sel})
		}
		return printout.WriteHTML(w, rep, sel)
	})
	if err != nil {
		return err
	}

	bands := report.Bands(len(rep.Pages))
	fmt.Printf("Report for task %s: %d pages in %d band(s), written to %s\n", taskID, len(rep.Pages), len(bands), out)
	if !floors.Any() {
		fmt.Println("  ! no floor data was available; the report only holds the conclusion")
	}
	return nil
}

// overrideRho applies "C3=2.5" to the column on the floor the report takes
// columns from: the ground floor, else the first floor.
func overrideRho(floors report.Floors, arg string) error {
	id, val, ok := strings.Cut(arg, "=")
	if !ok {
		return fmt.Errorf("rho override %q: want COLUMN=PERCENT", arg)
	}
	rho, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return fmt.Errorf("rho override %q: %w", arg, err)
	}
	id = strings.TrimSpace(id)
	for _, d := range []*report.Data{floors.GF, floors.FF} {
		if d == nil || len(d.Columns) == 0 {
			continue
		}
		_, err := report.OverrideColumnSteel(d, id, rho)
		return err
	}
	return fmt.Errorf("%w: %s", report.ErrColumnNotFound, id)
}
