package schedule

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"
)

const (
	SheetBeams   = "Beams"
	SheetSlabs   = "Slabs"
	SheetSummary = "Summary"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// WriteXLSX exports the schedule as a workbook with beam, slab and summary sheets.
func WriteXLSX(w io.Writer, s *Schedule) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	index, err := f.NewSheet(SheetBeams)
	if err != nil {
		return fmt.Errorf("create beam sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	for _, name := range []string{SheetSlabs, SheetSummary} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create %s sheet: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDDDDD"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	beamRows := [][]any{{"Beam ID", "Type", "Length (m)", "Start", "End"}}
	for _, b := range s.Beams {
		beamRows = append(beamRows, []any{b.ID, string(b.Type), round2(b.Length), b.From, b.To})
	}
	if err := writeTable(f, SheetBeams, beamRows, header); err != nil {
		return err
	}

	slabRows := [][]any{{"Slab ID", "Width (m)", "Height (m)", "Area (m²)", "Ratio", "Type"}}
	for _, sl := range s.Slabs {
		slabRows = append(slabRows, []any{sl.ID, round2(sl.Width), round2(sl.Height), round2(sl.Area), round2(sl.Ratio), string(sl.Type)})
	}
	if err := writeTable(f, SheetSlabs, slabRows, header); err != nil {
		return err
	}

	summary := [][]any{
		{"Task", s.TaskID},
		{"Floor", s.Floor.Label()},
		{"Total Beams", s.Summary.Beams},
		{"Total Slabs", s.Summary.Slabs},
		{"Total Area", s.Summary.AreaText()},
	}
	if err := writeTable(f, SheetSummary, summary, -1); err != nil {
		return err
	}

	return f.Write(w)
}

// writeTable writes rows from A1 down, styling the first row when style >= 0.
func writeTable(f *excelize.File, sheet string, rows [][]any, style int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	if len(rows) == 0 {
		return nil
	}
	last, err := excelize.ColumnNumberToName(len(rows[0]))
	if err != nil {
		return err
	}
	if style >= 0 {
		if err := f.SetCellStyle(sheet, "A1", last+"1", style); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "A", last, 14)
}
