package report

import (
	"errors"
	"fmt"
)

// Bounds of a manual column steel ratio (% of gross section)
const (
	MinColumnRho = 0.4
	MaxColumnRho = 6.0
)

var (
	ErrRhoOutOfRange  = fmt.Errorf("steel ratio must be between %.1f and %.1f %%", MinColumnRho, MaxColumnRho)
	ErrColumnNotFound = errors.New("column not found")
)

// OverrideColumnSteel replaces a column's designed reinforcement with a
// manually chosen steel ratio rho (%), As = rho/100 * b * h.
func OverrideColumnSteel(d *Data, columnID string, rho float64) (*Column, error) {
	if rho < MinColumnRho || rho > MaxColumnRho {
		return nil, ErrRhoOutOfRange
	}
	for i := range d.Columns {
		c := &d.Columns[i]
		if c.ID != columnID {
			continue
		}
		w, h := c.Size()
		as := rho / 100 * w * h
		if c.Design == nil {
			c.Design = &ColumnDesign{}
		}
		c.Design.MainInfo = fmt.Sprintf("Manual: %.1f%% (%.0f mm²)", rho, as)
		c.Design.Rho = Q(rho)
		c.RhoUser = Q(rho)
		return c, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, columnID)
}
