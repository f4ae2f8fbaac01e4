package report

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alexiusacademia/gorcdraft/internal/bs8110"
	"github.com/alexiusacademia/gorcdraft/internal/floor"
)

// ErrMissingTaskID aborts report generation when no analysis task is given
var ErrMissingTaskID = errors.New("missing task id")

// Fetcher loads the computed design model of one floor
type Fetcher interface {
	FetchReport(ctx context.Context, taskID string, id floor.ID) (*Data, error)
}

// Report is a paginated calculation sheet for one analysis task
type Report struct {
	TaskID    string
	Generated time.Time
	Floors    Floors
	Pages     []Page
}

// Settings returns the material settings the report was computed with,
// preferring the ground floor's
func (r *Report) Settings() bs8110.Settings {
	for _, d := range []*Data{r.Floors.GF, r.Floors.FF} {
		if d != nil && d.Meta.Settings != nil {
			return d.Meta.Settings.WithDefaults()
		}
	}
	return bs8110.Defaults()
}

// Generator fetches both floors and lays out the report
type Generator struct {
	Fetcher  Fetcher
	Measurer Measurer // nil = EstimateMeasurer
	Budget   float64  // 0 = DefaultBudget
	Now      func() time.Time
}

// Fetch loads both floors concurrently. A floor that cannot be fetched is
// logged and left nil so the rest of the report still renders.
func (g *Generator) Fetch(ctx context.Context, taskID string) (Floors, error) {
	if taskID == "" {
		return Floors{}, ErrMissingTaskID
	}
	var (
		floors Floors
		eg     errgroup.Group
	)
	slots := map[floor.ID]**Data{floor.FirstFloor: &floors.FF, floor.GroundFloor: &floors.GF}
	for _, id := range floor.IDs {
		slot := slots[id]
		eg.Go(func() error {
			d, err := g.Fetcher.FetchReport(ctx, taskID, id)
			if err != nil {
				log.Printf("[REPORT] %s data for task %s unavailable: %v", id, taskID, err)
				return nil
			}
			*slot = d
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Floors{}, err
	}
	return floors, ctx.Err()
}

// Generate fetches the task's data and paginates it
func (g *Generator) Generate(ctx context.Context, taskID string) (*Report, error) {
	floors, err := g.Fetch(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !floors.Any() {
		log.Printf("[REPORT] no floor data for task %s", taskID)
	}
	return g.Layout(taskID, floors), nil
}

// Layout paginates already fetched data
func (g *Generator) Layout(taskID string, floors Floors) *Report {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	return &Report{
		TaskID:    taskID,
		Generated: now(),
		Floors:    floors,
		Pages:     Paginate(Build(floors), g.Measurer, g.Budget),
	}
}
