// Package syncer moves floor state to and from the analysis service: it
// submits drafted geometry, ingests the computed structure and saves edits.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/alexiusacademia/gorcdraft/internal/bs8110"
	"github.com/alexiusacademia/gorcdraft/internal/client"
	"github.com/alexiusacademia/gorcdraft/internal/floor"
)

var (
	ErrScaleMissing = errors.New("scale missing")
	ErrNoTaskID     = errors.New("cannot save: no analysis data found, generate the structure first")
	ErrSuperseded   = errors.New("a newer submission was started; response discarded")
	ErrNoSnapshot   = errors.New("no analysis data loaded")
)

// API is the subset of the analysis service the syncer needs.
type API interface {
	Submit(ctx context.Context, in client.SubmitRequest) (*client.SubmitResponse, error)
	PersistEdits(ctx context.Context, in client.UpdateRequest) error
	FetchSnapshot(ctx context.Context, taskID string, id floor.ID) (*client.Snapshot, error)
	PersistSnapshot(ctx context.Context, taskID string, id floor.ID, snap client.Snapshot) error
}

// TaskStore remembers the last task id across runs.
type TaskStore interface {
	LastTaskID(ctx context.Context) (string, error)
	SetLastTaskID(ctx context.Context, taskID string) error
}

// Syncer coordinates submissions and saves. Store may be nil.
type Syncer struct {
	API   API
	Store TaskStore

	seq atomic.Uint64
	mu  sync.Mutex
}

// New returns a syncer using api and, when non-nil, store.
func New(api API, store TaskStore) *Syncer {
	return &Syncer{API: api, Store: store}
}

// BuildSubmitRequest serializes the drafted geometry of both floors. Floors
// without walls are left out; the first floor borrows the ground floor scale
// when it has none of its own.
func BuildSubmitRequest(gf, ff *floor.Floor) (client.SubmitRequest, error) {
	req := client.SubmitRequest{Floors: map[floor.ID]client.FloorGeometry{}}
	var gfScale float64
	if gf != nil {
		gfScale = gf.Scale
	}
	for _, f := range []*floor.Floor{gf, ff} {
		if f == nil || len(f.Draft.Walls) == 0 {
			continue
		}
		scale := f.Scale
		if scale <= 0 && f.ID == floor.FirstFloor {
			scale = gfScale
		}
		if scale <= 0 {
			return client.SubmitRequest{}, fmt.Errorf("%s %w", f.ID, ErrScaleMissing)
		}
		req.Floors[f.ID] = client.FloorGeometry{
			Width:  f.Width,
			Height: f.Height,
			Geometry: client.Geometry{
				Walls:  append([]floor.Wall{}, f.Draft.Walls...),
				Stairs: append([]floor.Stair{}, f.Draft.Stairs...),
				Scale:  scale,
			},
		}
	}
	return req, nil
}

// Submit sends both floors for analysis and, on success, replaces the
// computed layer of every floor the service returned a result for. If
// another Submit starts before this one's response arrives, the response is
// dropped and ErrSuperseded returned.
func (s *Syncer) Submit(ctx context.Context, gf, ff *floor.Floor) (*client.SubmitResponse, error) {
	req, err := BuildSubmitRequest(gf, ff)
	if err != nil {
		return nil, err
	}
	seq := s.seq.Add(1)

	res, err := s.API.Submit(ctx, req)
	if err != nil {
		log.Printf("[SYNC] submit failed: %v", err)
		return nil, fmt.Errorf("submit: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seq.Load() != seq {
		log.Printf("[SYNC] submit #%d superseded, discarding response", seq)
		return nil, ErrSuperseded
	}

	for _, f := range []*floor.Floor{gf, ff} {
		if f == nil {
			continue
		}
		if r := res.Results[f.ID]; r != nil {
			Ingest(f, r)
			log.Printf("[SYNC] %s: %d columns, %d beams, %d slabs", f.ID, len(r.Columns), len(r.Beams), len(r.Slabs))
		}
		if res.TaskID != "" {
			f.TaskID = res.TaskID
		}
	}
	if res.TaskID != "" && s.Store != nil {
		if err := s.Store.SetLastTaskID(ctx, res.TaskID); err != nil {
			log.Printf("[SYNC] could not persist task id %s: %v", res.TaskID, err)
		}
	}
	return res, nil
}

// ResolveTaskID picks the task to save against: the explicit id, then the
// floor's own, then the last stored one.
func (s *Syncer) ResolveTaskID(ctx context.Context, explicit string, f *floor.Floor) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if f != nil && f.TaskID != "" {
		return f.TaskID, nil
	}
	if s.Store != nil {
		id, err := s.Store.LastTaskID(ctx)
		if err != nil {
			return "", fmt.Errorf("read last task id: %w", err)
		}
		if id != "" {
			return id, nil
		}
	}
	return "", ErrNoTaskID
}

// PersistEdits sends the floor's current structural elements, in meters and
// with slabs renumbered, as the full replacement set for that floor.
func (s *Syncer) PersistEdits(ctx context.Context, taskID string, f *floor.Floor, settings *bs8110.Settings) error {
	taskID, err := s.ResolveTaskID(ctx, taskID, f)
	if err != nil {
		return err
	}
	st, err := CollectStructure(f)
	if err != nil {
		return err
	}
	st.Settings = settings
	if err := s.API.PersistEdits(ctx, client.UpdateRequest{TaskID: taskID, Floor: f.ID, Structure: st}); err != nil {
		log.Printf("[SYNC] save %s for task %s failed: %v", f.ID, taskID, err)
		return fmt.Errorf("save %s: %w", f.ID, err)
	}
	log.Printf("[SYNC] saved %s for task %s", f.ID, taskID)
	return nil
}

// LoadSnapshot fetches a floor's stored analysis state together with its
// settings, defaults filled in.
func (s *Syncer) LoadSnapshot(ctx context.Context, taskID string, id floor.ID) (*client.Snapshot, bs8110.Settings, error) {
	if taskID == "" {
		return nil, bs8110.Settings{}, ErrNoTaskID
	}
	snap, err := s.API.FetchSnapshot(ctx, taskID, id)
	if err != nil {
		return nil, bs8110.Settings{}, fmt.Errorf("could not fetch data for %s: %w", id, err)
	}
	settings := bs8110.Defaults()
	if snap.Settings != nil {
		settings = snap.Settings.WithDefaults()
	}
	return snap, settings, nil
}

// SaveAnalysis writes an edited snapshot's elements and settings back as the
// floor's structure.
func (s *Syncer) SaveAnalysis(ctx context.Context, taskID string, id floor.ID, snap *client.Snapshot, settings bs8110.Settings) error {
	if snap == nil {
		return ErrNoSnapshot
	}
	if taskID == "" {
		return ErrNoTaskID
	}
	st := client.Structure{
		Columns:  nonNil(snap.Columns),
		Beams:    nonNil(snap.Beams),
		Slabs:    nonNil(snap.Slabs),
		Settings: &settings,
	}
	if err := s.API.PersistEdits(ctx, client.UpdateRequest{TaskID: taskID, Floor: id, Structure: st}); err != nil {
		return fmt.Errorf("save analysis %s: %w", id, err)
	}
	return nil
}

// SaveSnapshot stores the complete floor state with the given settings so
// the report is generated from exactly what the user saw.
func (s *Syncer) SaveSnapshot(ctx context.Context, taskID string, id floor.ID, snap *client.Snapshot, settings bs8110.Settings) error {
	if snap == nil {
		return ErrNoSnapshot
	}
	if taskID == "" {
		return ErrNoTaskID
	}
	out := *snap
	out.Columns = nonNil(out.Columns)
	out.Beams = nonNil(out.Beams)
	out.Slabs = nonNil(out.Slabs)
	out.Stairs = nonNil(out.Stairs)
	out.Walls = nonNil(out.Walls)
	out.Settings = &settings
	if err := s.API.PersistSnapshot(ctx, taskID, id, out); err != nil {
		log.Printf("[SYNC] snapshot %s/%s failed: %v", taskID, id, err)
		return fmt.Errorf("save snapshot %s: %w", id, err)
	}
	log.Printf("[SYNC] snapshot %s/%s saved", taskID, id)
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
