package syncer

import (
	"context"
	"errors"
	"math"
	"runtime"
	"testing"

	"github.com/alexiusacademia/gorcdraft/internal/bs8110"
	"github.com/alexiusacademia/gorcdraft/internal/client"
	"github.com/alexiusacademia/gorcdraft/internal/floor"
	"github.com/alexiusacademia/gorcdraft/internal/geometry"
)

type fakeAPI struct {
	submit    func(ctx context.Context, in client.SubmitRequest) (*client.SubmitResponse, error)
	updates   []client.UpdateRequest
	snapshots []client.Snapshot
	stored    *client.Snapshot
	err       error
}

func (a *fakeAPI) Submit(ctx context.Context, in client.SubmitRequest) (*client.SubmitResponse, error) {
	return a.submit(ctx, in)
}

func (a *fakeAPI) PersistEdits(_ context.Context, in client.UpdateRequest) error {
	if a.err != nil {
		return a.err
	}
	a.updates = append(a.updates, in)
	return nil
}

func (a *fakeAPI) FetchSnapshot(context.Context, string, floor.ID) (*client.Snapshot, error) {
	if a.stored == nil {
		return nil, errors.New("not found")
	}
	return a.stored, nil
}

func (a *fakeAPI) PersistSnapshot(_ context.Context, _ string, _ floor.ID, snap client.Snapshot) error {
	a.snapshots = append(a.snapshots, snap)
	return nil
}

type memStore struct{ id string }

func (m *memStore) LastTaskID(context.Context) (string, error) { return m.id, nil }

func (m *memStore) SetLastTaskID(_ context.Context, id string) error {
	m.id = id
	return nil
}

func drafted(id floor.ID, scale float64) *floor.Floor {
	f := floor.New(id)
	f.LoadImage(1000, 800)
	f.Scale = scale
	f.AddWall(floor.NewWall("w1", geometry.Pt(0, 0), geometry.Pt(500, 0), 0.23))
	return f
}

func TestBuildSubmitRequest(t *testing.T) {
	gf := drafted(floor.GroundFloor, 50)
	ff := drafted(floor.FirstFloor, 0)
	req, err := BuildSubmitRequest(gf, ff)
	if err != nil {
		t.Fatalf("BuildSubmitRequest: %v", err)
	}
	if got := req.Floors[floor.FirstFloor].Geometry.Scale; got != 50 {
		t.Errorf("FF scale = %v, want GF's 50", got)
	}
	if g := req.Floors[floor.GroundFloor]; g.Width != 1000 || g.Height != 800 || g.Geometry.Stairs == nil {
		t.Errorf("GF payload = %+v", g)
	}

	empty := floor.New(floor.FirstFloor)
	req, err = BuildSubmitRequest(gf, empty)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := req.Floors[floor.FirstFloor]; ok {
		t.Error("floor without walls should be omitted")
	}

	_, err = BuildSubmitRequest(drafted(floor.GroundFloor, 0), ff)
	if !errors.Is(err, ErrScaleMissing) || err.Error() != "GF scale missing" {
		t.Errorf("err = %v, want GF scale missing", err)
	}
}

func TestSubmitIngestsResults(t *testing.T) {
	api := &fakeAPI{submit: func(context.Context, client.SubmitRequest) (*client.SubmitResponse, error) {
		return &client.SubmitResponse{
			TaskID: "task-42",
			Results: map[floor.ID]*client.FloorResult{
				floor.GroundFloor: {
					Scale:   50,
					Columns: []client.Column{{ID: "C1", X: 1, Y: 2, Rotation: 15}},
					Beams:   []client.Beam{{ID: "B1", Type: "Main", X1: 0, Y1: 0, X2: 4, Y2: 0}},
					Slabs:   []client.Slab{{ID: "S1", X: 0, Y: 0, Width: 4, Height: 3}},
				},
			},
		}, nil
	}}
	store := &memStore{}
	s := New(api, store)
	gf := drafted(floor.GroundFloor, 50)
	ff := floor.New(floor.FirstFloor)

	if _, err := s.Submit(context.Background(), gf, ff); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if store.id != "task-42" || gf.TaskID != "task-42" {
		t.Errorf("task id not recorded: store %q floor %q", store.id, gf.TaskID)
	}
	cols := gf.Structure.Columns()
	if len(cols) != 1 || cols[0].Center != geometry.Pt(50, 100) || cols[0].Size != 15 || cols[0].Rotation != 15 {
		t.Fatalf("columns = %+v", cols)
	}
	beams := gf.Structure.Beams()
	if len(beams) != 1 || beams[0].End != geometry.Pt(200, 0) || beams[0].Type != floor.BeamPrimary || beams[0].StrokeWidth != 10 {
		t.Fatalf("beams = %+v", beams)
	}
	slabs := gf.Structure.Slabs()
	if len(slabs) != 1 || slabs[0].Rect.Width != 200 || slabs[0].Label != "P1" {
		t.Fatalf("slabs = %+v", slabs)
	}
	if ff.Structure.Len() != 0 {
		t.Error("FF structure should be untouched")
	}
}

func TestSubmitSuperseded(t *testing.T) {
	release := make(chan struct{})
	api := &fakeAPI{}
	api.submit = func(ctx context.Context, in client.SubmitRequest) (*client.SubmitResponse, error) {
		// the first submission is the 1000 px wide plan; hold it back
		if in.Floors[floor.GroundFloor].Width == 1000 {
			<-release
		}
		return &client.SubmitResponse{TaskID: "t", Results: map[floor.ID]*client.FloorResult{
			floor.GroundFloor: {Scale: 50, Columns: []client.Column{{ID: "C1"}}},
		}}, nil
	}
	s := New(api, nil)
	first := drafted(floor.GroundFloor, 50)
	second := drafted(floor.GroundFloor, 50)
	second.Width = 900

	done := make(chan error)
	go func() {
		_, err := s.Submit(context.Background(), first, nil)
		done <- err
	}()
	for s.seq.Load() != 1 {
		runtime.Gosched()
	}
	if _, err := s.Submit(context.Background(), second, nil); err != nil {
		t.Fatalf("second Submit: %v", err)
	}
	close(release)
	if err := <-done; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("first Submit err = %v, want ErrSuperseded", err)
	}
	if first.Structure.Len() != 0 || first.TaskID != "" {
		t.Error("superseded response must not touch the floor")
	}
	if second.Structure.Len() != 1 {
		t.Error("latest response should be applied")
	}
}

func TestSubmitFailureLeavesFloor(t *testing.T) {
	api := &fakeAPI{submit: func(context.Context, client.SubmitRequest) (*client.SubmitResponse, error) {
		return nil, errors.New("connection refused")
	}}
	gf := drafted(floor.GroundFloor, 50)
	gf.Structure.Add(&floor.Column{ID: "keep"})
	if _, err := New(api, nil).Submit(context.Background(), gf, nil); err == nil {
		t.Fatal("expected error")
	}
	if gf.Structure.Len() != 1 || gf.TaskID != "" {
		t.Error("failed submit mutated the floor")
	}
}

func TestRenumberSlabs(t *testing.T) {
	slabs := []client.Slab{
		{ID: "S_user_0042", X: 5, Y: 4},
		{ID: "S3", X: 0, Y: 4},
		{ID: "S1", X: 9, Y: 0},
		{ID: "S2", X: 1, Y: 0},
	}
	RenumberSlabs(slabs)
	want := []struct {
		id   string
		x, y float64
	}{{"S1", 1, 0}, {"S2", 9, 0}, {"S3", 0, 4}, {"S4", 5, 4}}
	for i, w := range want {
		if s := slabs[i]; s.ID != w.id || s.X != w.x || s.Y != w.y {
			t.Errorf("slab %d = %+v, want %+v", i, s, w)
		}
	}
}

func TestPersistEdits(t *testing.T) {
	api := &fakeAPI{}
	store := &memStore{id: "stored"}
	s := New(api, store)

	f := floor.New(floor.GroundFloor)
	f.Scale = 50
	f.Structure.Add(&floor.Slab{ID: "S_user_0002", Rect: geometry.Rect{X: 100, Y: 100, Width: 100, Height: 50}})
	f.Structure.Add(&floor.Slab{ID: "S_user_0001", Rect: geometry.Rect{X: 0, Y: 100, Width: 100, Height: 50}})
	f.Structure.Add(&floor.Beam{ID: "B1", Start: geometry.Pt(0, 0), End: geometry.Pt(100, 0)})
	f.Structure.Add(&floor.Column{ID: "C1", Center: geometry.Pt(25, 75), Rotation: 30})

	settings := bs8110.Defaults()
	if err := s.PersistEdits(context.Background(), "", f, &settings); err != nil {
		t.Fatalf("PersistEdits: %v", err)
	}
	if len(api.updates) != 1 {
		t.Fatalf("updates = %d", len(api.updates))
	}
	u := api.updates[0]
	if u.TaskID != "stored" || u.Floor != floor.GroundFloor || u.Structure.Settings == nil {
		t.Errorf("request = %+v", u)
	}
	if b := u.Structure.Beams[0]; b.Type != "Primary" || b.X2 != 2 {
		t.Errorf("beam = %+v", b)
	}
	if c := u.Structure.Columns[0]; math.Abs(c.X-0.5) > 1e-9 || math.Abs(c.Y-1.5) > 1e-9 || c.Rotation != 30 {
		t.Errorf("column = %+v", c)
	}
	sl := u.Structure.Slabs
	if sl[0].ID != "S1" || sl[0].X != 0 || sl[1].ID != "S2" || sl[1].X != 2 {
		t.Errorf("slabs = %+v", sl)
	}
	if got := f.Structure.Slabs()[0].ID; got != "S_user_0002" {
		t.Errorf("local slab ids changed: %s", got)
	}
}

func TestPersistEditsPreconditions(t *testing.T) {
	api := &fakeAPI{}
	s := New(api, &memStore{})
	f := floor.New(floor.FirstFloor)
	f.Scale = 40

	if err := s.PersistEdits(context.Background(), "", f, nil); !errors.Is(err, ErrNoTaskID) {
		t.Errorf("err = %v, want ErrNoTaskID", err)
	}
	f.Scale = 0
	if err := s.PersistEdits(context.Background(), "explicit", f, nil); !errors.Is(err, ErrScaleMissing) {
		t.Errorf("err = %v, want ErrScaleMissing", err)
	}
	if len(api.updates) != 0 {
		t.Error("nothing should have been sent")
	}
}

func TestResolveTaskID(t *testing.T) {
	s := New(&fakeAPI{}, &memStore{id: "last"})
	f := floor.New(floor.GroundFloor)
	ctx := context.Background()

	if id, _ := s.ResolveTaskID(ctx, "url", f); id != "url" {
		t.Errorf("explicit: %q", id)
	}
	if id, _ := s.ResolveTaskID(ctx, "", f); id != "last" {
		t.Errorf("stored: %q", id)
	}
	f.TaskID = "floor"
	if id, _ := s.ResolveTaskID(ctx, "", f); id != "floor" {
		t.Errorf("floor: %q", id)
	}
	if _, err := New(&fakeAPI{}, nil).ResolveTaskID(ctx, "", nil); !errors.Is(err, ErrNoTaskID) {
		t.Errorf("err = %v", err)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	api := &fakeAPI{stored: &client.Snapshot{Scale: 40, Beams: []client.Beam{{ID: "B1"}}}}
	s := New(api, nil)
	ctx := context.Background()

	snap, settings, err := s.LoadSnapshot(ctx, "t", floor.GroundFloor)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if settings != bs8110.Defaults() {
		t.Errorf("settings = %+v", settings)
	}
	settings.Fcu = 30
	if err := s.SaveSnapshot(ctx, "t", floor.GroundFloor, snap, settings); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	got := api.snapshots[0]
	if got.Settings == nil || got.Settings.Fcu != 30 || got.Walls == nil || got.Stairs == nil || len(got.Beams) != 1 {
		t.Errorf("snapshot = %+v", got)
	}
	if err := s.SaveSnapshot(ctx, "t", floor.GroundFloor, nil, settings); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("err = %v", err)
	}
}
