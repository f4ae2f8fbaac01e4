package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexiusacademia/gorcdraft/internal/floor"
)

func TestSubmit(t *testing.T) {
	var got SubmitRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/analyze" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		io.WriteString(w, `{"taskId":"t-1","results":{"GF":{"scale":50,"columns":[{"id":"C1","x":1,"y":2,"rotation":0}],"beams":[{"id":"B1","type":"Primary","x1":0,"y1":0,"x2":4,"y2":0}],"slabs":[]}}}`)
	}))
	defer srv.Close()

	c := New(srv.URL + "/")
	req := SubmitRequest{Floors: map[floor.ID]FloorGeometry{
		floor.GroundFloor: {Width: 800, Height: 600, Geometry: Geometry{
			Walls: []floor.Wall{{ID: "w1", X2: 100, Thickness: 0.23}},
			Scale: 50,
		}},
	}}
	res, err := c.Submit(context.Background(), req)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.TaskID != "t-1" {
		t.Errorf("TaskID = %q", res.TaskID)
	}
	gf := res.Results[floor.GroundFloor]
	if gf == nil || gf.Scale != 50 || len(gf.Columns) != 1 || len(gf.Beams) != 1 {
		t.Fatalf("unexpected GF result: %+v", gf)
	}
	if res.Results[floor.FirstFloor] != nil {
		t.Error("FF result should be absent")
	}
	if g := got.Floors[floor.GroundFloor]; g.Width != 800 || g.Geometry.Scale != 50 || len(g.Geometry.Walls) != 1 {
		t.Errorf("server received %+v", g)
	}
}

func TestStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "task not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(srv.URL).FetchSnapshot(context.Background(), "missing", floor.GroundFloor)
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if se.Code != http.StatusNotFound || se.Path != "/tasks/missing/GF.json" {
		t.Errorf("StatusError = %+v", se)
	}
}

func TestPersistEdits(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/analyze/update" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := New(srv.URL).PersistEdits(context.Background(), UpdateRequest{
		TaskID: "t-9",
		Floor:  floor.FirstFloor,
		Structure: Structure{
			Slabs: []Slab{{ID: "S1", Width: 3, Height: 4}},
		},
	})
	if err != nil {
		t.Fatalf("PersistEdits: %v", err)
	}
	if got["taskId"] != "t-9" || got["floor"] != "FF" {
		t.Errorf("body = %v", got)
	}
	st, _ := got["structure"].(map[string]any)
	if _, ok := st["settings"]; ok {
		t.Error("nil settings should be omitted")
	}
	if slabs, _ := st["slabs"].([]any); len(slabs) != 1 {
		t.Errorf("slabs = %v", st["slabs"])
	}
}

func TestPersistSnapshot(t *testing.T) {
	var got SnapshotRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/analyze/save-snapshot" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	err := New(srv.URL).PersistSnapshot(context.Background(), "t-2", floor.GroundFloor, Snapshot{Scale: 40})
	if err != nil {
		t.Fatalf("PersistSnapshot: %v", err)
	}
	if got.TaskID != "t-2" || got.Snapshot.TaskID != "t-2" || got.Snapshot.Floor != floor.GroundFloor || got.Snapshot.Scale != 40 {
		t.Errorf("body = %+v", got)
	}
}

func TestFetchReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/analyze/report" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if q := r.URL.Query(); q.Get("taskId") != "a b" || q.Get("floor") != "FF" {
			t.Errorf("query = %v", q)
		}
		io.WriteString(w, `{"slabs":[{"id":"S1","lx":"3.5","ly":4}],"columns":[],"_meta":{"settings":{"fcu":30}}}`)
	}))
	defer srv.Close()

	d, err := New(srv.URL).FetchReport(context.Background(), "a b", floor.FirstFloor)
	if err != nil {
		t.Fatalf("FetchReport: %v", err)
	}
	if len(d.Slabs) != 1 || d.Slabs[0].ID != "S1" {
		t.Fatalf("slabs = %+v", d.Slabs)
	}
	if d.Meta.Settings == nil || d.Meta.Settings.Fcu != 30 {
		t.Errorf("meta = %+v", d.Meta)
	}
}

func TestDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"taskId":`)
	}))
	defer srv.Close()

	if _, err := New(srv.URL).Submit(context.Background(), SubmitRequest{}); err == nil {
		t.Fatal("expected decode error")
	}
}
