package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gorcdraft/internal/bs8110"
	"github.com/alexiusacademia/gorcdraft/internal/client"
	"github.com/alexiusacademia/gorcdraft/internal/floor"
	"github.com/alexiusacademia/gorcdraft/internal/report"
	"github.com/alexiusacademia/gorcdraft/internal/schedule"
)

type fakeReports map[floor.ID]*report.Data

func (f fakeReports) FetchReport(_ context.Context, taskID string, id floor.ID) (*report.Data, error) {
	d, ok := f[id]
	if !ok {
		return nil, &client.StatusError{Method: "GET", Path: "/api/analyze/report", Code: 404}
	}
	return d, nil
}

type fakeSnapshots struct {
	snap *client.Snapshot
	err  error
}

func (f fakeSnapshots) LoadSnapshot(_ context.Context, taskID string, id floor.ID) (*client.Snapshot, bs8110.Settings, error) {
	return f.snap, bs8110.Defaults(), f.err
}

func testApp(snaps fakeSnapshots) *Handlers {
	return &Handlers{
		Reports: fakeReports{floor.GroundFloor: {
			Columns: []report.Column{{ID: "C1"}},
		}},
		Snapshots: snaps,
	}
}

func get(t *testing.T, h *Handlers, target string) (*http.Response, []byte) {
	t.Helper()
	resp, err := New(h).Test(httptest.NewRequest(http.MethodGet, target, nil))
	if err != nil {
		t.Fatalf("GET %s: %v", target, err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	return resp, body
}

func TestHealth(t *testing.T) {
	resp, body := get(t, testApp(fakeSnapshots{}), "/health/live")
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), `"alive"`) {
		t.Errorf("health = %d %s", resp.StatusCode, body)
	}
}

func TestReportHTML(t *testing.T) {
	resp, body := get(t, testApp(fakeSnapshots{}), "/reports/task-1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
	for _, want := range []string{"Task: task-1", "<strong>Column C1</strong>", report.SectionConclusion} {
		if !strings.Contains(string(body), want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestReportBadBand(t *testing.T) {
	resp, body := get(t, testApp(fakeSnapshots{}), "/reports/task-1?band=12")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	var e map[string]string
	if err := json.Unmarshal(body, &e); err != nil || e["error"] == "" {
		t.Errorf("error body = %s", body)
	}
}

func TestReportPDF(t *testing.T) {
	resp, body := get(t, testApp(fakeSnapshots{}), "/reports/task-1/pdf?band=all")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if resp.Header.Get("Content-Type") != "application/pdf" || !bytes.HasPrefix(body, []byte("%PDF")) {
		t.Errorf("not a pdf: %q", resp.Header.Get("Content-Type"))
	}
}

func sampleSnapshot() *client.Snapshot {
	return &client.Snapshot{
		Scale: 50,
		Grid: &client.Grid{
			XLines: []client.GridLine{{Val: 0, Label: "A"}, {Val: 4, Label: "B"}},
			YLines: []client.GridLine{{Val: 0, Label: "1"}},
		},
		Beams: []client.Beam{
			{ID: "B2", Type: "Secondary", X1: 0, Y1: 0, X2: 4, Y2: 0},
			{ID: "B1", Type: "Primary", X1: 0, Y1: 0, X2: 4, Y2: 0},
		},
		Slabs: []client.Slab{{ID: "S1", X: 0, Y: 0, Width: 4, Height: 5}},
	}
}

func TestScheduleJSON(t *testing.T) {
	resp, body := get(t, testApp(fakeSnapshots{snap: sampleSnapshot()}), "/schedules/task-1/GF")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	var s schedule.Schedule
	if err := json.Unmarshal(body, &s); err != nil {
		t.Fatal(err)
	}
	if len(s.Beams) != 2 || s.Beams[0].ID != "B1" || s.Summary.Slabs != 1 {
		t.Errorf("schedule = %+v", s)
	}
}

func TestScheduleXLSX(t *testing.T) {
	resp, body := get(t, testApp(fakeSnapshots{snap: sampleSnapshot()}), "/schedules/task-1/FF.xlsx")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if resp.Header.Get("Content-Type") != xlsxType {
		t.Errorf("content type = %q", resp.Header.Get("Content-Type"))
	}
	f, err := excelize.OpenReader(bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if v, _ := f.GetCellValue(schedule.SheetBeams, "A2"); v != "B1" {
		t.Errorf("first beam = %q", v)
	}
}

func TestScheduleErrors(t *testing.T) {
	resp, _ := get(t, testApp(fakeSnapshots{snap: sampleSnapshot()}), "/schedules/task-1/B2.xlsx")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown floor status = %d", resp.StatusCode)
	}

	missing := fakeSnapshots{err: &client.StatusError{Method: "GET", Path: "/tasks/x/GF.json", Code: 404}}
	if resp, _ := get(t, testApp(missing), "/schedules/x/GF"); resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing task status = %d", resp.StatusCode)
	}

	down := fakeSnapshots{err: &client.StatusError{Method: "GET", Path: "/tasks/x/GF.json", Code: 500}}
	if resp, _ := get(t, testApp(down), "/schedules/x/GF"); resp.StatusCode != http.StatusBadGateway {
		t.Errorf("upstream failure status = %d", resp.StatusCode)
	}
}
