package session

import (
	"errors"
	"strings"
	"testing"

	"github.com/alexiusacademia/gorcdraft/internal/drafting"
	"github.com/alexiusacademia/gorcdraft/internal/floor"
)

const houseScript = `{
  "options": {"snap": true, "sequentialIds": true},
  "floors": {"GF": {"width": 1200, "height": 800}},
  "actions": [
    {"op": "tool", "tool": "wall"},
    {"op": "down", "floor": "GF", "x": 0, "y": 0},
    {"op": "tool", "tool": "scale"},
    {"op": "down", "floor": "GF", "x": 0, "y": 0},
    {"op": "down", "floor": "GF", "x": 400, "y": 0},
    {"op": "respond", "value": "8"},
    {"op": "tool", "tool": "wall"},
    {"op": "down", "floor": "GF", "x": 0, "y": 0},
    {"op": "down", "floor": "GF", "x": 400, "y": 0},
    {"op": "down", "floor": "GF", "x": 400, "y": 300},
    {"op": "down", "button": "secondary"},
    {"op": "tool", "tool": "stair"},
    {"op": "down", "x": 50, "y": 50},
    {"op": "down", "x": 10, "y": 120},
    {"op": "undo"}
  ]
}`

func TestReplay_ContinuesPastPreconditions(t *testing.T) {
	s, err := Load(strings.NewReader(houseScript))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	e := drafting.New(s.EngineOptions(drafting.DefaultOptions()))
	r := &Replayer{ContinueOnError: true}
	if err := r.Replay(e, s); err != nil {
		t.Fatalf("Replay: %v", err)
	}
	gf := e.Floor(floor.GroundFloor)
	if gf.Scale != 50 {
		t.Errorf("scale = %v, want 50", gf.Scale)
	}
	if len(gf.Draft.Walls) != 2 {
		t.Errorf("walls = %d, want 2", len(gf.Draft.Walls))
	}
	if len(gf.Draft.Stairs) != 0 {
		t.Errorf("stairs = %d, want 0 after undo", len(gf.Draft.Stairs))
	}
	if gf.Width != 1200 {
		t.Errorf("canvas width = %v", gf.Width)
	}
	if len(r.Notices) < 2 || r.Notices[0] != "GF: Set Scale First!" || r.Notices[1] != "GF Scale Set." {
		t.Errorf("notices = %v", r.Notices)
	}
}

func TestReplay_StopsOnFirstError(t *testing.T) {
	s, err := Load(strings.NewReader(houseScript))
	if err != nil {
		t.Fatal(err)
	}
	e := drafting.New(s.EngineOptions(drafting.DefaultOptions()))
	err = (&Replayer{}).Replay(e, s)
	var ae *ActionError
	if !errors.As(err, &ae) {
		t.Fatalf("expected ActionError, got %v", err)
	}
	if ae.Index != 1 || !errors.Is(err, drafting.ErrScaleNotSet) {
		t.Errorf("ActionError = %+v", ae)
	}
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	if _, err := Load(strings.NewReader(`{"actions": [], "bogus": 1}`)); err == nil {
		t.Error("expected error for unknown field")
	}
}
