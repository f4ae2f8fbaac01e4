// Package session replays recorded drafting input against an engine.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alexiusacademia/gorcdraft/internal/drafting"
	"github.com/alexiusacademia/gorcdraft/internal/floor"
	"github.com/alexiusacademia/gorcdraft/internal/geometry"
)

// Script is a recorded drafting session.
type Script struct {
	Options ScriptOptions           `json:"options"`
	Floors  map[floor.ID]FloorSetup `json:"floors"`
	Actions []Action                `json:"actions"`
}

// ScriptOptions override engine settings for the session.
type ScriptOptions struct {
	Snap            *bool   `json:"snap,omitempty"`
	Ortho           *bool   `json:"ortho,omitempty"`
	WallThicknessMM float64 `json:"wallThicknessMM,omitempty"`
	SequentialIDs   bool    `json:"sequentialIds,omitempty"`
}

// FloorSetup describes the plan image a floor starts on.
type FloorSetup struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Zoom   float64 `json:"zoom,omitempty"`
}

// Action is one recorded input.
type Action struct {
	Op     string   `json:"op"`
	Floor  floor.ID `json:"floor,omitempty"`
	Tool   string   `json:"tool,omitempty"`
	X      float64  `json:"x,omitempty"`
	Y      float64  `json:"y,omitempty"`
	Shift  bool     `json:"shift,omitempty"`
	Ctrl   bool     `json:"ctrl,omitempty"`
	Button string   `json:"button,omitempty"`
	Value  string   `json:"value,omitempty"`
	On     bool     `json:"on,omitempty"`
	Width  float64  `json:"width,omitempty"`
	Height float64  `json:"height,omitempty"`
}

// ActionError reports which action of a script failed.
type ActionError struct {
	Index int
	Op    string
	Err   error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action %d (%s): %v", e.Index, e.Op, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

// Load decodes a script.
func Load(r io.Reader) (*Script, error) {
	var s Script
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode session script: %w", err)
	}
	return &s, nil
}

// LoadFile decodes a script from disk.
func LoadFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// EngineOptions applies the script's overrides to base.
func (s *Script) EngineOptions(base drafting.Options) drafting.Options {
	if s.Options.Snap != nil {
		base.Snap = *s.Options.Snap
	}
	if s.Options.Ortho != nil {
		base.Ortho = *s.Options.Ortho
	}
	if s.Options.WallThicknessMM > 0 {
		base.WallThicknessMM = s.Options.WallThicknessMM
	}
	if s.Options.SequentialIDs {
		base.NewID = drafting.SequentialIDs()
	}
	return base
}

// Replayer feeds a script into an engine.
type Replayer struct {
	// ContinueOnError turns precondition failures into notices and keeps going,
	// the way the drawing board shows an alert and waits for the next click.
	ContinueOnError bool
	// Notices collects messages emitted while replaying.
	Notices []string
}

// preconditions are failures the user is told about and can recover from.
var preconditions = []error{
	drafting.ErrScaleNotSet,
	drafting.ErrMergeSelection,
	drafting.ErrNoSeparatingBeams,
	drafting.ErrRenameSelection,
	drafting.ErrNoBeamsSelected,
	floor.ErrInvalidScale,
}

func isPrecondition(err error) bool {
	for _, p := range preconditions {
		if errors.Is(err, p) {
			return true
		}
	}
	return false
}

// Replay sets the floors up and runs every action in order.
func (r *Replayer) Replay(e *drafting.Engine, s *Script) error {
	e.On(drafting.EventNotice, func(ev drafting.Event) {
		r.Notices = append(r.Notices, ev.Message)
	})
	for _, id := range floor.IDs {
		setup, ok := s.Floors[id]
		if !ok {
			continue
		}
		if err := e.LoadImage(id, setup.Width, setup.Height); err != nil {
			return err
		}
		if setup.Zoom > 0 {
			if err := e.SetZoom(id, setup.Zoom); err != nil {
				return err
			}
		}
	}
	for i, a := range s.Actions {
		err := r.apply(e, a)
		if err == nil {
			continue
		}
		if r.ContinueOnError && isPrecondition(err) {
			continue
		}
		return &ActionError{Index: i, Op: a.Op, Err: err}
	}
	return nil
}

func (a Action) pointer() drafting.Pointer {
	p := drafting.Pointer{Pos: geometry.Pt(a.X, a.Y), Shift: a.Shift, Ctrl: a.Ctrl}
	if a.Button == "secondary" || a.Button == "right" {
		p.Button = drafting.ButtonSecondary
	}
	return p
}

func (a Action) floorOr(e *drafting.Engine) floor.ID {
	if a.Floor != "" {
		return a.Floor
	}
	return e.Active()
}

func (r *Replayer) apply(e *drafting.Engine, a Action) error {
	switch a.Op {
	case "tool":
		t, err := drafting.ParseTool(a.Tool)
		if err != nil {
			return err
		}
		e.SelectTool(t)
	case "down":
		return e.PointerDown(a.floorOr(e), a.pointer())
	case "move":
		e.PointerMove(a.floorOr(e), a.pointer())
	case "up":
		e.PointerUp()
	case "click":
		id := a.floorOr(e)
		if err := e.PointerDown(id, a.pointer()); err != nil {
			return err
		}
		e.PointerUp()
	case "cancel":
		e.Cancel(a.floorOr(e))
	case "activate":
		return e.SetActive(a.floorOr(e))
	case "image":
		return e.LoadImage(a.floorOr(e), a.Width, a.Height)
	case "snap":
		e.SetSnap(a.On)
	case "ortho":
		e.SetOrtho(a.On)
	case "respond":
		return e.Respond(a.Value)
	case "dismiss":
		e.Dismiss()
	case "merge":
		_, err := e.Merge()
		return err
	case "rename":
		return e.Rename(a.Value)
	case "type":
		return e.SetBeamType(floor.ParseBeamType(a.Value))
	case "delete":
		return e.DeleteSelection()
	case "undo":
		e.Undo()
	case "redo":
		e.Redo()
	case "clear":
		return e.Clear()
	default:
		return fmt.Errorf("unknown op %q", a.Op)
	}
	return nil
}
