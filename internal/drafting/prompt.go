package drafting

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexiusacademia/gorcdraft/internal/floor"
)

// PromptKind identifies what a pending prompt is asking for.
type PromptKind int

const (
	// PromptScaleDistance asks for the real length, in meters, of the measured line.
	PromptScaleDistance PromptKind = iota
	// PromptMergeID asks for the id the merged beams will share.
	PromptMergeID
	// PromptConfirmRename asks whether to rename a beam onto an id another beam already uses.
	PromptConfirmRename
)

func (k PromptKind) String() string {
	switch k {
	case PromptScaleDistance:
		return "scale-distance"
	case PromptMergeID:
		return "merge-id"
	case PromptConfirmRename:
		return "confirm-rename"
	}
	return "unknown"
}

// Prompt is a question the engine is waiting on. Input is refused until it is
// answered with Respond or withdrawn with Dismiss.
type Prompt struct {
	Kind    PromptKind
	Floor   floor.ID
	Message string
	Default string

	pixels float64
	refs   []floor.Ref
	target string
}

// Pending returns the open prompt, or nil.
func (e *Engine) Pending() *Prompt {
	if e.prompt == nil {
		return nil
	}
	p := *e.prompt
	return &p
}

func (e *Engine) openPrompt(p *Prompt) {
	e.prompt = p
	e.emit(Event{Type: EventPrompt, Floor: p.Floor, Message: p.Message})
}

// Dismiss withdraws the open prompt without applying anything.
func (e *Engine) Dismiss() {
	e.prompt = nil
}

// Respond answers the open prompt. The prompt is closed whatever the outcome.
func (e *Engine) Respond(answer string) error {
	p := e.prompt
	if p == nil {
		return ErrNoPrompt
	}
	e.prompt = nil
	f := e.floors[p.Floor]
	answer = strings.TrimSpace(answer)

	switch p.Kind {
	case PromptScaleDistance:
		meters, err := strconv.ParseFloat(answer, 64)
		if answer == "" || err != nil {
			return nil
		}
		if err := f.Calibrate(p.pixels, meters); err != nil {
			return fmt.Errorf("%s: %w", f.ID, err)
		}
		e.emit(Event{Type: EventScaleSet, Floor: f.ID, Message: fmt.Sprintf("%.2f px/m", f.Scale)})
		e.notice(f.ID, fmt.Sprintf("%s Scale Set.", f.ID))
		return nil

	case PromptMergeID:
		if answer == "" {
			return nil
		}
		e.applyBeamMerge(f, p.refs, answer)
		return nil

	case PromptConfirmRename:
		if !isYes(answer) {
			return nil
		}
		e.applyRename(f, p.refs[0], p.target)
		return nil
	}
	return fmt.Errorf("unhandled prompt %v", p.Kind)
}

func isYes(s string) bool {
	switch strings.ToLower(s) {
	case "y", "yes", "ok", "true":
		return true
	}
	return false
}
