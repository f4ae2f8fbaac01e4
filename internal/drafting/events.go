package drafting

import "github.com/alexiusacademia/gorcdraft/internal/floor"

// EventType identifies engine events.
type EventType int

const (
	EventToolChanged EventType = iota
	EventActiveFloorChanged
	EventDraftChanged
	EventStructureChanged
	EventSelectionChanged
	EventScaleSet
	EventPrompt
	EventNotice
)

// Event carries the floor an event concerns and, for notices and prompts, a message.
type Event struct {
	Type    EventType
	Floor   floor.ID
	Message string
}

// EventListener is a callback for engine events.
type EventListener func(Event)

// On registers a listener for the given event type.
func (e *Engine) On(event EventType, listener EventListener) {
	e.listeners[event] = append(e.listeners[event], listener)
}

func (e *Engine) emit(ev Event) {
	for _, l := range e.listeners[ev.Type] {
		l(ev)
	}
}

func (e *Engine) notice(id floor.ID, msg string) {
	e.emit(Event{Type: EventNotice, Floor: id, Message: msg})
}
