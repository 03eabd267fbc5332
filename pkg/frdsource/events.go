package frdsource

import "github.com/bft-labs/frdsource/internal/app"

// State is the lifecycle state of a Source.
type State = app.State

const (
	StateIdle      = app.StateIdle
	StateReading   = app.StateReading
	StateEmitting  = app.StateEmitting
	StateExhausted = app.StateExhausted
	StateFailed    = app.StateFailed
)

// StateChangeEvent describes one transition of a Source.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// EventHandler receives notifications from a Source and from Convert.
// Calls are made synchronously on the goroutine reading the stream.
type EventHandler interface {
	OnStateChange(event StateChangeEvent)
	OnFileDone(summary FileSummary)
}

// BaseEventHandler implements EventHandler with no-ops, for embedding.
type BaseEventHandler struct{}

func (BaseEventHandler) OnStateChange(StateChangeEvent) {}
func (BaseEventHandler) OnFileDone(FileSummary)         {}

// stateObserver adapts EventHandler to the internal observer interface.
type stateObserver struct {
	handler EventHandler
}

func (o stateObserver) OnStateChange(previous, current app.State, reason string) {
	o.handler.OnStateChange(StateChangeEvent{Previous: previous, Current: current, Reason: reason})
}
