package printing

import (
	"fmt"
	"sync"
)

// State is the lifecycle position of one job's printer socket.
type State string

const (
	// StateIdle is the state before any dial attempt.
	StateIdle State = "idle"
	// StateConnecting covers the TCP dial to the printer.
	StateConnecting State = "connecting"
	// StateSending covers writing the label bytes.
	StateSending State = "sending"
	// StateTimedOut means the connect or write deadline expired.
	StateTimedOut State = "timed_out"
	// StateClosed is the terminal success state.
	StateClosed State = "closed"
	// StateFailed is the terminal failure state.
	StateFailed State = "failed"
)

var transitions = map[State][]State{
	StateIdle:       {StateConnecting},
	StateConnecting: {StateSending, StateTimedOut, StateFailed},
	StateSending:    {StateClosed, StateTimedOut, StateFailed},
	StateTimedOut:   {StateFailed},
}

// Valid reports whether s is a known state.
func (s State) Valid() bool {
	switch s {
	case StateIdle, StateConnecting, StateSending, StateTimedOut, StateClosed, StateFailed:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateClosed || s == StateFailed
}

// CanTransition reports whether from → to is an edge of the job state machine.
func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// StateObserver is notified on every accepted transition.
type StateObserver func(from, to State)

// Tracker records the states one job passes through.
// It is safe for concurrent use.
type Tracker struct {
	mu       sync.Mutex
	path     []State
	observer StateObserver
}

// NewTracker returns a tracker positioned at StateIdle.
func NewTracker(observer StateObserver) *Tracker {
	return &Tracker{path: []State{StateIdle}, observer: observer}
}

// Advance moves the tracker to the next state.
func (t *Tracker) Advance(to State) error {
	t.mu.Lock()
	from := t.path[len(t.path)-1]
	if !CanTransition(from, to) {
		t.mu.Unlock()
		return fmt.Errorf("invalid job state transition %s -> %s", from, to)
	}
	t.path = append(t.path, to)
	observer := t.observer
	t.mu.Unlock()

	if observer != nil {
		observer(from, to)
	}
	return nil
}

// State returns the current state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.path[len(t.path)-1]
}

// Path returns a copy of every state visited, starting with StateIdle.
func (t *Tracker) Path() []State {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]State, len(t.path))
	copy(out, t.path)
	return out
}
