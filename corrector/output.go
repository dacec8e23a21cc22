package corrector

import (
	"github.com/Alfex4936/corrector/internal/render"
)

// Phase is the state of the output region.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseChecking
	PhaseResult
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseChecking:
		return "checking"
	case PhaseResult:
		return "result"
	case PhaseError:
		return "error"
	}
	return "unknown"
}

// State is what the output region should show.
type State struct {
	Seq     uint64 // generation of the check that produced this state
	Phase   Phase
	Display *render.Display // PhaseResult only
	Message string          // PhaseError only; safe to show
	Err     error           // PhaseError only; for logs, never shown
}

// Output is the display region owned by a Client. Update is called with
// the client's lock held: it must not call back into the client.
type Output interface {
	Update(State)
}

// OutputFunc adapts a function to Output.
type OutputFunc func(State)

// Update implements Output.
func (f OutputFunc) Update(s State) { f(s) }

// Input is the text control a Client reads on Trigger.
type Input interface {
	Value() string
}

// StaticInput is an Input with fixed text.
type StaticInput string

// Value implements Input.
func (s StaticInput) Value() string { return string(s) }
