package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Alfex4936/corrector/corrector"
)

// stateMsg carries a client state into the Bubble Tea loop.
type stateMsg corrector.State

// Output is the corrector.Output of the TUI. States are queued on a
// channel and picked up by the program through Next.
type Output struct {
	ch   chan corrector.State
	done chan struct{}
	once sync.Once
}

// NewOutput creates an Output.
func NewOutput() *Output {
	return &Output{
		ch:   make(chan corrector.State, 16),
		done: make(chan struct{}),
	}
}

// Update implements corrector.Output. It drops states once the UI is closed.
func (o *Output) Update(s corrector.State) {
	select {
	case o.ch <- s:
	case <-o.done:
	}
}

// Next waits for the next state.
func (o *Output) Next() tea.Cmd {
	return func() tea.Msg {
		select {
		case s := <-o.ch:
			return stateMsg(s)
		case <-o.done:
			return nil
		}
	}
}

// Close stops delivery.
func (o *Output) Close() {
	o.once.Do(func() { close(o.done) })
}
