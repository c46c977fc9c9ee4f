package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// ScenariosMsg replaces the scenario list and shows its first entry.
type ScenariosMsg []Scenario

// Program runs a Model in the terminal. Other goroutines talk to it
// through Send.
type Program struct {
	model   Model
	options []tea.ProgramOption
	program *tea.Program

	// Message queue - buffered channel drained by a single goroutine.
	// This decouples callers from tea.Program.Send() which can block.
	msgQueue chan tea.Msg

	// Shutdown coordination
	done     chan struct{}
	doneOnce sync.Once
	started  chan struct{}
}

// NewProgram creates a program for m. Extra options are passed to
// Bubble Tea after the alt screen option.
func NewProgram(m Model, opts ...tea.ProgramOption) *Program {
	return &Program{
		model:    m,
		options:  append([]tea.ProgramOption{tea.WithAltScreen()}, opts...),
		msgQueue: make(chan tea.Msg, 256),
		done:     make(chan struct{}),
		started:  make(chan struct{}),
	}
}

// Send queues a message for delivery to the model.
// Blocks until the message is queued or the program has exited.
func (p *Program) Send(msg tea.Msg) {
	select {
	case <-p.done:
	case p.msgQueue <- msg:
	}
}

// Run starts the TUI and blocks until exit.
func (p *Program) Run() error {
	p.program = tea.NewProgram(p.model, p.options...)
	close(p.started)

	// Single goroutine drains message queue to Bubble Tea.
	go func() {
		for {
			select {
			case <-p.done:
				return
			case msg := <-p.msgQueue:
				p.program.Send(msg)
			}
		}
	}()

	_, err := p.program.Run()

	p.doneOnce.Do(func() {
		close(p.done)
	})
	return err
}

// Quit asks the program to exit.
func (p *Program) Quit() {
	select {
	case <-p.started:
		p.program.Quit()
	default:
	}
	p.doneOnce.Do(func() {
		close(p.done)
	})
}

// Done returns a channel that closes when the program exits.
func (p *Program) Done() <-chan struct{} {
	return p.done
}
