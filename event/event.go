package event

import "github.com/drake/dwbox/box"

// Kind identifies what happened to a widget or window.
type Kind int

const (
	Configure    Kind = iota // Window resized; Event.Layout holds the result
	Clicked                  // Button or item activated
	KeyPress                 // Key pressed while focused
	ValueChanged             // Percent, slider or spin value changed
	Destroy                  // Widget is going away
)

func (k Kind) String() string {
	switch k {
	case Configure:
		return "configure"
	case Clicked:
		return "clicked"
	case KeyPress:
		return "key-press"
	case ValueChanged:
		return "value-changed"
	case Destroy:
		return "destroy"
	}
	return "unknown"
}

// Event is the payload handed to handlers.
type Event struct {
	Kind   Kind
	Source box.Widget // Widget the event belongs to, nil for the window

	Width, Height int         // Configure
	Layout        *box.Layout // Configure, nil when the resize failed
	Err           error       // Configure

	Key   string // KeyPress
	Value int    // ValueChanged
}

// Handler reacts to an event and reports whether it was handled.
type Handler func(Event) bool
