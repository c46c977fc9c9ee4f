package box

import "errors"

var (
	// ErrInvalidChild is returned when a packed child is neither a Widget nor a *Box.
	ErrInvalidChild = errors.New("child must be a widget or a box")

	// ErrInvalidHints is returned for negative padding or sizes below Auto.
	ErrInvalidHints = errors.New("invalid pack hints")

	// ErrAlreadyPacked is returned when a box that already has a parent is packed again.
	ErrAlreadyPacked = errors.New("box already packed")

	// ErrCycle is returned when a box would contain itself, or is reached
	// twice while walking a tree.
	ErrCycle = errors.New("box tree cycle")

	// ErrDanglingReference is returned when a destroyed or nil box is used.
	ErrDanglingReference = errors.New("dangling box reference")

	// ErrIndex is returned for item indexes out of range.
	ErrIndex = errors.New("item index out of range")

	// ErrNoPlacer is returned by Resize when no Placer is given.
	ErrNoPlacer = errors.New("no placer")
)
