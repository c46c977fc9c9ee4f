package lua

import "github.com/drake/dwbox/box"

// Host provides the bridge between Engine and the native backend.
// This abstraction decouples Engine from a specific toolkit,
// making it testable without a terminal or a window.
type Host interface {
	// NewWidget creates a native leaf. kind is "label" or "button".
	NewWidget(kind, name, text string) box.Widget

	// Print shows script output.
	Print(text string)
}
