package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// StripANSI removes escape sequences so text can be laid into cells.
func StripANSI(s string) string {
	var result strings.Builder
	inEscape := false
	for _, r := range s {
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}

// VisibleLen returns the visible display width of a string (excluding ANSI codes).
func VisibleLen(s string) int {
	return runewidth.StringWidth(StripANSI(s))
}

// Fit truncates or pads s to exactly width cells.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = runewidth.Truncate(StripANSI(s), width, "…")
	return runewidth.FillRight(s, width)
}

// Center places s in the middle of width cells.
func Center(s string, width int) string {
	s = StripANSI(s)
	n := runewidth.StringWidth(s)
	if n >= width {
		return Fit(s, width)
	}
	left := (width - n) / 2
	return Fit(strings.Repeat(" ", left)+s, width)
}
