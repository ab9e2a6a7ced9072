// Package app runs the interactive frame loop and owns the mode state.
package app

import "fmt"

// Mode selects what the loop does with each frame.
type Mode int

const (
	ModeObject Mode = iota
	ModeMedicine
)

// String returns the short mode name shown in the status caption.
func (m Mode) String() string {
	if m == ModeMedicine {
		return "medicine"
	}
	return "object"
}

// Announcement returns the sentence spoken when the mode is entered.
func (m Mode) Announcement() string {
	if m == ModeMedicine {
		return "Medicine mode"
	}
	return "Object mode"
}

// statusCaption is the keyboard help line drawn at the bottom of every
// frame.
func statusCaption(m Mode) string {
	return fmt.Sprintf("Mode: %s (o=object, m=medicine, q=quit)", m)
}
