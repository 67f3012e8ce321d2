// Package backend defines the capability contract between the UI engine and
// a terminal driver. The engine depends only on the Backend interface;
// swapping drivers requires no change to controller or view code.
package backend

import (
	"github.com/lixenwraith/scrim/event"
	"github.com/lixenwraith/scrim/geom"
	"github.com/lixenwraith/scrim/theme"
)

// Backend is implemented by every terminal driver. Exactly one backend
// instance is owned by the root controller for its entire lifetime.
//
// Drawing calls are only made from the controller goroutine. Input decoding
// happens on the driver's own goroutine (see StartInput) and is handed over
// through PollEvent.
type Backend interface {
	// ScreenSize returns the current terminal size in cells
	ScreenSize() geom.Vec2

	// HasColors reports whether the terminal can display colors
	HasColors() bool

	// SetColor makes p the active color pair for subsequent prints and
	// returns the previously active pair, so callers can restore it
	SetColor(p theme.ColorPair) theme.ColorPair

	// SetEffect enables a text effect for subsequent prints
	SetEffect(e theme.Effect)

	// UnsetEffect disables a text effect
	UnsetEffect(e theme.Effect)

	// PrintAt draws text at an absolute position using the active colors
	// and effects
	PrintAt(pos geom.Vec2, text string)

	// Clear fills the whole surface with the given background color
	Clear(c theme.Color)

	// Refresh flushes the pending frame to the terminal
	Refresh()

	// PollEvent returns the next pending input event without blocking.
	// The second result is false when no event is pending.
	PollEvent() (event.Event, bool)

	// StartInput launches the driver's input goroutine. The goroutine
	// decodes terminal input into events until stop is closed or the
	// input source fails, then exits without panicking.
	StartInput(stop <-chan struct{})

	// Finish releases the terminal. It must be safe to call more than
	// once.
	Finish()
}
