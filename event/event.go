// Package event defines the input event domain type shared by backends,
// views and the root controller.
//
// Event is a plain comparable value: it can be used directly as a map key,
// which is how the controller keeps its global callback table.
package event

import (
	"github.com/lixenwraith/scrim/geom"
)

// EventType distinguishes input event categories
type EventType uint8

const (
	EventKey EventType = iota
	EventMouse
	EventResize // Terminal was resized
	EventRefresh
	EventExit // Request to leave the event loop
)

// Event represents one input event.
//
// For mouse events, Pos is the absolute cell the event happened at and
// Offset accumulates the top-left corner of each view the event descends
// into; a view computes its local coordinates as Pos - Offset.
type Event struct {
	Type EventType
	Key  Key
	Rune rune
	Mod  Modifier

	// Mouse event fields
	Pos    geom.Vec2
	Offset geom.Vec2
	Btn    MouseButton
	Action MouseAction
}

// Char creates a printable key event
func Char(r rune) Event {
	return Event{Type: EventKey, Key: KeyRune, Rune: r}
}

// CtrlChar creates a Ctrl+letter key event
func CtrlChar(r rune) Event {
	return Event{Type: EventKey, Key: KeyRune, Rune: r, Mod: ModCtrl}
}

// FromKey creates a special-key event
func FromKey(k Key) Event {
	return Event{Type: EventKey, Key: k}
}

// Exit creates the event that stops the event loop
func Exit() Event {
	return Event{Type: EventExit}
}

// Refresh creates an event that forces a redraw cycle
func Refresh() Event {
	return Event{Type: EventRefresh}
}

// Resize creates a terminal-resize event
func Resize() Event {
	return Event{Type: EventResize}
}

// MousePress creates a button-press event at an absolute position
func MousePress(pos geom.Vec2, btn MouseButton) Event {
	return Event{Type: EventMouse, Pos: pos, Btn: btn, Action: MouseActionPress}
}

// MouseRelease creates a button-release event at an absolute position
func MouseRelease(pos geom.Vec2, btn MouseButton) Event {
	return Event{Type: EventMouse, Pos: pos, Btn: btn, Action: MouseActionRelease}
}

// Relativized shifts a mouse event's offset by topLeft, recording that the
// event has descended into a view whose origin is topLeft relative to the
// previous frame of reference. Non-mouse events pass through unchanged.
func (e Event) Relativized(topLeft geom.Vec2) Event {
	if e.Type == EventMouse {
		e.Offset = e.Offset.Add(topLeft)
	}
	return e
}

// GrabsFocus reports whether this event should move focus to the view
// under the cursor. Only real button presses do; wheel motion does not.
func (e Event) GrabsFocus() bool {
	if e.Type != EventMouse || e.Action != MouseActionPress {
		return false
	}
	switch e.Btn {
	case MouseBtnLeft, MouseBtnMiddle, MouseBtnRight:
		return true
	}
	return false
}

// MouseLocal returns the event position relative to the accumulated offset,
// or false if the position lies above or left of the receiving view.
func (e Event) MouseLocal() (geom.Vec2, bool) {
	if e.Type != EventMouse {
		return geom.Zero, false
	}
	return e.Pos.CheckedSub(e.Offset)
}
