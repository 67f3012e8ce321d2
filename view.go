// Package scrim is a retained-mode terminal UI toolkit. An App holds a
// tree of Views, drives it through a layout/draw/event cycle and renders
// through interchangeable backends.
package scrim

import (
	"errors"

	"github.com/lixenwraith/scrim/event"
	"github.com/lixenwraith/scrim/geom"
)

// ErrViewNotFound is returned when a selector matches no view
var ErrViewNotFound = errors.New("view not found")

// View is the widget contract. Everything on screen implements it.
type View interface {
	// Draw renders the view into the printer's bounds. Draw must not
	// mutate the view.
	Draw(p *Printer)

	// Layout fits the view to exactly size. Called before Draw whenever
	// geometry may have changed.
	Layout(size geom.Vec2)

	// RequiredSize returns the size the view wants given the constraint.
	// It may cache measurements but must not change visible state.
	RequiredSize(constraint geom.Vec2) geom.Vec2

	// OnEvent lets the view react to an input event
	OnEvent(ev event.Event) EventResult

	// TakeFocus offers focus arriving from the given direction and
	// reports whether the view accepted it. Meaningful only after the
	// first Layout.
	TakeFocus(source Direction) bool

	// CallOnAny runs fn on every view in the subtree the selector
	// matches
	CallOnAny(sel Selector, fn func(View))

	// FocusView moves focus to the first matching view, or returns
	// ErrViewNotFound
	FocusView(sel Selector) error
}

// Direction tells a view which way focus came from
type Direction uint8

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
	// DirFront is focus arriving from the user side, like a freshly
	// pushed layer
	DirFront
	// DirBack is focus arriving from behind, like a popped-back layer
	DirBack
)

// Selector picks views out of a tree, by name or by predicate
type Selector struct {
	name string
	pred func(View) bool
}

// ByName selects views wrapped in a NamedView with the given name
func ByName(name string) Selector {
	return Selector{name: name}
}

// ByPredicate selects views the function reports true for
func ByPredicate(pred func(View) bool) Selector {
	return Selector{pred: pred}
}

// Matches reports whether the selector picks the given view
func (s Selector) Matches(v View) bool {
	if s.name != "" {
		named, ok := v.(interface{ Name() string })
		return ok && named.Name() == s.name
	}
	if s.pred != nil {
		return s.pred(v)
	}
	return false
}
