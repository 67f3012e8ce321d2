package scrim

import (
	"github.com/lixenwraith/scrim/event"
)

// OnEventView attaches per-event callbacks to a child view. The child
// sees every event first; the callback table only answers events the
// child ignored, so a child handling Left keeps Left to itself.
type OnEventView struct {
	ViewWrapper
	callbacks map[event.Event]Callback
}

// NewOnEventView wraps v with an empty interception table
func NewOnEventView(v View) *OnEventView {
	return &OnEventView{
		ViewWrapper: WrapView(v),
		callbacks:   make(map[event.Event]Callback),
	}
}

// On registers cb for the exact event value. Chainable.
func (o *OnEventView) On(ev event.Event, cb Callback) *OnEventView {
	o.callbacks[ev] = cb
	return o
}

// OnChar registers cb for a printable key
func (o *OnEventView) OnChar(r rune, cb Callback) *OnEventView {
	return o.On(event.Char(r), cb)
}

func (o *OnEventView) OnEvent(ev event.Event) EventResult {
	if res := o.child.OnEvent(ev); res.IsConsumed() {
		return res
	}
	if cb, ok := o.callbacks[ev]; ok {
		return ConsumedWith(cb)
	}
	return Ignored()
}
