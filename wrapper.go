package scrim

import (
	"github.com/lixenwraith/scrim/event"
	"github.com/lixenwraith/scrim/geom"
)

// ViewWrapper implements View by delegating everything to a single child.
// Decorating views embed it and override only what they change.
type ViewWrapper struct {
	child View
}

// WrapView makes a wrapper around v, ready for embedding
func WrapView(v View) ViewWrapper {
	return ViewWrapper{child: v}
}

// Child returns the wrapped view
func (w *ViewWrapper) Child() View {
	return w.child
}

func (w *ViewWrapper) Draw(p *Printer) {
	w.child.Draw(p)
}

func (w *ViewWrapper) Layout(size geom.Vec2) {
	w.child.Layout(size)
}

func (w *ViewWrapper) RequiredSize(constraint geom.Vec2) geom.Vec2 {
	return w.child.RequiredSize(constraint)
}

func (w *ViewWrapper) OnEvent(ev event.Event) EventResult {
	return w.child.OnEvent(ev)
}

func (w *ViewWrapper) TakeFocus(source Direction) bool {
	return w.child.TakeFocus(source)
}

func (w *ViewWrapper) CallOnAny(sel Selector, fn func(View)) {
	w.child.CallOnAny(sel, fn)
}

func (w *ViewWrapper) FocusView(sel Selector) error {
	return w.child.FocusView(sel)
}
