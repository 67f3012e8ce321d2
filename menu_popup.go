package scrim

import (
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/scrim/event"
	"github.com/lixenwraith/scrim/geom"
	"github.com/lixenwraith/scrim/theme"
)

// MenuPopup is a bordered floating menu over one MenuTree. It is pushed
// as a floating layer by the menubar or by a parent popup when a subtree
// is opened.
type MenuPopup struct {
	menu      *MenuTree
	focus     int
	onDismiss Callback
	onAction  Callback
	lastSize  geom.Vec2
}

// NewMenuPopup creates a popup listing the items of menu
func NewMenuPopup(menu *MenuTree) *MenuPopup {
	return &MenuPopup{menu: menu}
}

// OnDismiss sets a callback to run when the popup is closed without
// activating an item. Chainable.
func (m *MenuPopup) OnDismiss(cb Callback) *MenuPopup {
	m.onDismiss = cb
	return m
}

// OnAction sets a callback to run after any leaf item is activated.
// Chainable.
func (m *MenuPopup) OnAction(cb Callback) *MenuPopup {
	m.onAction = cb
	return m
}

// itemWidth returns the columns one item needs: delimiters collapse to a
// single line cell, subtrees reserve room for the ">>" marker
func itemWidth(item *MenuItem) int {
	switch {
	case item.IsDelimiter():
		return 1
	case item.IsSubtree():
		return runewidth.StringWidth(item.Label()) + 3
	default:
		return runewidth.StringWidth(item.Label())
	}
}

func (m *MenuPopup) maxItemWidth() int {
	w := 1
	for _, item := range m.menu.children {
		if iw := itemWidth(item); iw > w {
			w = iw
		}
	}
	return w
}

// Draw renders the border and one row per item, highlighting the focused
// one
func (m *MenuPopup) Draw(p *Printer) {
	if p.Size().X < 2 || p.Size().Y < 2 {
		return
	}
	p.WithColor(theme.StylePrimary(), func(p *Printer) {
		p.PrintBox(geom.Zero, p.Size())
	})
	inner := p.ShrinkedCentered(geom.New(2, 2))
	for i, item := range m.menu.children {
		inner.WithSelection(i == m.focus, func(p *Printer) {
			switch {
			case item.IsDelimiter():
				p.PrintHLine(geom.New(0, i), p.Size().X, "─")
			case item.IsSubtree():
				if p.Size().X < 4 {
					return
				}
				p.PrintHLine(geom.New(0, i), p.Size().X, " ")
				p.Print(geom.New(1, i), item.Label())
				p.Print(geom.New(p.Size().X-3, i), ">>")
			default:
				if p.Size().X < 2 {
					return
				}
				p.PrintHLine(geom.New(0, i), p.Size().X, " ")
				p.Print(geom.New(1, i), item.Label())
			}
		})
	}
}

// Layout records the assigned size for mouse hit testing
func (m *MenuPopup) Layout(size geom.Vec2) {
	m.lastSize = size
}

// RequiredSize asks for the widest item plus borders and padding, and one
// row per item
func (m *MenuPopup) RequiredSize(constraint geom.Vec2) geom.Vec2 {
	return geom.New(m.maxItemWidth()+4, m.menu.Len()+2)
}

// OnEvent drives menu navigation. A mouse press anywhere outside the
// item area, the border included, dismisses the popup.
func (m *MenuPopup) OnEvent(ev event.Event) EventResult {
	ev = ev.Relativized(geom.New(1, 1))
	switch ev.Type {
	case event.EventKey:
		switch ev.Key {
		case event.KeyUp:
			m.scrollUp(1, true)
		case event.KeyPageUp:
			m.scrollUp(5, false)
		case event.KeyDown:
			m.scrollDown(1, true)
		case event.KeyPageDown:
			m.scrollDown(5, false)
		case event.KeyHome:
			m.focus = 0
		case event.KeyEnd:
			if m.menu.Len() > 0 {
				m.focus = m.menu.Len() - 1
			}
		case event.KeyRight:
			if m.menu.Len() > 0 && m.menu.children[m.focus].IsSubtree() {
				return m.makeSubtreeResult(m.menu.children[m.focus].tree)
			}
			return Ignored()
		case event.KeyEnter:
			if m.menu.Len() > 0 && !m.menu.children[m.focus].IsDelimiter() {
				return m.submit()
			}
			return Ignored()
		case event.KeyEscape:
			return m.dismiss()
		default:
			return Ignored()
		}
		return Consumed()
	case event.EventMouse:
		inner := m.lastSize.SaturatingSub(geom.New(2, 2))
		local, ok := ev.MouseLocal()
		switch {
		case ev.Action == event.MouseActionPress && ok && local.StrictlyFitsIn(inner):
			if local.Y < m.menu.Len() && !m.menu.children[local.Y].IsDelimiter() {
				m.focus = local.Y
			}
		case ev.Action == event.MouseActionRelease && ev.Btn == event.MouseBtnLeft &&
			ok && local.StrictlyFitsIn(inner) && local.Y < m.menu.Len() &&
			local.Y == m.focus && !m.menu.children[m.focus].IsDelimiter():
			return m.submit()
		case ev.Action == event.MouseActionPress:
			return m.dismiss()
		default:
			return Ignored()
		}
		return Consumed()
	}
	return Ignored()
}

// scrollUp moves focus up by n selectable items, skipping delimiters.
// With cycle set, motion past the first item wraps to the last.
func (m *MenuPopup) scrollUp(n int, cycle bool) {
	if !m.menu.hasSelectable() {
		return
	}
	for n > 0 {
		if m.focus > 0 {
			m.focus--
		} else if cycle {
			m.focus = m.menu.Len() - 1
		} else {
			break
		}
		if !m.menu.children[m.focus].IsDelimiter() {
			n--
		}
	}
}

func (m *MenuPopup) scrollDown(n int, cycle bool) {
	if !m.menu.hasSelectable() {
		return
	}
	for n > 0 {
		if m.focus+1 < m.menu.Len() {
			m.focus++
		} else if cycle {
			m.focus = 0
		} else {
			break
		}
		if !m.menu.children[m.focus].IsDelimiter() {
			n--
		}
	}
}

// submit activates the focused item. Leaves pop the popup, then run the
// action callback, then the leaf's own callback; subtrees open a child
// popup.
func (m *MenuPopup) submit() EventResult {
	item := m.menu.children[m.focus]
	switch {
	case item.IsLeaf():
		actionCb := m.onAction
		leafCb := item.cb
		return ConsumedWith(func(a *App) {
			a.PopLayer()
			if actionCb != nil {
				actionCb(a)
			}
			if leafCb != nil {
				leafCb(a)
			}
		})
	case item.IsSubtree():
		return m.makeSubtreeResult(item.tree)
	}
	panic("menu popup: submit on a delimiter item")
}

// dismiss closes the popup without activating anything
func (m *MenuPopup) dismiss() EventResult {
	dismissCb := m.onDismiss
	return ConsumedWith(func(a *App) {
		if dismissCb != nil {
			dismissCb(a)
		}
		a.PopLayer()
	})
}

// makeSubtreeResult builds the callback that pushes a child popup. The
// child floats at an offset relative to this popup: just past its right
// edge, level with the focused row. Left closes the child and returns
// here.
func (m *MenuPopup) makeSubtreeResult(tree *MenuTree) EventResult {
	offset := geom.New(m.maxItemWidth()+4, m.focus)
	actionCb := m.onAction
	return ConsumedWith(func(a *App) {
		a.Screen().AddLayerAt(
			PositionParent(offset),
			NewOnEventView(
				NewMenuPopup(tree).OnAction(func(a *App) {
					a.PopLayer()
					if actionCb != nil {
						actionCb(a)
					}
				}),
			).On(event.FromKey(event.KeyLeft), func(a *App) {
				a.PopLayer()
			}),
		)
	})
}

// TakeFocus accepts focus; popups are always interactive
func (m *MenuPopup) TakeFocus(source Direction) bool {
	return true
}

func (m *MenuPopup) CallOnAny(sel Selector, fn func(View)) {
	if sel.Matches(m) {
		fn(m)
	}
}

func (m *MenuPopup) FocusView(sel Selector) error {
	if sel.Matches(m) {
		return nil
	}
	return ErrViewNotFound
}

func (t *MenuTree) hasSelectable() bool {
	for _, item := range t.children {
		if !item.IsDelimiter() {
			return true
		}
	}
	return false
}
