package scrim

import (
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/scrim/event"
	"github.com/lixenwraith/scrim/geom"
	"github.com/lixenwraith/scrim/theme"
)

type menubarState uint8

const (
	// Bar is not in use, hidden when autohide is on
	menubarFree menubarState = iota
	// Bar has focus and moves its selection
	menubarSelected
	// A menu popup is open; the bar stays visible behind it
	menubarSubmenu
)

type menubarItem struct {
	label string
	tree  *MenuTree
}

// Menubar is the horizontal menu bar drawn over the top row of the
// terminal. It holds an ordered list of titled menu trees and opens the
// selected one as a floating MenuPopup.
type Menubar struct {
	autohide bool
	items    []*menubarItem
	focus    int
	state    menubarState
}

// NewMenubar creates an empty bar that hides itself while unused
func NewMenubar() *Menubar {
	return &Menubar{autohide: true}
}

// AddSubtree appends a titled menu to the bar. Chainable.
func (m *Menubar) AddSubtree(label string, tree *MenuTree) *Menubar {
	m.items = append(m.items, &menubarItem{label: label, tree: tree})
	return m
}

// Len returns the number of menus on the bar
func (m *Menubar) Len() int {
	return len(m.items)
}

// IsEmpty reports whether the bar has no menus
func (m *Menubar) IsEmpty() bool {
	return len(m.items) == 0
}

// Autohide reports whether the bar hides itself while unused
func (m *Menubar) Autohide() bool {
	return m.autohide
}

// SetAutohide controls whether the bar hides itself while unused
func (m *Menubar) SetAutohide(on bool) {
	m.autohide = on
}

// Visible reports whether the bar currently occupies the top row
func (m *Menubar) Visible() bool {
	return !m.autohide || m.state != menubarFree
}

// ReceiveEvents reports whether the bar holds input focus
func (m *Menubar) ReceiveEvents() bool {
	return m.state == menubarSelected
}

// HasSubmenu reports whether one of the bar's menus is open
func (m *Menubar) HasSubmenu() bool {
	return m.state == menubarSubmenu
}

func (m *Menubar) hide() {
	m.state = menubarFree
}

// itemOffsetX returns the column the i-th title starts at, counting the
// one-cell padding around every title
func (m *Menubar) itemOffsetX(i int) int {
	x := 0
	for _, item := range m.items[:i] {
		x += runewidth.StringWidth(item.label) + 2
	}
	return x
}

// Draw renders the bar over one row, highlighting the selection while the
// bar is in use
func (m *Menubar) Draw(p *Printer) {
	p.WithColor(theme.StylePrimary(), func(p *Printer) {
		p.PrintHLine(geom.Zero, p.Size().X, " ")
	})
	x := 0
	for i, item := range m.items {
		selected := m.state != menubarFree && i == m.focus
		label := " " + item.label + " "
		p.WithSelection(selected, func(p *Printer) {
			p.Print(geom.New(x, 0), label)
		})
		x += runewidth.StringWidth(item.label) + 2
	}
}

func (m *Menubar) Layout(size geom.Vec2) {}

func (m *Menubar) RequiredSize(constraint geom.Vec2) geom.Vec2 {
	return geom.New(m.itemOffsetX(len(m.items)), 1)
}

// OnEvent moves the selection and opens menus. It only runs while the bar
// reports ReceiveEvents.
func (m *Menubar) OnEvent(ev event.Event) EventResult {
	switch ev.Type {
	case event.EventKey:
		switch ev.Key {
		case event.KeyEscape:
			m.hide()
			return ConsumedWith(func(a *App) {
				a.Clear()
			})
		case event.KeyLeft:
			// Skip menus with nothing to show, wrapping around. The
			// loop is bounded in case every menu is empty.
			for range m.items {
				if m.focus > 0 {
					m.focus--
				} else {
					m.focus = len(m.items) - 1
				}
				if !m.items[m.focus].tree.IsEmpty() {
					break
				}
			}
		case event.KeyRight:
			for range m.items {
				if m.focus+1 < len(m.items) {
					m.focus++
				} else {
					m.focus = 0
				}
				if !m.items[m.focus].tree.IsEmpty() {
					break
				}
			}
		case event.KeyDown, event.KeyEnter:
			return m.selectChild()
		default:
			return Ignored()
		}
		return Consumed()
	case event.EventMouse:
		if ev.GrabsFocus() && ev.Pos.Y == 0 {
			if i, ok := m.itemAt(ev.Pos.X); ok {
				m.focus = i
				return m.selectChild()
			}
		}
		return Ignored()
	}
	return Ignored()
}

// itemAt maps a bar column to the menu drawn there
func (m *Menubar) itemAt(x int) (int, bool) {
	cum := 0
	for i, item := range m.items {
		w := runewidth.StringWidth(item.label) + 2
		if x >= cum && x < cum+w {
			return i, true
		}
		cum += w
	}
	return 0, false
}

// selectChild opens the focused menu as a floating popup under its title
func (m *Menubar) selectChild() EventResult {
	if len(m.items) == 0 || m.items[m.focus].tree.IsEmpty() {
		return Consumed()
	}
	tree := m.items[m.focus].tree
	m.state = menubarSubmenu
	// When the bar autohides, the screen still covers row 0 and popup
	// coordinates are screen coordinates; when the bar is pinned the
	// screen starts one row down and row 0 of the screen already sits
	// under the bar.
	y := 0
	if m.autohide {
		y = 1
	}
	offset := geom.New(m.itemOffsetX(m.focus), y)
	return ConsumedWith(func(a *App) {
		showMenuChild(a, offset, tree)
	})
}

// showMenuChild pushes the popup for one bar menu. Left and Right close
// it and reopen the neighbouring menu, unless the popup itself used the
// key to enter a subtree.
func showMenuChild(a *App, offset geom.Vec2, tree *MenuTree) {
	a.Screen().AddLayerAt(
		PositionAbsolute(offset),
		NewOnEventView(
			NewMenuPopup(tree).
				OnDismiss(func(a *App) {
					a.SelectMenubar()
				}).
				OnAction(func(a *App) {
					a.Menubar().hide()
				}),
		).On(event.FromKey(event.KeyRight), func(a *App) {
			a.PopLayer()
			a.SelectMenubar()
			a.Menubar().OnEvent(event.FromKey(event.KeyRight)).Process(a)
			a.Menubar().OnEvent(event.FromKey(event.KeyDown)).Process(a)
		}).On(event.FromKey(event.KeyLeft), func(a *App) {
			a.PopLayer()
			a.SelectMenubar()
			a.Menubar().OnEvent(event.FromKey(event.KeyLeft)).Process(a)
			a.Menubar().OnEvent(event.FromKey(event.KeyDown)).Process(a)
		}),
	)
}

// TakeFocus moves the bar into its selected state
func (m *Menubar) TakeFocus(source Direction) bool {
	m.state = menubarSelected
	return true
}

func (m *Menubar) CallOnAny(sel Selector, fn func(View)) {
	if sel.Matches(m) {
		fn(m)
	}
}

func (m *Menubar) FocusView(sel Selector) error {
	if sel.Matches(m) {
		return nil
	}
	return ErrViewNotFound
}
