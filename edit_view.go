package scrim

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/scrim/event"
	"github.com/lixenwraith/scrim/geom"
	"github.com/lixenwraith/scrim/theme"
)

// EditView is a single-line text input box.
//
// Content is kept as a Go string with the cursor and scroll offset as
// byte indices into it; both always sit on grapheme boundaries. When the
// content is wider than the view, the front is hidden so the cursor
// stays visible.
type EditView struct {
	content string
	// Cursor position in the content, in bytes
	cursor int
	// Bytes hidden at the front when the content overflows the view
	offset int
	// Width promised by the last layout
	lastLength int

	onEdit   func(a *App, content string, cursor int)
	onSubmit func(a *App, content string)

	// Render '*' instead of the content
	secret  bool
	filler  rune
	enabled bool
}

// NewEditView creates an empty input box
func NewEditView() *EditView {
	return &EditView{filler: '_', enabled: true}
}

// Secret hides the content, showing only '*'. Chainable.
func (e *EditView) Secret() *EditView {
	e.secret = true
	return e
}

// Disabled makes the view refuse focus and render flat. Chainable.
func (e *EditView) Disabled() *EditView {
	e.enabled = false
	return e
}

// OnEdit sets a callback run after every content change, given the new
// content and cursor position. Chainable.
func (e *EditView) OnEdit(cb func(a *App, content string, cursor int)) *EditView {
	e.onEdit = cb
	return e
}

// OnSubmit sets a callback run when Enter is pressed, given the content.
// Chainable.
func (e *EditView) OnSubmit(cb func(a *App, content string)) *EditView {
	e.onSubmit = cb
	return e
}

// SetFiller sets the rune drawn over unused cells, '_' unless changed
func (e *EditView) SetFiller(r rune) {
	e.filler = r
}

// SetEnabled controls whether the view accepts focus
func (e *EditView) SetEnabled(enabled bool) {
	e.enabled = enabled
}

// Enabled reports whether the view accepts focus
func (e *EditView) Enabled() bool {
	return e.enabled
}

// SetContent replaces the content and moves the cursor to the end
func (e *EditView) SetContent(content string) {
	e.content = content
	e.offset = 0
	e.SetCursor(len(content))
}

// Content returns the current text
func (e *EditView) Content() string {
	return e.content
}

// SetCursor moves the cursor to a byte position and scrolls it into view
func (e *EditView) SetCursor(cursor int) {
	e.cursor = cursor
	e.keepCursorInView()
}

// Cursor returns the cursor's byte position in the content
func (e *EditView) Cursor() int {
	return e.cursor
}

// insert adds r at the cursor and advances past it
func (e *EditView) insert(r rune) {
	s := string(r)
	e.content = e.content[:e.cursor] + s + e.content[e.cursor:]
	e.cursor += len(s)
}

// remove drops n bytes at the cursor
func (e *EditView) remove(n int) {
	e.content = e.content[:e.cursor] + e.content[e.cursor+n:]
}

// keepCursorInView adjusts the scroll offset so the cursor cell is
// always inside the promised width
func (e *EditView) keepCursorInView() {
	if e.cursor < e.offset {
		e.offset = e.cursor
	} else {
		// Against the right wall: find the room the cursor cell needs,
		// then fit as much of the preceding text as possible
		cursorWidth := 1
		if e.cursor < len(e.content) {
			cursorWidth = runewidth.StringWidth(firstGrapheme(e.content[e.cursor:]))
		}
		if cursorWidth > e.lastLength {
			return
		}
		available := e.lastLength - cursorWidth
		suffix := simpleSuffix(e.content[e.offset:e.cursor], available)
		e.offset = e.cursor - suffix.length
	}

	// Reclaim slack on the right when the tail got shorter
	if runewidth.StringWidth(e.content[e.offset:]) < e.lastLength {
		suffix := simpleSuffix(e.content, e.lastLength-1)
		e.offset = len(e.content) - suffix.length
	}
}

// Draw renders the visible slice reversed while enabled, with the cursor
// cell printed back in plain style so it shows as a block
func (e *EditView) Draw(p *Printer) {
	if p.Size().X != e.lastLength {
		panic(fmt.Sprintf("edit view drawn at width %d, laid out for %d", p.Size().X, e.lastLength))
	}

	width := runewidth.StringWidth(e.content)
	p.WithColor(theme.StyleSecondary(), func(p *Printer) {
		effect := theme.EffectReverse
		if !e.enabled {
			effect = theme.EffectSimple
		}
		p.WithEffect(effect, func(p *Printer) {
			if width < e.lastLength {
				if e.secret {
					p.PrintHLine(geom.Zero, width, "*")
				} else {
					p.Print(geom.Zero, e.content)
				}
				p.PrintHLine(geom.New(width, 0), p.Size().X-width, string(e.filler))
			} else {
				visible := e.content[e.offset:]
				pre := simplePrefix(visible, e.lastLength)
				if e.secret {
					p.PrintHLine(geom.Zero, pre.width, "*")
				} else {
					p.Print(geom.Zero, visible[:pre.length])
				}
				if pre.width < e.lastLength {
					p.PrintHLine(geom.New(pre.width, 0), e.lastLength-pre.width, string(e.filler))
				}
			}
		})

		if p.Focused() {
			c := "_"
			if e.cursor < len(e.content) {
				selected := firstGrapheme(e.content[e.cursor:])
				if e.secret {
					c = strings.Repeat("*", runewidth.StringWidth(selected))
				} else {
					c = selected
				}
			}
			x := runewidth.StringWidth(e.content[e.offset:e.cursor])
			p.Print(geom.New(x, 0), c)
		}
	})
}

// Layout records the promised width for scrolling
func (e *EditView) Layout(size geom.Vec2) {
	e.lastLength = size.X
}

// RequiredSize asks for the content plus one cell for the end cursor
func (e *EditView) RequiredSize(constraint geom.Vec2) geom.Vec2 {
	return geom.New(runewidth.StringWidth(e.content)+1, 1)
}

// OnEvent edits the content. Every change reports through the OnEdit
// callback; Enter reports through OnSubmit instead.
func (e *EditView) OnEvent(ev event.Event) EventResult {
	if ev.Type != event.EventKey {
		return Ignored()
	}
	switch {
	case ev.Key == event.KeyRune && ev.Mod == event.ModNone:
		e.insert(ev.Rune)
	case ev.Key == event.KeyHome:
		e.cursor = 0
	case ev.Key == event.KeyEnd:
		e.cursor = len(e.content)
	case ev.Key == event.KeyLeft && e.cursor > 0:
		e.cursor -= len(lastGrapheme(e.content[:e.cursor]))
	case ev.Key == event.KeyRight && e.cursor < len(e.content):
		e.cursor += len(firstGrapheme(e.content[e.cursor:]))
	case ev.Key == event.KeyBackspace && e.cursor > 0:
		n := len(lastGrapheme(e.content[:e.cursor]))
		e.cursor -= n
		e.remove(n)
	case ev.Key == event.KeyDelete && e.cursor < len(e.content):
		e.remove(len(firstGrapheme(e.content[e.cursor:])))
	case ev.Key == event.KeyEnter && e.onSubmit != nil:
		submitCb := e.onSubmit
		content := e.content
		return ConsumedWith(func(a *App) {
			submitCb(a, content)
		})
	default:
		return Ignored()
	}

	e.keepCursorInView()

	if e.onEdit != nil {
		editCb := e.onEdit
		content := e.content
		cursor := e.cursor
		return ConsumedWith(func(a *App) {
			editCb(a, content, cursor)
		})
	}
	return Consumed()
}

// TakeFocus accepts focus while the view is enabled
func (e *EditView) TakeFocus(source Direction) bool {
	return e.enabled
}

func (e *EditView) CallOnAny(sel Selector, fn func(View)) {
	if sel.Matches(e) {
		fn(e)
	}
}

func (e *EditView) FocusView(sel Selector) error {
	if sel.Matches(e) {
		return nil
	}
	return ErrViewNotFound
}
