package scrim

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/lixenwraith/scrim/backend"
	"github.com/lixenwraith/scrim/geom"
	"github.com/lixenwraith/scrim/theme"
)

// Printer is the drawing surface handed to View.Draw. It carries the
// backend, the active theme, an absolute offset and the granted bounds.
// All printing is clipped to those bounds; sub-printers narrow them.
type Printer struct {
	backend backend.Backend
	theme   *theme.Theme
	offset  geom.Vec2
	size    geom.Vec2
	focused bool
}

// NewPrinter makes a root printer covering size at the origin
func NewPrinter(b backend.Backend, th *theme.Theme, size geom.Vec2) *Printer {
	return &Printer{
		backend: b,
		theme:   th,
		size:    size,
		focused: true,
	}
}

// Size returns the granted bounds
func (p *Printer) Size() geom.Vec2 {
	return p.size
}

// Focused reports whether the view being drawn has focus
func (p *Printer) Focused() bool {
	return p.focused
}

// Theme returns the active theme
func (p *Printer) Theme() *theme.Theme {
	return p.theme
}

// Print draws text at pos, clipped to the printer bounds. A wide glyph
// that would cross the right edge is dropped whole, never halved.
func (p *Printer) Print(pos geom.Vec2, text string) {
	if pos.X < 0 || pos.Y < 0 || pos.Y >= p.size.Y || pos.X >= p.size.X {
		return
	}
	clipped := truncateByWidth(text, p.size.X-pos.X)
	if clipped == "" {
		return
	}
	p.backend.PrintAt(p.offset.Add(pos), clipped)
}

// PrintHLine draws sym repeated width times from start going right
func (p *Printer) PrintHLine(start geom.Vec2, width int, sym string) {
	if start.X < 0 || start.Y < 0 || start.Y >= p.size.Y || start.X >= p.size.X {
		return
	}
	symWidth := runewidth.StringWidth(sym)
	if symWidth == 0 {
		return
	}
	room := p.size.X - start.X
	if width*symWidth > room {
		width = room / symWidth
	}
	if width <= 0 {
		return
	}
	p.backend.PrintAt(p.offset.Add(start), strings.Repeat(sym, width))
}

// PrintVLine draws sym on height rows from start going down
func (p *Printer) PrintVLine(start geom.Vec2, height int, sym string) {
	if start.X < 0 || start.Y < 0 || start.Y >= p.size.Y || start.X >= p.size.X {
		return
	}
	if start.Y+height > p.size.Y {
		height = p.size.Y - start.Y
	}
	for i := 0; i < height; i++ {
		p.Print(start.Add(geom.New(0, i)), sym)
	}
}

// PrintBox draws a single-line border around the given rectangle
func (p *Printer) PrintBox(topLeft, size geom.Vec2) {
	if size.X < 2 || size.Y < 2 {
		return
	}
	span := size.Sub(geom.New(1, 1))

	p.Print(topLeft, "┌")
	p.Print(topLeft.Add(geom.New(span.X, 0)), "┐")
	p.Print(topLeft.Add(geom.New(0, span.Y)), "└")
	p.Print(topLeft.Add(span), "┘")

	p.PrintHLine(topLeft.Add(geom.New(1, 0)), span.X-1, "─")
	p.PrintHLine(topLeft.Add(geom.New(1, span.Y)), span.X-1, "─")
	p.PrintVLine(topLeft.Add(geom.New(0, 1)), span.Y-1, "│")
	p.PrintVLine(topLeft.Add(geom.New(span.X, 1)), span.Y-1, "│")
}

// WithColor resolves the style against the palette, draws with it and
// restores the previous colors afterwards
func (p *Printer) WithColor(style theme.ColorStyle, fn func(*Printer)) {
	prev := p.backend.SetColor(style.Resolve(&p.theme.Palette))
	fn(p)
	p.backend.SetColor(prev)
}

// WithEffect draws with a text effect enabled
func (p *Printer) WithEffect(e theme.Effect, fn func(*Printer)) {
	p.backend.SetEffect(e)
	fn(p)
	p.backend.UnsetEffect(e)
}

// WithStyle draws with the style's colors and effects
func (p *Printer) WithStyle(style theme.Style, fn func(*Printer)) {
	p.WithColor(style.Colors, func(p *Printer) {
		if style.Effects == theme.EffectSimple {
			fn(p)
			return
		}
		p.backend.SetEffect(style.Effects)
		fn(p)
		p.backend.UnsetEffect(style.Effects)
	})
}

// WithSelection draws selected items highlighted. The highlight dims when
// the printer is not focused; unselected items use the primary style.
func (p *Printer) WithSelection(selected bool, fn func(*Printer)) {
	style := theme.StylePrimary()
	if selected {
		if p.focused {
			style = theme.StyleHighlight()
		} else {
			style = theme.StyleHighlightInactive()
		}
	}
	p.WithColor(style, fn)
}

// FocusedIf returns a copy that is focused only if both this printer and
// the argument are
func (p *Printer) FocusedIf(focused bool) *Printer {
	q := *p
	q.focused = p.focused && focused
	return &q
}

// Offset returns a copy with the origin moved by o and the bounds
// narrowed accordingly
func (p *Printer) Offset(o geom.Vec2) *Printer {
	q := *p
	q.offset = p.offset.Add(o)
	q.size = p.size.SaturatingSub(o)
	return &q
}

// Sub returns a copy covering the sub-rectangle at offset of the given
// size, clamped to the current bounds
func (p *Printer) Sub(offset, size geom.Vec2, focused bool) *Printer {
	q := *p
	q.offset = p.offset.Add(offset)
	q.size = size.Min(p.size.SaturatingSub(offset))
	q.focused = p.focused && focused
	return &q
}

// Cropped returns a copy with the bounds clamped to size, origin kept
func (p *Printer) Cropped(size geom.Vec2) *Printer {
	q := *p
	q.size = p.size.Min(size)
	return &q
}

// Shrinked returns a copy with the bottom-right corner pulled in by
// margin, origin kept
func (p *Printer) Shrinked(margin geom.Vec2) *Printer {
	return p.Cropped(p.size.SaturatingSub(margin))
}

// ShrinkedCentered returns a copy with margin removed from every side
func (p *Printer) ShrinkedCentered(margin geom.Vec2) *Printer {
	return p.Sub(margin, p.size.SaturatingSub(margin.Add(margin)), p.focused)
}

// CroppedCentered returns a copy covering a centered window of the given
// size
func (p *Printer) CroppedCentered(size geom.Vec2) *Printer {
	margin := p.size.SaturatingSub(size)
	return p.Sub(geom.New(margin.X/2, margin.Y/2), size, p.focused)
}

// truncateByWidth cuts text to at most room display columns on grapheme
// boundaries
func truncateByWidth(text string, room int) string {
	if runewidth.StringWidth(text) <= room {
		return text
	}
	var b strings.Builder
	used := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		w := runewidth.StringWidth(g.Str())
		if used+w > room {
			break
		}
		b.WriteString(g.Str())
		used += w
	}
	return b.String()
}
