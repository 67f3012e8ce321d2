package capture

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/lixenwraith/scrim/geom"
	"github.com/lixenwraith/scrim/theme"
)

// ObservedStyle is the brush a cell was printed under
type ObservedStyle struct {
	// Colors holds the front and back colors
	Colors theme.ColorPair
	// Effects holds the effects active at print time
	Effects theme.Effect
}

// ObservedCell is a single recorded cell. Cells printed under the same
// brush share one ObservedStyle allocation; the backend clones the style
// only when it changes.
type ObservedCell struct {
	// Pos is the absolute grid position
	Pos geom.Vec2
	// Style is the shared brush reference
	Style *ObservedStyle
	// Glyph is the grapheme cluster starting at this cell. It is empty
	// for continuation cells and for cleared-but-unprinted cells.
	Glyph string
	// Continuation marks a trailing column of a wide glyph that begins
	// in a lower-indexed cell of the same row.
	Continuation bool
}

// BeginGlyph returns the grapheme starting at this cell, or false when the
// cell holds no glyph (continuation or cleared).
func (c *ObservedCell) BeginGlyph() (string, bool) {
	if c.Continuation || c.Glyph == "" {
		return "", false
	}
	return c.Glyph, true
}

// ObservedScreen is one recorded frame: a fixed-size grid of optional
// cells. A nil cell was never touched.
type ObservedScreen struct {
	size  geom.Vec2
	cells []*ObservedCell
}

// NewObservedScreen creates an empty frame of the given size
func NewObservedScreen(size geom.Vec2) *ObservedScreen {
	return &ObservedScreen{
		size:  size,
		cells: make([]*ObservedCell, size.X*size.Y),
	}
}

// Size returns the frame size
func (s *ObservedScreen) Size() geom.Vec2 {
	return s.size
}

func (s *ObservedScreen) flatten(pos geom.Vec2) int {
	if pos.X < 0 || pos.X >= s.size.X || pos.Y < 0 || pos.Y >= s.size.Y {
		panic(fmt.Sprintf("cell (%d,%d) outside screen %dx%d",
			pos.X, pos.Y, s.size.X, s.size.Y))
	}
	return pos.Y*s.size.X + pos.X
}

func (s *ObservedScreen) unflatten(idx int) geom.Vec2 {
	return geom.New(idx%s.size.X, idx/s.size.X)
}

// At returns the cell at pos, nil when the cell was never touched.
// Positions outside the grid are programming errors and panic.
func (s *ObservedScreen) At(pos geom.Vec2) *ObservedCell {
	return s.cells[s.flatten(pos)]
}

func (s *ObservedScreen) setAt(pos geom.Vec2, cell *ObservedCell) {
	s.cells[s.flatten(pos)] = cell
}

// Clear sets every cell to a glyph-free cell with the given style
func (s *ObservedScreen) Clear(style *ObservedStyle) {
	for i := range s.cells {
		s.cells[i] = &ObservedCell{Pos: s.unflatten(i), Style: style}
	}
}

// Clone returns a deep copy of the frame. Cell values are copied; style
// references stay shared, they are immutable once handed out.
func (s *ObservedScreen) Clone() *ObservedScreen {
	out := &ObservedScreen{
		size:  s.size,
		cells: make([]*ObservedCell, len(s.cells)),
	}
	for i, c := range s.cells {
		if c != nil {
			cc := *c
			out.cells[i] = &cc
		}
	}
	return out
}

// rowString renders cells [x0,x1) of one row. Untouched and cleared cells
// come out as spaces; wide glyphs carry their own width, so continuation
// cells add nothing.
func (s *ObservedScreen) rowString(y, x0, x1 int) string {
	var b strings.Builder
	for x := x0; x < x1; x++ {
		cell := s.At(geom.New(x, y))
		switch {
		case cell == nil:
			b.WriteByte(' ')
		case cell.Continuation:
		case cell.Glyph == "":
			b.WriteByte(' ')
		default:
			b.WriteString(cell.Glyph)
		}
	}
	return b.String()
}

// AsStrings renders the whole frame, one string per row
func (s *ObservedScreen) AsStrings() []string {
	out := make([]string, 0, s.size.Y)
	for y := 0; y < s.size.Y; y++ {
		out = append(out, s.rowString(y, 0, s.size.X))
	}
	return out
}

// FindOccurrences scans the frame for a pattern. Every cell starts a
// candidate match. Matching walks the pattern grapheme by grapheme: a cell
// without a glyph matches a literal space and advances one column, a cell
// with a glyph must equal the pattern's current grapheme and advances by
// that glyph's display width. The first mismatch abandons the candidate.
func (s *ObservedScreen) FindOccurrences(pattern string) []*ObservedLine {
	patGraphemes := graphemes(pattern)
	if len(patGraphemes) == 0 {
		return nil
	}
	patWidth := 0
	for _, g := range patGraphemes {
		patWidth += runewidth.StringWidth(g)
	}

	var hits []*ObservedLine
	for y := 0; y < s.size.Y; y++ {
	candidates:
		for x := 0; x < s.size.X; x++ {
			if patWidth > s.size.X-x {
				continue
			}

			pos := 0
			for _, g := range patGraphemes {
				cell := s.At(geom.New(x+pos, y))
				var glyph string
				var occupied bool
				if cell != nil {
					glyph, occupied = cell.BeginGlyph()
				}
				if occupied {
					if glyph != g {
						continue candidates
					}
					pos += runewidth.StringWidth(glyph)
				} else {
					if g != " " {
						continue candidates
					}
					pos++
				}
			}

			hits = append(hits, &ObservedLine{
				parent: s,
				start:  geom.New(x, y),
				length: pos,
			})
		}
	}
	return hits
}

// graphemes splits a string into grapheme clusters
func graphemes(s string) []string {
	var out []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// ObservedLine is one horizontal run of cells, usually a pattern hit
type ObservedLine struct {
	parent *ObservedScreen
	start  geom.Vec2
	length int
}

// Min returns the top-left corner of the line
func (l *ObservedLine) Min() geom.Vec2 {
	return l.start
}

// Max returns the exclusive bottom-right corner of the line
func (l *ObservedLine) Max() geom.Vec2 {
	return l.start.Add(geom.New(l.length, 1))
}

// Size returns the line extent, always of height 1
func (l *ObservedLine) Size() geom.Vec2 {
	return geom.New(l.length, 1)
}

// ExpandedLine returns the same line widened by left and right columns.
// Widening past the grid edges is a programming error and panics.
func (l *ObservedLine) ExpandedLine(left, right int) *ObservedLine {
	if left > l.start.X {
		panic(fmt.Sprintf("expanding line at x=%d by %d columns left", l.start.X, left))
	}
	if l.start.X+l.length+right > l.parent.size.X {
		panic(fmt.Sprintf("expanding line ending at x=%d by %d columns right on width %d",
			l.start.X+l.length, right, l.parent.size.X))
	}
	return &ObservedLine{
		parent: l.parent,
		start:  geom.New(l.start.X-left, l.start.Y),
		length: l.length + left + right,
	}
}

// String renders the line's cells
func (l *ObservedLine) String() string {
	return l.parent.rowString(l.start.Y, l.start.X, l.start.X+l.length)
}
