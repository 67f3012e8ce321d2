package scrim

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/scrim/event"
	"github.com/lixenwraith/scrim/geom"
	"github.com/lixenwraith/scrim/theme"
)

// TextView displays static multi-line text
type TextView struct {
	lines []string
}

// NewTextView makes a text view over content, split on newlines
func NewTextView(content string) *TextView {
	return &TextView{lines: strings.Split(content, "\n")}
}

// SetContent replaces the displayed text
func (t *TextView) SetContent(content string) {
	t.lines = strings.Split(content, "\n")
}

// Content returns the displayed text
func (t *TextView) Content() string {
	return strings.Join(t.lines, "\n")
}

func (t *TextView) Draw(p *Printer) {
	p.WithColor(theme.StylePrimary(), func(p *Printer) {
		for i, line := range t.lines {
			p.Print(geom.New(0, i), line)
		}
	})
}

func (t *TextView) Layout(geom.Vec2) {}

func (t *TextView) RequiredSize(geom.Vec2) geom.Vec2 {
	width := 0
	for _, line := range t.lines {
		if w := runewidth.StringWidth(line); w > width {
			width = w
		}
	}
	return geom.New(width, len(t.lines))
}

func (t *TextView) OnEvent(event.Event) EventResult {
	return Ignored()
}

func (t *TextView) TakeFocus(Direction) bool {
	return false
}

func (t *TextView) CallOnAny(sel Selector, fn func(View)) {
	if sel.Matches(t) {
		fn(t)
	}
}

func (t *TextView) FocusView(Selector) error {
	return ErrViewNotFound
}
