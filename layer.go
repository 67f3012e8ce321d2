package scrim

import (
	"github.com/lixenwraith/scrim/geom"
	"github.com/lixenwraith/scrim/theme"
)

// Layer paints an opaque themed backdrop behind its child so lower layers
// do not show through
type Layer struct {
	ViewWrapper
}

// NewLayer wraps v with a backdrop
func NewLayer(v View) *Layer {
	return &Layer{ViewWrapper: WrapView(v)}
}

func (l *Layer) Draw(p *Printer) {
	p.WithColor(theme.StylePrimary(), func(p *Printer) {
		for y := 0; y < p.Size().Y; y++ {
			p.PrintHLine(geom.New(0, y), p.Size().X, " ")
		}
		l.child.Draw(p)
	})
}
