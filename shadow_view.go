package scrim

import (
	"github.com/lixenwraith/scrim/event"
	"github.com/lixenwraith/scrim/geom"
	"github.com/lixenwraith/scrim/theme"
)

// ShadowView offsets its child one cell right and down and paints a drop
// shadow along the bottom and right edges when the theme asks for one
type ShadowView struct {
	ViewWrapper
	topPadding  bool
	leftPadding bool
}

// NewShadowView wraps v with full padding on both axes
func NewShadowView(v View) *ShadowView {
	return &ShadowView{
		ViewWrapper: WrapView(v),
		topPadding:  true,
		leftPadding: true,
	}
}

// TopPadding controls whether the top row is left free. Centered layers
// keep it so the shadow does not shift the center.
func (s *ShadowView) TopPadding(on bool) *ShadowView {
	s.topPadding = on
	return s
}

// LeftPadding controls whether the left column is left free
func (s *ShadowView) LeftPadding(on bool) *ShadowView {
	s.leftPadding = on
	return s
}

func (s *ShadowView) topLeftPadding() geom.Vec2 {
	var pad geom.Vec2
	if s.leftPadding {
		pad.X = 1
	}
	if s.topPadding {
		pad.Y = 1
	}
	return pad
}

// padding is the total extra size: the optional top-left gap plus one
// cell of shadow on the bottom-right
func (s *ShadowView) padding() geom.Vec2 {
	return s.topLeftPadding().Add(geom.New(1, 1))
}

func (s *ShadowView) RequiredSize(constraint geom.Vec2) geom.Vec2 {
	pad := s.padding()
	return s.child.RequiredSize(constraint.SaturatingSub(pad)).Add(pad)
}

func (s *ShadowView) Layout(size geom.Vec2) {
	s.child.Layout(size.SaturatingSub(s.padding()))
}

func (s *ShadowView) OnEvent(ev event.Event) EventResult {
	return s.child.OnEvent(ev.Relativized(s.topLeftPadding()))
}

func (s *ShadowView) Draw(p *Printer) {
	pad := s.topLeftPadding()
	if p.Size().X <= pad.X || p.Size().Y <= pad.Y {
		return
	}
	p = p.Offset(pad)

	if p.Theme().Shadow {
		w, h := p.Size().X, p.Size().Y
		if w == 0 || h == 0 {
			return
		}
		p.WithColor(theme.StyleShadow(), func(p *Printer) {
			p.PrintHLine(geom.New(1, h-1), w-1, " ")
			p.PrintVLine(geom.New(w-1, 1), h-1, " ")
		})
	}

	s.child.Draw(p.Shrinked(geom.New(1, 1)))
}
