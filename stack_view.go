package scrim

import (
	"github.com/lixenwraith/scrim/event"
	"github.com/lixenwraith/scrim/geom"
	"github.com/lixenwraith/scrim/theme"
)

// StackView is the layered-screen compositor. Layers are stored back to
// front; only the front layer receives events.
type StackView struct {
	layers   []*child
	lastSize geom.Vec2
	// bgDirty marks that undrawn areas of the background may be exposed
	// and need repainting
	bgDirty bool
}

type placement struct {
	floating bool
	position Position
}

func (pl placement) computeOffset(size, available, parent geom.Vec2) geom.Vec2 {
	if pl.floating {
		return pl.position.Compute(size, available, parent)
	}
	return geom.Zero
}

type child struct {
	// view is the decorated stack entry, inner the view as pushed
	view      View
	inner     View
	size      geom.Vec2
	name      string
	placement placement

	// TakeFocus is only meaningful after Layout, so the first layout
	// pass hands out focus and clears this flag
	virgin bool
}

// NewStackView creates an empty compositor. The background starts dirty
// so the first draw paints it.
func NewStackView() *StackView {
	return &StackView{bgDirty: true}
}

// AddLayer pushes a centered floating layer
func (s *StackView) AddLayer(v View) {
	s.AddLayerAt(PositionCenter(), v)
}

// AddNamedLayer pushes a centered floating layer addressable by name
func (s *StackView) AddNamedLayer(name string, v View) {
	s.AddNamedLayerAt(name, PositionCenter(), v)
}

// AddLayerAt pushes a floating layer at the given anchor
func (s *StackView) AddLayerAt(position Position, v View) {
	s.AddNamedLayerAt("", position, v)
}

// AddNamedLayerAt pushes a floating layer at the given anchor,
// addressable by name. Floating layers get a backdrop and a drop shadow;
// the shadow's top-left padding is skipped on axes that are not centered
// so anchored layers land exactly where asked.
func (s *StackView) AddNamedLayerAt(name string, position Position, v View) {
	wrapped := NewShadowView(NewLayer(v)).
		TopPadding(position.Y == OffsetCenter()).
		LeftPadding(position.X == OffsetCenter())
	s.layers = append(s.layers, &child{
		view:      wrapped,
		inner:     v,
		name:      name,
		placement: placement{floating: true, position: position},
		virgin:    true,
	})
}

// AddFullscreenLayer pushes a layer covering the whole screen, without a
// shadow
func (s *StackView) AddFullscreenLayer(v View) {
	s.AddNamedFullscreenLayer("", v)
}

// AddNamedFullscreenLayer pushes a fullscreen layer addressable by name
func (s *StackView) AddNamedFullscreenLayer(name string, v View) {
	s.layers = append(s.layers, &child{
		view:   NewLayer(v),
		inner:  v,
		name:   name,
		virgin: true,
	})
}

// PopLayer removes the front layer and returns the view as it was
// pushed, nil when the stack is empty
func (s *StackView) PopLayer() View {
	s.bgDirty = true
	if len(s.layers) == 0 {
		return nil
	}
	top := s.layers[len(s.layers)-1]
	s.layers = s.layers[:len(s.layers)-1]
	return top.inner
}

// Get returns the view pushed at the given position, nil when out of
// range
func (s *StackView) Get(pos LayerPosition) View {
	i := s.index(pos)
	if i < 0 || i >= len(s.layers) {
		return nil
	}
	return s.layers[i].inner
}

// RemoveLayer removes the layer at the given position and returns the
// view as it was pushed, nil when out of range
func (s *StackView) RemoveLayer(pos LayerPosition) View {
	i := s.index(pos)
	if i < 0 || i >= len(s.layers) {
		return nil
	}
	s.bgDirty = true
	removed := s.layers[i]
	s.layers = append(s.layers[:i], s.layers[i+1:]...)
	return removed.inner
}

// Len returns the number of layers
func (s *StackView) Len() int {
	return len(s.layers)
}

// Offset resolves the front layer's on-screen offset. Each layer's anchor
// is computed with the previous layer's offset as parent context, so
// parent-anchored layers chain off the layer that opened them.
func (s *StackView) Offset() geom.Vec2 {
	var previous geom.Vec2
	for _, layer := range s.layers {
		previous = layer.placement.computeOffset(layer.size, s.lastSize, previous)
	}
	return previous
}

// LayerSizes returns the computed size of every layer, back to front
func (s *StackView) LayerSizes() []geom.Vec2 {
	sizes := make([]geom.Vec2, len(s.layers))
	for i, layer := range s.layers {
		sizes[i] = layer.size
	}
	return sizes
}

func (s *StackView) index(pos LayerPosition) int {
	if pos.fromFront {
		return len(s.layers) - pos.index - 1
	}
	return pos.index
}

// GetIndex returns the position of the layer pushed under the given
// name. Unlike FindLayerFromName it does not descend into the layers.
func (s *StackView) GetIndex(name string) (LayerPosition, bool) {
	if i, ok := s.childPosWithName(name); ok {
		return FromBack(i), true
	}
	return LayerPosition{}, false
}

// childPosWithName returns the back-based index of the layer pushed under
// the given name. Unlike FindLayerFromName it does not descend into the
// layers.
func (s *StackView) childPosWithName(name string) (int, bool) {
	if name == "" {
		return 0, false
	}
	for i, layer := range s.layers {
		if layer.name == name {
			return i, true
		}
	}
	return 0, false
}

// FindLayerFromName looks for the layer containing a view with the given
// name, descending into each layer's tree
func (s *StackView) FindLayerFromName(name string) (LayerPosition, bool) {
	sel := ByName(name)
	for i, layer := range s.layers {
		found := false
		if layer.name == name {
			found = true
		}
		layer.view.CallOnAny(sel, func(View) { found = true })
		if found {
			return FromBack(i), true
		}
	}
	return LayerPosition{}, false
}

// MoveLayer changes a layer's elevation by removing and reinserting it
func (s *StackView) MoveLayer(from, to LayerPosition) {
	fromIdx := s.index(from)
	toIdx := s.index(to)

	moved := s.layers[fromIdx]
	s.layers = append(s.layers[:fromIdx], s.layers[fromIdx+1:]...)

	s.layers = append(s.layers, nil)
	copy(s.layers[toIdx+1:], s.layers[toIdx:])
	s.layers[toIdx] = moved
}

// MoveToFront raises the given layer above all others
func (s *StackView) MoveToFront(layer LayerPosition) {
	s.MoveLayer(layer, FromFront(0))
}

// MoveToBack lowers the given layer below all others
func (s *StackView) MoveToBack(layer LayerPosition) {
	s.MoveLayer(layer, FromBack(0))
}

// MoveNamedToFront raises the layer pushed under the given name. No
// effect when the name is unknown.
func (s *StackView) MoveNamedToFront(name string) {
	if i, ok := s.childPosWithName(name); ok {
		s.MoveLayer(FromBack(i), FromFront(0))
	}
}

// MoveNamedToBack lowers the layer pushed under the given name
func (s *StackView) MoveNamedToBack(name string) {
	if i, ok := s.childPosWithName(name); ok {
		s.MoveLayer(FromBack(i), FromBack(0))
	}
}

// RepositionLayer moves a floating layer to a new anchor. Fullscreen
// layers and unknown positions are left alone.
func (s *StackView) RepositionLayer(layer LayerPosition, position Position) {
	i := s.index(layer)
	if i < 0 || i >= len(s.layers) {
		return
	}
	ch := s.layers[i]
	if !ch.placement.floating {
		return
	}
	ch.placement.position = position
	s.bgDirty = true
}

// DrawBg repaints the background, only when something exposed it.
// Split from DrawFg so a caller can slip content between background and
// layers; Draw runs both.
func (s *StackView) DrawBg(p *Printer) {
	if !s.bgDirty {
		return
	}
	p.WithColor(theme.StyleBackground(), func(p *Printer) {
		for y := 0; y < p.Size().Y; y++ {
			p.PrintHLine(geom.New(0, y), p.Size().X, " ")
		}
	})
	s.bgDirty = false
}

// DrawFg paints the layers back to front; only the front layer draws
// focused
func (s *StackView) DrawFg(p *Printer) {
	p.WithColor(theme.StylePrimary(), func(p *Printer) {
		var previous geom.Vec2
		for i, layer := range s.layers {
			offset := layer.placement.computeOffset(layer.size, p.Size(), previous)
			previous = offset
			layer.view.Draw(p.Sub(offset, layer.size, i == len(s.layers)-1))
		}
	})
}

func (s *StackView) Draw(p *Printer) {
	s.DrawBg(p)
	s.DrawFg(p)
}

func (s *StackView) OnEvent(ev event.Event) EventResult {
	if ev.Type == event.EventResize {
		s.bgDirty = true
	}
	if len(s.layers) == 0 {
		return Ignored()
	}
	top := s.layers[len(s.layers)-1]
	return top.view.OnEvent(ev.Relativized(s.Offset()))
}

func (s *StackView) Layout(size geom.Vec2) {
	s.lastSize = size

	for _, layer := range s.layers {
		layer.size = size.Min(layer.view.RequiredSize(size))
		layer.view.Layout(layer.size)

		// A view can only decide whether it accepts focus once it has
		// been laid out, so the first pass hands focus out here.
		if layer.virgin {
			layer.view.TakeFocus(DirNone)
			layer.virgin = false
		}
	}
}

func (s *StackView) RequiredSize(constraint geom.Vec2) geom.Vec2 {
	required := geom.New(1, 1)
	for _, layer := range s.layers {
		required = required.Max(layer.view.RequiredSize(constraint))
	}
	return required
}

func (s *StackView) TakeFocus(source Direction) bool {
	if len(s.layers) == 0 {
		return false
	}
	return s.layers[len(s.layers)-1].view.TakeFocus(source)
}

func (s *StackView) CallOnAny(sel Selector, fn func(View)) {
	for _, layer := range s.layers {
		layer.view.CallOnAny(sel, fn)
	}
}

func (s *StackView) FocusView(sel Selector) error {
	for _, layer := range s.layers {
		if err := layer.view.FocusView(sel); err == nil {
			return nil
		}
	}
	return ErrViewNotFound
}
