package scrim

import (
	"github.com/lixenwraith/scrim/geom"
)

type offsetKind uint8

const (
	offsetCenter offsetKind = iota
	offsetAbsolute
	offsetParent
)

// Offset places one axis of a floating layer inside the available room
type Offset struct {
	kind  offsetKind
	value int
}

// OffsetCenter centers the layer on this axis
func OffsetCenter() Offset {
	return Offset{kind: offsetCenter}
}

// OffsetAbsolute pins the layer v cells from the screen origin, clamped
// to keep it on screen
func OffsetAbsolute(v int) Offset {
	return Offset{kind: offsetAbsolute, value: v}
}

// OffsetParent places the layer v cells from its parent's offset, clamped
// to keep it on screen
func OffsetParent(v int) Offset {
	return Offset{kind: offsetParent, value: v}
}

func (o Offset) compute(size, available, parent int) int {
	room := available - size
	if room < 0 {
		room = 0
	}
	switch o.kind {
	case offsetCenter:
		return room / 2
	case offsetAbsolute:
		return clamp(o.value, 0, room)
	default:
		return clamp(parent+o.value, 0, room)
	}
}

// Position anchors a floating layer on both axes
type Position struct {
	X Offset
	Y Offset
}

// PositionCenter centers the layer on both axes
func PositionCenter() Position {
	return Position{X: OffsetCenter(), Y: OffsetCenter()}
}

// PositionAbsolute pins the layer's top-left corner at p
func PositionAbsolute(p geom.Vec2) Position {
	return Position{X: OffsetAbsolute(p.X), Y: OffsetAbsolute(p.Y)}
}

// PositionParent places the layer's top-left corner delta away from its
// parent's resolved offset
func PositionParent(delta geom.Vec2) Position {
	return Position{X: OffsetParent(delta.X), Y: OffsetParent(delta.Y)}
}

// Compute resolves the anchor to a concrete offset for a layer of the
// given size inside available room, with parent as the enclosing context
func (p Position) Compute(size, available, parent geom.Vec2) geom.Vec2 {
	return geom.New(
		p.X.compute(size.X, available.X, parent.X),
		p.Y.compute(size.Y, available.Y, parent.Y),
	)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// LayerPosition addresses a layer in a StackView from either end
type LayerPosition struct {
	fromFront bool
	index     int
}

// FromBack addresses the i-th layer counting from the bottom
func FromBack(i int) LayerPosition {
	return LayerPosition{index: i}
}

// FromFront addresses the i-th layer counting from the top
func FromFront(i int) LayerPosition {
	return LayerPosition{fromFront: true, index: i}
}
