package theme

// Effect is a bitmask of text effects
type Effect uint8

// EffectSimple is plain text with no effect applied
const EffectSimple Effect = 0

const (
	EffectReverse Effect = 1 << iota
	EffectBold
	EffectItalic
	EffectUnderline
)

// Has reports whether all bits of other are set in e
func (e Effect) Has(other Effect) bool {
	return e&other == other
}

// BorderStyle decides how view borders are rendered
type BorderStyle uint8

const (
	// BorderSimple draws plain box-drawing borders
	BorderSimple BorderStyle = iota
	// BorderOutset draws borders with a raised 3D look
	BorderOutset
	// BorderNone draws no borders at all
	BorderNone
)

// ParseBorderStyle reads a border style name; unknown names map to simple
func ParseBorderStyle(s string) BorderStyle {
	switch s {
	case "outset":
		return BorderOutset
	case "none":
		return BorderNone
	default:
		return BorderSimple
	}
}
