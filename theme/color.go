package theme

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// BaseColor is one of the 8 base terminal colors
type BaseColor uint8

const (
	Black BaseColor = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
)

// ColorMode distinguishes the kinds of Color values
type ColorMode uint8

const (
	// ColorModeDefault is the terminal's own default color
	ColorModeDefault ColorMode = iota
	// ColorModeDark is the regular variant of a base color
	ColorModeDark
	// ColorModeLight is the bright variant of a base color
	ColorModeLight
	// ColorModeRGB is a 24-bit color
	ColorModeRGB
)

// Color is a concrete terminal color. The zero value is the terminal
// default. Color is comparable and safe to use as a map key.
type Color struct {
	Mode    ColorMode
	Base    BaseColor
	R, G, B uint8
}

// TerminalDefault is the terminal's configured default color
var TerminalDefault = Color{Mode: ColorModeDefault}

// Dark returns the regular variant of a base color
func Dark(base BaseColor) Color {
	return Color{Mode: ColorModeDark, Base: base}
}

// Light returns the bright variant of a base color
func Light(base BaseColor) Color {
	return Color{Mode: ColorModeLight, Base: base}
}

// RGB returns a 24-bit color
func RGB(r, g, b uint8) Color {
	return Color{Mode: ColorModeRGB, R: r, G: g, B: b}
}

var baseColorNames = map[string]BaseColor{
	"black":   Black,
	"red":     Red,
	"green":   Green,
	"yellow":  Yellow,
	"blue":    Blue,
	"magenta": Magenta,
	"cyan":    Cyan,
	"white":   White,
}

// ParseColor reads a color from its textual form: "default", a base color
// name ("red"), a bright variant ("light red"), or a hex value ("#ff0000",
// "#f00"). Returns false when the text does not name a color.
func ParseColor(s string) (Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch s {
	case "default", "terminal default":
		return TerminalDefault, true
	}

	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return Color{}, false
		}
		r, g, b := c.RGB255()
		return RGB(r, g, b), true
	}

	light := false
	if rest, ok := strings.CutPrefix(s, "light "); ok {
		light = true
		s = rest
	} else if rest, ok := strings.CutPrefix(s, "dark "); ok {
		s = rest
	}

	base, ok := baseColorNames[s]
	if !ok {
		return Color{}, false
	}
	if light {
		return Light(base), true
	}
	return Dark(base), true
}

// ColorPair is a foreground/background pair of concrete colors
type ColorPair struct {
	Front Color
	Back  Color
}
