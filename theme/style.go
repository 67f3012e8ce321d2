package theme

// ColorType is either a palette role or a concrete color. The zero value
// resolves to the terminal default.
type ColorType struct {
	role     Role
	color    Color
	concrete bool
}

// FromRole makes a ColorType that resolves through the palette
func FromRole(r Role) ColorType {
	return ColorType{role: r}
}

// FromColor makes a ColorType that always resolves to c
func FromColor(c Color) ColorType {
	return ColorType{color: c, concrete: true}
}

// Resolve returns the concrete color for this type under a palette
func (ct ColorType) Resolve(p *Palette) Color {
	if ct.concrete {
		return ct.color
	}
	return p.Get(ct.role)
}

// ColorStyle is a foreground/background pair of color types. It is the
// currency views use to pick colors without committing to concrete values.
type ColorStyle struct {
	Front ColorType
	Back  ColorType
}

// Resolve returns the concrete color pair for this style under a palette
func (cs ColorStyle) Resolve(p *Palette) ColorPair {
	return ColorPair{
		Front: cs.Front.Resolve(p),
		Back:  cs.Back.Resolve(p),
	}
}

// StyleBackground is the application background fill
func StyleBackground() ColorStyle {
	return ColorStyle{Front: FromRole(RoleBackground), Back: FromRole(RoleBackground)}
}

// StyleShadow is the drop shadow fill
func StyleShadow() ColorStyle {
	return ColorStyle{Front: FromRole(RoleShadow), Back: FromRole(RoleShadow)}
}

// StylePrimary is the main text style over a view background
func StylePrimary() ColorStyle {
	return ColorStyle{Front: FromRole(RolePrimary), Back: FromRole(RoleView)}
}

// StyleSecondary is the secondary text style over a view background
func StyleSecondary() ColorStyle {
	return ColorStyle{Front: FromRole(RoleSecondary), Back: FromRole(RoleView)}
}

// StyleTertiary is the tertiary text style over a view background
func StyleTertiary() ColorStyle {
	return ColorStyle{Front: FromRole(RoleTertiary), Back: FromRole(RoleView)}
}

// StyleTitlePrimary is the main title style
func StyleTitlePrimary() ColorStyle {
	return ColorStyle{Front: FromRole(RoleTitlePrimary), Back: FromRole(RoleView)}
}

// StyleTitleSecondary is the secondary title style
func StyleTitleSecondary() ColorStyle {
	return ColorStyle{Front: FromRole(RoleTitleSecondary), Back: FromRole(RoleView)}
}

// StyleHighlight is the style of selected items in focused views
func StyleHighlight() ColorStyle {
	return ColorStyle{Front: FromRole(RoleView), Back: FromRole(RoleHighlight)}
}

// StyleHighlightInactive is the style of selected items in unfocused views
func StyleHighlightInactive() ColorStyle {
	return ColorStyle{Front: FromRole(RoleView), Back: FromRole(RoleHighlightInactive)}
}

// Style bundles colors with text effects
type Style struct {
	Colors  ColorStyle
	Effects Effect
}

// Plain makes a style with the given colors and no effects
func Plain(cs ColorStyle) Style {
	return Style{Colors: cs}
}

// WithEffects returns a copy of the style with the effects added
func (s Style) WithEffects(e Effect) Style {
	s.Effects |= e
	return s
}
