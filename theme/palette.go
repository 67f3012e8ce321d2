package theme

import "strings"

// Role names a color slot in the palette. Views pick colors by role so a
// theme can restyle an application without touching view code.
type Role uint8

const (
	// RoleBackground colors the application background.
	RoleBackground Role = iota
	// RoleShadow colors view shadows.
	RoleShadow
	// RoleView colors view backgrounds.
	RoleView
	// RolePrimary is the main text color.
	RolePrimary
	// RoleSecondary is the secondary text color.
	RoleSecondary
	// RoleTertiary is the tertiary text color.
	RoleTertiary
	// RoleTitlePrimary is the main title text color.
	RoleTitlePrimary
	// RoleTitleSecondary is the secondary title text color.
	RoleTitleSecondary
	// RoleHighlight colors highlighted text.
	RoleHighlight
	// RoleHighlightInactive colors highlighted text in unfocused views.
	RoleHighlightInactive

	roleCount
)

var roleNames = map[string]Role{
	"background":         RoleBackground,
	"shadow":             RoleShadow,
	"view":               RoleView,
	"primary":            RolePrimary,
	"secondary":          RoleSecondary,
	"tertiary":           RoleTertiary,
	"title_primary":      RoleTitlePrimary,
	"title_secondary":    RoleTitleSecondary,
	"highlight":          RoleHighlight,
	"highlight_inactive": RoleHighlightInactive,
}

// paletteNode is one level of the custom override tree
type paletteNode struct {
	leaf     bool
	color    Color
	children map[string]*paletteNode
}

// Palette assigns each color role an actual color, with an optional tree of
// path-scoped overrides: a color registered under "status/counter" wins over
// the base palette when resolved with that path.
type Palette struct {
	basic  [roleCount]Color
	custom map[string]*paletteNode
}

// DefaultPalette returns the stock palette:
//
//	Background        => Dark(Blue)
//	Shadow            => Dark(Black)
//	View              => Dark(White)
//	Primary           => Dark(Black)
//	Secondary         => Dark(Blue)
//	Tertiary          => Dark(White)
//	TitlePrimary      => Dark(Red)
//	TitleSecondary    => Dark(Yellow)
//	Highlight         => Dark(Red)
//	HighlightInactive => Dark(Blue)
func DefaultPalette() Palette {
	var p Palette
	p.basic = [roleCount]Color{
		RoleBackground:        Dark(Blue),
		RoleShadow:            Dark(Black),
		RoleView:              Dark(White),
		RolePrimary:           Dark(Black),
		RoleSecondary:         Dark(Blue),
		RoleTertiary:          Dark(White),
		RoleTitlePrimary:      Dark(Red),
		RoleTitleSecondary:    Dark(Yellow),
		RoleHighlight:         Dark(Red),
		RoleHighlightInactive: Dark(Blue),
	}
	return p
}

// Get returns the base color for a role
func (p *Palette) Get(role Role) Color {
	return p.basic[role]
}

// Set replaces the base color for a role
func (p *Palette) Set(role Role, c Color) {
	p.basic[role] = c
}

// SetCustom registers a path-scoped override. Path components are separated
// by '/'. Intermediate nodes are created as needed; a scope keeps its own
// color when deeper paths are registered under it, while setting a color on
// a path that previously held a subtree replaces the subtree.
func (p *Palette) SetCustom(path string, c Color) {
	if p.custom == nil {
		p.custom = make(map[string]*paletteNode)
	}
	parts := strings.Split(path, "/")
	nodes := p.custom
	for i, part := range parts {
		node := nodes[part]
		if node == nil {
			node = &paletteNode{}
			nodes[part] = node
		}
		if i == len(parts)-1 {
			node.leaf = true
			node.color = c
			node.children = nil
			return
		}
		if node.children == nil {
			node.children = make(map[string]*paletteNode)
		}
		nodes = node.children
	}
}

// ResolveAt returns the color registered for path. A path without its own
// color inherits from its nearest registered ancestor scope, then from the
// base color of role.
func (p *Palette) ResolveAt(path string, role Role) Color {
	best := p.basic[role]
	nodes := p.custom
	for _, part := range strings.Split(path, "/") {
		if nodes == nil {
			break
		}
		node := nodes[part]
		if node == nil {
			break
		}
		if node.leaf {
			best = node.color
		}
		nodes = node.children
	}
	return best
}
