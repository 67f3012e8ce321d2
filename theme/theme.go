// Package theme describes how an application is colored: a palette of
// role-indexed colors with optional path-scoped overrides, plus a couple of
// global rendering switches. Themes load from YAML files; loading is always
// recoverable, so callers can keep their current theme on a bad file.
package theme

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Theme is the complete visual configuration of an application
type Theme struct {
	// Shadow enables drop shadows behind floating views
	Shadow bool
	// Borders selects how view borders are drawn
	Borders BorderStyle
	// Palette assigns concrete colors to the color roles
	Palette Palette
}

// Default returns the stock theme: shadows on, simple borders, default
// palette
func Default() Theme {
	return Theme{
		Shadow:  true,
		Borders: BorderSimple,
		Palette: DefaultPalette(),
	}
}

// themeFile is the YAML shape of a theme. Color values are kept as raw
// nodes: a color may be a scalar or a list of fallbacks, and the custom
// section nests arbitrarily.
type themeFile struct {
	Shadow  *bool                `yaml:"shadow"`
	Borders *string              `yaml:"borders"`
	Colors  map[string]yaml.Node `yaml:"colors"`
	Custom  map[string]yaml.Node `yaml:"custom"`
}

// Load parses YAML theme data. Unknown keys and unparseable colors are
// skipped so themes stay forward compatible; a malformed document is the
// only error.
func Load(data []byte) (Theme, error) {
	var tf themeFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return Theme{}, fmt.Errorf("parsing theme: %w", err)
	}

	t := Default()
	if tf.Shadow != nil {
		t.Shadow = *tf.Shadow
	}
	if tf.Borders != nil {
		t.Borders = ParseBorderStyle(*tf.Borders)
	}
	for key, node := range tf.Colors {
		role, ok := roleNames[key]
		if !ok {
			continue
		}
		if c, ok := colorFromNode(&node); ok {
			t.Palette.Set(role, c)
		}
	}
	for key, node := range tf.Custom {
		loadCustom(&t.Palette, key, &node)
	}
	return t, nil
}

// LoadFile reads and parses a YAML theme file
func LoadFile(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("reading theme file: %w", err)
	}
	return Load(data)
}

// colorFromNode reads a color from a scalar node, or from a sequence of
// fallbacks where the first parseable entry wins
func colorFromNode(node *yaml.Node) (Color, bool) {
	switch node.Kind {
	case yaml.ScalarNode:
		return ParseColor(node.Value)
	case yaml.SequenceNode:
		for _, item := range node.Content {
			if c, ok := colorFromNode(item); ok {
				return c, true
			}
		}
	}
	return Color{}, false
}

// loadCustom walks a custom-color subtree, registering every scalar leaf
// under its slash-joined path
func loadCustom(p *Palette, path string, node *yaml.Node) {
	switch node.Kind {
	case yaml.ScalarNode, yaml.SequenceNode:
		if c, ok := colorFromNode(node); ok {
			p.SetCustom(path, c)
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			loadCustom(p, path+"/"+node.Content[i].Value, node.Content[i+1])
		}
	}
}
