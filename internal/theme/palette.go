package theme

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed palettes.yaml
var paletteYAML []byte

// Theme names.
const (
	NameDefault   = "Default"
	NameRedAlert  = "Red Alert"
	NameRetro     = "Retro (Amber)"
	NameCyberpunk = "Cyberpunk"
)

// Color represents a hex color string.
type Color string

// Palette is the set of colors a theme contributes.
type Palette struct {
	Name       string `yaml:"name"`
	Primary    Color  `yaml:"primary"`
	Background Color  `yaml:"background"`
	Card       Color  `yaml:"card"`
}

type paletteFile struct {
	Default  string    `yaml:"default"`
	Palettes []Palette `yaml:"palettes"`
}

// Table maps theme names to palettes.
type Table struct {
	byName   map[string]Palette
	order    []string
	fallback Palette
}

// ParseTable decodes a palette table.
func ParseTable(data []byte) (*Table, error) {
	var f paletteFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse palettes: %w", err)
	}
	t := &Table{byName: make(map[string]Palette, len(f.Palettes))}
	for _, p := range f.Palettes {
		if p.Name == "" {
			return nil, fmt.Errorf("parse palettes: palette without a name")
		}
		t.byName[p.Name] = p
		t.order = append(t.order, p.Name)
	}
	fb, ok := t.byName[f.Default]
	if !ok {
		return nil, fmt.Errorf("parse palettes: default %q is not defined", f.Default)
	}
	t.fallback = fb
	return t, nil
}

// Lookup returns the palette for name. Unknown or empty names get the
// default palette.
func (t *Table) Lookup(name string) Palette {
	if p, ok := t.byName[name]; ok {
		return p
	}
	return t.fallback
}

// Known reports whether name is a defined theme.
func (t *Table) Known(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Names returns the theme names in table order.
func (t *Table) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// builtin is the embedded table. It is validated by tests, so a parse
// failure here is a packaging bug.
var builtin = func() *Table {
	t, err := ParseTable(paletteYAML)
	if err != nil {
		panic(err)
	}
	return t
}()

// Builtin returns the embedded palette table.
func Builtin() *Table {
	return builtin
}

// LookupPalette resolves name against the built-in table.
func LookupPalette(name string) Palette {
	return builtin.Lookup(name)
}
