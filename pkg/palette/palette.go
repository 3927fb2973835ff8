// Package palette assigns chart colors to tracked keys. A Palette is a
// fixed ordered list of hex colors; assignment is purely positional over
// the canonical key order for a tick, so a key's color follows its slot,
// not its identity. Named palettes are looked up through a registry.
package palette

import (
	"sort"
	"strings"
	"sync"
)

// Palette is an ordered list of hex colors (e.g. "#664DFF").
type Palette struct {
	Name   string
	Colors []string
}

// Assign returns colors for n positions. Positions beyond the palette
// length wrap around; n <= 0 yields nil. The result is a pure function
// of n and the palette contents.
func (p Palette) Assign(n int) []string {
	if n <= 0 || len(p.Colors) == 0 {
		return nil
	}
	out := make([]string, n)
	for i := range out {
		out[i] = p.Colors[i%len(p.Colors)]
	}
	return out
}

// At returns the color for a single position, wrapping like Assign.
func (p Palette) At(i int) string {
	if len(p.Colors) == 0 || i < 0 {
		return ""
	}
	return p.Colors[i%len(p.Colors)]
}

var (
	mu       sync.RWMutex
	registry = map[string]Palette{}
)

func init() {
	register(pulsePalette())
	register(emberPalette())
}

// Get returns a named palette, falling back to the default "pulse"
// palette when the name is unknown.
func Get(name string) Palette {
	mu.RLock()
	defer mu.RUnlock()
	if p, ok := registry[strings.ToLower(name)]; ok {
		return p
	}
	return registry["pulse"]
}

// Default returns the built-in "pulse" palette.
func Default() Palette {
	return Get("pulse")
}

// Names returns all registered palette names sorted alphabetically.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func register(p Palette) {
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(p.Name)] = p
}

// pulsePalette is the default ten-color chart palette.
func pulsePalette() Palette {
	return Palette{
		Name: "pulse",
		Colors: []string{
			"#664DFF",
			"#893BFF",
			"#3CC5E8",
			"#2C93E8",
			"#0BEBDD",
			"#0073FF",
			"#00BDFF",
			"#A5E82C",
			"#FFBD42",
			"#FFCA30",
		},
	}
}

// emberPalette is a warm alternative for light terminal backgrounds.
func emberPalette() Palette {
	return Palette{
		Name: "ember",
		Colors: []string{
			"#D7263D",
			"#F46036",
			"#FF9F1C",
			"#FFBF69",
			"#C05299",
			"#9D4EDD",
			"#7B2CBF",
			"#E63946",
			"#F4A261",
			"#E76F51",
		},
	}
}
