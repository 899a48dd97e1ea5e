package life

import (
	"sort"

	"microlife/pkg/core"
)

var patterns = map[string]core.Grid{
	"cross": core.FromRows([core.Size][core.Size]uint8{
		{1, 0, 0, 0, 1},
		{0, 1, 0, 1, 0},
		{1, 0, 1, 0, 1},
		{0, 1, 0, 1, 0},
		{1, 0, 0, 0, 1},
	}),
	"blinker": core.FromRows([core.Size][core.Size]uint8{
		{0, 0, 0, 0, 0},
		{0, 0, 1, 0, 0},
		{0, 0, 1, 0, 0},
		{0, 0, 1, 0, 0},
		{0, 0, 0, 0, 0},
	}),
	"glider": core.FromRows([core.Size][core.Size]uint8{
		{0, 1, 0, 0, 0},
		{0, 0, 1, 0, 0},
		{1, 1, 1, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
	}),
	"block": core.FromRows([core.Size][core.Size]uint8{
		{0, 0, 0, 0, 0},
		{0, 1, 1, 0, 0},
		{0, 1, 1, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
	}),
	"empty": {},
}

// Cross is the X image the board boots with.
func Cross() core.Grid { return patterns["cross"] }

// Pattern looks up a named seed pattern.
func Pattern(name string) (core.Grid, bool) {
	g, ok := patterns[name]
	return g, ok
}

// PatternNames lists the known pattern names in sorted order.
func PatternNames() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
