package game

import (
	"fmt"
	"strings"
)

// Color is a palette entry a player is drawn with.
type Color string

// ColorRandom is not a palette entry; it asks for any unused one.
const ColorRandom Color = "random"

const (
	Emerald Color = "emerald"
	Sky     Color = "sky"
	Amber   Color = "amber"
	Purple  Color = "purple"
	Pink    Color = "pink"
	Red     Color = "red"
)

// Palette is the fixed set of player colors, in preference order.
// Palette[0] doubles as the fallback once every entry is taken.
var Palette = []Color{Emerald, Sky, Amber, Purple, Pink, Red}

var colorHex = map[Color]string{
	Emerald: "#00ff9d",
	Sky:     "#00d2ff",
	Amber:   "#ffcc00",
	Purple:  "#d580ff",
	Pink:    "#ff80bf",
	Red:     "#ff5555",
}

// Hex returns the RGB hex string frontends paint the color with.
func (c Color) Hex() string {
	if h, ok := colorHex[c]; ok {
		return h
	}
	return colorHex[Palette[0]]
}

// InPalette reports whether c is a concrete palette entry.
func (c Color) InPalette() bool {
	_, ok := colorHex[c]
	return ok
}

// ParseColor accepts a palette name or "random".
func ParseColor(s string) (Color, error) {
	c := Color(strings.ToLower(strings.TrimSpace(s)))
	if c == ColorRandom || c.InPalette() {
		return c, nil
	}
	return "", fmt.Errorf("unknown color %q", s)
}
