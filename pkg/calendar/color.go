package calendar

import (
	"fmt"
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// FallbackColor is used when an event's calendar cannot be found.
const FallbackColor = "#007AFF"

// Palette is the set of colors offered by the calendar editor.
var Palette = []string{
	"#FF6B6B",
	"#4ECDC4",
	"#45B7D1",
	"#96CEB4",
	"#FFEAA7",
	"#DDA0DD",
	"#98D8C8",
	"#F7DC6F",
	"#BB8FCE",
	"#85C1E9",
}

// RandomColor picks a palette color.
func RandomColor() string {
	return Palette[rand.Intn(len(Palette))]
}

// ValidColor reports whether s is a #rrggbb hex color.
func ValidColor(s string) error {
	if _, err := colorful.Hex(s); err != nil {
		return fmt.Errorf("calendar: invalid color %q", s)
	}
	return nil
}

// TextColorFor returns black or white, whichever reads better on bg.
func TextColorFor(bg string) string {
	c, err := colorful.Hex(bg)
	if err != nil {
		return "#FFFFFF"
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return "#000000"
	}
	return "#FFFFFF"
}
