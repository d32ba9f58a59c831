package imgutil

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseHexColor parses a 3- or 6-digit hex color such as "ffffff", "#1a2b3c"
// or "f0c". The short form expands each digit, so "f0c" means "ff00cc". The
// returned color is always fully opaque.
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")

	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}

	switch len(hex) {
	case 3:
		r := uint8(n >> 8 & 0xf)
		g := uint8(n >> 4 & 0xf)
		b := uint8(n & 0xf)
		return color.NRGBA{R: r * 0x11, G: g * 0x11, B: b * 0x11, A: 0xff}, nil
	case 6:
		return color.NRGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xff}, nil
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: want 3 or 6 hex digits", s)
	}
}
