package embroidery

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color is a 24 bit thread color.
type Color struct {
	R, G, B uint8
}

// RGBA implements the image/color.Color interface. Thread colors are
// always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// Hex renders the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ColorFrom converts any color.Color, dropping alpha.
func ColorFrom(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B}
}

// ParseColor understands #rgb, #rrggbb and the SVG color keywords.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return Color{}, fmt.Errorf("invalid hex color %q", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
	}
	if c, ok := colornames.Map[s]; ok {
		return ColorFrom(c), nil
	}
	return Color{}, fmt.Errorf("unknown color %q", s)
}

// placeholderNames is the palette cycled by FixColorCount. The order is
// fixed so that repaired patterns are reproducible.
var placeholderNames = []string{
	"black", "red", "blue", "green", "yellow", "magenta", "cyan", "orange",
	"purple", "brown", "pink", "navy", "olive", "teal", "maroon", "gray",
}

func placeholderThread(i int) Thread {
	name := placeholderNames[i%len(placeholderNames)]
	return Thread{
		Color:       ColorFrom(colornames.Map[name]),
		Description: name,
	}
}
