package sink

import (
	"fmt"
	"image/color"
)

// Palette holds the colours shared by all surfaces.
type Palette struct {
	Background color.NRGBA
	Edge       color.NRGBA
	Fill       color.NRGBA
	Stroke     color.NRGBA
	Text       color.NRGBA
}

// DefaultPalette is the dark page background with the red accent.
var DefaultPalette = Palette{
	Background: color.NRGBA{0x0b, 0x0f, 0x1a, 0xff},
	Edge:       color.NRGBA{0xff, 0xff, 0xff, 0x26},
	Fill:       color.NRGBA{0xe6, 0x39, 0x46, 0xcc},
	Stroke:     color.NRGBA{0xf1, 0xfa, 0xee, 0xff},
	Text:       color.NRGBA{0x9a, 0xa4, 0xb2, 0xff},
}

func hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func opacity(c color.NRGBA) string {
	return fmt.Sprintf("%.2f", float64(c.A)/255)
}
