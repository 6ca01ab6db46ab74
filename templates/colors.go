package templates

import (
	"fmt"
	"math"

	"github.com/a-h/templ"
)

// Palette is a sequential colour scale for heatmap cells.
type Palette int

const (
	YellowGreenBlue Palette = iota
	YellowOrangeRed
)

type rgb struct{ r, g, b uint8 }

// Nine-step ColorBrewer scales, light to dark.
var palettes = map[Palette][]rgb{
	YellowGreenBlue: {
		{0xff, 0xff, 0xd9}, {0xed, 0xf8, 0xb1}, {0xc7, 0xe9, 0xb4},
		{0x7f, 0xcd, 0xbb}, {0x41, 0xb6, 0xc4}, {0x1d, 0x91, 0xc0},
		{0x22, 0x5e, 0xa8}, {0x25, 0x34, 0x94}, {0x08, 0x1d, 0x58},
	},
	YellowOrangeRed: {
		{0xff, 0xff, 0xcc}, {0xff, 0xed, 0xa0}, {0xfe, 0xd9, 0x76},
		{0xfe, 0xb2, 0x4c}, {0xfd, 0x8d, 0x3c}, {0xfc, 0x4e, 0x2a},
		{0xe3, 0x1a, 0x1c}, {0xbd, 0x00, 0x26}, {0x80, 0x00, 0x26},
	},
}

// CellColor interpolates v in [0,1] along the palette. Out of range values
// are clamped.
func CellColor(p Palette, v float64) string {
	stops, ok := palettes[p]
	if !ok {
		stops = palettes[YellowGreenBlue]
	}
	if math.IsNaN(v) {
		v = 0
	}
	v = math.Max(0, math.Min(1, v))

	pos := v * float64(len(stops)-1)
	i := int(pos)
	if i >= len(stops)-1 {
		c := stops[len(stops)-1]
		return fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b)
	}
	f := pos - float64(i)
	lo, hi := stops[i], stops[i+1]
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + f*(float64(b)-float64(a))))
	}
	return fmt.Sprintf("#%02x%02x%02x", mix(lo.r, hi.r), mix(lo.g, hi.g), mix(lo.b, hi.b))
}

// CellStyle is the inline style of one heatmap cell. Dark cells get light
// text.
func CellStyle(p Palette, v float64) templ.SafeCSS {
	fg := "#1c1917"
	if v > 0.6 {
		fg = "#ffffff"
	}
	return templ.SafeCSS(fmt.Sprintf("background-color: %s; color: %s;", CellColor(p, v), fg))
}
