package rimage

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Some colors used for drawing and in tests.
var (
	Black = color.NRGBA{0, 0, 0, 255}
	White = color.NRGBA{255, 255, 255, 255}
	Red   = color.NRGBA{255, 0, 0, 255}
	Green = color.NRGBA{0, 255, 0, 255}
	Blue  = color.NRGBA{0, 0, 255, 255}
	Gray  = color.NRGBA{128, 128, 128, 255}
)

// NewColor returns an opaque color.
func NewColor(r, g, b uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// Hex formats c as #rrggbb. Fully transparent colors format as black.
func Hex(c color.Color) string {
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return colorful.Color{}.Hex()
	}
	return cc.Hex()
}
