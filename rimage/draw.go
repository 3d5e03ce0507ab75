package rimage

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"go.viam.com/quadcompress/quadtree"
)

// Canvas is an RGBA drawing surface that starts out black.
type Canvas struct {
	dc *gg.Context
}

// NewCanvas returns a black canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	dc := gg.NewContext(width, height)
	dc.SetColor(Black)
	dc.Clear()
	return &Canvas{dc: dc}
}

// Width returns the canvas width.
func (c *Canvas) Width() int {
	return c.dc.Width()
}

// Height returns the canvas height.
func (c *Canvas) Height() int {
	return c.dc.Height()
}

// FillRectangle paints every pixel under r with clr.
func (c *Canvas) FillRectangle(r quadtree.Rectangle, clr color.Color) {
	if r.Empty() {
		return
	}
	c.dc.SetColor(clr)
	c.dc.DrawRectangle(float64(r.X), float64(r.Y), float64(r.Width), float64(r.Height))
	c.dc.Fill()
}

// DrawRectangleEmpty draws a one pixel wide outline along the inside edge of r.
func (c *Canvas) DrawRectangleEmpty(r quadtree.Rectangle, clr color.Color) {
	if r.Empty() {
		return
	}
	// strips rather than a stroked path keep the corners free of antialiasing.
	c.FillRectangle(quadtree.NewRectangle(r.X, r.Y, r.Width, 1), clr)
	c.FillRectangle(quadtree.NewRectangle(r.X, r.YMax()-1, r.Width, 1), clr)
	c.FillRectangle(quadtree.NewRectangle(r.X, r.Y, 1, r.Height), clr)
	c.FillRectangle(quadtree.NewRectangle(r.XMax()-1, r.Y, 1, r.Height), clr)
}

// Image returns the canvas pixels. Later drawing is visible through the returned image.
func (c *Canvas) Image() *image.RGBA {
	//nolint:forcetypeassert
	return c.dc.Image().(*image.RGBA)
}
