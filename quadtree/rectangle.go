package quadtree

import (
	"fmt"
	"image"
)

// Rectangle is an axis aligned box anchored at its top left corner.
type Rectangle struct {
	X, Y          int
	Width, Height int
}

// NewRectangle returns the rectangle at (x, y) with the given size.
func NewRectangle(x, y, width, height int) Rectangle {
	return Rectangle{X: x, Y: y, Width: width, Height: height}
}

// RectangleFromImage converts a half-open image rectangle.
func RectangleFromImage(r image.Rectangle) Rectangle {
	r = r.Canon()
	return Rectangle{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// XMin returns the left edge.
func (r Rectangle) XMin() int {
	return r.X
}

// XMax returns the right edge.
func (r Rectangle) XMax() int {
	return r.X + r.Width
}

// YMin returns the top edge.
func (r Rectangle) YMin() int {
	return r.Y
}

// YMax returns the bottom edge.
func (r Rectangle) YMax() int {
	return r.Y + r.Height
}

// Contains reports whether (x, y) lies within the rectangle, edges included.
func (r Rectangle) Contains(x, y int) bool {
	return r.XMin() <= x && x <= r.XMax() && r.YMin() <= y && y <= r.YMax()
}

// Intersects reports whether the two rectangles overlap or touch.
func (r Rectangle) Intersects(other Rectangle) bool {
	return !(r.XMax() < other.XMin() ||
		r.XMin() > other.XMax() ||
		r.YMax() < other.YMin() ||
		r.YMin() > other.YMax())
}

// Area returns Width * Height.
func (r Rectangle) Area() int {
	return r.Width * r.Height
}

// Empty reports whether the rectangle covers no pixels.
func (r Rectangle) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Image returns the half-open pixel rectangle covered by r.
func (r Rectangle) Image() image.Rectangle {
	return image.Rect(r.XMin(), r.YMin(), r.XMax(), r.YMax())
}

// Quadrants splits r at X+Width/2 and Y+Height/2 and returns the pieces in NW, NE, SW,
// SE order. The east and south pieces absorb the odd pixel, so the four areas always
// sum to r.Area().
func (r Rectangle) Quadrants() [4]Rectangle {
	halfWidth, halfHeight := r.Width/2, r.Height/2
	xCenter, yCenter := r.X+halfWidth, r.Y+halfHeight
	return [4]Rectangle{
		NorthWest: {X: r.X, Y: r.Y, Width: halfWidth, Height: halfHeight},
		NorthEast: {X: xCenter, Y: r.Y, Width: r.Width - halfWidth, Height: halfHeight},
		SouthWest: {X: r.X, Y: yCenter, Width: halfWidth, Height: r.Height - halfHeight},
		SouthEast: {X: xCenter, Y: yCenter, Width: r.Width - halfWidth, Height: r.Height - halfHeight},
	}
}

func (r Rectangle) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}
