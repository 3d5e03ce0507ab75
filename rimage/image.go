// Package rimage holds the image sources and sinks the compressor reads pixels from and
// renders quadrants into.
package rimage

import (
	"image"

	"github.com/disintegration/imaging"

	"go.viam.com/quadcompress/quadtree"
)

// Image is a decoded, read-only image that can be cropped concurrently.
type Image struct {
	nrgba *image.NRGBA
}

// NewImage copies img into an NRGBA buffer anchored at the origin.
func NewImage(img image.Image) *Image {
	return &Image{nrgba: imaging.Clone(img)}
}

// Bounds returns the image bounds. Min is always the origin.
func (i *Image) Bounds() image.Rectangle {
	return i.nrgba.Bounds()
}

// Width returns the image width in pixels.
func (i *Image) Width() int {
	return i.nrgba.Bounds().Dx()
}

// Height returns the image height in pixels.
func (i *Image) Height() int {
	return i.nrgba.Bounds().Dy()
}

// Crop returns a copy of the pixels under r. Parts of r outside the image are dropped,
// and an empty rectangle yields an empty buffer.
func (i *Image) Crop(r quadtree.Rectangle) *image.NRGBA {
	if r.Empty() {
		return &image.NRGBA{}
	}
	return imaging.Crop(i.nrgba, r.Image())
}

// NRGBA exposes the underlying buffer. Callers must not modify it.
func (i *Image) NRGBA() *image.NRGBA {
	return i.nrgba
}

// Histogram counts pixel intensities per color channel: red, green, then blue.
type Histogram [3][256]int

// NewHistogram builds the histogram of img. Alpha is ignored.
func NewHistogram(img *image.NRGBA) Histogram {
	var hist Histogram
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		offset := img.PixOffset(bounds.Min.X, y)
		row := img.Pix[offset : offset+bounds.Dx()*4]
		for x := 0; x < len(row); x += 4 {
			hist[0][row[x]]++
			hist[1][row[x+1]]++
			hist[2][row[x+2]]++
		}
	}
	return hist
}

// Total returns the number of pixels counted in channel.
func (h *Histogram) Total(channel int) int {
	total := 0
	for _, count := range h[channel] {
		total += count
	}
	return total
}
