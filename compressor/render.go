package compressor

import (
	"image"

	"github.com/pkg/errors"

	"go.viam.com/quadcompress/rimage"
)

// Render draws the quadrants at depth onto a black canvas, each filled with its average
// color and, with showLines, outlined in black.
func (c *Compressor) Render(depth int, showLines bool) (*image.RGBA, error) {
	quadrants, err := c.LeafQuadrants(depth)
	if err != nil {
		return nil, err
	}

	canvas := rimage.NewCanvas(c.width, c.height)
	for _, q := range quadrants {
		canvas.FillRectangle(q.Boundary, q.Color)
		if showLines {
			canvas.DrawRectangleEmpty(q.Boundary, rimage.Black)
		}
	}
	return canvas.Image(), nil
}

// Frames renders the tree at every depth from Depth() down to 0, with the full depth
// frame repeated once more at both the start and the end.
func (c *Compressor) Frames(showLines bool) ([]image.Image, error) {
	realized := c.Depth()
	final, err := c.Render(realized, showLines)
	if err != nil {
		return nil, err
	}

	frames := make([]image.Image, 0, realized+3)
	frames = append(frames, final, final)
	for depth := realized - 1; depth >= 0; depth-- {
		frame, err := c.Render(depth, showLines)
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}
	return append(frames, final), nil
}

// WriteImage renders the tree at depth and saves it to path.
func (c *Compressor) WriteImage(path string, depth int, showLines bool) error {
	img, err := c.Render(depth, showLines)
	if err != nil {
		return err
	}
	if err := rimage.WriteImageToFile(path, img); err != nil {
		return errors.Wrapf(err, "cannot save compressed image to %q", path)
	}
	c.logger.Debugw("saved compressed image", "path", path, "depth", depth)
	return nil
}

// WriteGIF saves the frames of the tree as an animated GIF.
func (c *Compressor) WriteGIF(path string, opts GIFOptions) error {
	frames, err := c.Frames(opts.ShowLines)
	if err != nil {
		return err
	}
	if err := rimage.WriteAnimationToFile(path, frames, opts.Delay, opts.LoopCount); err != nil {
		return errors.Wrapf(err, "cannot save compression animation to %q", path)
	}
	c.logger.Debugw("saved compression animation", "path", path, "frames", len(frames))
	return nil
}
