package compressor

import (
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/quadcompress/rimage"
)

var (
	northWestColor = rimage.NewColor(200, 10, 10)
	northEastColor = rimage.NewColor(10, 200, 10)
	southWestColor = rimage.NewColor(10, 10, 200)
	southEastColor = rimage.NewColor(200, 200, 10)
)

// newFourColorImage is an 8x8 image whose 4x4 quadrants are each a single color.
func newFourColorImage() *rimage.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			switch {
			case x < 4 && y < 4:
				img.SetNRGBA(x, y, northWestColor)
			case y < 4:
				img.SetNRGBA(x, y, northEastColor)
			case x < 4:
				img.SetNRGBA(x, y, southWestColor)
			default:
				img.SetNRGBA(x, y, southEastColor)
			}
		}
	}
	return rimage.NewImage(img)
}

func colorsEqual(c color.Color, expected color.NRGBA) bool {
	r, g, b, a := c.RGBA()
	er, eg, eb, ea := expected.RGBA()
	return r == er && g == eg && b == eb && a == ea
}

func TestRender(t *testing.T) {
	c := newCompressor(t, newFourColorImage(), Config{MaxDepth: 8, DetailThreshold: 0})
	test.That(t, c.Depth(), test.ShouldEqual, 1)

	img, err := c.Render(1, false)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, img.Bounds(), test.ShouldResemble, image.Rect(0, 0, 8, 8))
	test.That(t, colorsEqual(img.At(0, 0), northWestColor), test.ShouldBeTrue)
	test.That(t, colorsEqual(img.At(3, 3), northWestColor), test.ShouldBeTrue)
	test.That(t, colorsEqual(img.At(4, 0), northEastColor), test.ShouldBeTrue)
	test.That(t, colorsEqual(img.At(0, 4), southWestColor), test.ShouldBeTrue)
	test.That(t, colorsEqual(img.At(7, 7), southEastColor), test.ShouldBeTrue)

	img, err = c.Render(0, false)
	test.That(t, err, test.ShouldBeNil)
	average := c.Root().Color()
	test.That(t, average, test.ShouldResemble, rimage.NewColor(105, 105, 57))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			test.That(t, colorsEqual(img.At(x, y), average), test.ShouldBeTrue)
		}
	}

	_, err = c.Render(2, false)
	test.That(t, errors.Is(err, ErrInvalidDepthQuery), test.ShouldBeTrue)
}

func TestRenderShowLines(t *testing.T) {
	c := newCompressor(t, newFourColorImage(), Config{MaxDepth: 8, DetailThreshold: 0})

	img, err := c.Render(1, true)
	test.That(t, err, test.ShouldBeNil)

	// each 4x4 quadrant keeps a 2x2 interior inside a one pixel black border.
	for _, p := range []image.Point{{0, 0}, {3, 0}, {0, 3}, {3, 3}, {4, 4}, {7, 7}, {4, 7}, {7, 4}} {
		test.That(t, colorsEqual(img.At(p.X, p.Y), rimage.Black), test.ShouldBeTrue)
	}
	test.That(t, colorsEqual(img.At(1, 1), northWestColor), test.ShouldBeTrue)
	test.That(t, colorsEqual(img.At(2, 2), northWestColor), test.ShouldBeTrue)
	test.That(t, colorsEqual(img.At(5, 2), northEastColor), test.ShouldBeTrue)
	test.That(t, colorsEqual(img.At(2, 5), southWestColor), test.ShouldBeTrue)
	test.That(t, colorsEqual(img.At(6, 6), southEastColor), test.ShouldBeTrue)
}

func TestFrames(t *testing.T) {
	c := newCompressor(t, newNoiseImage(32, 32, 4), Config{MaxDepth: 4, DetailThreshold: 5})
	test.That(t, c.Depth(), test.ShouldEqual, 4)

	frames, err := c.Frames(false)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(frames), test.ShouldEqual, c.Depth()+3)

	final, err := c.Render(c.Depth(), false)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, frames[0], test.ShouldResemble, final)
	test.That(t, frames[1], test.ShouldResemble, final)
	test.That(t, frames[len(frames)-1], test.ShouldResemble, final)

	for i, depth := 2, c.Depth()-1; depth >= 0; i, depth = i+1, depth-1 {
		expected, err := c.Render(depth, false)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, frames[i], test.ShouldResemble, expected)
	}
}

func TestFramesSingleLeaf(t *testing.T) {
	c := newCompressor(t, newUniformImage(4, 4, rimage.Gray), DefaultConfig())
	frames, err := c.Frames(true)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(frames), test.ShouldEqual, 3)
}

func TestWriteImage(t *testing.T) {
	c := newCompressor(t, newFourColorImage(), Config{MaxDepth: 8, DetailThreshold: 0})
	path := filepath.Join(t.TempDir(), "images", "four_compressed.png")

	test.That(t, c.WriteImage(path, 1, false), test.ShouldBeNil)

	img, err := rimage.ReadImageFromFile(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, img.Width(), test.ShouldEqual, 8)
	test.That(t, img.Height(), test.ShouldEqual, 8)
	test.That(t, colorsEqual(img.NRGBA().At(0, 0), northWestColor), test.ShouldBeTrue)
	test.That(t, colorsEqual(img.NRGBA().At(7, 7), southEastColor), test.ShouldBeTrue)

	err = c.WriteImage(filepath.Join(t.TempDir(), "bad.png"), 5, false)
	test.That(t, errors.Is(err, ErrInvalidDepthQuery), test.ShouldBeTrue)
}

func TestWriteGIF(t *testing.T) {
	c := newCompressor(t, newFourColorImage(), Config{MaxDepth: 8, DetailThreshold: 0})
	path := filepath.Join(t.TempDir(), "four_compressing.gif")

	opts := DefaultGIFOptions()
	opts.Delay = 500 * time.Millisecond
	opts.ShowLines = true
	test.That(t, c.WriteGIF(path, opts), test.ShouldBeNil)

	f, err := os.Open(path)
	test.That(t, err, test.ShouldBeNil)
	defer f.Close()

	anim, err := gif.DecodeAll(f)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(anim.Image), test.ShouldEqual, c.Depth()+3)
	test.That(t, anim.Delay, test.ShouldResemble, []int{50, 50, 50, 50})
	test.That(t, anim.LoopCount, test.ShouldEqual, 0)
	test.That(t, colorsEqual(anim.Image[0].At(1, 1), northWestColor), test.ShouldBeTrue)
	test.That(t, colorsEqual(anim.Image[0].At(0, 0), rimage.Black), test.ShouldBeTrue)
}
