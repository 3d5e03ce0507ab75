package rimage

import (
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/lmittmann/ppm"
	"github.com/pkg/errors"
	"github.com/xfmoulet/qoi"
	"go.uber.org/multierr"
	"golang.org/x/image/draw"
	// register webp; bmp and tiff are registered through imaging, qoi and ppm on import.
	_ "golang.org/x/image/webp"
)

// ErrSourceNotFound is returned when the image to compress does not exist.
var ErrSourceNotFound = errors.New("image source not found")

// ReadImageFromFile decodes the image at path, honoring EXIF orientation.
func ReadImageFromFile(path string) (*Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(ErrSourceNotFound, path)
		}
		return nil, errors.Wrapf(err, "cannot decode image %q", path)
	}
	return NewImage(img), nil
}

// WriteImageToFile encodes img to path, picking the format from the file extension.
// Missing parent directories are created.
func WriteImageToFile(path string, img image.Image) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".qoi":
		return writeWith(path, func(w io.Writer) error { return qoi.Encode(w, img) })
	case ".ppm":
		return writeWith(path, func(w io.Writer) error { return ppm.Encode(w, toRGBA(img)) })
	default:
		if _, err := imaging.FormatFromFilename(path); err != nil {
			return errors.Wrapf(err, "cannot write image %q", path)
		}
		return imaging.Save(img, path)
	}
}

// WriteAnimationToFile writes frames as a GIF. Each frame is shown for delay, rounded down
// to hundredths of a second, and a loopCount of 0 loops forever. Frames with at most 256
// distinct colors keep them exactly; others are mapped onto the Plan 9 palette.
func WriteAnimationToFile(path string, frames []image.Image, delay time.Duration, loopCount int) error {
	if len(frames) == 0 {
		return errors.New("cannot write an animation without frames")
	}
	if err := ensureDir(path); err != nil {
		return err
	}

	anim := &gif.GIF{LoopCount: loopCount}
	hundredths := int(delay / (10 * time.Millisecond))
	for _, frame := range frames {
		bounds := frame.Bounds()
		paletted := image.NewPaletted(bounds, paletteFor(frame))
		draw.Draw(paletted, bounds, frame, bounds.Min, draw.Src)
		anim.Image = append(anim.Image, paletted)
		anim.Delay = append(anim.Delay, hundredths)
	}

	return writeWith(path, func(w io.Writer) error { return gif.EncodeAll(w, anim) })
}

// toRGBA returns img as an *image.RGBA anchored at the origin, copying when it is
// anything else. The ppm encoder only accepts the RGBA color model.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba
}

func paletteFor(img image.Image) color.Palette {
	seen := make(map[color.RGBA]struct{}, 256)
	pal := make(color.Palette, 0, 256)
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			//nolint:forcetypeassert
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			if _, ok := seen[c]; ok {
				continue
			}
			if len(pal) == 256 {
				return palette.Plan9
			}
			seen[c] = struct{}{}
			pal = append(pal, c)
		}
	}
	if len(pal) == 0 {
		return color.Palette{color.Black}
	}
	return pal
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return errors.Wrapf(os.MkdirAll(dir, 0o750), "cannot create directory for %q", path)
}

func writeWith(path string, encode func(w io.Writer) error) (err error) {
	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()
	return encode(f)
}
