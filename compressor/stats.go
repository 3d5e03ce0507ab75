package compressor

import (
	"image"
	"image/color"
	"math"

	"gonum.org/v1/gonum/stat"

	"go.viam.com/quadcompress/rimage"
)

// Luma coefficients weighting each channel's deviation in the detail score.
const (
	RedIntensity   = 0.2989
	GreenIntensity = 0.5870
	BlueIntensity  = 0.1140
)

// intensities is the x axis shared by every channel histogram. Read only.
var intensities = func() []float64 {
	xs := make([]float64, 256)
	for i := range xs {
		xs[i] = float64(i)
	}
	return xs
}()

// Stats are the aggregate statistics of a region of pixels.
type Stats struct {
	Color  color.NRGBA
	Detail float64
}

// ComputeStats returns the average color and detail score of img.
func ComputeStats(img *image.NRGBA) Stats {
	hist := rimage.NewHistogram(img)
	return Stats{
		Color:  AverageColor(&hist),
		Detail: DetailIntensity(&hist),
	}
}

// Deviation returns the population standard deviation of the intensities counted in
// channel, or 0 when nothing was counted.
func Deviation(channel *[256]int) float64 {
	weights := make([]float64, len(channel))
	total := 0
	for i, count := range channel {
		weights[i] = float64(count)
		total += count
	}
	if total == 0 {
		return 0
	}
	_, variance := stat.PopMeanVariance(intensities, weights)
	return math.Sqrt(math.Max(variance, 0))
}

// DetailIntensity is the luma weighted sum of the channel deviations of hist.
func DetailIntensity(hist *rimage.Histogram) float64 {
	return Deviation(&hist[0])*RedIntensity +
		Deviation(&hist[1])*GreenIntensity +
		Deviation(&hist[2])*BlueIntensity
}

// AverageColor returns the per channel mean of hist, truncated toward zero. An empty
// histogram averages to black.
func AverageColor(hist *rimage.Histogram) color.NRGBA {
	var channels [3]uint8
	for c := range channels {
		total, sum := 0, 0
		for i, count := range hist[c] {
			total += count
			sum += i * count
		}
		if total > 0 {
			channels[c] = uint8(sum / total)
		}
	}
	return rimage.NewColor(channels[0], channels[1], channels[2])
}
