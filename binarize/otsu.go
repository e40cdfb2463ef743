// Package binarize provides the default page binarization collaborator:
// global Otsu thresholding over a normalized grayscale image. The
// recognition pipeline only needs a binarized page with plausible
// foreground/background separation for crop validation, so a global
// threshold is sufficient; callers with difficult material can supply
// their own adaptive binarizer instead.
package binarize

import (
	"errors"

	"github.com/tsawler/pageread/raster"
)

// ErrRange reports an input image with values outside [0,1].
var ErrRange = errors.New("image values must lie in [0,1]")

// defaultLevels is the histogram resolution for threshold selection.
const defaultLevels = 256

// Otsu binarizes a page with the global threshold that maximizes
// between-class variance of the intensity histogram.
type Otsu struct {
	levels int
}

// NewOtsu creates a binarizer with a 256-bin histogram.
func NewOtsu() *Otsu {
	return &Otsu{levels: defaultLevels}
}

// Binarize returns a hard 0/1 grid: 1 where the input exceeds the Otsu
// threshold, 0 elsewhere. A constant image binarizes to all zeros.
func (o *Otsu) Binarize(page *raster.Grid) (*raster.Grid, error) {
	min, max := page.MinMax()
	if min < 0 || max > 1 {
		return nil, ErrRange
	}

	t := Threshold(page, o.levels)
	out := raster.NewGrid(page.H, page.W)
	for i, v := range page.Pix {
		if v > t {
			out.Pix[i] = 1
		}
	}
	return out, nil
}

// Threshold computes the Otsu threshold of a [0,1] grayscale grid using
// a histogram with the given number of bins. An empty or constant grid
// yields 1, placing every pixel in the background class.
func Threshold(page *raster.Grid, levels int) float64 {
	if levels < 2 {
		levels = 2
	}
	hist := make([]int, levels)
	for _, v := range page.Pix {
		bin := int(v * float64(levels-1))
		if bin < 0 {
			bin = 0
		} else if bin >= levels {
			bin = levels - 1
		}
		hist[bin]++
	}

	total := len(page.Pix)
	if total == 0 {
		return 1
	}

	sumAll := 0.0
	for bin, count := range hist {
		sumAll += float64(bin) * float64(count)
	}

	// Track every bin achieving the maximal between-class variance and
	// split at their midpoint: a clean bimodal image ties on every bin
	// between the modes.
	bestVariance := -1.0
	bestLo, bestHi := -1, -1
	weightBg := 0
	sumBg := 0.0
	for bin := 0; bin < levels; bin++ {
		weightBg += hist[bin]
		if weightBg == 0 {
			continue
		}
		weightFg := total - weightBg
		if weightFg == 0 {
			break
		}
		sumBg += float64(bin) * float64(hist[bin])

		meanBg := sumBg / float64(weightBg)
		meanFg := (sumAll - sumBg) / float64(weightFg)
		diff := meanBg - meanFg
		variance := float64(weightBg) * float64(weightFg) * diff * diff
		if variance > bestVariance {
			bestVariance = variance
			bestLo, bestHi = bin, bin
		} else if variance == bestVariance {
			bestHi = bin
		}
	}

	if bestLo < 0 {
		return 1
	}
	return float64(bestLo+bestHi) / 2 / float64(levels-1)
}
