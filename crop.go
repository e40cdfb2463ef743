package pageread

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/tsawler/pageread/geom"
	"github.com/tsawler/pageread/raster"
)

// autoinvert flips a crop to dark-on-light polarity: when the mean
// exceeds the midrange the image is light-on-dark and gets inverted.
// Crops smaller than 2 pixels per side pass through unchanged.
func autoinvert(g *raster.Grid) *raster.Grid {
	if g.H < 2 || g.W < 2 {
		return g
	}
	min, max := g.MinMax()
	middle := (min + max) / 2
	if g.Mean() <= middle {
		return g
	}
	out := raster.NewGrid(g.H, g.W)
	for i, v := range g.Pix {
		out.Pix[i] = 1 - v
	}
	return out
}

// validCrop reports whether a binarized crop is plausible input for the
// recognizer: the size must be in range and the crop must span both
// foreground and background intensity.
func validCrop(binarized *raster.Grid) bool {
	h, w := binarized.H, binarized.W
	if h < 10 && w < 10 {
		return false
	}
	if h > 200 {
		return false
	}
	if h < 5 || w < 5 {
		return false
	}
	min, max := binarized.MinMax()
	return min < 0.1 && max > 0.9
}

// cropBox cuts the box out of the page and normalizes its polarity.
func cropBox(page *raster.Grid, b geom.Box) *raster.Grid {
	return autoinvert(page.Crop(b.Top, b.Left, b.Bottom, b.Right))
}

// thresholdGrid cuts a grayscale grid into a hard 0/1 grid at t.
func thresholdGrid(g *raster.Grid, t float64) *raster.Grid {
	out := raster.NewGrid(g.H, g.W)
	for i, v := range g.Pix {
		if v > t {
			out.Pix[i] = 1
		}
	}
	return out
}

// scaleToMaxHeight shrinks a crop taller than maxHeight to exactly
// maxHeight rows, preserving aspect ratio with bilinear interpolation.
// Crops at or below maxHeight pass through unchanged.
func scaleToMaxHeight(g *raster.Grid, maxHeight int) *raster.Grid {
	if g.H <= maxHeight || g.H == 0 || g.W == 0 {
		return g
	}
	scale := float64(maxHeight) / float64(g.H)
	w := int(float64(g.W) * scale)
	if w < 1 {
		w = 1
	}

	src := image.NewGray16(image.Rect(0, 0, g.W, g.H))
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			v := g.At(y, x)
			if v < 0 {
				v = 0
			} else if v > 1 {
				v = 1
			}
			src.SetGray16(x, y, color.Gray16{Y: uint16(v*65535 + 0.5)})
		}
	}

	dst := image.NewGray16(image.Rect(0, 0, w, maxHeight))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	out := raster.NewGrid(maxHeight, w)
	for y := 0; y < maxHeight; y++ {
		for x := 0; x < w; x++ {
			out.Set(y, x, float64(dst.Gray16At(x, y).Y)/65535.0)
		}
	}
	return out
}
