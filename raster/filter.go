package raster

import "math"

// windowBounds returns the inclusive offset range of a centered filter
// window of the given size: [-size/2, size-size/2-1].
func windowBounds(size int) (lo, hi int) {
	return -(size / 2), size - size/2 - 1
}

// Dilate returns the mask after a maximum filter with an h×w centered
// rectangular window.
func (b *BitMap) Dilate(h, w int) *BitMap {
	out := NewBitMap(b.H, b.W)
	dy0, dy1 := windowBounds(h)
	dx0, dx1 := windowBounds(w)
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			if windowAny(b, y+dy0, y+dy1, x+dx0, x+dx1) {
				out.Pix[y*b.W+x] = true
			}
		}
	}
	return out
}

// Erode returns the mask after a minimum filter with an h×w centered
// rectangular window.
func (b *BitMap) Erode(h, w int) *BitMap {
	out := NewBitMap(b.H, b.W)
	dy0, dy1 := windowBounds(h)
	dx0, dx1 := windowBounds(w)
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			if windowAll(b, y+dy0, y+dy1, x+dx0, x+dx1) {
				out.Pix[y*b.W+x] = true
			}
		}
	}
	return out
}

// Close dilates then erodes with the same h×w window, bridging gaps
// smaller than the window.
func (b *BitMap) Close(h, w int) *BitMap {
	return b.Dilate(h, w).Erode(h, w)
}

func windowAny(b *BitMap, y0, y1, x0, x1 int) bool {
	y0, y1 = clampInt(y0, 0, b.H-1), clampInt(y1, 0, b.H-1)
	x0, x1 = clampInt(x0, 0, b.W-1), clampInt(x1, 0, b.W-1)
	for y := y0; y <= y1; y++ {
		row := y * b.W
		for x := x0; x <= x1; x++ {
			if b.Pix[row+x] {
				return true
			}
		}
	}
	return false
}

func windowAll(b *BitMap, y0, y1, x0, x1 int) bool {
	y0, y1 = clampInt(y0, 0, b.H-1), clampInt(y1, 0, b.H-1)
	x0, x1 = clampInt(x0, 0, b.W-1), clampInt(x1, 0, b.W-1)
	for y := y0; y <= y1; y++ {
		row := y * b.W
		for x := x0; x <= x1; x++ {
			if !b.Pix[row+x] {
				return false
			}
		}
	}
	return true
}

// MaxFilter replaces every label with the maximum label inside an h×w
// centered window clipped to the map extents.
func MaxFilter(m *LabelMap, h, w int) *LabelMap {
	return rankFilter(m, h, w, func(a, b int) bool { return a > b })
}

// MinFilter replaces every label with the minimum label inside an h×w
// centered window clipped to the map extents.
func MinFilter(m *LabelMap, h, w int) *LabelMap {
	return rankFilter(m, h, w, func(a, b int) bool { return a < b })
}

func rankFilter(m *LabelMap, h, w int, better func(a, b int) bool) *LabelMap {
	out := NewLabelMap(m.H, m.W)
	dy0, dy1 := windowBounds(h)
	dx0, dx1 := windowBounds(w)
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			y0, y1 := clampInt(y+dy0, 0, m.H-1), clampInt(y+dy1, 0, m.H-1)
			x0, x1 := clampInt(x+dx0, 0, m.W-1), clampInt(x+dx1, 0, m.W-1)
			best := m.Pix[y0*m.W+x0]
			for wy := y0; wy <= y1; wy++ {
				row := wy * m.W
				for wx := x0; wx <= x1; wx++ {
					if better(m.Pix[row+wx], best) {
						best = m.Pix[row+wx]
					}
				}
			}
			out.Pix[y*m.W+x] = best
		}
	}
	return out
}

// Gaussian1D smooths a signal with a normalized Gaussian kernel of the
// given standard deviation. The kernel radius is 4σ rounded to the
// nearest integer and the boundary is handled by reflection, so smoothing
// a constant signal returns it unchanged. Sigma values at or below zero
// return a copy of the input.
func Gaussian1D(signal []float64, sigma float64) []float64 {
	out := make([]float64, len(signal))
	if sigma <= 0 || len(signal) == 0 {
		copy(out, signal)
		return out
	}

	radius := int(4*sigma + 0.5)
	kernel := make([]float64, 2*radius+1)
	sum := 0.0
	for i := range kernel {
		d := float64(i - radius)
		kernel[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}

	n := len(signal)
	for i := range signal {
		acc := 0.0
		for k, kv := range kernel {
			acc += kv * signal[reflectIndex(i+k-radius, n)]
		}
		out[i] = acc
	}
	return out
}

// reflectIndex maps an out-of-range index into [0, n) by mirroring about
// the array edges (the "reflect" convention: -1 maps to 0, n maps to n-1).
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - 1 - i
	}
	return i
}
