package raster

import "math"

// DistanceTransform computes, for every pixel, the exact Euclidean
// distance to the nearest set pixel of the mask, along with that pixel's
// flat index (y*W+x). Pixels in a mask with no set pixels get distance
// +Inf and source -1.
//
// The transform runs the two-pass Felzenszwalb-Huttenlocher algorithm:
// an exact 1-D pass down each column followed by a lower-envelope pass
// across each row, carrying the source index through both passes.
func DistanceTransform(mask *BitMap) (*Grid, []int) {
	h, w := mask.H, mask.W
	dist := NewGrid(h, w)
	src := make([]int, h*w)

	// Column pass: squared distance to the nearest set pixel in the same
	// column, and that pixel's row.
	colDist := make([]float64, h*w)
	colSrc := make([]int, h*w)
	for x := 0; x < w; x++ {
		last := -1
		for y := 0; y < h; y++ {
			if mask.Pix[y*w+x] {
				last = y
			}
			if last < 0 {
				colDist[y*w+x] = math.Inf(1)
				colSrc[y*w+x] = -1
			} else {
				d := float64(y - last)
				colDist[y*w+x] = d * d
				colSrc[y*w+x] = last
			}
		}
		last = -1
		for y := h - 1; y >= 0; y-- {
			if mask.Pix[y*w+x] {
				last = y
			}
			if last >= 0 {
				d := float64(last - y)
				if d*d < colDist[y*w+x] {
					colDist[y*w+x] = d * d
					colSrc[y*w+x] = last
				}
			}
		}
	}

	// Row pass: lower envelope of the parabolas x' ↦ colDist[y][x'] + (x-x')².
	v := make([]int, w)      // parabola positions
	z := make([]float64, w+1) // envelope breakpoints
	for y := 0; y < h; y++ {
		k := -1
		for x := 0; x < w; x++ {
			f := colDist[y*w+x]
			if math.IsInf(f, 1) {
				continue
			}
			for k >= 0 {
				q := v[k]
				s := (f + float64(x*x) - colDist[y*w+q] - float64(q*q)) / float64(2*(x-q))
				if s > z[k] {
					break
				}
				k--
			}
			if k < 0 {
				k = 0
				v[0] = x
				z[0] = math.Inf(-1)
				z[1] = math.Inf(1)
			} else {
				q := v[k]
				s := (f + float64(x*x) - colDist[y*w+q] - float64(q*q)) / float64(2*(x-q))
				k++
				v[k] = x
				z[k] = s
				z[k+1] = math.Inf(1)
			}
		}

		if k < 0 {
			// No set pixel reaches this row through any column.
			for x := 0; x < w; x++ {
				dist.Pix[y*w+x] = math.Inf(1)
				src[y*w+x] = -1
			}
			continue
		}

		j := 0
		for x := 0; x < w; x++ {
			for z[j+1] < float64(x) {
				j++
			}
			q := v[j]
			dx := float64(x - q)
			dist.Pix[y*w+x] = math.Sqrt(dx*dx + colDist[y*w+q])
			src[y*w+x] = colSrc[y*w+q]*w + q
		}
	}

	return dist, src
}

// SpreadLabels grows the labeled regions of the map into the background:
// every background pixel takes the label of its Euclidean-nearest labeled
// pixel, unless that distance reaches maxDist, in which case it stays
// background. Labeled pixels keep their own label.
func SpreadLabels(labels *LabelMap, maxDist float64) *LabelMap {
	dist, src := DistanceTransform(labels.NonZero())
	out := NewLabelMap(labels.H, labels.W)
	for i := range out.Pix {
		if src[i] >= 0 && dist.Pix[i] < maxDist {
			out.Pix[i] = labels.Pix[src[i]]
		}
	}
	return out
}

// NearestLabels is SpreadLabels without a distance cap: every pixel takes
// the label of the nearest labeled pixel. An all-background map stays
// all background.
func NearestLabels(labels *LabelMap) *LabelMap {
	return SpreadLabels(labels, math.Inf(1))
}
