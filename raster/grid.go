package raster

// Grid is a height×width array of float64 values stored in row-major order.
// Pixel (y, x) lives at Pix[y*W+x].
type Grid struct {
	H, W int
	Pix  []float64
}

// NewGrid creates a zero-filled grid of the given dimensions.
func NewGrid(h, w int) *Grid {
	return &Grid{H: h, W: w, Pix: make([]float64, h*w)}
}

// At returns the value at (y, x).
func (g *Grid) At(y, x int) float64 { return g.Pix[y*g.W+x] }

// Set stores v at (y, x).
func (g *Grid) Set(y, x int, v float64) { g.Pix[y*g.W+x] = v }

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	out := NewGrid(g.H, g.W)
	copy(out.Pix, g.Pix)
	return out
}

// Crop returns a copy of the rectangle spanning rows [top, bottom) and
// columns [left, right), clipped to the grid extents. Degenerate
// rectangles produce an empty grid.
func (g *Grid) Crop(top, left, bottom, right int) *Grid {
	top = clampInt(top, 0, g.H)
	bottom = clampInt(bottom, 0, g.H)
	left = clampInt(left, 0, g.W)
	right = clampInt(right, 0, g.W)
	if bottom < top {
		bottom = top
	}
	if right < left {
		right = left
	}
	out := NewGrid(bottom-top, right-left)
	for y := top; y < bottom; y++ {
		copy(out.Pix[(y-top)*out.W:(y-top+1)*out.W], g.Pix[y*g.W+left:y*g.W+right])
	}
	return out
}

// MinMax returns the smallest and largest values in the grid.
// An empty grid returns (0, 0).
func (g *Grid) MinMax() (min, max float64) {
	if len(g.Pix) == 0 {
		return 0, 0
	}
	min, max = g.Pix[0], g.Pix[0]
	for _, v := range g.Pix[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// Mean returns the average value in the grid, or 0 for an empty grid.
func (g *Grid) Mean() float64 {
	if len(g.Pix) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range g.Pix {
		sum += v
	}
	return sum / float64(len(g.Pix))
}

// BitMap is a height×width boolean mask in row-major order.
type BitMap struct {
	H, W int
	Pix  []bool
}

// NewBitMap creates a cleared mask of the given dimensions.
func NewBitMap(h, w int) *BitMap {
	return &BitMap{H: h, W: w, Pix: make([]bool, h*w)}
}

// At reports whether the pixel at (y, x) is set.
func (b *BitMap) At(y, x int) bool { return b.Pix[y*b.W+x] }

// Set stores v at (y, x).
func (b *BitMap) Set(y, x int, v bool) { b.Pix[y*b.W+x] = v }

// Count returns the number of set pixels.
func (b *BitMap) Count() int {
	n := 0
	for _, v := range b.Pix {
		if v {
			n++
		}
	}
	return n
}

// Not returns the complement of the mask.
func (b *BitMap) Not() *BitMap {
	out := NewBitMap(b.H, b.W)
	for i, v := range b.Pix {
		out.Pix[i] = !v
	}
	return out
}

// LabelMap is a height×width integer map. 0 marks background; positive
// values identify regions. Labels produced by [Label] are contiguous
// from 1, but maps derived by relabeling may contain gaps.
type LabelMap struct {
	H, W int
	Pix  []int
}

// NewLabelMap creates a background-only map of the given dimensions.
func NewLabelMap(h, w int) *LabelMap {
	return &LabelMap{H: h, W: w, Pix: make([]int, h*w)}
}

// At returns the label at (y, x).
func (m *LabelMap) At(y, x int) int { return m.Pix[y*m.W+x] }

// Set stores the label v at (y, x).
func (m *LabelMap) Set(y, x int, v int) { m.Pix[y*m.W+x] = v }

// Max returns the largest label present, or 0 for an all-background map.
func (m *LabelMap) Max() int {
	max := 0
	for _, v := range m.Pix {
		if v > max {
			max = v
		}
	}
	return max
}

// NonZero returns the mask of labeled pixels.
func (m *LabelMap) NonZero() *BitMap {
	out := NewBitMap(m.H, m.W)
	for i, v := range m.Pix {
		out.Pix[i] = v != 0
	}
	return out
}

// Volume is a height×width×channels probability array in row-major order
// with the channel index varying fastest: (y, x, c) lives at
// Pix[(y*W+x)*C+c].
type Volume struct {
	H, W, C int
	Pix     []float64
}

// NewVolume creates a zero-filled volume of the given dimensions.
func NewVolume(h, w, c int) *Volume {
	return &Volume{H: h, W: w, C: c, Pix: make([]float64, h*w*c)}
}

// At returns the value at (y, x, c).
func (v *Volume) At(y, x, c int) float64 { return v.Pix[(y*v.W+x)*v.C+c] }

// Set stores p at (y, x, c).
func (v *Volume) Set(y, x, c int, p float64) { v.Pix[(y*v.W+x)*v.C+c] = p }

// Channel extracts one channel as a grid.
func (v *Volume) Channel(c int) *Grid {
	out := NewGrid(v.H, v.W)
	for i := range out.Pix {
		out.Pix[i] = v.Pix[i*v.C+c]
	}
	return out
}

// Threshold returns the mask of pixels where channel c exceeds t.
func (v *Volume) Threshold(c int, t float64) *BitMap {
	out := NewBitMap(v.H, v.W)
	for i := range out.Pix {
		out.Pix[i] = v.Pix[i*v.C+c] > t
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
