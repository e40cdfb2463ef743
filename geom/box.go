// Package geom provides the bounding-box geometry for word regions:
// rectangle extraction from a label map, padding, and the overlap/merge
// logic that reunites fragmented word regions.
package geom

import "github.com/tsawler/pageread/raster"

// Box is an axis-aligned pixel rectangle spanning rows [Top, Bottom) and
// columns [Left, Right).
type Box struct {
	Top, Left, Bottom, Right int
}

// Height returns the number of rows the box spans.
func (b Box) Height() int { return b.Bottom - b.Top }

// Width returns the number of columns the box spans.
func (b Box) Width() int { return b.Right - b.Left }

// Area returns the number of pixels the box covers.
func (b Box) Area() int { return b.Height() * b.Width() }

// Empty reports whether the box covers no pixels.
func (b Box) Empty() bool { return b.Bottom <= b.Top || b.Right <= b.Left }

// CenterX returns the horizontal center of the box.
func (b Box) CenterX() float64 { return float64(b.Left+b.Right) / 2 }

// CenterY returns the vertical center of the box.
func (b Box) CenterY() float64 { return float64(b.Top+b.Bottom) / 2 }

// Overlap returns the pixel area shared by the two boxes.
func (b Box) Overlap(o Box) int {
	h := minInt(b.Bottom, o.Bottom) - maxInt(b.Top, o.Top)
	w := minInt(b.Right, o.Right) - maxInt(b.Left, o.Left)
	if h <= 0 || w <= 0 {
		return 0
	}
	return h * w
}

// OverlapFrac returns the shared area normalized by the smaller of the
// two box areas, or 0 if either box is empty.
func (b Box) OverlapFrac(o Box) float64 {
	area := minInt(b.Area(), o.Area())
	if area <= 0 {
		return 0
	}
	return float64(b.Overlap(o)) / float64(area)
}

// Union returns the smallest box containing both boxes.
func (b Box) Union(o Box) Box {
	return Box{
		Top:    minInt(b.Top, o.Top),
		Left:   minInt(b.Left, o.Left),
		Bottom: maxInt(b.Bottom, o.Bottom),
		Right:  maxInt(b.Right, o.Right),
	}
}

// Clip restricts the box to an h×w extent.
func (b Box) Clip(h, w int) Box {
	return Box{
		Top:    clamp(b.Top, 0, h),
		Left:   clamp(b.Left, 0, w),
		Bottom: clamp(b.Bottom, 0, h),
		Right:  clamp(b.Right, 0, w),
	}
}

// BoundingAll returns the union of all boxes in the slice. The second
// return is false for an empty slice.
func BoundingAll(boxes []Box) (Box, bool) {
	if len(boxes) == 0 {
		return Box{}, false
	}
	out := boxes[0]
	for _, b := range boxes[1:] {
		out = out.Union(b)
	}
	return out, true
}

// Padding is a per-side absolute padding in pixels.
type Padding struct {
	Top, Left, Bottom, Right int
}

// UniformPadding pads every side by the same amount.
func UniformPadding(p int) Padding {
	return Padding{Top: p, Left: p, Bottom: p, Right: p}
}

// PadRatio is a per-side padding expressed as a fraction of the box
// height. On each side the larger of the absolute and the proportional
// padding applies.
type PadRatio struct {
	Top, Left, Bottom, Right float64
}

// ExtractBoxes finds the minimal enclosing rectangle of every nonzero
// label in the map, pads each side by max(pad, ratio·height) of that
// side, and clips the result to the map extents. The returned boxes are
// ordered by ascending label; labels absent from the map produce no box.
func ExtractBoxes(labels *raster.LabelMap, pad Padding, ratio PadRatio) []Box {
	max := labels.Max()
	if max == 0 {
		return nil
	}

	boxes := make([]Box, max+1)
	seen := make([]bool, max+1)
	for y := 0; y < labels.H; y++ {
		for x := 0; x < labels.W; x++ {
			v := labels.At(y, x)
			if v == 0 {
				continue
			}
			if !seen[v] {
				seen[v] = true
				boxes[v] = Box{Top: y, Left: x, Bottom: y + 1, Right: x + 1}
				continue
			}
			b := &boxes[v]
			if y < b.Top {
				b.Top = y
			}
			if y+1 > b.Bottom {
				b.Bottom = y + 1
			}
			if x < b.Left {
				b.Left = x
			}
			if x+1 > b.Right {
				b.Right = x + 1
			}
		}
	}

	out := make([]Box, 0, max)
	for v := 1; v <= max; v++ {
		if !seen[v] {
			continue
		}
		b := boxes[v]
		h := b.Height()
		padded := Box{
			Top:    b.Top - maxInt(pad.Top, int(ratio.Top*float64(h))),
			Left:   b.Left - maxInt(pad.Left, int(ratio.Left*float64(h))),
			Bottom: b.Bottom + maxInt(pad.Bottom, int(ratio.Bottom*float64(h))),
			Right:  b.Right + maxInt(pad.Right, int(ratio.Right*float64(h))),
		}
		out = append(out, padded.Clip(labels.H, labels.W))
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
