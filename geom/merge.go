package geom

// MergeConfig holds the thresholds for reuniting fragmented word boxes.
type MergeConfig struct {
	// HeightMargin widens a box's vertical band when testing whether a
	// fragment sits on the same line, as a fraction of the box height.
	// Default 0.3.
	HeightMargin float64

	// OverlapThreshold is the minimum area-normalized overlap fraction
	// for a fragment to be absorbed. Default 0.5.
	OverlapThreshold float64
}

// DefaultMergeConfig returns the merge defaults.
func DefaultMergeConfig() MergeConfig {
	return MergeConfig{HeightMargin: 0.3, OverlapThreshold: 0.5}
}

// MergeOverlapping absorbs small fragment boxes into the word boxes they
// overlap. A box j merges into box i when j is narrower than i is tall,
// j's vertical center lies within i's height band widened by
// HeightMargin·height, and the overlap area normalized by the smaller
// box area exceeds OverlapThreshold. Passes repeat until no merge
// happens, so the result is stable under a second call.
//
// This resolves the case where a single word was fragmented into a tall
// primary box plus a small diacritic or fragment box.
func MergeOverlapping(boxes []Box, cfg MergeConfig) []Box {
	work := make([]Box, len(boxes))
	copy(work, boxes)
	alive := make([]bool, len(work))
	for i := range alive {
		alive[i] = true
	}

	for merged := true; merged; {
		merged = false
		for i := range work {
			if !alive[i] {
				continue
			}
			for j := range work {
				if i == j || !alive[j] || !alive[i] {
					continue
				}
				if work[j].Width() >= work[i].Height() {
					continue
				}
				if !sameLine(work[i], work[j], cfg.HeightMargin) {
					continue
				}
				if work[i].OverlapFrac(work[j]) <= cfg.OverlapThreshold {
					continue
				}
				work[i] = work[i].Union(work[j])
				alive[j] = false
				merged = true
			}
		}
	}

	out := make([]Box, 0, len(work))
	for i, b := range work {
		if alive[i] {
			out = append(out, b)
		}
	}
	return out
}

// sameLine reports whether fragment's vertical center falls inside
// base's height band widened by margin·height on each side.
func sameLine(base, fragment Box, margin float64) bool {
	delta := float64(base.Height()) * margin
	cy := fragment.CenterY()
	return cy > float64(base.Top)-delta && cy < float64(base.Bottom)+delta
}
