package raster

// Label assigns a distinct positive label to every 4-connected component
// of set pixels in the mask and returns the label map together with the
// number of components found. Labels are contiguous from 1 in scan order
// of each component's first pixel.
func Label(mask *BitMap) (*LabelMap, int) {
	labels := NewLabelMap(mask.H, mask.W)
	next := 0
	queue := make([]int, 0, 64)

	for start, set := range mask.Pix {
		if !set || labels.Pix[start] != 0 {
			continue
		}
		next++
		labels.Pix[start] = next
		queue = append(queue[:0], start)

		for len(queue) > 0 {
			idx := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			y, x := idx/mask.W, idx%mask.W

			if x > 0 {
				visitNeighbor(mask, labels, idx-1, next, &queue)
			}
			if x < mask.W-1 {
				visitNeighbor(mask, labels, idx+1, next, &queue)
			}
			if y > 0 {
				visitNeighbor(mask, labels, idx-mask.W, next, &queue)
			}
			if y < mask.H-1 {
				visitNeighbor(mask, labels, idx+mask.W, next, &queue)
			}
		}
	}
	return labels, next
}

func visitNeighbor(mask *BitMap, labels *LabelMap, idx, label int, queue *[]int) {
	if mask.Pix[idx] && labels.Pix[idx] == 0 {
		labels.Pix[idx] = label
		*queue = append(*queue, idx)
	}
}

// RegionSizes returns the pixel count of every label in the map, indexed
// by label. Index 0 holds the background count.
func RegionSizes(labels *LabelMap) []int {
	sizes := make([]int, labels.Max()+1)
	for _, v := range labels.Pix {
		sizes[v]++
	}
	return sizes
}

// PruneSmallRegions removes every 4-connected component of the mask whose
// pixel count is at or below minSize. The background is never counted as
// a region.
func PruneSmallRegions(mask *BitMap, minSize int) *BitMap {
	labels, _ := Label(mask)
	sizes := RegionSizes(labels)
	out := NewBitMap(mask.H, mask.W)
	for i, v := range labels.Pix {
		out.Pix[i] = v != 0 && sizes[v] > minSize
	}
	return out
}

// jointKey is the encoding base used to pair two label values in a single
// integer. Label counts on real pages are far below this.
const jointKey = 1000000

// ReconcileMarkers labels both masks and keeps only the candidate regions
// that contain at least one marker pixel. Every surviving region is
// relabeled with the label of a marker it contains (when several markers
// touch one region, the pairing seen last in ascending joint-key order
// wins). Regions with no marker become background.
func ReconcileMarkers(markers, regions *BitMap) *LabelMap {
	markerLabels, _ := Label(markers)
	regionLabels, n := Label(regions)

	pairs := make(map[int]struct{})
	for i, r := range regionLabels.Pix {
		pairs[r*jointKey+markerLabels.Pix[i]] = struct{}{}
	}

	remap := make([]int, n+1)
	for key := range pairs {
		region, marker := key/jointKey, key%jointKey
		if marker > remap[region] {
			remap[region] = marker
		}
	}
	remap[0] = 0

	out := NewLabelMap(regions.H, regions.W)
	for i, r := range regionLabels.Pix {
		out.Pix[i] = remap[r]
	}
	return out
}
