package layout

import (
	"sort"

	"github.com/tsawler/pageread/geom"
	"github.com/tsawler/pageread/raster"
)

// GroupByLine buckets word boxes by the line id found at each box
// center in the line label map. Groups come back ordered by ascending
// line id - the implicit id-0 bucket included when populated - with the
// boxes inside each group ordered left to right. Empty buckets are
// dropped; each returned group holds indices into the input slice.
func GroupByLine(boxes []geom.Box, lineMap *raster.LabelMap) [][]int {
	if len(boxes) == 0 {
		return nil
	}

	buckets := make(map[int][]int)
	maxID := 0
	for i, b := range boxes {
		id := lineIDAt(lineMap, b)
		buckets[id] = append(buckets[id], i)
		if id > maxID {
			maxID = id
		}
	}

	groups := make([][]int, 0, len(buckets))
	for id := 0; id <= maxID; id++ {
		group, ok := buckets[id]
		if !ok {
			continue
		}
		sort.SliceStable(group, func(a, b int) bool {
			return boxes[group[a]].Left < boxes[group[b]].Left
		})
		groups = append(groups, group)
	}
	return groups
}

// lineIDAt samples the line map at the box center, clamped to the map
// extents so padded boxes at the page edge stay in range.
func lineIDAt(lineMap *raster.LabelMap, b geom.Box) int {
	y := int(b.CenterY())
	x := int(b.CenterX())
	if y < 0 {
		y = 0
	}
	if y >= lineMap.H {
		y = lineMap.H - 1
	}
	if x < 0 {
		x = 0
	}
	if x >= lineMap.W {
		x = lineMap.W - 1
	}
	return lineMap.At(y, x)
}
