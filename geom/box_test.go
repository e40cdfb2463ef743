package geom

import (
	"testing"

	"github.com/tsawler/pageread/raster"
)

func TestExtractBoxes_OnePerLabel(t *testing.T) {
	labels := raster.NewLabelMap(20, 20)
	// Label 1: rows 2-4, cols 3-6. Label 3: rows 10-12, cols 8-9.
	// Label 2 is absent.
	for y := 2; y <= 4; y++ {
		for x := 3; x <= 6; x++ {
			labels.Set(y, x, 1)
		}
	}
	for y := 10; y <= 12; y++ {
		for x := 8; x <= 9; x++ {
			labels.Set(y, x, 3)
		}
	}

	boxes := ExtractBoxes(labels, Padding{}, PadRatio{})
	if len(boxes) != 2 {
		t.Fatalf("expected one box per present label, got %d", len(boxes))
	}
	if boxes[0] != (Box{Top: 2, Left: 3, Bottom: 5, Right: 7}) {
		t.Errorf("label 1 box = %+v", boxes[0])
	}
	if boxes[1] != (Box{Top: 10, Left: 8, Bottom: 13, Right: 10}) {
		t.Errorf("label 3 box = %+v", boxes[1])
	}
}

func TestExtractBoxes_ContainsAllLabelPixels(t *testing.T) {
	labels := raster.NewLabelMap(15, 15)
	pixels := [][2]int{{1, 1}, {4, 9}, {7, 3}}
	for _, p := range pixels {
		labels.Set(p[0], p[1], 1)
	}

	boxes := ExtractBoxes(labels, UniformPadding(2), PadRatio{})
	if len(boxes) != 1 {
		t.Fatalf("expected 1 box, got %d", len(boxes))
	}
	unpadded := Box{Top: 1, Left: 1, Bottom: 8, Right: 10}
	for _, p := range pixels {
		b := boxes[0]
		if p[0] < b.Top || p[0] >= b.Bottom || p[1] < b.Left || p[1] >= b.Right {
			t.Errorf("box %+v does not contain label pixel %v", b, p)
		}
	}
	// Padding only grows rectangles.
	if boxes[0].Top > unpadded.Top || boxes[0].Bottom < unpadded.Bottom {
		t.Errorf("padding shrank the box: %+v", boxes[0])
	}
}

func TestExtractBoxes_PadClipsToExtent(t *testing.T) {
	labels := raster.NewLabelMap(10, 10)
	labels.Set(0, 0, 1)
	labels.Set(9, 9, 1)

	boxes := ExtractBoxes(labels, UniformPadding(5), PadRatio{})
	if boxes[0] != (Box{Top: 0, Left: 0, Bottom: 10, Right: 10}) {
		t.Errorf("expected box clipped to extents, got %+v", boxes[0])
	}
}

func TestExtractBoxes_RatioPadding(t *testing.T) {
	labels := raster.NewLabelMap(40, 40)
	// 10 rows tall: ratio 0.5 pads by 5, beating the absolute 2.
	for y := 10; y < 20; y++ {
		labels.Set(y, 20, 1)
	}

	boxes := ExtractBoxes(labels, UniformPadding(2), PadRatio{Top: 0.5, Left: 0.5, Bottom: 0.5, Right: 0.5})
	if boxes[0] != (Box{Top: 5, Left: 15, Bottom: 25, Right: 26}) {
		t.Errorf("ratio padding produced %+v", boxes[0])
	}
}

func TestExtractBoxes_Empty(t *testing.T) {
	if boxes := ExtractBoxes(raster.NewLabelMap(5, 5), Padding{}, PadRatio{}); len(boxes) != 0 {
		t.Errorf("expected no boxes on background-only map, got %d", len(boxes))
	}
}

func TestMergeOverlapping_AbsorbsFragment(t *testing.T) {
	word := Box{Top: 10, Left: 10, Bottom: 40, Right: 100}
	// A narrow diacritic fragment overlapping the word's band.
	fragment := Box{Top: 12, Left: 15, Bottom: 20, Right: 25}

	merged := MergeOverlapping([]Box{word, fragment}, DefaultMergeConfig())
	if len(merged) != 1 {
		t.Fatalf("expected fragment absorbed, got %d boxes", len(merged))
	}
	if merged[0] != word.Union(fragment) {
		t.Errorf("merged box = %+v", merged[0])
	}
}

func TestMergeOverlapping_KeepsDistinctWords(t *testing.T) {
	boxes := []Box{
		{Top: 10, Left: 10, Bottom: 20, Right: 60},
		{Top: 10, Left: 80, Bottom: 20, Right: 130},
	}

	merged := MergeOverlapping(boxes, DefaultMergeConfig())
	if len(merged) != 2 {
		t.Errorf("disjoint words must not merge, got %d boxes", len(merged))
	}
}

func TestMergeOverlapping_Idempotent(t *testing.T) {
	boxes := []Box{
		{Top: 10, Left: 10, Bottom: 40, Right: 100},
		{Top: 12, Left: 15, Bottom: 20, Right: 25},
		{Top: 30, Left: 90, Bottom: 38, Right: 99},
		{Top: 50, Left: 10, Bottom: 60, Right: 70},
	}

	once := MergeOverlapping(boxes, DefaultMergeConfig())
	twice := MergeOverlapping(once, DefaultMergeConfig())
	if len(once) != len(twice) {
		t.Fatalf("second merge changed box count: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("box %d changed on second merge: %+v vs %+v", i, once[i], twice[i])
		}
	}
}

func TestOverlapFrac(t *testing.T) {
	a := Box{Top: 0, Left: 0, Bottom: 10, Right: 10}
	b := Box{Top: 0, Left: 5, Bottom: 10, Right: 15}
	if got := a.OverlapFrac(b); got != 0.5 {
		t.Errorf("expected overlap fraction 0.5, got %v", got)
	}
	c := Box{Top: 20, Left: 20, Bottom: 30, Right: 30}
	if got := a.OverlapFrac(c); got != 0 {
		t.Errorf("expected 0 overlap, got %v", got)
	}
}

func TestBoundingAll(t *testing.T) {
	boxes := []Box{
		{Top: 5, Left: 10, Bottom: 15, Right: 20},
		{Top: 2, Left: 12, Bottom: 10, Right: 30},
	}
	union, ok := BoundingAll(boxes)
	if !ok {
		t.Fatal("expected a union box")
	}
	if union != (Box{Top: 2, Left: 10, Bottom: 15, Right: 30}) {
		t.Errorf("union = %+v", union)
	}
	if _, ok := BoundingAll(nil); ok {
		t.Error("empty slice must report no box")
	}
}
