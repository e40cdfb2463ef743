package raster

import (
	"math"
	"math/rand"
	"testing"
)

func TestDistanceTransform_BruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	mask := NewBitMap(17, 23)
	for i := range mask.Pix {
		mask.Pix[i] = rng.Float64() < 0.08
	}
	if mask.Count() == 0 {
		t.Fatal("test mask has no features")
	}

	dist, src := DistanceTransform(mask)

	for y := 0; y < mask.H; y++ {
		for x := 0; x < mask.W; x++ {
			best := math.Inf(1)
			for fy := 0; fy < mask.H; fy++ {
				for fx := 0; fx < mask.W; fx++ {
					if !mask.At(fy, fx) {
						continue
					}
					d := math.Hypot(float64(y-fy), float64(x-fx))
					if d < best {
						best = d
					}
				}
			}
			if math.Abs(dist.At(y, x)-best) > 1e-9 {
				t.Fatalf("distance at (%d,%d) = %v, want %v", y, x, dist.At(y, x), best)
			}

			// The reported source must be a feature pixel at that distance.
			s := src[y*mask.W+x]
			sy, sx := s/mask.W, s%mask.W
			if !mask.At(sy, sx) {
				t.Fatalf("source of (%d,%d) is not a feature pixel", y, x)
			}
			d := math.Hypot(float64(y-sy), float64(x-sx))
			if math.Abs(d-best) > 1e-9 {
				t.Fatalf("source of (%d,%d) at distance %v, nearest is %v", y, x, d, best)
			}
		}
	}
}

func TestDistanceTransform_EmptyMask(t *testing.T) {
	dist, src := DistanceTransform(NewBitMap(4, 4))
	for i := range src {
		if src[i] != -1 {
			t.Fatalf("expected source -1 at %d, got %d", i, src[i])
		}
		if !math.IsInf(dist.Pix[i], 1) {
			t.Fatalf("expected +Inf distance at %d, got %v", i, dist.Pix[i])
		}
	}
}

func TestSpreadLabels_NearestWins(t *testing.T) {
	labels := NewLabelMap(5, 9)
	labels.Set(2, 0, 1)
	labels.Set(2, 8, 2)

	spread := NearestLabels(labels)
	if spread.At(2, 1) != 1 {
		t.Errorf("pixel next to label 1 got %d", spread.At(2, 1))
	}
	if spread.At(2, 7) != 2 {
		t.Errorf("pixel next to label 2 got %d", spread.At(2, 7))
	}
	if spread.At(2, 0) != 1 || spread.At(2, 8) != 2 {
		t.Errorf("labeled pixels must keep their labels")
	}
	for i, v := range spread.Pix {
		if v == 0 {
			t.Fatalf("unbounded spread left background at index %d", i)
		}
	}
}

func TestSpreadLabels_DistanceCap(t *testing.T) {
	labels := NewLabelMap(1, 10)
	labels.Set(0, 0, 3)

	spread := SpreadLabels(labels, 4)
	if spread.At(0, 3) != 3 {
		t.Errorf("pixel within cap stayed background")
	}
	// The cap is exclusive: distance exactly maxDist stays background.
	if spread.At(0, 4) != 0 {
		t.Errorf("pixel at cap distance got label %d", spread.At(0, 4))
	}
	if spread.At(0, 9) != 0 {
		t.Errorf("pixel beyond cap got label %d", spread.At(0, 9))
	}
}
