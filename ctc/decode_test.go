package ctc

import (
	"errors"
	"testing"

	"github.com/tsawler/pageread/raster"
)

// makeAllBlank builds a T×S matrix where every timestep is fully blank.
func makeAllBlank(timesteps, symbols int) *raster.Grid {
	probs := raster.NewGrid(timesteps, symbols)
	for t := 0; t < timesteps; t++ {
		probs.Set(t, 0, 1)
	}
	return probs
}

func TestDecode_AllBlank(t *testing.T) {
	symbols, err := Decode(makeAllBlank(20, 5), DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(symbols) != 0 {
		t.Errorf("expected no symbols, got %v", symbols)
	}
}

func TestDecode_SingleSpike(t *testing.T) {
	// One timestep with full confidence on symbol 3, blank everywhere
	// else, must decode to exactly that symbol.
	probs := makeAllBlank(21, 5)
	probs.Set(10, 0, 0)
	probs.Set(10, 3, 1)

	peaks, err := DecodePeaks(probs, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(peaks) != 1 {
		t.Fatalf("expected 1 peak, got %d", len(peaks))
	}
	if peaks[0].Symbol != 3 {
		t.Errorf("expected symbol 3, got %d", peaks[0].Symbol)
	}
	if peaks[0].Timestep != 10 {
		t.Errorf("expected timestep 10, got %d", peaks[0].Timestep)
	}
	if peaks[0].Prob <= 0 {
		t.Errorf("expected positive peak probability, got %v", peaks[0].Prob)
	}
}

func TestDecode_TwoRuns(t *testing.T) {
	// Two well-separated confident runs produce two symbols in time order.
	probs := makeAllBlank(40, 4)
	for _, spec := range []struct{ start, end, symbol int }{
		{5, 10, 2},
		{25, 30, 1},
	} {
		for ts := spec.start; ts < spec.end; ts++ {
			probs.Set(ts, 0, 0)
			probs.Set(ts, spec.symbol, 1)
		}
	}

	symbols, err := Decode(probs, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(symbols) != 2 || symbols[0] != 2 || symbols[1] != 1 {
		t.Errorf("expected [2 1], got %v", symbols)
	}
}

func TestDecode_MoreRunsNeverFewerSymbols(t *testing.T) {
	// Output length grows with the number of distinct confident runs.
	prev := -1
	for runs := 0; runs <= 3; runs++ {
		probs := makeAllBlank(60, 3)
		for r := 0; r < runs; r++ {
			start := 5 + r*18
			for ts := start; ts < start+6; ts++ {
				probs.Set(ts, 0, 0)
				probs.Set(ts, 1, 1)
			}
		}
		symbols, err := Decode(probs, DefaultConfig())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(symbols) < prev {
			t.Errorf("symbol count dropped from %d to %d at %d runs", prev, len(symbols), runs)
		}
		prev = len(symbols)
	}
	if prev != 3 {
		t.Errorf("expected 3 symbols for 3 runs, got %d", prev)
	}
}

func TestDecode_NotNormalized(t *testing.T) {
	probs := raster.NewGrid(4, 3)
	probs.Set(0, 0, 0.5) // row sums to 0.5

	_, err := Decode(probs, DefaultConfig())
	if !errors.Is(err, ErrNotNormalized) {
		t.Fatalf("expected ErrNotNormalized, got %v", err)
	}
}

func TestDecode_TooFewColumns(t *testing.T) {
	if _, err := Decode(raster.NewGrid(4, 1), DefaultConfig()); err == nil {
		t.Fatal("expected an error for a blank-only matrix")
	}
}

func TestCharset_RoundTrip(t *testing.T) {
	cs := NewCharset("abc")
	if cs.Len() != 4 {
		t.Fatalf("expected 4 symbols including blank, got %d", cs.Len())
	}
	got := cs.Decode(cs.Encode("cab"))
	if got != "cab" {
		t.Errorf("round trip produced %q", got)
	}
}

func TestCharset_UnknownMapsToLast(t *testing.T) {
	cs := NewCharset("ab")
	encoded := cs.Encode("z")
	if len(encoded) != 1 || encoded[0] != 2 {
		t.Errorf("unknown character should map to the last index, got %v", encoded)
	}
}

func TestCharset_ASCII(t *testing.T) {
	cs := ASCII()
	if cs.Len() != 96 {
		t.Fatalf("expected 95 printable characters plus blank, got %d", cs.Len())
	}
	if got := cs.Decode([]int{34, 46, 53, 53, 56}); got != "AMTTW" {
		// Index i maps to rune 31+i.
		t.Errorf("unexpected ASCII decode %q", got)
	}
}

func TestCharset_DecodeSkipsBlankAndOutOfRange(t *testing.T) {
	cs := NewCharset("xy")
	if got := cs.Decode([]int{0, 1, 99, 2}); got != "xy" {
		t.Errorf("expected blanks and out-of-range indices skipped, got %q", got)
	}
}
