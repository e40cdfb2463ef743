// Package ctc decodes the per-timestep symbol probabilities emitted by a
// CTC-trained sequence recognizer into a discrete symbol sequence.
//
// The decoder is a peak picker, not a best-path or beam search: each
// symbol's probability curve is smoothed over time, contiguous runs where
// the blank probability drops below a threshold are located, and each run
// collapses to the single timestep of maximal non-blank probability.
//
//	symbols, err := ctc.Decode(probs, ctc.DefaultConfig())
//	text := charset.Decode(symbols)
package ctc

import (
	"errors"
	"fmt"
	"math"

	"github.com/tsawler/pageread/raster"
)

// ErrNotNormalized reports a probability matrix whose rows do not sum
// to 1. The caller must supply a properly normalized distribution, for
// example by applying a softmax.
var ErrNotNormalized = errors.New("probability rows do not sum to 1; input is not a normalized distribution")

// normTolerance is the allowed deviation of a row sum from 1.
const normTolerance = 1e-4

// Config holds the decoder parameters.
type Config struct {
	// Sigma is the standard deviation of the Gaussian used to smooth
	// each symbol's probability curve over time, suppressing
	// single-frame noise. Default 1.0.
	Sigma float64

	// BlankThreshold is the blank-probability cutoff below which a
	// timestep counts as a confident non-blank frame. Default 0.7.
	BlankThreshold float64
}

// DefaultConfig returns the decoder defaults.
func DefaultConfig() Config {
	return Config{Sigma: 1.0, BlankThreshold: 0.7}
}

// Peak is one decoded symbol with its position in the input sequence.
type Peak struct {
	// Symbol is the decoded symbol index (never the blank).
	Symbol int

	// Timestep is the frame the symbol was picked at.
	Timestep int

	// Prob is the smoothed probability at that frame.
	Prob float64
}

// Decode collapses a timesteps×symbols probability matrix into an
// ordered sequence of symbol indices. Column 0 must hold the blank
// symbol and every row must sum to 1 within tolerance
// ([ErrNotNormalized] otherwise).
func Decode(probs *raster.Grid, cfg Config) ([]int, error) {
	peaks, err := DecodePeaks(probs, cfg)
	if err != nil {
		return nil, err
	}
	symbols := make([]int, len(peaks))
	for i, p := range peaks {
		symbols[i] = p.Symbol
	}
	return symbols, nil
}

// DecodePeaks is Decode with per-symbol timestep and probability
// metadata attached.
func DecodePeaks(probs *raster.Grid, cfg Config) ([]Peak, error) {
	if probs.W < 2 {
		return nil, fmt.Errorf("need a blank column plus at least one symbol, got %d columns", probs.W)
	}
	for t := 0; t < probs.H; t++ {
		sum := 0.0
		for s := 0; s < probs.W; s++ {
			sum += probs.At(t, s)
		}
		if math.Abs(sum-1) >= normTolerance {
			return nil, fmt.Errorf("row %d sums to %v: %w", t, sum, ErrNotNormalized)
		}
	}

	smoothed := smoothColumns(probs, cfg.Sigma)
	renormalizeRows(smoothed)

	// Runs of confident frames: blank probability below the threshold.
	runs := labelRuns(smoothed, cfg.BlankThreshold)
	if len(runs) == 0 {
		return nil, nil
	}

	peaks := make([]Peak, 0, len(runs))
	for _, run := range runs {
		best := Peak{Symbol: -1}
		for t := run.start; t < run.end; t++ {
			for s := 1; s < smoothed.W; s++ {
				if p := smoothed.At(t, s); best.Symbol < 0 || p > best.Prob {
					best = Peak{Symbol: s, Timestep: t, Prob: p}
				}
			}
		}
		peaks = append(peaks, best)
	}
	return peaks, nil
}

type run struct{ start, end int } // [start, end)

// labelRuns finds the maximal contiguous timestep intervals where the
// blank probability is below the threshold, in time order.
func labelRuns(probs *raster.Grid, threshold float64) []run {
	var runs []run
	open := -1
	for t := 0; t < probs.H; t++ {
		if probs.At(t, 0) < threshold {
			if open < 0 {
				open = t
			}
			continue
		}
		if open >= 0 {
			runs = append(runs, run{open, t})
			open = -1
		}
	}
	if open >= 0 {
		runs = append(runs, run{open, probs.H})
	}
	return runs
}

// smoothColumns applies a 1-D Gaussian over time to each symbol's curve.
func smoothColumns(probs *raster.Grid, sigma float64) *raster.Grid {
	out := raster.NewGrid(probs.H, probs.W)
	column := make([]float64, probs.H)
	for s := 0; s < probs.W; s++ {
		for t := 0; t < probs.H; t++ {
			column[t] = probs.At(t, s)
		}
		for t, v := range raster.Gaussian1D(column, sigma) {
			out.Set(t, s, v)
		}
	}
	return out
}

func renormalizeRows(probs *raster.Grid) {
	for t := 0; t < probs.H; t++ {
		sum := 0.0
		for s := 0; s < probs.W; s++ {
			sum += probs.At(t, s)
		}
		if sum == 0 {
			continue
		}
		for s := 0; s < probs.W; s++ {
			probs.Set(t, s, probs.At(t, s)/sum)
		}
	}
}
