// Package segment turns the multi-channel probability array emitted by a
// pixel-wise layout classifier into discrete word and line label maps.
//
// The probability array carries a fixed channel contract: channels 0 and
// 1 are separator classes, channel 2 a weak word-body marker, channel 3
// a strong word marker, and (in the 7-channel variant) channel 6 a line
// marker.
//
// Word segmentation is marker-driven: compact high-confidence markers
// claim the fuzzier connected regions around them, separator pixels and
// marker-claim boundaries split regions apart, and components confirmed
// by no marker are dropped.
package segment

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tsawler/pageread/raster"
)

// ErrChannels reports a probability array with an unsupported channel
// count.
var ErrChannels = errors.New("probability array must have 4 or 7 channels")

// Channel indices of the layout classifier output.
const (
	ChanSeparator0 = 0
	ChanSeparator1 = 1
	ChanWordBody   = 2
	ChanWordMarker = 3
	ChanLineMarker = 6
)

// Config holds the word segmentation thresholds and filter windows.
type Config struct {
	// MarkerThreshold is the cutoff on the strong word-marker channel
	// for the first marker pass. Default 0.3.
	MarkerThreshold float64

	// SeparatorThreshold is the cutoff used for the separator channels,
	// the marker-channel suppression, and the second marker pass.
	// Default 0.5.
	SeparatorThreshold float64

	// MarkerCloseH and MarkerCloseW are the closing window for the first
	// marker pass, bridging small gaps. Default 3×5.
	MarkerCloseH, MarkerCloseW int

	// RefineCloseH and RefineCloseW are the closing window for the
	// second, tighter marker pass. Default 1×3.
	RefineCloseH, RefineCloseW int

	// BoundaryWindow is the square window used to detect discontinuities
	// between neighboring marker claims. Default 5.
	BoundaryWindow int
}

// DefaultConfig returns the segmentation defaults.
func DefaultConfig() Config {
	return Config{
		MarkerThreshold:    0.3,
		SeparatorThreshold: 0.5,
		MarkerCloseH:       3,
		MarkerCloseW:       5,
		RefineCloseH:       1,
		RefineCloseW:       3,
		BoundaryWindow:     5,
	}
}

// Segmentation is the result of a word segmentation pass, including the
// intermediate maps for inspection.
type Segmentation struct {
	// Words is the final label map: each word-evidence pixel holds the
	// word id of the component it belongs to, 0 when part of no word.
	Words *raster.LabelMap

	// Components are the raw connected regions between separators.
	Components *raster.LabelMap

	// Markers are the refined word markers components were matched to.
	Markers *raster.LabelMap

	// Separators is the combined separator mask.
	Separators *raster.BitMap

	// Ambiguous counts components that overlapped more than one marker;
	// those keep their first-seen assignment.
	Ambiguous int
}

// Segmenter converts probability arrays to word label maps.
type Segmenter struct {
	config Config
}

// NewSegmenter creates a segmenter with default configuration.
func NewSegmenter() *Segmenter {
	return &Segmenter{config: DefaultConfig()}
}

// NewSegmenterWithConfig creates a segmenter with custom configuration.
func NewSegmenterWithConfig(config Config) *Segmenter {
	return &Segmenter{config: config}
}

// Segment runs word segmentation on a 4- or 7-channel probability array.
// Only the first four channels participate; see [LineMapper] for the
// line channel.
func (s *Segmenter) Segment(probs *raster.Volume) (*Segmentation, error) {
	if probs.C != 4 && probs.C != 7 {
		return nil, fmt.Errorf("got %d channels: %w", probs.C, ErrChannels)
	}
	cfg := s.config

	// Strong word markers, closed to bridge small gaps.
	markers := probs.Threshold(ChanWordMarker, cfg.MarkerThreshold).
		Close(cfg.MarkerCloseH, cfg.MarkerCloseW)
	markerLabels, _ := raster.Label(markers)

	// Every pixel's nearest marker claim; discontinuities between claims
	// are boundaries between adjacent words.
	sources := raster.NearestLabels(markerLabels)
	boundaries := claimBoundaries(sources, cfg.BoundaryWindow)

	separators := s.buildSeparators(probs, boundaries)

	// Raw connected regions a word could occupy.
	components, _ := raster.Label(separators.Not())

	// Second, tighter marker pass restricted to non-separator pixels.
	refined := s.refineMarkers(probs, separators)
	refinedLabels, _ := raster.Label(refined)

	words, ambiguous := assignComponents(components, refinedLabels)

	// A word claims only pixels carrying word evidence: component
	// membership alone is not enough when separators are sparse and a
	// component sprawls far beyond its marker.
	for i := range words.Pix {
		if !markers.Pix[i] && !refined.Pix[i] {
			words.Pix[i] = 0
		}
	}

	return &Segmentation{
		Words:      words,
		Components: components,
		Markers:    refinedLabels,
		Separators: separators,
		Ambiguous:  ambiguous,
	}, nil
}

// Words is Segment reduced to the final label map.
func (s *Segmenter) Words(probs *raster.Volume) (*raster.LabelMap, error) {
	seg, err := s.Segment(probs)
	if err != nil {
		return nil, err
	}
	return seg.Words, nil
}

// claimBoundaries marks pixels where a square max filter and min filter
// of the claim map disagree, i.e. where two different marker claims
// meet.
func claimBoundaries(sources *raster.LabelMap, window int) *raster.BitMap {
	hi := raster.MaxFilter(sources, window, window)
	lo := raster.MinFilter(sources, window, window)
	out := raster.NewBitMap(sources.H, sources.W)
	for i := range out.Pix {
		out.Pix[i] = hi.Pix[i] != lo.Pix[i]
	}
	return out
}

// buildSeparators combines the separator channels, suppressed where a
// word channel is confident, with the marker-claim boundaries.
func (s *Segmenter) buildSeparators(probs *raster.Volume, boundaries *raster.BitMap) *raster.BitMap {
	t := s.config.SeparatorThreshold
	out := raster.NewBitMap(probs.H, probs.W)
	for i := range out.Pix {
		base := probs.Pix[i*probs.C+ChanSeparator0] > t ||
			probs.Pix[i*probs.C+ChanSeparator1] > t
		base = base &&
			probs.Pix[i*probs.C+ChanWordBody] <= t &&
			probs.Pix[i*probs.C+ChanWordMarker] <= t
		out.Pix[i] = base || boundaries.Pix[i]
	}
	return out
}

// refineMarkers builds the tighter second marker from the combined word
// channels, kept off separator pixels and closed with a small window.
func (s *Segmenter) refineMarkers(probs *raster.Volume, separators *raster.BitMap) *raster.BitMap {
	t := s.config.SeparatorThreshold
	out := raster.NewBitMap(probs.H, probs.W)
	for i := range out.Pix {
		body := probs.Pix[i*probs.C+ChanWordBody]
		marker := probs.Pix[i*probs.C+ChanWordMarker]
		if body < marker {
			body = marker
		}
		out.Pix[i] = body > t && !separators.Pix[i]
	}
	return out.Close(s.config.RefineCloseH, s.config.RefineCloseW)
}

// jointKey pairs a marker label with a component label in one integer;
// label counts on real pages stay far below this base.
const jointKey = 1000000

// assignComponents gives each connected component the word id of the
// refined marker it overlaps, if any. A component overlapping no marker
// stays background. A component overlapping several markers keeps the
// assignment seen first in ascending (marker, component) key order; the
// ambiguity is counted but deliberately not corrected.
func assignComponents(components, markers *raster.LabelMap) (*raster.LabelMap, int) {
	pairs := make(map[int]struct{})
	for i, comp := range components.Pix {
		pairs[markers.Pix[i]*jointKey+comp] = struct{}{}
	}
	keys := make([]int, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	wordOf := make([]int, components.Max()+1)
	ambiguous := 0
	for _, k := range keys {
		word, comp := k/jointKey, k%jointKey
		if word == 0 || comp == 0 {
			continue
		}
		if wordOf[comp] != 0 {
			ambiguous++
			continue
		}
		wordOf[comp] = word
	}

	out := raster.NewLabelMap(components.H, components.W)
	for i, comp := range components.Pix {
		out.Pix[i] = wordOf[comp]
	}
	return out, ambiguous
}
