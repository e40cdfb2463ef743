package segment

import (
	"fmt"

	"github.com/tsawler/pageread/raster"
)

// LineConfig holds the line-map thresholds and filter windows.
type LineConfig struct {
	// Threshold is the cutoff on the line-marker channel. Default 0.3.
	Threshold float64

	// CloseH and CloseW are the closing window applied to the thresholded
	// marker. Default 5×10.
	CloseH, CloseW int

	// MinRegion removes marker components at or below this pixel count.
	// Default 100.
	MinRegion int

	// SpreadDistance caps how far line labels spread into the
	// background, in pixels. Default 100.
	SpreadDistance float64
}

// DefaultLineConfig returns the line-map defaults.
func DefaultLineConfig() LineConfig {
	return LineConfig{
		Threshold:      0.3,
		CloseH:         5,
		CloseW:         10,
		MinRegion:      100,
		SpreadDistance: 100,
	}
}

// LineMapper builds line label maps from the 7-channel probability
// array's line-marker channel.
type LineMapper struct {
	config LineConfig
}

// NewLineMapper creates a line mapper with default configuration.
func NewLineMapper() *LineMapper {
	return &LineMapper{config: DefaultLineConfig()}
}

// NewLineMapperWithConfig creates a line mapper with custom configuration.
func NewLineMapperWithConfig(config LineConfig) *LineMapper {
	return &LineMapper{config: config}
}

// Map labels the line-marker channel into line ids and spreads them a
// bounded distance into the background, so that a word box center lands
// on the id of the line claiming it. Requires the 7-channel array.
func (m *LineMapper) Map(probs *raster.Volume) (*raster.LabelMap, error) {
	if probs.C <= ChanLineMarker {
		return nil, fmt.Errorf("line map needs the 7-channel array, got %d channels: %w", probs.C, ErrChannels)
	}
	cfg := m.config

	marker := probs.Threshold(ChanLineMarker, cfg.Threshold).
		Close(cfg.CloseH, cfg.CloseW)
	marker = raster.PruneSmallRegions(marker, cfg.MinRegion)
	labels, _ := raster.Label(marker)
	return raster.SpreadLabels(labels, cfg.SpreadDistance), nil
}
